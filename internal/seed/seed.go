// Package seed provides demo data for development and testing. It creates the
// well-known fixture hobbyists plus a configurable number of generated users
// and tanks.
package seed

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/scottj1426/reef-for-all/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	ShouldClean bool
}

type fixtureUser struct {
	auth0ID   string
	email     string
	username  string
	firstName string
	lastName  string
	bio       string
	location  string
	avatarURL string
}

var fixtureUsers = []fixtureUser{
	{
		auth0ID:   "auth0|test1",
		email:     "test1@example.com",
		username:  "reefmaster",
		firstName: "John",
		lastName:  "Doe",
		bio:       "Reef aquarium enthusiast for 10+ years",
		location:  "Miami, FL",
		avatarURL: "https://i.pravatar.cc/150?img=1",
	},
	{
		auth0ID:   "auth0|test2",
		email:     "test2@example.com",
		username:  "coralkeeper",
		firstName: "Jane",
		lastName:  "Smith",
		bio:       "Marine biologist and coral enthusiast",
		location:  "San Diego, CA",
		avatarURL: "https://i.pravatar.cc/150?img=2",
	},
	{
		auth0ID:   "auth0|test3",
		email:     "test3@example.com",
		username:  "tankbuilder",
		firstName: "Mike",
		lastName:  "Johnson",
		bio:       "Custom reef tank builder",
		location:  "Austin, TX",
		avatarURL: "https://i.pravatar.cc/150?img=3",
	},
}

type fixtureTank struct {
	owner       int // index into fixtureUsers
	name        string
	size        int
	description string
	imageURL    string
}

var fixtureTanks = []fixtureTank{
	{0, "Main Display Reef", 120, "Large mixed reef with SPS and LPS corals", "https://images.unsplash.com/photo-1544551763-46a013bb70d5?w=800"},
	{0, "Nano Reef", 25, "Small office nano reef with softies", "https://images.unsplash.com/photo-1520986606214-8b456906c813?w=800"},
	{1, "Research Tank", 75, "Coral propagation and research setup", "https://images.unsplash.com/photo-1535591273668-578e31182c4f?w=800"},
	{2, "Custom Peninsula Tank", 200, "Custom built peninsula display tank", "https://images.unsplash.com/photo-1582967788606-a171c1080cb0?w=800"},
}

// Run seeds the database with fixture and generated data.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		log.Println("Cleaning existing data...")
		if err := db.Exec("DELETE FROM tanks").Error; err != nil {
			return fmt.Errorf("cleaning tanks: %w", err)
		}
		if err := db.Exec("DELETE FROM users").Error; err != nil {
			return fmt.Errorf("cleaning users: %w", err)
		}
	}

	owners := make([]*models.User, 0, len(fixtureUsers))
	for _, f := range fixtureUsers {
		user, err := upsertUser(db, f)
		if err != nil {
			return err
		}
		owners = append(owners, user)
	}
	log.Printf("Seeded %d fixture users", len(owners))

	for _, f := range fixtureTanks {
		tank := &models.Tank{
			Name:        f.name,
			Size:        f.size,
			Type:        models.TankTypeReef,
			Description: f.description,
			ImageURL:    f.imageURL,
			UserID:      owners[f.owner].ID,
		}
		if err := db.Create(tank).Error; err != nil {
			return fmt.Errorf("seeding tank %q: %w", f.name, err)
		}
	}
	log.Printf("Seeded %d fixture tanks", len(fixtureTanks))

	for i := 0; i < opts.NumUsers; i++ {
		user, err := generatedUser(db)
		if err != nil {
			return err
		}
		for j := 0; j < gofakeit.Number(0, 3); j++ {
			if err := generatedTank(db, user); err != nil {
				return err
			}
		}
	}
	if opts.NumUsers > 0 {
		log.Printf("Seeded %d generated users", opts.NumUsers)
	}

	return nil
}

// upsertUser makes reruns of the seeder idempotent for the fixtures.
func upsertUser(db *gorm.DB, f fixtureUser) (*models.User, error) {
	var existing models.User
	err := db.Where("email = ?", f.email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("looking up seed user %q: %w", f.email, err)
	}

	username := f.username
	user := &models.User{
		Auth0ID:          f.auth0ID,
		Email:            f.email,
		Username:         &username,
		FirstName:        f.firstName,
		LastName:         f.lastName,
		Bio:              f.bio,
		Location:         f.location,
		AvatarURL:        f.avatarURL,
		EmailVerified:    true,
		SubscriptionTier: models.SubscriptionTierFree,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seeding user %q: %w", f.email, err)
	}
	return user, nil
}

func generatedUser(db *gorm.DB) (*models.User, error) {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	username := strings.ToLower(first) + gofakeit.DigitN(3)
	email := gofakeit.Email()

	user := &models.User{
		Auth0ID:       "auth0|" + gofakeit.UUID(),
		Email:         email,
		Username:      &username,
		FirstName:     first,
		LastName:      last,
		Bio:           gofakeit.Sentence(8),
		Location:      gofakeit.City() + ", " + gofakeit.StateAbr(),
		AvatarURL:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		EmailVerified: gofakeit.Bool(),
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seeding generated user: %w", err)
	}
	return user, nil
}

var tankTypes = []string{
	models.TankTypeReef,
	models.TankTypeFowlr,
	models.TankTypeFreshwater,
	models.TankTypeBrackish,
}

var tankSizes = []int{10, 20, 25, 40, 55, 75, 90, 120, 150, 180, 200, 250}

func generatedTank(db *gorm.DB, owner *models.User) error {
	tank := &models.Tank{
		Name:        gofakeit.AdjectiveDescriptive() + " " + gofakeit.AnimalType() + " tank",
		Size:        tankSizes[gofakeit.Number(0, len(tankSizes)-1)],
		Type:        tankTypes[gofakeit.Number(0, len(tankTypes)-1)],
		Description: gofakeit.Sentence(10),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		UserID:      owner.ID,
	}
	if err := db.Create(tank).Error; err != nil {
		return fmt.Errorf("seeding generated tank: %w", err)
	}
	return nil
}
