// Command seed populates the development database with demo hobbyists and
// tanks.
package main

import (
	"flag"
	"log"

	"github.com/scottj1426/reef-for-all/internal/config"
	"github.com/scottj1426/reef-for-all/internal/database"
	"github.com/scottj1426/reef-for-all/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "number of generated users in addition to the fixtures")
	clean := flag.Bool("clean", false, "delete existing users and tanks first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:    *numUsers,
		ShouldClean: *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
