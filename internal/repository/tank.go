package repository

import (
	"context"
	"errors"

	"github.com/scottj1426/reef-for-all/internal/cache"
	"github.com/scottj1426/reef-for-all/internal/models"

	"gorm.io/gorm"
)

// TankRepository defines persistence operations for tanks.
type TankRepository interface {
	Create(ctx context.Context, tank *models.Tank) error
	GetByID(ctx context.Context, id string) (*models.Tank, error)
	ListAll(ctx context.Context) ([]models.Tank, error)
	ListByUser(ctx context.Context, userID string) ([]models.Tank, error)
	Update(ctx context.Context, tank *models.Tank) error
	Delete(ctx context.Context, id string) error
}

type tankRepository struct {
	db *gorm.DB
}

// NewTankRepository returns a new TankRepository implementation.
func NewTankRepository(db *gorm.DB) TankRepository {
	return &tankRepository{db: db}
}

// withOwner narrows the preloaded owner row to the public projection fields.
func withOwner(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "first_name", "last_name", "avatar_url")
}

func (r *tankRepository) Create(ctx context.Context, tank *models.Tank) error {
	if err := r.db.WithContext(ctx).Create(tank).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tankRepository) GetByID(ctx context.Context, id string) (*models.Tank, error) {
	var tank models.Tank
	key := cache.TankKey(id)

	err := cache.Aside(ctx, key, &tank, cache.TankTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("User", withOwner).
			First(&tank, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Tank")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &tank, nil
}

func (r *tankRepository) ListAll(ctx context.Context) ([]models.Tank, error) {
	var tanks []models.Tank
	if err := r.db.WithContext(ctx).
		Preload("User", withOwner).
		Order("created_at DESC").
		Find(&tanks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tanks, nil
}

// ListByUser returns the owner's tanks without the owner projection; the
// per-owner listing has never embedded it.
func (r *tankRepository) ListByUser(ctx context.Context, userID string) ([]models.Tank, error) {
	var tanks []models.Tank
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tanks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tanks, nil
}

func (r *tankRepository) Update(ctx context.Context, tank *models.Tank) error {
	// Detach the owner projection so Save only touches the tanks table.
	owner := tank.User
	tank.User = nil
	err := r.db.WithContext(ctx).Save(tank).Error
	tank.User = owner
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTank(ctx, tank.ID)
	return nil
}

func (r *tankRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Tank{}, "id = ?", id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTank(ctx, id)
	return nil
}
