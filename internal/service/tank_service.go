package service

import (
	"context"

	"github.com/scottj1426/reef-for-all/internal/models"
	"github.com/scottj1426/reef-for-all/internal/repository"
)

type TankService struct {
	tankRepo repository.TankRepository
}

func NewTankService(tankRepo repository.TankRepository) *TankService {
	return &TankService{tankRepo: tankRepo}
}

type CreateTankInput struct {
	Name        string
	Size        int
	Type        string
	Description string
	ImageURL    string
	UserID      string
}

// UpdateTankInput is a partial tank edit; nil fields are unchanged.
type UpdateTankInput struct {
	Name        *string
	Size        *int
	Type        *string
	Description *string
	ImageURL    *string
}

// CreateTank inserts a tank and returns it with the owner projection attached.
// Name and size presence is enforced at the handler layer.
func (s *TankService) CreateTank(ctx context.Context, in CreateTankInput) (*models.Tank, error) {
	tankType := in.Type
	if tankType == "" {
		tankType = models.TankTypeReef
	}
	if !models.ValidTankType(tankType) {
		return nil, models.NewValidationError("Invalid tank type")
	}

	tank := &models.Tank{
		Name:        in.Name,
		Size:        in.Size,
		Type:        tankType,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		UserID:      in.UserID,
	}
	if err := s.tankRepo.Create(ctx, tank); err != nil {
		return nil, err
	}

	// Re-read to pick up the owner projection.
	return s.tankRepo.GetByID(ctx, tank.ID)
}

// ListAllTanks returns every tank with its owner projection, newest first.
func (s *TankService) ListAllTanks(ctx context.Context) ([]models.Tank, error) {
	return s.tankRepo.ListAll(ctx)
}

// GetTankByID returns one tank with its owner projection.
func (s *TankService) GetTankByID(ctx context.Context, id string) (*models.Tank, error) {
	return s.tankRepo.GetByID(ctx, id)
}

// ListTanksByUser returns the owner's tanks, newest first, without the owner
// projection.
func (s *TankService) ListTanksByUser(ctx context.Context, userID string) ([]models.Tank, error) {
	return s.tankRepo.ListByUser(ctx, userID)
}

// UpdateTank applies a partial edit after verifying the tank belongs to the
// caller-supplied owner id.
func (s *TankService) UpdateTank(ctx context.Context, id, callerUserID string, in UpdateTankInput) (*models.Tank, error) {
	tank, err := s.tankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tank.UserID != callerUserID {
		return nil, models.NewForbiddenError("Unauthorized to update this tank")
	}

	if in.Name != nil {
		tank.Name = *in.Name
	}
	if in.Size != nil {
		if *in.Size <= 0 {
			return nil, models.NewValidationError("Size must be a positive number")
		}
		tank.Size = *in.Size
	}
	if in.Type != nil {
		if !models.ValidTankType(*in.Type) {
			return nil, models.NewValidationError("Invalid tank type")
		}
		tank.Type = *in.Type
	}
	if in.Description != nil {
		tank.Description = *in.Description
	}
	if in.ImageURL != nil {
		tank.ImageURL = *in.ImageURL
	}

	if err := s.tankRepo.Update(ctx, tank); err != nil {
		return nil, err
	}

	return s.tankRepo.GetByID(ctx, id)
}

// DeleteTank removes a tank after the same existence and ownership checks as
// UpdateTank.
func (s *TankService) DeleteTank(ctx context.Context, id, callerUserID string) error {
	tank, err := s.tankRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tank.UserID != callerUserID {
		return models.NewForbiddenError("Unauthorized to delete this tank")
	}

	return s.tankRepo.Delete(ctx, id)
}
