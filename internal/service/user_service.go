// Package service implements the domain rules on top of the repositories.
package service

import (
	"context"

	"github.com/scottj1426/reef-for-all/internal/models"
	"github.com/scottj1426/reef-for-all/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SyncUserInput carries the provider profile delivered on sign-in. Optional
// fields are pointers: nil means "not sent", which leaves the stored value
// untouched on repeat syncs.
type SyncUserInput struct {
	Auth0ID       string
	Email         string
	FirstName     *string
	LastName      *string
	AvatarURL     *string
	EmailVerified *bool
}

// UpdateProfileInput is a partial profile edit; nil fields are unchanged.
type UpdateProfileInput struct {
	Username  *string
	FirstName *string
	LastName  *string
	Bio       *string
	Location  *string
	AvatarURL *string
}

// SyncUser upserts the user row keyed by the identity subject. The first sync
// creates the row; every later one refreshes the provider-owned fields.
func (s *UserService) SyncUser(ctx context.Context, in SyncUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByAuth0ID(ctx, in.Auth0ID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &models.User{
			Auth0ID: in.Auth0ID,
			Email:   in.Email,
		}
		if in.FirstName != nil {
			user.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			user.LastName = *in.LastName
		}
		if in.AvatarURL != nil {
			user.AvatarURL = *in.AvatarURL
		}
		if in.EmailVerified != nil {
			user.EmailVerified = *in.EmailVerified
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	user.Email = in.Email
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}
	if in.EmailVerified != nil {
		user.EmailVerified = *in.EmailVerified
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByAuth0ID returns the user for the identity subject.
func (s *UserService) GetUserByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error) {
	user, err := s.userRepo.GetByAuth0ID(ctx, auth0ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateProfile applies a partial edit to the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, auth0ID string, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUserByAuth0ID(ctx, auth0ID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		user.Username = in.Username
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns every user, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}
