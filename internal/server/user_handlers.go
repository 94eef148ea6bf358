package server

import (
	"github.com/scottj1426/reef-for-all/internal/middleware"
	"github.com/scottj1426/reef-for-all/internal/models"
	"github.com/scottj1426/reef-for-all/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.ErrorStatus(err), err)
	}
	return c.JSON(users)
}

// SyncUser handles POST /api/users/sync. Called by the frontend after every
// successful sign-in with the provider profile payload.
func (s *Server) SyncUser(c *fiber.Ctx) error {
	auth0ID := middleware.Subject(c)

	var req struct {
		Email         string  `json:"email"`
		FirstName     *string `json:"firstName"`
		LastName      *string `json:"lastName"`
		Picture       *string `json:"picture"`
		EmailVerified *bool   `json:"email_verified"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}

	user, err := s.userService.SyncUser(c.Context(), service.SyncUserInput{
		Auth0ID:       auth0ID,
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		AvatarURL:     req.Picture,
		EmailVerified: req.EmailVerified,
	})
	if err != nil {
		return models.RespondWithError(c, models.ErrorStatus(err), err)
	}

	return c.JSON(user)
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	auth0ID := middleware.Subject(c)

	user, err := s.userService.GetUserByAuth0ID(c.Context(), auth0ID)
	if err != nil {
		return models.RespondWithError(c, models.ErrorStatus(err), err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	auth0ID := middleware.Subject(c)

	var req struct {
		Username  *string `json:"username"`
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Bio       *string `json:"bio"`
		Location  *string `json:"location"`
		AvatarURL *string `json:"avatarUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), auth0ID, service.UpdateProfileInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Location:  req.Location,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return models.RespondWithError(c, models.ErrorStatus(err), err)
	}

	return c.JSON(user)
}
