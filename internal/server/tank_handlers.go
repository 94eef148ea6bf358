package server

import (
	"github.com/scottj1426/reef-for-all/internal/models"
	"github.com/scottj1426/reef-for-all/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllTanks handles GET /api/tanks
func (s *Server) GetAllTanks(c *fiber.Ctx) error {
	tanks, err := s.tankService.ListAllTanks(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.ErrorStatus(err), err)
	}
	return c.JSON(tanks)
}

// GetTankByID handles GET /api/tanks/:id
func (s *Server) GetTankByID(c *fiber.Ctx) error {
	tank, err := s.tankService.GetTankByID(c.Context(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, models.ErrorStatus(err), err)
	}
	return c.JSON(tank)
}

// GetTanksByUser handles GET /api/tanks/user/:userId
func (s *Server) GetTanksByUser(c *fiber.Ctx) error {
	tanks, err := s.tankService.ListTanksByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return models.RespondWithError(c, models.ErrorStatus(err), err)
	}
	return c.JSON(tanks)
}

// CreateTank handles POST /api/tanks
func (s *Server) CreateTank(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Size        int    `json:"size"`
		Type        string `json:"type"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl"`
		UserID      string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" || req.Size <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name and size are required"))
	}
	if req.UserID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("userId is required"))
	}

	tank, err := s.tankService.CreateTank(c.Context(), service.CreateTankInput{
		Name:        req.Name,
		Size:        req.Size,
		Type:        req.Type,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		UserID:      req.UserID,
	})
	if err != nil {
		return models.RespondWithError(c, models.ErrorStatus(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(tank)
}

// UpdateTank handles PUT /api/tanks/:id. Ownership is checked against the
// userId supplied in the body, matching the behavior clients already rely on.
func (s *Server) UpdateTank(c *fiber.Ctx) error {
	var req struct {
		Name        *string `json:"name"`
		Size        *int    `json:"size"`
		Type        *string `json:"type"`
		Description *string `json:"description"`
		ImageURL    *string `json:"imageUrl"`
		UserID      string  `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tank, err := s.tankService.UpdateTank(c.Context(), c.Params("id"), req.UserID, service.UpdateTankInput{
		Name:        req.Name,
		Size:        req.Size,
		Type:        req.Type,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, models.ErrorStatus(err), err)
	}

	return c.JSON(tank)
}

// DeleteTank handles DELETE /api/tanks/:id
func (s *Server) DeleteTank(c *fiber.Ctx) error {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.tankService.DeleteTank(c.Context(), c.Params("id"), req.UserID); err != nil {
		return models.RespondWithError(c, models.ErrorStatus(err), err)
	}

	return c.JSON(fiber.Map{"message": "Tank deleted successfully"})
}
