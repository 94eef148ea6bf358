// Package middleware provides authentication, logging and metrics middleware.
package middleware

import (
	"context"
	"strings"

	"github.com/scottj1426/reef-for-all/internal/auth"
	"github.com/scottj1426/reef-for-all/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CheckJWT returns middleware that extracts the bearer token, verifies it
// through the provider-delegated verifier and attaches the verified subject
// to the request under the "auth0ID" local.
func CheckJWT(verifier auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization header required"))
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}

		subject, err := verifier.Verify(c.Context(), parts[1])
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		// Store verified subject in context
		c.Locals("auth0ID", subject)
		ctx := context.WithValue(c.UserContext(), SubjectKey, subject)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// RequireSubject re-checks that a verified subject was attached upstream.
// It guards against route misconfiguration where CheckJWT was not mounted.
func RequireSubject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub, ok := c.Locals("auth0ID").(string)
		if !ok || sub == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unauthorized"))
		}
		return c.Next()
	}
}

// Subject returns the verified identity subject attached by CheckJWT.
func Subject(c *fiber.Ctx) string {
	sub, _ := c.Locals("auth0ID").(string)
	return sub
}
