package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier returns a fixed subject or error without touching the network.
type stubVerifier struct {
	subject string
	err     error
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (string, error) {
	return v.subject, v.err
}

func TestCheckJWT(t *testing.T) {
	newApp := func(v *stubVerifier) *fiber.App {
		app := fiber.New()
		app.Get("/protected", CheckJWT(v), func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"subject": Subject(c)})
		})
		return app
	}

	tests := []struct {
		name           string
		authHeader     string
		verifier       *stubVerifier
		expectedStatus int
	}{
		{
			name:           "happy path",
			authHeader:     "Bearer good-token",
			verifier:       &stubVerifier{subject: "auth0|user123"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			authHeader:     "",
			verifier:       &stubVerifier{subject: "auth0|user123"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			verifier:       &stubVerifier{subject: "auth0|user123"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing token after scheme",
			authHeader:     "Bearer",
			verifier:       &stubVerifier{subject: "auth0|user123"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "verifier rejects token",
			authHeader:     "Bearer expired-token",
			verifier:       &stubVerifier{err: errors.New("token is expired")},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(tt.verifier)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestCheckJWT_AttachesSubject(t *testing.T) {
	app := fiber.New()
	var gotLocal, gotCtx string
	app.Get("/protected", CheckJWT(&stubVerifier{subject: "auth0|abc"}), func(c *fiber.Ctx) error {
		gotLocal = Subject(c)
		gotCtx, _ = c.UserContext().Value(SubjectKey).(string)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "auth0|abc", gotLocal)
	assert.Equal(t, "auth0|abc", gotCtx, "subject propagates into the request context for logging")
}

func TestRequireSubject(t *testing.T) {
	t.Run("rejects when no subject was attached", func(t *testing.T) {
		app := fiber.New()
		app.Get("/guarded", RequireSubject(), func(c *fiber.Ctx) error {
			return c.SendStatus(http.StatusOK)
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("passes when an upstream middleware attached one", func(t *testing.T) {
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("auth0ID", "auth0|abc")
			return c.Next()
		})
		app.Get("/guarded", RequireSubject(), func(c *fiber.Ctx) error {
			return c.SendStatus(http.StatusOK)
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
