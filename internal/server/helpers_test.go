package server

import (
	"context"

	"github.com/scottj1426/reef-for-all/internal/models"
	"github.com/scottj1426/reef-for-all/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a testify mock of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error) {
	args := m.Called(ctx, auth0ID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockTankRepository is a testify mock of repository.TankRepository.
type MockTankRepository struct {
	mock.Mock
}

func (m *MockTankRepository) Create(ctx context.Context, tank *models.Tank) error {
	args := m.Called(ctx, tank)
	return args.Error(0)
}

func (m *MockTankRepository) GetByID(ctx context.Context, id string) (*models.Tank, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tank), args.Error(1)
}

func (m *MockTankRepository) ListAll(ctx context.Context) ([]models.Tank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tank), args.Error(1)
}

func (m *MockTankRepository) ListByUser(ctx context.Context, userID string) ([]models.Tank, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tank), args.Error(1)
}

func (m *MockTankRepository) Update(ctx context.Context, tank *models.Tank) error {
	args := m.Called(ctx, tank)
	return args.Error(0)
}

func (m *MockTankRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// newUserTestServer wires a Server around a mocked user repository.
func newUserTestServer(repo *MockUserRepository) *Server {
	return &Server{
		userRepo:    repo,
		userService: service.NewUserService(repo),
	}
}

// newTankTestServer wires a Server around a mocked tank repository.
func newTankTestServer(repo *MockTankRepository) *Server {
	return &Server{
		tankRepo:    repo,
		tankService: service.NewTankService(repo),
	}
}

// withSubject simulates the auth middleware having verified a token.
func withSubject(subject string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("auth0ID", subject)
		return c.Next()
	}
}
