// Package server contains the HTTP surface of the application: route table,
// handlers and the dependency-injected Server itself.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/scottj1426/reef-for-all/internal/auth"
	"github.com/scottj1426/reef-for-all/internal/cache"
	"github.com/scottj1426/reef-for-all/internal/config"
	"github.com/scottj1426/reef-for-all/internal/database"
	"github.com/scottj1426/reef-for-all/internal/middleware"
	"github.com/scottj1426/reef-for-all/internal/models"
	"github.com/scottj1426/reef-for-all/internal/repository"
	"github.com/scottj1426/reef-for-all/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	verifier       auth.Verifier
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	tankRepo       repository.TankRepository
	userService    *service.UserService
	tankService    *service.TankService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	verifier := auth.NewJWKSVerifier(cfg.Auth0Domain, cfg.Auth0Audience)

	return NewServerWithDeps(cfg, db, redisClient, verifier)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and a stub verifier.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, verifier auth.Verifier) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	tankRepo := repository.NewTankRepository(db)

	prom := middleware.InitMetrics("reef-for-all-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		verifier:       verifier,
		promMiddleware: prom,
		userRepo:       userRepo,
		tankRepo:       tankRepo,
		userService:    service.NewUserService(userRepo),
		tankService:    service.NewTankService(tankRepo),
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for log correlation
	app.Use(requestid.New())

	// Propagate request ID and verified subject into the request context
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:5174,http://localhost:4000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	checkJWT := middleware.CheckJWT(s.verifier)
	requireAuth := middleware.RequireSubject()

	// User routes
	users := api.Group("/users")
	users.Get("/", s.GetAllUsers)
	users.Post("/sync", checkJWT, requireAuth, s.SyncUser)
	users.Get("/me", checkJWT, requireAuth, s.GetMyProfile)
	users.Put("/me", checkJWT, requireAuth, s.UpdateMyProfile)

	// Tank routes: reads are public, mutations require a verified identity
	tanks := api.Group("/tanks")
	tanks.Get("/", s.GetAllTanks)
	tanks.Get("/user/:userId", s.GetTanksByUser)
	tanks.Get("/:id", s.GetTankByID)
	tanks.Post("/", checkJWT, requireAuth, s.CreateTank)
	tanks.Put("/:id", checkJWT, requireAuth, s.UpdateTank)
	tanks.Delete("/:id", checkJWT, requireAuth, s.DeleteTank)

	// Dashboard frontend; registered last so API routes win
	if s.config.WebDir != "" {
		app.Static("/", s.config.WebDir)
	}
}

// HealthCheck handles GET /health
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck reports dependency health for orchestration probes.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The app runs without a cache; report it but stay ready.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NewApp builds the Fiber app with the central error formatter attached.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Reef For All API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return models.RespondWithError(c, fiberErr.Code, err)
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
				"error", err.Error())
			return models.RespondWithError(c, models.ErrorStatus(err), err)
		},
	})
	s.app = app
	return app
}

// Start starts the server
func (s *Server) Start() error {
	app := s.NewApp()
	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
