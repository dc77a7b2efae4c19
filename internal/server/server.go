// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"clipmark/internal/bootstrap"
	"clipmark/internal/cache"
	"clipmark/internal/config"
	"clipmark/internal/featureflags"
	"clipmark/internal/middleware"
	"clipmark/internal/models"
	"clipmark/internal/repository"
	"clipmark/internal/service"
	"clipmark/internal/storage"
	"clipmark/internal/tokens"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
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
	promMiddleware *fiberprometheus.FiberPrometheus
	issuer         *tokens.Issuer
	store          storage.Store
	flags          *featureflags.Manager

	accounts     *service.AccountService
	registration *service.RegistrationService
	onboarding   *service.OnboardingService
	clips        *service.ClipService
	clippers     *service.ClipperService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewDiskStore(cfg.StorageDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("storage initialization failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, store)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis first.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.Store) (*Server, error) {
	identityRepo := repository.NewIdentityRepository(db)
	creatorRepo := repository.NewCreatorRepository(db)
	clipperRepo := repository.NewClipperRepository(db)
	clipRepo := repository.NewClipRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	guidelineRepo := repository.NewGuidelineRepository(db)

	issuer := tokens.NewIssuer(cfg.JWTSecret)
	identities := service.NewIdentityService(identityRepo, issuer)
	registration := service.NewRegistrationService(identities, creatorRepo, clipperRepo)
	accounts := service.NewAccountService(identities, creatorRepo, clipperRepo, store)
	verifier := service.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleSecret, cfg.GoogleRedirectURI)
	onboarding := service.NewOnboardingService(
		verifier, identities, creatorRepo, clipperRepo, registration,
		cache.NewOnboardingStore(redisClient))
	clips := service.NewClipService(clipRepo, creatorRepo, clipperRepo, store)
	clippers := service.NewClipperService(clipperRepo, portfolioRepo, guidelineRepo, store)

	prom := middleware.InitMetrics("clipmark-api")

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		issuer:         issuer,
		store:          store,
		flags:          featureflags.NewManager(cfg.FeatureFlags),
		accounts:       accounts,
		registration:   registration,
		onboarding:     onboarding,
		clips:          clips,
		clippers:       clippers,
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Distributed tracing spans per request
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded media is served straight from the disk store.
	if disk, ok := s.store.(*storage.DiskStore); ok {
		app.Static("/media", disk.Root())
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register/creator", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.RegisterCreator)
	auth.Post("/register/clipper", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.RegisterClipper)
	auth.Post("/login/creator", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.LoginCreator)
	auth.Post("/login/clipper", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.LoginClipper)

	// Google OAuth onboarding, ships enabled but can be switched off via flag
	if s.flags.EnabledOrDefault("google_auth", "", true) {
		google := auth.Group("/google")
		google.Get("/url", s.GoogleAuthURL)
		google.Post("/", middleware.RateLimit(
			s.redis, 10, 5*time.Minute, "google_login"), s.GoogleLogin)
		google.Post("/callback", s.GoogleCallback)
		google.Post("/onboarding/role", s.SelectOnboardingRole)
		google.Post("/onboarding/complete", s.CompleteOnboarding)
		google.Get("/onboarding/status", s.OnboardingStatus)
	}

	// Authenticated account routes
	me := auth.Group("/me", s.AuthRequired())
	me.Get("/", s.GetMyAccount)
	me.Patch("/", s.UpdateMyAccount)
	me.Delete("/", s.DeleteMyAccount)
	me.Post("/image", s.UploadProfileImage)
	me.Delete("/image", s.DeleteProfileImage)
	auth.Patch("/password", s.AuthRequired(), s.ChangePassword)

	// Public clipper directory
	clippers := api.Group("/clippers")
	clippers.Get("/", s.ListClippers)

	// Protected clipper self-service, registered before the generic /:id.
	self := clippers.Group("/me", s.AuthRequired())
	self.Patch("/", s.UpdateMyAccount)
	self.Post("/image", s.UploadProfileImage)
	self.Delete("/image", s.DeleteProfileImage)
	self.Get("/portfolio", s.ListMyPortfolio)
	self.Post("/portfolio", s.AddPortfolioImage)
	self.Delete("/portfolio/:imageId", s.DeletePortfolioImage)
	self.Get("/guidelines", s.ListMyGuidelines)
	self.Post("/guidelines", s.AddGuideline)
	self.Patch("/guidelines/:id", s.UpdateGuideline)
	self.Delete("/guidelines/:id", s.DeleteGuideline)

	clippers.Get("/:id/guidelines", s.GetClipperGuidelines)
	clippers.Get("/:id", s.GetClipper)

	// Evaluated feature flags for the requesting user
	api.Get("/flags", s.GetFeatureFlags)

	// Clip submission workflow
	clips := api.Group("/clips", s.AuthRequired())
	clips.Post("/submit", middleware.RateLimit(
		s.redis, 10, time.Minute, "submit_clip"), s.SubmitClip)
	clips.Patch("/status", s.UpdateClipStatus)
	clips.Get("/creator", s.ListCreatorClips)
	clips.Get("/clipper", s.ListClipperClips)
	clips.Get("/:id", s.GetClip)
}

// GetFeatureFlags returns the evaluated feature flags for the requesting
// user. Anonymous requests see the zero-user evaluation.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return models.Respond(c, fiber.StatusOK, s.flags.Snapshot(userID(c)), "")
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
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
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It validates the Bearer
// access token and stores the identity id in locals and the request context.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Authorization required"))
		}

		identityID, err := s.issuer.Parse(tokenString)
		if err != nil {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		c.Locals("userID", identityID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, identityID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Clipmark API",
		BodyLimit: 110 * 1024 * 1024, // clip uploads go up to 100MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})
	s.app = app

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
