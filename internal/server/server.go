// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vitrine/internal/adapter"
	"vitrine/internal/cache"
	"vitrine/internal/config"
	"vitrine/internal/database"
	"vitrine/internal/featureflags"
	"vitrine/internal/middleware"
	"vitrine/internal/models"
	"vitrine/internal/repository"
	"vitrine/internal/service"
	"vitrine/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SessionTokenHeader is the header carrying the opaque session token.
const SessionTokenHeader = "x-session-token"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       *session.Store
	featureFlags   *featureflags.Manager

	userRepo     repository.UserRepository
	feedRepo     repository.FeedRepository
	chatRepo     repository.ChatRepository
	settingsRepo repository.SettingsRepository

	userService     *service.UserService
	feedService     *service.FeedService
	chatService     *service.ChatService
	checkoutService *service.CheckoutService
	settingsService *service.SettingsService
	mediaService    *service.MediaService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()
	if redisClient == nil {
		return nil, errors.New("redis connection failed")
	}

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("vitrine-api"),
		sessions:       session.NewStore(redisClient, cfg.SessionTTL()),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		userRepo:       repository.NewUserRepository(db),
		feedRepo:       repository.NewFeedRepository(db),
		chatRepo:       repository.NewChatRepository(db),
		settingsRepo:   repository.NewSettingsRepository(db),
	}

	completion := adapter.NewCompletionClient(cfg.IABaseURL, cfg.IAModel, cfg.IAMaxTokens)
	bestfy := adapter.NewBestfyClient(cfg.BestfyBaseURL)

	server.userService = service.NewUserService(server.userRepo, server.sessions)
	server.feedService = service.NewFeedService(server.feedRepo)
	server.chatService = service.NewChatService(server.chatRepo, server.settingsRepo, completion)
	server.checkoutService = service.NewCheckoutService(server.settingsRepo, cfg, bestfy)
	server.settingsService = service.NewSettingsService(server.settingsRepo)
	server.mediaService = service.NewMediaService(cfg)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Distributed tracing (after requestid so the span picks it up)
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + SessionTokenHeader,
		AllowCredentials: true,
		MaxAge:           86400,
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
	app.Get("/health", s.HealthCheck)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Vitrine Backend Metrics Dashboard",
	}))

	// Uploaded feed media
	app.Static("/uploads", s.config.UploadDir)

	// Public routes
	api.Get("/settings", s.GetSettings)
	api.Post("/create-user", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "create_user"), s.CreateUser)
	api.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	api.Get("/feed", s.GetFeed)

	// Checkout is reachable before an account exists.
	api.Post("/pix/create", middleware.RateLimit(
		s.redis, 10, time.Minute, "pix"), s.CreatePixSimulado)
	api.Post("/pix/bestfy", middleware.RateLimit(
		s.redis, 10, time.Minute, "pix_bestfy"), s.CreatePixBestfy)

	// Protected routes
	protected := api.Group("", s.SessionRequired())

	protected.Post("/settings", s.UpdateSettings)
	protected.Get("/list-users", s.ListUsers)
	protected.Post("/edit-user/:email", s.EditUser)
	protected.Post("/logout", s.Logout)

	protected.Post("/feed", s.CreatePost)
	protected.Post("/feed/:id/comment", s.AddComment)
	protected.Delete("/feed/:id", s.DeletePost)

	// Specific /chat/list route before generic /chat/:user
	protected.Post("/chat", middleware.RateLimit(
		s.redis, 30, time.Minute, "chat"), s.SendChatMessage)
	protected.Get("/chat/list", s.GetChatList)
	protected.Post("/chat/ia", middleware.RateLimit(
		s.redis, 10, time.Minute, "chat_ia"), s.AIChatReply)
	protected.Get("/chat/:user", s.GetChatHistory)
}

// HealthCheck handles GET /health
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
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
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
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

// SessionRequired returns middleware that resolves the session token header
// into an authenticated identity. Touching the session's last activity is
// best-effort; a failed touch never blocks the request.
func (s *Server) SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(SessionTokenHeader)
		if token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("session not found"))
		}

		sess, err := s.sessions.Resolve(c.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("invalid session"))
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}

		if touchErr := s.sessions.Touch(c.Context(), token); touchErr != nil {
			slog.WarnContext(c.UserContext(), "session touch failed", "error", touchErr)
		}

		user, err := s.userRepo.GetByID(c.Context(), sess.UserID)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("invalid session"))
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}

		c.Locals("userID", user.ID)
		c.Locals("user", user)
		c.Locals("sessionToken", token)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Vitrine API",
		BodyLimit: s.config.UploadMaxSizeMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	slog.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			slog.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			slog.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			slog.Error("error closing redis", "error", rerr)
		}
	}

	slog.Info("server shutdown complete")
	return nil
}
