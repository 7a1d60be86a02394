package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sefazor/groupslot-backend/internal/config"
	"github.com/sefazor/groupslot-backend/internal/controller"
	"github.com/sefazor/groupslot-backend/internal/handler"
	"github.com/sefazor/groupslot-backend/internal/middleware"
	"github.com/sefazor/groupslot-backend/internal/repository"
	"github.com/sefazor/groupslot-backend/internal/service"
	"github.com/sefazor/groupslot-backend/internal/worker"
	"github.com/sefazor/groupslot-backend/pkg/bcrypt"
	"github.com/sefazor/groupslot-backend/pkg/captcha"
	"github.com/sefazor/groupslot-backend/pkg/database"
	"github.com/sefazor/groupslot-backend/pkg/email"
	"github.com/sefazor/groupslot-backend/pkg/jwt"
	"github.com/sefazor/groupslot-backend/pkg/qrcode"
	"github.com/sefazor/groupslot-backend/pkg/utils"
)

// Server bundles what main starts and stops.
type Server struct {
	App    *fiber.App
	Purger *worker.Purger
	DB     *gorm.DB
}

func newServer(app *fiber.App, purger *worker.Purger, db *gorm.DB) *Server {
	return &Server{App: app, Purger: purger, DB: db}
}

func provideDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewDatabase(cfg.DatabaseURL, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func provideHasher(cfg *config.Config) *bcrypt.Hasher {
	return bcrypt.NewHasher(cfg.Auth.BcryptCost)
}

func provideIssuer(cfg *config.Config) *jwt.Issuer {
	return jwt.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, cfg.Auth.SessionTTLPersistent)
}

// provideEmailService falls back to logging the mail when Resend is not configured.
func provideEmailService(cfg *config.Config, logger *zap.Logger) *email.EmailService {
	var sender email.Sender
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	} else {
		logger.Warn("RESEND_API_KEY not set, confirmation emails are only logged")
		sender = email.NewLogSender(logger)
	}
	return email.NewEmailService(sender, logger)
}

func provideAuthService(
	cfg *config.Config,
	users service.UserStore,
	cascade *service.CascadeService,
	hasher service.PasswordHasher,
	tokens service.TokenIssuer,
	mailer service.ConfirmationSender,
	logger *zap.Logger,
) *service.AuthService {
	return service.NewAuthService(
		users,
		cascade,
		hasher,
		tokens,
		mailer,
		service.NewCodeGenerator(cfg.Codes.UserCodeLength, cfg.Codes.MaxAttempts),
		service.AuthSettings{
			UnconfirmedUserTTL:  cfg.UnconfirmedUserTTL,
			ConfirmationBaseURL: cfg.Email.ConfirmationBaseURL,
		},
		logger,
	)
}

func provideUserService(
	cfg *config.Config,
	tx service.Transactor,
	users service.UserStore,
	events service.EventStore,
	avails service.AvailabilityStore,
	cascade *service.CascadeService,
	hasher service.PasswordHasher,
	logger *zap.Logger,
) *service.UserService {
	return service.NewUserService(
		tx,
		users,
		events,
		avails,
		cascade,
		hasher,
		service.NewCodeGenerator(cfg.Codes.UserCodeLength, cfg.Codes.MaxAttempts),
		qrcode.NewQRService(cfg.FriendBaseURL, cfg.QRSize),
		cfg.FollowMode,
		logger,
	)
}

func provideEventService(
	cfg *config.Config,
	tx service.Transactor,
	events service.EventStore,
	cascade *service.CascadeService,
	logger *zap.Logger,
) *service.EventService {
	return service.NewEventService(
		tx,
		events,
		cascade,
		service.NewCodeGenerator(cfg.Codes.EventCodeLength, cfg.Codes.MaxAttempts),
		qrcode.NewQRService(cfg.JoinBaseURL, cfg.QRSize),
		logger,
	)
}

func provideAuthController(cfg *config.Config, authService *service.AuthService, validator *utils.Validator) *controller.AuthController {
	return controller.NewAuthController(authService, validator, cfg.Auth.MinPasswordLength)
}

func provideUserController(cfg *config.Config, userService *service.UserService, validator *utils.Validator) *controller.UserController {
	return controller.NewUserController(userService, validator, cfg.Auth.MinPasswordLength)
}

func provideSessionStore(cfg *config.Config) *session.Store {
	return session.New(session.Config{
		Expiration:     cfg.Auth.SessionTTL,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

func provideTurnstile(cfg *config.Config) *captcha.Turnstile {
	return captcha.NewTurnstile(cfg.TurnstileSecret, "")
}

func providePurger(cfg *config.Config, users *repository.UserRepository, cascade *service.CascadeService, logger *zap.Logger) *worker.Purger {
	return worker.NewPurger(users, cascade, cfg.PurgeInterval, logger)
}

func provideFiberApp(
	cfg *config.Config,
	logger *zap.Logger,
	router *handler.Router,
	sessions *session.Store,
	tokens *jwt.Issuer,
	users *repository.UserRepository,
	turnstile *captcha.Turnstile,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "groupslot-backend",
		Immutable:    true,
		ErrorHandler: handler.ErrorHandler(logger),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "time": time.Now().UTC()})
	})

	router.Register(app.Group("/api"),
		middleware.AuthMiddleware(sessions, tokens, users),
		middleware.CaptchaMiddleware(turnstile),
	)
	return app
}
