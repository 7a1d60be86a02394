//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/sefazor/groupslot-backend/internal/config"
	"github.com/sefazor/groupslot-backend/internal/controller"
	"github.com/sefazor/groupslot-backend/internal/handler"
	"github.com/sefazor/groupslot-backend/internal/repository"
	"github.com/sefazor/groupslot-backend/internal/service"
	"github.com/sefazor/groupslot-backend/pkg/bcrypt"
	"github.com/sefazor/groupslot-backend/pkg/email"
	"github.com/sefazor/groupslot-backend/pkg/jwt"
	"github.com/sefazor/groupslot-backend/pkg/utils"
)

func InitializeServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	wire.Build(
		provideDatabase,

		// Repositories
		repository.NewTransactor,
		repository.NewUserRepository,
		repository.NewEventRepository,
		repository.NewAvailabilityRepository,
		wire.Bind(new(service.Transactor), new(*repository.Transactor)),
		wire.Bind(new(service.UserStore), new(*repository.UserRepository)),
		wire.Bind(new(service.EventStore), new(*repository.EventRepository)),
		wire.Bind(new(service.AvailabilityStore), new(*repository.AvailabilityRepository)),

		// Credentials and mail
		provideHasher,
		provideIssuer,
		provideEmailService,
		wire.Bind(new(service.PasswordHasher), new(*bcrypt.Hasher)),
		wire.Bind(new(service.TokenIssuer), new(*jwt.Issuer)),
		wire.Bind(new(service.ConfirmationSender), new(*email.EmailService)),

		// Services
		service.NewCascadeService,
		provideAuthService,
		provideUserService,
		provideEventService,
		service.NewAvailabilityService,

		// Controllers
		utils.NewValidator,
		provideAuthController,
		provideUserController,
		controller.NewEventController,
		controller.NewAvailabilityController,

		// Handlers
		provideSessionStore,
		provideTurnstile,
		handler.NewAuthHandler,
		handler.NewUserHandler,
		handler.NewEventHandler,
		handler.NewAvailabilityHandler,
		handler.NewRouter,

		provideFiberApp,
		providePurger,
		newServer,
	)
	return nil, nil
}
