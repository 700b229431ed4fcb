package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vasapolrittideah/loginflow/services/auth-service/internal/config"
	"github.com/vasapolrittideah/loginflow/services/auth-service/internal/handler"
	"github.com/vasapolrittideah/loginflow/services/auth-service/internal/repository"
	"github.com/vasapolrittideah/loginflow/services/auth-service/internal/usecase"
	"github.com/vasapolrittideah/loginflow/shared/auth"
	"github.com/vasapolrittideah/loginflow/shared/discovery"
	"github.com/vasapolrittideah/loginflow/shared/logger"
	"github.com/vasapolrittideah/loginflow/shared/mongodb"
	"github.com/vasapolrittideah/loginflow/shared/server"
	"github.com/vasapolrittideah/loginflow/shared/validate"
)

const serviceName = "auth-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(serviceName, "info").Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(serviceName, cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	validator, err := validate.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	authUsecase := usecase.NewAuthUsecase(
		log,
		repository.NewUserMongoRepository(ctx, log, db),
		auth.NewJWTAuthenticator(cfg.Token.Audience, cfg.Token.Issuer, cfg.Token.Secret),
		validator,
		cfg.Token.ExpiresIn,
	)

	srv := server.New(cfg.Server, handler.NewRouter(handler.NewAccountHandler(log, authUsecase)))

	deregister, err := discovery.RegisterService(log, cfg.Consul, serviceName, cfg.Server.Port)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register with consul")
	}
	defer deregister()

	if err := server.Run(ctx, log, cfg.Server, srv); err != nil {
		log.Error().Err(err).Msg("http server stopped")
	}
}
