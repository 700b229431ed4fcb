package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vasapolrittideah/loginflow/services/profile-service/internal/config"
	"github.com/vasapolrittideah/loginflow/services/profile-service/internal/handler"
	"github.com/vasapolrittideah/loginflow/services/profile-service/internal/repository"
	"github.com/vasapolrittideah/loginflow/services/profile-service/internal/usecase"
	"github.com/vasapolrittideah/loginflow/services/profile-service/internal/verifier"
	"github.com/vasapolrittideah/loginflow/shared/auth"
	"github.com/vasapolrittideah/loginflow/shared/discovery"
	"github.com/vasapolrittideah/loginflow/shared/logger"
	"github.com/vasapolrittideah/loginflow/shared/mailer"
	"github.com/vasapolrittideah/loginflow/shared/middleware"
	"github.com/vasapolrittideah/loginflow/shared/mongodb"
	"github.com/vasapolrittideah/loginflow/shared/provider"
	"github.com/vasapolrittideah/loginflow/shared/server"
)

const serviceName = "profile-service"

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

	var tokenVerifier middleware.TokenVerifier
	switch cfg.TokenBackend {
	case config.TokenBackendFirebase:
		opts := []provider.FirebaseOption{}
		if cfg.FirebaseEndpoint != "" {
			opts = append(opts, provider.WithFirebaseEndpoint(cfg.FirebaseEndpoint))
		}
		firebase, err := provider.NewFirebaseClient(ctx, cfg.FirebaseAPIKey, opts...)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create firebase client")
		}
		tokenVerifier = verifier.NewFirebaseVerifier(firebase)
	default:
		tokenVerifier = verifier.NewJWTVerifier(auth.NewJWTAuthenticator(cfg.JWTAudience, cfg.JWTIssuer, cfg.JWTSecret))
	}

	var notifier usecase.WelcomeNotifier
	if cfg.Mailer.Enabled() {
		m, err := mailer.NewMailer(cfg.Mailer)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create mailer")
		}
		notifier = usecase.NewMailWelcomeNotifier(m, cfg.WelcomeSubject)
	}

	profileUsecase := usecase.NewProfileUsecase(
		log,
		repository.NewProfileMongoRepository(ctx, log, db),
		map[string]any{"plan": cfg.DefaultPlan},
		notifier,
	)

	srv := server.New(cfg.Server, handler.NewRouter(handler.NewProfileHandler(log, profileUsecase), tokenVerifier))

	deregister, err := discovery.RegisterService(log, cfg.Consul, serviceName, cfg.Server.Port)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register with consul")
	}
	defer deregister()

	if err := server.Run(ctx, log, cfg.Server, srv); err != nil {
		log.Error().Err(err).Msg("http server stopped")
	}
}
