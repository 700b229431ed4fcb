package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/loginflow/services/login-service/internal/config"
	"github.com/vasapolrittideah/loginflow/services/login-service/internal/handler"
	"github.com/vasapolrittideah/loginflow/services/login-service/internal/identity"
	"github.com/vasapolrittideah/loginflow/services/login-service/internal/profile"
	"github.com/vasapolrittideah/loginflow/services/login-service/internal/reconcile"
	"github.com/vasapolrittideah/loginflow/services/login-service/internal/session"
	"github.com/vasapolrittideah/loginflow/shared/discovery"
	"github.com/vasapolrittideah/loginflow/shared/logger"
	"github.com/vasapolrittideah/loginflow/shared/mongodb"
	"github.com/vasapolrittideah/loginflow/shared/provider"
	"github.com/vasapolrittideah/loginflow/shared/server"
	"github.com/vasapolrittideah/loginflow/shared/validate"
)

const serviceName = "login-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(serviceName, "info").Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(serviceName, cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resolver, err := discovery.NewResolver(log, cfg.Consul, discovery.StaticResolver{
		cfg.AuthServiceName:    cfg.AuthServiceURL,
		cfg.ProfileServiceName: cfg.ProfileServiceURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create service resolver")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	idp, err := newIdentityProvider(ctx, cfg, resolver, httpClient)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create identity provider")
	}

	sessions, closeSessions := newSessionStore(ctx, log, cfg)
	defer closeSessions()

	orchestrator := reconcile.NewOrchestrator(
		log,
		idp,
		profile.NewHTTPClient(resolver, cfg.ProfileServiceName, httpClient),
		sessions,
		reconcile.WithDestination(cfg.HomePath),
		reconcile.WithSessionTTL(cfg.SessionTTL),
	)

	validator, err := validate.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	loginHandler := handler.NewLoginHandler(log, orchestrator, sessions, validator, cfg.CookieSecure)
	srv := server.New(cfg.Server, handler.NewRouter(loginHandler))

	deregister, err := discovery.RegisterService(log, cfg.Consul, serviceName, cfg.Server.Port)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register with consul")
	}
	defer deregister()

	if err := server.Run(ctx, log, cfg.Server, srv); err != nil {
		log.Error().Err(err).Msg("http server stopped")
	}
}

func newIdentityProvider(
	ctx context.Context,
	cfg *config.Config,
	resolver discovery.Resolver,
	httpClient *http.Client,
) (identity.Provider, error) {
	if cfg.IdentityBackend == config.IdentityBackendFirebase {
		opts := []provider.FirebaseOption{provider.WithFirebaseTimeout(cfg.HTTPClientTimeout)}
		if cfg.FirebaseEndpoint != "" {
			opts = append(opts, provider.WithFirebaseEndpoint(cfg.FirebaseEndpoint))
		}

		client, err := provider.NewFirebaseClient(ctx, cfg.FirebaseAPIKey, opts...)
		if err != nil {
			return nil, err
		}
		return identity.NewFirebaseProvider(client), nil
	}

	return identity.NewAuthServiceClient(resolver, cfg.AuthServiceName, httpClient), nil
}

func newSessionStore(ctx context.Context, log *zerolog.Logger, cfg *config.Config) (session.Store, func()) {
	if cfg.SessionBackend != config.SessionBackendMongo {
		return session.NewMemoryStore(), func() {}
	}

	client, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	return session.NewMongoStore(ctx, log, db), func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}
}
