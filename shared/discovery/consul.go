package discovery

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/loginflow/shared/config"
)

var ErrNoHealthyInstance = errors.New("no healthy service instance")

// Resolver turns a logical service name into a base URL.
type Resolver interface {
	Resolve(ctx context.Context, service string) (string, error)
}

// StaticResolver resolves service names from a fixed map.
type StaticResolver map[string]string

func (s StaticResolver) Resolve(_ context.Context, service string) (string, error) {
	url, ok := s[service]
	if !ok || url == "" {
		return "", fmt.Errorf("%w: %s", ErrNoHealthyInstance, service)
	}
	return url, nil
}

// ConsulRegistry resolves services from consul's health endpoint and registers
// the running service with the local agent.
type ConsulRegistry struct {
	client *api.Client
	logger *zerolog.Logger
	scheme string
}

// NewConsulRegistry creates a registry talking to the consul agent at addr.
func NewConsulRegistry(logger *zerolog.Logger, addr, token string) (*ConsulRegistry, error) {
	cfg := api.DefaultConfig()
	cfg.Address = addr
	cfg.Token = token

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create consul client: %w", err)
	}

	return &ConsulRegistry{client: client, logger: logger, scheme: "http"}, nil
}

// Resolve picks a random passing instance of service.
func (r *ConsulRegistry) Resolve(ctx context.Context, service string) (string, error) {
	entries, _, err := r.client.Health().Service(service, "", true, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("query consul for %s: %w", service, err)
	}

	if len(entries) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoHealthyInstance, service)
	}

	entry := entries[rand.IntN(len(entries))]
	host := entry.Service.Address
	if host == "" && entry.Node != nil {
		host = entry.Node.Address
	}

	return fmt.Sprintf("%s://%s", r.scheme, net.JoinHostPort(host, strconv.Itoa(entry.Service.Port))), nil
}

// Registration describes a service instance announced to consul.
type Registration struct {
	ID            string
	Name          string
	Host          string
	Port          int
	HealthPath    string
	CheckInterval time.Duration
}

// Register announces reg with an HTTP health check and returns a function that deregisters it.
func (r *ConsulRegistry) Register(reg Registration) (func() error, error) {
	if reg.CheckInterval <= 0 {
		reg.CheckInterval = 10 * time.Second
	}

	healthURL := fmt.Sprintf("%s://%s%s", r.scheme, net.JoinHostPort(reg.Host, strconv.Itoa(reg.Port)), reg.HealthPath)
	err := r.client.Agent().ServiceRegister(&api.AgentServiceRegistration{
		ID:      reg.ID,
		Name:    reg.Name,
		Address: reg.Host,
		Port:    reg.Port,
		Check: &api.AgentServiceCheck{
			HTTP:                           healthURL,
			Interval:                       reg.CheckInterval.String(),
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("register %s with consul: %w", reg.Name, err)
	}

	r.logger.Info().Str("service_id", reg.ID).Str("health", healthURL).Msg("registered with consul")

	return func() error {
		return r.client.Agent().ServiceDeregister(reg.ID)
	}, nil
}

// RegisterService announces name on port when cfg enables consul. The returned
// function deregisters the instance and is a no-op when consul is disabled.
func RegisterService(logger *zerolog.Logger, cfg config.ConsulConfig, name string, port int) (func(), error) {
	if !cfg.Enabled() {
		return func() {}, nil
	}

	registry, err := NewConsulRegistry(logger, cfg.Addr, cfg.Token)
	if err != nil {
		return nil, err
	}

	host := cfg.ServiceHost
	if host == "" {
		if host, err = os.Hostname(); err != nil {
			return nil, fmt.Errorf("resolve hostname: %w", err)
		}
	}

	deregister, err := registry.Register(Registration{
		ID:            fmt.Sprintf("%s-%s", name, uuid.NewString()),
		Name:          name,
		Host:          host,
		Port:          port,
		HealthPath:    "/healthz",
		CheckInterval: cfg.CheckInterval,
	})
	if err != nil {
		return nil, err
	}

	return func() {
		if err := deregister(); err != nil {
			logger.Error().Err(err).Str("service", name).Msg("failed to deregister from consul")
		}
	}, nil
}

// NewResolver returns a consul backed resolver when cfg enables consul and a
// StaticResolver over static otherwise.
func NewResolver(logger *zerolog.Logger, cfg config.ConsulConfig, static StaticResolver) (Resolver, error) {
	if !cfg.Enabled() {
		return static, nil
	}

	return NewConsulRegistry(logger, cfg.Addr, cfg.Token)
}
