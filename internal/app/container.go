package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"fleetops/internal/auth"
	"fleetops/internal/config"
	"fleetops/internal/http/handlers"
	"fleetops/internal/http/middleware"
	"fleetops/internal/http/middleware/ratelimit"
	"fleetops/internal/http/router"
	"fleetops/internal/logx"
	"fleetops/internal/repository"
	"fleetops/internal/service/order"
	"fleetops/internal/service/user"
	"fleetops/internal/service/vehicle"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		func() *log.Logger { return log.Default() },
		NewLogger,
		config.Load,
		newRegisterer,
		newMetrics,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewUserRepo,
		repository.NewVehicleRepo,
		repository.NewOrderRepo,
		func() time.Duration { return 3 * time.Second },
		func(cfg *config.Config) (*auth.Tokens, error) {
			return auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		},
		func(repo *repository.UserRepo, tokens *auth.Tokens, logger logx.Logger, timeout time.Duration) *user.Service {
			return user.NewService(repo, tokens, logger, timeout)
		},
		func(repo *repository.VehicleRepo, users *repository.UserRepo, logger logx.Logger, timeout time.Duration) *vehicle.Service {
			return vehicle.NewService(repo, users, logger, timeout)
		},
		func(repo *repository.OrderRepo, vehicles *repository.VehicleRepo, logger logx.Logger, timeout time.Duration) *order.Service {
			return order.NewService(repo, vehicles, logger, timeout)
		},
	)
}

type authenticatorIn struct {
	dig.In
	Tokens   *auth.Tokens
	Users    *repository.UserRepo
	Logger   logx.Logger
	Failures prometheus.Counter `name:"auth_failures_total"`
}

func newAuthenticator(in authenticatorIn) *middleware.Authenticator {
	return middleware.NewAuthenticator(in.Tokens, in.Users, in.Logger, in.Failures)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	depsProvider := func(
		logger logx.Logger,
		base *handlers.Handlers,
		authH *handlers.AuthHandler,
		userH *handlers.UserHandler,
		vehicleH *handlers.VehicleHandler,
		orderH *handlers.OrderHandler,
		authn *middleware.Authenticator,
		loginRL *ratelimit.Middleware,
	) router.Deps {
		return router.Deps{
			Logger:        logger,
			Handlers:      base,
			Auth:          authH,
			Users:         userH,
			Vehicles:      vehicleH,
			Orders:        orderH,
			Authenticator: authn,
			LoginLimiter:  loginRL,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewUserUsecase,
		handlers.NewVehicleUsecase,
		handlers.NewOrderUsecase,
		handlers.NewAuthHandler,
		handlers.NewUserHandler,
		handlers.NewVehicleHandler,
		handlers.NewOrderHandler,
		newAuthenticator,
		depsProvider,
		router.New,
		serverProvider,
	)
}
