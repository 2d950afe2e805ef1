package app

import (
	"context"
	"fmt"

	"github.com/nexohub/nexohub-api/auth"
	"github.com/nexohub/nexohub-api/config"
	"github.com/nexohub/nexohub-api/handlers"
	"github.com/nexohub/nexohub-api/middleware"
	"github.com/nexohub/nexohub-api/repositories"
	"github.com/nexohub/nexohub-api/repositories/postgres"
	"github.com/nexohub/nexohub-api/security"
	"github.com/nexohub/nexohub-api/services"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Users       repositories.UserRepository
	Tenants     repositories.TenantRepository
	ParkingLots repositories.ParkingLotRepository
	TxManager   repositories.TransactionManager

	// Security primitives, immutable after construction
	Tokens *security.TokenService
	Hasher *security.Hasher

	// Services
	Authenticator     *services.Authenticator
	Authorizer        *services.Authorizer
	AuthService       *services.AuthService
	BootstrapService  *services.BootstrapService
	ParkingLotService *services.ParkingLotService

	// HTTP
	AuthMiddleware    *middleware.AuthMiddleware
	AuthHandler       *auth.Handler
	UserHandler       *handlers.UserHandler
	BootstrapHandler  *handlers.BootstrapHandler
	ParkingLotHandler *handlers.ParkingLotHandler
	HealthHandler     *handlers.HealthHandler
}

// NewDependencies opens the database, creates the schema and wires every component
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := initDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps, err := NewDependenciesWithStore(cfg, logger, factory.NewRepositories(), factory.GetTransactionManager())
	if err != nil {
		_ = factory.Close()
		return nil, err
	}
	deps.RepoFactory = factory
	deps.DB = factory.GetDB()
	deps.HealthHandler = handlers.NewHealthHandler(deps.DB, cfg.AppName, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// NewDependenciesWithStore wires every component over the given record store.
// The health handler reports the database as not configured.
func NewDependenciesWithStore(cfg *config.Config, logger *zap.Logger, repos *repositories.Repositories, txManager repositories.TransactionManager) (*Dependencies, error) {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		Users:       repos.Users,
		Tenants:     repos.Tenants,
		ParkingLots: repos.ParkingLots,
		TxManager:   txManager,
	}

	if err := deps.initSecurity(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize security: %w", err)
	}
	deps.initServices()
	deps.initHTTP()
	deps.HealthHandler = handlers.NewHealthHandler(nil, cfg.AppName, logger)

	return deps, nil
}

// initDatabase opens the pool, checks connectivity and creates missing tables
func initDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*postgres.RepositoryFactory, error) {
	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository factory: %w", err)
	}

	if err := factory.GetDB().PingContext(ctx); err != nil {
		_ = factory.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := factory.InitSchema(ctx); err != nil {
		_ = factory.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))

	return factory, nil
}

func (d *Dependencies) initSecurity(cfg *config.Config) error {
	tokens, err := security.NewTokenService(security.TokenConfig{
		Secret:    []byte(cfg.Auth.JWTSecret),
		Algorithm: cfg.Auth.JWTAlgorithm,
		Expiry:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		return err
	}

	hasher, err := security.NewHasherWithCost(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	d.Tokens = tokens
	d.Hasher = hasher
	d.Logger.Info("token service initialized",
		zap.String("algorithm", cfg.Auth.JWTAlgorithm),
		zap.Duration("token_ttl", cfg.Auth.TokenTTL))
	return nil
}

func (d *Dependencies) initServices() {
	d.Authenticator = services.NewAuthenticator(d.Tokens, d.Users, d.Logger)
	d.Authorizer = services.NewAuthorizer()
	d.AuthService = services.NewAuthService(d.Users, d.Hasher, d.Tokens, d.Logger)
	d.BootstrapService = services.NewBootstrapService(d.TxManager, d.Users, d.Tenants, d.Logger)
	d.ParkingLotService = services.NewParkingLotService(d.TxManager, d.ParkingLots, d.Logger)
}

func (d *Dependencies) initHTTP() {
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Authenticator, d.Authorizer, d.Logger)
	d.AuthHandler = auth.NewHandler(d.AuthService, d.Logger)
	d.UserHandler = handlers.NewUserHandler(d.Logger)
	d.BootstrapHandler = handlers.NewBootstrapHandler(d.BootstrapService, d.Logger)
	d.ParkingLotHandler = handlers.NewParkingLotHandler(d.ParkingLotService, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
