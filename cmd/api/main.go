package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-backend/config"
	"catalog-backend/internal/delivery/http/middleware"
	v1 "catalog-backend/internal/delivery/http/v1"
	"catalog-backend/internal/domain"
	"catalog-backend/internal/infrastructure/cache"
	"catalog-backend/internal/infrastructure/hashing"
	"catalog-backend/internal/infrastructure/token"
	"catalog-backend/internal/repository/memory"
	pgrepo "catalog-backend/internal/repository/postgres"
	"catalog-backend/internal/usecase"
	"catalog-backend/pkg/logger"

	"github.com/NYTimes/gziphandler"
	"github.com/jackc/pgx/v5/pgxpool"
)

const serviceName = "catalog-backend"

type repositories struct {
	products domain.ProductRepository
	users    domain.UserRepository
	pool     *pgxpool.Pool
}

// openRepositories builds the repositories for the configured backend.
func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return &repositories{
			products: memory.NewProductRepository(),
			users:    memory.NewUserRepository(),
		}, nil
	case config.BackendPostgres:
		pool, err := pgrepo.NewPgxPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := pgrepo.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		txManager := pgrepo.NewTransactionManager(pool)
		return &repositories{
			products: pgrepo.NewProductRepository(pool, txManager),
			users:    pgrepo.NewUserRepository(pool, txManager),
			pool:     pool,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	lg := logger.Get()

	repos, err := openRepositories(context.Background(), cfg)
	if err != nil {
		lg.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("Failed to open storage")
	}
	if repos.pool != nil {
		defer repos.pool.Close()
	}
	lg.Info().Str("backend", cfg.StorageBackend).Msg("Storage ready")

	hasher, err := hashing.New(cfg.HashAlgorithm, cfg.BcryptCost)
	if err != nil {
		lg.Fatal().Err(err).Msg("Failed to initialize password hasher")
	}
	tokens, err := token.NewJWTProvider(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiresIn)
	if err != nil {
		lg.Fatal().Err(err).Msg("Failed to initialize token provider")
	}

	productCache := cache.NewMemoryCache[domain.Product](cfg.CacheProductTTL, 2*cfg.CacheProductTTL)

	// --- Modules Initialization ---
	productUC := usecase.NewProductUsecase(repos.products, productCache, cfg)
	userUC := usecase.NewUserUsecase(repos.users, hasher, cfg.SearchTimeout)
	authUC := usecase.NewAuthUsecase(repos.users, hasher, tokens)

	mux := http.NewServeMux()
	v1.RegisterRoutes(mux,
		v1.NewProductHandler(productUC),
		v1.NewUserHandler(userUC),
		v1.NewAuthHandler(authUC),
	)

	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		cfg.RateLimitRPS,
		cfg.RateLimitBurst,
		time.Minute,
		3*time.Minute,
	)

	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = rateLimiter.Middleware()(handler)
	handler = middleware.RequestLogger(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal().Err(err).Msg("Server failed to start")
		}
	}()
	logger.ServiceStart(serviceName, cfg.Env, cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	lg.Info().Msg("Server shutting down...")
	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.ServiceStop(serviceName)
}
