package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/api-service/internal/config"
	"storefront/api-service/internal/httpapi"
	"storefront/api-service/internal/store"
	"storefront/api-service/internal/store/memory"
	"storefront/api-service/internal/store/postgres"
	"storefront/api-service/internal/telemetry"
	"storefront/api-service/internal/token"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg := config.Load()
	shutdownTelemetry := telemetry.Setup("storefront-api")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	var st store.Store
	if cfg.DatabaseURL != "" {
		if err := postgres.RunMigrations(context.Background(), cfg.DatabaseURL); err != nil {
			log.Fatalf("migrations: %v", err)
		}
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		defer pool.Close()
		st = postgres.NewStore(pool)
	} else {
		log.Printf("DB_DSN not set, using seeded in-memory store")
		st = memory.NewSeededStore()
	}

	var globalLimiter, authLimiter httpapi.Limiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		globalLimiter = httpapi.NewRedisLimiter(client, "ratelimit:", cfg.RateLimitMax, cfg.RateLimitWindow)
		authLimiter = httpapi.NewRedisLimiter(client, "ratelimit:auth:", cfg.AuthRateLimitMax, cfg.RateLimitWindow)
	} else {
		globalLimiter = httpapi.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
		authLimiter = httpapi.NewMemoryLimiter(cfg.AuthRateLimitMax, cfg.RateLimitWindow)
	}

	tokens := token.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	handler := httpapi.NewHandler(st, tokens, authLimiter, cfg.SecureCookies)
	guard := httpapi.NewSessionGuard(tokens, cfg.ProtectedPaths, cfg.SecureCookies)

	chain := guard.Middleware(handler.Routes())
	chain = httpapi.RateLimitMiddleware(globalLimiter, chain)
	chain = httpapi.Recover(chain)
	chain = httpapi.LoggingMiddleware(chain)
	chain = httpapi.SecurityHeaders(chain)
	otelHandler := otelhttp.NewHandler(chain, "storefront-api")

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront-api listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
