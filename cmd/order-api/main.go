package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcmexdev/restaurant-orders/internal/config"
	"github.com/jcmexdev/restaurant-orders/internal/order-api/app"
	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/ports"
	"github.com/jcmexdev/restaurant-orders/internal/order-api/infra/adapters/jsonfile"
	"github.com/jcmexdev/restaurant-orders/internal/order-api/infra/adapters/sqlite"
	"github.com/jcmexdev/restaurant-orders/internal/order-api/infra/httpx"
	"github.com/jcmexdev/restaurant-orders/internal/pkg/cache"
	"github.com/jcmexdev/restaurant-orders/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	telemetry.InitLogger(cfg.Telemetry.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("order api stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := telemetry.SetupTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.Environment)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("tracer shutdown error", "error", err)
			}
		}()
	}

	orders, closeStore, err := openOrderStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []app.Option{app.WithLogger(slog.Default())}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.Telemetry.ServiceName)
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			slog.Warn("redis unreachable, idempotency keys will be ignored until it recovers", "addr", cfg.RedisAddr, "error", err)
		}
		cancel()
		opts = append(opts, app.WithCache(redisCache))
	}

	svc := app.NewOrderService(jsonfile.NewMenuRepository(cfg.Store.MenuPath), orders, opts...)
	router := httpx.NewRouter(httpx.NewHandler(svc), httpx.RouterConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		AdminUser:      cfg.Admin.User,
		AdminPassword:  cfg.Admin.Password,
		Logger:         slog.Default(),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 30 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("order api running",
			"addr", srv.Addr,
			"store", cfg.Store.Kind,
			"menu", cfg.Store.MenuPath,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openOrderStore(cfg config.StoreConfig) (ports.OrderRepository, func(), error) {
	if cfg.Kind == config.StoreSQLite {
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				slog.Error("closing order store", "error", err)
			}
		}, nil
	}
	return jsonfile.NewOrderRepository(cfg.OrdersPath), func() {}, nil
}
