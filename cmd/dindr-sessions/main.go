// Package main starts the sessions service: the HTTP front for the
// session matching protocol.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dindr/services/config"
	"github.com/dindr/services/httpapi"
	"github.com/dindr/services/session"
	"github.com/dindr/services/session/drivers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.ParseSessions()
	if err != nil {
		return err
	}

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close session store", "error", err)
		}
	}()

	svc := session.NewService(store, session.WithLogger(logger))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.NewSessionsHandler(svc, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("sessions service listening", "addr", cfg.Addr(), "store", cfg.Store)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func buildStore(cfg config.Sessions) (session.Store, error) {
	switch drivers.StoreType(cfg.Store) {
	case drivers.StoreTypeSupabase:
		return drivers.NewStore(drivers.StoreTypeSupabase,
			drivers.WithSupabase(cfg.SupabaseURL, cfg.SupabaseKey()))

	case drivers.StoreTypeRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required for the redis store: %w", session.ErrInvalidConfig)
		}
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return drivers.NewStore(drivers.StoreTypeRedis, drivers.WithRedisClient(client))

	case drivers.StoreTypeMemory:
		return drivers.NewStore(drivers.StoreTypeMemory)

	default:
		return nil, fmt.Errorf("unknown session store %q: %w", cfg.Store, session.ErrInvalidStoreType)
	}
}
