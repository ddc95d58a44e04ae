package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rezkam/bucketlist/internal/application/auth"
	"github.com/rezkam/bucketlist/internal/application/bucket"
	"github.com/rezkam/bucketlist/internal/config"
	buckethttp "github.com/rezkam/bucketlist/internal/http"
	"github.com/rezkam/bucketlist/internal/http/handler"
	"github.com/rezkam/bucketlist/internal/http/middleware"
	"github.com/rezkam/bucketlist/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/bucketlist/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Root context for all normal operations, cancelled on SIGTERM/SIGINT.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	telemetry, err := observability.Setup(ctx, observability.Config{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to init observability: %w", err)
	}
	defer func() {
		// Fresh context with a timeout so an unreachable collector cannot
		// hang process exit.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown telemetry", "error", err)
		}
	}()
	slog.SetDefault(telemetry.Logger)

	slog.InfoContext(ctx, "starting bucketlist service")

	store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	slog.InfoContext(ctx, "storage initialized", "dsn", maskPassword(cfg.Database.DSN))

	authenticator := auth.NewAuthenticator(ctx, store, auth.Config{
		OperationTimeout: cfg.Auth.OperationTimeout,
		UpdateQueueSize:  cfg.Auth.UpdateQueueSize,
	})
	slog.InfoContext(ctx, "API key authentication enabled")

	service := bucket.NewService(store, telemetry.Logger)
	server := handler.NewServer(service)
	router := buckethttp.NewRouter(server, middleware.NewAuth(authenticator), cfg.HTTP.MaxBodyBytes)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           otelhttp.NewHandler(router, "bucketlist-http"),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
	}

	errResult := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")

		// The main context is already cancelled; give cleanup a fresh
		// timeout window.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(shutdownCtx, "HTTP server shutdown timed out", "error", err)
		} else {
			slog.InfoContext(shutdownCtx, "HTTP server shutdown complete")
		}

		// Drains pending last_used_at updates.
		if err := authenticator.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(shutdownCtx, "authenticator shutdown timeout", "error", err)
		} else {
			slog.InfoContext(shutdownCtx, "authenticator shutdown complete")
		}

		return nil
	case err := <-errResult:
		return err
	}
}

// maskPassword masks the password in a connection string for logging.
func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		// If parsing fails, fall back to full redaction to be safe
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}
