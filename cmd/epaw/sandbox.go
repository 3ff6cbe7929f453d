package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"epaw/internal/adapters/auth/jwtauth"
	"epaw/internal/adapters/storage/postgres"
	"epaw/internal/router"
)

const shutdownTimeout = 5 * time.Second

// runSandbox levanta un server local con la misma API que consume el cliente.
func runSandbox(ctx context.Context, a *app, args []string) error {
	fs := newFlags("sandbox")
	addr := fs.String("addr", a.cfg.Sandbox.Addr, "dirección de escucha")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := router.Options{
		Tokens: jwtauth.NewSigner(a.cfg.Sandbox.Secret, a.cfg.Sandbox.TokenTTL),
		Logger: a.log,
	}
	backend := "memory"
	if dsn := a.cfg.Sandbox.DSN; dsn != "" {
		db, err := postgres.Open(dsn)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		opts.DB = db
		backend = "postgres"
	}

	srv := &http.Server{
		Addr:         listenAddr(*addr),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	a.log.Info("sandbox listening", map[string]any{"addr": srv.Addr, "store": backend})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// listenAddr acepta "8080" (como PORT en la mayoría de hostings) o ":8080".
func listenAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr != "" && !strings.Contains(addr, ":") {
		return ":" + addr
	}
	return addr
}
