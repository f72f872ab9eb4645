package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"daycare-log/internal/adapters/auth/jwtverifier"
	"daycare-log/internal/adapters/storage"
	"daycare-log/internal/platform/config"
	"daycare-log/internal/platform/logger"
	"daycare-log/internal/ports/auth"
	"daycare-log/internal/router"
	"daycare-log/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type serveOptions struct {
	Seed bool
}

func addServe(topLevel *cobra.Command) *cobra.Command {
	so := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Example: `
daycare-log serve --seed
DAYCARE_STORAGE_DRIVER=sqlite daycare-log serve
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), so)
		},
	}
	cmd.Flags().BoolVar(&so.Seed, "seed", false, "load demo users, a classroom and two children")

	topLevel.AddCommand(cmd)
	return cmd
}

func runServe(ctx context.Context, so *serveOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, App: cfg.App.Name})
	defer func() { _ = log.Sync() }()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeStorage() }()

	var verifier auth.AuthVerifier
	if cfg.DevAuth() {
		log.Warn("auth: dev mode, X-Debug-User-ID accepted")
	} else {
		v, err := jwtverifier.New(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
		if err != nil {
			return err
		}
		verifier = v
	}

	if so.Seed {
		if err := seed.Demo(ctx, router.NewServices(repos, log), log); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(router.Options{AuthVerifier: verifier, Logger: log, Repos: repos}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
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

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
