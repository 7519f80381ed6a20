package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pet-health-record/internal/adapters/auth/odin"
	"pet-health-record/internal/platform/config"
	"pet-health-record/internal/platform/logger"
	"pet-health-record/internal/platform/metrics"
	"pet-health-record/internal/ports/auth"
	"pet-health-record/internal/router"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta el servidor HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if port != "" {
			cfg.Port = port
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Puerto HTTP (pisa PORT)")
}

func serve(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(cfg.LoggerOptions())
	defer func() { _ = log.Sync() }()

	stores, err := router.OpenStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := stores.Close(closeCtx); err != nil {
			log.Warn("close stores failed", map[string]any{"error": err.Error()})
		}
	}()

	var verifier auth.AuthVerifier // nil: modo dev con X-Debug-User-ID
	if cfg.OdinEnabled() {
		client, err := odin.NewClient(odin.Config{
			BaseURL: cfg.OdinBaseURL,
			APIKey:  cfg.OdinAPIKey,
			Timeout: cfg.OdinTimeout,
		})
		if err != nil {
			return fmt.Errorf("odin client: %w", err)
		}
		verifier = client
	} else {
		log.Warn("odin not configured, accepting X-Debug-User-ID", nil)
	}

	handler := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Stores:       stores,
		Logger:       log,
		Metrics:      metrics.New("pet_health_record"),
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "store": string(cfg.Store())})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
