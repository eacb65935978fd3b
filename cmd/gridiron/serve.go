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

	"github.com/spf13/cobra"
	"github.com/use-agent/gridiron/api"
	"github.com/use-agent/gridiron/batch"
	"github.com/use-agent/gridiron/config"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	noBrowser := false
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cfg, !noBrowser)
		},
	}
	cmd.Flags().IntVar(&cfg.Server.Port, "port", cfg.Server.Port, "listen port")
	cmd.Flags().StringVar(&cfg.Server.Host, "host", cfg.Server.Host, "listen address")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "fetch with plain HTTP only")
	return cmd
}

func serve(cfg *config.Config, withBrowser bool) error {
	slog.Info("gridiron starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"browser", withBrowser,
		"maxPages", cfg.Browser.MaxPages,
	)

	st, err := newStack(cfg, withBrowser)
	if err != nil {
		return fmt.Errorf("initialise fetch stack: %w", err)
	}
	defer st.Close()

	batches := batch.NewManager(st.pipeline, cfg.Batch.Workers, cfg.Batch.Retention, cfg.Webhook.Secret, st.metrics)
	defer batches.Stop()

	deps := api.Deps{
		Config:    cfg,
		Runner:    st.pipeline,
		Batches:   batches,
		Metrics:   st.metrics,
		StartTime: time.Now(),
	}
	if st.scraper != nil {
		deps.Pool = st.scraper
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: api.NewRouter(deps)}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}
	slog.Info("gridiron stopped")
	return nil
}
