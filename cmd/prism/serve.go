package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"prism/internal/core"
	"prism/internal/metrics"
	"prism/internal/view"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog UI and JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			addr, _ := cmd.Flags().GetString("addr")
			return serve(ctx, cmd, addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides http.addr)")
	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command, addrOverride string) error {
	recorder := metrics.NewPrometheusRecorder()
	a, err := openApp(ctx, cmd, core.WithMetricsRecorder(recorder))
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	format, err := view.NewFormatter(a.cfg.View.Locale, a.cfg.View.Currency)
	if err != nil {
		return err
	}
	opts := []view.Option{view.WithLogger(a.logger), view.WithPrettyHTML(a.cfg.View.PrettyHTML)}
	if a.cfg.Metrics.Enabled {
		recorder.TrackCollectionSize(a.store.Len)
		opts = append(opts, view.WithMetricsHandler(recorder.Handler()))
	}
	handler, err := view.New(a.store, format, opts...)
	if err != nil {
		return err
	}

	addr := a.cfg.HTTP.Addr
	if addrOverride != "" {
		addr = addrOverride
	}
	srv := &http.Server{Addr: addr, Handler: handler.Routes(), ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", addr, "storage", a.cfg.Storage.Driver, "startups", a.store.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
