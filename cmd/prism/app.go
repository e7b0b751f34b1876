package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"prism/internal/config"
	"prism/internal/core"
)

// app bundles what every subcommand needs: resolved config, logger and the
// opened record store.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	store  *core.Store
	slot   core.SnapshotSlot
	closer []io.Closer
}

func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// openApp loads config, builds the logger and opens the store. extra
// options are appended after the logger.
func openApp(ctx context.Context, cmd *cobra.Command, extra ...core.Option) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if cfg.File() != "" {
		logger.Debug("config loaded", "file", cfg.File())
	}

	slot, err := core.OpenSlot(ctx, cfg.Storage.SlotConfig())
	if err != nil {
		return nil, fmt.Errorf("open %s slot: %w", cfg.Storage.Driver, err)
	}
	a := &app{cfg: cfg, logger: logger, slot: slot}
	opts := []core.Option{
		core.WithLogger(logger),
		core.WithSlotKey(cfg.Storage.SlotKey),
		core.WithAuditRecorder(core.LoggerAuditRecorder{Logger: logger}),
	}
	if cfg.Trace.Path != "" {
		f, err := os.OpenFile(cfg.Trace.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			_ = slot.Close()
			return nil, fmt.Errorf("open trace file: %w", err)
		}
		a.closer = append(a.closer, f)
		opts = append(opts, core.WithTracer(core.NewJSONTracer(f)))
	}
	opts = append(opts, extra...)

	store, err := core.Open(ctx, slot, opts...)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.store = store
	return a, nil
}

// Close releases the slot and any trace output.
func (a *app) Close() error {
	err := a.slot.Close()
	for _, c := range a.closer {
		_ = c.Close()
	}
	return err
}
