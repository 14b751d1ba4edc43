package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/strand-ui/strand/internal/config"
	"github.com/strand-ui/strand/pkg/inspect"
	"github.com/strand-ui/strand/pkg/observe"
	"github.com/strand-ui/strand/pkg/reactive"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
		demo bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the inspection server",
		Long: `Start the inspection server over a reactive store.

The server exposes:

  GET /api/signals   JSON snapshot of the signal graph
  GET /api/stats     Store counters
  GET /metrics       Prometheus exposition
  GET /live          WebSocket feed of write events

With --demo, a small reactive graph is created and written to once
a second so the endpoints have something to show.

Examples:
  strand serve
  strand serve --port=8080 --demo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, demo)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to serve on (default from strand.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from strand.json)")
	cmd.Flags().BoolVar(&demo, "demo", true, "Drive a demo signal graph")

	return cmd
}

func runServe(port int, host string, demo bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if errors.Is(err, config.ErrNotFound) {
		cfg = config.New()
	} else if err != nil {
		return err
	}

	if port > 0 {
		cfg.Inspect.Port = port
	}
	if host != "" {
		cfg.Inspect.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	hub := inspect.NewHub()
	storeOpts := []reactive.StoreOption{reactive.WithHooks(hub.Hooks())}
	if cfg.Metrics.Enabled {
		storeOpts = append(storeOpts, reactive.WithHooks(observe.MetricsHooks(
			observe.WithNamespace(cfg.Metrics.Namespace),
			observe.WithSubsystem(cfg.Metrics.Subsystem),
		)))
	}
	if cfg.Tracing.Enabled {
		var opts []observe.TracingOption
		if cfg.Tracing.TracerName != "" {
			opts = append(opts, observe.WithTracerName(cfg.Tracing.TracerName))
		}
		storeOpts = append(storeOpts, reactive.WithHooks(observe.TracingHooks(opts...)))
	}

	store := reactive.NewStore(storeOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if demo {
		startDemoGraph(ctx, store)
	}

	srv := inspect.New(store, hub, &inspect.Config{
		Address: cfg.InspectAddress(),
		Logger:  logger,
	})

	printBanner()
	success("inspect server on %s", cfg.InspectURL())
	info("signals:  %s/api/signals", cfg.InspectURL())
	info("stats:    %s/api/stats", cfg.InspectURL())
	info("metrics:  %s/metrics", cfg.InspectURL())
	info("live:     ws://%s/live", cfg.InspectAddress())
	fmt.Println()

	return srv.Run(ctx)
}

// startDemoGraph builds a small signal graph and writes to it once a
// second until ctx is canceled.
func startDemoGraph(ctx context.Context, store *reactive.Store) {
	tick := reactive.NewIntSignalIn(store, 0)
	phase := reactive.NewStringSignalIn(store, "even")

	reactive.NewMemoIn(store, func() int {
		return tick.Get() * tick.Get()
	})
	reactive.NewEffectIn(store, func() {
		if tick.Get()%2 == 0 {
			phase.Set("even")
		} else {
			phase.Set("odd")
		}
	})

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tick.Inc()
			}
		}
	}()
}

// newLogger builds a slog.Logger from the log section of strand.json.
func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
