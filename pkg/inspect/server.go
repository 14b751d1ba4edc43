package inspect

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/strand-ui/strand/pkg/reactive"
)

// Config configures the inspect server.
type Config struct {
	// Address is the listen address (default: "localhost:6380").
	Address string

	// Gatherer serves GET /metrics (default: prometheus.DefaultGatherer).
	Gatherer prometheus.Gatherer

	// CheckOrigin validates WebSocket upgrade origins.
	// Default: same-host only, the gorilla default.
	CheckOrigin func(r *http.Request) bool

	// ShutdownTimeout bounds graceful shutdown (default: 5s).
	ShutdownTimeout time.Duration

	// Logger receives server logs (default: slog.Default).
	Logger *slog.Logger
}

// DefaultConfig returns the default inspect server configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:         "localhost:6380",
		Gatherer:        prometheus.DefaultGatherer,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server serves the inspection surface for one reactive store.
type Server struct {
	store    *reactive.Store
	hub      *Hub
	config   *Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
	handler  http.Handler
}

// New creates an inspect server over store. hub may be nil, in which case
// GET /live rejects connections. config may be nil for defaults.
func New(store *reactive.Store, hub *Hub, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	} else {
		defaults := DefaultConfig()
		if config.Address == "" {
			config.Address = defaults.Address
		}
		if config.Gatherer == nil {
			config.Gatherer = defaults.Gatherer
		}
		if config.ShutdownTimeout == 0 {
			config.ShutdownTimeout = defaults.ShutdownTimeout
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "inspect")

	s := &Server{
		store:  store,
		hub:    hub,
		config: config,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: config.CheckOrigin,
		},
	}

	r := chi.NewRouter()
	r.Get("/api/signals", s.handleSignals)
	r.Get("/api/stats", s.handleStats)
	r.Get("/live", s.handleLive)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(config.Gatherer, promhttp.HandlerOpts{}))
	s.handler = r

	return s
}

// Handler returns the server's HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("inspect server listening", "address", s.config.Address)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// signalDTO is the wire form of one graph entry.
type signalDTO struct {
	ID           string `json:"id"`
	Generation   uint32 `json:"generation"`
	Value        string `json:"value"`
	Subscribers  int    `json:"subscribers"`
	Dependencies int    `json:"dependencies"`
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	infos := s.store.Snapshot()
	out := make([]signalDTO, len(infos))
	for i, info := range infos {
		out[i] = signalDTO{
			ID:           info.ID.String(),
			Generation:   info.Generation,
			Value:        info.Value,
			Subscribers:  info.Subscribers,
			Dependencies: info.Dependencies,
		}
	}
	s.writeJSON(w, out)
}

// statsDTO is the wire form of the store counters.
type statsDTO struct {
	Signals        int       `json:"signals"`
	Inserts        int64     `json:"inserts"`
	Releases       int64     `json:"releases"`
	Writes         int64     `json:"writes"`
	Notifications  int64     `json:"notifications"`
	Subscriptions  int64     `json:"subscriptions"`
	TrackedReads   int64     `json:"tracked_reads"`
	Recomputes     int64     `json:"recomputes"`
	ReentrantSkips int64     `json:"reentrant_skips"`
	CollectedAt    time.Time `json:"collected_at"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.store.Stats()
	s.writeJSON(w, statsDTO{
		Signals:        stats.Signals,
		Inserts:        stats.Inserts,
		Releases:       stats.Releases,
		Writes:         stats.Writes,
		Notifications:  stats.Notifications,
		Subscriptions:  stats.Subscriptions,
		TrackedReads:   stats.TrackedReads,
		Recomputes:     stats.Recomputes,
		ReentrantSkips: stats.ReentrantSkips,
		CollectedAt:    stats.CollectedAt,
	})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "live feed not configured", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	events := s.hub.register()
	s.logger.Info("live client connected", "remote", conn.RemoteAddr())

	// Reader: only watches for the client closing the connection.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.hub.unregister(events)
				return
			}
		}
	}()

	// Writer: drains the client's event queue.
	for ev := range events {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(ev); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Error("live feed write error", "error", err)
			}
			s.hub.unregister(events)
			break
		}
	}
	conn.Close()
	s.logger.Info("live client disconnected", "remote", conn.RemoteAddr())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode error", "error", err)
	}
}
