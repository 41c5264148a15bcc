// Package server exposes a running driver over HTTP. A ticker goroutine
// advances the driver; handlers read a copy of the last frame.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/splitbox/internal/export"
	"github.com/san-kum/splitbox/internal/frame"
	"github.com/san-kum/splitbox/internal/logging"
	"github.com/san-kum/splitbox/internal/mesh"
	"github.com/san-kum/splitbox/internal/metrics"
	"github.com/san-kum/splitbox/internal/render"
	"github.com/san-kum/splitbox/internal/splittree"
	"github.com/san-kum/splitbox/internal/storage"
	"github.com/san-kum/splitbox/internal/viz"
)

type Options struct {
	Interval time.Duration
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

type Server struct {
	mu       sync.RWMutex
	driver   *frame.Driver
	backend  *render.Recorder
	last     frame.Frame
	mesh     *mesh.Buffers
	registry *prometheus.Registry
	interval time.Duration
	logger   *slog.Logger
}

// Stats is the /stats payload.
type Stats struct {
	Time     float64            `json:"time"`
	Frame    int                `json:"frame"`
	Vertices int                `json:"vertices"`
	Tree     splittree.Stats    `json:"tree"`
	Counters frame.Counters     `json:"counters"`
	Metrics  map[string]float64 `json:"metrics"`
}

func New(d *frame.Driver, opts Options) (*Server, error) {
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 60
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	collector := metrics.NewCollector()
	if err := collector.Register(opts.Registry); err != nil {
		return nil, err
	}
	d.AddObserver(collector)

	return &Server{
		driver:   d,
		backend:  render.NewRecorder(),
		mesh:     mesh.NewBuffers(0),
		registry: opts.Registry,
		interval: opts.Interval,
		logger:   opts.Logger,
	}, nil
}

// Step advances the driver once and publishes the result.
func (s *Server) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.driver.Advance()
	if err := s.driver.Present(s.backend, f); err != nil {
		return err
	}
	s.mesh = s.backend.Mesh()
	f.Positions, f.Colors = s.mesh.Positions, s.mesh.Colors
	s.last = f
	return nil
}

// Run steps the driver on every tick until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := s.Step(); err != nil {
				s.logger.Error("step failed", "error", err)
				return err
			}
		}
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.healthz)
	r.Get("/frame", s.frameJSON)
	r.Get("/frame.svg", s.frameSVG)
	r.Get("/tree", s.tree)
	r.Get("/stats", s.stats)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 2)
	go func() { errc <- s.Run(ctx) }()
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-errc:
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if serr := srv.Shutdown(shutdownCtx); serr != nil && err == nil {
		err = serr
	}
	if errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	frames := s.driver.Counters().Frames
	s.mu.RUnlock()
	writeJSON(w, map[string]any{"status": "ok", "frames": frames})
}

func (s *Server) frameJSON(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	if err := storage.ExportFrameJSON(w, s.last); err != nil {
		s.logger.Error("frame encode failed", "error", err)
	}
}

func (s *Server) frameSVG(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	svg := export.FrameToSVG(s.mesh, viz.NewCamera(), 640, 360)
	s.mu.RUnlock()
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(svg))
}

func (s *Server) tree(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	snap, err := s.driver.Snapshot()
	s.mu.RUnlock()
	if errors.Is(err, frame.ErrNoRoot) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, snap)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	st := Stats{
		Time:     s.last.Time,
		Frame:    s.last.Index,
		Vertices: s.last.Vertices,
		Tree:     s.last.Tree,
		Counters: s.driver.Counters(),
		Metrics:  s.driver.Metrics(),
	}
	s.mu.RUnlock()
	writeJSON(w, st)
}
