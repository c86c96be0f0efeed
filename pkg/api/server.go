package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/kryptos/pkg/kv"
	"github.com/matzehuels/kryptos/pkg/manifest"
	"github.com/matzehuels/kryptos/pkg/workbench"
)

// Options configures a [Server].
type Options struct {
	// BaseURL is the public workbench URL used in share links.
	BaseURL string

	// MaxBodyBytes bounds request bodies. Zero means 1 MiB.
	MaxBodyBytes int64

	// KVTTL is the expiry of documents posted to /api/kv. Zero means
	// [kv.TTLShare].
	KVTTL time.Duration

	// Metrics, when set, is mounted at /metrics.
	Metrics http.Handler

	// ShutdownTimeout bounds graceful shutdown in [Server.Run].
	ShutdownTimeout time.Duration
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	runner   *workbench.Runner
	store    kv.Store
	manifest *manifest.Manifest
	logger   *log.Logger
	opts     Options
	upgrader websocket.Upgrader
}

// New creates a server. runner builds and shares grids, store backs
// /api/kv and images may be nil when no manifest is available.
func New(runner *workbench.Runner, store kv.Store, images *manifest.Manifest, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if store == nil {
		store = kv.NewNullStore()
	}
	if runner == nil {
		runner = workbench.NewRunner(store, logger, workbench.Limits{})
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.KVTTL == 0 {
		opts.KVTTL = kv.TTLShare
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		runner:   runner,
		store:    store,
		manifest: images,
		logger:   logger,
		opts:     opts,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, notFound("Not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("METHOD_NOT_ALLOWED", "method not allowed"))
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/scytale", func(r chi.Router) {
			r.Get("/", s.handleScytaleQuery)
			r.Post("/", s.handleScytaleJSON)
			r.Get("/live", s.handleLive)
			r.Post("/share", s.handleShareSave)
			r.Get("/share/{key}", s.handleShareRun)
		})
		r.Get("/seeds", s.handleSeeds)
		r.Get("/seeds/{key}", s.handleSeed)
		r.Get("/kv/{key}", s.handleKVGet)
		r.Post("/kv", s.handleKVPost)
		r.Get("/images", s.handleImages)
		r.Get("/images/*", s.handleImages)
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is [Server.Run] on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
