package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/assetref/pkg/assets"
	"github.com/vango-dev/assetref/pkg/render"
)

// Server is the HTTP server for pages and their assets.
type Server struct {
	config     *ServerConfig
	pipeline   *assets.Pipeline
	html       *render.Renderer
	router     chi.Router
	collected  *assets.AssetSet
	prefix     []string
	httpServer *http.Server
	logger     *slog.Logger
}

// collector is implemented by strategies that expose their collected assets.
type collector interface {
	Collected() *assets.AssetSet
}

// New creates a server rendering pages through pipeline.
// A nil config uses DefaultServerConfig().
func New(config *ServerConfig, pipeline *assets.Pipeline) *Server {
	config = config.withDefaults()

	prefix := config.AssetPrefix
	strategy := pipeline.Renderer.Strategy()
	if rel, ok := strategy.(*assets.RelativePathStrategy); ok && prefix == "" {
		prefix = rel.SitePrefix()
	}

	var collected *assets.AssetSet
	if c, ok := strategy.(collector); ok {
		collected = c.Collected()
	}
	if collected == nil {
		collected = pipeline.Renderer.Collector()
	}
	if collected == nil {
		collected = assets.NewAssetSet()
	}

	s := &Server{
		config:    config,
		pipeline:  pipeline,
		html:      render.NewRenderer(render.RendererConfig{Pretty: config.Pretty}),
		collected: collected,
		prefix:    splitPath(prefix),
		logger:    slog.Default().With("component", "server"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)
	if config.MetricsPath != "" {
		r.Method(http.MethodGet, config.MetricsPath, promhttp.HandlerFor(config.Gatherer, promhttp.HandlerOpts{}))
	}
	r.NotFound(s.serveAsset)
	s.router = r

	return s
}

// Router returns the chi router for adding routes and middleware.
// Middleware must be added before the first route.
func (s *Server) Router() chi.Router {
	return s.router
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Collected returns the assets rendered so far.
func (s *Server) Collected() *assets.AssetSet {
	return s.collected
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// SetLogger sets the server logger.
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// accessLog logs one line per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func splitPath(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
