package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/formkit/pkg/form"
	"github.com/vango-dev/formkit/pkg/render"
	"github.com/vango-dev/formkit/pkg/vdom"
)

// FormHandle is the non-generic surface the server drives a form through.
// *form.Form[T] satisfies it for any T.
type FormHandle interface {
	HandleChange(field string, raw any, kind form.InputKind)
	HandleBlur(field string)
	HandleSubmit(ctx context.Context) bool
	ResetForm()
	ApplyMergePatch(patch []byte) error
	Snapshot() form.State
	Subscribe(fn func()) func()
}

// FormFactory creates one form instance per session.
type FormFactory func() FormHandle

// RenderFunc renders the form component for the SSR page.
type RenderFunc func(f FormHandle) *vdom.VNode

// Config configures the form server.
type Config struct {
	// Addr is the listen address (default ":3000").
	Addr string

	// Title is the page title for the SSR shell.
	Title string

	// ReadTimeout bounds how long a session waits for the next client
	// message before the connection is considered dead.
	ReadTimeout time.Duration

	// WriteTimeout bounds each outgoing write.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// CheckOrigin validates the WebSocket upgrade origin.
	// Default accepts same-host requests only.
	CheckOrigin func(r *http.Request) bool

	// Pretty enables indented SSR output.
	Pretty bool

	// MetricsRegistry receives the server metrics.
	// Default: prometheus.DefaultRegisterer.
	MetricsRegistry prometheus.Registerer

	// MetricsNamespace overrides the metrics namespace.
	MetricsNamespace string
}

// fillDefaults completes unset config fields.
func (c *Config) fillDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.Title == "" {
		c.Title = "formkit"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 60 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = sameHostOrigin
	}
}

// sameHostOrigin accepts upgrades with no Origin header or an Origin
// matching the request host.
func sameHostOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

// Server serves one form component over HTTP and WebSocket.
type Server struct {
	config   Config
	factory  FormFactory
	renderFn RenderFunc

	renderer *render.Renderer
	upgrader websocket.Upgrader
	metrics  *Metrics
	logger   *slog.Logger

	httpServer *http.Server
}

// New creates a Server hosting the given form component.
func New(config Config, factory FormFactory, renderFn RenderFunc) *Server {
	config.fillDefaults()

	s := &Server{
		config:   config,
		factory:  factory,
		renderFn: renderFn,
		renderer: render.New(render.Config{Pretty: config.Pretty}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		metrics: NewMetrics(MetricsConfig{
			Namespace: config.MetricsNamespace,
			Registry:  config.MetricsRegistry,
		}),
		logger: slog.Default().With("component", "server"),
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", s.metricsHandler())

	s.httpServer = &http.Server{
		Addr:              config.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start listens and serves until the context is canceled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.config.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// handleIndex serves the SSR'd form page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	f := s.factory()
	body, err := s.renderer.ToString(s.renderFn(f))
	if err != nil {
		s.logger.Error("render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell, s.config.Title, body)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// metricsHandler serves the Prometheus scrape endpoint against the
// configured registry.
func (s *Server) metricsHandler() http.HandlerFunc {
	var handler http.Handler
	if g, ok := s.config.MetricsRegistry.(prometheus.Gatherer); ok {
		handler = promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	} else {
		handler = promhttp.Handler()
	}
	return handler.ServeHTTP
}

// handleWebSocket upgrades the connection and runs one session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.RecordWebSocketError("upgrade")
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	session := newSession(conn, s.factory(), s.config, s.metrics)
	session.Run(r.Context())
}

// pageShell is the minimal HTML document the SSR body is embedded in.
const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>
`
