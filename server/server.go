// Package server serves the raw assets of a Basset under basset.handles.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/syntax-framework/basset/asset"
	"github.com/syntax-framework/basset/cmn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "basset"

// MetricsPath where the Prometheus metrics are exposed
const MetricsPath = "/metrics"

var contentTypes = map[asset.Group]string{
	asset.Styles:  "text/css; charset=utf-8",
	asset.Scripts: "application/javascript; charset=utf-8",
}

// Config of the asset handler
type Config struct {
	// Registry receives the handler metrics. Default: a new registry per handler.
	Registry *prometheus.Registry

	// TracerName is the name of the tracer (default: "basset").
	TracerName string

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Reloader serves the live reload websocket under basset.handles when set.
	Reloader *Reloader

	// OnError receives the errors of asset requests, e.g. to report them.
	OnError func(ctx context.Context, err error)
}

type Option func(*Config)

// WithRegistry sets the Prometheus registry
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// WithTracerName sets the tracer name
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithReloader serves the live reload websocket
func WithReloader(reloader *Reloader) Option {
	return func(c *Config) {
		c.Reloader = reloader
	}
}

func WithErrorHandler(fn func(ctx context.Context, err error)) Option {
	return func(c *Config) {
		c.OnError = fn
	}
}

type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newMetrics(registry prometheus.Registerer) *metrics {
	factory := promauto.With(registry)
	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "basset",
			Name:      "requests_total",
			Help:      "Total number of asset requests",
		}, []string{"group", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "basset",
			Name:      "request_duration_seconds",
			Help:      "Asset request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"group"}),
	}
}

type handler struct {
	basset  *asset.Basset
	metrics *metrics
	tracer  trace.Tracer
	logger  *slog.Logger
	onError func(ctx context.Context, err error)
}

// New the router serving GET and HEAD /<handles>/* and the metrics endpoint
func New(b *asset.Basset, opts ...Option) chi.Router {
	config := Config{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	h := &handler{
		basset:  b,
		metrics: newMetrics(config.Registry),
		tracer:  otel.Tracer(config.TracerName),
		logger:  config.Logger,
		onError: config.OnError,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	pattern := "/*"
	if handles := strings.Trim(b.Options().Handles, "/"); handles != "" {
		pattern = "/" + handles + "/*"
	}
	if config.Reloader != nil {
		r.Get(b.HandlesPath(ReloadPath), config.Reloader.HandleWebSocket)
	}
	r.Get(pattern, h.serveAsset)
	r.Head(pattern, h.serveAsset)
	r.Handle(MetricsPath, promhttp.HandlerFor(config.Registry, promhttp.HandlerOpts{}))
	return r
}

func (h *handler) serveAsset(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	relativePath := chi.URLParam(r, "*")

	ctx, span := h.tracer.Start(r.Context(), "basset.asset",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("basset.path", relativePath)),
	)
	defer span.End()

	group := "unknown"
	status := http.StatusOK
	defer func() {
		h.metrics.requestsTotal.WithLabelValues(group, strconv.Itoa(status)).Inc()
		h.metrics.requestDuration.WithLabelValues(group).Observe(time.Since(start).Seconds())
		span.SetAttributes(attribute.Int("http.status_code", status))
	}()

	var timings cmn.Timings
	var a *asset.Asset
	found := false
	timings.Measure("lookup", "Find asset", func() { a, found = h.basset.Lookup(relativePath) })
	if !found {
		status = http.StatusNotFound
		span.SetStatus(codes.Error, "asset not found")
		h.logger.DebugContext(ctx, "asset not found", slog.String("path", relativePath))
		http.NotFound(w, r)
		return
	}
	group = string(a.Group())
	span.SetAttributes(attribute.String("basset.asset", a.Name), attribute.String("basset.group", group))

	var contents string
	timings.Measure("read", "Read asset", func() { contents = h.basset.Contents(a) })

	etag := `"` + cmn.HashXXH64([]byte(contents)) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Server-Timing", timings.Header())

	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		status = http.StatusNotModified
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", contentTypes[a.Group()])
	w.Header().Set("Content-Length", strconv.Itoa(len(contents)))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write([]byte(contents)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.WarnContext(ctx, "unable to write asset", slog.String("path", relativePath), slog.Any("error", err))
		if h.onError != nil {
			h.onError(ctx, err)
		}
		return
	}
	span.SetStatus(codes.Ok, "")
}

// Serve listens on addr until ctx is done, then shuts the server down
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("serving assets", slog.String("addr", addr))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
