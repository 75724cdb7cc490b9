// Package viz serves the visualization API: read-only JSON views derived
// from the immutable catalog working set. It is the Go-side counterpart of
// the browser's "fetch the data, then draw" step: every endpoint is a
// GET, every response is deterministic for a given dataset snapshot.
package viz

import (
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/orbital-atlas/catalog"
	"github.com/signalsfoundry/orbital-atlas/core"
	"github.com/signalsfoundry/orbital-atlas/internal/logging"
	"github.com/signalsfoundry/orbital-atlas/internal/observability"
	"github.com/signalsfoundry/orbital-atlas/sites"
)

const requestIDHeader = "X-Request-Id"

// Server bundles the loaded catalog, the frame builder, and the site table
// behind an http.Handler. It holds no mutable state of its own.
type Server struct {
	log       logging.Logger
	catalog   *catalog.Catalog
	frames    *core.FrameBuilder
	sites     *sites.Table
	collector *observability.VizCollector
	tracer    trace.Tracer

	// maxBudget caps the per-request budget override; clients may lower
	// the render budget but never raise it past the server's limit.
	maxBudget int
}

// NewServer wires the API around a loaded catalog. table may be nil when
// the dataset has no site columns (timeline-only deployments); the sites
// endpoint then reports 404. collector may be nil in tests.
func NewServer(cat *catalog.Catalog, table *sites.Table, renderBudget int, collector *observability.VizCollector, log logging.Logger) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{
		log:       log,
		catalog:   cat,
		frames:    core.NewFrameBuilder(cat.Records(), renderBudget),
		sites:     table,
		collector: collector,
		tracer:    otel.Tracer("orbital-atlas/viz"),
		maxBudget: renderBudget,
	}
}

// Handler returns the API routes with per-route metrics and request-id
// logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/summary", s.route("summary", s.handleSummary))
	mux.Handle("/api/frame", s.route("frame", s.handleFrame))
	mux.Handle("/api/sites", s.route("sites", s.handleSites))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// route applies the request-id and metrics middleware to one handler. The
// inbound X-Request-Id header is honoured when present, mirroring how
// request ids propagate from the reverse proxy.
func (s *Server) route(name string, h func(http.ResponseWriter, *http.Request, logging.Logger)) http.Handler {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "only GET is supported")
			return
		}

		ctx := r.Context()
		if incoming := r.Header.Get(requestIDHeader); incoming != "" {
			ctx = logging.ContextWithRequestID(ctx, incoming)
		}
		ctx, reqLog := logging.WithRequestLogger(ctx, s.log.With(logging.String("route", name)))
		w.Header().Set(requestIDHeader, logging.RequestIDFromContext(ctx))

		h(w, r.WithContext(ctx), reqLog)
	})

	if s.collector != nil {
		handler = s.collector.Middleware(name, handler)
	}
	return handler
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
