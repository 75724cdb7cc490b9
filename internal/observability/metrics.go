package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// VizCollector bundles Prometheus metrics for the visualization API and
// provides helpers to wire them into HTTP handlers.
type VizCollector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	CatalogRecords        prometheus.Gauge
	CatalogRejectedRows   prometheus.Gauge
	CatalogIneligibleRows prometheus.Gauge

	ActiveSetSize     prometheus.Gauge
	FramePointsServed prometheus.Gauge
}

// NewVizCollector registers visualization Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when
// nil.
func NewVizCollector(reg prometheus.Registerer) (*VizCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_http_requests_total",
		Help: "Total number of handled API requests, labeled by route, method, and status code.",
	}, []string{"route", "method", "code"})
	requests, err := registerCounterVec(reg, requests, "atlas_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "atlas_http_request_duration_seconds",
		Help:    "API request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
	}, []string{"route"})
	durations, err = registerHistogramVec(reg, durations, "atlas_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	records, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "atlas_catalog_records",
		Help: "Number of records in the loaded working set.",
	}), "atlas_catalog_records")
	if err != nil {
		return nil, err
	}
	rejected, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "atlas_catalog_rejected_rows",
		Help: "Rows dropped at load time for an unusable launch date.",
	}), "atlas_catalog_rejected_rows")
	if err != nil {
		return nil, err
	}
	ineligible, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "atlas_catalog_ineligible_rows",
		Help: "Rows dropped at load time for failing the LEO predicate.",
	}), "atlas_catalog_ineligible_rows")
	if err != nil {
		return nil, err
	}
	activeSet, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "atlas_active_set_size",
		Help: "Active-set size of the most recently computed frame.",
	}), "atlas_active_set_size")
	if err != nil {
		return nil, err
	}
	framePoints, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "atlas_frame_points_served",
		Help: "Points kept after subsampling in the most recently computed frame.",
	}), "atlas_frame_points_served")
	if err != nil {
		return nil, err
	}

	return &VizCollector{
		gatherer:              gatherer,
		HTTPRequests:          requests,
		HTTPDurations:         durations,
		CatalogRecords:        records,
		CatalogRejectedRows:   rejected,
		CatalogIneligibleRows: ineligible,
		ActiveSetSize:         activeSet,
		FramePointsServed:     framePoints,
	}, nil
}

// Middleware records request counts and durations for one named route.
func (c *VizCollector) Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		if c == nil {
			return
		}
		if c.HTTPRequests != nil {
			c.HTTPRequests.WithLabelValues(route, r.Method, fmt.Sprintf("%d", sw.code)).Inc()
		}
		if c.HTTPDurations != nil {
			c.HTTPDurations.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}
	})
}

// Handler exposes a ready-to-use /metrics handler.
func (c *VizCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetCatalogCounts publishes the load statistics so dashboards can see the
// dataset shape without scraping logs.
func (c *VizCollector) SetCatalogCounts(records, rejected, ineligible int) {
	if c == nil {
		return
	}
	if c.CatalogRecords != nil {
		c.CatalogRecords.Set(float64(records))
	}
	if c.CatalogRejectedRows != nil {
		c.CatalogRejectedRows.Set(float64(rejected))
	}
	if c.CatalogIneligibleRows != nil {
		c.CatalogIneligibleRows.Set(float64(ineligible))
	}
}

// ObserveFrame records the sizes of the most recently built frame.
func (c *VizCollector) ObserveFrame(activeSet, pointsKept int) {
	if c == nil {
		return
	}
	if c.ActiveSetSize != nil {
		c.ActiveSetSize.Set(float64(activeSet))
	}
	if c.FramePointsServed != nil {
		c.FramePointsServed.Set(float64(pointsKept))
	}
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
