package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/signalsfoundry/orbital-atlas/catalog"
	"github.com/signalsfoundry/orbital-atlas/core"
	"github.com/signalsfoundry/orbital-atlas/internal/config"
	"github.com/signalsfoundry/orbital-atlas/internal/logging"
	"github.com/signalsfoundry/orbital-atlas/internal/observability"
	"github.com/signalsfoundry/orbital-atlas/internal/viz"
	"github.com/signalsfoundry/orbital-atlas/sites"
	"github.com/signalsfoundry/orbital-atlas/timectrl"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	listenAddr := flag.String("listen-addr", "", "HTTP address the API listens on (overrides config)")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics (overrides config)")
	datasetPath := flag.String("dataset", "", "Path to the catalog snapshot CSV/TSV (overrides config)")
	sitesPath := flag.String("sites", "", "Path to the launch-site coordinate table JSON (overrides config)")
	demoTick := flag.Duration("demo-tick", 0, "When positive, auto-advance the playback year at this interval and publish frame gauges")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error(ctx, "failed to load config", logging.String("error", err.Error()))
		os.Exit(1)
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *datasetPath != "" {
		cfg.DatasetPath = *datasetPath
	}
	if *sitesPath != "" {
		cfg.SitesPath = *sitesPath
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewVizCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	metricsSrv := serveMetrics(cfg.MetricsAddr, collector, log)

	cat := loadCatalog(ctx, cfg, log)
	collector.SetCatalogCounts(cat.Len(), cat.Stats().Rejected, cat.Stats().Ineligible)

	table := loadSites(ctx, cfg.SitesPath, log)

	server := viz.NewServer(cat, table, cfg.RenderBudget, collector, log)
	apiSrv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Handler(),
	}

	go func() {
		log.Info(ctx, "starting atlas API server", logging.String("addr", cfg.ListenAddr))
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "API server exited", logging.String("error", err.Error()))
		}
	}()

	playback := startDemoPlayback(ctx, cat, cfg, collector, log, *demoTick)

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down atlas server")
	if playback != nil {
		playback.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = apiSrv.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

// loadCatalog reads the dataset and builds the working set. A dataset that
// yields no usable records leaves the view with nothing to draw, so it is
// fatal here rather than degraded.
func loadCatalog(ctx context.Context, cfg config.Config, log logging.Logger) *catalog.Catalog {
	ctx, span := otel.Tracer("orbital-atlas/server").Start(ctx, "catalog.load")
	defer span.End()

	delim, err := cfg.DelimiterRune()
	if err != nil {
		log.Error(ctx, "invalid delimiter setting", logging.String("error", err.Error()))
		os.Exit(1)
	}

	f, err := os.Open(cfg.DatasetPath)
	if err != nil {
		log.Error(ctx, "failed to open dataset", logging.String("path", cfg.DatasetPath), logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	cat, err := catalog.Load(f, catalog.LoadOptions{
		Delimiter:  delim,
		Thresholds: cfg.Thresholds(),
		DiscRadius: cfg.DiscRadius,
	})
	if err != nil {
		log.Error(ctx, "failed to load catalog", logging.String("path", cfg.DatasetPath), logging.String("error", err.Error()))
		os.Exit(1)
	}

	minYear, maxYear := cat.YearRange()
	stats := cat.Stats()
	span.SetAttributes(
		attribute.Int("catalog.records", cat.Len()),
		attribute.Int("catalog.rejected", stats.Rejected),
		attribute.Int("catalog.ineligible", stats.Ineligible),
	)
	log.Info(ctx, "catalog loaded",
		logging.String("path", cfg.DatasetPath),
		logging.Int("records", cat.Len()),
		logging.Int("rows_read", stats.RowsRead),
		logging.Int("rejected", stats.Rejected),
		logging.Int("ineligible", stats.Ineligible),
		logging.Int("min_year", minYear),
		logging.Int("max_year", maxYear),
	)
	return cat
}

// loadSites loads the coordinate table; a missing or broken table degrades
// the map views instead of failing startup.
func loadSites(ctx context.Context, path string, log logging.Logger) *sites.Table {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		log.Warn(ctx, "skipping launch-site table", logging.String("path", path), logging.String("error", err.Error()))
		return nil
	}
	defer f.Close()

	table, err := sites.LoadTable(f)
	if err != nil {
		log.Warn(ctx, "skipping launch-site table", logging.String("path", path), logging.String("error", err.Error()))
		return nil
	}
	log.Info(ctx, "launch-site table loaded", logging.String("path", path), logging.Int("sites", table.Len()))
	return table
}

// startDemoPlayback optionally drives the year range on a wall-clock tick,
// publishing per-year frame sizes to the gauges. Useful for demos and for
// watching the timeline animate on a dashboard without a browser client.
func startDemoPlayback(ctx context.Context, cat *catalog.Catalog, cfg config.Config, collector *observability.VizCollector, log logging.Logger, tick time.Duration) *timectrl.PlaybackController {
	if tick <= 0 {
		return nil
	}

	minYear, maxYear := cat.YearRange()
	builder := core.NewFrameBuilder(cat.Records(), cfg.RenderBudget)
	allTypes := core.NewTypeFilter(cat.ObjectTypes()...)

	pc := timectrl.NewPlaybackController(minYear, maxYear, tick, timectrl.Loop)
	pc.AddListener(func(year int) {
		frame := builder.Build(year, allTypes, 0)
		collector.ObserveFrame(frame.ActiveCount, len(frame.Points))
		log.Debug(ctx, "playback frame",
			logging.Int("year", year),
			logging.Int("active", frame.ActiveCount),
			logging.Int("points", len(frame.Points)),
		)
	})

	log.Info(ctx, "starting demo playback",
		logging.Int("start_year", minYear),
		logging.Int("end_year", maxYear),
		logging.String("tick", tick.String()),
	)
	pc.Start()
	return pc
}

func serveMetrics(addr string, collector *observability.VizCollector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
