package viz

import (
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/signalsfoundry/orbital-atlas/catalog"
	"github.com/signalsfoundry/orbital-atlas/core"
	"github.com/signalsfoundry/orbital-atlas/internal/logging"
	"github.com/signalsfoundry/orbital-atlas/model"
	"github.com/signalsfoundry/orbital-atlas/sites"
)

// summaryResponse describes the loaded dataset: everything the client
// needs to build its controls before requesting the first frame.
type summaryResponse struct {
	MinYear     int                `json:"minYear"`
	MaxYear     int                `json:"maxYear"`
	ObjectTypes []model.ObjectType `json:"objectTypes"`
	Continents  []string           `json:"continents,omitempty"`
	Stats       catalog.LoadStats  `json:"stats"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request, _ logging.Logger) {
	min, max := s.catalog.YearRange()
	resp := summaryResponse{
		MinYear:     min,
		MaxYear:     max,
		ObjectTypes: s.catalog.ObjectTypes(),
		Stats:       s.catalog.Stats(),
	}
	if s.sites != nil {
		resp.Continents = s.sites.Continents()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request, log logging.Logger) {
	ctx, span := s.tracer.Start(r.Context(), "viz.frame")
	defer span.End()

	q := r.URL.Query()

	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be an integer")
		return
	}

	budget := 0
	if raw := q.Get("budget"); raw != "" {
		budget, err = strconv.Atoi(raw)
		if err != nil || budget <= 0 {
			writeError(w, http.StatusBadRequest, "budget must be a positive integer")
			return
		}
		if budget > s.maxBudget {
			budget = s.maxBudget
		}
	}

	filter := core.NewTypeFilter(s.catalog.ObjectTypes()...)
	if q.Has("types") {
		filter = parseTypes(q.Get("types"))
	}

	frame := s.frames.Build(year, filter, budget)

	span.SetAttributes(
		attribute.Int("frame.year", year),
		attribute.Int("frame.active", frame.ActiveCount),
		attribute.Int("frame.points", len(frame.Points)),
	)
	if s.collector != nil {
		s.collector.ObserveFrame(frame.ActiveCount, len(frame.Points))
	}
	log.Debug(ctx, "frame built",
		logging.Int("year", year),
		logging.Int("active", frame.ActiveCount),
		logging.Int("points", len(frame.Points)),
	)

	writeJSON(w, http.StatusOK, frame)
}

// parseTypes maps an explicit ?types= parameter onto a core.TypeFilter.
// A missing parameter means all types present in the catalog (handled by
// the caller); an explicit empty selection ("types=") admits nothing,
// matching a user who unticked every checkbox.
func parseTypes(raw string) core.TypeFilter {
	filter := make(core.TypeFilter)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		filter[model.ObjectType(strings.ToUpper(part))] = true
	}
	return filter
}

// sitesResponse is the map view payload: aggregated site points plus the
// coordinate lookups that failed, reported in aggregate rather than
// failing the render.
type sitesResponse struct {
	Sites   []sites.SiteCount   `json:"sites"`
	Missing sites.MissingReport `json:"missing"`
}

func (s *Server) handleSites(w http.ResponseWriter, r *http.Request, log logging.Logger) {
	if s.sites == nil {
		writeError(w, http.StatusNotFound, "no launch-site table loaded")
		return
	}

	ctx, span := s.tracer.Start(r.Context(), "viz.sites")
	defer span.End()

	q := r.URL.Query()
	year := 0
	if raw := q.Get("year"); raw != "" {
		var err error
		year, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
	}
	continent := q.Get("continent")

	counts, missing := s.sites.Aggregate(s.catalog.Records(), continent, year)

	span.SetAttributes(
		attribute.Int("sites.count", len(counts)),
		attribute.Int("sites.missing", missing.Count),
	)
	if missing.Count > 0 {
		log.Warn(ctx, "records reference unknown launch sites",
			logging.Int("records", missing.Count),
			logging.Int("distinct_sites", len(missing.Sites)),
		)
	}

	writeJSON(w, http.StatusOK, sitesResponse{Sites: counts, Missing: missing})
}
