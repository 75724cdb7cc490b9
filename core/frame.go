package core

import (
	"github.com/signalsfoundry/orbital-atlas/model"
)

// RenderPoint is the per-record payload the presentation layer needs to
// draw and animate one object: identity, category, and the derived layout.
// The client applies DriftRate itself each animation frame; the server
// never recomputes positions over time.
type RenderPoint struct {
	ID         int              `json:"id"`
	ObjectType model.ObjectType `json:"objectType"`
	BaseAngle  float64          `json:"baseAngle"`
	BaseRadius float64          `json:"baseRadius"`
	DriftRate  float64          `json:"driftRate"`
}

// Frame is the complete render view for one target year: the subsampled
// active set plus the sample report the UI shows alongside it.
type Frame struct {
	Year        int           `json:"year"`
	ActiveCount int           `json:"activeCount"`
	Points      []RenderPoint `json:"points"`
	Sample      SampleReport  `json:"sample"`
}

// FrameBuilder turns the immutable working set into per-year frames. It
// holds no per-request state, so one builder serves all handlers.
type FrameBuilder struct {
	records []model.CatalogRecord
	budget  int
}

// NewFrameBuilder wraps a working set with a default render budget. The
// records slice is treated as read-only.
func NewFrameBuilder(records []model.CatalogRecord, budget int) *FrameBuilder {
	return &FrameBuilder{records: records, budget: budget}
}

// Budget returns the builder's default render budget.
func (b *FrameBuilder) Budget() int { return b.budget }

// Build computes the frame for a target year. budget overrides the
// builder default when positive. Output is deterministic for a given
// (year, filter, budget): the active-set scan preserves load order and the
// subsampler is stride-based, so repeated calls return identical frames.
func (b *FrameBuilder) Build(year int, allowed TypeFilter, budget int) Frame {
	if budget <= 0 {
		budget = b.budget
	}

	active := ActiveAt(b.records, year, allowed)
	sampled, report := Subsample(active, budget)

	points := make([]RenderPoint, len(sampled))
	for i := range sampled {
		r := &sampled[i]
		points[i] = RenderPoint{
			ID:         r.CatalogID,
			ObjectType: r.ObjectType,
			BaseAngle:  r.Layout.BaseAngle,
			BaseRadius: r.Layout.BaseRadius,
			DriftRate:  r.Layout.DriftRate,
		}
	}

	return Frame{
		Year:        year,
		ActiveCount: len(active),
		Points:      points,
		Sample:      report,
	}
}
