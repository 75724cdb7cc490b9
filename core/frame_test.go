package core

import (
	"testing"
	"time"

	"github.com/signalsfoundry/orbital-atlas/model"
)

func frameRecords() []model.CatalogRecord {
	gen := NewLayoutGenerator(0)
	records := []model.CatalogRecord{
		rec(10, model.ObjectPayload, 1975, time.Time{}),
		rec(11, model.ObjectDebris, 1988, time.Time{}),
		rec(12, model.ObjectPayload, 1995, time.Time{}),
	}
	for i := range records {
		records[i].Layout = gen.For(records[i].CatalogID)
	}
	return records
}

func TestFrameBuilderCarriesLayout(t *testing.T) {
	records := frameRecords()
	b := NewFrameBuilder(records, 100)

	frame := b.Build(2000, NewTypeFilter(model.ObjectPayload, model.ObjectDebris), 0)
	if frame.Year != 2000 {
		t.Fatalf("Year = %d, want 2000", frame.Year)
	}
	if frame.ActiveCount != 3 || len(frame.Points) != 3 {
		t.Fatalf("active=%d points=%d, want 3/3", frame.ActiveCount, len(frame.Points))
	}

	for i, p := range frame.Points {
		r := records[i]
		if p.ID != r.CatalogID || p.ObjectType != r.ObjectType {
			t.Fatalf("point %d identity mismatch: %+v vs record %+v", i, p, r)
		}
		if p.BaseAngle != r.Layout.BaseAngle || p.BaseRadius != r.Layout.BaseRadius || p.DriftRate != r.Layout.DriftRate {
			t.Fatalf("point %d layout mismatch", i)
		}
	}
}

func TestFrameBuilderBudgetOverride(t *testing.T) {
	records := make([]model.CatalogRecord, 40)
	for i := range records {
		records[i] = rec(i+1, model.ObjectPayload, 1970, time.Time{})
	}
	b := NewFrameBuilder(records, 30)
	all := NewTypeFilter(model.ObjectPayload)

	// Default budget applies when the override is zero.
	frame := b.Build(2000, all, 0)
	if len(frame.Points) > 30 || !frame.Sample.Subsampled {
		t.Fatalf("default budget not applied: %d points, %+v", len(frame.Points), frame.Sample)
	}

	// Explicit budget takes precedence.
	frame = b.Build(2000, all, 10)
	if len(frame.Points) > 10 {
		t.Fatalf("override budget not applied: %d points", len(frame.Points))
	}
	if frame.ActiveCount != 40 {
		t.Fatalf("ActiveCount = %d, want 40 regardless of sampling", frame.ActiveCount)
	}
}

func TestFrameBuilderDeterminism(t *testing.T) {
	b := NewFrameBuilder(frameRecords(), 2)
	all := NewTypeFilter(model.ObjectPayload, model.ObjectDebris)

	a := b.Build(1999, all, 0)
	c := b.Build(1999, all, 0)
	if a.ActiveCount != c.ActiveCount || len(a.Points) != len(c.Points) {
		t.Fatalf("frames differ across identical builds")
	}
	for i := range a.Points {
		if a.Points[i] != c.Points[i] {
			t.Fatalf("point %d differs across identical builds", i)
		}
	}
}
