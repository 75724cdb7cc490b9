package core

import (
	"testing"

	"github.com/signalsfoundry/orbital-atlas/model"
)

func makeRecords(n int) []model.CatalogRecord {
	out := make([]model.CatalogRecord, n)
	for i := range out {
		out[i] = model.CatalogRecord{CatalogID: i + 1}
	}
	return out
}

func TestSubsampleIdentityWhenUnderBudget(t *testing.T) {
	in := makeRecords(100)

	out, report := Subsample(in, 100)
	if len(out) != 100 {
		t.Fatalf("len(out) = %d, want 100", len(out))
	}
	if &out[0] != &in[0] {
		t.Fatal("under-budget input should be returned unchanged, not copied")
	}
	if report.Subsampled {
		t.Fatal("Subsampled = true for under-budget input")
	}
	if report.Kept != 100 || report.Total != 100 || report.Stride != 1 {
		t.Fatalf("report = %+v, want kept=100 total=100 stride=1", report)
	}
}

func TestSubsampleSizeBound(t *testing.T) {
	for _, n := range []int{1, 7, 99, 1000, 4999} {
		for _, max := range []int{1, 2, 10, 500, 1500} {
			out, report := Subsample(makeRecords(n), max)
			if len(out) > max {
				t.Fatalf("n=%d max=%d: kept %d > budget", n, max, len(out))
			}
			if report.Kept != len(out) {
				t.Fatalf("n=%d max=%d: report.Kept=%d, len(out)=%d", n, max, report.Kept, len(out))
			}
			if n <= max && report.Subsampled {
				t.Fatalf("n=%d max=%d: Subsampled=true without reduction", n, max)
			}
		}
	}
}

func TestSubsampleStrideArithmetic(t *testing.T) {
	// 10000 over a 1500 budget: stride = ⌈10000/1500⌉ = 7, kept =
	// ⌈10000/7⌉ = 1429.
	out, report := Subsample(makeRecords(10000), 1500)

	if report.Stride != 7 {
		t.Fatalf("Stride = %d, want 7", report.Stride)
	}
	if len(out) != 1429 {
		t.Fatalf("kept %d, want 1429", len(out))
	}
	if !report.Subsampled {
		t.Fatal("Subsampled = false")
	}

	// Stride sampling keeps positions 0, 7, 14, ... in load order.
	if out[0].CatalogID != 1 || out[1].CatalogID != 8 || out[2].CatalogID != 15 {
		t.Fatalf("first kept ids = [%d %d %d], want [1 8 15]",
			out[0].CatalogID, out[1].CatalogID, out[2].CatalogID)
	}
	if last := out[len(out)-1].CatalogID; last != 9997 {
		t.Fatalf("last kept id = %d, want 9997", last)
	}
}

func TestSubsampleDeterminism(t *testing.T) {
	in := makeRecords(3333)

	a, _ := Subsample(in, 500)
	b, _ := Subsample(in, 500)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].CatalogID != b[i].CatalogID {
			t.Fatalf("element %d differs: %d vs %d", i, a[i].CatalogID, b[i].CatalogID)
		}
	}
}

func TestSubsampleNoBudget(t *testing.T) {
	out, report := Subsample(makeRecords(50), 0)
	if len(out) != 50 || report.Subsampled {
		t.Fatalf("non-positive budget should disable sampling, got %d kept, report %+v", len(out), report)
	}
}
