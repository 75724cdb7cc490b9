package core

import "github.com/signalsfoundry/orbital-atlas/model"

// SampleReport tells the caller what the subsampler did, for display next
// to the rendered view ("showing 1429 of 10000").
type SampleReport struct {
	Total      int  `json:"total"`
	Kept       int  `json:"kept"`
	Stride     int  `json:"stride"`
	Subsampled bool `json:"subsampled"`
}

// Subsample reduces an active set to at most max elements by stride
// sampling: every stride-th element by position, stride = ⌈n/max⌉. The
// reduction is deterministic and preserves input order, which keeps the
// rendered subset stable across recomputations, a property a true random
// sample would not have. When the input already fits the budget it is
// returned unchanged (same backing array). A non-positive max disables the
// budget.
func Subsample(in []model.CatalogRecord, max int) ([]model.CatalogRecord, SampleReport) {
	n := len(in)
	if max <= 0 || n <= max {
		return in, SampleReport{Total: n, Kept: n, Stride: 1}
	}

	stride := (n + max - 1) / max
	kept := make([]model.CatalogRecord, 0, (n+stride-1)/stride)
	for i := 0; i < n; i += stride {
		kept = append(kept, in[i])
	}

	return kept, SampleReport{
		Total:      n,
		Kept:       len(kept),
		Stride:     stride,
		Subsampled: true,
	}
}
