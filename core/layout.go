package core

import (
	"math"

	"github.com/signalsfoundry/orbital-atlas/model"
)

// DefaultDiscRadiusPx is the radius of the central Earth disc in the
// timeline view, in logical pixels. Layout radii are measured outward
// from it.
const DefaultDiscRadiusPx = 120.0

const (
	// Band the points occupy outside the disc: [R+35, R+225].
	layoutInnerMarginPx = 35.0
	layoutBandWidthPx   = 190.0

	// Drift magnitude range; sign is drawn separately.
	driftRateMin  = 0.08
	driftRateSpan = 0.20
)

// LayoutGenerator derives the stylized orbital placement for a catalog id.
// The placement is a visual convention, not orbital mechanics: points sit
// on an annulus outside the central disc, biased to the lower hemisphere,
// and drift at a small random angular rate.
type LayoutGenerator struct {
	// DiscRadius is the reference radius R the annulus is anchored to.
	DiscRadius float64
}

// NewLayoutGenerator constructs a generator anchored to the given disc
// radius, defaulting to DefaultDiscRadiusPx when non-positive.
func NewLayoutGenerator(discRadius float64) LayoutGenerator {
	if discRadius <= 0 {
		discRadius = DefaultDiscRadiusPx
	}
	return LayoutGenerator{DiscRadius: discRadius}
}

// For returns the layout for a catalog id. The sequence is seeded directly
// from the id, so the same id always yields bit-identical values: the
// animation loop re-derives positions every frame and must not jitter
// across renders or resizes.
func (g LayoutGenerator) For(catalogID int) model.Layout {
	rng := mulberry32{state: uint32(catalogID)}

	angle := math.Pi + rng.next()*math.Pi
	radius := g.DiscRadius + layoutInnerMarginPx + rng.next()*layoutBandWidthPx
	drift := driftRateMin + rng.next()*driftRateSpan
	if rng.next() < 0.5 {
		drift = -drift
	}

	return model.Layout{
		BaseAngle:  angle,
		BaseRadius: radius,
		DriftRate:  drift,
	}
}

// mulberry32 is a tiny 32-bit-state PRNG. It is used instead of math/rand
// because the layout contract requires a fixed algorithm whose output for
// a given seed is stable across Go releases and platforms.
type mulberry32 struct {
	state uint32
}

// next returns the next value in [0, 1).
func (m *mulberry32) next() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	t ^= t >> 14
	return float64(t) / (1 << 32)
}
