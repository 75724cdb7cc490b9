package model

// Layout is the stylized orbital placement of a record on the timeline
// view. It is a pure function of the record's catalog id: re-deriving it
// for the same id yields bit-identical values, so re-renders and resizes
// never jitter. None of these values are physically meaningful.
type Layout struct {
	// BaseAngle is the resting angular position in radians, restricted to
	// the lower half of the disc ([π, 2π)).
	BaseAngle float64

	// BaseRadius is the resting distance from the disc centre in pixels.
	BaseRadius float64

	// DriftRate is the signed angular velocity applied by the animation
	// loop, in radians per elapsed-time unit.
	DriftRate float64
}
