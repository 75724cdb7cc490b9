package timectrl

import (
	"sync"
	"time"
)

// YearClock is an interface for reading the current playback year. View
// components depend on this abstraction rather than the concrete
// controller so they can be driven by a fixed year in tests.
type YearClock interface {
	// Year returns the current playback year.
	Year() int
}

// Mode describes what the controller does when playback reaches the end
// of the year range.
type Mode int

const (
	// Once stops playback at the final year.
	Once Mode = iota
	// Loop wraps back to the first year and keeps going until Stop.
	Loop
)

// PlaybackController drives the animated timeline: it steps the current
// year through [StartYear, EndYear] on a wall-clock tick and notifies
// registered listeners on every step. It implements YearClock.
//
// The controller only owns the scalar "current year"; listeners recompute
// their views from the read-only catalog, so a dropped or repeated tick is
// harmless.
type PlaybackController struct {
	mu        sync.RWMutex
	StartYear int
	EndYear   int
	Tick      time.Duration
	Mode      Mode

	currentYear int

	listeners []func(int)

	stopOnce sync.Once
	stop     chan struct{}
}

// NewPlaybackController constructs a controller positioned at startYear.
func NewPlaybackController(startYear, endYear int, tick time.Duration, mode Mode) *PlaybackController {
	if endYear < startYear {
		endYear = startYear
	}
	return &PlaybackController{
		StartYear:   startYear,
		EndYear:     endYear,
		Tick:        tick,
		Mode:        mode,
		currentYear: startYear,
		stop:        make(chan struct{}),
	}
}

// Year returns the current playback year. Implements YearClock.
func (pc *PlaybackController) Year() int {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.currentYear
}

// SetYear jumps playback to a specific year (slider drag), clamped to the
// controller's range, and notifies listeners.
func (pc *PlaybackController) SetYear(year int) {
	if year < pc.StartYear {
		year = pc.StartYear
	} else if year > pc.EndYear {
		year = pc.EndYear
	}

	pc.mu.Lock()
	pc.currentYear = year
	pc.mu.Unlock()

	pc.notify(year)
}

// AddListener registers a callback invoked on every year change. Listeners
// must be registered before Start.
func (pc *PlaybackController) AddListener(fn func(int)) {
	pc.listeners = append(pc.listeners, fn)
}

// Start runs playback in a separate goroutine and returns a channel that
// is closed when playback finishes. In Loop mode it runs until Stop.
func (pc *PlaybackController) Start() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		ticker := time.NewTicker(pc.Tick)
		defer ticker.Stop()

		for {
			select {
			case <-pc.stop:
				return
			case <-ticker.C:
			}

			pc.mu.Lock()
			year := pc.currentYear + 1
			if year > pc.EndYear {
				if pc.Mode == Once {
					pc.mu.Unlock()
					return
				}
				year = pc.StartYear
			}
			pc.currentYear = year
			pc.mu.Unlock()

			pc.notify(year)
		}
	}()
	return done
}

// Stop ends playback. Safe to call more than once.
func (pc *PlaybackController) Stop() {
	pc.stopOnce.Do(func() { close(pc.stop) })
}

func (pc *PlaybackController) notify(year int) {
	for _, fn := range pc.listeners {
		fn(year)
	}
}
