package feed

import "time"

// Swipe thresholds, in terminal cells.
const (
	DefaultMinDistance = 8
	DefaultMinVelocity = 20.0 // cells per second
)

// SwipeDetector turns a horizontal press/release pair into a swipe event.
// A drag counts as a swipe when it covers at least MinDistance cells at
// MinVelocity cells per second or faster.
type SwipeDetector struct {
	MinDistance int
	MinVelocity float64

	startX  int
	startAt time.Time
	pressed bool
}

// NewSwipeDetector returns a detector with the given thresholds. Zero or
// negative values fall back to the defaults.
func NewSwipeDetector(minDistance int, minVelocity float64) *SwipeDetector {
	if minDistance <= 0 {
		minDistance = DefaultMinDistance
	}
	if minVelocity <= 0 {
		minVelocity = DefaultMinVelocity
	}
	return &SwipeDetector{MinDistance: minDistance, MinVelocity: minVelocity}
}

// Begin records a press at column x.
func (d *SwipeDetector) Begin(x int, at time.Time) {
	d.startX = x
	d.startAt = at
	d.pressed = true
}

// Pressed reports whether a press is being tracked.
func (d *SwipeDetector) Pressed() bool {
	return d.pressed
}

// Cancel discards a tracked press.
func (d *SwipeDetector) Cancel() {
	d.pressed = false
}

// End completes the gesture at column x. Moving left yields EventSwipeLeft,
// moving right EventSwipeRight. Anything else yields EventNone.
func (d *SwipeDetector) End(x int, at time.Time) Event {
	if !d.pressed {
		return EventNone
	}
	d.pressed = false

	dx := x - d.startX
	dist := dx
	if dist < 0 {
		dist = -dist
	}
	if dist == 0 || dist < d.minDistance() {
		return EventNone
	}

	elapsed := at.Sub(d.startAt).Seconds()
	if elapsed > 0 && float64(dist)/elapsed < d.minVelocity() {
		return EventNone
	}

	if dx < 0 {
		return EventSwipeLeft
	}
	return EventSwipeRight
}

func (d *SwipeDetector) minDistance() int {
	if d.MinDistance <= 0 {
		return DefaultMinDistance
	}
	return d.MinDistance
}

func (d *SwipeDetector) minVelocity() float64 {
	if d.MinVelocity <= 0 {
		return DefaultMinVelocity
	}
	return d.MinVelocity
}
