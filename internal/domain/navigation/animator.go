package navigation

import (
	"time"

	"campusnav/internal/domain/entity"
)

const (
	DefaultAnimationDuration = 2 * time.Second
	DefaultAnimationSteps    = 60
)

// AnimationState is a snapshot of the animator.
type AnimationState struct {
	Running    bool
	Generation uint64
	Step       int
	Locked     bool
}

// Animator produces a fixed number of evenly spaced frames revealing the
// straight segment between start and end. It does not own a timer; the caller
// schedules a tick every Interval and feeds the generation back to Advance.
type Animator struct {
	duration time.Duration
	steps    int

	running    bool
	generation uint64
	step       int
	locked     bool
	from, to   entity.Coordinate
}

// NewAnimator creates an animator. Non-positive arguments select the defaults.
func NewAnimator(duration time.Duration, steps int) *Animator {
	if duration <= 0 {
		duration = DefaultAnimationDuration
	}
	if steps <= 0 {
		steps = DefaultAnimationSteps
	}

	return &Animator{duration: duration, steps: steps}
}

// Interval is the delay between consecutive frames.
func (a *Animator) Interval() time.Duration {
	return a.duration / time.Duration(a.steps)
}

// Steps returns the number of frames per animation.
func (a *Animator) Steps() int {
	return a.steps
}

// Start begins a new reveal bound to generation, superseding any running one.
func (a *Animator) Start(generation uint64, from, to entity.Coordinate) {
	a.running = true
	a.generation = generation
	a.step = 0
	a.locked = false
	a.from = from
	a.to = to
}

// Advance emits the next frame. ok is false when nothing is running or the
// tick belongs to another generation; such ticks must not be rescheduled.
func (a *Animator) Advance(generation uint64) (frame entity.AnimationFrame, ok bool) {
	if !a.running || generation != a.generation {
		return entity.AnimationFrame{}, false
	}

	a.step++
	revealed := make([]entity.Coordinate, 0, a.step+1)
	for i := 0; i <= a.step; i++ {
		revealed = append(revealed, a.from.Interpolate(a.to, float64(i)/float64(a.steps)))
	}

	if a.step >= a.steps {
		a.running = false
		a.locked = true
	}

	return entity.AnimationFrame{
		Generation: generation,
		Step:       a.step,
		Steps:      a.steps,
		Revealed:   revealed,
		Locked:     a.locked,
	}, true
}

// Rebind moves a reveal to a new generation, keeping its progress and lock.
// Ticks tagged with the previous generation are rejected afterwards.
func (a *Animator) Rebind(generation uint64) {
	a.generation = generation
}

// Done reports whether the last Advance completed the reveal.
func (a *Animator) Done() bool {
	return !a.running
}

// Stop cancels the running reveal and releases the view lock.
func (a *Animator) Stop() {
	a.running = false
	a.locked = false
	a.step = 0
}

// State returns a snapshot of the animator.
func (a *Animator) State() AnimationState {
	return AnimationState{
		Running:    a.running,
		Generation: a.generation,
		Step:       a.step,
		Locked:     a.locked,
	}
}
