// Package anim provides the property-animation service used by the
// springboard: "animate a value from A to B over duration D, then call back".
//
// Two implementations are provided:
//
//   - [Timeline] keeps keyed tweens and advances them on explicit [Timeline.Tick]
//     calls. A new tween with the same key supersedes the running one.
//   - [Immediate] applies the end value synchronously, for hosts without a
//     frame clock (tests, one-shot renders).
//
// Nothing in this package starts goroutines; the owner of a Timeline decides
// when time advances.
package anim

import (
	"time"
)

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseOut is a quadratic ease-out.
func EaseOut(t float64) float64 { return 1 - (1-t)*(1-t) }

// EaseInOut is a quadratic ease-in-out.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}

// Animator runs property transitions.
//
// apply is called with intermediate values and finally with exactly to.
// done, if non-nil, runs once after the final apply. When a tween is
// superseded, its done callback is not called.
type Animator interface {
	Animate(key any, from, to float64, d time.Duration, ease Ease, apply func(v float64), done func())
}

// Immediate applies every animation instantly.
type Immediate struct{}

// Animate calls apply(to) then done.
func (Immediate) Animate(_ any, _, to float64, _ time.Duration, _ Ease, apply func(float64), done func()) {
	apply(to)
	if done != nil {
		done()
	}
}

var _ Animator = Immediate{}
