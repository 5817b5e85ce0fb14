package anim

import (
	"time"
)

type tween struct {
	key      any
	from, to float64
	duration time.Duration
	elapsed  time.Duration
	ease     Ease
	apply    func(float64)
	done     func()
}

// Timeline is a frame-driven Animator. It is not safe for concurrent use; the
// springboard runs on a single event loop.
type Timeline struct {
	tweens []*tween
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Animate schedules a tween. A running tween with the same key is dropped
// without calling its done callback. Zero or negative durations complete
// immediately.
func (tl *Timeline) Animate(key any, from, to float64, d time.Duration, ease Ease, apply func(float64), done func()) {
	tl.cancel(key)
	if d <= 0 {
		apply(to)
		if done != nil {
			done()
		}
		return
	}
	if ease == nil {
		ease = Linear
	}
	apply(from)
	tl.tweens = append(tl.tweens, &tween{
		key: key, from: from, to: to, duration: d,
		ease: ease, apply: apply, done: done,
	})
}

// Cancel drops the tween with the given key, if any. Its done callback is not
// called.
func (tl *Timeline) Cancel(key any) {
	tl.cancel(key)
}

func (tl *Timeline) cancel(key any) {
	if key == nil {
		return
	}
	for i, tw := range tl.tweens {
		if tw.key == key {
			tl.tweens = append(tl.tweens[:i], tl.tweens[i+1:]...)
			return
		}
	}
}

// Active reports whether any tween is still running.
func (tl *Timeline) Active() bool {
	return len(tl.tweens) > 0
}

// Len returns the number of running tweens.
func (tl *Timeline) Len() int {
	return len(tl.tweens)
}

// Tick advances every tween by dt. Completion callbacks run after all tweens
// have been stepped, so a callback may schedule new tweens safely.
func (tl *Timeline) Tick(dt time.Duration) {
	if len(tl.tweens) == 0 {
		return
	}

	running := tl.tweens[:0:0]
	var finished []*tween
	for _, tw := range tl.tweens {
		tw.elapsed += dt
		if tw.elapsed >= tw.duration {
			tw.apply(tw.to)
			finished = append(finished, tw)
			continue
		}
		progress := tw.ease(float64(tw.elapsed) / float64(tw.duration))
		tw.apply(tw.from + (tw.to-tw.from)*progress)
		running = append(running, tw)
	}
	tl.tweens = running

	for _, tw := range finished {
		if tw.done != nil {
			tw.done()
		}
	}
}

// Flush completes every running tween immediately.
func (tl *Timeline) Flush() {
	for tl.Active() {
		var longest time.Duration
		for _, tw := range tl.tweens {
			if rem := tw.duration - tw.elapsed; rem > longest {
				longest = rem
			}
		}
		tl.Tick(longest)
	}
}

var _ Animator = (*Timeline)(nil)
