package script

import (
	"context"
	"math"
	"time"

	"github.com/matzehuels/springboard/pkg/errors"
	"github.com/matzehuels/springboard/pkg/geom"
)

// Gesture shaping.
const (
	// gestureMoves is how many incremental moves a drag or pinch is split
	// into.
	gestureMoves = 10

	// flingTravel is how long the finger moves at fling velocity before
	// lifting.
	flingTravel = 50 * time.Millisecond
)

// Result is the resting state after one step.
type Result struct {
	Step    int
	Action  string
	Focused int
	Offset  geom.Point
	Zoom    float64
	Elapsed time.Duration
}

// Runner replays scripts against a scene.
type Runner struct {
	scene *Scene
	limit time.Duration
}

// NewRunner returns a runner that lets each step settle for at most limit
// of simulated time. A zero limit selects DefaultSettleLimit.
func NewRunner(scene *Scene, limit time.Duration) *Runner {
	if limit <= 0 {
		limit = DefaultSettleLimit
	}
	return &Runner{scene: scene, limit: limit}
}

// Run replays s, calling observe after every step. It stops early when ctx
// is done or a step fails.
func (r *Runner) Run(ctx context.Context, s *Script, observe func(Result)) error {
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		elapsed, err := r.Step(st)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScript, err, "step %d (%s)", i+1, st.Action)
		}
		if observe != nil {
			v := r.scene.Viewport
			observe(Result{
				Step:    i + 1,
				Action:  st.Action,
				Focused: r.scene.Board.LastFocusedIndex(),
				Offset:  v.ContentOffset(),
				Zoom:    v.ZoomScale(),
				Elapsed: elapsed,
			})
		}
	}
	return nil
}

// Step performs one step and settles. It returns the simulated time spent.
// Steps are validated first, so scripts built in code get the same checks
// as decoded ones.
func (r *Runner) Step(st Step) (time.Duration, error) {
	if err := st.validate(); err != nil {
		return 0, err
	}
	sc := r.scene
	vp := sc.Viewport

	switch st.Action {
	case ActionDrag:
		vp.BeginDrag()
		move := geom.Pt(st.DX, st.DY).Mul(1.0 / gestureMoves)
		for i := 0; i < gestureMoves; i++ {
			vp.DragBy(move)
			sc.Tick(sc.frame)
		}
		vp.EndDrag(geom.Point{})

	case ActionFling:
		finger := geom.Pt(st.VX, st.VY)
		vp.BeginDrag()
		vp.DragBy(finger.Mul(flingTravel.Seconds()))
		sc.Tick(sc.frame)
		// the content offset moves against the finger
		vp.EndDrag(finger.Mul(-1))

	case ActionPinch:
		anchor := r.anchor(st)
		step := math.Pow(st.Factor, 1.0/gestureMoves)
		vp.BeginZoom()
		for i := 0; i < gestureMoves; i++ {
			vp.ZoomBy(step, anchor)
			sc.Tick(sc.frame)
		}
		vp.EndZoom()

	case ActionDoubleTap:
		vp.DoubleTap(geom.Pt(*st.X, *st.Y))

	case ActionResize:
		vp.Resize(geom.Sz(st.Width, st.Height))

	case ActionFocus:
		zoom := st.Zoom
		if zoom == 0 {
			zoom = vp.ZoomScale()
		}
		if err := sc.Board.FocusOn(st.Index, zoom, st.Animated); err != nil {
			return 0, err
		}

	case ActionShowAll:
		sc.Board.ShowAllContent(true)

	case ActionIntro:
		sc.Board.PlayIntroAnimation()

	case ActionWait:
		var spent time.Duration
		for spent < st.Duration.Duration {
			sc.Tick(sc.frame)
			spent += sc.frame
		}
		return spent, nil

	default:
		return 0, errors.New(errors.ErrCodeInvalidScript, "unknown action %q", st.Action)
	}

	sc.Board.Layout()
	return sc.Settle(r.limit), nil
}

// anchor returns the step's pinch anchor, defaulting to the viewport center.
func (r *Runner) anchor(st Step) geom.Point {
	if st.X != nil && st.Y != nil {
		return geom.Pt(*st.X, *st.Y)
	}
	size := r.scene.Viewport.Size()
	return geom.Pt(size.W/2, size.H/2)
}
