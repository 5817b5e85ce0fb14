package script

import (
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/springboard/pkg/anim"
	"github.com/matzehuels/springboard/pkg/config"
	"github.com/matzehuels/springboard/pkg/render"
	"github.com/matzehuels/springboard/pkg/springboard"
	"github.com/matzehuels/springboard/pkg/viewport"
)

// DefaultSettleLimit bounds how much simulated time Settle may run.
const DefaultSettleLimit = 10 * time.Second

// Scene wires a springboard to a simulated viewport and a frame-driven
// animator. Time only moves when Tick or Settle is called.
type Scene struct {
	Board    *springboard.Springboard
	Viewport *viewport.Scroller
	Timeline *anim.Timeline

	frame time.Duration
}

// NewScene builds a scene from cfg with cfg.Grid.Items items titled
// "App 1", "App 2", ...
func NewScene(cfg config.Config, logger *log.Logger) *Scene {
	tl := anim.NewTimeline()
	vp := viewport.New(cfg.ViewportSize(), cfg.ViewportOptions()...)
	opts := append(cfg.SpringboardOptions(logger), springboard.WithAnimator(tl))
	sb := springboard.New(vp, opts...)
	vp.SetHandler(sb)
	sb.SetItems(springboard.NewItems(cfg.Grid.Items, AppTitle))
	sb.Layout()

	return &Scene{
		Board:    sb,
		Viewport: vp,
		Timeline: tl,
		frame:    time.Second / time.Duration(cfg.Viewport.FPS),
	}
}

// AppTitle is the default item title for index i.
func AppTitle(i int) string { return "App " + strconv.Itoa(i+1) }

// FrameDuration is the length of one simulation frame.
func (s *Scene) FrameDuration() time.Duration { return s.frame }

// Tick advances animations and the viewport by dt and runs a layout pass.
func (s *Scene) Tick(dt time.Duration) {
	s.Timeline.Tick(dt)
	s.Viewport.Tick(dt)
	s.Board.Layout()
}

// Idle reports whether nothing is moving.
func (s *Scene) Idle() bool {
	return !s.Viewport.Animating() && !s.Timeline.Active() &&
		!s.Viewport.IsDragging() && !s.Viewport.IsZooming()
}

// Settle ticks frame by frame until the scene is idle or limit has elapsed.
// It returns the simulated time spent.
func (s *Scene) Settle(limit time.Duration) time.Duration {
	var spent time.Duration
	for !s.Idle() && spent < limit {
		s.Tick(s.frame)
		spent += s.frame
	}
	s.Board.Layout()
	return spent
}

// Capture snapshots the scene.
func (s *Scene) Capture() render.Frame { return render.Capture(s.Board) }
