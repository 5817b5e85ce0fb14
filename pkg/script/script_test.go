package script

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/springboard/pkg/config"
	"github.com/matzehuels/springboard/pkg/errors"
	"github.com/matzehuels/springboard/pkg/geom"
)

const tour = `
name = "tour"

[[step]]
action = "focus"
index = 4
zoom = 1

[[step]]
action = "drag"
dx = -30

[[step]]
action = "fling"
vx = -900
vy = 200

[[step]]
action = "pinch"
factor = 0.6

[[step]]
action = "double-tap"
x = 160
y = 160

[[step]]
action = "resize"
width = 396
height = 396

[[step]]
action = "show-all"

[[step]]
action = "wait"
duration = "100ms"

[[step]]
action = "intro"
`

func newScene(t *testing.T, items int) *Scene {
	t.Helper()
	cfg := config.Default()
	cfg.Grid.Items = items
	return NewScene(cfg, log.New(io.Discard))
}

// centered returns the item nearest the viewport center.
func centered(s *Scene) int {
	size := s.Viewport.Size()
	p := s.Viewport.ContentOffset().Add(geom.Pt(size.W/2, size.H/2))
	return s.Board.NearestIndexTo(geom.ToContentSpace(p, s.Viewport.ZoomScale()))
}

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(tour))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Name != "tour" || len(s.Steps) != 9 {
		t.Fatalf("script = %q with %d steps", s.Name, len(s.Steps))
	}
	if s.Steps[7].Duration.Duration != 100*time.Millisecond {
		t.Errorf("wait duration = %v", s.Steps[7].Duration)
	}
	if *s.Steps[4].X != 160 {
		t.Errorf("double-tap x = %v", *s.Steps[4].X)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"empty", `name = "x"`},
		{"syntax", "[[step]\naction = 1"},
		{"unknown key", "[[step]]\naction = \"intro\"\nspeed = 3"},
		{"missing action", "[[step]]\ndx = 3"},
		{"unknown action", "[[step]]\naction = \"rotate\""},
		{"still drag", "[[step]]\naction = \"drag\""},
		{"still fling", "[[step]]\naction = \"fling\""},
		{"zero pinch", "[[step]]\naction = \"pinch\"\nfactor = 0"},
		{"half anchor", "[[step]]\naction = \"pinch\"\nfactor = 2\nx = 3"},
		{"tap without point", "[[step]]\naction = \"double-tap\""},
		{"empty resize", "[[step]]\naction = \"resize\"\nwidth = 100"},
		{"negative index", "[[step]]\naction = \"focus\"\nindex = -1"},
		{"no wait", "[[step]]\naction = \"wait\""},
		{"bad duration", "[[step]]\naction = \"wait\"\nduration = \"later\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.script))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidScript) {
				t.Errorf("code = %s, want INVALID_SCRIPT (%v)", errors.GetCode(err), err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.toml")
	if err := os.WriteFile(path, []byte(tour), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := Load(path + ".missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing script error = %v, want NOT_FOUND", err)
	}
}

func TestRunTour(t *testing.T) {
	sc := newScene(t, 41)
	s, err := Decode(strings.NewReader(tour))
	if err != nil {
		t.Fatal(err)
	}

	var results []Result
	if err := NewRunner(sc, 0).Run(context.Background(), s, func(r Result) { results = append(results, r) }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != len(s.Steps) {
		t.Fatalf("observed %d results, want %d", len(results), len(s.Steps))
	}
	if results[0].Focused != 4 || results[0].Zoom != 1 {
		t.Errorf("after focus: %+v", results[0])
	}
	if results[7].Elapsed < 100*time.Millisecond {
		t.Errorf("wait elapsed %v, want at least 100ms", results[7].Elapsed)
	}
	if sc.Viewport.Size() != geom.Sz(396, 396) {
		t.Errorf("viewport size = %v after resize", sc.Viewport.Size())
	}
	if !sc.Idle() || sc.Board.IntroActive() {
		t.Error("scene should be idle after the intro settles")
	}
	for i, it := range sc.Board.Items() {
		if it.Alpha() != 1 {
			t.Errorf("item %d alpha = %v after intro", i, it.Alpha())
		}
	}
}

func TestGesturesRestOnAnItem(t *testing.T) {
	tests := []struct {
		name string
		step Step
	}{
		{"drag", Step{Action: ActionDrag, DX: -70, DY: 25}},
		{"fling", Step{Action: ActionFling, VX: 1200, VY: -400}},
		{"pinch in", Step{Action: ActionPinch, Factor: 0.7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newScene(t, 41)
			if _, err := NewRunner(sc, 0).Step(tt.step); err != nil {
				t.Fatalf("Step: %v", err)
			}
			if !sc.Idle() {
				t.Fatal("scene did not settle")
			}
			if got, want := centered(sc), sc.Board.LastFocusedIndex(); got != want {
				t.Errorf("item at viewport center = %d, want focused %d", got, want)
			}
		})
	}
}

func TestDoubleTapZoomsIn(t *testing.T) {
	sc := newScene(t, 41)
	r := NewRunner(sc, 0)
	zoom := math.Max(0.5, sc.Board.Geometry().MinZoomScale)
	if _, err := r.Step(Step{Action: ActionFocus, Index: 0, Zoom: zoom}); err != nil {
		t.Fatal(err)
	}
	x, y := 160.0, 160.0
	if _, err := r.Step(Step{Action: ActionDoubleTap, X: &x, Y: &y}); err != nil {
		t.Fatal(err)
	}
	if z := sc.Viewport.ZoomScale(); math.Abs(z-1) > 1e-6 {
		t.Errorf("zoom after double tap = %v, want 1", z)
	}
	if sc.Board.LastFocusedIndex() != 0 {
		t.Errorf("focused = %d, want the tapped item 0", sc.Board.LastFocusedIndex())
	}
}

func TestRunStepError(t *testing.T) {
	sc := newScene(t, 9)
	s := &Script{Steps: []Step{{Action: ActionFocus, Index: 99, Zoom: 1}}}
	err := NewRunner(sc, 0).Run(context.Background(), s, nil)
	if !errors.Is(err, errors.ErrCodeInvalidScript) {
		t.Errorf("err = %v, want INVALID_SCRIPT", err)
	}
}

func TestRunCancelled(t *testing.T) {
	sc := newScene(t, 9)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Script{Steps: []Step{{Action: ActionShowAll}}}
	if err := NewRunner(sc, 0).Run(ctx, s, nil); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestAppTitle(t *testing.T) {
	if got := AppTitle(0); got != "App 1" {
		t.Errorf("AppTitle(0) = %q", got)
	}
}

func TestExampleTour(t *testing.T) {
	cfg, err := config.Load("../../examples/springboard.toml")
	if err != nil {
		t.Fatal(err)
	}
	s, err := Load("../../examples/scripts/tour.toml")
	if err != nil {
		t.Fatal(err)
	}
	sc := NewScene(cfg, log.New(io.Discard))
	if err := NewRunner(sc, 0).Run(context.Background(), s, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !sc.Idle() {
		t.Error("scene should be idle after the tour")
	}
}

func TestNonFiniteStepsRejected(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"nan tap", "[[step]]\naction = \"double-tap\"\nx = nan\ny = nan"},
		{"inf tap", "[[step]]\naction = \"double-tap\"\nx = 10\ny = inf"},
		{"nan fling", "[[step]]\naction = \"fling\"\nvx = nan"},
		{"nan drag", "[[step]]\naction = \"drag\"\ndx = 5\ndy = nan"},
		{"inf pinch", "[[step]]\naction = \"pinch\"\nfactor = inf"},
		{"inf resize", "[[step]]\naction = \"resize\"\nwidth = inf\nheight = 100"},
		{"nan zoom", "[[step]]\naction = \"focus\"\nindex = 1\nzoom = nan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.script))
			if !errors.Is(err, errors.ErrCodeInvalidScript) {
				t.Errorf("err = %v, want INVALID_SCRIPT", err)
			}
		})
	}
}

func TestRunRejectsNonFiniteSteps(t *testing.T) {
	nan := math.NaN()
	steps := []Step{
		{Action: ActionDoubleTap, X: &nan, Y: &nan},
		{Action: ActionFling, VX: nan},
		{Action: ActionDrag, DX: math.Inf(1)},
	}
	for _, st := range steps {
		sc := newScene(t, 41)
		before := sc.Viewport.ContentOffset()
		err := NewRunner(sc, 0).Run(context.Background(), &Script{Steps: []Step{st}}, nil)
		if !errors.Is(err, errors.ErrCodeInvalidScript) {
			t.Errorf("%s: err = %v, want INVALID_SCRIPT", st.Action, err)
		}
		if sc.Viewport.ContentOffset() != before {
			t.Errorf("%s: offset moved to %v", st.Action, sc.Viewport.ContentOffset())
		}
	}
}
