// Package script replays gesture scripts against a simulated springboard.
//
// A script is a TOML file with a list of steps. Each step performs one
// gesture or command and then lets the scene settle, so the result of every
// step is the resting state a user would see:
//
//	name = "tour"
//
//	[[step]]
//	action = "drag"
//	dx = -120
//
//	[[step]]
//	action = "fling"
//	vx = -900
//
//	[[step]]
//	action = "pinch"
//	factor = 0.5
//
//	[[step]]
//	action = "double-tap"
//	x = 160
//	y = 160
//
// Actions: drag, fling, pinch, double-tap, resize, focus, show-all, wait,
// intro. Coordinates are in visible-bounds points; drag and fling move the
// finger, so a negative dx scrolls the content to the right.
package script

import (
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/springboard/pkg/errors"
	"github.com/matzehuels/springboard/pkg/geom"
)

// Action names.
const (
	ActionDrag      = "drag"
	ActionFling     = "fling"
	ActionPinch     = "pinch"
	ActionDoubleTap = "double-tap"
	ActionResize    = "resize"
	ActionFocus     = "focus"
	ActionShowAll   = "show-all"
	ActionWait      = "wait"
	ActionIntro     = "intro"
)

// Script is a named list of steps.
type Script struct {
	Name  string `toml:"name"`
	Steps []Step `toml:"step"`
}

// Step is one scripted gesture. Only the fields its action uses are read.
type Step struct {
	Action string `toml:"action"`

	// drag: finger travel; fling: finger velocity in points per second
	DX float64 `toml:"dx"`
	DY float64 `toml:"dy"`
	VX float64 `toml:"vx"`
	VY float64 `toml:"vy"`

	// pinch factor around (x, y); double-tap location
	Factor float64  `toml:"factor"`
	X      *float64 `toml:"x"`
	Y      *float64 `toml:"y"`

	// resize
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// focus
	Index    int      `toml:"index"`
	Zoom     float64  `toml:"zoom"`
	Animated bool     `toml:"animated"`
	Duration Duration `toml:"duration"`
}

// Duration is a time.Duration written as a string ("500ms").
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// nonFinite returns the first numeric field holding NaN or an infinity.
func (st Step) nonFinite() (string, bool) {
	fields := []struct {
		name string
		v    *float64
	}{
		{"dx", &st.DX}, {"dy", &st.DY}, {"vx", &st.VX}, {"vy", &st.VY},
		{"factor", &st.Factor}, {"x", st.X}, {"y", st.Y},
		{"width", &st.Width}, {"height", &st.Height}, {"zoom", &st.Zoom},
	}
	for _, f := range fields {
		if f.v != nil && !geom.IsFinite(*f.v) {
			return f.name, true
		}
	}
	return "", false
}

// Load reads and validates the script at path.
func Load(path string) (*Script, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "script %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "open %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads and validates a script.
func Decode(r io.Reader) (*Script, error) {
	var s Script
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "parse script")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidScript, "unknown key %s", undecoded[0])
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every step names a known action with usable
// arguments.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New(errors.ErrCodeInvalidScript, "script has no steps")
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return errors.New(errors.ErrCodeInvalidScript, "step %d (%s): %s", i+1, st.Action, err.Message)
		}
	}
	return nil
}

func (st Step) validate() *errors.Error {
	bad := func(format string, args ...any) *errors.Error {
		return errors.New(errors.ErrCodeInvalidScript, format, args...)
	}
	if name, ok := st.nonFinite(); ok {
		return bad("%s must be a finite number", name)
	}
	switch st.Action {
	case ActionDrag:
		if st.DX == 0 && st.DY == 0 {
			return bad("drag needs dx or dy")
		}
	case ActionFling:
		if st.VX == 0 && st.VY == 0 {
			return bad("fling needs vx or vy")
		}
	case ActionPinch:
		if st.Factor <= 0 {
			return bad("pinch needs a positive factor")
		}
		if (st.X == nil) != (st.Y == nil) {
			return bad("pinch anchor needs both x and y")
		}
	case ActionDoubleTap:
		if st.X == nil || st.Y == nil {
			return bad("double-tap needs x and y")
		}
	case ActionResize:
		if st.Width <= 0 || st.Height <= 0 {
			return bad("resize needs a positive width and height")
		}
	case ActionFocus:
		if st.Index < 0 {
			return bad("focus index must not be negative")
		}
		if st.Zoom < 0 {
			return bad("focus zoom must not be negative")
		}
	case ActionWait:
		if st.Duration.Duration <= 0 {
			return bad("wait needs a positive duration")
		}
	case ActionShowAll, ActionIntro:
	case "":
		return bad("missing action")
	default:
		return bad("unknown action %q", st.Action)
	}
	return nil
}
