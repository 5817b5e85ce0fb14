package cache

import "time"

// Keyer generates cache keys for springboard artifacts.
type Keyer interface {
	// FrameKey identifies a captured frame: the board configuration plus the
	// viewport state it was captured in.
	FrameKey(configHash string, opts FrameKeyOpts) string

	// ArtifactKey identifies one output format of a frame.
	ArtifactKey(frameHash string, opts ArtifactKeyOpts) string
}

// FrameKeyOpts are the inputs that select the viewport state of a frame.
type FrameKeyOpts struct {
	Focus   int     `json:"focus"`
	Zoom    float64 `json:"zoom"`
	ShowAll bool    `json:"show_all,omitempty"`
	Intro   bool    `json:"intro,omitempty"`
	Script  string  `json:"script,omitempty"`

	// Elapsed is the simulated time between setup and capture. Zero means
	// the frame was captured at rest.
	Elapsed time.Duration `json:"elapsed,omitempty"`
}

// ArtifactKeyOpts are the inputs that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	Labels     bool    `json:"labels"`
	Background string  `json:"background,omitempty"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FrameKey returns "frame:<hash>".
func (DefaultKeyer) FrameKey(configHash string, opts FrameKeyOpts) string {
	return hashKey("frame", configHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", frameHash, opts)
}
