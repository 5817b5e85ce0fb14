package sink

import (
	"encoding/json"

	"github.com/matzehuels/springboard/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact     bool
	visibleOnly bool
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONVisibleOnly drops items that lie outside the frame.
func WithJSONVisibleOnly() JSONOption { return func(r *jsonRenderer) { r.visibleOnly = true } }

// RenderJSON encodes f as JSON.
func RenderJSON(f render.Frame, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	if r.visibleOnly {
		f.Items = f.VisibleItems()
	}
	if r.compact {
		return json.Marshal(f)
	}
	return json.MarshalIndent(f, "", "  ")
}
