package cli

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/springboard/pkg/cache"
	"github.com/matzehuels/springboard/pkg/config"
	"github.com/matzehuels/springboard/pkg/errors"
	"github.com/matzehuels/springboard/pkg/render"
	"github.com/matzehuels/springboard/pkg/render/sink"
	"github.com/matzehuels/springboard/pkg/script"
)

// frameRequest selects the viewport state a frame is captured in.
type frameRequest struct {
	focus   int     // item to center, -1 keeps the initial item
	zoom    float64 // zoom scale, 0 keeps the current zoom
	showAll bool
	intro   bool
	elapsed time.Duration // simulated time before capture, 0 settles first

	script     *script.Script
	scriptHash string
}

// artifactRequest selects how a frame is encoded.
type artifactRequest struct {
	format     string
	scale      float64
	labels     bool
	background string
}

// loadScript reads a gesture script for the request and records its hash.
func (r *frameRequest) loadScript(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeNotFound, "script %s not found", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read script %s", path)
	}
	s, err := script.Decode(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScript, err, "load %s", path)
	}
	r.script = s
	r.scriptHash = cache.Hash(data)
	return nil
}

func (r frameRequest) keyOpts() cache.FrameKeyOpts {
	return cache.FrameKeyOpts{
		Focus:   r.focus,
		Zoom:    r.zoom,
		ShowAll: r.showAll,
		Intro:   r.intro,
		Script:  r.scriptHash,
		Elapsed: r.elapsed,
	}
}

func (a artifactRequest) keyOpts() cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: a.format, Labels: a.labels, Background: a.background}
	if a.format == formatPNG {
		opts.Scale = a.scale
	}
	return opts
}

// captureFrame builds a scene from cfg, drives it into the requested state
// and snapshots it.
func captureFrame(ctx context.Context, cfg config.Config, req frameRequest, logger *log.Logger) (render.Frame, error) {
	sc := script.NewScene(cfg, logger)

	if req.script != nil {
		logger.Debugf("Replaying script %q (%d steps)", req.script.Name, len(req.script.Steps))
		if err := script.NewRunner(sc, 0).Run(ctx, req.script, nil); err != nil {
			return render.Frame{}, err
		}
	}

	switch {
	case req.showAll:
		sc.Board.ShowAllContent(false)
	case req.focus >= 0 || req.zoom > 0:
		index := req.focus
		if index < 0 {
			index = sc.Board.LastFocusedIndex()
		}
		zoom := req.zoom
		if zoom <= 0 {
			zoom = sc.Viewport.ZoomScale()
		}
		if err := sc.Board.FocusOn(index, zoom, false); err != nil {
			return render.Frame{}, err
		}
	}

	if req.intro {
		sc.Board.PlayIntroAnimation()
	}
	if req.elapsed > 0 {
		for spent := time.Duration(0); spent < req.elapsed; spent += sc.FrameDuration() {
			sc.Tick(sc.FrameDuration())
		}
	} else {
		sc.Settle(script.DefaultSettleLimit)
	}
	return sc.Capture(), nil
}

// encodeFrame renders f in the requested format.
func encodeFrame(f render.Frame, a artifactRequest) ([]byte, error) {
	switch a.format {
	case formatSVG:
		opts := []sink.SVGOption{sink.WithFocusRing()}
		if a.background != "" {
			opts = append(opts, sink.WithBackground(a.background))
		}
		if !a.labels {
			opts = append(opts, sink.WithoutLabels())
		}
		return sink.RenderSVG(f, opts...), nil
	case formatPNG:
		opts := []sink.PNGOption{sink.WithScale(a.scale)}
		if a.background != "" {
			opts = append(opts, sink.WithPNGBackground(a.background))
		}
		if !a.labels {
			opts = append(opts, sink.WithoutPNGLabels())
		}
		return sink.RenderPNG(f, opts...)
	case formatJSON:
		return sink.RenderJSON(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", a.format)
	}
}

// frameRenderer captures frames and encodes them through a cache. The frame
// is only captured when at least one requested artifact misses.
type frameRenderer struct {
	cfg    config.Config
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

func newFrameRenderer(cfg config.Config, c cache.Cache, logger *log.Logger) *frameRenderer {
	keyer := cache.NewDefaultKeyer()
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(keyer, cfg.Cache.Prefix)
	}
	return &frameRenderer{cfg: cfg, cache: c, keyer: keyer, logger: logger}
}

// artifact is one encoded output.
type artifact struct {
	format string
	data   []byte
	cached bool
}

// render returns one artifact per requested format, plus the frame when it
// had to be captured.
func (r *frameRenderer) render(ctx context.Context, req frameRequest, arts []artifactRequest) ([]artifact, *render.Frame, error) {
	frameKey := r.keyer.FrameKey(r.cfg.Hash(), req.keyOpts())

	var frame *render.Frame
	capture := func() (render.Frame, error) {
		if frame == nil {
			f, err := captureFrame(ctx, r.cfg, req, r.logger)
			if err != nil {
				return render.Frame{}, err
			}
			frame = &f
		}
		return *frame, nil
	}

	out := make([]artifact, 0, len(arts))
	for _, a := range arts {
		key := r.keyer.ArtifactKey(frameKey, a.keyOpts())
		data, hit, err := cache.Fetch(ctx, r.cache, key, r.cfg.Cache.TTL.Duration, func() ([]byte, error) {
			f, err := capture()
			if err != nil {
				return nil, err
			}
			return encodeFrame(f, a)
		})
		if err != nil {
			return nil, nil, err
		}
		r.logger.Debugf("%s: %d bytes (cached=%v)", a.format, len(data), hit)
		out = append(out, artifact{format: a.format, data: data, cached: hit})
	}
	return out, frame, nil
}
