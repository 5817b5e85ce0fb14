package cli

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/springboard/pkg/cache"
	"github.com/matzehuels/springboard/pkg/config"
	"github.com/matzehuels/springboard/pkg/errors"
	"github.com/matzehuels/springboard/pkg/observability"
)

const (
	defaultAddr     = "localhost:8320"
	shutdownTimeout = 5 * time.Second

	// maxServeItems bounds the item count a query may ask for.
	maxServeItems = 2000
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	board   boardFlags
	addr    string
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve springboard frames over HTTP",
		Long: `Start a preview server. Frames are rendered on demand and cached.

Endpoints:
  GET /frame.svg    SVG frame
  GET /frame.png    PNG frame
  GET /frame.json   frame geometry as JSON
  GET /healthz      liveness

Query parameters override the board: items, width, height, focus, zoom,
show_all, intro, at, scale, labels, background.`,
		Example: `  springboard serve --addr :8080
  curl 'localhost:8320/frame.svg?items=60&focus=7&zoom=0.7'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.board.load(cmd, c.Logger)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg, opts)
		},
	}

	opts.board.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config, opts serveOpts) error {
	store := newCache(ctx, cfg, opts.noCache, c.Logger)
	defer store.Close()

	observability.SetHTTPHooks(logHTTPHooks{})
	observability.SetCacheHooks(logCacheHooks{logger: c.Logger})
	defer observability.Reset()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServer(cfg, store, c.Logger).routes(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	printSuccess("Serving on %s", StyleLink.Render("http://"+opts.addr+"/frame.svg"))
	printBoard(cfg)
	printNextStep("Stop with", "ctrl+c")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// =============================================================================
// Server
// =============================================================================

type server struct {
	cfg    config.Config
	cache  cache.Cache
	logger *log.Logger
}

func newServer(cfg config.Config, c cache.Cache, logger *log.Logger) *server {
	return &server{cfg: cfg, cache: c, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/frame.{format}", s.handleFrame)
	return r
}

// instrument attaches a request-scoped logger and reports each request to the
// HTTP hooks.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := withLogger(r.Context(), s.logger.With("req", middleware.GetReqID(r.Context())))
		observability.HTTP().OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnResponse(ctx, r.Method, r.URL.Path, status, time.Since(start))
	})
}

var contentTypes = map[string]string{
	formatSVG:  "image/svg+xml",
	formatPNG:  "image/png",
	formatJSON: "application/json",
}

func (s *server) handleFrame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := loggerFromContext(ctx)

	format := chi.URLParam(r, "format")
	if !validFormats[format] {
		s.fail(w, r, errors.New(errors.ErrCodeNotFound, "no frame format %q", format))
		return
	}
	cfg, req, art, err := s.parseQuery(r, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	arts, _, err := newFrameRenderer(cfg, s.cache, logger).render(ctx, req, []artifactRequest{art})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	a := arts[0]

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(a.data)))
	if a.cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	_, _ = w.Write(a.data)
}

// parseQuery derives the board config and frame request from query
// parameters, starting from the server's config.
func (s *server) parseQuery(r *http.Request, format string) (config.Config, frameRequest, artifactRequest, error) {
	q := r.URL.Query()
	cfg := s.cfg
	req := frameRequest{focus: -1}
	art := artifactRequest{format: format, scale: defaultScale, labels: true, background: q.Get("background")}

	var err error
	intParam := func(name string, dst *int) {
		if v := q.Get(name); v != "" && err == nil {
			n, perr := strconv.Atoi(v)
			if perr != nil {
				err = errors.New(errors.ErrCodeInvalidArgument, "%s: %q is not an integer", name, v)
				return
			}
			*dst = n
		}
	}
	floatParam := func(name string, dst *float64) {
		if v := q.Get(name); v != "" && err == nil {
			f, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				err = errors.New(errors.ErrCodeInvalidArgument, "%s: %q is not a number", name, v)
				return
			}
			*dst = f
		}
	}
	boolParam := func(name string, dst *bool) {
		if v := q.Get(name); v != "" && err == nil {
			b, perr := strconv.ParseBool(v)
			if perr != nil {
				err = errors.New(errors.ErrCodeInvalidArgument, "%s: %q is not a boolean", name, v)
				return
			}
			*dst = b
		}
	}

	intParam("items", &cfg.Grid.Items)
	floatParam("width", &cfg.Viewport.Width)
	floatParam("height", &cfg.Viewport.Height)
	intParam("focus", &req.focus)
	floatParam("zoom", &req.zoom)
	boolParam("show_all", &req.showAll)
	boolParam("intro", &req.intro)
	floatParam("scale", &art.scale)
	boolParam("labels", &art.labels)
	if v := q.Get("at"); v != "" && err == nil {
		d, perr := time.ParseDuration(v)
		if perr != nil || d < 0 || d > time.Minute {
			err = errors.New(errors.ErrCodeInvalidArgument, "at: %q is not a duration up to 1m", v)
		}
		req.elapsed = d
	}
	if err != nil {
		return config.Config{}, frameRequest{}, artifactRequest{}, err
	}

	if cfg.Grid.Items > maxServeItems {
		return config.Config{}, frameRequest{}, artifactRequest{}, errors.New(errors.ErrCodeInvalidArgument, "items must be at most %d", maxServeItems)
	}
	if req.zoom < 0 {
		return config.Config{}, frameRequest{}, artifactRequest{}, errors.New(errors.ErrCodeInvalidArgument, "zoom must be positive, got %g", req.zoom)
	}
	if err := errors.ValidateRange("scale", art.scale, 0.25, 8); err != nil {
		return config.Config{}, frameRequest{}, artifactRequest{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, frameRequest{}, artifactRequest{}, err
	}
	return cfg, req, art, nil
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	logger := loggerFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		logger.Debug("bad request", "path", r.URL.Path, "err", err)
	}
	http.Error(w, errors.UserMessage(err), status)
}
