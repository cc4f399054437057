package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archwall/pkg/arch"
	"github.com/matzehuels/archwall/pkg/buildinfo"
	"github.com/matzehuels/archwall/pkg/cache"
	apperr "github.com/matzehuels/archwall/pkg/errors"
	"github.com/matzehuels/archwall/pkg/observability"
	"github.com/matzehuels/archwall/pkg/pipeline"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	shutdownTimeout = 5 * time.Second
)

type serveOpts struct {
	addr  string
	cache cacheOpts
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr}

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a composition over HTTP",
		Long: `Serve renders a composition on request:

  GET /healthz           liveness and version
  GET /composition       composition and per-arch geometry as JSON
  GET /render.{format}   svg, png, pdf or json; ?scale= for png, ?refresh=1 to skip the cache`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runServe(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input string, opts serveOpts) error {
	comp, err := pipeline.Load(input)
	if err != nil {
		return err
	}
	if err := comp.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve:"))
	if err != nil {
		return err
	}
	defer runner.Close()

	observability.SetHTTPHooks(logHooks{logger: c.Logger})

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServer(runner, comp, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	printSuccess("Serving %s on http://%s", displayName(comp, input), opts.addr)
	printKeyValue("arches", strconv.Itoa(len(comp.Arches)))
	printKeyValue("routes", "/healthz /composition /render.{svg,png,pdf,json}")

	select {
	case err := <-errCh:
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "listen on %s", opts.addr)
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// server renders one composition per request. Each request gets its own
// surface through the runner, so handlers are safe to run concurrently.
type server struct {
	runner *pipeline.Runner
	comp   arch.Composition
	logger *log.Logger
}

func newServer(runner *pipeline.Runner, comp arch.Composition, logger *log.Logger) http.Handler {
	s := &server{runner: runner, comp: comp, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(serverHeader)
	r.Use(httpHooks)

	r.Get("/healthz", s.health)
	r.Get("/composition", s.composition)
	r.Get("/render.{format}", s.render)

	return r
}

func serverHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", buildinfo.UserAgent())
		next.ServeHTTP(w, r)
	})
}

// httpHooks reports every request to the registered HTTP hooks, keyed by
// the matched route pattern rather than the raw path.
func httpHooks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *server) composition(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, pipeline.FormatJSON)
}

func (s *server) render(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, chi.URLParam(r, "format"))
}

func (s *server) serveFormat(w http.ResponseWriter, r *http.Request, format string) {
	if err := pipeline.ValidateFormat(format); err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: apperr.UserMessage(err), Code: string(apperr.GetCode(err))})
		return
	}

	scale := pipeline.DefaultScale
	if v := r.URL.Query().Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, apperr.New(apperr.ErrCodeInvalidInput, "scale %q is not a number", v))
			return
		}
		scale = f
	}
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	result, err := s.runner.Execute(r.Context(), s.comp, pipeline.Options{
		Formats: []string{format},
		Scale:   scale,
		Refresh: refresh,
		Logger:  s.logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	etag := strconv.Quote(result.Hash[:16] + "-" + format + "-" + strconv.FormatFloat(scale, 'g', -1, 64))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	data := result.Artifacts[format]
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if result.CacheInfo.AllHit() {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, err error) {
	code := apperr.GetCode(err)
	if code == "" {
		code = apperr.ErrCodeInternal
	}
	writeJSON(w, apperr.HTTPStatus(err), errorResponse{Error: apperr.UserMessage(err), Code: string(code)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
