// Package dashboard serves the interactive sales dashboard: an HTML page with
// a region selector, JSON and image endpoints for projected views, and a
// websocket that re-projects the view whenever the selection changes.
package dashboard

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/gorilla/websocket"
	"github.com/zeebo/errs/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/soulfoods/sales-dashboard/pkg/chart"
	"github.com/soulfoods/sales-dashboard/pkg/sales"
	"github.com/soulfoods/sales-dashboard/pkg/view"
)

const (
	DefaultTitle           = "Pink Morsel Sales Visualiser"
	DefaultShutdownTimeout = 10 * time.Second
)

type Options struct {
	// Title is the page header.
	Title string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server owns the dataset for its lifetime. The dataset is never mutated so
// handlers share it without locking.
type Server struct {
	log        *zap.Logger
	ds         *sales.Dataset
	selections view.SelectionSet
	renderer   *chart.Renderer
	opts       Options
	metrics    *metrics
	upgrader   websocket.Upgrader
}

// New returns a server for ds. A nil log discards logs.
func New(log *zap.Logger, ds *sales.Dataset, renderer *chart.Renderer, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if renderer == nil {
		renderer = &chart.Renderer{Log: log}
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}

	s := &Server{
		log:        log,
		ds:         ds,
		selections: view.SelectionSetFor(ds),
		renderer:   renderer,
		opts:       opts,
		metrics:    newMetrics(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	s.metrics.rows.Set(float64(ds.Len()))
	return s
}

// Handler returns the HTTP routes of the dashboard.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// The websocket hijacks the connection; keep response wrappers off it.
	r.Get("/ws", s.handleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(requestLogger(s.log))
		r.Use(s.metrics.instrument)
		r.Use(middleware.Recoverer)

		r.Get("/", s.handleIndex)
		r.Get("/healthz", s.handleHealth)
		r.Get("/chart.svg", s.handleChart(chart.SVG))
		r.Get("/chart.png", s.handleChart(chart.PNG))

		r.Route("/api", func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Get("/regions", s.handleRegions)
			r.Get("/view", s.handleView)
		})
	})

	r.Handle("/metrics", s.metrics.handler())
	return r
}

// ListenAndServe listens on address and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, address string) error {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return errs.Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully
// within the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
		ErrorLog:     zap.NewStdLog(s.log.Named("http")),
	}

	s.log.Info("Dashboard listening",
		zap.String("address", ln.Addr().String()),
		zap.Int("rows", s.ds.Len()),
		zap.Strings("regions", s.ds.Regions()),
	)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return errs.Wrap(err)
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		s.log.Info("Dashboard shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errs.Wrap(err)
		}
		return nil
	})
	return group.Wait()
}

// selection parses the region query parameter. A missing parameter selects
// every region.
func (s *Server) selection(r *http.Request) (view.Selection, error) {
	region := r.URL.Query().Get("region")
	if region == "" {
		return view.All, nil
	}
	return s.selections.Parse(region)
}

func (s *Server) project(sel view.Selection) view.ProjectedView {
	s.metrics.projections.WithLabelValues(string(sel)).Inc()
	return view.Project(s.ds, sel)
}
