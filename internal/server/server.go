// Package server exposes the dashboard over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/KaramelBytes/cardash/internal/dashboard"
	"github.com/KaramelBytes/cardash/internal/obs"
	"github.com/KaramelBytes/cardash/internal/render"
	"github.com/KaramelBytes/cardash/internal/view"
)

// Options configures a Server.
type Options struct {
	Addr       string
	ChartSize  render.Size
	Selections view.Selections // base for every request
}

// Server serves one App.
type Server struct {
	app     *dashboard.App
	metrics *obs.Metrics
	log     *slog.Logger
	opt     Options
}

// New returns a Server. A nil logger uses slog.Default and nil metrics get a
// private registry.
func New(app *dashboard.App, m *obs.Metrics, log *slog.Logger, opt Options) *Server {
	if log == nil {
		log = slog.Default()
	}
	if m == nil {
		m = obs.NewMetrics()
		app.Subscribe(m.Observe)
	}
	if opt.Addr == "" {
		opt.Addr = ":8501"
	}
	if opt.Selections.TopColumn == "" {
		opt.Selections = view.DefaultSelections()
	}
	return &Server{app: app, metrics: m, log: log, opt: opt}
}

// Router registers every route.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.page).Methods("GET")
	r.HandleFunc("/health", s.health).Methods("GET")
	r.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	r.HandleFunc("/export.csv", s.export).Methods("GET")
	r.HandleFunc("/charts/{id:[A-Za-z0-9_]+}.png", s.chartPNG).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/options", s.options).Methods("GET")
	api.HandleFunc("/dashboard", s.dashboardJSON).Methods("GET")
	api.HandleFunc("/charts/{id}", s.chartJSON).Methods("GET")
	return r
}

// Handler wraps the router with recovery, compression, request ids and access logs.
func (s *Server) Handler() http.Handler {
	rl := slog.NewLogLogger(s.log.Handler(), slog.LevelError)
	var h http.Handler = s.Router()
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(rl), handlers.PrintRecoveryStack(true))(h)
	h = accessLog(s.log, h)
	return requestID(h)
}

// ListenAndServe blocks until ctx is done or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opt.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dashboard listening", "addr", s.opt.Addr, "rows", s.app.Dataset().Len())
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
