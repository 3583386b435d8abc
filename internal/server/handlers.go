package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/KaramelBytes/cardash/internal/dashboard"
	"github.com/KaramelBytes/cardash/internal/dataset"
	"github.com/KaramelBytes/cardash/internal/filter"
	"github.com/KaramelBytes/cardash/internal/render"
	"github.com/KaramelBytes/cardash/internal/view"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail maps pipeline errors to status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, view.ErrUnknownChart):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, dashboard.ErrInvalidInput),
		errors.Is(err, filter.ErrInvalidValue),
		errors.Is(err, view.ErrInvalidSelection):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("request failed", "request_id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// recompute decodes the widget state from the query and runs one pipeline pass.
func (s *Server) recompute(r *http.Request) (*dashboard.Snapshot, error) {
	q := r.URL.Query()
	ds := s.app.Dataset()
	over, err := filter.FromValues(q, ds.Schema())
	if err != nil {
		return nil, err
	}
	sel, err := view.SelectionsFromValues(q, s.opt.Selections)
	if err != nil {
		return nil, err
	}
	return s.app.Recompute(filter.Merge(filter.Default(ds), over), sel)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"source": s.app.Dataset().Source(),
		"rows":   s.app.Dataset().Len(),
	})
}

func (s *Server) options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Options())
}

func (s *Server) dashboardJSON(w http.ResponseWriter, r *http.Request) {
	snap, err := s.recompute(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Dashboard)
}

func (s *Server) chartJSON(w http.ResponseWriter, r *http.Request) {
	snap, err := s.recompute(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := snap.Dashboard.Chart(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) chartPNG(w http.ResponseWriter, r *http.Request) {
	snap, err := s.recompute(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := snap.Dashboard.Chart(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	start := time.Now()
	var buf bytes.Buffer
	if err := render.PNG(&buf, c, s.opt.ChartSize); err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.ObserveRender(string(c.Kind), time.Since(start))
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	snap, err := s.recompute(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	b, err := dataset.EncodeCSV(snap.View)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.Exports.Inc()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snap.Dashboard.Export))
	_, _ = w.Write(b)
}
