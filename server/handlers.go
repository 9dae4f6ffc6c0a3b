package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tubescribe/tubescribe/batch"
	"github.com/tubescribe/tubescribe/export"
	"github.com/tubescribe/tubescribe/intake"
	"github.com/tubescribe/tubescribe/log"
	"github.com/tubescribe/tubescribe/video"
)

// SubmitRequest is the body of POST /api/batches. Links may be one
// free-form text blob or a list, or both.
type SubmitRequest struct {
	Text  string   `json:"text,omitempty"`
	Links []string `json:"links,omitempty"`
}

func (s SubmitRequest) input() string {
	return strings.Join(append([]string{s.Text}, s.Links...), "\n")
}

func (a *App) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := decodeBody(w, r, &req); err != nil {
		a.respondError(w, http.StatusBadRequest, err)
		return
	}

	b, err := a.store.Submit(req.input())
	switch {
	case errors.Is(err, intake.ErrNoValidLinks):
		a.respondError(w, http.StatusUnprocessableEntity, err)
		return
	case errors.Is(err, batch.ErrBusy):
		a.respondError(w, http.StatusConflict, err)
		return
	case err != nil:
		a.respondError(w, http.StatusInternalServerError, err)
		return
	}

	a.logger.With(log.Fields{
		"batch":      b.ID,
		"links":      len(b.Results),
		"request_id": middleware.GetReqID(r.Context()),
	}).Info("batch accepted")

	go a.store.Run(a.ctx, b)

	a.respondJSON(w, http.StatusAccepted, b)
}

func (a *App) results(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, a.store.Results())
}

func (a *App) result(w http.ResponseWriter, r *http.Request) {
	res, ok := a.store.Get(chi.URLParam(r, "id"))
	if !ok {
		a.respondError(w, http.StatusNotFound, batch.ErrNotFound)
		return
	}
	a.respondJSON(w, http.StatusOK, res)
}

func (a *App) clear(w http.ResponseWriter, r *http.Request) {
	a.store.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) export(w http.ResponseWriter, r *http.Request) {
	res, ok := a.store.Get(chi.URLParam(r, "id"))
	if !ok {
		a.respondError(w, http.StatusNotFound, batch.ErrNotFound)
		return
	}

	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(export.DefaultFormat())
	}

	format, err := export.ParseFormat(name)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, err)
		return
	}

	if res.Status != video.StatusCompleted {
		a.respondError(w, http.StatusConflict, export.ErrNotCompleted)
		return
	}

	w.Header().Set("Content-Type", format.MediaType()+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(res, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.Render(res)))
}
