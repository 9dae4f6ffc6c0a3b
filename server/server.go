// Package server exposes the result store over HTTP and streams store events over a websocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/tubescribe/tubescribe/batch"
	"github.com/tubescribe/tubescribe/log"
)

const maxBodyBytes = 1 << 20

// App serves a single store.
type App struct {
	store  *batch.Store
	ctx    context.Context
	router *chi.Mux
	logger log.Entry

	upgrader websocket.Upgrader
}

// NewApp returns an App backed by store. Batches submitted over HTTP run
// under ctx, so cancelling it aborts in-flight retrievals.
func NewApp(ctx context.Context, store *batch.Store) *App {
	app := &App{
		store:  store,
		ctx:    ctx,
		router: chi.NewRouter(),
		logger: log.With(log.Fields{"component": "server"}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	app.registerRoutes()
	return app
}

// Router returns the HTTP handler.
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) registerRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Recoverer)

	a.router.Route("/api", func(r chi.Router) {
		r.Post("/batches", a.submit)
		r.Get("/results", a.results)
		r.Delete("/results", a.clear)
		r.Get("/results/{id}", a.result)
		r.Get("/results/{id}/export", a.export)
	})

	a.router.Get("/ws", a.events)
	a.router.Get("/healthz", a.health)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		a.logger.With(log.Fields{"addr": addr}).Info("server started")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("graceful shutdown failed")
		return srv.Close()
	}

	a.logger.Info("server stopped")
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *App) respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.WithError(err).Error("failed to encode json")
	}
}

func (a *App) respondError(w http.ResponseWriter, code int, err error) {
	a.respondJSON(w, code, errorResponse{Error: err.Error()})
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"processing": a.store.Processing(),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid json body: %w", err)
	}
	return nil
}
