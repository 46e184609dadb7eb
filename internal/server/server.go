// Package server exposes the breakdown pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"crewplan/internal/breakdown"
	"crewplan/pkg/models"
)

// Planner produces a breakdown for a project description. It is
// satisfied by breakdown.Orchestrator.
type Planner interface {
	ProduceBreakdown(ctx context.Context, description string) (*breakdown.Result, error)
}

// Server wires the planner to HTTP handlers.
type Server struct {
	planner Planner
	timeout time.Duration
}

// New creates a Server. The timeout bounds each generation request;
// zero means no bound.
func New(planner Planner, timeout time.Duration) *Server {
	return &Server{planner: planner, timeout: timeout}
}

// Handler returns the HTTP handler serving the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate-tasks", s.handleGenerateTasks)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// ListenAndServe runs the server on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type generateRequest struct {
	ProjectDescription string `json:"project_description"`
}

type generateResponse struct {
	SelectedRoles []string            `json:"selected_roles"`
	RoleTasks     models.RoleTaskList `json:"role_tasks"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleGenerateTasks(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.planner.ProduceBreakdown(ctx, req.ProjectDescription)
	switch {
	case errors.Is(err, breakdown.ErrEmptyDescription):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "project_description must not be empty"})
		return
	case err != nil:
		writeJSON(w, http.StatusBadGateway, errorResponse{Detail: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		SelectedRoles: res.SelectedRoles,
		RoleTasks:     res.Breakdown.Roles,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
