// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ActivitiesDependencies
	RosterDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
	rosterHandler     *RosterHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps),
		rosterHandler:     NewRosterHandler(deps),
	}
}

// Register attaches all API routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /activities", MetricsMiddleware(s.activitiesHandler.HandleList, "activities"))
	mux.HandleFunc("GET /activities/{name}", MetricsMiddleware(s.activitiesHandler.HandleGet, "activity"))
	mux.HandleFunc("POST /activities/{name}/signup", MetricsMiddleware(s.rosterHandler.HandleSignup, "signup"))
	mux.HandleFunc("POST /activities/{name}/unregister", MetricsMiddleware(s.rosterHandler.HandleUnregister, "unregister"))
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	if detail == "" {
		detail = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeDirectoryError maps directory error kinds onto status codes and the
// fixed client-facing messages.
func writeDirectoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		writeDetail(w, http.StatusNotFound, DetailActivityNotFound)
	case errors.Is(err, repository.ErrAlreadySignedUp):
		writeDetail(w, http.StatusBadRequest, DetailAlreadySignedUp)
	case errors.Is(err, repository.ErrNotRegistered):
		writeDetail(w, http.StatusBadRequest, DetailNotRegistered)
	default:
		writeDetail(w, http.StatusInternalServerError, "")
	}
}

// confirmationResponse is the success body for roster changes.
func confirmationResponse(c model.Confirmation) messageResponse {
	return messageResponse{Message: c.Message()}
}
