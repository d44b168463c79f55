package api

import (
	"context"
	"net/http"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
)

// ActivitiesDependencies defines the read side of the directory.
type ActivitiesDependencies interface {
	ListActivities(ctx context.Context) (map[string]model.Activity, error)
	Activity(ctx context.Context, name string) (model.Activity, error)
}

// ActivitiesHandler handles activity listing requests.
type ActivitiesHandler struct {
	deps ActivitiesDependencies
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps ActivitiesDependencies) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// HandleList handles GET /activities requests.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	activities, err := h.deps.ListActivities(r.Context())
	if err != nil {
		logger.Get().Error(r.Context(), "list activities failed", logger.Error(err))
		writeDirectoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// HandleGet handles GET /activities/{name} requests.
func (h *ActivitiesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	activity, err := h.deps.Activity(r.Context(), r.PathValue("name"))
	if err != nil {
		writeDirectoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}
