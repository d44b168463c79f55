package api

import (
	"context"
	"net/http"

	"github.com/mergington/activities/internal/domain/model"
)

// RosterDependencies defines the write side of the directory.
type RosterDependencies interface {
	Signup(ctx context.Context, name, email string) (model.Confirmation, error)
	Unregister(ctx context.Context, name, email string) (model.Confirmation, error)
}

// RosterHandler handles signup and unregister requests.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleSignup handles POST /activities/{name}/signup?email= requests.
func (h *RosterHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.deps.Signup)
}

// HandleUnregister handles POST /activities/{name}/unregister?email= requests.
func (h *RosterHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.deps.Unregister)
}

type rosterOp func(ctx context.Context, name, email string) (model.Confirmation, error)

func (h *RosterHandler) mutate(w http.ResponseWriter, r *http.Request, op rosterOp) {
	// PathValue returns the unescaped segment: "Chess%20Club" -> "Chess Club".
	name := r.PathValue("name")

	query := r.URL.Query()
	if !query.Has("email") {
		writeDetail(w, http.StatusUnprocessableEntity, DetailEmailRequired)
		return
	}

	conf, err := op(r.Context(), name, query.Get("email"))
	if err != nil {
		writeDirectoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmationResponse(conf))
}
