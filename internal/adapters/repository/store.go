// Package repository holds the activity directory: the in-memory store of
// activities and their rosters.
package repository

import (
	"context"

	"github.com/mergington/activities/internal/domain/model"
)

// Store provides read/write access to the activity directory.
type Store interface {
	// List returns every activity keyed by name. The result is a deep copy.
	List(ctx context.Context) map[string]model.Activity

	// Get returns a single activity.
	// Returns ErrActivityNotFound if the name is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// Signup appends email to the activity roster.
	// Returns ErrActivityNotFound or ErrAlreadySignedUp.
	Signup(ctx context.Context, name, email string) (model.Confirmation, error)

	// Unregister removes email from the activity roster.
	// Returns ErrActivityNotFound or ErrNotRegistered.
	Unregister(ctx context.Context, name, email string) (model.Confirmation, error)

	// Count returns the number of activities.
	Count(ctx context.Context) int

	// Participants returns the roster size summed over all activities.
	Participants(ctx context.Context) int

	// Reset replaces all state with a copy of seed.
	Reset(ctx context.Context, seed []model.Activity) error
}
