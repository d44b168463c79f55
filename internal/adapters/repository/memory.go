package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mergington/activities/internal/domain/model"
)

// MemoryStore is the in-memory Store. A single RWMutex serializes roster
// mutations so the membership check and the write happen atomically.
type MemoryStore struct {
	mu         sync.RWMutex
	activities map[string]*model.Activity
	seed       []model.Activity
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore builds a store populated from the configured seed.
func NewMemoryStore(ctx context.Context, opts ...Option) (*MemoryStore, error) {
	s := &MemoryStore{
		seed: DefaultSeed(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reset(ctx, s.seed); err != nil {
		return nil, err
	}
	return s, nil
}

// List returns a deep copy of every activity keyed by name.
func (s *MemoryStore) List(_ context.Context) map[string]model.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.Activity, len(s.activities))
	for name, a := range s.activities {
		out[name] = a.Clone()
	}
	return out
}

// Get returns a copy of one activity.
func (s *MemoryStore) Get(_ context.Context, name string) (model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.activities[name]
	if !ok {
		return model.Activity{}, fmt.Errorf("%w: %q", ErrActivityNotFound, name)
	}
	return a.Clone(), nil
}

// Signup appends email to the roster of the named activity.
func (s *MemoryStore) Signup(_ context.Context, name, email string) (model.Confirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return model.Confirmation{}, fmt.Errorf("%w: %q", ErrActivityNotFound, name)
	}
	if a.HasParticipant(email) {
		return model.Confirmation{}, fmt.Errorf("%w: %s in %q", ErrAlreadySignedUp, email, name)
	}
	a.Participants = append(a.Participants, email)

	return model.Confirmation{Activity: name, Email: email, Action: model.ActionSignup}, nil
}

// Unregister removes email from the roster of the named activity, keeping
// the order of the remaining participants.
func (s *MemoryStore) Unregister(_ context.Context, name, email string) (model.Confirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return model.Confirmation{}, fmt.Errorf("%w: %q", ErrActivityNotFound, name)
	}
	idx := slices.Index(a.Participants, email)
	if idx < 0 {
		return model.Confirmation{}, fmt.Errorf("%w: %s in %q", ErrNotRegistered, email, name)
	}
	a.Participants = slices.Delete(a.Participants, idx, idx+1)

	return model.Confirmation{Activity: name, Email: email, Action: model.ActionUnregister}, nil
}

// Count returns the number of activities.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// Participants returns the total roster size.
func (s *MemoryStore) Participants(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, a := range s.activities {
		total += len(a.Participants)
	}
	return total
}

// Reset validates seed and replaces the directory contents with a copy of it.
// On error the previous state is kept.
func (s *MemoryStore) Reset(_ context.Context, seed []model.Activity) error {
	normalized, err := NormalizeSeed(seed)
	if err != nil {
		return err
	}

	next := make(map[string]*model.Activity, len(normalized))
	for _, a := range normalized {
		c := a.Clone()
		next[c.Name] = &c
	}

	s.mu.Lock()
	s.activities = next
	s.mu.Unlock()
	return nil
}
