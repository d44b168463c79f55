package repository

import "github.com/mergington/activities/internal/domain/model"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithSeed sets the activities the store starts with instead of DefaultSeed.
func WithSeed(seed []model.Activity) Option {
	return func(s *MemoryStore) {
		if seed != nil {
			s.seed = seed
		}
	}
}
