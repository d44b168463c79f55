// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// ErrNotStarted is returned by directory operations before Start.
var ErrNotStarted = errors.New("service not started")

// Service owns the activity directory and wraps each operation with
// logging and metrics.
type Service struct {
	mu sync.RWMutex

	store    repository.Store
	seed     []model.Activity
	seedFile string

	started   bool
	startedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a pre-built directory. Seed options are ignored when set.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSeed sets the activities the directory is created with.
func WithSeed(seed []model.Activity) Option {
	return func(s *Service) {
		if seed != nil {
			s.seed = seed
		}
	}
}

// WithSeedFile loads the initial activities from a YAML file on Start.
// It takes precedence over WithSeed.
func WithSeedFile(path string) Option {
	return func(s *Service) {
		s.seedFile = path
	}
}

// New constructs a new Service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the directory (unless one was injected) and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		seed := s.seed
		if s.seedFile != "" {
			loaded, err := repository.LoadSeedFile(ctx, s.seedFile)
			if err != nil {
				return err
			}
			seed = loaded
			s.logger.Info(ctx, "loaded activity seed file", logger.String("path", s.seedFile))
		}

		var opts []repository.Option
		if seed != nil {
			opts = append(opts, repository.WithSeed(seed))
		}
		store, err := repository.NewMemoryStore(ctx, opts...)
		if err != nil {
			return err
		}
		s.store = store
	}

	s.started = true
	s.startedAt = time.Now()
	s.refreshGauges(ctx)

	s.logger.Info(ctx, "activity service started",
		logger.Int("activities", s.store.Count(ctx)),
		logger.Int("participants", s.store.Participants(ctx)),
	)
	return nil
}

// Stop marks the service stopped. The directory is kept so a restart
// resumes with the same rosters.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "activity service stopped")
}

func (s *Service) directory() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// ListActivities returns every activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) (map[string]model.Activity, error) {
	store, err := s.directory()
	if err != nil {
		return nil, err
	}
	return store.List(ctx), nil
}

// Activity returns one activity by name.
func (s *Service) Activity(ctx context.Context, name string) (model.Activity, error) {
	store, err := s.directory()
	if err != nil {
		return model.Activity{}, err
	}
	return store.Get(ctx, name)
}

// Signup registers email for the named activity.
func (s *Service) Signup(ctx context.Context, name, email string) (model.Confirmation, error) {
	store, err := s.directory()
	if err != nil {
		return model.Confirmation{}, err
	}

	conf, err := store.Signup(ctx, name, email)
	if err != nil {
		s.reject(ctx, model.ActionSignup, name, email, err)
		return model.Confirmation{}, err
	}

	metrics.RecordSignup(name)
	activity := s.updateActivityGauge(ctx, store, name)
	s.logger.Info(ctx, "student signed up",
		logger.String("activity", name),
		logger.String("email", email),
		logger.Int("spotsLeft", activity.SpotsLeft()),
	)
	return conf, nil
}

// Unregister removes email from the named activity.
func (s *Service) Unregister(ctx context.Context, name, email string) (model.Confirmation, error) {
	store, err := s.directory()
	if err != nil {
		return model.Confirmation{}, err
	}

	conf, err := store.Unregister(ctx, name, email)
	if err != nil {
		s.reject(ctx, model.ActionUnregister, name, email, err)
		return model.Confirmation{}, err
	}

	metrics.RecordUnregistration(name)
	s.updateActivityGauge(ctx, store, name)
	s.logger.Info(ctx, "student unregistered",
		logger.String("activity", name),
		logger.String("email", email),
	)
	return conf, nil
}

// Reset replaces the directory contents with seed.
func (s *Service) Reset(ctx context.Context, seed []model.Activity) error {
	store, err := s.directory()
	if err != nil {
		return err
	}
	if err := store.Reset(ctx, seed); err != nil {
		return err
	}

	metrics.RecordDirectoryReset()
	s.refreshGauges(ctx)
	s.logger.Info(ctx, "activity directory reset", logger.Int("activities", len(seed)))
	return nil
}

// RefreshMetrics pushes the current directory sizes into the gauges.
func (s *Service) RefreshMetrics(ctx context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.started {
		s.refreshGauges(ctx)
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		activities := s.store.Count(ctx)
		participants := s.store.Participants(ctx)

		stats["activities"] = activities
		stats["participants"] = participants
		stats["uptimeSeconds"] = int(time.Since(s.startedAt).Seconds())

		metrics.UpdateActivitiesTotal(activities)
		metrics.UpdateParticipantsTotal(participants)
	}
	return stats
}

// refreshGauges must be called with s.mu held and the service started.
func (s *Service) refreshGauges(ctx context.Context) {
	activities := s.store.List(ctx)
	total := 0
	for name, a := range activities {
		metrics.UpdateParticipants(name, len(a.Participants))
		total += len(a.Participants)
	}
	metrics.UpdateActivitiesTotal(len(activities))
	metrics.UpdateParticipantsTotal(total)
}

func (s *Service) updateActivityGauge(ctx context.Context, store repository.Store, name string) model.Activity {
	a, err := store.Get(ctx, name)
	if err == nil {
		metrics.UpdateParticipants(name, len(a.Participants))
	}
	metrics.UpdateParticipantsTotal(store.Participants(ctx))
	return a
}

func (s *Service) reject(ctx context.Context, action model.Action, name, email string, err error) {
	reason := "internal"
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		reason = "not_found"
	case errors.Is(err, repository.ErrAlreadySignedUp):
		reason = "already_signed_up"
	case errors.Is(err, repository.ErrNotRegistered):
		reason = "not_registered"
	}
	metrics.RecordRejection(string(action), reason)
	s.logger.Debug(ctx, "roster change rejected",
		logger.String("action", string(action)),
		logger.String("activity", name),
		logger.String("email", email),
		logger.String("reason", reason),
		logger.Error(err),
	)
}
