package signupcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/mergington/activities/pkg/logger"
)

// Run executes the complete signup check against a live server: signing up
// and then unregistering Students generated emails must leave the roster
// as it was.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stats := &Stats{
		StartTime: time.Now(),
	}
	client := NewClient(cfg)

	logger.Get().Info(ctx, "starting signup check",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("activity", cfg.Activity),
		logger.Int("students", cfg.Students),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Bool("verbose", cfg.Verbose))

	// Step 1: Check service health
	logger.Get().Info(ctx, "checking service health")
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Snapshot the roster
	before, err := client.Activity(ctx, cfg.Activity)
	if err != nil {
		return stats, fmt.Errorf("initial snapshot failed: %w", err)
	}
	stats.InitialCount = len(before.Participants)

	// Step 3: Sign up generated students concurrently
	emails := generateStudents(ctx, cfg.Students, stats)
	stats.SignupsSucceeded, stats.SignupsFailed = submitRoster(ctx, cfg, client, ActionSignup, emails)

	// Step 4: Verify every student is listed
	during, err := client.Activity(ctx, cfg.Activity)
	if err != nil {
		return stats, fmt.Errorf("post-signup snapshot failed: %w", err)
	}
	stats.PeakCount = len(during.Participants)
	if err := verifyEnrolled(during, emails, stats.InitialCount); err != nil {
		return stats, err
	}

	// Step 5: A repeated signup must be rejected
	status, body, err := client.Roster(ctx, ActionSignup, cfg.Activity, emails[0])
	if err != nil {
		return stats, fmt.Errorf("duplicate probe failed: %w", err)
	}
	if err := verifyRejected(status, body, DetailAlreadySignedUp); err != nil {
		return stats, fmt.Errorf("duplicate probe: %w", err)
	}
	stats.DuplicateRejected = true

	// Step 6: Unregister everyone concurrently
	stats.UnregistersSucceeded, stats.UnregistersFailed = submitRoster(ctx, cfg, client, ActionUnregister, emails)

	// Step 7: Verify the roster is restored
	after, err := client.Activity(ctx, cfg.Activity)
	if err != nil {
		return stats, fmt.Errorf("final snapshot failed: %w", err)
	}
	stats.FinalCount = len(after.Participants)
	if err := verifyRemoved(after, emails, stats.InitialCount); err != nil {
		return stats, err
	}

	// Step 8: Unregistering again must be rejected
	status, body, err = client.Roster(ctx, ActionUnregister, cfg.Activity, emails[0])
	if err != nil {
		return stats, fmt.Errorf("stale unregister probe failed: %w", err)
	}
	if err := verifyRejected(status, body, DetailNotRegistered); err != nil {
		return stats, fmt.Errorf("stale unregister probe: %w", err)
	}
	stats.StaleRejected = true

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "signup check completed successfully")
	return stats, nil
}

// displayFinalStats logs the final check statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, requestsPerSecond float64

	submitted := stats.SignupsSucceeded + stats.SignupsFailed + stats.UnregistersSucceeded + stats.UnregistersFailed
	if submitted > 0 {
		successRate = float64(stats.SignupsSucceeded+stats.UnregistersSucceeded) / float64(submitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("studentsGenerated", stats.StudentsGenerated),
		logger.Int("initialCount", stats.InitialCount),
		logger.Int("peakCount", stats.PeakCount),
		logger.Int("finalCount", stats.FinalCount),
		logger.Int("signupsSucceeded", stats.SignupsSucceeded),
		logger.Int("signupsFailed", stats.SignupsFailed),
		logger.Int("unregistersSucceeded", stats.UnregistersSucceeded),
		logger.Int("unregistersFailed", stats.UnregistersFailed),
		logger.Bool("duplicateRejected", stats.DuplicateRejected),
		logger.Bool("staleRejected", stats.StaleRejected),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
