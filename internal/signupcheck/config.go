package signupcheck

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Errors reported by the checker.
var (
	ErrInvalidConfig    = errors.New("invalid signup check config")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrActivityMissing  = errors.New("activity not listed")
	ErrVerification     = errors.New("roster verification failed")
)

// Config holds configuration for the signup check.
type Config struct {
	BaseURL  string        // Base URL of the service
	Activity string        // Activity whose roster is exercised
	Students int           // Number of generated students
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Enable verbose logging
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.BaseURL) == "":
		return fmt.Errorf("%w: url must not be empty", ErrInvalidConfig)
	case c.Activity == "":
		return fmt.Errorf("%w: activity must not be empty", ErrInvalidConfig)
	case c.Students <= 0:
		return fmt.Errorf("%w: students must be positive", ErrInvalidConfig)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// ActivityDetails mirrors one entry of GET /activities.
type ActivityDetails struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// RosterResponse carries either the success message or the error detail.
type RosterResponse struct {
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Stats holds check statistics.
type Stats struct {
	StudentsGenerated    int
	InitialCount         int
	PeakCount            int
	FinalCount           int
	SignupsSucceeded     int
	SignupsFailed        int
	UnregistersSucceeded int
	UnregistersFailed    int
	DuplicateRejected    bool
	StaleRejected        bool
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
