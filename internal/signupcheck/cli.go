package signupcheck

import (
	"fmt"
	"io"
	"os"

	"github.com/mergington/activities/pkg/logger"
)

// SetupLogging initializes the global logger on w, at debug level when
// verbose is set.
func SetupLogging(w io.Writer, verbose bool) error {
	if err := logger.InitWithWriter(w, logger.FormatText); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the signup check tool.
func ShowHelp() {
	os.Stdout.WriteString(`Mergington Signup Check
=======================

Signs up generated students for one activity concurrently, verifies the
roster, unregisters them again and verifies the roster is restored.

Usage:
  go run ./cmd/signup-check [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -activity string
        Activity to exercise (default "Chess Club")
  -students int
        Number of students to sign up (default 100)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Check with default settings
  go run ./cmd/signup-check

  # Check a different activity with more load
  go run ./cmd/signup-check -activity "Gym Class" -students 1000 -workers 32
`)
}
