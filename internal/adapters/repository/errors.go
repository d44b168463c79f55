package repository

import (
	"errors"
	"fmt"
)

// Error kinds. Every directory error matches exactly one of these via errors.Is.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Specific directory errors.
var (
	ErrActivityNotFound = fmt.Errorf("activity %w", ErrNotFound)
	ErrAlreadySignedUp  = fmt.Errorf("student already signed up: %w", ErrConflict)
	ErrNotRegistered    = fmt.Errorf("student not registered: %w", ErrConflict)
	ErrInvalidSeed      = errors.New("invalid seed")
)
