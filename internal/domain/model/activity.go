// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"slices"
)

// Activity is one extracurricular activity and its current roster.
// The name is the directory key and is not part of the JSON body.
type Activity struct {
	Name            string   `json:"-" koanf:"name"`
	Description     string   `json:"description" koanf:"description"`
	Schedule        string   `json:"schedule" koanf:"schedule"`
	MaxParticipants int      `json:"max_participants" koanf:"max_participants"`
	Participants    []string `json:"participants" koanf:"participants"`
}

// Clone returns a deep copy. Participants is never nil in the copy so it
// encodes as [] rather than null.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// HasParticipant reports whether email is on the roster.
func (a Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// SpotsLeft is max_participants minus the roster size. It is informational;
// capacity is not enforced and the value may be negative.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Action names a roster mutation.
type Action string

const (
	ActionSignup     Action = "signup"
	ActionUnregister Action = "unregister"
)

// Confirmation is returned by successful roster mutations.
type Confirmation struct {
	Activity string
	Email    string
	Action   Action
}

// Message renders the human-readable confirmation sent to clients.
func (c Confirmation) Message() string {
	switch c.Action {
	case ActionSignup:
		return fmt.Sprintf("Signed up %s for %s", c.Email, c.Activity)
	case ActionUnregister:
		return fmt.Sprintf("Unregistered %s from %s", c.Email, c.Activity)
	default:
		return fmt.Sprintf("%s %s for %s", c.Action, c.Email, c.Activity)
	}
}
