package signupcheck

import (
	"fmt"
	"net/http"
	"slices"
)

// verifyEnrolled checks that every email is listed and the roster grew by
// exactly len(emails).
func verifyEnrolled(details ActivityDetails, emails []string, initial int) error {
	if want := initial + len(emails); len(details.Participants) != want {
		return fmt.Errorf("%w: expected %d participants after signup, got %d",
			ErrVerification, want, len(details.Participants))
	}
	for _, email := range emails {
		if !slices.Contains(details.Participants, email) {
			return fmt.Errorf("%w: %s missing after signup", ErrVerification, email)
		}
	}
	return nil
}

// verifyRemoved checks that no email is listed and the roster is back to
// its initial size.
func verifyRemoved(details ActivityDetails, emails []string, initial int) error {
	if len(details.Participants) != initial {
		return fmt.Errorf("%w: expected %d participants after unregister, got %d",
			ErrVerification, initial, len(details.Participants))
	}
	for _, email := range emails {
		if slices.Contains(details.Participants, email) {
			return fmt.Errorf("%w: %s still listed after unregister", ErrVerification, email)
		}
	}
	return nil
}

// verifyRejected checks a probe answered 400 with the expected detail.
func verifyRejected(status int, body RosterResponse, detail string) error {
	if status != http.StatusBadRequest {
		return fmt.Errorf("%w: expected status %d, got %d", ErrUnexpectedStatus, http.StatusBadRequest, status)
	}
	if body.Detail != detail {
		return fmt.Errorf("%w: expected detail %q, got %q", ErrVerification, detail, body.Detail)
	}
	return nil
}
