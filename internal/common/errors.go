// File: internal/common/errors.go
package common

import (
	"errors"
)

var (
	// ErrOperationInProgress is returned when a second operation is started for
	// a provider that already has one outstanding.
	ErrOperationInProgress = errors.New("another operation is already in progress")
	// ErrUnknownProvider is returned for a provider that has no registered adapter.
	ErrUnknownProvider = errors.New("provider is not registered")
)

// DefaultUserMessage is shown when an error carries no message of its own.
const DefaultUserMessage = "Something went wrong. Please try again."

// UserMessenger is implemented by errors that carry text meant for the user.
type UserMessenger interface {
	UserMessage() string
}

// UserMessage returns the text to show the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var um UserMessenger
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	switch {
	case errors.Is(err, ErrOperationInProgress):
		return "Please wait for the current operation to finish."
	case errors.Is(err, ErrUnknownProvider):
		return "This sign-in method is not available."
	}
	return DefaultUserMessage
}
