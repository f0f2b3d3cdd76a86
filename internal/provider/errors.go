package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"social_media_auth/internal/shared"

	"golang.org/x/oauth2"
)

// ErrorKind classifies adapter failures.
type ErrorKind string

const (
	KindUserCancelled      ErrorKind = "USER_CANCELLED"
	KindServiceUnavailable ErrorKind = "SERVICE_UNAVAILABLE"
	KindTokenUnavailable   ErrorKind = "TOKEN_UNAVAILABLE"
	KindNetworkError       ErrorKind = "NETWORK_ERROR"
	KindUnknown            ErrorKind = "UNKNOWN"
)

// Sentinels for errors.Is matching on kind.
var (
	ErrUserCancelled      = &AdapterError{Kind: KindUserCancelled}
	ErrServiceUnavailable = &AdapterError{Kind: KindServiceUnavailable}
	ErrTokenUnavailable   = &AdapterError{Kind: KindTokenUnavailable}
	ErrNetwork            = &AdapterError{Kind: KindNetworkError}
	ErrUnknown            = &AdapterError{Kind: KindUnknown}
)

// AdapterError is returned by every Adapter method that fails.
type AdapterError struct {
	Kind     ErrorKind
	Provider shared.ProviderID
	Message  string // shown to the user
	Err      error
}

// NewError builds an AdapterError wrapping cause.
func NewError(p shared.ProviderID, kind ErrorKind, message string, cause error) *AdapterError {
	return &AdapterError{Kind: kind, Provider: p, Message: message, Err: cause}
}

func (e *AdapterError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AdapterError) Unwrap() error { return e.Err }

// Is matches any AdapterError of the same kind, so errors.Is(err, ErrUserCancelled) works.
func (e *AdapterError) Is(target error) bool {
	t, ok := target.(*AdapterError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Provider == "" || t.Provider == e.Provider)
}

func (e *AdapterError) UserMessage() string { return e.Message }

// KindOf returns the kind of the AdapterError in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var ae *AdapterError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// Classify converts an SDK or transport failure into an AdapterError. Errors
// that already are AdapterErrors pass through. Transport failures become
// NetworkError, token endpoint rejections become TokenUnavailable, and the
// rest get the fallback kind.
func Classify(p shared.ProviderID, err error, fallback ErrorKind, message string) *AdapterError {
	if err == nil {
		return nil
	}
	var ae *AdapterError
	if errors.As(err, &ae) {
		return ae
	}

	var (
		retrieveErr *oauth2.RetrieveError
		urlErr      *url.Error
		netErr      net.Error
	)
	switch {
	case errors.As(err, &retrieveErr):
		return NewError(p, KindTokenUnavailable, "Something went wrong obtaining access token", err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &urlErr),
		errors.As(err, &netErr):
		return NewError(p, KindNetworkError, "Network error. Check your connection and try again.", err)
	}
	return NewError(p, fallback, message, err)
}
