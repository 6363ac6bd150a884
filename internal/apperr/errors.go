// Package apperr defines the error taxonomy shared by the dashboard.  Upstream
// failures, authentication denials and malformed derivation input each have
// their own type so that handlers can map them to a response without looking
// at error strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when the upstream reports that a record is missing.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when an admin attempts an operation that the
// dashboard never allows, such as deleting another admin account.
var ErrForbidden = errors.New("forbidden")

// ErrNetworkFailure matches every *NetworkError via errors.Is.
var ErrNetworkFailure = errors.New("network failure")

// ErrInvalidCredentials matches every *AuthError via errors.Is.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidConfiguration matches every *ConfigError via errors.Is.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// NetworkError records a rejected upstream request or a non-success status.
// Status is zero when the request never produced a response.
type NetworkError struct {
	Op     string // e.g. "GET /films"
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is matches ErrNetworkFailure, and ErrNotFound for a 404.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetworkFailure || (target == ErrNotFound && e.Status == http.StatusNotFound)
}

// AuthError is the single denial returned for unknown emails, wrong
// passwords, inactive accounts and non-admin roles alike.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return "auth: " + e.Reason }

func (e *AuthError) Is(target error) bool { return target == ErrInvalidCredentials }

// InvalidCredentials returns the generic authentication denial.
func InvalidCredentials() error { return &AuthError{Reason: "invalid_credentials"} }

// ConfigError reports malformed input to a derivation function.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfiguration }

// Kind maps an error to a stable label used in log fields.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetworkFailure):
		return "network_failure"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrInvalidConfiguration):
		return "invalid_configuration"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	}
	return "unexpected"
}
