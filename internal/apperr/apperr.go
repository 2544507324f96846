// Package apperr defines the error taxonomy shared by every rdm command.
// Each error carries a kind that decides its stable code and process exit code.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConfig
	KindAuth
	KindNotFound
	KindAPI
	KindNetwork
	KindIO
	KindDryRun
)

// Error is the single error type surfaced to the top level.
type Error struct {
	Kind     Kind
	Message  string
	Hint     string
	Resource string // NotFound only
	ID       string // NotFound only
	Status   int    // HTTP status, when one was received
	Details  map[string]any
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindValidation:
		return "Validation error: " + e.Message
	case KindConfig:
		return "Configuration error: " + e.Message
	case KindAuth:
		return "Authentication error: " + e.Message
	case KindNotFound:
		return fmt.Sprintf("Not found: %s #%s", e.Resource, e.ID)
	case KindAPI:
		return "API error: " + e.Message
	case KindNetwork:
		return "Network error: " + e.Message
	case KindIO:
		return "I/O error: " + e.Message
	case KindDryRun:
		return "Dry run - no request sent: " + e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Code returns the stable machine-readable code used in the JSON envelope.
func (e *Error) Code() string {
	switch e.Kind {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindConfig:
		return "CONFIG_ERROR"
	case KindAuth:
		return "AUTH_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindAPI:
		return "API_ERROR"
	case KindNetwork:
		return "NETWORK_ERROR"
	case KindIO:
		return "IO_ERROR"
	case KindDryRun:
		return "DRY_RUN"
	}
	return "UNKNOWN_ERROR"
}

// ExitCode maps the kind onto the documented process exit codes.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindValidation, KindDryRun:
		return 2
	case KindConfig, KindAuth:
		return 3
	case KindNotFound:
		return 4
	default:
		return 5
	}
}

// WithHint returns e with an actionable hint attached.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

func Config(msg string) *Error {
	return &Error{Kind: KindConfig, Message: msg}
}

func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

// NotFound reports a missing resource identified by id.
func NotFound(resource, id, hint string) *Error {
	return &Error{
		Kind:     KindNotFound,
		Message:  fmt.Sprintf("%s #%s not found", resource, id),
		Hint:     hint,
		Resource: resource,
		ID:       id,
		Status:   404,
	}
}

// API reports an unexpected server response. status is zero when the
// failure happened after a successful status (e.g. an undecodable body).
func API(status int, msg string) *Error {
	return &Error{Kind: KindAPI, Message: msg, Status: status}
}

func Network(msg string, err error) *Error {
	return &Error{Kind: KindNetwork, Message: msg, Err: err}
}

func IO(msg string, err error) *Error {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return &Error{Kind: KindIO, Message: msg, Err: err}
}

// DryRun reports a mutating request that was not sent.
func DryRun(method, path string, body []byte) *Error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", method, path)
	if len(body) > 0 {
		b.WriteString("\n")
		b.Write(body)
	}
	return &Error{
		Kind:    KindDryRun,
		Message: b.String(),
		Details: map[string]any{
			"method": method,
			"path":   path,
			"body":   string(body),
		},
	}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// From classifies any error for top-level reporting. Errors outside the
// taxonomy (argument parsing, unknown flags) are reported as validation errors.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
