// Package apperr defines the error kinds gptcli surfaces at its store and
// network boundaries.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for reporting and exit codes.
type Kind string

const (
	KindStoreUnavailable  Kind = "store_unavailable"
	KindAuth              Kind = "auth"
	KindTransport         Kind = "transport"
	KindMalformedResponse Kind = "malformed_response"
	KindUnsupportedModel  Kind = "unsupported_model"
	KindUsage             Kind = "usage"
)

// Error is a kind-tagged error with an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func New(kind Kind, message string, cause error) error {
	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

func StoreUnavailable(message string, cause error) error {
	return New(KindStoreUnavailable, message, cause)
}

func Auth(message string, cause error) error {
	return New(KindAuth, message, cause)
}

func Transport(message string, cause error) error {
	return New(KindTransport, message, cause)
}

func MalformedResponse(message string, cause error) error {
	return New(KindMalformedResponse, message, cause)
}

// UnsupportedModel is a model id the client library refuses to send to the
// chat endpoint.
func UnsupportedModel(message string, cause error) error {
	return New(KindUnsupportedModel, message, cause)
}

func Usage(message string, cause error) error {
	return New(KindUsage, message, cause)
}

// KindOf returns the kind of the outermost *Error in err's chain, or "" if
// there is none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
