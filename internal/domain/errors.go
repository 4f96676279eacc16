package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOrphanedFinancialAttach = errors.New("financial record has no matching primary record")
	ErrSweepInProgress         = errors.New("sweep already in progress")
	ErrStaleLookup             = errors.New("lookup superseded by a newer request")
	ErrEmptyTopic              = errors.New("topic is empty")
)

type DecodeErrorKind int

const (
	Malformed DecodeErrorKind = iota + 1
	MissingField
	TypeMismatch
)

func (k DecodeErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case MissingField:
		return "missing field"
	case TypeMismatch:
		return "type mismatch"
	default:
		return "unknown"
	}
}

// DecodeError reports a response body that could not be normalized.
type DecodeError struct {
	Kind  DecodeErrorKind
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	msg := "decode: " + e.Kind.String()
	if e.Field != "" {
		msg += " " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type TransportErrorKind int

const (
	InvalidRequest TransportErrorKind = iota + 1
	HTTPStatus
	NoResponseBody
)

// TransportError reports a failed request before any body was decoded.
type TransportError struct {
	Kind       TransportErrorKind
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case InvalidRequest:
		return fmt.Sprintf("invalid request: %v", e.Err)
	case HTTPStatus:
		if e.Err != nil {
			return fmt.Sprintf("http status %d: %v", e.StatusCode, e.Err)
		}
		return fmt.Sprintf("http status %d", e.StatusCode)
	case NoResponseBody:
		return "no response body"
	default:
		return fmt.Sprintf("transport: %v", e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the request may succeed.
func (e *TransportError) Temporary() bool {
	return e.Kind == HTTPStatus && (e.StatusCode == 0 || e.StatusCode >= 500 || e.StatusCode == 429)
}

// ApplicationError is a well-formed response in which the server reports a
// failure of its own.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return "server reported failure"
	}
	return "server reported failure: " + e.Message
}
