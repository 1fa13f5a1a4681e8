package bgg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meeplelab/go-bgg/internal/xmlcodec"
)

// Sentinel errors for common failure modes.
var (
	ErrNoBaseURL = errors.New("bgg: no base URL configured")

	// ErrNotFound is returned when a requested item is absent from an
	// otherwise successful response.
	ErrNotFound = errors.New("bgg: item not found")

	// ErrConflictingComments is returned when a thing request asks for
	// both plain comments and rating comments.
	ErrConflictingComments = errors.New("bgg: comments and ratingcomments are mutually exclusive")

	// ErrNoUsername is returned when a collection request names no user.
	ErrNoUsername = errors.New("bgg: username cannot be empty")

	// ErrUnknownUsername is wrapped by an APIError whose message reports
	// that the requested username does not exist.
	ErrUnknownUsername = errors.New("bgg: unknown username")

	// ErrInvalidSubtype is wrapped by an APIError whose message reports an
	// invalid collection subtype.
	ErrInvalidSubtype = errors.New("bgg: invalid collection subtype")
)

// Messages the service uses inside its error envelope for failures that
// callers commonly branch on.
const (
	msgInvalidUsername = "Invalid username specified"
	msgInvalidSubtype  = "Invalid collection subtype"
)

// APIError is a domain error the service reported inside a well-formed
// error envelope. The request itself succeeded at the HTTP level.
type APIError struct {
	// Messages holds every message from the envelope, in order.
	Messages []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bgg: API error: %s", strings.Join(e.Messages, "; "))
}

// Unwrap maps well-known envelope messages to sentinel errors so callers
// can branch with errors.Is.
func (e *APIError) Unwrap() error {
	for _, msg := range e.Messages {
		switch msg {
		case msgInvalidUsername:
			return ErrUnknownUsername
		case msgInvalidSubtype:
			return ErrInvalidSubtype
		}
	}
	return nil
}

// HTTPError indicates a terminal HTTP status. No status other than
// 202 Accepted is ever retried.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("bgg: unexpected status %d", e.StatusCode)
}

// RetryExhaustedError indicates the service kept answering 202 Accepted
// past the configured retry budget.
type RetryExhaustedError struct {
	// Attempts is the total number of requests made, including the first.
	Attempts int
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("bgg: response still queued after %d attempts", e.Attempts)
}

// DecodeError indicates a response body that matched neither the expected
// entity shape nor the service's error envelope. It wraps the structural
// error from the entity decode, never the envelope attempt.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bgg: malformed response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// InvalidFieldError reports a field of an otherwise well-formed document
// whose content violated the expected grammar or cardinality.
type InvalidFieldError struct {
	// Entity names the owning entity, with its ID when known.
	Entity string
	// Field names the offending element or attribute.
	Field string
	Err   error
}

func (e *InvalidFieldError) Error() string {
	switch {
	case e.Entity != "" && e.Field != "":
		return fmt.Sprintf("bgg: %s: field %q: %v", e.Entity, e.Field, e.Err)
	case e.Entity != "":
		return fmt.Sprintf("bgg: %s: %v", e.Entity, e.Err)
	case e.Field != "":
		return fmt.Sprintf("bgg: field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("bgg: invalid field: %v", e.Err)
}

func (e *InvalidFieldError) Unwrap() error {
	return e.Err
}

// InvalidPollError reports a poll that could not be specialized: wrong
// poll name, unknown option label, or wrong result-set cardinality.
type InvalidPollError struct {
	Poll   string
	Reason string
}

func (e *InvalidPollError) Error() string {
	return fmt.Sprintf("bgg: poll %q: %s", e.Poll, e.Reason)
}

// fieldErr wraps a codec or cardinality error with entity and field
// context. Cardinality errors from the routing layer already name the
// field, so only the entity is added for those.
func fieldErr(entity, field string, err error) error {
	var missing *xmlcodec.MissingFieldError
	var dup *xmlcodec.DuplicateFieldError
	var unknown *xmlcodec.UnknownKindError
	if errors.As(err, &missing) || errors.As(err, &dup) || errors.As(err, &unknown) {
		field = ""
	}
	return &InvalidFieldError{Entity: entity, Field: field, Err: err}
}
