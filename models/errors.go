package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrForbidden   = errors.New("access denied")
	ErrNotFound    = errors.New("not found")
	ErrNoSelection = errors.New("no photos selected")
	ErrConflict    = errors.New("already exists")
)

// Error kinds reported through ErrorKind.
const (
	KindValidation  = "validation"
	KindForbidden   = "forbidden"
	KindNotFound    = "not_found"
	KindNoSelection = "no_selection"
	KindConflict    = "conflict"
	KindInternal    = "internal"
)

// ErrorClassifier is implemented by errors that know their kind.
type ErrorClassifier interface {
	ErrorKind() string
}

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func (e *ValidationError) ErrorKind() string { return KindValidation }

// Kind classifies err into one of the Kind* constants.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrNoSelection):
		return KindNoSelection
	case errors.Is(err, ErrConflict):
		return KindConflict
	}
	return KindInternal
}
