// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package tracker

import (
	"errors"
	"fmt"

	"github.com/tomtom215/habitline/internal/database"
	"github.com/tomtom215/habitline/internal/domain"
	"github.com/tomtom215/habitline/internal/mediastore"
)

// Kind classifies service errors for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is returned by Service for every failure the caller can act on.
// Anything else is an internal error.
type Error struct {
	Kind    Kind
	Message string
	// Field names the offending input for validation errors.
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindInternal
}

func notFound(entity, id string, cause error) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with id %s not found", entity, id), Err: cause}
}

func conflict(msg string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: cause}
}

func validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: msg}
}

// refs names the ids involved in a call, keyed by entity.
type refs map[string]string

var notFoundSentinels = []struct {
	sentinel error
	entity   string
}{
	{database.ErrHabitNotFound, "Habit"},
	{database.ErrActionNotFound, "Action"},
	{database.ErrBookNotFound, "Book"},
	{database.ErrReadingSessionNotFound, "Reading session"},
	{mediastore.ErrNotFound, "Media"},
}

// translate maps domain and store errors to *Error. Unknown errors are
// returned unchanged and surface as internal errors.
func translate(err error, ids refs) error {
	if err == nil {
		return nil
	}
	var te *Error
	if errors.As(err, &te) {
		return err
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return &Error{Kind: KindValidation, Field: ve.Field, Message: ve.Message, Err: err}
	}

	for _, nf := range notFoundSentinels {
		if errors.Is(err, nf.sentinel) {
			return notFound(nf.entity, ids[nf.entity], err)
		}
	}

	switch {
	case errors.Is(err, database.ErrActionAlreadyCompleted), errors.Is(err, domain.ErrAlreadyCompleted):
		return conflict(fmt.Sprintf("Action with id %s is already completed", ids["Action"]), err)
	case errors.Is(err, database.ErrBookInUse):
		return conflict(fmt.Sprintf("Book with id %s has reading sessions and cannot be deleted", ids["Book"]), err)
	case errors.Is(err, database.ErrHabitNameConflict):
		return conflict("Habit with this name already exists", err)
	}
	return err
}
