package types

import (
	"errors"
	"fmt"
)

// ErrValidation reports malformed input, such as confirming a phrase that
// was not guessed during the turn or submitting the wrong number of phrases.
type ErrValidation struct {
	Field  string
	Reason string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var target *ErrValidation
	return errors.As(err, &target)
}

// ErrInvariantViolation reports a phrase accounting mismatch. It is a bug,
// never a user error.
type ErrInvariantViolation struct {
	Reason string
}

func (e *ErrInvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Reason)
}

func IsInvariantViolation(err error) bool {
	var target *ErrInvariantViolation
	return errors.As(err, &target)
}
