package repositories

import (
	"errors"
	"fmt"
)

type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func IsNotFound(err error) bool {
	var target *ErrNotFound
	return errors.As(err, &target)
}

// ErrConfiguration means no usable backend is configured.
type ErrConfiguration struct {
	Reason string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("persistence not configured: %s", e.Reason)
}

func IsConfiguration(err error) bool {
	var target *ErrConfiguration
	return errors.As(err, &target)
}

// ErrBackend wraps a failed call to the storage backend.
type ErrBackend struct {
	Op  string
	Err error
}

func (e *ErrBackend) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ErrBackend) Unwrap() error {
	return e.Err
}

func IsBackend(err error) bool {
	var target *ErrBackend
	return errors.As(err, &target)
}
