package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrStorage      = errors.New("storage error")
	ErrSlotTaken    = errors.New("time slot already booked")
	ErrUnauthorized = errors.New("unauthorized")
)

// StorageError marks err as a failure of the underlying store.
func StorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

func ValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
