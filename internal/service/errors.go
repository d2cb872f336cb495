package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when no authenticated user identity is
	// present; the operation has no side effect
	ErrUnauthenticated = errors.New("no authenticated user")

	// ErrInvalidFix is returned when a fix carries out-of-range or
	// non-finite coordinates; the store is never touched
	ErrInvalidFix = errors.New("fix coordinates out of range")

	// ErrInvalidDay is returned when a day key is not a YYYY-MM-DD date
	ErrInvalidDay = errors.New("malformed day key")
)

// StoreError reports a failed entry-store operation. Op is "query" or
// "write"; a failed write happens after the distance check passed and is
// never retried here — the next periodic fix supersedes the failed one.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("entry store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
