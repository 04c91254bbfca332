package store

import (
	"errors"
	"fmt"
)

// Op names the stage at which a save failed.
type Op string

const (
	OpConnect Op = "connect"
	OpInsert  Op = "insert"
)

// Error is returned by every failed Save.
type Error struct {
	Op      Op
	Backend string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err means the store could not be reached.
func IsUnavailable(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Op == OpConnect
}
