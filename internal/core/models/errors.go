package models

import (
	"errors"
	"fmt"
)

// Structural misuse of the hardpoint API. These are returned to the caller
// and never absorbed.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnknownHardpoint   = errors.New("unknown hardpoint")
	ErrDuplicateHardpoint = errors.New("duplicate hardpoint")
	ErrOccupiedHardpoint  = errors.New("hardpoint occupied")
	ErrComponentAttached  = errors.New("component already attached")
)

// HardpointError carries the operation and ids involved in a failure.
// Match the cause with errors.Is against the sentinels above.
type HardpointError struct {
	Op        string
	Entity    string
	Hardpoint string
	Err       error
}

func (e *HardpointError) Error() string {
	return fmt.Sprintf("%s %q on %s: %v", e.Op, e.Hardpoint, e.Entity, e.Err)
}

func (e *HardpointError) Unwrap() error { return e.Err }
