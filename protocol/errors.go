package protocol

import (
	"errors"
	"fmt"
)

// Validation errors, raised before a command is encoded.
var (
	// ErrInvalidAxis indicates an axis value outside First, Second, Third and All.
	ErrInvalidAxis = errors.New("protocol: invalid axis")

	// ErrParameterArityMismatch indicates a parameter slice whose length does not
	// match the cardinality of the selected axis. See ArityError.
	ErrParameterArityMismatch = errors.New("protocol: parameter arity mismatch")

	// ErrInvalidClosedLoopMode indicates a closed-loop mode other than Track and Lock.
	ErrInvalidClosedLoopMode = errors.New("protocol: invalid closed-loop mode")

	// ErrInvalidStepAmount indicates a negative step amount.
	ErrInvalidStepAmount = errors.New("protocol: step amount must not be negative")
)

// Decode errors, raised after a reply line is received.
var (
	// ErrMalformedStatusReply indicates a status reply without exactly six fields
	// or with a non-numeric position field.
	ErrMalformedStatusReply = errors.New("protocol: malformed status reply")

	// ErrMalformedArityReply indicates a voltage, speed or control-mode reply whose
	// token count does not match the queried axis, or with a non-numeric token.
	ErrMalformedArityReply = errors.New("protocol: malformed reply")

	// ErrEmptyReply indicates an empty reply where at least one character is required.
	ErrEmptyReply = errors.New("protocol: empty reply")
)

// ArityError describes a parameter slice with the wrong length for its axis.
// It matches ErrParameterArityMismatch with errors.Is.
type ArityError struct {
	Axis     Axis
	Expected int
	Actual   int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: axis %s expects %d parameter(s), got %d",
		ErrParameterArityMismatch, e.Axis, e.Expected, e.Actual)
}

func (e *ArityError) Unwrap() error {
	return ErrParameterArityMismatch
}
