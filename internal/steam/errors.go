package steam

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/steam/internal/solver"
	"github.com/roach88/steam/internal/tables"
)

// ErrorCode categorizes resolution failures.
type ErrorCode string

const (
	// ErrCodeInsufficientInput indicates no supported pair of properties was set.
	ErrCodeInsufficientInput ErrorCode = "E_INSUFFICIENT_INPUT"

	// ErrCodeOutOfRange indicates a lookup outside the reference tables.
	ErrCodeOutOfRange ErrorCode = "E_OUT_OF_RANGE"

	// ErrCodeConvergence indicates an implicit case failed to converge.
	ErrCodeConvergence ErrorCode = "E_CONVERGENCE"

	// ErrCodeAmbiguousInput indicates supplied values beyond the chosen pair
	// disagree with the resolved state (strict mode only).
	ErrCodeAmbiguousInput ErrorCode = "E_AMBIGUOUS_INPUT"
)

// InsufficientInputError is returned when the known properties contain no
// supported pair.
type InsufficientInputError struct {
	Known []Property
}

func (e *InsufficientInputError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("%s: no properties set", ErrCodeInsufficientInput)
	}
	syms := make([]string, len(e.Known))
	for i, p := range e.Known {
		syms[i] = p.String()
	}
	return fmt.Sprintf("%s: need two independent properties, have %s", ErrCodeInsufficientInput, strings.Join(syms, ", "))
}

// Code returns ErrCodeInsufficientInput.
func (e *InsufficientInputError) Code() ErrorCode { return ErrCodeInsufficientInput }

// OutOfRangeError is returned when a state lies outside the tabulated data
// or outside the physical range of its inputs. Min and Max are zero when
// the limit is not an interval.
type OutOfRangeError struct {
	Case     Case
	Quantity string
	Value    float64
	Min      float64
	Max      float64

	// Err is the underlying lookup error, if any.
	Err error
}

func (e *OutOfRangeError) Error() string {
	if e.Min == 0 && e.Max == 0 {
		return fmt.Sprintf("%s: case %s: %s %g is outside the tabulated region", ErrCodeOutOfRange, e.Case, e.Quantity, e.Value)
	}
	return fmt.Sprintf("%s: case %s: %s %g outside [%g, %g]", ErrCodeOutOfRange, e.Case, e.Quantity, e.Value, e.Min, e.Max)
}

func (e *OutOfRangeError) Unwrap() error { return e.Err }

// Code returns ErrCodeOutOfRange.
func (e *OutOfRangeError) Code() ErrorCode { return ErrCodeOutOfRange }

// ConvergenceError wraps a root-finding failure in an implicit case.
type ConvergenceError struct {
	Case Case
	Err  error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: case %s: %v", ErrCodeConvergence, e.Case, e.Err)
}

func (e *ConvergenceError) Unwrap() error { return e.Err }

// Code returns ErrCodeConvergence.
func (e *ConvergenceError) Code() ErrorCode { return ErrCodeConvergence }

// AmbiguousInputError reports a supplied property that contradicts the
// state fixed by the chosen pair.
type AmbiguousInputError struct {
	Case     Case
	Property Property
	Given    float64
	Resolved float64
}

func (e *AmbiguousInputError) Error() string {
	return fmt.Sprintf("%s: case %s fixes %s = %g, but %g was supplied",
		ErrCodeAmbiguousInput, e.Case, e.Property, e.Resolved, e.Given)
}

// Code returns ErrCodeAmbiguousInput.
func (e *AmbiguousInputError) Code() ErrorCode { return ErrCodeAmbiguousInput }

// CodeOf returns the ErrorCode carried by err, or "" for foreign errors.
func CodeOf(err error) ErrorCode {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}

// IsInsufficientInput returns true if err is an *InsufficientInputError.
// Uses errors.As to handle wrapped errors.
func IsInsufficientInput(err error) bool {
	var e *InsufficientInputError
	return errors.As(err, &e)
}

// IsOutOfRange returns true if err is an *OutOfRangeError.
func IsOutOfRange(err error) bool {
	var e *OutOfRangeError
	return errors.As(err, &e)
}

// IsConvergence returns true if err is a *ConvergenceError.
func IsConvergence(err error) bool {
	var e *ConvergenceError
	return errors.As(err, &e)
}

// IsAmbiguous returns true if err is an *AmbiguousInputError.
func IsAmbiguous(err error) bool {
	var e *AmbiguousInputError
	return errors.As(err, &e)
}

// classify translates errors from the lookup and solver packages into the
// package's own error types.
func classify(c Case, err error) error {
	if err == nil {
		return nil
	}
	if CodeOf(err) != "" {
		return err
	}
	var re *tables.RangeError
	if errors.As(err, &re) {
		return &OutOfRangeError{Case: c, Quantity: re.Quantity, Value: re.Value, Min: re.Min, Max: re.Max, Err: err}
	}
	if solver.IsConvergenceError(err) {
		return &ConvergenceError{Case: c, Err: err}
	}
	return fmt.Errorf("case %s: %w", c, err)
}
