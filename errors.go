package gpsmooth

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain is matched by every DomainError.
	ErrDomain = errors.New("domain error")
	// ErrFilter is matched by every FilterFailure.
	ErrFilter = errors.New("filter failure")
	// ErrInvalidInput marks malformed numeric input such as NaN or negative noise.
	ErrInvalidInput = errors.New("invalid input")
)

// DomainKind classifies a DomainError.
type DomainKind uint8

const (
	// KindDegenerate means the equation is not of the expected degree.
	KindDegenerate DomainKind = iota + 1
	// KindParameter means a construction parameter is out of its domain.
	KindParameter
	// KindNoPositiveRoot means the steady-state equation has no positive root.
	KindNoPositiveRoot
)

// String implements the Stringer interface.
func (k DomainKind) String() string {
	switch k {
	case KindDegenerate:
		return "degenerate"
	case KindParameter:
		return "parameter"
	case KindNoPositiveRoot:
		return "no positive root"
	}
	return fmt.Sprintf("DomainKind(%d)", uint8(k))
}

// DomainError is a violated precondition of a solver or tracker.
// It is never recovered from internally.
type DomainError struct {
	// Op is the operation that failed
	Op string
	// Kind classifies the error
	Kind DomainKind
	// Msg describes the offending value
	Msg string
}

// NewDomainError creates new DomainError and returns it.
func NewDomainError(op string, kind DomainKind, format string, args ...interface{}) *DomainError {
	return &DomainError{
		Op:   op,
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Error implements error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Is reports whether target is ErrDomain.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// FilterFailure reports that a fix could not be smoothed.
// The caller receives the raw fix unchanged alongside it.
type FilterFailure struct {
	// Axis names the axis being processed, empty if the failure is not axis specific
	Axis string
	// Err is the underlying error
	Err error
}

// Error implements error interface.
func (f *FilterFailure) Error() string {
	if f.Axis == "" {
		return fmt.Sprintf("filter failure: %v", f.Err)
	}
	return fmt.Sprintf("filter failure on %s: %v", f.Axis, f.Err)
}

// Unwrap returns the underlying error.
func (f *FilterFailure) Unwrap() error {
	return f.Err
}

// Is reports whether target is ErrFilter.
func (f *FilterFailure) Is(target error) bool {
	return target == ErrFilter
}
