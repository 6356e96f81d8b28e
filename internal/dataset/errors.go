package dataset

import (
	"errors"
	"fmt"
)

// Domain errors for dataset access and selection building.
var (
	// ErrUnknownVariable indicates a variable name not present in the dataset.
	ErrUnknownVariable = errors.New("dataset: unknown variable")

	// ErrUnknownDimension indicates a dimension name not present in the dataset.
	ErrUnknownDimension = errors.New("dataset: unknown dimension")

	// ErrOutOfRange indicates an index or index range outside a dimension's bounds.
	ErrOutOfRange = errors.New("dataset: index out of range")

	// ErrBadToken indicates a malformed per-dimension selection token.
	ErrBadToken = errors.New("dataset: malformed dimension selection")

	// ErrTooManyPlotDims indicates more than two dimensions resolved to ranges.
	ErrTooManyPlotDims = errors.New("dataset: more than two range dimensions selected")

	// ErrShapeMismatch indicates variable data whose length disagrees with its dimensions.
	ErrShapeMismatch = errors.New("dataset: data length does not match dimension shape")

	// ErrNotFound indicates a store key with no stored value.
	ErrNotFound = errors.New("dataset: not found")
)

// TokenError ties a malformed selection token to its dimension so
// every bad token can be reported in one pass.
type TokenError struct {
	Dim     string
	Token   string
	Wrapped error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("dimension %s: selection %q: %v", e.Dim, e.Token, e.Wrapped)
}

func (e *TokenError) Unwrap() error {
	return e.Wrapped
}

// RangeError reports an index range that falls outside a dimension.
type RangeError struct {
	Dim         string
	Start, Stop int
	Len         int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("dimension %s: range [%d:%d] outside length %d", e.Dim, e.Start, e.Stop, e.Len)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
