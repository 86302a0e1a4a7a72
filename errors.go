package factorlab

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is returned when a row label or a cell cannot be read.
	ErrParse = errors.New("parse error")
	// ErrEmptySeries is returned when no observation is left to fit a model.
	ErrEmptySeries = errors.New("empty series")
	// ErrSingularMatrix is returned when the factors are collinear or there are fewer observations than parameters.
	ErrSingularMatrix = errors.New("singular matrix")
	// ErrMissingFactor is returned when a scenario has no value for a factor of the model.
	ErrMissingFactor = errors.New("missing factor")
	// ErrMissingRiskFree is returned when the factor table has no risk-free column.
	ErrMissingRiskFree = errors.New("missing risk-free rate")
	// ErrUnknownAsset is returned when the requested asset is not in the asset table.
	ErrUnknownAsset = errors.New("unknown asset")
	// ErrUnknownColumn is returned when a table has no column with the requested name.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrOutOfRange is returned when a scenario value falls outside the allowed bounds,
	// or when a value is not finite.
	ErrOutOfRange = errors.New("out of range")
)

// ParseError locates a value that could not be read in a tabular source.
type ParseError struct {
	Source string // file name or any name given to the reader
	Line   int    // 1-based line (or spreadsheet row)
	Column string // column header, empty for the row label
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s:%d: invalid row label: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: invalid value in column %q: %v", e.Source, e.Line, e.Column, e.Err)
}

// Unwrap returns both the cause and ErrParse so that errors.Is works with either.
func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// MissingFactorError names the factor a scenario failed to provide.
type MissingFactorError struct {
	Factor string
}

func (e *MissingFactorError) Error() string {
	return fmt.Sprintf("scenario has no value for factor %q", e.Factor)
}

func (e *MissingFactorError) Unwrap() error { return ErrMissingFactor }
