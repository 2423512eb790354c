package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrRegionNotFound = fmt.Errorf("%w: region", ErrNotFound)

	// Startup / reference data errors
	ErrDataLoad         = errors.New("reference data load failed")
	ErrMissingColumn    = fmt.Errorf("%w: missing column", ErrDataLoad)
	ErrRowCountMismatch = fmt.Errorf("%w: row count mismatch", ErrDataLoad)

	// Filter errors
	ErrUnknownCommodity = errors.New("unknown commodity code")

	// Rank-change errors
	ErrMissingJoinKey = errors.New("region missing from one boundary table")
)

// Error constructors with context
func NewDataLoadError(table string, err error) error {
	return fmt.Errorf("%w: table %s: %v", ErrDataLoad, table, err)
}

func NewMissingColumnError(table, column string) error {
	return fmt.Errorf("%w: table %s, column %s", ErrMissingColumn, table, column)
}

func NewRowCountError(table string, want, got int) error {
	return fmt.Errorf("%w: table %s: expected %d rows, got %d", ErrRowCountMismatch, table, want, got)
}

func NewUnknownCommodityError(code string) error {
	return fmt.Errorf("%w: %q", ErrUnknownCommodity, code)
}

func NewMissingJoinKeyError(region, presentIn string) error {
	return fmt.Errorf("%w: %s only present in %s", ErrMissingJoinKey, region, presentIn)
}

// Error checking helpers
func IsDataLoadError(err error) bool {
	return errors.Is(err, ErrDataLoad)
}

func IsUnknownCommodityError(err error) bool {
	return errors.Is(err, ErrUnknownCommodity)
}

func IsMissingJoinKeyError(err error) bool {
	return errors.Is(err, ErrMissingJoinKey)
}
