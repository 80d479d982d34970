/*
errors.go - Centralized error types for the wall engine

The pure calculators return values, not errors: missing optional fields
collapse to zero and every division is structurally guarded. These errors
cover the ingestion and storage boundary instead.
*/
package wall

import (
	"errors"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced record or user doesn't exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when creating a record whose id already exists.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrInvalidAmount is returned for negative money amounts. NaN never enters:
	// amounts are decimals parsed at the boundary.
	ErrInvalidAmount = errors.New("amount must be non-negative")

	// ErrInvalidHours is returned for negative hour counts.
	ErrInvalidHours = errors.New("hours must be non-negative")

	// ErrInvalidDate is returned for missing dates or ranges that end before
	// they start.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidBracket is returned when a caller supplies a bracket outside
	// {103, 130, 150}.
	ErrInvalidBracket = errors.New("bracket must be 103, 130 or 150")

	// ErrInvalidFrequency is returned for schedule frequencies outside
	// {weekly, monthly}.
	ErrInvalidFrequency = errors.New("frequency must be weekly or monthly")
)

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidHours) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidBracket) ||
		errors.Is(err, ErrInvalidFrequency)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
