// Package errors provides custom error types for chart computation errors.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Standard sentinel errors. Each typed error below unwraps to one of
// these so callers can dispatch with errors.Is without knowing the
// concrete type.
var (
	ErrIncompleteInput       = errors.New("incomplete chart input")
	ErrInvalidConfiguration  = errors.New("invalid chart configuration")
	ErrEphemerisUnavailable  = errors.New("ephemeris unavailable")
	ErrHouseSystemDegenerate = errors.New("house system degenerate")
)

// IncompleteInputError reports missing temporal or spatial fields for
// the requested chart mode.
type IncompleteInputError struct {
	Mode    string
	Missing []string
}

func (e *IncompleteInputError) Error() string {
	return fmt.Sprintf("incomplete chart input [%s]: missing %s", e.Mode, strings.Join(e.Missing, ", "))
}

func (e *IncompleteInputError) Unwrap() error {
	return ErrIncompleteInput
}

// NewIncompleteInputError creates a new IncompleteInputError.
func NewIncompleteInputError(mode string, missing ...string) *IncompleteInputError {
	return &IncompleteInputError{
		Mode:    mode,
		Missing: missing,
	}
}

// InvalidConfigurationError reports an unknown house system, zodiac or
// rulership selector.
type InvalidConfigurationError struct {
	Field string
	Value string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid chart configuration: %s %q is not supported", e.Field, e.Value)
}

func (e *InvalidConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// NewInvalidConfigurationError creates a new InvalidConfigurationError.
func NewInvalidConfigurationError(field, value string) *InvalidConfigurationError {
	return &InvalidConfigurationError{
		Field: field,
		Value: value,
	}
}

// EphemerisUnavailableError reports that the position source cannot
// answer for the requested instant. It is terminal for the chart
// request; retries belong to the caller.
type EphemerisUnavailableError struct {
	Instant time.Time
	Version string
	Err     error
}

func (e *EphemerisUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ephemeris unavailable [%s] at %s: %v", e.Version, e.Instant.Format(time.RFC3339), e.Err)
	}
	return fmt.Sprintf("ephemeris unavailable [%s] at %s", e.Version, e.Instant.Format(time.RFC3339))
}

func (e *EphemerisUnavailableError) Unwrap() error {
	return ErrEphemerisUnavailable
}

// NewEphemerisUnavailableError creates a new EphemerisUnavailableError.
func NewEphemerisUnavailableError(instant time.Time, version string, err error) *EphemerisUnavailableError {
	return &EphemerisUnavailableError{
		Instant: instant,
		Version: version,
		Err:     err,
	}
}

// HouseSystemDegenerateError reports that a house algorithm is
// mathematically undefined for the given latitude or time. It is never
// downgraded to a different house system.
type HouseSystemDegenerateError struct {
	System   string
	Latitude float64
	Reason   string
}

func (e *HouseSystemDegenerateError) Error() string {
	return fmt.Sprintf("house system degenerate [%s] at latitude %.4f: %s", e.System, e.Latitude, e.Reason)
}

func (e *HouseSystemDegenerateError) Unwrap() error {
	return ErrHouseSystemDegenerate
}

// NewHouseSystemDegenerateError creates a new HouseSystemDegenerateError.
func NewHouseSystemDegenerateError(system string, latitude float64, reason string) *HouseSystemDegenerateError {
	return &HouseSystemDegenerateError{
		System:   system,
		Latitude: latitude,
		Reason:   reason,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
