package ephemeris

import (
	"time"

	"astrochart/internal/errors"
	"astrochart/internal/models"
)

// Fixed is an in-memory Source with hand-set positions, used for
// deterministic tests and offline demos.
type Fixed struct {
	version   string
	positions map[time.Time]map[models.Body]RawPosition
}

// NewFixed creates an empty fixed source with the given version tag.
func NewFixed(version string) *Fixed {
	return &Fixed{
		version:   version,
		positions: make(map[time.Time]map[models.Body]RawPosition),
	}
}

// Set records the position of a body at an instant.
func (f *Fixed) Set(instant time.Time, body models.Body, pos RawPosition) {
	key := canonicalInstant(instant)
	if f.positions[key] == nil {
		f.positions[key] = make(map[models.Body]RawPosition)
	}
	f.positions[key][body] = pos
}

// SetAll records positions for all bodies at an instant.
func (f *Fixed) SetAll(instant time.Time, positions map[models.Body]RawPosition) {
	for body, pos := range positions {
		f.Set(instant, body, pos)
	}
}

// Resolve implements Source.
func (f *Fixed) Resolve(instant time.Time) (map[models.Body]RawPosition, error) {
	key := canonicalInstant(instant)
	stored, ok := f.positions[key]
	if !ok {
		return nil, errors.NewEphemerisUnavailableError(key, f.version, nil)
	}
	out := make(map[models.Body]RawPosition, len(stored))
	for body, pos := range stored {
		out[body] = pos
	}
	return out, nil
}

// Version implements Source.
func (f *Fixed) Version() string {
	return f.version
}
