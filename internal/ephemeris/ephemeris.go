// Package ephemeris provides position sources for tracked celestial
// bodies. The engine treats a Source as an injected capability: it must
// be deterministic for a given (instant, version) pair and is never
// retried here.
package ephemeris

import (
	"time"

	"astrochart/internal/models"
)

// RawPosition is a geocentric ecliptic position in the tropical frame,
// as delivered by the underlying position source.
type RawPosition struct {
	Longitude float64
	Latitude  float64
	Distance  float64
}

// Source resolves positions for all tracked bodies at an instant.
type Source interface {
	// Resolve returns one position per tracked body. It fails with an
	// EphemerisUnavailableError when the instant is outside the range
	// the source can answer for.
	Resolve(instant time.Time) (map[models.Body]RawPosition, error)

	// Version identifies the ephemeris data edition. Two sources with
	// equal versions resolve identically.
	Version() string
}

// traditionalBodies is the classical seven-body set.
var traditionalBodies = []models.Body{
	models.Sun, models.Moon, models.Mercury, models.Venus,
	models.Mars, models.Jupiter, models.Saturn,
}

// modernBodies adds the outer planets and the mean lunar node.
var modernBodies = []models.Body{
	models.Sun, models.Moon, models.Mercury, models.Venus,
	models.Mars, models.Jupiter, models.Saturn,
	models.Uranus, models.Neptune, models.Pluto, models.MeanNode,
}

// TrackedBodies returns the body set for a rulership scheme: the
// classical seven for traditional charts, the extended set for modern.
func TrackedBodies(scheme models.RulershipScheme) []models.Body {
	if scheme == models.Traditional {
		out := make([]models.Body, len(traditionalBodies))
		copy(out, traditionalBodies)
		return out
	}
	out := make([]models.Body, len(modernBodies))
	copy(out, modernBodies)
	return out
}

// canonicalInstant truncates to whole seconds in UTC. Sources key their
// data at second precision; sub-second input must not split cache or
// lookup keys.
func canonicalInstant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
