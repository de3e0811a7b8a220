// Package zodiac converts tropical ecliptic longitudes into the
// configured zodiac frame and maps longitudes to signs.
package zodiac

import (
	"time"

	"astrochart/internal/errors"
	"astrochart/internal/models"
	"astrochart/pkg/utils"
)

// Lahiri ayanamsa model: linear precession anchored at J2000.0.
// The ayanamsa at J2000.0 is 23°51'11" and grows by the general
// precession rate of 50.2877 arcseconds per Julian year.
const (
	lahiriAtJ2000  = 23.85306
	precessionRate = 50.2877 / 3600 // degrees per Julian year
)

// Ayanamsa returns the Lahiri ayanamsa, in degrees, for the instant.
func Ayanamsa(instant time.Time) float64 {
	years := (utils.JulianDay(instant) - utils.J2000) / 365.25
	return lahiriAtJ2000 + precessionRate*years
}

// Convert transforms a raw tropical longitude into the requested zodiac
// frame and normalizes the result to [0,360). Tropical is the identity
// transform; Lahiri sidereal subtracts the ayanamsa for the instant.
func Convert(longitude float64, instant time.Time, system models.ZodiacSystem) (float64, error) {
	switch system {
	case models.Tropical:
		return utils.Normalize360(longitude), nil
	case models.LahiriVedic:
		return utils.Normalize360(longitude - Ayanamsa(instant)), nil
	default:
		return 0, errors.NewInvalidConfigurationError("zodiac", string(system))
	}
}

// SignAt returns the zodiac sign containing the longitude.
func SignAt(longitude float64) models.Sign {
	idx := int(utils.Normalize360(longitude) / 30)
	if idx > 11 {
		idx = 11
	}
	return models.Signs[idx]
}

// SignIndex returns the zero-based zodiacal index of a sign.
func SignIndex(sign models.Sign) int {
	for i, s := range models.Signs {
		if s == sign {
			return i
		}
	}
	return -1
}
