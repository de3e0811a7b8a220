// Package rulership maps zodiac signs to their ruling bodies.
//
// The tables are immutable configuration data: they are defined once at
// package init and handed to charts by value, never edited at runtime.
package rulership

import (
	"astrochart/internal/errors"
	"astrochart/internal/models"
)

// traditionalTable assigns the classical seven rulers.
var traditionalTable = map[models.Sign][]models.Body{
	models.Aries:       {models.Mars},
	models.Taurus:      {models.Venus},
	models.Gemini:      {models.Mercury},
	models.Cancer:      {models.Moon},
	models.Leo:         {models.Sun},
	models.Virgo:       {models.Mercury},
	models.Libra:       {models.Venus},
	models.Scorpio:     {models.Mars},
	models.Sagittarius: {models.Jupiter},
	models.Capricorn:   {models.Saturn},
	models.Aquarius:    {models.Saturn},
	models.Pisces:      {models.Jupiter},
}

// modernTable overrides three signs with outer-planet rulers; the
// classical ruler is kept as co-ruler.
var modernTable = map[models.Sign][]models.Body{
	models.Aries:       {models.Mars},
	models.Taurus:      {models.Venus},
	models.Gemini:      {models.Mercury},
	models.Cancer:      {models.Moon},
	models.Leo:         {models.Sun},
	models.Virgo:       {models.Mercury},
	models.Libra:       {models.Venus},
	models.Scorpio:     {models.Pluto, models.Mars},
	models.Sagittarius: {models.Jupiter},
	models.Capricorn:   {models.Saturn},
	models.Aquarius:    {models.Uranus, models.Saturn},
	models.Pisces:      {models.Neptune, models.Jupiter},
}

// Table returns a defensive copy of the rulership table for the scheme.
func Table(scheme models.RulershipScheme) (map[models.Sign][]models.Body, error) {
	var src map[models.Sign][]models.Body
	switch scheme {
	case models.Traditional:
		src = traditionalTable
	case models.Modern:
		src = modernTable
	default:
		return nil, errors.NewInvalidConfigurationError("rulership", string(scheme))
	}

	out := make(map[models.Sign][]models.Body, len(src))
	for sign, rulers := range src {
		copied := make([]models.Body, len(rulers))
		copy(copied, rulers)
		out[sign] = copied
	}
	return out, nil
}

// Rulers returns the ruling bodies of a sign under the scheme.
func Rulers(sign models.Sign, scheme models.RulershipScheme) ([]models.Body, error) {
	table, err := Table(scheme)
	if err != nil {
		return nil, err
	}
	return table[sign], nil
}
