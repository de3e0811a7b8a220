package utils

import (
	"fmt"
	"math"
)

// signNames mirrors the zodiacal sign order; kept here as plain strings
// so formatting helpers stay free of domain imports.
var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// FormatZodiacal formats an ecliptic longitude as degrees, minutes and
// seconds within its zodiac sign, e.g. `12°34'56" Leo`.
func FormatZodiacal(longitude float64) string {
	lon := Normalize360(longitude)
	signIdx := int(lon / 30)
	if signIdx > 11 {
		signIdx = 11
	}
	inSign := lon - float64(signIdx)*30

	deg := int(inSign)
	minFloat := (inSign - float64(deg)) * 60
	min := int(minFloat)
	sec := int(math.Round((minFloat - float64(min)) * 60))
	if sec == 60 {
		sec = 0
		min++
	}
	if min == 60 {
		min = 0
		deg++
	}

	return fmt.Sprintf("%d°%02d'%02d\" %s", deg, min, sec, signNames[signIdx])
}

// FormatDegrees formats a longitude as decimal degrees.
func FormatDegrees(longitude float64) string {
	return fmt.Sprintf("%.4f°", Normalize360(longitude))
}

// FormatOrb formats an orb delta with sign-free two-decimal precision.
func FormatOrb(delta float64) string {
	return fmt.Sprintf("%.2f°", math.Abs(delta))
}
