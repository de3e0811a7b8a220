package utils

import (
	"time"
)

// J2000 is the Julian day number of the J2000.0 epoch
// (2000-01-01 12:00:00 TT, treated as UTC here).
const J2000 = 2451545.0

// JulianDay converts an instant to a Julian day number.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	year := t.Year()
	month := int(t.Month())
	day := float64(t.Day()) +
		float64(t.Hour())/24 +
		float64(t.Minute())/1440 +
		float64(t.Second())/86400 +
		float64(t.Nanosecond())/86400e9

	if month <= 2 {
		year--
		month += 12
	}
	a := year / 100
	b := 2 - a + a/4

	return float64(int(365.25*float64(year+4716))) +
		float64(int(30.6001*float64(month+1))) +
		day + float64(b) - 1524.5
}

// JulianCenturies returns the number of Julian centuries between the
// instant and J2000.0.
func JulianCenturies(t time.Time) float64 {
	return (JulianDay(t) - J2000) / 36525.0
}
