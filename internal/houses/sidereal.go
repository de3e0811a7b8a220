package houses

import (
	"math"
	"time"

	"astrochart/internal/models"
	"astrochart/pkg/utils"
)

// gmst returns Greenwich mean sidereal time in degrees for a Julian day
// (IAU 1982 polynomial).
func gmst(jd float64) float64 {
	d := jd - utils.J2000
	t := d / 36525.0
	st := 280.46061837 +
		360.98564736629*d +
		0.000387933*t*t -
		t*t*t/38710000.0
	return utils.Normalize360(st)
}

// obliquity returns the mean obliquity of the ecliptic in degrees
// (IAU 1980 polynomial) for Julian centuries from J2000.
func obliquity(t float64) float64 {
	return 23.439291111 -
		0.0130041667*t -
		1.638889e-7*t*t +
		5.036111e-7*t*t*t
}

// anglesTropical computes the tropical Ascendant and Midheaven together
// with the RAMC and obliquity they were derived from.
func anglesTropical(instant time.Time, geo models.GeoPosition) (asc, mc, ramc, eps float64) {
	jd := utils.JulianDay(instant)
	ramc = utils.Normalize360(gmst(jd) + geo.Longitude)
	eps = obliquity(utils.JulianCenturies(instant))

	ramcR := utils.DegToRad(ramc)
	epsR := utils.DegToRad(eps)
	latR := utils.DegToRad(geo.Latitude)

	mc = utils.Normalize360(utils.RadToDeg(math.Atan2(math.Sin(ramcR), math.Cos(ramcR)*math.Cos(epsR))))

	asc = utils.Normalize360(utils.RadToDeg(math.Atan2(
		math.Cos(ramcR),
		-(math.Sin(ramcR)*math.Cos(epsR) + math.Tan(latR)*math.Sin(epsR)),
	)))

	// The ascendant is the eastern horizon crossing: it always lies in
	// the half circle following the MC in zodiacal order.
	if utils.Normalize360(asc-mc) >= 180 {
		asc = utils.Normalize360(asc + 180)
	}

	return asc, mc, ramc, eps
}

// eclipticFromRA converts a right ascension on the ecliptic to the
// corresponding ecliptic longitude.
func eclipticFromRA(raDeg, epsDeg float64) float64 {
	ra := utils.DegToRad(raDeg)
	eps := utils.DegToRad(epsDeg)
	return utils.Normalize360(utils.RadToDeg(math.Atan2(math.Sin(ra), math.Cos(ra)*math.Cos(eps))))
}
