package houses

import (
	"math"

	"astrochart/internal/errors"
)

// campanusMaxLatitude excludes the geographic poles, where the east
// point and prime vertical are undefined. Campanus is well-defined
// everywhere else.
const campanusMaxLatitude = 89.9999

// campanusCusps divides the prime vertical into twelve 30° arcs and
// projects each division point onto the ecliptic through the north and
// south points of the horizon.
//
// Each house circle is handled as a plane: its normal vector is built
// in the horizon frame, rotated into the equatorial and then ecliptic
// frames, and intersected with the ecliptic plane. Cusp 1 and cusp 10
// reduce exactly to the Ascendant and Midheaven.
func campanusCusps(ramc, eps, lat float64) ([12]float64, error) {
	var cusps [12]float64

	if math.Abs(lat) > campanusMaxLatitude {
		return cusps, errors.NewHouseSystemDegenerateError(
			"campanus", lat, "prime vertical undefined at the geographic poles")
	}

	ramcR := degToRad(ramc)
	epsR := degToRad(eps)
	latR := degToRad(lat)

	for house := 1; house <= 12; house++ {
		// Prime vertical amplitude of the division point, measured from
		// the east point: cusp 1 at 0°, cusp 10 at the zenith (90°),
		// cusp 7 at the west point (180°).
		pv := degToRad(normalize360(30 * float64(13-house)))

		// Normal of the house circle in the equatorial frame.
		sinDec := math.Cos(pv) * math.Sin(latR)
		dec := math.Asin(sinDec)
		hourAngle := math.Atan2(math.Sin(pv), math.Cos(pv)*math.Cos(latR))
		ra := ramcR - hourAngle

		nx := math.Cos(dec) * math.Cos(ra)
		ny := math.Cos(dec) * math.Sin(ra)
		nz := sinDec

		// Rotate equatorial -> ecliptic about the equinox axis.
		ey := ny*math.Cos(epsR) + nz*math.Sin(epsR)

		cusps[house-1] = normalize360(radToDeg(math.Atan2(nx, -ey)))
	}

	return cusps, nil
}
