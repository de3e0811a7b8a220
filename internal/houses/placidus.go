package houses

import (
	"math"

	"astrochart/internal/errors"
)

// placidusMaxLatitude bounds the Placidus algorithm. Beyond the polar
// circle the diurnal arc of an ecliptic degree can vanish and the
// semi-arc division has no solution.
const placidusMaxLatitude = 66.0

const (
	placidusTolerance = 1e-9
	placidusMaxIter   = 100
)

// placidusCusps computes all twelve Placidus cusps. The intermediate
// cusps 11, 12, 2 and 3 come from dividing the diurnal and nocturnal
// semi-arcs into thirds; their opposites follow by +180°.
func placidusCusps(asc, mc, ramc, eps, lat float64) ([12]float64, error) {
	var cusps [12]float64

	if math.Abs(lat) > placidusMaxLatitude {
		return cusps, errors.NewHouseSystemDegenerateError(
			"placidus", lat, "semi-arc division undefined beyond polar latitudes")
	}

	c11, err := placidusIterate(ramc, eps, lat, 1.0/3.0, ramc+30, true)
	if err != nil {
		return cusps, err
	}
	c12, err := placidusIterate(ramc, eps, lat, 2.0/3.0, ramc+60, true)
	if err != nil {
		return cusps, err
	}
	c2, err := placidusIterate(ramc, eps, lat, 2.0/3.0, ramc+120, false)
	if err != nil {
		return cusps, err
	}
	c3, err := placidusIterate(ramc, eps, lat, 1.0/3.0, ramc+150, false)
	if err != nil {
		return cusps, err
	}

	cusps[0] = asc
	cusps[1] = c2
	cusps[2] = c3
	cusps[3] = opposite(mc)
	cusps[4] = opposite(c11)
	cusps[5] = opposite(c12)
	cusps[6] = opposite(asc)
	cusps[7] = opposite(c2)
	cusps[8] = opposite(c3)
	cusps[9] = mc
	cusps[10] = c11
	cusps[11] = c12

	return cusps, nil
}

// placidusIterate solves for one intermediate cusp by fixed-point
// iteration on its right ascension. fraction is the share of the
// semi-arc between the cusp and the meridian; diurnal selects the
// semi-arc above or below the horizon.
func placidusIterate(ramc, eps, lat, fraction, raStart float64, diurnal bool) (float64, error) {
	epsR := degToRad(eps)
	latR := degToRad(lat)
	ra := raStart

	for i := 0; i < placidusMaxIter; i++ {
		dec := math.Atan(math.Sin(degToRad(ra)) * math.Tan(epsR))

		x := math.Tan(latR) * math.Tan(dec)
		if math.Abs(x) > 1 {
			return 0, errors.NewHouseSystemDegenerateError(
				"placidus", lat, "cusp declination is circumpolar at this latitude")
		}
		ad := radToDeg(math.Asin(x))

		var next float64
		if diurnal {
			next = ramc + fraction*(90+ad)
		} else {
			next = ramc + 180 - fraction*(90-ad)
		}

		if math.Abs(next-ra) < placidusTolerance {
			ra = next
			break
		}
		ra = next
	}

	return eclipticFromRA(ra, eps), nil
}
