package houses

import (
	"math"
)

// wholeSignCusps fixes each cusp at 0° of consecutive signs starting
// from the sign containing the Ascendant. The ascendant must already be
// expressed in the chart's zodiac frame so the sign boundaries line up
// with the bodies the houses will hold.
func wholeSignCusps(asc float64) [12]float64 {
	var cusps [12]float64
	base := 30 * math.Floor(normalize360(asc)/30)
	for i := 0; i < 12; i++ {
		cusps[i] = normalize360(base + 30*float64(i))
	}
	return cusps
}
