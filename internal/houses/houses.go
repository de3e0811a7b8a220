// Package houses computes house cusps and chart angles.
//
// All systems share the same entry point: the Ascendant and Midheaven
// are computed first from sidereal time, then the selected division
// algorithm fills in the cusps. Results are delivered in the chart's
// zodiac frame so cusps and bodies always share a reference frame.
package houses

import (
	"time"

	"astrochart/internal/errors"
	"astrochart/internal/models"
	"astrochart/internal/zodiac"
	"astrochart/pkg/utils"
)

// local aliases keep the math files readable.
var (
	normalize360 = utils.Normalize360
	degToRad     = utils.DegToRad
	radToDeg     = utils.RadToDeg
)

func opposite(lon float64) float64 {
	return normalize360(lon + 180)
}

// Compute returns the twelve houses and four angles for the instant and
// location, in the frame of the given zodiac system.
//
// Descendant and Imum Coeli are always derived from the Ascendant and
// Midheaven by opposition, never computed independently.
func Compute(instant time.Time, geo models.GeoPosition, system models.HouseSystem, zs models.ZodiacSystem) ([]models.House, []models.Angle, error) {
	ascTropical, mcTropical, ramc, eps := anglesTropical(instant, geo)

	asc, err := zodiac.Convert(ascTropical, instant, zs)
	if err != nil {
		return nil, nil, err
	}
	mc, err := zodiac.Convert(mcTropical, instant, zs)
	if err != nil {
		return nil, nil, err
	}

	var cusps [12]float64
	switch system {
	case models.Placidus:
		tropical, perr := placidusCusps(ascTropical, mcTropical, ramc, eps, geo.Latitude)
		if perr != nil {
			return nil, nil, perr
		}
		cusps, err = convertCusps(tropical, instant, zs)
		if err != nil {
			return nil, nil, err
		}
	case models.Campanus:
		tropical, cerr := campanusCusps(ramc, eps, geo.Latitude)
		if cerr != nil {
			return nil, nil, cerr
		}
		cusps, err = convertCusps(tropical, instant, zs)
		if err != nil {
			return nil, nil, err
		}
	case models.WholeSign:
		// Whole sign snaps to sign boundaries of the target frame, so
		// it divides the already converted ascendant.
		cusps = wholeSignCusps(asc)
	default:
		return nil, nil, errors.NewInvalidConfigurationError("house_system", string(system))
	}

	houses := make([]models.House, 12)
	for i := 0; i < 12; i++ {
		houses[i] = models.House{Index: i + 1, Cusp: cusps[i]}
	}

	angles := []models.Angle{
		{Name: models.Ascendant, Longitude: asc},
		{Name: models.Midheaven, Longitude: mc},
		{Name: models.Descendant, Longitude: opposite(asc)},
		{Name: models.ImumCoeli, Longitude: opposite(mc)},
	}

	return houses, angles, nil
}

func convertCusps(tropical [12]float64, instant time.Time, zs models.ZodiacSystem) ([12]float64, error) {
	var out [12]float64
	for i, cusp := range tropical {
		converted, err := zodiac.Convert(cusp, instant, zs)
		if err != nil {
			return out, err
		}
		out[i] = converted
	}
	return out, nil
}
