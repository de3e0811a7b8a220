package houses

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"astrochart/internal/errors"
	"astrochart/internal/models"
	"astrochart/internal/zodiac"
	"astrochart/pkg/utils"
)

func genInstant() gopter.Gen {
	base := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	span := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC).Unix() - base
	return gen.Int64Range(0, span).Map(func(off int64) time.Time {
		return time.Unix(base+off, 0).UTC()
	})
}

// genGeo stays well inside the Placidus latitude bound so all three
// systems are defined for the same inputs.
func genGeo() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(-60, 60),
		gen.Float64Range(-180, 180),
	).Map(func(vals []interface{}) models.GeoPosition {
		return models.GeoPosition{
			Latitude:  vals[0].(float64),
			Longitude: vals[1].(float64),
		}
	})
}

func angDiff(a, b float64) float64 {
	return utils.Separation(a, b)
}

func angleByName(angles []models.Angle, name models.AngleName) (float64, bool) {
	for _, a := range angles {
		if a.Name == name {
			return a.Longitude, true
		}
	}
	return 0, false
}

// Property: every system yields twelve normalized cusps with indices
// 1-12 and four angles where Descendant and Imum Coeli oppose the
// Ascendant and Midheaven.
func TestProperty_ComputeShape(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	systems := []models.HouseSystem{models.Placidus, models.WholeSign, models.Campanus}
	zodiacs := []models.ZodiacSystem{models.Tropical, models.LahiriVedic}

	properties.Property("twelve normalized cusps and opposed angles", prop.ForAll(
		func(instant time.Time, geo models.GeoPosition, sysIdx, zodIdx int) bool {
			system := systems[sysIdx]
			zs := zodiacs[zodIdx]

			houseList, angles, err := Compute(instant, geo, system, zs)
			if err != nil {
				t.Logf("Compute(%s, %s) failed: %v", system, zs, err)
				return false
			}

			if len(houseList) != 12 {
				return false
			}
			for i, h := range houseList {
				if h.Index != i+1 {
					return false
				}
				if h.Cusp < 0 || h.Cusp >= 360 {
					return false
				}
			}

			if len(angles) != 4 {
				return false
			}
			asc, ok1 := angleByName(angles, models.Ascendant)
			mc, ok2 := angleByName(angles, models.Midheaven)
			desc, ok3 := angleByName(angles, models.Descendant)
			ic, ok4 := angleByName(angles, models.ImumCoeli)
			if !ok1 || !ok2 || !ok3 || !ok4 {
				return false
			}
			if angDiff(desc, asc) < 179.999999 {
				t.Logf("Descendant %v does not oppose Ascendant %v", desc, asc)
				return false
			}
			if angDiff(ic, mc) < 179.999999 {
				t.Logf("Imum Coeli %v does not oppose Midheaven %v", ic, mc)
				return false
			}
			return true
		},
		genInstant(),
		genGeo(),
		gen.IntRange(0, len(systems)-1),
		gen.IntRange(0, len(zodiacs)-1),
	))

	properties.TestingRun(t)
}

// Property: for Placidus and Campanus the first and tenth cusps land on
// the Ascendant and Midheaven, and opposite cusps differ by 180°.
func TestProperty_QuadrantSystemAnchors(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	systems := []models.HouseSystem{models.Placidus, models.Campanus}

	properties.Property("cusp 1 is the Ascendant, cusp 10 the Midheaven", prop.ForAll(
		func(instant time.Time, geo models.GeoPosition, sysIdx int) bool {
			system := systems[sysIdx]
			houseList, angles, err := Compute(instant, geo, system, models.Tropical)
			if err != nil {
				t.Logf("Compute(%s) failed: %v", system, err)
				return false
			}
			asc, _ := angleByName(angles, models.Ascendant)
			mc, _ := angleByName(angles, models.Midheaven)
			if angDiff(houseList[0].Cusp, asc) > 1e-6 {
				t.Logf("%s cusp 1 = %v, ascendant = %v", system, houseList[0].Cusp, asc)
				return false
			}
			if angDiff(houseList[9].Cusp, mc) > 1e-6 {
				t.Logf("%s cusp 10 = %v, midheaven = %v", system, houseList[9].Cusp, mc)
				return false
			}
			for i := 0; i < 6; i++ {
				if angDiff(houseList[i].Cusp, houseList[i+6].Cusp) < 180-1e-6 {
					t.Logf("%s cusps %d and %d are not opposed", system, i+1, i+7)
					return false
				}
			}
			return true
		},
		genInstant(),
		genGeo(),
		gen.IntRange(0, len(systems)-1),
	))

	properties.TestingRun(t)
}

// Property: whole sign cusps sit on consecutive 30° boundaries and the
// first house contains the Ascendant.
func TestProperty_WholeSignBoundaries(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	zodiacs := []models.ZodiacSystem{models.Tropical, models.LahiriVedic}

	properties.Property("cusps snap to sign boundaries containing the Ascendant", prop.ForAll(
		func(instant time.Time, geo models.GeoPosition, zodIdx int) bool {
			zs := zodiacs[zodIdx]
			houseList, angles, err := Compute(instant, geo, models.WholeSign, zs)
			if err != nil {
				return false
			}
			asc, _ := angleByName(angles, models.Ascendant)

			for i, h := range houseList {
				if math.Mod(h.Cusp, 30) != 0 {
					t.Logf("cusp %d = %v is not a sign boundary", i+1, h.Cusp)
					return false
				}
			}
			// The first cusp is 0° of the sign holding the converted
			// ascendant, in the chart's own frame.
			if zodiac.SignAt(houseList[0].Cusp) != zodiac.SignAt(asc) {
				t.Logf("house 1 at %v does not share a sign with ascendant %v", houseList[0].Cusp, asc)
				return false
			}
			for i := 0; i < 11; i++ {
				next := normalize360(houseList[i].Cusp + 30)
				if houseList[i+1].Cusp != next {
					return false
				}
			}
			return true
		},
		genInstant(),
		genGeo(),
		gen.IntRange(0, len(zodiacs)-1),
	))

	properties.TestingRun(t)
}

func TestPlacidusDegenerateAtPolarLatitude(t *testing.T) {
	instant := time.Date(1990, 6, 15, 14, 30, 0, 0, time.UTC)
	geo := models.GeoPosition{Latitude: 70.0, Longitude: 25.0}

	_, _, err := Compute(instant, geo, models.Placidus, models.Tropical)
	if err == nil {
		t.Fatal("expected degeneracy error for Placidus at 70°N")
	}
	if !errors.Is(err, errors.ErrHouseSystemDegenerate) {
		t.Errorf("expected ErrHouseSystemDegenerate, got %v", err)
	}
	var degErr *errors.HouseSystemDegenerateError
	if !errors.As(err, &degErr) {
		t.Fatalf("expected HouseSystemDegenerateError, got %T", err)
	}
	if degErr.System != "placidus" || degErr.Latitude != 70.0 {
		t.Errorf("unexpected error details: %+v", degErr)
	}
}

func TestCampanusDefinedAtHighLatitude(t *testing.T) {
	instant := time.Date(1990, 6, 15, 14, 30, 0, 0, time.UTC)
	geo := models.GeoPosition{Latitude: 80.0, Longitude: 25.0}

	houseList, _, err := Compute(instant, geo, models.Campanus, models.Tropical)
	if err != nil {
		t.Fatalf("Campanus must stay defined at 80°N: %v", err)
	}
	if len(houseList) != 12 {
		t.Errorf("expected 12 houses, got %d", len(houseList))
	}
}

func TestWholeSignDefinedAtHighLatitude(t *testing.T) {
	instant := time.Date(1990, 6, 15, 14, 30, 0, 0, time.UTC)
	geo := models.GeoPosition{Latitude: 78.2, Longitude: 15.6}

	if _, _, err := Compute(instant, geo, models.WholeSign, models.Tropical); err != nil {
		t.Fatalf("whole sign must stay defined at 78°N: %v", err)
	}
}

func TestComputeRejectsUnknownSystem(t *testing.T) {
	instant := time.Date(1990, 6, 15, 14, 30, 0, 0, time.UTC)
	geo := models.GeoPosition{Latitude: 51.5, Longitude: -0.12}

	_, _, err := Compute(instant, geo, models.HouseSystem("koch"), models.Tropical)
	if err == nil {
		t.Fatal("expected error for unknown house system")
	}
	if !errors.Is(err, errors.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

// The sidereal frame shifts cusps and angles together: the gap between
// a Placidus cusp and the Ascendant is frame-independent.
func TestSiderealShiftsFrameCoherently(t *testing.T) {
	instant := time.Date(1990, 6, 15, 14, 30, 0, 0, time.UTC)
	geo := models.GeoPosition{Latitude: 51.5074, Longitude: -0.1278}

	tropHouses, tropAngles, err := Compute(instant, geo, models.Placidus, models.Tropical)
	if err != nil {
		t.Fatal(err)
	}
	sidHouses, sidAngles, err := Compute(instant, geo, models.Placidus, models.LahiriVedic)
	if err != nil {
		t.Fatal(err)
	}

	tropAsc, _ := angleByName(tropAngles, models.Ascendant)
	sidAsc, _ := angleByName(sidAngles, models.Ascendant)

	ayanamsa := zodiac.Ayanamsa(instant)
	if angDiff(normalize360(tropAsc-ayanamsa), sidAsc) > 1e-9 {
		t.Errorf("sidereal ascendant %v is not tropical %v minus ayanamsa %v", sidAsc, tropAsc, ayanamsa)
	}

	for i := range tropHouses {
		tropGap := normalize360(tropHouses[i].Cusp - tropAsc)
		sidGap := normalize360(sidHouses[i].Cusp - sidAsc)
		if angDiff(tropGap, sidGap) > 1e-9 {
			t.Errorf("cusp %d gap to ascendant differs across frames: %v vs %v", i+1, tropGap, sidGap)
		}
	}
}
