package zodiac

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"astrochart/internal/errors"
	"astrochart/internal/models"
	"astrochart/pkg/utils"
)

func genInstant() gopter.Gen {
	base := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	span := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC).Unix() - base
	return gen.Int64Range(0, span).Map(func(off int64) time.Time {
		return time.Unix(base+off, 0).UTC()
	})
}

// Property: tropical conversion is the identity up to normalization.
func TestProperty_TropicalIsIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("tropical conversion normalizes without shifting", prop.ForAll(
		func(lon float64, instant time.Time) bool {
			got, err := Convert(lon, instant, models.Tropical)
			if err != nil {
				return false
			}
			return math.Abs(got-utils.Normalize360(lon)) < 1e-12
		},
		gen.Float64Range(-720, 720),
		genInstant(),
	))

	properties.TestingRun(t)
}

// Property: the sidereal longitude is the tropical longitude minus the
// ayanamsa for the same instant, and both land in [0, 360).
func TestProperty_LahiriShift(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("lahiri conversion subtracts the ayanamsa", prop.ForAll(
		func(lon float64, instant time.Time) bool {
			sidereal, err := Convert(lon, instant, models.LahiriVedic)
			if err != nil {
				return false
			}
			if sidereal < 0 || sidereal >= 360 {
				return false
			}
			want := utils.Normalize360(lon - Ayanamsa(instant))
			return math.Abs(sidereal-want) < 1e-9
		},
		gen.Float64Range(-720, 720),
		genInstant(),
	))

	properties.TestingRun(t)
}

func TestAyanamsaGrowsWithTime(t *testing.T) {
	earlier := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if Ayanamsa(earlier) >= Ayanamsa(later) {
		t.Errorf("ayanamsa must increase with time: %v >= %v", Ayanamsa(earlier), Ayanamsa(later))
	}
}

func TestAyanamsaAtJ2000(t *testing.T) {
	got := Ayanamsa(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(got-23.85306) > 1e-6 {
		t.Errorf("ayanamsa at J2000 = %v, want 23.85306", got)
	}
}

func TestConvertRejectsUnknownSystem(t *testing.T) {
	_, err := Convert(100, time.Now(), models.ZodiacSystem("draconic"))
	if err == nil {
		t.Fatal("expected error for unknown zodiac system")
	}
	if !errors.Is(err, errors.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
	var cfgErr *errors.InvalidConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected InvalidConfigurationError, got %T", err)
	}
	if cfgErr.Field != "zodiac" {
		t.Errorf("expected field 'zodiac', got %q", cfgErr.Field)
	}
}

func TestSignAtBoundaries(t *testing.T) {
	cases := []struct {
		lon  float64
		want models.Sign
	}{
		{0, models.Aries},
		{29.999999, models.Aries},
		{30, models.Taurus},
		{119.5, models.Cancer},
		{330, models.Pisces},
		{359.999999, models.Pisces},
		{360, models.Aries}, // wraps
	}
	for _, c := range cases {
		if got := SignAt(c.lon); got != c.want {
			t.Errorf("SignAt(%v) = %v, want %v", c.lon, got, c.want)
		}
	}
}

// Property: SignAt and SignIndex agree for every longitude.
func TestProperty_SignAtIndexAgree(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("SignIndex(SignAt(lon)) matches the 30° bucket", prop.ForAll(
		func(lon float64) bool {
			n := utils.Normalize360(lon)
			idx := int(n / 30)
			if idx > 11 {
				idx = 11
			}
			return SignIndex(SignAt(lon)) == idx
		},
		gen.Float64Range(-720, 720),
	))

	properties.TestingRun(t)
}
