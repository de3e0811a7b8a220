package aspects

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"astrochart/internal/models"
)

var testBodies = []models.Body{
	models.Sun, models.Moon, models.Mercury, models.Venus, models.Mars,
	models.Jupiter, models.Saturn, models.Uranus, models.Neptune,
	models.Pluto, models.MeanNode,
}

// genPoints produces a point set with distinct bodies and arbitrary
// longitudes.
func genPoints() gopter.Gen {
	return gen.SliceOfN(len(testBodies), gen.Float64Range(0, 360)).Map(
		func(lons []float64) []Point {
			points := make([]Point, len(lons))
			for i, lon := range lons {
				points[i] = Point{Body: testBodies[i], Longitude: lon}
			}
			return points
		})
}

// Property: input order never changes the result. Shuffling the points
// must produce the identical aspect list.
func TestProperty_ComputeOrderInvariant(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	table := DefaultTable()

	properties.Property("shuffled input yields identical output", prop.ForAll(
		func(points []Point, seed int) bool {
			shuffled := make([]Point, len(points))
			copy(shuffled, points)
			// Deterministic shuffle from the seed.
			for i := len(shuffled) - 1; i > 0; i-- {
				j := (seed + i*31) % (i + 1)
				if j < 0 {
					j += i + 1
				}
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			}

			a := table.Compute(points)
			b := table.Compute(shuffled)
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		genPoints(),
		gen.IntRange(0, 1<<20),
	))

	properties.TestingRun(t)
}

// Property: every reported aspect honors its definition: the separation
// is the shorter arc, the orb delta matches and stays within the orb.
func TestProperty_ComputeHonorsOrbs(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	table := DefaultTable()
	defsByType := make(map[models.AspectType]models.AspectDef)
	for _, def := range table.Defs() {
		defsByType[def.Type] = def
	}

	properties.Property("reported aspects stay within their orb", prop.ForAll(
		func(points []Point) bool {
			for _, asp := range table.Compute(points) {
				def, ok := defsByType[asp.Type]
				if !ok {
					return false
				}
				if asp.Separation < 0 || asp.Separation > 180 {
					return false
				}
				if asp.OrbDelta > def.Orb {
					return false
				}
				if math.Abs(math.Abs(asp.Separation-def.Angle)-asp.OrbDelta) > 1e-9 {
					return false
				}
			}
			return true
		},
		genPoints(),
	))

	properties.Property("no aspect pairs a body with itself", prop.ForAll(
		func(points []Point) bool {
			for _, asp := range table.Compute(points) {
				if asp.BodyA == asp.BodyB && asp.OriginA == asp.OriginB {
					return false
				}
			}
			return true
		},
		genPoints(),
	))

	properties.TestingRun(t)
}

func TestOrbBoundaryInclusive(t *testing.T) {
	table := DefaultTable()

	// Trine orb is 8: separation 128 is exactly at the boundary.
	atBoundary := []Point{
		{Body: models.Sun, Longitude: 0},
		{Body: models.Moon, Longitude: 128},
	}
	got := table.Compute(atBoundary)
	if len(got) != 1 || got[0].Type != models.Trine {
		t.Fatalf("separation at exact orb boundary must match: got %v", got)
	}
	if got[0].OrbDelta != 8 {
		t.Errorf("orb delta = %v, want 8", got[0].OrbDelta)
	}

	beyond := []Point{
		{Body: models.Sun, Longitude: 0},
		{Body: models.Moon, Longitude: 128.0001},
	}
	if got := table.Compute(beyond); len(got) != 0 {
		t.Errorf("separation beyond orb must not match: got %v", got)
	}
}

func TestOverlappingTableSmallestDeltaWins(t *testing.T) {
	// Deliberately overlapping windows around 90°.
	table := NewTable([]models.AspectDef{
		{Type: models.Square, Angle: 90, Orb: 20},
		{Type: models.Trine, Angle: 120, Orb: 20},
	})
	points := []Point{
		{Body: models.Sun, Longitude: 0},
		{Body: models.Moon, Longitude: 104}, // 14 from square, 16 from trine
	}
	got := table.Compute(points)
	if len(got) != 1 {
		t.Fatalf("expected exactly one aspect, got %d", len(got))
	}
	if got[0].Type != models.Square {
		t.Errorf("overlap must resolve to smallest delta: got %s", got[0].Type)
	}
}

func TestExtendedTableMinorAspects(t *testing.T) {
	table := ExtendedTable()
	points := []Point{
		{Body: models.Sun, Longitude: 0},
		{Body: models.Moon, Longitude: 150.5},
	}
	got := table.Compute(points)
	if len(got) != 1 || got[0].Type != models.Quincunx {
		t.Fatalf("expected quincunx, got %v", got)
	}

	// The default table must not report it.
	if got := DefaultTable().Compute(points); len(got) != 0 {
		t.Errorf("default table must not report minor aspects: got %v", got)
	}
}

func TestComputeCanonicalOrdering(t *testing.T) {
	// Three mutually conjunct bodies, supplied out of canonical order.
	points := []Point{
		{Body: models.Mercury, Longitude: 2},
		{Body: models.Sun, Longitude: 0},
		{Body: models.Moon, Longitude: 1},
	}
	got := DefaultTable().Compute(points)
	want := [][2]models.Body{
		{models.Sun, models.Moon},
		{models.Sun, models.Mercury},
		{models.Moon, models.Mercury},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d aspects, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].BodyA != w[0] || got[i].BodyB != w[1] {
			t.Errorf("aspect %d = %s-%s, want %s-%s", i, got[i].BodyA, got[i].BodyB, w[0], w[1])
		}
	}
}

func TestComputeCrossOnlyCrossPairs(t *testing.T) {
	table := DefaultTable()
	setA := []Point{
		{Body: models.Sun, Origin: models.OriginA, Longitude: 0},
		{Body: models.Moon, Origin: models.OriginA, Longitude: 0}, // conjunct within A
	}
	setB := []Point{
		{Body: models.Sun, Origin: models.OriginB, Longitude: 90},
	}

	got := table.ComputeCross(setA, setB)
	if len(got) != 2 {
		t.Fatalf("expected 2 cross aspects, got %d: %v", len(got), got)
	}
	for _, asp := range got {
		if asp.OriginA != models.OriginA || asp.OriginB != models.OriginB {
			t.Errorf("cross aspect carries wrong origins: %+v", asp)
		}
		if asp.Type != models.Square {
			t.Errorf("expected square, got %s", asp.Type)
		}
	}
}

func TestFromPositions(t *testing.T) {
	positions := []models.BodyPosition{
		{Body: models.Sun, Origin: models.OriginA, Longitude: 123.4},
		{Body: models.Moon, Longitude: 5.6},
	}
	points := FromPositions(positions)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Body != models.Sun || points[0].Origin != models.OriginA || points[0].Longitude != 123.4 {
		t.Errorf("unexpected first point: %+v", points[0])
	}
}
