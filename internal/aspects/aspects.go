// Package aspects detects angular relationships between body positions.
package aspects

import (
	"sort"

	"astrochart/internal/models"
	"astrochart/pkg/utils"
)

// Point is one aspect endpoint: a body, the chart it belongs to, and
// its resolved longitude.
type Point struct {
	Body      models.Body
	Origin    models.ChartOrigin
	Longitude float64
}

// Table is an immutable set of aspect definitions. Load it once and
// pass it by reference into the computation.
type Table struct {
	defs []models.AspectDef
}

// NewTable builds a table from explicit definitions.
func NewTable(defs []models.AspectDef) Table {
	copied := make([]models.AspectDef, len(defs))
	copy(copied, defs)
	return Table{defs: copied}
}

// DefaultTable returns the five major aspects with their default orbs.
// The orb windows do not overlap.
func DefaultTable() Table {
	return NewTable([]models.AspectDef{
		{Type: models.Conjunction, Angle: 0, Orb: 8},
		{Type: models.Sextile, Angle: 60, Orb: 6},
		{Type: models.Square, Angle: 90, Orb: 8},
		{Type: models.Trine, Angle: 120, Orb: 8},
		{Type: models.Opposition, Angle: 180, Orb: 8},
	})
}

// ExtendedTable adds the minor aspects. Orb windows remain disjoint.
func ExtendedTable() Table {
	return NewTable([]models.AspectDef{
		{Type: models.Conjunction, Angle: 0, Orb: 8},
		{Type: models.Semisextile, Angle: 30, Orb: 2},
		{Type: models.Semisquare, Angle: 45, Orb: 2},
		{Type: models.Sextile, Angle: 60, Orb: 6},
		{Type: models.Quintile, Angle: 72, Orb: 2},
		{Type: models.Square, Angle: 90, Orb: 8},
		{Type: models.Trine, Angle: 120, Orb: 8},
		{Type: models.Sesquiquadrate, Angle: 135, Orb: 2},
		{Type: models.Quincunx, Angle: 150, Orb: 3},
		{Type: models.Opposition, Angle: 180, Orb: 8},
	})
}

// Defs returns a copy of the table's definitions.
func (t Table) Defs() []models.AspectDef {
	out := make([]models.AspectDef, len(t.defs))
	copy(out, t.defs)
	return out
}

// match classifies a separation against the table. Separations exactly
// at the orb boundary are included. If a custom table has overlapping
// orb windows, the definition with the smallest orb delta wins.
func (t Table) match(separation float64) (models.AspectType, float64, bool) {
	var (
		bestType  models.AspectType
		bestDelta float64
		found     bool
	)
	for _, def := range t.defs {
		delta := separation - def.Angle
		if delta < 0 {
			delta = -delta
		}
		if delta <= def.Orb && (!found || delta < bestDelta) {
			bestType = def.Type
			bestDelta = delta
			found = true
		}
	}
	return bestType, bestDelta, found
}

// Compute detects aspects between every unordered pair of distinct
// points. Output ordering is fixed by canonical point ordering, not by
// discovery order, so identical inputs always produce identically
// ordered results.
func (t Table) Compute(points []Point) []models.Aspect {
	sorted := sortPoints(points)

	var out []models.Aspect
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			a, b := sorted[i], sorted[j]
			if a.Body == b.Body && a.Origin == b.Origin {
				continue
			}
			if asp, ok := t.pair(a, b); ok {
				out = append(out, asp)
			}
		}
	}
	return out
}

// ComputeCross detects aspects only across the two point sets, never
// within either one. Used for synastry.
func (t Table) ComputeCross(setA, setB []Point) []models.Aspect {
	sortedA := sortPoints(setA)
	sortedB := sortPoints(setB)

	var out []models.Aspect
	for _, a := range sortedA {
		for _, b := range sortedB {
			if asp, ok := t.pair(a, b); ok {
				out = append(out, asp)
			}
		}
	}
	return out
}

func (t Table) pair(a, b Point) (models.Aspect, bool) {
	separation := utils.Separation(a.Longitude, b.Longitude)
	aspectType, delta, ok := t.match(separation)
	if !ok {
		return models.Aspect{}, false
	}
	return models.Aspect{
		BodyA:      a.Body,
		BodyB:      b.Body,
		OriginA:    a.Origin,
		OriginB:    b.Origin,
		Type:       aspectType,
		Separation: separation,
		OrbDelta:   delta,
	}, true
}

func sortPoints(points []Point) []Point {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Origin != sorted[j].Origin {
			return sorted[i].Origin < sorted[j].Origin
		}
		if sorted[i].Body.Order() != sorted[j].Body.Order() {
			return sorted[i].Body.Order() < sorted[j].Body.Order()
		}
		return sorted[i].Body < sorted[j].Body
	})
	return sorted
}

// FromPositions converts resolved body positions into aspect points.
func FromPositions(positions []models.BodyPosition) []Point {
	points := make([]Point, 0, len(positions))
	for _, p := range positions {
		points = append(points, Point{
			Body:      p.Body,
			Origin:    p.Origin,
			Longitude: p.Longitude,
		})
	}
	return points
}
