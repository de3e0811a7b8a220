// Package models provides domain models for chart computation.
package models

import (
	"time"
)

// Body identifies a tracked celestial body.
type Body string

const (
	Sun      Body = "Sun"
	Moon     Body = "Moon"
	Mercury  Body = "Mercury"
	Venus    Body = "Venus"
	Mars     Body = "Mars"
	Jupiter  Body = "Jupiter"
	Saturn   Body = "Saturn"
	Uranus   Body = "Uranus"
	Neptune  Body = "Neptune"
	Pluto    Body = "Pluto"
	MeanNode Body = "MeanNode"
)

// bodyOrder fixes the canonical ordering of bodies. All chart output is
// sorted by this ordering so repeated runs produce identical results.
var bodyOrder = map[Body]int{
	Sun: 0, Moon: 1, Mercury: 2, Venus: 3, Mars: 4, Jupiter: 5,
	Saturn: 6, Uranus: 7, Neptune: 8, Pluto: 9, MeanNode: 10,
}

// Order returns the canonical sort position of the body. Unknown bodies
// sort after all known ones.
func (b Body) Order() int {
	if o, ok := bodyOrder[b]; ok {
		return o
	}
	return len(bodyOrder)
}

// Sign is one of the twelve zodiac signs.
type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

// Signs lists the zodiac signs in zodiacal order, starting at 0° Aries.
var Signs = [12]Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// ChartMode selects the chart composition.
type ChartMode string

const (
	ModeNatal    ChartMode = "natal"
	ModeTransit  ChartMode = "transit"
	ModeSynastry ChartMode = "synastry"
)

// HouseSystem selects the house division algorithm.
type HouseSystem string

const (
	Placidus  HouseSystem = "placidus"
	WholeSign HouseSystem = "whole-sign"
	Campanus  HouseSystem = "campanus"
)

// ZodiacSystem selects the zodiac reference frame.
type ZodiacSystem string

const (
	Tropical    ZodiacSystem = "tropical"
	LahiriVedic ZodiacSystem = "lahiri-vedic"
)

// RulershipScheme selects the sign rulership rule set.
type RulershipScheme string

const (
	Traditional RulershipScheme = "traditional"
	Modern      RulershipScheme = "modern"
)

// ChartOrigin tags a position or aspect endpoint with its source chart
// in synastry composites. Empty for single-subject charts.
type ChartOrigin string

const (
	OriginA ChartOrigin = "a"
	OriginB ChartOrigin = "b"
)

// GeoPosition is an observer location on Earth.
type GeoPosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// BodyPosition is a resolved ecliptic position for one body.
// Longitude is always normalized to [0,360).
type BodyPosition struct {
	Body      Body        `json:"body"`
	Origin    ChartOrigin `json:"origin,omitempty"`
	Longitude float64     `json:"longitude"`
	Latitude  float64     `json:"latitude"`
	Distance  float64     `json:"distance"`
	Sign      Sign        `json:"sign"`
}

// House is one of the twelve houses, identified by index 1-12.
// Cusps wrap at 360° and are not monotonic in raw degrees.
type House struct {
	Index int     `json:"index"`
	Cusp  float64 `json:"cusp"`
}

// AngleName identifies one of the four chart angles.
type AngleName string

const (
	Ascendant  AngleName = "Ascendant"
	Midheaven  AngleName = "Midheaven"
	Descendant AngleName = "Descendant"
	ImumCoeli  AngleName = "ImumCoeli"
)

// Angle is a named cardinal point of the chart.
type Angle struct {
	Name      AngleName `json:"name"`
	Longitude float64   `json:"longitude"`
}

// AspectType names an angular relationship between two bodies.
type AspectType string

const (
	Conjunction    AspectType = "conjunction"
	Sextile        AspectType = "sextile"
	Square         AspectType = "square"
	Trine          AspectType = "trine"
	Opposition     AspectType = "opposition"
	Semisextile    AspectType = "semisextile"
	Semisquare     AspectType = "semisquare"
	Quintile       AspectType = "quintile"
	Sesquiquadrate AspectType = "sesquiquadrate"
	Quincunx       AspectType = "quincunx"
)

// AspectDef defines one aspect type: its ideal angle and orb tolerance.
type AspectDef struct {
	Type  AspectType `json:"type"`
	Angle float64    `json:"angle"`
	Orb   float64    `json:"orb"`
}

// Aspect is a detected angular relationship between two bodies.
// Separation is the shorter-arc distance; OrbDelta is |separation - ideal|.
type Aspect struct {
	BodyA      Body        `json:"body_a"`
	BodyB      Body        `json:"body_b"`
	OriginA    ChartOrigin `json:"origin_a,omitempty"`
	OriginB    ChartOrigin `json:"origin_b,omitempty"`
	Type       AspectType  `json:"type"`
	Separation float64     `json:"separation"`
	OrbDelta   float64     `json:"orb_delta"`
}

// ChartConfig holds the astrological conventions used for a chart.
type ChartConfig struct {
	HouseSystem HouseSystem     `json:"house_system"`
	Zodiac      ZodiacSystem    `json:"zodiac"`
	Rulership   RulershipScheme `json:"rulership"`

	// AllowDefaultTime permits a missing birth time to default to noon
	// instead of failing the request.
	AllowDefaultTime bool `json:"allow_default_time"`
}

// Subject describes whose chart this is and the canonical instant/place
// the chart was computed for.
type Subject struct {
	Name     string       `json:"name"`
	Instant  time.Time    `json:"instant"`
	Location *GeoPosition `json:"location,omitempty"`
}

// Chart is the aggregate result of a chart computation. It is never
// mutated after assembly; recomputing with different inputs or
// configuration yields a new Chart.
type Chart struct {
	Mode             ChartMode       `json:"mode"`
	Subject          Subject         `json:"subject"`
	SubjectB         *Subject        `json:"subject_b,omitempty"`
	Positions        []BodyPosition  `json:"positions"`
	Houses           []House         `json:"houses,omitempty"`
	Angles           []Angle         `json:"angles,omitempty"`
	Aspects          []Aspect        `json:"aspects"`
	Rulerships       map[Sign][]Body `json:"rulerships"`
	Config           ChartConfig     `json:"config"`
	EphemerisVersion string          `json:"ephemeris_version"`

	// ChartA/ChartB reference the underlying natal charts of a
	// synastry composite.
	ChartA *Chart `json:"chart_a,omitempty"`
	ChartB *Chart `json:"chart_b,omitempty"`
}
