// Package chart assembles complete charts from the computation
// pipeline: normalize, resolve positions, convert zodiac, compute
// houses, look up rulerships, detect aspects.
package chart

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"astrochart/internal/aspects"
	"astrochart/internal/ephemeris"
	"astrochart/internal/errors"
	"astrochart/internal/houses"
	"astrochart/internal/logging"
	"astrochart/internal/models"
	"astrochart/internal/rulership"
	"astrochart/internal/zodiac"
)

// Engine computes charts. It is stateless per request: every call is
// independent and the engine may be shared across goroutines.
type Engine struct {
	source ephemeris.Source
	table  aspects.Table
	logger zerolog.Logger
}

// NewEngine creates an engine with the default aspect table.
func NewEngine(source ephemeris.Source, logger zerolog.Logger) *Engine {
	return &Engine{
		source: source,
		table:  aspects.DefaultTable(),
		logger: logger,
	}
}

// WithAspectTable returns a copy of the engine using the given table.
func (e *Engine) WithAspectTable(table aspects.Table) *Engine {
	return &Engine{
		source: e.source,
		table:  table,
		logger: e.logger,
	}
}

// Natal computes a full birth chart with houses and angles.
func (e *Engine) Natal(in SubjectInput, cfg models.ChartConfig) (*models.Chart, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	c, err := e.natalChart(in, cfg, "")
	if err != nil {
		return nil, err
	}
	logging.LogChart(e.logger, string(c.Mode), c.Subject.Name, len(c.Positions), len(c.Aspects))
	return c, nil
}

// Transit computes planetary positions for the fixed transit reference
// of a date. Houses and angles are never present.
func (e *Engine) Transit(in SubjectInput, cfg models.ChartConfig) (*models.Chart, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	instant, geo, err := Normalize(models.ModeTransit, in, cfg.AllowDefaultTime)
	if err != nil {
		return nil, err
	}

	positions, err := e.resolvePositions(instant, cfg, "")
	if err != nil {
		return nil, err
	}

	rulers, err := rulership.Table(cfg.Rulership)
	if err != nil {
		return nil, err
	}

	c := &models.Chart{
		Mode: models.ModeTransit,
		Subject: models.Subject{
			Name:     in.DisplayName(),
			Instant:  instant,
			Location: geo,
		},
		Positions:        positions,
		Aspects:          e.table.Compute(aspects.FromPositions(positions)),
		Rulerships:       rulers,
		Config:           cfg,
		EphemerisVersion: e.source.Version(),
	}

	logging.LogChart(e.logger, string(c.Mode), c.Subject.Name, len(c.Positions), len(c.Aspects))
	return c, nil
}

// Synastry runs the natal pipeline for both subjects and combines them
// into a composite chart whose aspect list holds only cross-chart
// pairs. Each subject's internal aspects stay on its own chart.
func (e *Engine) Synastry(a, b SubjectInput, cfg models.ChartConfig) (*models.Chart, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	chartA, err := e.natalChart(a, cfg, models.OriginA)
	if err != nil {
		return nil, errors.Wrap(err, "subject a")
	}
	chartB, err := e.natalChart(b, cfg, models.OriginB)
	if err != nil {
		return nil, errors.Wrap(err, "subject b")
	}

	positions := make([]models.BodyPosition, 0, len(chartA.Positions)+len(chartB.Positions))
	positions = append(positions, chartA.Positions...)
	positions = append(positions, chartB.Positions...)

	cross := e.table.ComputeCross(
		aspects.FromPositions(chartA.Positions),
		aspects.FromPositions(chartB.Positions),
	)

	rulers, err := rulership.Table(cfg.Rulership)
	if err != nil {
		return nil, err
	}

	c := &models.Chart{
		Mode:             models.ModeSynastry,
		Subject:          chartA.Subject,
		SubjectB:         &chartB.Subject,
		Positions:        positions,
		Aspects:          cross,
		Rulerships:       rulers,
		Config:           cfg,
		EphemerisVersion: e.source.Version(),
		ChartA:           chartA,
		ChartB:           chartB,
	}

	logging.LogChart(e.logger, string(c.Mode), c.Subject.Name, len(c.Positions), len(c.Aspects))
	return c, nil
}

// natalChart runs the natal pipeline for one subject, tagging output
// with the given origin when part of a synastry composite.
func (e *Engine) natalChart(in SubjectInput, cfg models.ChartConfig, origin models.ChartOrigin) (*models.Chart, error) {
	instant, geo, err := Normalize(models.ModeNatal, in, cfg.AllowDefaultTime)
	if err != nil {
		return nil, err
	}

	positions, err := e.resolvePositions(instant, cfg, origin)
	if err != nil {
		return nil, err
	}

	houseList, angles, err := houses.Compute(instant, *geo, cfg.HouseSystem, cfg.Zodiac)
	if err != nil {
		return nil, err
	}

	rulers, err := rulership.Table(cfg.Rulership)
	if err != nil {
		return nil, err
	}

	return &models.Chart{
		Mode: models.ModeNatal,
		Subject: models.Subject{
			Name:     in.DisplayName(),
			Instant:  instant,
			Location: geo,
		},
		Positions:        positions,
		Houses:           houseList,
		Angles:           angles,
		Aspects:          e.table.Compute(aspects.FromPositions(positions)),
		Rulerships:       rulers,
		Config:           cfg,
		EphemerisVersion: e.source.Version(),
	}, nil
}

// resolvePositions resolves the tracked body set for the configuration
// and converts longitudes into the configured zodiac frame. Output is
// in canonical body order.
func (e *Engine) resolvePositions(instant time.Time, cfg models.ChartConfig, origin models.ChartOrigin) ([]models.BodyPosition, error) {
	started := time.Now()
	raw, err := e.source.Resolve(instant)
	if err != nil {
		return nil, err
	}
	logging.LogEphemeris(e.logger, e.source.Version(), instant, time.Since(started))

	tracked := ephemeris.TrackedBodies(cfg.Rulership)
	positions := make([]models.BodyPosition, 0, len(tracked))
	for _, body := range tracked {
		pos, ok := raw[body]
		if !ok {
			return nil, errors.NewEphemerisUnavailableError(
				instant, e.source.Version(), fmt.Errorf("no position for %s", body))
		}

		lon, err := zodiac.Convert(pos.Longitude, instant, cfg.Zodiac)
		if err != nil {
			return nil, err
		}

		positions = append(positions, models.BodyPosition{
			Body:      body,
			Origin:    origin,
			Longitude: lon,
			Latitude:  pos.Latitude,
			Distance:  pos.Distance,
			Sign:      zodiac.SignAt(lon),
		})
	}

	return positions, nil
}

func validateConfig(cfg models.ChartConfig) error {
	switch cfg.HouseSystem {
	case models.Placidus, models.WholeSign, models.Campanus:
	default:
		return errors.NewInvalidConfigurationError("house_system", string(cfg.HouseSystem))
	}
	switch cfg.Zodiac {
	case models.Tropical, models.LahiriVedic:
	default:
		return errors.NewInvalidConfigurationError("zodiac", string(cfg.Zodiac))
	}
	switch cfg.Rulership {
	case models.Traditional, models.Modern:
	default:
		return errors.NewInvalidConfigurationError("rulership", string(cfg.Rulership))
	}
	return nil
}
