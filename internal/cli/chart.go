package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"astrochart/internal/chart"
	"astrochart/internal/models"
	"astrochart/pkg/utils"
)

func newNatalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "natal",
		Short: "Compute a natal chart",
		Long: `Compute a full birth chart: planetary positions, houses, angles,
aspects and sign rulerships for one subject.`,
		Example: `  astrochart natal --name "Johnny" --date 1990-06-15 --time 14:30 --lat 51.5074 --lon -0.1278
  astrochart natal --date 1990-06-15 --lat 40.7 --lon -74.0 --house-system whole-sign --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Engine == nil {
				return fmt.Errorf("ephemeris store unavailable, check ephemeris.db_path in config")
			}

			in := subjectFromFlags(cmd, "")
			cfg := chartConfigFromFlags(cmd, app)

			if err := app.warmEphemeris(cmd.Context(), models.ModeNatal, in, cfg); err != nil {
				return err
			}

			c, err := app.Engine.Natal(in, cfg)
			if err != nil {
				output.Error("Chart computation failed: %v", err)
				return err
			}

			return renderChart(output, c)
		},
	}

	addSubjectFlags(cmd, "")
	addConventionFlags(cmd)
	return cmd
}

func newTransitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transit",
		Short: "Compute transit positions for a date",
		Long: `Compute planetary positions and aspects for the noon UTC reference
of a calendar date. Transit charts never include houses or angles.`,
		Example: `  astrochart transit --date 2024-03-21
  astrochart transit --date 2024-03-21 --zodiac lahiri-vedic --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Engine == nil {
				return fmt.Errorf("ephemeris store unavailable, check ephemeris.db_path in config")
			}

			in := subjectFromFlags(cmd, "")
			cfg := chartConfigFromFlags(cmd, app)

			if err := app.warmEphemeris(cmd.Context(), models.ModeTransit, in, cfg); err != nil {
				return err
			}

			c, err := app.Engine.Transit(in, cfg)
			if err != nil {
				output.Error("Chart computation failed: %v", err)
				return err
			}

			return renderChart(output, c)
		},
	}

	addSubjectFlags(cmd, "")
	addConventionFlags(cmd)
	return cmd
}

func newSynastryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synastry",
		Short: "Compute a synastry chart for two subjects",
		Long: `Run the natal pipeline for two subjects and report the aspects
formed between their charts. Each subject's own aspects stay on the
embedded natal charts.`,
		Example: `  astrochart synastry \
    --a-name "Johnny" --a-date 1990-06-15 --a-time 14:30 --a-lat 51.5 --a-lon -0.12 \
    --b-name "June" --b-date 1992-01-03 --b-time 08:15 --b-lat 48.85 --b-lon 2.35`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Engine == nil {
				return fmt.Errorf("ephemeris store unavailable, check ephemeris.db_path in config")
			}

			a := subjectFromFlags(cmd, "a-")
			b := subjectFromFlags(cmd, "b-")
			cfg := chartConfigFromFlags(cmd, app)

			if err := app.warmEphemeris(cmd.Context(), models.ModeNatal, a, cfg); err != nil {
				return err
			}
			if err := app.warmEphemeris(cmd.Context(), models.ModeNatal, b, cfg); err != nil {
				return err
			}

			c, err := app.Engine.Synastry(a, b, cfg)
			if err != nil {
				output.Error("Chart computation failed: %v", err)
				return err
			}

			return renderChart(output, c)
		},
	}

	addSubjectFlags(cmd, "a-")
	addSubjectFlags(cmd, "b-")
	addConventionFlags(cmd)
	return cmd
}

// addSubjectFlags registers one subject's input flags. The prefix
// distinguishes the two synastry subjects ("a-", "b-").
func addSubjectFlags(cmd *cobra.Command, prefix string) {
	cmd.Flags().String(prefix+"name", "", "subject name")
	cmd.Flags().String(prefix+"date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().String(prefix+"time", "", "birth time (HH:MM or HH:MM:SS, UTC)")
	cmd.Flags().Float64(prefix+"lat", 0, "birth latitude in degrees")
	cmd.Flags().Float64(prefix+"lon", 0, "birth longitude in degrees")
}

func addConventionFlags(cmd *cobra.Command) {
	cmd.Flags().String("house-system", "", "house system: placidus, whole-sign, campanus")
	cmd.Flags().String("zodiac", "", "zodiac: tropical, lahiri-vedic")
	cmd.Flags().String("rulership", "", "rulership scheme: traditional, modern")
}

// subjectFromFlags builds a subject input from the prefixed flag group.
// Coordinates are only set when the flag was passed, so the engine can
// tell "omitted" from "equator/meridian".
func subjectFromFlags(cmd *cobra.Command, prefix string) chart.SubjectInput {
	name, _ := cmd.Flags().GetString(prefix + "name")
	date, _ := cmd.Flags().GetString(prefix + "date")
	clock, _ := cmd.Flags().GetString(prefix + "time")

	in := chart.SubjectInput{
		Name: name,
		Date: date,
		Time: clock,
	}

	if cmd.Flags().Changed(prefix + "lat") {
		lat, _ := cmd.Flags().GetFloat64(prefix + "lat")
		in.Latitude = &lat
	}
	if cmd.Flags().Changed(prefix + "lon") {
		lon, _ := cmd.Flags().GetFloat64(prefix + "lon")
		in.Longitude = &lon
	}

	return in
}

// chartConfigFromFlags starts from the configured defaults and applies
// per-invocation overrides. Selector values are validated by the engine.
func chartConfigFromFlags(cmd *cobra.Command, app *App) models.ChartConfig {
	cfg := app.Config.ChartConfig()

	if cmd.Flags().Changed("house-system") {
		v, _ := cmd.Flags().GetString("house-system")
		cfg.HouseSystem = models.HouseSystem(v)
	}
	if cmd.Flags().Changed("zodiac") {
		v, _ := cmd.Flags().GetString("zodiac")
		cfg.Zodiac = models.ZodiacSystem(v)
	}
	if cmd.Flags().Changed("rulership") {
		v, _ := cmd.Flags().GetString("rulership")
		cfg.Rulership = models.RulershipScheme(v)
	}

	return cfg
}

// warmEphemeris resolves the subject's instant ahead of the engine call,
// retrying transient store failures. The engine itself never retries;
// the memoized source makes the subsequent resolution a cache hit.
func (a *App) warmEphemeris(ctx context.Context, mode models.ChartMode, in chart.SubjectInput, cfg models.ChartConfig) error {
	instant, _, err := chart.Normalize(mode, in, cfg.AllowDefaultTime)
	if err != nil {
		// Input problems surface from the engine with full context.
		return nil
	}

	return utils.Retry(ctx, utils.DefaultRetryConfig(), func() error {
		_, rerr := a.Source.Resolve(instant)
		return rerr
	})
}

func renderChart(output *Output, c *models.Chart) error {
	if output.IsJSON() {
		return output.JSON(c)
	}

	output.Bold("%s Chart: %s", titleMode(c.Mode), c.Subject.Name)
	output.Printf("  Instant:    %s\n", c.Subject.Instant.Format("2006-01-02 15:04:05 MST"))
	if c.Subject.Location != nil && c.Mode != models.ModeTransit {
		output.Printf("  Location:   %.4f°, %.4f°\n", c.Subject.Location.Latitude, c.Subject.Location.Longitude)
	}
	if c.SubjectB != nil {
		output.Printf("  Partner:    %s (%s)\n", c.SubjectB.Name, c.SubjectB.Instant.Format("2006-01-02 15:04:05 MST"))
	}
	output.Printf("  Zodiac:     %s    Houses: %s    Rulership: %s\n",
		c.Config.Zodiac, c.Config.HouseSystem, c.Config.Rulership)
	output.Dim("  Ephemeris:  %s", c.EphemerisVersion)
	output.Println()

	renderPositions(output, c)
	renderAngles(output, c)
	renderHouses(output, c)
	renderAspects(output, c)
	renderRulerships(output, c)

	return nil
}

func titleMode(mode models.ChartMode) string {
	switch mode {
	case models.ModeNatal:
		return "Natal"
	case models.ModeTransit:
		return "Transit"
	case models.ModeSynastry:
		return "Synastry"
	default:
		return string(mode)
	}
}

func renderPositions(output *Output, c *models.Chart) {
	if len(c.Positions) == 0 {
		return
	}
	output.Bold("Positions")
	for _, p := range c.Positions {
		label := string(p.Body)
		if p.Origin != "" {
			label = fmt.Sprintf("%s (%s)", p.Body, p.Origin)
		}
		output.Printf("  %-14s %s\n", label, utils.FormatZodiacal(p.Longitude))
	}
	output.Println()
}

func renderAngles(output *Output, c *models.Chart) {
	if len(c.Angles) == 0 {
		return
	}
	output.Bold("Angles")
	for _, a := range c.Angles {
		output.Printf("  %-14s %s\n", a.Name, utils.FormatZodiacal(a.Longitude))
	}
	output.Println()
}

func renderHouses(output *Output, c *models.Chart) {
	if len(c.Houses) == 0 {
		return
	}
	output.Bold("House Cusps")
	for _, h := range c.Houses {
		output.Printf("  House %-2d       %s\n", h.Index, utils.FormatZodiacal(h.Cusp))
	}
	output.Println()
}

func renderAspects(output *Output, c *models.Chart) {
	output.Bold("Aspects")
	if len(c.Aspects) == 0 {
		output.Dim("  none within orb")
		output.Println()
		return
	}
	for _, a := range c.Aspects {
		left := string(a.BodyA)
		right := string(a.BodyB)
		if a.OriginA != "" {
			left = fmt.Sprintf("%s (%s)", a.BodyA, a.OriginA)
		}
		if a.OriginB != "" {
			right = fmt.Sprintf("%s (%s)", a.BodyB, a.OriginB)
		}
		output.Printf("  %-14s %-14s %-14s orb %s\n", left, a.Type, right, utils.FormatOrb(a.OrbDelta))
	}
	output.Println()
}

func renderRulerships(output *Output, c *models.Chart) {
	if len(c.Rulerships) == 0 {
		return
	}
	output.Bold("Rulerships (%s)", c.Config.Rulership)
	signs := make([]models.Sign, 0, len(c.Rulerships))
	for s := range c.Rulerships {
		signs = append(signs, s)
	}
	sort.Slice(signs, func(i, j int) bool {
		return signIndex(signs[i]) < signIndex(signs[j])
	})
	for _, s := range signs {
		rulers := c.Rulerships[s]
		names := make([]string, len(rulers))
		for i, r := range rulers {
			names[i] = string(r)
		}
		output.Printf("  %-12s %v\n", s, names)
	}
	output.Println()
}

func signIndex(s models.Sign) int {
	for i, v := range models.Signs {
		if v == s {
			return i
		}
	}
	return len(models.Signs)
}
