package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"astrochart/internal/aspects"
	"astrochart/internal/chart"
	"astrochart/internal/config"
	"astrochart/internal/ephemeris"
	"astrochart/internal/logging"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-06-01"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Source ephemeris.Source
	Engine *chart.Engine
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Open the ephemeris snapshot store and memoize repeated lookups.
	store, err := ephemeris.NewSnapshotStore(cfg.Ephemeris.DBPath, cfg.Ephemeris.Version)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to open ephemeris store, chart commands will be unavailable")
	} else {
		app.Source = ephemeris.NewMemo(store)
		logger.Debug().Str("version", cfg.Ephemeris.Version).Msg("Ephemeris store initialized")
	}

	if app.Source != nil {
		app.Engine = chart.NewEngine(app.Source, logger)
		if cfg.Chart.MinorAspects {
			app.Engine = app.Engine.WithAspectTable(aspects.ExtendedTable())
		}
	}

	rootCmd := &cobra.Command{
		Use:   "astrochart",
		Short: "Astrochart - astrological chart computation CLI",
		Long: `Astrochart computes natal, transit and synastry charts.

It resolves planetary positions from a local ephemeris snapshot,
computes houses and angles for the configured house system, and
detects aspects between bodies.

Use 'astrochart help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/astrochart)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newNatalCmd(app))
	rootCmd.AddCommand(newTransitCmd(app))
	rootCmd.AddCommand(newSynastryCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Astrochart v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Chart Defaults")
	output.Printf("  House System:    %s\n", cfg.Chart.HouseSystem)
	output.Printf("  Zodiac:          %s\n", cfg.Chart.Zodiac)
	output.Printf("  Rulership:       %s\n", cfg.Chart.Rulership)
	output.Printf("  Default Time:    %v\n", cfg.Chart.AllowDefaultTime)
	output.Printf("  Minor Aspects:   %v\n", cfg.Chart.MinorAspects)
	output.Println()

	output.Bold("Ephemeris")
	output.Printf("  Database:        %s\n", cfg.Ephemeris.DBPath)
	output.Printf("  Version:         %s\n", cfg.Ephemeris.Version)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  Console:         %v\n", cfg.Logging.Console)
	output.Printf("  File:            %v\n", cfg.Logging.File)

	return nil
}
