package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Astrochart Configuration

[chart]
# Default house system: "placidus", "whole-sign" or "campanus"
house_system = "placidus"
# Default zodiac: "tropical" or "lahiri-vedic"
zodiac = "tropical"
# Default rulership scheme: "modern" or "traditional"
rulership = "modern"
# Default a missing birth time to 12:00 instead of failing
allow_default_time = true
# Include minor aspects (semisextile, semisquare, quintile, ...)
minor_aspects = false

[ephemeris]
# Path to the SQLite ephemeris snapshot database
db_path = ""
# Ephemeris data edition; charts record this for reproducibility
version = "snapshot-1"

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to the console
console = true
# Log to a rotating file under the config directory
file = true
`

// createTemplateConfig writes a starter config.toml so a first run has
// something to edit.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
