package geodb

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config carries the application settings persisted in config.yaml.
type Config struct {
	viper            *viper.Viper
	ConfigDir        string `mapstructure:"config_dir"`        // Current config dir
	DBFile           string `mapstructure:"db_file"`           // SQLite database file name inside the config dir
	MaxLogs          int    `mapstructure:"max_logs"`          // Default cap for the export logs block
	IncludeWaypoints bool   `mapstructure:"include_waypoints"` // Default for exporting satellite waypoints
	StrictImport     bool   `mapstructure:"strict_import"`     // Surface malformed documents instead of skipping them
}

// SetMaxLogs updates the default logs cap and persists the configuration.
func (cfg *Config) SetMaxLogs(maxLogs int) error {
	if maxLogs < 0 {
		return fmt.Errorf("invalid max logs value %d", maxLogs)
	}
	cfg.viper.Set("max_logs", maxLogs)
	if err := cfg.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	if err := cfg.viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	return nil
}

// SetIncludeWaypoints updates the satellite waypoint default and persists the
// configuration.
func (cfg *Config) SetIncludeWaypoints(include bool) error {
	cfg.viper.Set("include_waypoints", include)
	if err := cfg.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	if err := cfg.viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	return nil
}

// SetStrictImport toggles strict import mode and persists the configuration.
func (cfg *Config) SetStrictImport(strict bool) error {
	cfg.viper.Set("strict_import", strict)
	if err := cfg.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	if err := cfg.viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	return nil
}
