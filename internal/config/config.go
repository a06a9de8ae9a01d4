// Package config loads runtime settings from the environment and an
// optional .crewboard config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the resolved runtime settings.
type Config struct {
	// DBPath is the sqlite database location.
	DBPath string
	// PrefsPath is the per-user preference store directory.
	PrefsPath string
	// UserID identifies the acting user; it keys the pinned row and all
	// persisted preferences.
	UserID string
}

// Load resolves configuration: defaults under ~/.crewboard, overridable via
// CREWBOARD_* environment variables or a .crewboard.yaml in the working
// directory. A missing config file is not an error.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	base := filepath.Join(home, ".crewboard")

	v := viper.New()
	v.SetDefault("db", filepath.Join(base, "crewboard.db"))
	v.SetDefault("prefs", filepath.Join(base, "prefs"))
	v.SetDefault("user", fallbackUser())
	v.SetConfigName(".crewboard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(base)
	v.SetEnvPrefix("CREWBOARD")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return Config{
		DBPath:    v.GetString("db"),
		PrefsPath: v.GetString("prefs"),
		UserID:    v.GetString("user"),
	}, nil
}

func fallbackUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "default"
}
