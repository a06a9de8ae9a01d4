package filter

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// PrefStore is the persisted preference contract for filter state.
type PrefStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

func prefKey(userID string) string { return "filters/" + userID }

// Save persists the filter config for the acting user.
func Save(prefs PrefStore, userID string, cfg Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding filter state: %w", err)
	}
	if err := prefs.Set(prefKey(userID), string(raw)); err != nil {
		return fmt.Errorf("persisting filter state: %w", err)
	}
	return nil
}

// Load restores the filter config for the acting user. Missing or corrupt
// state falls back to the empty config; it never blocks initialization.
func Load(prefs PrefStore, userID string, logger *slog.Logger) Config {
	raw, ok := prefs.Get(prefKey(userID))
	if !ok {
		return Config{}
	}
	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		if logger != nil {
			logger.Warn("discarding corrupt filter state", "user_id", userID, "error", err)
		}
		return Config{}
	}
	return cfg
}
