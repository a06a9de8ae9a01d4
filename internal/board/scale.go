package board

import (
	"log/slog"
	"math"
	"strconv"
)

// Scale bounds in pixels per weekday column.
const (
	MinScale     = 32
	MaxScale     = 480
	DefaultScale = 120
)

// PrefStore is the persisted preference contract the scale engine needs.
// Implementations must tolerate missing values.
type PrefStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// ScaleEngine owns the zoom value: integer pixels per weekday column,
// clamped to [MinScale, MaxScale], persisted per acting user.
type ScaleEngine struct {
	prefs  PrefStore
	logger *slog.Logger
	userID string
	value  int
}

// NewScaleEngine loads the stored scale for the user, falling back to the
// default when missing or invalid.
func NewScaleEngine(prefs PrefStore, userID string, logger *slog.Logger) *ScaleEngine {
	e := &ScaleEngine{prefs: prefs, logger: logger}
	e.SwitchUser(userID)
	return e
}

// Value returns the current weekday column width in pixels.
func (e *ScaleEngine) Value() int { return e.value }

// WeekendWidth returns the weekend column width: always half the weekday
// width, a fixed ratio independent of the stored value.
func (e *ScaleEngine) WeekendWidth() int { return e.value / 2 }

// Set clamps, rounds, applies, and persists a literal scale value.
func (e *ScaleEngine) Set(v float64) {
	e.apply(v)
}

// SetFunc applies an updater of the previous value, then clamps, rounds,
// and persists the result.
func (e *ScaleEngine) SetFunc(update func(prev int) float64) {
	e.apply(update(e.value))
}

// SwitchUser reloads the stored scale for a different acting user, so
// co-located users on a shared device keep independent zoom preferences.
func (e *ScaleEngine) SwitchUser(userID string) {
	e.userID = userID
	e.value = e.load()
}

func (e *ScaleEngine) apply(v float64) {
	e.value = clampScale(v)
	if err := e.prefs.Set(e.key(), strconv.Itoa(e.value)); err != nil && e.logger != nil {
		e.logger.Warn("persisting scale failed", "user_id", e.userID, "error", err)
	}
}

func (e *ScaleEngine) load() int {
	raw, ok := e.prefs.Get(e.key())
	if !ok {
		return DefaultScale
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < MinScale || v > MaxScale {
		// Legacy or corrupt values are discarded, never propagated.
		if e.logger != nil {
			e.logger.Warn("discarding invalid stored scale", "user_id", e.userID, "raw", raw)
		}
		return DefaultScale
	}
	return v
}

func (e *ScaleEngine) key() string { return "scale/" + e.userID }

func clampScale(v float64) int {
	if math.IsNaN(v) {
		return DefaultScale
	}
	r := int(math.Round(v))
	if r < MinScale {
		return MinScale
	}
	if r > MaxScale {
		return MaxScale
	}
	return r
}
