// Package difficulty applies the gameplay-tier scalar multipliers
// (moisture, wind, suppression effectiveness) on top of the raw physics
// fields, keeping the multiplier table itself in config (decoded from
// embedded TOML) and this package responsible only for applying it.
package difficulty

import "github.com/ausfire/firecore/config"

// Scaler applies a resolved difficulty tier's multipliers to raw
// simulation quantities.
type Scaler struct {
	scaling config.DifficultyScaling
}

// New resolves and returns a Scaler for the given tier.
func New(tier config.DifficultyTier) *Scaler {
	return &Scaler{scaling: config.ResolveDifficulty(tier)}
}

// Moisture scales a fuel-moisture fraction. Easier tiers raise effective
// moisture (fires spread less readily); harder tiers lower it.
func (s *Scaler) Moisture(m float64) float64 {
	v := m * s.scaling.MoistureMultiplier
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Wind scales a wind speed (m/s).
func (s *Scaler) Wind(ms float64) float64 {
	return ms * s.scaling.WindMultiplier
}

// SuppressionEffectiveness scales the fraction of heat/spread removed by
// a suppression action (e.g. an applied retardant or water drop).
func (s *Scaler) SuppressionEffectiveness(frac float64) float64 {
	v := frac * s.scaling.SuppressionMultiplier
	if v > 1 {
		return 1
	}
	return v
}
