// Package config decodes the core's built-in presets (grid quality
// tiers, regional weather baselines, difficulty multipliers) from
// embedded TOML, the same decoding library (github.com/BurntSushi/toml)
// the teacher's cmd/config.go uses for its ConfigData struct. Nothing is
// read from an external path: the core does no file/asset loading, so
// the TOML text is compiled into the binary via go:embed and only its
// decoding mechanism is reused from the teacher.
package config

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/ausfire/firecore/weather"
)

// QualityTier selects the grid resolution used by a FieldSimulation.
type QualityTier int

const (
	Low QualityTier = iota
	Medium
	High
	Ultra
)

// GridSpec is the resolved (cell size, dimensions) for a quality tier.
type GridSpec struct {
	CellSizeM     float64 `toml:"cell_size_m"`
	Width, Height int
}

type qualityRow struct {
	CellSizeM float64 `toml:"cell_size_m"`
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
}

type qualityFile struct {
	Low    qualityRow `toml:"low"`
	Medium qualityRow `toml:"medium"`
	High   qualityRow `toml:"high"`
	Ultra  qualityRow `toml:"ultra"`
}

//go:embed presets_quality.toml
var qualityTOML string

// ResolveQuality returns the GridSpec for the requested quality tier.
func ResolveQuality(tier QualityTier) GridSpec {
	var qf qualityFile
	if _, err := toml.Decode(qualityTOML, &qf); err != nil {
		panic(fmt.Sprintf("config: malformed embedded quality presets: %v", err))
	}
	rowFor := func(t QualityTier) qualityRow {
		switch t {
		case Low:
			return qf.Low
		case Medium:
			return qf.Medium
		case High:
			return qf.High
		default:
			return qf.Ultra
		}
	}
	r := rowFor(tier)
	return GridSpec{CellSizeM: r.CellSizeM, Width: r.Width, Height: r.Height}
}

type weatherPresetRow struct {
	BaseTemperatureC  float64 `toml:"base_temperature_c"`
	BaseHumidityPct   float64 `toml:"base_humidity_pct"`
	PrevailingWindMS  float64 `toml:"prevailing_wind_ms"`
	PrevailingWindRad float64 `toml:"prevailing_wind_rad"`
}

type weatherFile struct {
	TemperateCoast weatherPresetRow `toml:"temperate_coast"`
	InlandPlains   weatherPresetRow `toml:"inland_plains"`
	Alpine         weatherPresetRow `toml:"alpine"`
	TropicalNorth  weatherPresetRow `toml:"tropical_north"`
}

//go:embed presets_weather.toml
var weatherTOML string

// WeatherPresetName identifies one of the built-in regional presets.
type WeatherPresetName string

const (
	TemperateCoast WeatherPresetName = "temperate_coast"
	InlandPlains   WeatherPresetName = "inland_plains"
	Alpine         WeatherPresetName = "alpine"
	TropicalNorth  WeatherPresetName = "tropical_north"
)

// ResolveWeatherPreset decodes the named regional weather preset.
func ResolveWeatherPreset(name WeatherPresetName) *weather.Preset {
	var wf weatherFile
	if _, err := toml.Decode(weatherTOML, &wf); err != nil {
		panic(fmt.Sprintf("config: malformed embedded weather presets: %v", err))
	}
	var row weatherPresetRow
	switch name {
	case TemperateCoast:
		row = wf.TemperateCoast
	case InlandPlains:
		row = wf.InlandPlains
	case Alpine:
		row = wf.Alpine
	case TropicalNorth:
		row = wf.TropicalNorth
	default:
		row = wf.TemperateCoast
	}
	return &weather.Preset{
		Name:              string(name),
		BaseTemperatureC:  row.BaseTemperatureC,
		BaseHumidityPct:   row.BaseHumidityPct,
		PrevailingWindMS:  row.PrevailingWindMS,
		PrevailingWindRad: row.PrevailingWindRad,
	}
}

type difficultyRow struct {
	MoistureMultiplier    float64 `toml:"moisture_multiplier"`
	WindMultiplier        float64 `toml:"wind_multiplier"`
	SuppressionMultiplier float64 `toml:"suppression_multiplier"`
}

type difficultyFile struct {
	Easy   difficultyRow `toml:"easy"`
	Normal difficultyRow `toml:"normal"`
	Hard   difficultyRow `toml:"hard"`
	Extreme difficultyRow `toml:"extreme"`
}

//go:embed presets_difficulty.toml
var difficultyTOML string

// DifficultyTier names a gameplay difficulty scaling tier.
type DifficultyTier int

const (
	Easy DifficultyTier = iota
	Normal
	Hard
	ExtremeDifficulty
)

// DifficultyScaling holds the multipliers applied by the difficulty
// component (spec §2 "Difficulty/scaling").
type DifficultyScaling struct {
	MoistureMultiplier    float64
	WindMultiplier        float64
	SuppressionMultiplier float64
}

// ResolveDifficulty decodes the multiplier table for a difficulty tier.
func ResolveDifficulty(tier DifficultyTier) DifficultyScaling {
	var df difficultyFile
	if _, err := toml.Decode(difficultyTOML, &df); err != nil {
		panic(fmt.Sprintf("config: malformed embedded difficulty presets: %v", err))
	}
	var row difficultyRow
	switch tier {
	case Easy:
		row = df.Easy
	case Normal:
		row = df.Normal
	case Hard:
		row = df.Hard
	default:
		row = df.Extreme
	}
	return DifficultyScaling{
		MoistureMultiplier:    row.MoistureMultiplier,
		WindMultiplier:        row.WindMultiplier,
		SuppressionMultiplier: row.SuppressionMultiplier,
	}
}
