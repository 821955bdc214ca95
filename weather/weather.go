// Package weather implements the McArthur Mark 5 Forest Fire Danger Index
// and the diurnal/seasonal/climate-pattern state machine that drives it.
// Invalid constructor inputs panic through assertion-style checks
// (mirroring mechanism.go's defensive checks) rather than returning
// errors from a custom error-type hierarchy.
package weather

import (
	"fmt"
	"math"

	"github.com/ausfire/firecore/logging"
)

// ClimatePattern is the large-scale ENSO state influencing baseline
// temperature and humidity.
type ClimatePattern int

const (
	Neutral ClimatePattern = iota
	ElNino
	LaNina
)

// Rating is the McArthur fire-danger rating band.
type Rating int

const (
	Low Rating = iota
	Moderate
	High
	VeryHigh
	Severe
	Extreme
	Catastrophic
)

func (r Rating) String() string {
	switch r {
	case Low:
		return "Low"
	case Moderate:
		return "Moderate"
	case High:
		return "High"
	case VeryHigh:
		return "VeryHigh"
	case Severe:
		return "Severe"
	case Extreme:
		return "Extreme"
	case Catastrophic:
		return "Catastrophic"
	default:
		return "Unknown"
	}
}

// RatingOf classifies an FFDI value into its rating band. Bands are
// inclusive-low, exclusive-high.
func RatingOf(ffdi float64) Rating {
	switch {
	case ffdi < 5:
		return Low
	case ffdi < 12:
		return Moderate
	case ffdi < 24:
		return High
	case ffdi < 50:
		return VeryHigh
	case ffdi < 100:
		return Severe
	case ffdi < 150:
		return Extreme
	default:
		return Catastrophic
	}
}

// State is the full weather state consumed by every downstream component.
type State struct {
	TemperatureC  float64
	HumidityPct   float64
	WindSpeedMS   float64
	WindDirRad    float64 // direction wind blows TOWARD, radians, 0 = north
	DroughtFactor float64 // 1..10
	HourOfDay     float64 // 0..24
	DayOfYear     int     // 1..365
	Pattern       ClimatePattern

	HeatwaveActive   bool
	HeatwaveDaysLeft int

	Preset *Preset

	// Target* and FrontProgress implement the smooth weather-front
	// transition model: Current eases toward Target as FrontProgress
	// advances from 0 to 1.
	TargetTemperatureC float64
	TargetHumidityPct  float64
	TargetWindSpeedMS  float64
	FrontProgress      float64
	frontDurationS     float64
}

// Preset is a named regional baseline (temperate coast, inland plains,
// alpine, tropical north), decoded from embedded TOML by the config
// package and referenced here only by value.
type Preset struct {
	Name               string
	BaseTemperatureC   float64
	BaseHumidityPct    float64
	PrevailingWindMS   float64
	PrevailingWindRad  float64
}

func assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// New constructs a weather state, applying the assertion-style
// input-validation contract: out-of-range arguments panic immediately
// rather than silently clamping, since they indicate a programming
// error in the calling layer (spec §7).
func New(temperatureC, humidityPct, windSpeedMS, windDirRad, droughtFactor float64, hourOfDay float64, dayOfYear int, pattern ClimatePattern) *State {
	assert(dayOfYear >= 1 && dayOfYear <= 365, "weather: day-of-year %d out of [1,365]", dayOfYear)
	assert(droughtFactor >= 0 && droughtFactor <= 10, "weather: drought factor %v out of [0,10]", droughtFactor)
	assert(windSpeedMS >= 0, "weather: negative wind speed %v", windSpeedMS)
	assert(hourOfDay >= 0 && hourOfDay < 24, "weather: hour-of-day %v out of [0,24)", hourOfDay)

	return &State{
		TemperatureC: temperatureC, HumidityPct: humidityPct,
		WindSpeedMS: windSpeedMS, WindDirRad: windDirRad,
		DroughtFactor: droughtFactor, HourOfDay: hourOfDay, DayOfYear: dayOfYear,
		Pattern: pattern,
		TargetTemperatureC: temperatureC, TargetHumidityPct: humidityPct, TargetWindSpeedMS: windSpeedMS,
		FrontProgress: 1,
	}
}

// CalculateFFDI computes the McArthur Mark 5 Forest Fire Danger Index.
// Every logarithm/division is guarded so the result is always finite and
// non-negative (spec invariant 3).
func (s *State) CalculateFFDI() float64 {
	d := math.Max(s.DroughtFactor, 1e-6)
	h := s.HumidityPct
	t := s.TemperatureC
	v := s.WindSpeedMS * 3.6 // km/h

	ffdi := 2.11 * math.Exp(-0.45+0.987*math.Log(d)-0.0345*h+0.0338*t+0.0234*v)
	if math.IsNaN(ffdi) || math.IsInf(ffdi, 0) {
		logging.Log().WithField("drought", d).Warn("ffdi: non-finite result clamped to 0")
		return 0
	}
	if ffdi < 0 {
		return 0
	}
	return ffdi
}

// SpreadMultiplier converts FFDI into a spread-rate multiplier,
// clamp(FFDI/20, 1, 3.5). The Rothermel field in this module does not
// apply it.
func SpreadMultiplier(ffdi float64) float64 {
	return math.Max(1, math.Min(3.5, ffdi/20))
}

// seasonalBaseline returns the seasonal-quadrant baseline
// temperature/humidity offsets and the ENSO additive adjustment.
func (s *State) seasonalBaseline() (tempBase, humBase float64) {
	quadrant := ((s.DayOfYear - 1) / 91) % 4
	// Southern-hemisphere seasons: 0=summer,1=autumn,2=winter,3=spring.
	switch quadrant {
	case 0:
		tempBase, humBase = 30, 35
	case 1:
		tempBase, humBase = 22, 50
	case 2:
		tempBase, humBase = 14, 65
	default:
		tempBase, humBase = 22, 45
	}
	switch s.Pattern {
	case ElNino:
		tempBase += 1.5
		humBase -= 8
	case LaNina:
		tempBase -= 1.0
		humBase += 10
	}
	if s.HeatwaveActive {
		tempBase += 6
		humBase -= 10
	}
	return tempBase, math.Max(5, humBase)
}

// Advance steps the weather state forward by dtSeconds: diurnal
// sinusoid, seasonal baseline, heatwave day countdown, and the
// weather-front easing toward Target values.
func (s *State) Advance(dtSeconds float64) {
	s.HourOfDay += dtSeconds / 3600
	for s.HourOfDay >= 24 {
		s.HourOfDay -= 24
		s.DayOfYear = s.DayOfYear%365 + 1
		if s.HeatwaveActive {
			s.HeatwaveDaysLeft--
			if s.HeatwaveDaysLeft <= 0 {
				s.HeatwaveActive = false
			}
		}
	}

	tempBase, humBase := s.seasonalBaseline()
	diurnal := math.Sin((s.HourOfDay - 14) / 24 * 2 * math.Pi)
	s.TemperatureC = tempBase + 8*diurnal
	s.HumidityPct = math.Max(2, math.Min(100, humBase-20*diurnal))

	s.AdvanceFront(dtSeconds)
}

// BeginTransition starts a weather-front ease from the current state to
// the supplied target over durationSeconds.
func (s *State) BeginTransition(targetTempC, targetHumidityPct, targetWindMS, durationSeconds float64) {
	s.TargetTemperatureC = targetTempC
	s.TargetHumidityPct = targetHumidityPct
	s.TargetWindSpeedMS = targetWindMS
	s.frontDurationS = math.Max(1, durationSeconds)
	s.FrontProgress = 0
}

func smoothstep(x float64) float64 {
	x = math.Max(0, math.Min(1, x))
	return x * x * (3 - 2*x)
}

// AdvanceFront advances the weather-front transition and applies the
// eased interpolation toward the target values.
func (s *State) AdvanceFront(dtSeconds float64) {
	if s.FrontProgress >= 1 || s.frontDurationS <= 0 {
		return
	}
	p := s.FrontProgress + dtSeconds/s.frontDurationS
	if p >= 1-1e-9 {
		p = 1
	}
	s.FrontProgress = p
	e := smoothstep(s.FrontProgress)
	s.TemperatureC = s.TemperatureC*(1-e) + s.TargetTemperatureC*e
	s.HumidityPct = s.HumidityPct*(1-e) + s.TargetHumidityPct*e
	s.WindSpeedMS = s.WindSpeedMS*(1-e) + s.TargetWindSpeedMS*e
}

// ApplyPreset sets the weather's regional baseline. Applying the same
// preset twice at the same (day, time) is idempotent: it only rewrites
// the preset pointer and prevailing-wind components, not Temperature/
// Humidity, which are derived each Advance call from (day, time).
func (s *State) ApplyPreset(p *Preset) {
	s.Preset = p
	s.WindSpeedMS = p.PrevailingWindMS
	s.WindDirRad = p.PrevailingWindRad
}

// TriggerHeatwave activates a heatwave for the given number of days.
func (s *State) TriggerHeatwave(days int) {
	s.HeatwaveActive = true
	s.HeatwaveDaysLeft = days
}
