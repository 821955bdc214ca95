// Package fuel holds the catalog of fuel-type parameter bundles consumed
// by the Rothermel, heat-transfer, combustion, and crown-fire components.
// Entries are immutable records keyed by a small integer ID, grounded on
// the teacher's pattern of named, struct-tagged parameter bundles
// (science.go's per-field chemistry constants) generalized to a lookup
// table instead of package-level scalars, since this core has several
// fuel types rather than one fixed chemical mechanism.
package fuel

// ID identifies a catalogued fuel type.
type ID uint8

const (
	DryGrass ID = iota
	Heathland
	DrySclerophyllForest
	WetSclerophyllForest
	Mallee
	PineePlantation
	Water
	Rock

	numFuels
)

// SizeClassFractions holds the 1h/10h/100h/1000h timelag mass fractions,
// which must sum to 1.
type SizeClassFractions struct {
	Hour1, Hour10, Hour100, Hour1000 float64
}

// BarkProperties describes the bark layer used by ember generation and
// crown-fire ladder-fuel coupling.
type BarkProperties struct {
	LadderFuelFactor float64
	Flammability     float64
	SheddingRate     float64
	Insulation       float64
	Roughness        float64
}

// SlopeCoefficients parametrizes the Rothermel slope-alignment term.
type SlopeCoefficients struct {
	UphillBase       float64
	UphillExponent   float64
	DownhillDivisor  float64
	MinimumFactor    float64
}

// Params is the immutable parameter bundle for one fuel type.
type Params struct {
	Name string

	HeatContentKJkg        float64 // kJ/kg
	PilotedIgnitionC       float64 // deg C
	AutoIgnitionC          float64 // deg C
	MaxFlameTempC          float64
	SpecificHeat           float64 // J/(kg*K)
	ThermalConductivity    float64 // W/(m*K)
	ThermalDiffusivity     float64 // m^2/s
	BulkDensity            float64 // kg/m^3
	SAV                    float64 // m^2/m^3
	FuelBedDepthM          float64 // m
	BaseMoisture           float64 // fraction
	MoistureOfExtinction   float64 // fraction
	BurnRateCoefficient    float64 // 1/s
	PackingRatio           float64
	OptimalPackingRatio    float64
	MineralDamping         float64
	ParticleDensity        float64 // kg/m^3
	EffectiveHeating       float64
	CoolingRate            float64 // 1/s, Newtonian cooling constant
	SelfHeatingFraction    float64
	ConvectiveCoefficient  float64
	WindSensitivity        float64
	CrownTempMultiplier    float64
	EmissivityUnburned     float64
	EmissivityBurning      float64
	TemperatureResponseK   float64 // K, ignition-to-full-rate response range
	Slope                  SlopeCoefficients
	CombustionEfficiency   float64
	SurfaceAreaGeometry    float64
	FlameAreaCoefficient   float64 // ~9 grass, ~5 forest
	AbsorptionBase         float64
	VolatileOilContent     float64
	VolatileOilTempC       float64
	Bark                   BarkProperties
	CrownBulkDensity       float64 // kg/m^3
	CrownBaseHeightM       float64 // m
	FoliarMoisturePct      float64 // percent
	SizeClasses            SizeClassFractions
	EmberMassKg            float64
	EmberLaunchVelFraction float64
	MaxSpottingDistanceM   float64
	EmberProduction        float64
	EmberReceptivity       float64
	CanopyConnectivity     float64

	Burnable             bool
	ThermalTransmissivity float64 // non-burnables only: used by external heat masks
}

var catalog [numFuels]Params

func init() {
	catalog[DryGrass] = Params{
		Name: "dry_grass", Burnable: true,
		HeatContentKJkg: 18000, PilotedIgnitionC: 300, AutoIgnitionC: 450, MaxFlameTempC: 900,
		SpecificHeat: 1800, ThermalConductivity: 0.05, ThermalDiffusivity: 1.0e-7,
		BulkDensity: 400, SAV: 6500, FuelBedDepthM: 0.3,
		BaseMoisture: 0.08, MoistureOfExtinction: 0.15, BurnRateCoefficient: 0.08,
		PackingRatio: 0.002, OptimalPackingRatio: 0.0026, MineralDamping: 0.4148,
		ParticleDensity: 513, EffectiveHeating: 0.6, CoolingRate: 0.02,
		SelfHeatingFraction: 0.3, ConvectiveCoefficient: 25, WindSensitivity: 1.2,
		CrownTempMultiplier: 1.0, EmissivityUnburned: 0.95, EmissivityBurning: 0.95,
		TemperatureResponseK: 150,
		Slope:                SlopeCoefficients{UphillBase: 1, UphillExponent: 1.5, DownhillDivisor: 30, MinimumFactor: 0.3},
		CombustionEfficiency: 0.85, SurfaceAreaGeometry: 1.0, FlameAreaCoefficient: 9,
		AbsorptionBase: 0.6, VolatileOilContent: 0.02, VolatileOilTempC: 200,
		Bark:             BarkProperties{},
		CrownBulkDensity: 0, CrownBaseHeightM: 0, FoliarMoisturePct: 0,
		SizeClasses:            SizeClassFractions{Hour1: 1.0},
		EmberMassKg:            0.0005, EmberLaunchVelFraction: 0.1, MaxSpottingDistanceM: 200,
		EmberProduction: 0.2, EmberReceptivity: 0.6, CanopyConnectivity: 0,
	}
	catalog[Heathland] = Params{
		Name: "heathland", Burnable: true,
		HeatContentKJkg: 20500, PilotedIgnitionC: 320, AutoIgnitionC: 470, MaxFlameTempC: 950,
		SpecificHeat: 1900, ThermalConductivity: 0.06, ThermalDiffusivity: 1.1e-7,
		BulkDensity: 450, SAV: 5000, FuelBedDepthM: 0.8,
		BaseMoisture: 0.12, MoistureOfExtinction: 0.20, BurnRateCoefficient: 0.06,
		PackingRatio: 0.003, OptimalPackingRatio: 0.0030, MineralDamping: 0.4148,
		ParticleDensity: 500, EffectiveHeating: 0.55, CoolingRate: 0.018,
		SelfHeatingFraction: 0.3, ConvectiveCoefficient: 25, WindSensitivity: 1.1,
		CrownTempMultiplier: 1.05, EmissivityUnburned: 0.95, EmissivityBurning: 0.95,
		TemperatureResponseK: 160,
		Slope:                SlopeCoefficients{UphillBase: 1, UphillExponent: 1.5, DownhillDivisor: 30, MinimumFactor: 0.3},
		CombustionEfficiency: 0.82, SurfaceAreaGeometry: 1.0, FlameAreaCoefficient: 7,
		AbsorptionBase: 0.55, VolatileOilContent: 0.06, VolatileOilTempC: 180,
		Bark:             BarkProperties{LadderFuelFactor: 0.2, Flammability: 0.4, SheddingRate: 0.01, Insulation: 0.2, Roughness: 0.3},
		CrownBulkDensity: 0.05, CrownBaseHeightM: 0.5, FoliarMoisturePct: 90,
		SizeClasses:            SizeClassFractions{Hour1: 0.7, Hour10: 0.3},
		EmberMassKg:            0.0008, EmberLaunchVelFraction: 0.12, MaxSpottingDistanceM: 300,
		EmberProduction: 0.3, EmberReceptivity: 0.55, CanopyConnectivity: 0.2,
	}
	catalog[DrySclerophyllForest] = Params{
		Name: "dry_sclerophyll_forest", Burnable: true,
		HeatContentKJkg: 20000, PilotedIgnitionC: 320, AutoIgnitionC: 480, MaxFlameTempC: 1100,
		SpecificHeat: 2000, ThermalConductivity: 0.12, ThermalDiffusivity: 1.3e-7,
		BulkDensity: 550, SAV: 4000, FuelBedDepthM: 1.5,
		BaseMoisture: 0.15, MoistureOfExtinction: 0.25, BurnRateCoefficient: 0.035,
		PackingRatio: 0.004, OptimalPackingRatio: 0.0035, MineralDamping: 0.4148,
		ParticleDensity: 512, EffectiveHeating: 0.5, CoolingRate: 0.012,
		SelfHeatingFraction: 0.35, ConvectiveCoefficient: 25, WindSensitivity: 0.9,
		CrownTempMultiplier: 1.2, EmissivityUnburned: 0.93, EmissivityBurning: 0.95,
		TemperatureResponseK: 200,
		Slope:                SlopeCoefficients{UphillBase: 1, UphillExponent: 1.5, DownhillDivisor: 30, MinimumFactor: 0.3},
		CombustionEfficiency: 0.78, SurfaceAreaGeometry: 1.0, FlameAreaCoefficient: 5,
		AbsorptionBase: 0.45, VolatileOilContent: 0.12, VolatileOilTempC: 160,
		Bark:             BarkProperties{LadderFuelFactor: 0.6, Flammability: 0.7, SheddingRate: 0.02, Insulation: 0.4, Roughness: 0.6},
		CrownBulkDensity: 0.15, CrownBaseHeightM: 8, FoliarMoisturePct: 100,
		SizeClasses:            SizeClassFractions{Hour1: 0.4, Hour10: 0.3, Hour100: 0.2, Hour1000: 0.1},
		EmberMassKg:            0.0015, EmberLaunchVelFraction: 0.15, MaxSpottingDistanceM: 800,
		EmberProduction: 0.5, EmberReceptivity: 0.5, CanopyConnectivity: 0.7,
	}
	catalog[WetSclerophyllForest] = Params{
		Name: "wet_sclerophyll_forest", Burnable: true,
		HeatContentKJkg: 19000, PilotedIgnitionC: 330, AutoIgnitionC: 500, MaxFlameTempC: 1050,
		SpecificHeat: 2100, ThermalConductivity: 0.14, ThermalDiffusivity: 1.2e-7,
		BulkDensity: 600, SAV: 3500, FuelBedDepthM: 2.0,
		BaseMoisture: 0.25, MoistureOfExtinction: 0.30, BurnRateCoefficient: 0.025,
		PackingRatio: 0.005, OptimalPackingRatio: 0.0040, MineralDamping: 0.4148,
		ParticleDensity: 512, EffectiveHeating: 0.45, CoolingRate: 0.01,
		SelfHeatingFraction: 0.35, ConvectiveCoefficient: 25, WindSensitivity: 0.7,
		CrownTempMultiplier: 1.15, EmissivityUnburned: 0.93, EmissivityBurning: 0.95,
		TemperatureResponseK: 220,
		Slope:                SlopeCoefficients{UphillBase: 1, UphillExponent: 1.5, DownhillDivisor: 30, MinimumFactor: 0.3},
		CombustionEfficiency: 0.72, SurfaceAreaGeometry: 1.0, FlameAreaCoefficient: 5,
		AbsorptionBase: 0.4, VolatileOilContent: 0.08, VolatileOilTempC: 170,
		Bark:             BarkProperties{LadderFuelFactor: 0.4, Flammability: 0.5, SheddingRate: 0.015, Insulation: 0.5, Roughness: 0.5},
		CrownBulkDensity: 0.18, CrownBaseHeightM: 12, FoliarMoisturePct: 110,
		SizeClasses:            SizeClassFractions{Hour1: 0.3, Hour10: 0.3, Hour100: 0.25, Hour1000: 0.15},
		EmberMassKg:            0.0015, EmberLaunchVelFraction: 0.1, MaxSpottingDistanceM: 500,
		EmberProduction: 0.35, EmberReceptivity: 0.4, CanopyConnectivity: 0.8,
	}
	catalog[Mallee] = Params{
		Name: "mallee", Burnable: true,
		HeatContentKJkg: 19500, PilotedIgnitionC: 310, AutoIgnitionC: 460, MaxFlameTempC: 1000,
		SpecificHeat: 1850, ThermalConductivity: 0.08, ThermalDiffusivity: 1.15e-7,
		BulkDensity: 480, SAV: 4500, FuelBedDepthM: 1.0,
		BaseMoisture: 0.10, MoistureOfExtinction: 0.18, BurnRateCoefficient: 0.05,
		PackingRatio: 0.0035, OptimalPackingRatio: 0.0032, MineralDamping: 0.4148,
		ParticleDensity: 510, EffectiveHeating: 0.58, CoolingRate: 0.015,
		SelfHeatingFraction: 0.32, ConvectiveCoefficient: 25, WindSensitivity: 1.0,
		CrownTempMultiplier: 1.1, EmissivityUnburned: 0.94, EmissivityBurning: 0.95,
		TemperatureResponseK: 170,
		Slope:                SlopeCoefficients{UphillBase: 1, UphillExponent: 1.5, DownhillDivisor: 30, MinimumFactor: 0.3},
		CombustionEfficiency: 0.8, SurfaceAreaGeometry: 1.0, FlameAreaCoefficient: 6,
		AbsorptionBase: 0.5, VolatileOilContent: 0.15, VolatileOilTempC: 150,
		Bark:             BarkProperties{LadderFuelFactor: 0.5, Flammability: 0.8, SheddingRate: 0.03, Insulation: 0.3, Roughness: 0.5},
		CrownBulkDensity: 0.12, CrownBaseHeightM: 4, FoliarMoisturePct: 95,
		SizeClasses:            SizeClassFractions{Hour1: 0.5, Hour10: 0.3, Hour100: 0.2},
		EmberMassKg:            0.0012, EmberLaunchVelFraction: 0.18, MaxSpottingDistanceM: 1000,
		EmberProduction: 0.6, EmberReceptivity: 0.55, CanopyConnectivity: 0.5,
	}
	catalog[PineePlantation] = Params{
		Name: "pine_plantation", Burnable: true,
		HeatContentKJkg: 21000, PilotedIgnitionC: 300, AutoIgnitionC: 440, MaxFlameTempC: 1200,
		SpecificHeat: 1950, ThermalConductivity: 0.1, ThermalDiffusivity: 1.25e-7,
		BulkDensity: 500, SAV: 4200, FuelBedDepthM: 0.6,
		BaseMoisture: 0.12, MoistureOfExtinction: 0.22, BurnRateCoefficient: 0.045,
		PackingRatio: 0.0038, OptimalPackingRatio: 0.0034, MineralDamping: 0.4148,
		ParticleDensity: 500, EffectiveHeating: 0.55, CoolingRate: 0.014,
		SelfHeatingFraction: 0.3, ConvectiveCoefficient: 25, WindSensitivity: 1.05,
		CrownTempMultiplier: 1.3, EmissivityUnburned: 0.93, EmissivityBurning: 0.95,
		TemperatureResponseK: 180,
		Slope:                SlopeCoefficients{UphillBase: 1, UphillExponent: 1.5, DownhillDivisor: 30, MinimumFactor: 0.3},
		CombustionEfficiency: 0.83, SurfaceAreaGeometry: 1.0, FlameAreaCoefficient: 5,
		AbsorptionBase: 0.5, VolatileOilContent: 0.18, VolatileOilTempC: 140,
		Bark:             BarkProperties{LadderFuelFactor: 0.8, Flammability: 0.9, SheddingRate: 0.04, Insulation: 0.3, Roughness: 0.4},
		CrownBulkDensity: 0.2, CrownBaseHeightM: 3, FoliarMoisturePct: 105,
		SizeClasses:            SizeClassFractions{Hour1: 0.3, Hour10: 0.4, Hour100: 0.2, Hour1000: 0.1},
		EmberMassKg:            0.002, EmberLaunchVelFraction: 0.2, MaxSpottingDistanceM: 1500,
		EmberProduction: 0.7, EmberReceptivity: 0.6, CanopyConnectivity: 0.9,
	}
	catalog[Water] = Params{Name: "water", Burnable: false, ThermalTransmissivity: 0.05}
	catalog[Rock] = Params{Name: "rock", Burnable: false, ThermalTransmissivity: 0.6}
}

// Get returns the parameter bundle for id. Unrecognized IDs return the
// DryGrass record, matching the defensive default the teacher's mechanism
// lookup uses for unregistered species.
func Get(id ID) *Params {
	if int(id) < 0 || int(id) >= int(numFuels) {
		return &catalog[DryGrass]
	}
	return &catalog[id]
}

// Count returns the number of catalogued fuel types.
func Count() int { return int(numFuels) }
