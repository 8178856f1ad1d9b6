package entities

import (
	"errors"
	"fmt"
)

// ErrInsufficientInput is returned when no stream has a positive flow
// or the streams sum to zero mass flow.
var ErrInsufficientInput = errors.New("insufficient input: no stream with positive flow")

const (
	// MixingChamberRatio is the mixing chamber to throat diameter ratio
	MixingChamberRatio = 2.0
	// InchesPerFoot converts feet to inches
	InchesPerFoot = 12.0
	// OilSpecificGravityNumerator and OilSpecificGravityOffset are the API gravity scale constants
	OilSpecificGravityNumerator = 141.5
	OilSpecificGravityOffset    = 131.5

	// MaxStreamsPerRole is the largest number of motive or suction streams accepted from a form
	MaxStreamsPerRole = 5
	// DefaultDischargePressure is used when the caller does not declare one (psi)
	DefaultDischargePressure = 200.0
)

// Assumptions holds the fixed physical constants behind the first-order sizing.
type Assumptions struct {
	GasConstant        float64 `toml:"gas_constant" json:"gas_constant"`                 // psi·ft³/(lbmol·°R)
	Temperature        float64 `toml:"temperature" json:"temperature"`                   // °R
	GasMolecularWeight float64 `toml:"gas_molecular_weight" json:"gas_molecular_weight"` // lbm/lbmol
	WaterDensity       float64 `toml:"water_density" json:"water_density"`               // lb/ft³
	OilFallbackDensity float64 `toml:"oil_fallback_density" json:"oil_fallback_density"` // lb/ft³
	BarrelCubicFeet    float64 `toml:"barrel_cubic_feet" json:"barrel_cubic_feet"`       // ft³/bbl
	CubicFeetPerMMSCF  float64 `toml:"cubic_feet_per_mmscf" json:"cubic_feet_per_mmscf"` // scf per MMSCF
	AssumedVelocity    float64 `toml:"assumed_velocity" json:"assumed_velocity"`         // ft/s
	SecondsPerDay      float64 `toml:"seconds_per_day" json:"seconds_per_day"`
}

// DefaultAssumptions returns the constants the sizing method was calibrated with
func DefaultAssumptions() Assumptions {
	return Assumptions{
		GasConstant:        10.73,
		Temperature:        520,
		GasMolecularWeight: 18,
		WaterDensity:       62.4,
		OilFallbackDensity: 53,
		BarrelCubicFeet:    5.615,
		CubicFeetPerMMSCF:  1e6,
		AssumedVelocity:    125,
		SecondsPerDay:      86400,
	}
}

// Validate rejects assumptions that would divide by zero or flip signs
func (a Assumptions) Validate() error {
	positives := []struct {
		name  string
		value float64
	}{
		{"gas constant", a.GasConstant},
		{"temperature", a.Temperature},
		{"gas molecular weight", a.GasMolecularWeight},
		{"water density", a.WaterDensity},
		{"oil fallback density", a.OilFallbackDensity},
		{"barrel cubic feet", a.BarrelCubicFeet},
		{"cubic feet per MMSCF", a.CubicFeetPerMMSCF},
		{"assumed velocity", a.AssumedVelocity},
		{"seconds per day", a.SecondsPerDay},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %g", p.name, p.value)
		}
	}
	return nil
}
