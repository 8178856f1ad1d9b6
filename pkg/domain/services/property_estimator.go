package services

import (
	"github.com/vsinha/ejector/pkg/domain/entities"
)

// EstimateDensity returns the mass density (lb/ft³) of a fluid at the given
// pressure (psia).
//
//	Gas:   ideal gas, ρ = p·MW / (R·T)
//	Water: constant
//	Oil:   ρ = 141.5/(API+131.5) · ρw, or a fallback when API gravity is absent
//
// Unknown kinds yield 0. Pressure is not range checked.
func EstimateDensity(kind entities.FluidKind, pressure float64, apiGravity *float64, a entities.Assumptions) float64 {
	switch kind {
	case entities.Gas:
		return (pressure * a.GasMolecularWeight) / (a.GasConstant * a.Temperature)
	case entities.Water:
		return a.WaterDensity
	case entities.Oil:
		// A zero API gravity is an unfilled form field, not a real oil
		if apiGravity == nil || *apiGravity == 0 {
			return a.OilFallbackDensity
		}
		specificGravity := entities.OilSpecificGravityNumerator / (*apiGravity + entities.OilSpecificGravityOffset)
		return specificGravity * a.WaterDensity
	default:
		return 0
	}
}
