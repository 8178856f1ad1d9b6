package services

import (
	"github.com/vsinha/ejector/pkg/domain/entities"
)

// MassFlowRate converts a declared stream flow to lbm/day.
//
// Gas flow (MMSCFD) goes through molar flow at the standard R and T, so the
// density argument is not used for gas. Liquid flow (BPD) is converted to
// ft³/day and multiplied by density.
func MassFlowRate(kind entities.FluidKind, flow, density float64, a entities.Assumptions) float64 {
	if kind == entities.Gas {
		return StandardMolarFlow(flow, a) * a.GasMolecularWeight
	}

	cubicFeetPerDay := flow * a.BarrelCubicFeet
	return cubicFeetPerDay * density
}

// StandardMolarFlow returns the gas molar flow (lbmol/day) for a MMSCFD rate
func StandardMolarFlow(flow float64, a entities.Assumptions) float64 {
	return (flow * a.CubicFeetPerMMSCF) / (a.GasConstant * a.Temperature)
}
