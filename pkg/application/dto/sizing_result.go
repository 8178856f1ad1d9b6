package dto

import (
	"math"

	"github.com/vsinha/ejector/pkg/domain/entities"
)

// SizingResult contains the complete output of one ejector sizing pass
type SizingResult struct {
	TotalMassFlow         float64 `json:"total_mass_flow"`         // lbm/day
	AverageDensity        float64 `json:"average_density"`         // lb/ft³, unweighted mean over included streams
	AssumedVelocity       float64 `json:"assumed_velocity"`        // ft/s
	ThroatArea            float64 `json:"throat_area"`             // ft²
	ThroatDiameter        float64 `json:"throat_diameter"`         // in
	MixingChamberDiameter float64 `json:"mixing_chamber_diameter"` // in
	DischargePressure     float64 `json:"discharge_pressure"`      // psi, pass-through

	Streams         []StreamContribution `json:"streams"`
	ExcludedStreams []string             `json:"excluded_streams"`
	ChartSeries     []ChartPoint         `json:"chart_series"`
}

// StreamContribution records what one included stream added to the total
type StreamContribution struct {
	Name     string              `json:"name"`
	Role     entities.StreamRole `json:"role"`
	Kind     entities.FluidKind  `json:"fluid"`
	Flow     float64             `json:"flow"`
	FlowUnit string              `json:"flow_unit"`
	Density  float64             `json:"density"`   // lb/ft³
	MassFlow float64             `json:"mass_flow"` // lbm/day
}

// ChartPoint pairs a stream's raw flow with the aggregate velocity and throat diameter
type ChartPoint struct {
	Flow           float64 `json:"flow"`
	Velocity       float64 `json:"velocity"`        // ft/s
	ThroatDiameter float64 `json:"throat_diameter"` // in
}

// IncludedCount returns the number of streams that took part in sizing
func (r *SizingResult) IncludedCount() int {
	return len(r.Streams)
}

// GeometryDefined reports whether the throat and mixing chamber sizes are
// finite. A non-positive average density, such as gas streams at 0 psi, gives
// an infinite or NaN throat.
func (r *SizingResult) GeometryDefined() bool {
	for _, v := range []float64{r.ThroatArea, r.ThroatDiameter, r.MixingChamberDiameter} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
