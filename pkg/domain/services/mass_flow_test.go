package services

import (
	"testing"

	"github.com/vsinha/ejector/pkg/domain/entities"
)

func TestMassFlowRate(t *testing.T) {
	a := entities.DefaultAssumptions()

	tests := []struct {
		name     string
		kind     entities.FluidKind
		flow     float64
		density  float64
		expected float64
		tol      float64
	}{
		{
			name:     "gas 10 MMSCFD",
			kind:     entities.Gas,
			flow:     10,
			density:  EstimateDensity(entities.Gas, 300, nil, a),
			expected: 32260.377,
			tol:      1e-3,
		},
		{
			name:     "water 1000 BPD",
			kind:     entities.Water,
			flow:     1000,
			density:  62.4,
			expected: 350376,
			tol:      1e-6,
		},
		{
			name:     "oil 500 BPD API 35",
			kind:     entities.Oil,
			flow:     500,
			density:  EstimateDensity(entities.Oil, 0, floatPtr(35), a),
			expected: 148883.495,
			tol:      1e-3,
		},
		{
			name:     "oil fallback density",
			kind:     entities.Oil,
			flow:     100,
			density:  53,
			expected: 100 * 5.615 * 53,
			tol:      1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MassFlowRate(tt.kind, tt.flow, tt.density, a)
			if !approxEqual(got, tt.expected, tt.tol) {
				t.Errorf("Expected %.4f lbm/day, got %.4f", tt.expected, got)
			}
		})
	}
}

func TestMassFlowRate_GasIgnoresDensity(t *testing.T) {
	a := entities.DefaultAssumptions()

	base := MassFlowRate(entities.Gas, 10, 0.9678, a)
	for _, density := range []float64{0, -1, 62.4, 1000} {
		if got := MassFlowRate(entities.Gas, 10, density, a); got != base {
			t.Errorf("density %g changed gas mass flow: %v != %v", density, got, base)
		}
	}

	want := (10 * 1e6 / (10.73 * 520)) * 18
	if !approxEqual(base, want, 1e-6) {
		t.Errorf("Expected %v, got %v", want, base)
	}
}

func TestMassFlowRate_LiquidScalesWithDensity(t *testing.T) {
	a := entities.DefaultAssumptions()

	low := MassFlowRate(entities.Water, 1000, 50, a)
	high := MassFlowRate(entities.Water, 1000, 60, a)
	if high <= low {
		t.Errorf("Expected mass flow to grow with density: %v <= %v", high, low)
	}
}

func TestStandardMolarFlow(t *testing.T) {
	a := entities.DefaultAssumptions()

	got := StandardMolarFlow(10, a)
	if !approxEqual(got, 1792.2432, 1e-4) {
		t.Errorf("Expected ~1792.2432 lbmol/day, got %.4f", got)
	}
}
