package services

import (
	"math"
	"testing"

	"github.com/vsinha/ejector/pkg/domain/entities"
)

const epsilon = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestEstimateDensity_Gas(t *testing.T) {
	a := entities.DefaultAssumptions()

	for _, p := range []float64{14.7, 100, 300, 1500} {
		got := EstimateDensity(entities.Gas, p, nil, a)
		want := (p * 18) / (10.73 * 520)
		if !approxEqual(got, want, epsilon) {
			t.Errorf("pressure %g: expected %v, got %v", p, want, got)
		}
	}

	// 300 psi motive gas
	got := EstimateDensity(entities.Gas, 300, nil, a)
	if !approxEqual(got, 0.96781, 1e-5) {
		t.Errorf("Expected ~0.96781 lb/ft³, got %.6f", got)
	}
}

func TestEstimateDensity_GasNonPositivePressure(t *testing.T) {
	a := entities.DefaultAssumptions()

	if got := EstimateDensity(entities.Gas, 0, nil, a); got != 0 {
		t.Errorf("Expected zero density at zero pressure, got %v", got)
	}
	if got := EstimateDensity(entities.Gas, -50, nil, a); got >= 0 {
		t.Errorf("Expected negative density for negative pressure, got %v", got)
	}
}

func TestEstimateDensity_Water(t *testing.T) {
	a := entities.DefaultAssumptions()

	tests := []struct {
		name     string
		pressure float64
		api      *float64
	}{
		{"atmospheric", 14.7, nil},
		{"high pressure", 5000, nil},
		{"negative pressure", -10, nil},
		{"api ignored", 100, floatPtr(35)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateDensity(entities.Water, tt.pressure, tt.api, a); got != 62.4 {
				t.Errorf("Expected 62.4, got %v", got)
			}
		})
	}
}

func TestEstimateDensity_Oil(t *testing.T) {
	a := entities.DefaultAssumptions()

	tests := []struct {
		name     string
		api      *float64
		expected float64
	}{
		{"api 35", floatPtr(35), (141.5 / (35 + 131.5)) * 62.4},
		{"api 10", floatPtr(10), (141.5 / (10 + 131.5)) * 62.4},
		{"api 45.5", floatPtr(45.5), (141.5 / (45.5 + 131.5)) * 62.4},
		{"absent api", nil, 53},
		{"zero api is unfilled", floatPtr(0), 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateDensity(entities.Oil, 200, tt.api, a)
			if !approxEqual(got, tt.expected, epsilon) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	if got := EstimateDensity(entities.Oil, 200, floatPtr(35), a); !approxEqual(got, 53.03, 0.01) {
		t.Errorf("Expected ~53.03 lb/ft³ for API 35, got %.4f", got)
	}
}

func TestEstimateDensity_UnknownKind(t *testing.T) {
	a := entities.DefaultAssumptions()
	if got := EstimateDensity(entities.FluidKind(99), 300, floatPtr(35), a); got != 0 {
		t.Errorf("Expected 0 for unknown fluid kind, got %v", got)
	}
}

func TestEstimateDensity_OverriddenAssumptions(t *testing.T) {
	a := entities.DefaultAssumptions()
	a.Temperature = 600
	a.GasMolecularWeight = 20

	got := EstimateDensity(entities.Gas, 300, nil, a)
	want := (300 * 20.0) / (10.73 * 600)
	if !approxEqual(got, want, epsilon) {
		t.Errorf("Expected %v with overridden assumptions, got %v", want, got)
	}
}
