package yaml

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vsinha/ejector/pkg/domain/entities"
)

const gasWaterScenario = `
discharge_pressure: 250
streams:
  - name: M1
    role: Motive
    fluid: Gas
    flow: 10
    pressure: 300
  - name: S1
    role: Suction
    fluid: Water
    flow: 1000
    pressure: 45
  - name: S2
    role: Suction
    fluid: Oil
    flow: 500
    pressure: 60
    api_gravity: 35
`

func TestParseScenario(t *testing.T) {
	input, err := NewScenarioLoader(entities.DefaultDischargePressure).ParseScenario([]byte(gasWaterScenario))
	if err != nil {
		t.Fatalf("ParseScenario failed: %v", err)
	}

	if input.DischargePressure != 250 {
		t.Errorf("Expected discharge pressure 250, got %g", input.DischargePressure)
	}
	if len(input.Streams) != 3 {
		t.Fatalf("Expected 3 streams, got %d", len(input.Streams))
	}
	if input.Streams[0].Role != entities.Motive || input.Streams[0].Kind != entities.Gas {
		t.Errorf("Unexpected first stream: %+v", input.Streams[0])
	}
	if input.Streams[2].APIGravity == nil || *input.Streams[2].APIGravity != 35 {
		t.Errorf("Expected API gravity 35, got %v", input.Streams[2].APIGravity)
	}
}

func TestParseScenario_DefaultDischarge(t *testing.T) {
	raw := `
streams:
  - {name: M1, role: Motive, fluid: Gas, flow: 5, pressure: 200}
`
	input, err := NewScenarioLoader(entities.DefaultDischargePressure).ParseScenario([]byte(raw))
	if err != nil {
		t.Fatalf("ParseScenario failed: %v", err)
	}
	if input.DischargePressure != entities.DefaultDischargePressure {
		t.Errorf("Expected default discharge %g, got %g", entities.DefaultDischargePressure, input.DischargePressure)
	}
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		errContains string
	}{
		{
			name:        "no streams",
			raw:         "discharge_pressure: 200\nstreams: []\n",
			errContains: "at least one stream",
		},
		{
			name:        "unknown key",
			raw:         "discharge: 200\nstreams:\n  - {name: M1, role: Motive, fluid: Gas, flow: 5, pressure: 200}\n",
			errContains: "failed to decode scenario",
		},
		{
			name:        "negative discharge",
			raw:         "discharge_pressure: -1\nstreams:\n  - {name: M1, role: Motive, fluid: Gas, flow: 5, pressure: 200}\n",
			errContains: "discharge pressure cannot be negative, got -1",
		},
		{
			name:        "bad fluid",
			raw:         "streams:\n  - {name: M1, role: Motive, fluid: Steam, flow: 5, pressure: 200}\n",
			errContains: "stream 1: invalid fluid: Steam",
		},
		{
			name:        "api on water",
			raw:         "streams:\n  - {name: S1, role: Suction, fluid: Water, flow: 5, pressure: 20, api_gravity: 30}\n",
			errContains: "API gravity is only valid for Oil streams, got Water",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScenarioLoader(entities.DefaultDischargePressure).ParseScenario([]byte(tt.raw))
			if err == nil {
				t.Fatal("Expected error, got none")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Expected error containing %q, got %q", tt.errContains, err.Error())
			}
		})
	}
}

func TestWriteScenario_RoundTrip(t *testing.T) {
	api := 28.0
	input := entities.SizingInput{
		Streams: []entities.StreamRecord{
			{Name: "M1", Role: entities.Motive, Kind: entities.Gas, Flow: 8, Pressure: 600},
			{Name: "S1", Role: entities.Suction, Kind: entities.Oil, Flow: 900, Pressure: 35, APIGravity: &api},
		},
		DischargePressure: 0,
	}

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := WriteScenario(path, input); err != nil {
		t.Fatalf("WriteScenario failed: %v", err)
	}

	loaded, err := NewScenarioLoader(entities.DefaultDischargePressure).LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}

	// An explicit zero discharge must survive and not fall back to the default
	if loaded.DischargePressure != 0 {
		t.Errorf("Expected discharge 0, got %g", loaded.DischargePressure)
	}
	if len(loaded.Streams) != 2 || loaded.Streams[1].APIGravity == nil || *loaded.Streams[1].APIGravity != 28 {
		t.Errorf("Round trip lost data: %+v", loaded.Streams)
	}
}
