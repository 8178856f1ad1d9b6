package entities

import "testing"

func TestStreamRecord_Validation(t *testing.T) {
	api := 35.0

	validStream, err := NewStreamRecord("M1", Motive, Oil, 500, 300, &api)
	if err != nil {
		t.Fatalf("Expected valid stream creation to succeed: %v", err)
	}
	if validStream.FlowUnit() != "BPD" {
		t.Errorf("Expected BPD flow unit for oil, got %s", validStream.FlowUnit())
	}

	// Non-positive flows are accepted here and excluded by the sizer
	zeroFlow, err := NewStreamRecord("S1", Suction, Gas, 0, 50, nil)
	if err != nil {
		t.Fatalf("Expected zero-flow stream creation to succeed: %v", err)
	}
	if zeroFlow.IsSpecified() {
		t.Error("Expected zero-flow stream to be unspecified")
	}

	testCases := []struct {
		name        string
		streamName  string
		role        StreamRole
		kind        FluidKind
		api         *float64
		expectError string
	}{
		{"empty name", "", Motive, Gas, nil, "stream name cannot be empty"},
		{"blank name", "   ", Motive, Gas, nil, "stream name cannot be empty"},
		{"invalid role", "M1", StreamRole(7), Gas, nil, "invalid stream role 7"},
		{"invalid kind", "M1", Motive, FluidKind(9), nil, "invalid fluid kind 9"},
		{"api on water", "M1", Motive, Water, &api, "API gravity is only valid for Oil streams, got Water"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStreamRecord(tc.streamName, tc.role, tc.kind, 10, 100, tc.api)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestParseFluidKind(t *testing.T) {
	tests := []struct {
		input    string
		expected FluidKind
		wantErr  bool
	}{
		{"Gas", Gas, false},
		{"oil", Oil, false},
		{" WATER ", Water, false},
		{"steam", Gas, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := ParseFluidKind(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if kind != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, kind)
			}
		})
	}
}

func TestFluidKind_FlowUnit(t *testing.T) {
	if Gas.FlowUnit() != "MMSCFD" {
		t.Errorf("Expected MMSCFD for gas, got %s", Gas.FlowUnit())
	}
	if Water.FlowUnit() != "BPD" || Oil.FlowUnit() != "BPD" {
		t.Error("Expected BPD for liquids")
	}
	if FluidKind(42).String() != "Unknown" {
		t.Errorf("Expected Unknown, got %s", FluidKind(42).String())
	}
}

func TestStreamRole_TextRoundTrip(t *testing.T) {
	var role StreamRole
	if err := role.UnmarshalText([]byte("suction")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if role != Suction {
		t.Errorf("Expected Suction, got %s", role)
	}
	if err := role.UnmarshalText([]byte("exhaust")); err == nil {
		t.Error("Expected error for unknown role")
	}
}

func TestAssumptions_Validate(t *testing.T) {
	if err := DefaultAssumptions().Validate(); err != nil {
		t.Fatalf("Expected default assumptions to validate: %v", err)
	}

	a := DefaultAssumptions()
	a.AssumedVelocity = 0
	err := a.Validate()
	if err == nil {
		t.Fatal("Expected error for zero velocity")
	}
	if err.Error() != "assumed velocity must be positive, got 0" {
		t.Errorf("Unexpected error: %s", err.Error())
	}
}
