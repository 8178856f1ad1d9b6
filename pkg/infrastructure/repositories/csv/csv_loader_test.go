package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vsinha/ejector/pkg/domain/entities"
)

const validStreamsCSV = `name,role,fluid,flow,pressure,api_gravity
M1,Motive,Gas,10,300,
S1,Suction,Water,1000,45,
S2,suction,oil,500,60,35
S3,Suction,Oil,0,,
`

func TestLoader_ReadStreams(t *testing.T) {
	streams, err := NewLoader().ReadStreams(strings.NewReader(validStreamsCSV))
	if err != nil {
		t.Fatalf("ReadStreams failed: %v", err)
	}

	if len(streams) != 4 {
		t.Fatalf("Expected 4 streams, got %d", len(streams))
	}

	if streams[0].Kind != entities.Gas || streams[0].Flow != 10 || streams[0].Pressure != 300 {
		t.Errorf("Unexpected motive stream: %+v", streams[0])
	}
	if streams[0].APIGravity != nil {
		t.Error("Expected no API gravity for gas")
	}
	if streams[2].Role != entities.Suction || streams[2].Kind != entities.Oil {
		t.Errorf("Expected case-insensitive role and fluid, got %+v", streams[2])
	}
	if streams[2].APIGravity == nil || *streams[2].APIGravity != 35 {
		t.Errorf("Expected API gravity 35, got %v", streams[2].APIGravity)
	}
	if streams[3].Flow != 0 || streams[3].Pressure != 0 || streams[3].APIGravity != nil {
		t.Errorf("Expected unfilled stream, got %+v", streams[3])
	}
}

func TestLoader_ReadStreamsErrors(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		errContains string
	}{
		{
			name:        "header only",
			data:        "name,role,fluid,flow,pressure,api_gravity\n",
			errContains: "must have header and at least one data row",
		},
		{
			name:        "wrong header",
			data:        "name,type,flow\nM1,Gas,10\n",
			errContains: "header mismatch",
		},
		{
			name:        "bad fluid",
			data:        "name,role,fluid,flow,pressure,api_gravity\nM1,Motive,Steam,10,300,\n",
			errContains: "row 2: invalid fluid: Steam",
		},
		{
			name:        "bad role",
			data:        "name,role,fluid,flow,pressure,api_gravity\nM1,Driver,Gas,10,300,\n",
			errContains: "row 2: invalid role: Driver",
		},
		{
			name:        "bad flow",
			data:        "name,role,fluid,flow,pressure,api_gravity\nM1,Motive,Gas,ten,300,\n",
			errContains: "row 2: invalid flow: ten",
		},
		{
			name:        "api on gas",
			data:        "name,role,fluid,flow,pressure,api_gravity\nM1,Motive,Gas,10,300,35\n",
			errContains: "API gravity is only valid for Oil streams",
		},
		{
			name:        "empty name",
			data:        "name,role,fluid,flow,pressure,api_gravity\n,Motive,Gas,10,300,\n",
			errContains: "stream name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().ReadStreams(strings.NewReader(tt.data))
			if err == nil {
				t.Fatal("Expected error, got none")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Expected error containing %q, got %q", tt.errContains, err.Error())
			}
		})
	}
}

func TestWriteStreams_RoundTrip(t *testing.T) {
	api := 31.5
	streams := []entities.StreamRecord{
		{Name: "M1", Role: entities.Motive, Kind: entities.Gas, Flow: 7.25, Pressure: 850},
		{Name: "S1", Role: entities.Suction, Kind: entities.Oil, Flow: 1200, Pressure: 40, APIGravity: &api},
	}

	path := filepath.Join(t.TempDir(), "streams.csv")
	if err := WriteStreams(path, streams); err != nil {
		t.Fatalf("WriteStreams failed: %v", err)
	}

	loaded, err := NewLoader().LoadStreams(path)
	if err != nil {
		t.Fatalf("LoadStreams failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 streams, got %d", len(loaded))
	}
	if loaded[0].Flow != 7.25 || loaded[1].APIGravity == nil || *loaded[1].APIGravity != 31.5 {
		t.Errorf("Round trip lost data: %+v %+v", loaded[0], loaded[1])
	}
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadStreams(filepath.Join(os.TempDir(), "does-not-exist-ejector.csv"))
	if err == nil || !strings.Contains(err.Error(), "failed to open streams file") {
		t.Errorf("Expected open error, got %v", err)
	}
}
