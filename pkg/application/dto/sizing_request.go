package dto

import (
	"fmt"

	"github.com/vsinha/ejector/pkg/domain/entities"
)

// SizingRequest is the external shape of one sizing case, shared by scenario
// files and the HTTP API
type SizingRequest struct {
	DischargePressure *float64     `json:"discharge_pressure,omitempty" yaml:"discharge_pressure,omitempty"`
	Streams           []StreamSpec `json:"streams" yaml:"streams"`
}

// StreamSpec is one declared stream with role and fluid as names
type StreamSpec struct {
	Name       string   `json:"name" yaml:"name"`
	Role       string   `json:"role" yaml:"role"`
	Fluid      string   `json:"fluid" yaml:"fluid"`
	Flow       float64  `json:"flow" yaml:"flow"`
	Pressure   float64  `json:"pressure" yaml:"pressure"`
	APIGravity *float64 `json:"api_gravity,omitempty" yaml:"api_gravity,omitempty"`
}

// ToSizingInput converts the request into domain streams. A missing discharge
// pressure takes defaultDischarge.
func (r *SizingRequest) ToSizingInput(defaultDischarge float64) (entities.SizingInput, error) {
	discharge := defaultDischarge
	if r.DischargePressure != nil {
		discharge = *r.DischargePressure
	}
	if discharge < 0 {
		return entities.SizingInput{}, fmt.Errorf("discharge pressure cannot be negative, got %g", discharge)
	}

	streams := make([]entities.StreamRecord, 0, len(r.Streams))
	for i, spec := range r.Streams {
		stream, err := spec.ToStreamRecord()
		if err != nil {
			return entities.SizingInput{}, fmt.Errorf("stream %d: %w", i+1, err)
		}
		streams = append(streams, *stream)
	}

	return entities.SizingInput{
		Streams:           streams,
		DischargePressure: discharge,
	}, nil
}

// ToStreamRecord parses the role and fluid names and builds a validated record
func (s StreamSpec) ToStreamRecord() (*entities.StreamRecord, error) {
	role, err := entities.ParseStreamRole(s.Role)
	if err != nil {
		return nil, err
	}
	kind, err := entities.ParseFluidKind(s.Fluid)
	if err != nil {
		return nil, err
	}
	return entities.NewStreamRecord(s.Name, role, kind, s.Flow, s.Pressure, s.APIGravity)
}

// NewSizingRequest builds the external form of a sizing input
func NewSizingRequest(input entities.SizingInput) SizingRequest {
	discharge := input.DischargePressure
	req := SizingRequest{
		DischargePressure: &discharge,
		Streams:           make([]StreamSpec, 0, len(input.Streams)),
	}
	for _, s := range input.Streams {
		req.Streams = append(req.Streams, StreamSpec{
			Name:       s.Name,
			Role:       s.Role.String(),
			Fluid:      s.Kind.String(),
			Flow:       s.Flow,
			Pressure:   s.Pressure,
			APIGravity: s.APIGravity,
		})
	}
	return req
}
