package entities

import (
	"fmt"
	"strings"
)

// StreamRole tells whether a stream drives the ejector or is entrained by it
type StreamRole int

const (
	Motive StreamRole = iota
	Suction
)

// String method for StreamRole enum
func (r StreamRole) String() string {
	switch r {
	case Motive:
		return "Motive"
	case Suction:
		return "Suction"
	default:
		return "Unknown"
	}
}

// ParseStreamRole converts a role name (case insensitive) to a StreamRole
func ParseStreamRole(s string) (StreamRole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "motive":
		return Motive, nil
	case "suction":
		return Suction, nil
	default:
		return Motive, fmt.Errorf("invalid role: %s (expected: Motive or Suction)", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (r StreamRole) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *StreamRole) UnmarshalText(text []byte) error {
	parsed, err := ParseStreamRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// StreamRecord is one declared process stream.
// Flow is in MMSCFD for Gas and BPD for Oil and Water.
type StreamRecord struct {
	Name       string
	Role       StreamRole
	Kind       FluidKind
	Flow       float64
	Pressure   float64  // psia, only used for Gas density
	APIGravity *float64 // only meaningful for Oil
}

// NewStreamRecord creates a StreamRecord. Numeric values are not range checked:
// non-positive flows are excluded later by the sizer.
func NewStreamRecord(name string, role StreamRole, kind FluidKind, flow, pressure float64, apiGravity *float64) (*StreamRecord, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("stream name cannot be empty")
	}
	if role != Motive && role != Suction {
		return nil, fmt.Errorf("invalid stream role %d", role)
	}
	if kind != Gas && kind != Oil && kind != Water {
		return nil, fmt.Errorf("invalid fluid kind %d", kind)
	}
	if apiGravity != nil && kind != Oil {
		return nil, fmt.Errorf("API gravity is only valid for Oil streams, got %s", kind)
	}

	return &StreamRecord{
		Name:       name,
		Role:       role,
		Kind:       kind,
		Flow:       flow,
		Pressure:   pressure,
		APIGravity: apiGravity,
	}, nil
}

// IsSpecified reports whether the stream takes part in aggregation
func (s StreamRecord) IsSpecified() bool {
	return s.Flow > 0
}

// FlowUnit returns the unit of Flow
func (s StreamRecord) FlowUnit() string {
	return s.Kind.FlowUnit()
}

// SizingInput is everything the sizer needs for one calculation
type SizingInput struct {
	Streams           []StreamRecord
	DischargePressure float64 // psi, carried through to the result
}
