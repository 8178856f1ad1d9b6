package entities

import (
	"fmt"
	"strings"
)

// FluidKind identifies the phase of a process stream
type FluidKind int

const (
	Gas FluidKind = iota
	Oil
	Water
)

// String method for FluidKind enum
func (k FluidKind) String() string {
	switch k {
	case Gas:
		return "Gas"
	case Oil:
		return "Oil"
	case Water:
		return "Water"
	default:
		return "Unknown"
	}
}

// FlowUnit returns the unit a stream of this kind declares its flow in
func (k FluidKind) FlowUnit() string {
	if k == Gas {
		return "MMSCFD"
	}
	return "BPD"
}

// ParseFluidKind converts a fluid name (case insensitive) to a FluidKind
func ParseFluidKind(s string) (FluidKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gas":
		return Gas, nil
	case "oil":
		return Oil, nil
	case "water":
		return Water, nil
	default:
		return Gas, fmt.Errorf("invalid fluid: %s (expected: Gas, Oil, or Water)", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (k FluidKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *FluidKind) UnmarshalText(text []byte) error {
	parsed, err := ParseFluidKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
