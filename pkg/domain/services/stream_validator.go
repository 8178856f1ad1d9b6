package services

import (
	"fmt"

	"github.com/vsinha/ejector/pkg/domain/entities"
)

// StreamValidator checks a declared stream set against the input form limits.
// It runs at the input boundary; the sizer itself never rejects a stream.
type StreamValidator struct {
	maxPerRole int
}

// NewStreamValidator creates a validator allowing MaxStreamsPerRole streams per role
func NewStreamValidator() *StreamValidator {
	return &StreamValidator{maxPerRole: entities.MaxStreamsPerRole}
}

// ValidationResult contains the results of stream set validation
type ValidationResult struct {
	MotiveCount  int
	SuctionCount int
	Unspecified  []string // streams with flow <= 0, excluded from sizing
	Errors       []string
	Warnings     []string
}

// Valid reports whether no errors were found
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateStreams checks role counts, duplicate names, and flags streams that
// will be excluded or produce non-physical densities
func (v *StreamValidator) ValidateStreams(streams []entities.StreamRecord) *ValidationResult {
	result := &ValidationResult{
		Unspecified: make([]string, 0),
		Errors:      make([]string, 0),
		Warnings:    make([]string, 0),
	}

	seen := make(map[string]bool, len(streams))
	for _, s := range streams {
		switch s.Role {
		case entities.Motive:
			result.MotiveCount++
		case entities.Suction:
			result.SuctionCount++
		}

		if seen[s.Name] {
			result.Errors = append(result.Errors, fmt.Sprintf("duplicate stream name: %s", s.Name))
		}
		seen[s.Name] = true

		if !s.IsSpecified() {
			result.Unspecified = append(result.Unspecified, s.Name)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("stream %s has non-positive flow %g %s and will be ignored", s.Name, s.Flow, s.FlowUnit()))
			continue
		}
		if s.Kind == entities.Gas && s.Pressure <= 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("gas stream %s has non-positive pressure %g psi", s.Name, s.Pressure))
		}
	}

	result.Errors = append(result.Errors, v.checkRoleCount(entities.Motive, result.MotiveCount)...)
	result.Errors = append(result.Errors, v.checkRoleCount(entities.Suction, result.SuctionCount)...)

	return result
}

func (v *StreamValidator) checkRoleCount(role entities.StreamRole, count int) []string {
	if count < 1 {
		return []string{fmt.Sprintf("at least one %s stream is required", role)}
	}
	if count > v.maxPerRole {
		return []string{fmt.Sprintf("at most %d %s streams are allowed, got %d", v.maxPerRole, role, count)}
	}
	return nil
}
