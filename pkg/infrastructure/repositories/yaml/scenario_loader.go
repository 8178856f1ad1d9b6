package yaml

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/ejector/pkg/application/dto"
	"github.com/vsinha/ejector/pkg/domain/entities"
)

// ScenarioLoader reads complete sizing cases from YAML files
type ScenarioLoader struct {
	defaultDischarge float64
}

// NewScenarioLoader creates a YAML scenario loader. Scenarios without a
// discharge pressure take defaultDischarge.
func NewScenarioLoader(defaultDischarge float64) *ScenarioLoader {
	return &ScenarioLoader{defaultDischarge: defaultDischarge}
}

// LoadScenario reads a scenario file into a sizing input
func (l *ScenarioLoader) LoadScenario(path string) (entities.SizingInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return entities.SizingInput{}, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}

	input, err := l.ParseScenario(raw)
	if err != nil {
		return entities.SizingInput{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return input, nil
}

// ParseScenario decodes YAML scenario data. Unknown keys are rejected.
func (l *ScenarioLoader) ParseScenario(raw []byte) (entities.SizingInput, error) {
	var req dto.SizingRequest
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		return entities.SizingInput{}, fmt.Errorf("failed to decode scenario: %w", err)
	}

	if len(req.Streams) == 0 {
		return entities.SizingInput{}, fmt.Errorf("scenario must declare at least one stream")
	}

	return req.ToSizingInput(l.defaultDischarge)
}

// WriteScenario writes a sizing input as a YAML scenario file
func WriteScenario(path string, input entities.SizingInput) error {
	raw, err := yaml.Marshal(dto.NewSizingRequest(input))
	if err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write scenario %s: %w", path, err)
	}
	return nil
}
