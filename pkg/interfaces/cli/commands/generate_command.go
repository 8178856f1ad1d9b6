package commands

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/vsinha/ejector/pkg/domain/entities"
	"github.com/vsinha/ejector/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/ejector/pkg/infrastructure/repositories/yaml"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Motive    int     // Number of motive streams
	Suction   int     // Number of suction streams
	Idle      float64 // Chance that a stream is left at zero flow
	OutputDir string  // Output directory for generated files
	Seed      int64   // Random seed for reproducible generation
	Help      bool    // Show help
	Verbose   bool    // Verbose output
}

// GenerateCommand writes random but physically plausible stream sets
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}

	if err := cmd.validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Printf("🔧 Generating scenario with %d motive and %d suction streams\n",
			cmd.config.Motive, cmd.config.Suction)
		fmt.Printf("📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Printf("🎲 Random seed: %d\n", cmd.config.Seed)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	input := cmd.GenerateInput()

	csvPath := filepath.Join(cmd.config.OutputDir, "streams.csv")
	if cmd.config.Verbose {
		fmt.Println("🌊 Generating streams.csv...")
	}
	if err := csv.WriteStreams(csvPath, input.Streams); err != nil {
		return fmt.Errorf("failed to generate streams: %w", err)
	}

	yamlPath := filepath.Join(cmd.config.OutputDir, "scenario.yaml")
	if cmd.config.Verbose {
		fmt.Println("📋 Generating scenario.yaml...")
	}
	if err := yaml.WriteScenario(yamlPath, input); err != nil {
		return fmt.Errorf("failed to generate scenario: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Printf("✅ Scenario generated successfully in %s\n", cmd.config.OutputDir)
	}

	return nil
}

func (cmd *GenerateCommand) validate() error {
	if cmd.config.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	for _, n := range []struct {
		role  entities.StreamRole
		count int
	}{{entities.Motive, cmd.config.Motive}, {entities.Suction, cmd.config.Suction}} {
		if n.count < 1 || n.count > entities.MaxStreamsPerRole {
			return fmt.Errorf("%s stream count must be between 1 and %d, got %d",
				n.role, entities.MaxStreamsPerRole, n.count)
		}
	}
	if cmd.config.Idle < 0 || cmd.config.Idle >= 1 {
		return fmt.Errorf("idle fraction must be in [0, 1), got %g", cmd.config.Idle)
	}
	return nil
}

// GenerateInput builds the random stream set. The first stream of each role
// always carries flow so the scenario can be sized.
func (cmd *GenerateCommand) GenerateInput() entities.SizingInput {
	input := entities.SizingInput{
		DischargePressure: cmd.between(100, 400),
	}

	for i := 0; i < cmd.config.Motive; i++ {
		input.Streams = append(input.Streams, cmd.generateMotive(i))
	}
	for i := 0; i < cmd.config.Suction; i++ {
		input.Streams = append(input.Streams, cmd.generateSuction(i))
	}

	return input
}

// Motive streams are high pressure gas, or occasionally power oil
func (cmd *GenerateCommand) generateMotive(index int) entities.StreamRecord {
	stream := entities.StreamRecord{
		Name: fmt.Sprintf("MOTIVE_%02d", index+1),
		Role: entities.Motive,
	}

	if cmd.rand.Float64() < 0.75 {
		stream.Kind = entities.Gas
		stream.Flow = cmd.between(1, 25)
		stream.Pressure = cmd.between(300, 1500)
	} else {
		stream.Kind = entities.Oil
		stream.Flow = cmd.between(500, 5000)
		stream.Pressure = cmd.between(1000, 3000)
		stream.APIGravity = cmd.generateAPIGravity()
	}

	cmd.maybeIdle(&stream, index)
	return stream
}

// Suction streams are low pressure liquids, or occasionally flash gas
func (cmd *GenerateCommand) generateSuction(index int) entities.StreamRecord {
	stream := entities.StreamRecord{
		Name: fmt.Sprintf("SUCTION_%02d", index+1),
		Role: entities.Suction,
	}

	switch roll := cmd.rand.Float64(); {
	case roll < 0.45:
		stream.Kind = entities.Water
		stream.Flow = cmd.between(200, 4000)
		stream.Pressure = cmd.between(20, 120)
	case roll < 0.85:
		stream.Kind = entities.Oil
		stream.Flow = cmd.between(100, 3000)
		stream.Pressure = cmd.between(20, 120)
		stream.APIGravity = cmd.generateAPIGravity()
	default:
		stream.Kind = entities.Gas
		stream.Flow = cmd.between(0.2, 3)
		stream.Pressure = cmd.between(15, 80)
	}

	cmd.maybeIdle(&stream, index)
	return stream
}

// generateAPIGravity leaves a third of oil streams without a measured gravity
func (cmd *GenerateCommand) generateAPIGravity() *float64 {
	if cmd.rand.Float64() < 0.33 {
		return nil
	}
	api := cmd.between(15, 45)
	return &api
}

func (cmd *GenerateCommand) maybeIdle(stream *entities.StreamRecord, index int) {
	if index > 0 && cmd.rand.Float64() < cmd.config.Idle {
		stream.Flow = 0
	}
}

// between returns a value in [lo, hi) rounded to one decimal
func (cmd *GenerateCommand) between(lo, hi float64) float64 {
	v := lo + cmd.rand.Float64()*(hi-lo)
	return math.Round(v*10) / 10
}

func (cmd *GenerateCommand) printHelp() {
	fmt.Printf(`Ejector Scenario Generator

USAGE:
    ejector generate [OPTIONS]

OPTIONS:
    -motive <N>         Number of motive streams, 1 to %d (default: 1)
    -suction <N>        Number of suction streams, 1 to %d (default: 2)
    -idle <F>           Chance that an extra stream has zero flow (default: 0)
    -output <DIR>       Output directory for generated files (required)
    -seed <N>           Random seed for reproducible generation (optional)
    -verbose            Enable verbose output
    -help               Show this help message

Writes streams.csv and scenario.yaml describing the same stream set.

EXAMPLES:
    # Generate a small scenario
    ejector generate -motive 1 -suction 2 -output ./test_scenario

    # Generate a full form with some blank streams
    ejector generate -motive 5 -suction 5 -idle 0.3 -output ./full_scenario --verbose

    # Generate reproducible scenario
    ejector generate -motive 2 -suction 3 -output ./repro_scenario -seed 12345
`, entities.MaxStreamsPerRole, entities.MaxStreamsPerRole)
}
