package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/ejector/pkg/application/services"
	"github.com/vsinha/ejector/pkg/domain/entities"
	"github.com/vsinha/ejector/pkg/domain/repositories"
	domainservices "github.com/vsinha/ejector/pkg/domain/services"
	"github.com/vsinha/ejector/pkg/infrastructure/config"
	"github.com/vsinha/ejector/pkg/infrastructure/log"
	"github.com/vsinha/ejector/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/ejector/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/ejector/pkg/infrastructure/repositories/yaml"
	"github.com/vsinha/ejector/pkg/interfaces/cli/output"
)

// Config holds configuration for the sizing command
type Config struct {
	StreamsFile       string
	ScenarioFile      string
	ConfigFile        string
	DischargePressure *float64 // overrides the file or config default when set
	OutputDir         string
	Format            string
	Verbose           bool
	Help              bool
	Out               io.Writer
	Repository        repositories.StreamRepository // defaults to an in-memory store
}

// SizeCommand sizes one ejector from a stream file
type SizeCommand struct {
	config Config
	repo   repositories.StreamRepository
	logger *zap.SugaredLogger
}

// NewSizeCommand creates a new sizing command with the given configuration
func NewSizeCommand(config Config) *SizeCommand {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	repo := config.Repository
	if repo == nil {
		repo = memory.NewStreamRepository(2 * entities.MaxStreamsPerRole)
	}
	return &SizeCommand{
		config: config,
		repo:   repo,
		logger: log.Named("size"),
	}
}

// Execute runs the sizing command
func (c *SizeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	cfg, err := config.Load(c.config.ConfigFile)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		c.printHeader()
		fmt.Fprintln(c.config.Out, "📂 Loading streams...")
	}

	input, err := c.loadInput(cfg)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Fprintf(c.config.Out, "✅ Loaded %d streams, discharge pressure %g psi\n\n",
			len(input.Streams), input.DischargePressure)
		fmt.Fprintln(c.config.Out, "🔍 Validating stream set...")
	}

	validation := domainservices.NewStreamValidator().ValidateStreams(input.Streams)
	for _, warning := range validation.Warnings {
		c.logger.Warnw("stream warning", "detail", warning)
		if c.config.Verbose {
			fmt.Fprintf(c.config.Out, "  ⚠️  %s\n", warning)
		}
	}
	if !validation.Valid() {
		return fmt.Errorf("stream validation failed: %s", strings.Join(validation.Errors, "; "))
	}

	records := make([]*entities.StreamRecord, len(input.Streams))
	for i := range input.Streams {
		records[i] = &input.Streams[i]
	}
	if err := c.repo.LoadStreams(records); err != nil {
		return fmt.Errorf("failed to load streams into repository: %w", err)
	}

	sizer, err := services.NewSizingServiceWithAssumptions(cfg.Assumptions, c.logger)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Fprintf(c.config.Out, "🔄 Sizing ejector (%d motive, %d suction)...\n",
			validation.MotiveCount, validation.SuctionCount)
	}

	startTime := time.Now()
	result, err := sizer.SizeEjector(ctx, c.repo.SizingInput(input.DischargePressure))
	sizingTime := time.Since(startTime)

	outputConfig := output.Config{
		Format:     c.config.Format,
		OutputDir:  c.config.OutputDir,
		Verbose:    c.config.Verbose,
		SizingTime: sizingTime,
		InputFiles: c.inputFiles(),
		Out:        c.config.Out,
	}

	if errors.Is(err, entities.ErrInsufficientInput) {
		output.Warn(outputConfig)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error sizing ejector: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintf(c.config.Out, "✅ Sizing completed in %v\n\n", sizingTime)
	}

	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintln(c.config.Out, "🏁 Ejector sizing complete!")
	}

	return nil
}

// validateInputs validates the command configuration
func (c *SizeCommand) validateInputs() error {
	if (c.config.StreamsFile == "") == (c.config.ScenarioFile == "") {
		return fmt.Errorf("must specify exactly one of -streams or -scenario")
	}
	if c.config.DischargePressure != nil && *c.config.DischargePressure < 0 {
		return fmt.Errorf("discharge pressure cannot be negative, got %g", *c.config.DischargePressure)
	}
	return nil
}

// loadInput reads the stream file and settles the discharge pressure
func (c *SizeCommand) loadInput(cfg *config.Config) (entities.SizingInput, error) {
	var input entities.SizingInput

	if c.config.StreamsFile != "" {
		records, err := csv.NewLoader().LoadStreams(c.config.StreamsFile)
		if err != nil {
			return input, fmt.Errorf("error loading streams: %w", err)
		}
		input.Streams = make([]entities.StreamRecord, len(records))
		for i, r := range records {
			input.Streams[i] = *r
		}
		input.DischargePressure = cfg.Server.DischargePressure
	} else {
		scenario, err := yaml.NewScenarioLoader(cfg.Server.DischargePressure).LoadScenario(c.config.ScenarioFile)
		if err != nil {
			return input, fmt.Errorf("error loading scenario: %w", err)
		}
		input = scenario
	}

	if c.config.DischargePressure != nil {
		input.DischargePressure = *c.config.DischargePressure
	}
	return input, nil
}

func (c *SizeCommand) inputFiles() map[string]string {
	files := make(map[string]string)
	if c.config.StreamsFile != "" {
		files["Streams"] = c.config.StreamsFile
	}
	if c.config.ScenarioFile != "" {
		files["Scenario"] = c.config.ScenarioFile
	}
	if c.config.ConfigFile != "" {
		files["Config"] = c.config.ConfigFile
	}
	return files
}

// printHeader prints the command header information
func (c *SizeCommand) printHeader() {
	fmt.Fprintf(c.config.Out, "🚀 Ejector Sizing CLI\n")
	fmt.Fprintf(c.config.Out, "Input files:\n")
	for name, path := range c.inputFiles() {
		fmt.Fprintf(c.config.Out, "  %s: %s\n", name, path)
	}
	fmt.Fprintf(c.config.Out, "Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Fprintf(c.config.Out, "Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Fprintln(c.config.Out)
}

// showHelp displays the help message
func (c *SizeCommand) showHelp() {
	fmt.Fprintf(c.config.Out, `Ejector Sizing CLI - throat and mixing chamber sizing for multi-stream jet pumps

USAGE:
    ejector -streams <file.csv> [options]     # Size from a stream CSV file
    ejector -scenario <file.yaml> [options]   # Size from a YAML scenario
    ejector serve [options]                   # Run the HTTP API
    ejector generate [options]                # Write a random example scenario
    ejector init-config -config <file>        # Write the default TOML config

OPTIONS:
    -streams <file>     Path to streams CSV file
    -scenario <file>    Path to YAML scenario file
    -discharge <psi>    Discharge pressure (default: from scenario or config, 200)
    -config <file>      Path to TOML config with sizing assumptions (optional)
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv, svg, html (default: text)
    -verbose            Enable verbose output
    -help               Show this help message

STREAM LIMITS:
    1 to %d motive streams and 1 to %d suction streams. Streams with zero flow
    are ignored.

CSV FILE FORMAT:
    name,role,fluid,flow,pressure,api_gravity
    HP_GAS,Motive,Gas,10,300,
    PRODUCED_WATER,Suction,Water,1000,45,
    LP_OIL,Suction,Oil,500,60,35

    Gas flow is MMSCFD, Oil and Water flow is BPD, pressure is psi.
    api_gravity applies to Oil only; leave it empty to use 53 lb/ft³.

YAML SCENARIO FORMAT:
    discharge_pressure: 200
    streams:
      - {name: HP_GAS, role: Motive, fluid: Gas, flow: 10, pressure: 300}
      - {name: LP_OIL, role: Suction, fluid: Oil, flow: 500, pressure: 60, api_gravity: 35}

EXAMPLES:
    # Size a two-stream case
    ejector -streams examples/gas_water.csv -verbose

    # Override discharge pressure and write an HTML report
    ejector -scenario examples/mixed.yaml -discharge 350 -format html -output results/

    # Use custom assumptions
    ejector -streams data/streams.csv -config ejector.toml -format json
`, entities.MaxStreamsPerRole, entities.MaxStreamsPerRole)
}
