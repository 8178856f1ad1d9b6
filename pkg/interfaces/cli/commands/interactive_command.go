package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/ejector/pkg/application/services"
	"github.com/vsinha/ejector/pkg/domain/entities"
	"github.com/vsinha/ejector/pkg/domain/repositories"
	domainservices "github.com/vsinha/ejector/pkg/domain/services"
	"github.com/vsinha/ejector/pkg/infrastructure/config"
	"github.com/vsinha/ejector/pkg/infrastructure/events"
	"github.com/vsinha/ejector/pkg/infrastructure/log"
	"github.com/vsinha/ejector/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/ejector/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/ejector/pkg/infrastructure/repositories/yaml"
	"github.com/vsinha/ejector/pkg/interfaces/cli/output"
)

var errQuit = errors.New("quit")

// InteractiveConfig holds configuration for the interactive sizing session
type InteractiveConfig struct {
	StreamsFile  string // optional starting streams
	ScenarioFile string // optional starting scenario
	ConfigFile   string
	Verbose      bool
	Help         bool
	In           io.Reader
	Out          io.Writer
	Repository   repositories.StreamRepository // defaults to an empty in-memory form
}

// InteractiveCommand edits a stream form line by line and re-sizes on request
// or after every change
type InteractiveCommand struct {
	config    InteractiveConfig
	repo      repositories.StreamRepository
	discharge float64
	sizer     *services.SizingService
	eventLog  *events.InMemoryEventLog
	auto      bool
	scanner   *bufio.Scanner
	logger    *zap.SugaredLogger
	ctx       context.Context
}

// NewInteractiveCommand creates a new interactive command with the given configuration
func NewInteractiveCommand(config InteractiveConfig) *InteractiveCommand {
	if config.In == nil {
		config.In = os.Stdin
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}
	repo := config.Repository
	if repo == nil {
		repo = memory.NewStreamRepository(2 * entities.MaxStreamsPerRole)
	}
	return &InteractiveCommand{
		config:   config,
		repo:     repo,
		eventLog: events.NewInMemoryEventLog(),
		scanner:  bufio.NewScanner(config.In),
		logger:   log.Named("interactive"),
	}
}

// Execute runs the interactive session until quit or end of input
func (c *InteractiveCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.printHelp()
		return nil
	}
	c.ctx = ctx

	cfg, err := config.Load(c.config.ConfigFile)
	if err != nil {
		return err
	}
	c.discharge = cfg.Server.DischargePressure

	c.sizer, err = services.NewSizingServiceWithAssumptions(cfg.Assumptions, c.logger)
	if err != nil {
		return err
	}

	if err := c.loadStartingStreams(cfg); err != nil {
		return fmt.Errorf("failed to load starting streams: %w", err)
	}

	autoSize := &events.HandlerFunc{
		Types: events.FormChangeEvents,
		Fn: func(events.Event) error {
			if !c.auto {
				return nil
			}
			// A change that leaves the form unsizable is not a failed command
			if err := c.size(); err != nil {
				fmt.Fprintf(c.config.Out, "Auto sizing skipped: %v\n", err)
			}
			return nil
		},
	}
	if err := c.eventLog.Subscribe(events.FormChangeEvents, autoSize); err != nil {
		return err
	}

	return c.runInteractiveSession(ctx)
}

func (c *InteractiveCommand) loadStartingStreams(cfg *config.Config) error {
	var streams []entities.StreamRecord

	switch {
	case c.config.StreamsFile != "":
		records, err := csv.NewLoader().LoadStreams(c.config.StreamsFile)
		if err != nil {
			return err
		}
		for _, r := range records {
			streams = append(streams, *r)
		}
	case c.config.ScenarioFile != "":
		input, err := yaml.NewScenarioLoader(cfg.Server.DischargePressure).LoadScenario(c.config.ScenarioFile)
		if err != nil {
			return err
		}
		streams = input.Streams
		c.discharge = input.DischargePressure
	}

	for _, s := range streams {
		if err := c.addStream(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *InteractiveCommand) runInteractiveSession(ctx context.Context) error {
	fmt.Fprintln(c.config.Out, "=== Ejector Sizing Session ===")
	fmt.Fprintln(c.config.Out, "Type 'help' for available commands")
	fmt.Fprintln(c.config.Out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.config.Out, "ejector> ")
		if !c.scanner.Scan() {
			break
		}

		line := strings.TrimSpace(c.scanner.Text())
		if line == "" {
			continue
		}

		err := c.processCommand(line)
		if errors.Is(err, errQuit) {
			fmt.Fprintln(c.config.Out, "Goodbye!")
			return nil
		}
		if err != nil {
			fmt.Fprintf(c.config.Out, "Error: %v\n", err)
		}
		fmt.Fprintln(c.config.Out)
	}

	return c.scanner.Err()
}

func (c *InteractiveCommand) processCommand(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	command := parts[0]
	args := parts[1:]

	switch command {
	case "help", "h":
		c.printInteractiveHelp()
	case "add":
		return c.handleAdd(args)
	case "set":
		return c.handleSet(args)
	case "remove", "rm":
		return c.handleRemove(args)
	case "discharge":
		return c.handleDischarge(args)
	case "list", "ls":
		c.handleList()
	case "size":
		return c.size()
	case "auto":
		return c.handleAuto(args)
	case "history":
		return c.handleHistory(args)
	case "status":
		c.handleStatus()
	case "quit", "q", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", command)
	}

	return nil
}

func (c *InteractiveCommand) handleAdd(args []string) error {
	if len(args) < 5 {
		return fmt.Errorf("usage: add <motive|suction> <gas|oil|water> <name> <flow> <pressure> [api-gravity]")
	}

	role, err := entities.ParseStreamRole(args[0])
	if err != nil {
		return err
	}
	kind, err := entities.ParseFluidKind(args[1])
	if err != nil {
		return err
	}
	flow, pressure, api, err := parseStreamNumbers(args[3:])
	if err != nil {
		return err
	}

	stream, err := entities.NewStreamRecord(args[2], role, kind, flow, pressure, api)
	if err != nil {
		return err
	}
	if err := c.repo.AddStream(*stream); err != nil {
		return err
	}

	fmt.Fprintf(c.config.Out, "Added %s %s stream %s: %g %s at %g psi\n",
		role, kind, stream.Name, flow, stream.FlowUnit(), pressure)
	return c.record(stream.Name, events.NewStreamAddedEvent(*stream))
}

func (c *InteractiveCommand) addStream(stream entities.StreamRecord) error {
	if err := c.repo.AddStream(stream); err != nil {
		return err
	}
	return c.record(stream.Name, events.NewStreamAddedEvent(stream))
}

func (c *InteractiveCommand) handleSet(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: set <name> <flow> [pressure] [api-gravity]")
	}

	current, err := c.repo.GetStream(args[0])
	if err != nil {
		return err
	}

	updated := *current
	updated.Flow, err = strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid flow: %s", args[1])
	}
	if len(args) > 2 {
		if updated.Pressure, err = strconv.ParseFloat(args[2], 64); err != nil {
			return fmt.Errorf("invalid pressure: %s", args[2])
		}
	}
	if len(args) > 3 {
		api, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid api gravity: %s", args[3])
		}
		updated.APIGravity = &api
	}

	checked, err := entities.NewStreamRecord(updated.Name, updated.Role, updated.Kind, updated.Flow, updated.Pressure, updated.APIGravity)
	if err != nil {
		return err
	}

	old, err := c.repo.UpdateStream(*checked)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.config.Out, "Updated %s: flow %g -> %g %s\n", checked.Name, old.Flow, checked.Flow, checked.FlowUnit())
	return c.record(checked.Name, events.NewStreamUpdatedEvent(old, *checked))
}

func (c *InteractiveCommand) handleRemove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: remove <name>")
	}

	removed, err := c.repo.RemoveStream(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(c.config.Out, "Removed %s\n", removed.Name)
	return c.record(removed.Name, events.NewStreamRemovedEvent(removed))
}

func (c *InteractiveCommand) handleDischarge(args []string) error {
	if len(args) != 1 {
		fmt.Fprintf(c.config.Out, "Discharge pressure: %g psi\n", c.discharge)
		return nil
	}

	pressure, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid pressure: %s", args[0])
	}
	if pressure < 0 {
		return fmt.Errorf("discharge pressure cannot be negative, got %g", pressure)
	}

	old := c.discharge
	c.discharge = pressure
	fmt.Fprintf(c.config.Out, "Discharge pressure: %g -> %g psi\n", old, pressure)
	return c.record(events.DischargeSubject, events.NewDischargeChangedEvent(old, pressure))
}

func (c *InteractiveCommand) handleList() {
	for _, role := range []entities.StreamRole{entities.Motive, entities.Suction} {
		streams, _ := c.repo.GetStreamsByRole(role)
		fmt.Fprintf(c.config.Out, "%s streams (%d/%d):\n", role, len(streams), entities.MaxStreamsPerRole)
		for _, s := range streams {
			api := ""
			if s.APIGravity != nil {
				api = fmt.Sprintf(" API %g", *s.APIGravity)
			}
			fmt.Fprintf(c.config.Out, "  %-15s %-6s %10g %-7s %8g psi%s\n",
				s.Name, s.Kind, s.Flow, s.FlowUnit(), s.Pressure, api)
		}
	}
	fmt.Fprintf(c.config.Out, "Discharge pressure: %g psi\n", c.discharge)
}

func (c *InteractiveCommand) handleAuto(args []string) error {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return fmt.Errorf("usage: auto <on|off>")
	}
	c.auto = args[0] == "on"
	fmt.Fprintf(c.config.Out, "Auto sizing %s\n", args[0])
	return nil
}

func (c *InteractiveCommand) handleHistory(args []string) error {
	limit := 10
	if len(args) > 0 {
		l, err := strconv.Atoi(args[0])
		if err != nil || l < 1 {
			return fmt.Errorf("invalid limit: %s", args[0])
		}
		limit = l
	}

	start := c.eventLog.Len() - limit
	recent, err := c.eventLog.ReadAll(start)
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}

	fmt.Fprintf(c.config.Out, "=== Recent Events (last %d) ===\n", limit)
	for _, e := range recent {
		fmt.Fprintf(c.config.Out, "#%d [%s] %s -> %s\n",
			e.Sequence(), e.Timestamp().Format("15:04:05"), e.Type(), e.Subject())
	}
	return nil
}

func (c *InteractiveCommand) handleStatus() {
	all, _ := c.eventLog.ReadAll(0)

	counts := make(map[string]int)
	for _, e := range all {
		counts[e.Type()]++
	}

	fmt.Fprintf(c.config.Out, "=== Session Status ===\n")
	fmt.Fprintf(c.config.Out, "Streams: %d\n", c.repo.Count())
	fmt.Fprintf(c.config.Out, "Auto sizing: %t\n", c.auto)
	fmt.Fprintf(c.config.Out, "Total events: %d\n", len(all))
	for _, t := range append(append([]string{}, events.FormChangeEvents...), events.EjectorSizedEvent, events.SizingInsufficientEvent, events.SizingUndefinedEvent) {
		if counts[t] > 0 {
			fmt.Fprintf(c.config.Out, "  %s: %d\n", t, counts[t])
		}
	}
}

// size validates the form and prints the result in text form
func (c *InteractiveCommand) size() error {
	input := c.repo.SizingInput(c.discharge)

	validation := domainservices.NewStreamValidator().ValidateStreams(input.Streams)
	if !validation.Valid() {
		return fmt.Errorf("cannot size: %s", strings.Join(validation.Errors, "; "))
	}

	outputConfig := output.Config{Format: "text", Verbose: c.config.Verbose, Out: c.config.Out}

	result, err := c.sizer.SizeEjector(c.ctx, input)
	if errors.Is(err, entities.ErrInsufficientInput) {
		output.Warn(outputConfig)
		return c.record("ejector", events.NewSizingInsufficientEvent(len(input.Streams)))
	}
	if err != nil {
		return err
	}
	if !result.GeometryDefined() {
		output.WarnUndefinedGeometry(result, outputConfig)
		return c.record("ejector", events.NewSizingUndefinedEvent(result))
	}

	if err := output.Generate(result, outputConfig); err != nil {
		return err
	}
	return c.record("ejector", events.NewEjectorSizedEvent(result))
}

func (c *InteractiveCommand) record(subject string, event events.Event) error {
	_, err := c.eventLog.Append(subject, event)
	return err
}

// parseStreamNumbers reads flow, pressure and an optional API gravity
func parseStreamNumbers(args []string) (float64, float64, *float64, error) {
	flow, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("invalid flow: %s", args[0])
	}
	pressure, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("invalid pressure: %s", args[1])
	}
	if len(args) < 3 {
		return flow, pressure, nil, nil
	}
	api, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("invalid api gravity: %s", args[2])
	}
	return flow, pressure, &api, nil
}

func (c *InteractiveCommand) printHelp() {
	fmt.Fprintln(c.config.Out, `Interactive Ejector Sizing

USAGE:
    ejector interactive [OPTIONS]

OPTIONS:
    -streams <FILE>     Start from a streams CSV file (optional)
    -scenario <FILE>    Start from a YAML scenario (optional)
    -config <FILE>      Path to TOML config with sizing assumptions (optional)
    -verbose            Enable verbose output
    -help               Show this help message

DESCRIPTION:
    Starts an interactive session where you fill in motive and suction
    streams one at a time and size the ejector whenever you like, or after
    every change with 'auto on'.`)
}

func (c *InteractiveCommand) printInteractiveHelp() {
	fmt.Fprintln(c.config.Out, `Available commands:

  add <motive|suction> <gas|oil|water> <name> <flow> <pressure> [api-gravity]
      Add a stream. Gas flow is MMSCFD, liquid flow is BPD.
      Example: add motive gas HP_GAS 10 300

  set <name> <flow> [pressure] [api-gravity]
      Change a stream's flow and optionally its pressure and API gravity
      Example: set HP_GAS 12 450

  remove <name>
      Remove a stream

  discharge [psi]
      Show or set the discharge pressure

  list
      Show the current streams

  size
      Size the ejector with the current streams

  auto <on|off>
      Re-size after every change

  history [limit]
      Show recent session events (default: 10)

  status
      Show stream and event counts

  help, h
      Show this help message

  quit, q, exit
      Leave the session`)
}
