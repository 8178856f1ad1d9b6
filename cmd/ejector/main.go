package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vsinha/ejector/pkg/infrastructure/log"
	"github.com/vsinha/ejector/pkg/interfaces/cli/commands"
)

// command is implemented by every subcommand
type command interface {
	Execute(ctx context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, debug, err := parseCommand(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		// the flag set has already printed the problem and usage
		os.Exit(2)
	}

	if err := log.Init(debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Debugw("running command", "args", os.Args[1:])
	if err := cmd.Execute(ctx); err != nil {
		log.Errorw("command failed", "error", err)
		log.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseCommand picks the subcommand from the first argument and parses its flags
func parseCommand(args []string) (command, bool, error) {
	if len(args) > 0 {
		switch args[0] {
		case "serve":
			return parseServe(args[1:])
		case "generate":
			return parseGenerate(args[1:])
		case "interactive":
			return parseInteractive(args[1:])
		case "init-config":
			return parseInitConfig(args[1:])
		}
	}
	return parseSize(args)
}

func parseSize(args []string) (command, bool, error) {
	fs := flag.NewFlagSet("ejector", flag.ContinueOnError)
	var (
		streamsFile  = fs.String("streams", "", "Path to streams CSV file")
		scenarioFile = fs.String("scenario", "", "Path to YAML scenario file")
		discharge    = fs.Float64("discharge", 0, "Discharge pressure in psi (overrides file and config)")
		configFile   = fs.String("config", "", "Path to TOML config file (optional)")
		outputDir    = fs.String("output", "", "Output directory for results (optional)")
		format       = fs.String("format", "text", "Output format: text, json, csv, svg, html")
		verbose      = fs.Bool("verbose", false, "Enable verbose output")
		help         = fs.Bool("help", false, "Show help message")
	)
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}

	config := commands.Config{
		StreamsFile:  *streamsFile,
		ScenarioFile: *scenarioFile,
		ConfigFile:   *configFile,
		OutputDir:    *outputDir,
		Format:       *format,
		Verbose:      *verbose,
		Help:         *help,
	}
	if isSet(fs, "discharge") {
		config.DischargePressure = discharge
	}

	return commands.NewSizeCommand(config), *verbose, nil
}

func parseServe(args []string) (command, bool, error) {
	fs := flag.NewFlagSet("ejector serve", flag.ContinueOnError)
	var (
		configFile = fs.String("config", "", "Path to TOML config file (optional)")
		listen     = fs.String("listen", "", "Listen address, overrides the config")
		verbose    = fs.Bool("verbose", false, "Enable verbose output")
		help       = fs.Bool("help", false, "Show help message")
	)
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}

	return commands.NewServeCommand(commands.ServeConfig{
		ConfigFile: *configFile,
		ListenAddr: *listen,
		Verbose:    *verbose,
		Help:       *help,
	}), *verbose, nil
}

func parseGenerate(args []string) (command, bool, error) {
	fs := flag.NewFlagSet("ejector generate", flag.ContinueOnError)
	var (
		motive    = fs.Int("motive", 1, "Number of motive streams")
		suction   = fs.Int("suction", 2, "Number of suction streams")
		idle      = fs.Float64("idle", 0, "Chance that an extra stream has zero flow")
		outputDir = fs.String("output", "", "Output directory for generated files")
		seed      = fs.Int64("seed", 0, "Random seed for reproducible generation")
		verbose   = fs.Bool("verbose", false, "Enable verbose output")
		help      = fs.Bool("help", false, "Show help message")
	)
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}

	return commands.NewGenerateCommand(commands.GenerateConfig{
		Motive:    *motive,
		Suction:   *suction,
		Idle:      *idle,
		OutputDir: *outputDir,
		Seed:      *seed,
		Verbose:   *verbose,
		Help:      *help,
	}), *verbose, nil
}

func parseInteractive(args []string) (command, bool, error) {
	fs := flag.NewFlagSet("ejector interactive", flag.ContinueOnError)
	var (
		streamsFile  = fs.String("streams", "", "Start from a streams CSV file")
		scenarioFile = fs.String("scenario", "", "Start from a YAML scenario")
		configFile   = fs.String("config", "", "Path to TOML config file (optional)")
		verbose      = fs.Bool("verbose", false, "Enable verbose output")
		help         = fs.Bool("help", false, "Show help message")
	)
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}

	return commands.NewInteractiveCommand(commands.InteractiveConfig{
		StreamsFile:  *streamsFile,
		ScenarioFile: *scenarioFile,
		ConfigFile:   *configFile,
		Verbose:      *verbose,
		Help:         *help,
	}), *verbose, nil
}

func parseInitConfig(args []string) (command, bool, error) {
	fs := flag.NewFlagSet("ejector init-config", flag.ContinueOnError)
	var (
		configFile = fs.String("config", "ejector.toml", "Where to write the default config")
		verbose    = fs.Bool("verbose", false, "Enable verbose output")
	)
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}

	return commands.NewInitConfigCommand(*configFile, *verbose), *verbose, nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
