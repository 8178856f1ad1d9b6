package commands

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vsinha/ejector/pkg/infrastructure/config"
	"github.com/vsinha/ejector/pkg/infrastructure/log"
	"github.com/vsinha/ejector/pkg/interfaces/api"
)

// ServeConfig holds configuration for the API server command
type ServeConfig struct {
	ConfigFile string
	ListenAddr string // overrides the config file when set
	Verbose    bool
	Help       bool
}

// ServeCommand runs the HTTP sizing API until the context is cancelled
type ServeCommand struct {
	config ServeConfig
}

// NewServeCommand creates a new serve command
func NewServeCommand(config ServeConfig) *ServeCommand {
	return &ServeCommand{config: config}
}

// Execute runs the serve command
func (c *ServeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.printHelp()
		return nil
	}

	cfg, err := config.Load(c.config.ConfigFile)
	if err != nil {
		return err
	}
	if c.config.ListenAddr != "" {
		cfg.Server.ListenAddr = c.config.ListenAddr
	}
	if cfg.Log.Debug && !c.config.Verbose {
		if err := log.Init(true); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	if cfg.Server.MetricsEnabled {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	server, err := api.NewServer(cfg, reg, log.Named("api"))
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	log.Infow("starting sizing API",
		"addr", server.Addr(),
		"metrics", cfg.Server.MetricsEnabled,
		"default_discharge", cfg.Server.DischargePressure)

	if c.config.Verbose {
		fmt.Printf("🌐 Ejector sizing API listening on %s\n", server.Addr())
		if cfg.Server.MetricsEnabled {
			fmt.Printf("📈 Metrics at http://%s/metrics\n", server.Addr())
		}
	}

	return server.Run(ctx)
}

func (c *ServeCommand) printHelp() {
	fmt.Println(`Ejector Sizing API

USAGE:
    ejector serve [OPTIONS]

OPTIONS:
    -config <FILE>      Path to TOML config (optional)
    -listen <ADDR>      Listen address, overrides the config (default: :8080)
    -verbose            Enable verbose output
    -help               Show this help message

ENDPOINTS:
    POST /api/v1/sizing         Size a stream set, returns JSON
    POST /api/v1/sizing/chart   Size a stream set, returns the SVG flow chart
    GET  /api/v1/assumptions    Active sizing constants
    GET  /healthz               Liveness
    GET  /metrics               Prometheus metrics (when enabled)

REQUEST BODY:
    {"discharge_pressure": 200,
     "streams": [{"name": "M1", "role": "Motive", "fluid": "Gas", "flow": 10, "pressure": 300},
                 {"name": "S1", "role": "Suction", "fluid": "Oil", "flow": 500, "pressure": 60, "api_gravity": 35}]}`)
}
