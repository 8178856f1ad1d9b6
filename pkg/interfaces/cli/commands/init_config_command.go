package commands

import (
	"context"
	"fmt"

	"github.com/vsinha/ejector/pkg/infrastructure/config"
)

// InitConfigCommand writes the default TOML configuration
type InitConfigCommand struct {
	path    string
	verbose bool
}

// NewInitConfigCommand creates a command that writes the defaults to path
func NewInitConfigCommand(path string, verbose bool) *InitConfigCommand {
	return &InitConfigCommand{path: path, verbose: verbose}
}

// Execute writes the file, refusing to overwrite an existing one
func (c *InitConfigCommand) Execute(ctx context.Context) error {
	if c.path == "" {
		return fmt.Errorf("validation error: -config path is required")
	}
	if err := config.WriteDefault(c.path); err != nil {
		return err
	}
	if c.verbose {
		fmt.Printf("📝 Default config written to %s\n", c.path)
	}
	return nil
}
