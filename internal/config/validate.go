package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	if c.Merge.BlankThreshold <= 0 {
		return fmt.Errorf("merge.blank_threshold must be > 0 (got %d)", c.Merge.BlankThreshold)
	}
	if strings.TrimSpace(c.Merge.OutputName) == "" {
		return fmt.Errorf("merge.output_name must not be empty")
	}
	if strings.ContainsAny(c.Merge.OutputName, `/\`) {
		return fmt.Errorf("merge.output_name must be a bare file name (got %q)", c.Merge.OutputName)
	}

	return nil
}
