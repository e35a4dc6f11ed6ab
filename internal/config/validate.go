package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically; required-field presence is enforced earlier
// by cleanenv's env-required tags.
func (c *Config) Validate() error {
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if c.Log.FileMaxSizeMB <= 0 {
		return fmt.Errorf("log.file_max_size_mb must be > 0 (got %d)", c.Log.FileMaxSizeMB)
	}
	if c.Log.FileMaxBackups < 0 {
		return fmt.Errorf("log.file_max_backups must be >= 0 (got %d)", c.Log.FileMaxBackups)
	}
	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535 (got %d)", c.Port)
	}
	if c.MinConns < 1 {
		return fmt.Errorf("min_conns must be >= 1 (got %d)", c.MinConns)
	}
	if c.MaxConns < c.MinConns {
		return fmt.Errorf("max_conns (%d) must be >= min_conns (%d)", c.MaxConns, c.MinConns)
	}
	return nil
}
