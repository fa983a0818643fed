package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateProcessing(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Address == "" {
		return errors.New("server.address must be set")
	}
	if c.Server.ReadTimeout.Duration < 0 || c.Server.WriteTimeout.Duration < 0 {
		return errors.New("server timeouts must not be negative")
	}
	if c.Server.MaxRequestSize <= 0 {
		return errors.New("server.max_request_size must be positive")
	}
	if c.Server.Concurrency < 0 {
		return errors.New("server.concurrency must not be negative")
	}
	return nil
}

func (c *Config) validateProcessing() error {
	switch c.Processing.Normalizer {
	case "", "default", "guarded":
	default:
		return fmt.Errorf("processing.normalizer must be \"default\" or \"guarded\", got %q", c.Processing.Normalizer)
	}
	if c.Processing.Workers < 0 {
		return errors.New("processing.workers must not be negative")
	}
	if c.Processing.BatchSize <= 0 {
		return errors.New("processing.batch_size must be positive")
	}
	if c.Processing.MaxBatchRecords <= 0 {
		return errors.New("processing.max_batch_records must be positive")
	}
	return nil
}
