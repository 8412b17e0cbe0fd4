package config

import (
	"errors"
	"fmt"
)

// Validate checks values that env-default cannot guard.
func (c Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port is required"))
	}
	if c.Database.MaxRetries < 1 {
		errs = append(errs, fmt.Errorf("database max_retries must be >= 1, got %d", c.Database.MaxRetries))
	}
	if c.Kafka.OutboxBatchSize < 1 {
		errs = append(errs, fmt.Errorf("kafka outbox_batch_size must be >= 1, got %d", c.Kafka.OutboxBatchSize))
	}
	if c.RateLimit.Burst < 1 {
		errs = append(errs, fmt.Errorf("rate_limit burst must be >= 1, got %d", c.RateLimit.Burst))
	}
	if c.IsProduction() && c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}

	return errors.Join(errs...)
}
