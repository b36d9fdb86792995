package config

import (
	"errors"
	"strconv"
)

// ValidateForRun reports every problem that would stop the service from
// starting, not just the first.
func ValidateForRun(cfg *Config) error {
	var errs []error

	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ErrInvalidPort)
	}

	if err := cfg.Store.Validate(); err != nil {
		errs = append(errs, err)
	}

	if cfg.Store.Backend == StoreBackendRedis {
		if err := cfg.Redis.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
