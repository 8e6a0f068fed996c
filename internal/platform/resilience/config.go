package resilience

import (
	"errors"
	"fmt"
	"time"
)

// CircuitBreakerConfig tunes the breaker that guards one upstream, such as the
// hosted auth API.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

var defaultCircuitBreakerConfig = CircuitBreakerConfig{
	Enabled:          true,
	FailureThreshold: 5,
	OpenTimeout:      15 * time.Second,
	HalfOpenMaxReq:   2,
}

// Validate reports every setting that is out of range.
func (c CircuitBreakerConfig) Validate() error {
	var errs []error
	if c.FailureThreshold < 1 {
		errs = append(errs, fmt.Errorf("failure threshold must be >= 1, got %d", c.FailureThreshold))
	}
	if c.OpenTimeout <= 0 {
		errs = append(errs, fmt.Errorf("open timeout must be > 0, got %s", c.OpenTimeout))
	}
	if c.HalfOpenMaxReq < 1 {
		errs = append(errs, fmt.Errorf("half-open probes must be >= 1, got %d", c.HalfOpenMaxReq))
	}
	return errors.Join(errs...)
}

// withDefaults replaces out-of-range values so a zero config still yields a
// working breaker. Enabled is left as given.
func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaultCircuitBreakerConfig.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultCircuitBreakerConfig.OpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaultCircuitBreakerConfig.HalfOpenMaxReq
	}
	return c
}
