package config

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// NewCircuitBreaker creates a circuit breaker for an outbound dependency.
// It opens after 3 consecutive failures and half-opens after timeout.
func NewCircuitBreaker(name string, timeout time.Duration, log zerolog.Logger) *gobreaker.CircuitBreaker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
}

// NewMailBreaker returns the SMTP breaker, or nil when it is disabled.
func NewMailBreaker(cfg MailConfig, log zerolog.Logger) *gobreaker.CircuitBreaker {
	if !cfg.BreakerEnabled {
		return nil
	}
	return NewCircuitBreaker("smtp", cfg.BreakerTimeout, log)
}
