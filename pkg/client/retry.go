package client

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for retry operations.
var (
	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_retries_total",
		Help: "Total number of retry attempts by error class",
	}, []string{"error_class"})

	retryDelaySeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_retry_delay_seconds",
		Help:    "Delay before retry attempts by error class",
		Buckets: []float64{0.5, 1, 2, 4, 6, 10},
	}, []string{"error_class"})

	retryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted by error class",
	}, []string{"error_class"})
)

// RetryConfig holds the configuration for retry logic.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// DelayStep is the base unit of the linear delay: the wait after attempt
	// n is n * DelayStep.
	DelayStep time.Duration
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		DelayStep:   2 * time.Second,
	}
}

// Delay returns the wait before the attempt following attempt n.
func (c RetryConfig) Delay(attempt int) time.Duration {
	return time.Duration(attempt) * c.DelayStep
}

// retryWithDelay executes fn up to cfg.MaxAttempts times with a linearly
// increasing delay between attempts. It respects context cancellation during
// the wait. Every failure class is retried: the upstream publishes no error
// budget that a failed attempt could burn.
func retryWithDelay(ctx context.Context, cfg RetryConfig, fn func() error) error {
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultRetryConfig()
	}

	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				log.Info().
					Int("attempt", attempt).
					Msg("Request succeeded after retry")
			}
			return nil
		}

		lastErr = err
		errClass := classify(err)

		if attempt >= cfg.MaxAttempts {
			break
		}

		delay := cfg.Delay(attempt)
		retriesTotal.WithLabelValues(string(errClass)).Inc()
		retryDelaySeconds.WithLabelValues(string(errClass)).Observe(delay.Seconds())

		log.Warn().
			Err(err).
			Str("error_class", string(errClass)).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("Retrying request after delay")

		select {
		case <-ctx.Done():
			log.Warn().
				Str("error_class", string(errClass)).
				Int("attempt", attempt).
				Msg("Context cancelled during retry delay")
			return fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
		case <-time.After(delay):
		}
	}

	errClass := classify(lastErr)
	retryExhaustedTotal.WithLabelValues(string(errClass)).Inc()
	log.Warn().
		Str("error_class", string(errClass)).
		Int("max_attempts", cfg.MaxAttempts).
		Msg("Retry attempts exhausted")

	return fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, cfg.MaxAttempts, lastErr)
}
