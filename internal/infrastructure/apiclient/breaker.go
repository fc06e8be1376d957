package apiclient

import (
	"errors"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/fastygo/trucar/internal/config"
)

func newBreaker(cfg config.BreakerConfig, logger *zap.Logger) *gobreaker.CircuitBreaker[[]byte] {
	settings := gobreaker.Settings{
		Name:        "trucar-api",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if cfg.MinRequests == 0 || cfg.FailureRatio <= 0 {
				return false
			}
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		// Client errors are the caller's problem, not the backend's.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return statusErr.Status < 500
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return gobreaker.NewCircuitBreaker[[]byte](settings)
}
