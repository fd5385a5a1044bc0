// Package service implements the dispatch operations on top of the store:
// assignment of personnel to ambulances, the accident/trip lifecycle, fleet
// and personnel management, and the vocabulary catalog.
package service

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/ambusos/ambusos-api/internal/domain"
)

// StoreGuard runs store operations through a circuit breaker. Only
// infrastructure failures (ErrStoreUnavailable) count against the breaker;
// domain errors like NotFound or DuplicateAssignment are successful outcomes
// as far as store health is concerned. An open circuit is reported as a
// retryable store failure.
type StoreGuard struct {
	cb *gobreaker.CircuitBreaker
}

// NewStoreGuard builds the breaker with store-appropriate thresholds.
func NewStoreGuard(logger *logrus.Logger) *StoreGuard {
	settings := gobreaker.Settings{
		Name:        "store",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, domain.ErrStoreUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Store circuit breaker state changed")
		},
	}
	return &StoreGuard{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Do executes fn under the breaker.
func (g *StoreGuard) Do(op string, fn func() error) error {
	_, err := g.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return domain.NewStoreError(op, err)
	}
	return err
}
