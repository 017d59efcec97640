package resilience

import "time"

// NewCircuitBreakerWithClock открывает тестам управление временем.
func NewCircuitBreakerWithClock(name string, config CircuitBreakerConfig, now func() time.Time) *CircuitBreaker {
	return newCircuitBreaker(name, config, now)
}
