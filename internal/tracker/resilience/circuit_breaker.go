// Package resilience содержит механизмы обеспечения отказоустойчивости
// при обращении к внешним зависимостям трекера.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"exercisetracker/pkg/logger"
)

// CircuitState представляет состояние Circuit Breaker.
type CircuitState int

// Состояния Circuit Breaker.
const (
	// StateClosed - нормальное состояние, запросы проходят.
	StateClosed CircuitState = iota
	// StateOpen - состояние отказа, запросы блокируются.
	StateOpen
	// StateHalfOpen - промежуточное состояние, пробные запросы.
	StateHalfOpen
)

// Константы для логирования.
const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitTrip        = "circuit breaker tripped"
	LogCircuitReset       = "circuit breaker reset"
	LogCircuitReject      = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, когда Circuit Breaker находится в открытом состоянии.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig содержит настройки Circuit Breaker.
type CircuitBreakerConfig struct {
	// ErrorThreshold - количество ошибок подряд до перехода в открытое состояние.
	ErrorThreshold int
	// Timeout - время в открытом состоянии до пробного запроса.
	Timeout time.Duration
	// SuccessThreshold - количество успешных пробных запросов для закрытия.
	SuccessThreshold int
}

// DefaultCircuitBreakerConfig возвращает конфигурацию Circuit Breaker по умолчанию.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker реализует паттерн Circuit Breaker.
type CircuitBreaker struct {
	name string
	now  func() time.Time

	mu              sync.Mutex
	state           CircuitState
	config          CircuitBreakerConfig
	failures        int
	successes       int
	lastStateChange time.Time
}

// NewCircuitBreaker создает новый экземпляр Circuit Breaker.
func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	return newCircuitBreaker(name, config, time.Now)
}

func newCircuitBreaker(name string, config CircuitBreakerConfig, now func() time.Time) *CircuitBreaker {
	return &CircuitBreaker{
		name:            name,
		now:             now,
		state:           StateClosed,
		config:          config,
		lastStateChange: now(),
	}
}

// Execute выполняет функцию с защитой Circuit Breaker.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.AllowRequest(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	cb.RecordResult(ctx, err)
	return err
}

// AllowRequest проверяет возможность выполнения запроса.
func (cb *CircuitBreaker) AllowRequest(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastStateChange) > cb.config.Timeout {
			cb.setState(ctx, StateHalfOpen)
			return true
		}
		cb.log(ctx).Debug(ctx, LogCircuitReject)
		return false
	default:
		return false
	}
}

// RecordResult записывает результат выполнения функции.
func (cb *CircuitBreaker) RecordResult(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.onFailure(ctx)
		return
	}
	cb.onSuccess(ctx)
}

// State возвращает текущее состояние Circuit Breaker.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) onFailure(ctx context.Context) {
	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.ErrorThreshold {
			cb.log(ctx).Warn(ctx, LogCircuitTrip, zap.Int("failures", cb.failures))
			cb.setState(ctx, StateOpen)
		}
	case StateHalfOpen:
		cb.log(ctx).Warn(ctx, LogCircuitTrip, zap.Int("failures", cb.failures))
		cb.setState(ctx, StateOpen)
	}
}

func (cb *CircuitBreaker) onSuccess(ctx context.Context) {
	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.log(ctx).Info(ctx, LogCircuitReset)
			cb.setState(ctx, StateClosed)
		}
	}
}

// setState вызывается под блокировкой.
func (cb *CircuitBreaker) setState(ctx context.Context, state CircuitState) {
	cb.state = state
	cb.lastStateChange = cb.now()
	cb.failures = 0
	cb.successes = 0
	cb.log(ctx).Info(ctx, LogCircuitStateChange, zap.Int("new_state", int(state)))
}

func (cb *CircuitBreaker) log(ctx context.Context) *logger.Logger {
	return logger.Log(ctx).With(zap.String("circuit_breaker", cb.name))
}
