// Package resilience содержит механизмы отказоустойчивости исходящих вызовов.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"quicknote/pkg/logger"
)

// CircuitState - состояние Circuit Breaker.
type CircuitState int

// Состояния Circuit Breaker.
const (
	StateClosed CircuitState = iota
	StateOpen
	// StateHalfOpen пропускает один пробный вызов.
	StateHalfOpen
)

var stateNames = [...]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s CircuitState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Константы для логирования.
const (
	LogCircuitTransition = "circuit breaker state changed"
	LogCircuitRejected   = "circuit breaker rejected call"
)

// ErrCircuitOpen - базовая ошибка отказа в вызове.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// OpenError сообщает, через сколько breaker допустит пробный вызов.
type OpenError struct {
	Name       string
	RetryAfter time.Duration
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("%s: %v (retry in %s)", e.Name, ErrCircuitOpen, e.RetryAfter.Round(time.Second))
}

// Is позволяет сравнивать OpenError с ErrCircuitOpen.
func (e *OpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}

// CircuitBreakerConfig содержит настройки Circuit Breaker.
type CircuitBreakerConfig struct {
	// ErrorThreshold - число отказов подряд, после которого breaker размыкается.
	ErrorThreshold int
	// Timeout - время в разомкнутом состоянии до пробного вызова.
	Timeout time.Duration
	// SuccessThreshold - число удачных проб подряд для замыкания.
	SuccessThreshold int
	// IsFailure отделяет сбои сервиса от прочих ошибок. nil - любая ошибка.
	IsFailure func(error) bool
}

// DefaultCircuitBreakerConfig возвращает конфигурацию по умолчанию.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          30 * time.Second,
		SuccessThreshold: 1,
	}
}

// CircuitBreaker размыкается после серии отказов и пропускает по одной пробе
// после паузы.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig
	now    func() time.Time

	mu       sync.Mutex
	state    CircuitState
	streak   int
	openedAt time.Time
	probing  bool
}

// NewCircuitBreaker создает замкнутый Circuit Breaker.
func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	config.ErrorThreshold = max(config.ErrorThreshold, 1)
	config.SuccessThreshold = max(config.SuccessThreshold, 1)
	return &CircuitBreaker{name: name, config: config, now: time.Now}
}

// Execute выполняет fn, если breaker это допускает, и учитывает результат.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := cb.Allow(ctx); err != nil {
		return err
	}
	err := fn()
	cb.Done(ctx, err)
	return err
}

// Allow резервирует вызов. Вернувший nil Allow обязан завершиться вызовом Done.
func (cb *CircuitBreaker) Allow(ctx context.Context) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return nil
	case StateOpen:
		wait := cb.config.Timeout - cb.now().Sub(cb.openedAt)
		if wait <= 0 {
			cb.transition(ctx, StateHalfOpen)
			cb.probing = true
			return nil
		}
		return cb.reject(ctx, wait)
	default:
		if cb.probing {
			return cb.reject(ctx, 0)
		}
		cb.probing = true
		return nil
	}
}

// Done учитывает результат вызова, разрешенного Allow.
func (cb *CircuitBreaker) Done(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	failed := err != nil && (cb.config.IsFailure == nil || cb.config.IsFailure(err))

	switch cb.state {
	case StateClosed:
		if !failed {
			cb.streak = 0
			return
		}
		cb.streak++
		if cb.streak >= cb.config.ErrorThreshold {
			cb.transition(ctx, StateOpen)
		}
	case StateHalfOpen:
		cb.probing = false
		if failed {
			cb.transition(ctx, StateOpen)
			return
		}
		cb.streak++
		if cb.streak >= cb.config.SuccessThreshold {
			cb.transition(ctx, StateClosed)
		}
	}
}

func (cb *CircuitBreaker) reject(ctx context.Context, wait time.Duration) error {
	logger.Log(ctx).Debug(ctx, LogCircuitRejected,
		zap.String("circuit_breaker", cb.name),
		zap.Duration("retry_after", wait))
	return &OpenError{Name: cb.name, RetryAfter: wait}
}

// transition вызывается под cb.mu.
func (cb *CircuitBreaker) transition(ctx context.Context, to CircuitState) {
	from := cb.state
	cb.state = to
	cb.streak = 0
	cb.probing = false
	if to == StateOpen {
		cb.openedAt = cb.now()
	}

	log := logger.Log(ctx)
	fields := []zap.Field{
		zap.String("circuit_breaker", cb.name),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	}
	if to == StateOpen {
		log.Warn(ctx, LogCircuitTransition, fields...)
		return
	}
	log.Info(ctx, LogCircuitTransition, fields...)
}

// GetState возвращает текущее состояние.
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
