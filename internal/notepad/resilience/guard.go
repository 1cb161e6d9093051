package resilience

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"quicknote/pkg/logger"
)

// Сообщения логгера.
const (
	LogExecuting      = "executing guarded operation"
	ErrThrottleFailed = "rate limiter wait failed"
)

// Guard ограничивает частоту исходящих вызовов и защищает их Circuit Breaker.
// Повторов Guard не делает.
type Guard struct {
	serviceName    string
	limiter        *rate.Limiter
	circuitBreaker *CircuitBreaker
}

// NewGuard создает Guard. Лимит rps <= 0 отключает ограничение частоты.
func NewGuard(serviceName string, rps float64, burst int, cbConfig CircuitBreakerConfig) *Guard {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &Guard{
		serviceName:    serviceName,
		limiter:        rate.NewLimiter(limit, burst),
		circuitBreaker: NewCircuitBreaker(serviceName, cbConfig),
	}
}

// Execute ждет разрешения лимитера и выполняет операцию через Circuit Breaker.
func (g *Guard) Execute(ctx context.Context, operationName string, operation func() error) error {
	log := logger.Log(ctx).With(
		zap.String("service", g.serviceName),
		zap.String("operation", operationName),
	)
	log.Debug(ctx, LogExecuting)

	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrThrottleFailed, err)
	}

	return g.circuitBreaker.Execute(ctx, operation)
}

// State возвращает состояние Circuit Breaker.
func (g *Guard) State() CircuitState {
	return g.circuitBreaker.GetState()
}
