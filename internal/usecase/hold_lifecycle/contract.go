package hold_lifecycle

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// HoldClient интерфейс клиента сервиса броней
type HoldClient interface {
	CreateHold(ctx context.Context, req domain.HoldRequest, idempotencyKey string) (*domain.Hold, error)
	CommitHold(ctx context.Context, req domain.CommitRequest) (*domain.BookingConfirmation, error)
}

// IdentityGate интерфейс внешнего сервиса проверки личности
type IdentityGate interface {
	StartChallenge(ctx context.Context, req domain.GateChallengeRequest) (*domain.GateChallenge, error)
}

// ContinuationStore интерфейс хранилища данных, переживающих redirect
type ContinuationStore interface {
	Save(ctx context.Context, key string, snapshot *domain.ContinuationSnapshot, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Metrics интерфейс метрик жизненного цикла брони
type Metrics interface {
	ObserveHoldTransition(state string)
	ObserveGateOutcome(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
