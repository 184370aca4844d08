package plan_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// AvailabilityClient интерфейс клиента сервиса доступности
type AvailabilityClient interface {
	GetAvailability(ctx context.Context, query domain.AvailabilityQuery) ([]domain.AvailableSlot, error)
}

// Limiter ограничивает темп последовательного поиска ближайшего дня (*rate.Limiter)
type Limiter interface {
	Wait(ctx context.Context) error
}

// Metrics интерфейс метрик запросов доступности
type Metrics interface {
	ObserveAvailability(outcome string, seconds float64)
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
