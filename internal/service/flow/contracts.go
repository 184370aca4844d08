package flow

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/hold_lifecycle"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/plan_availability"
)

// CatalogClient интерфейс загрузки каталога провайдера
type CatalogClient interface {
	GetCatalog(ctx context.Context, providerID string) (*domain.CatalogSnapshot, []string, error)
}

// Geocoder интерфейс геокодинга адреса выезда на дом
type Geocoder interface {
	Enrich(ctx context.Context, address *domain.Address) (*domain.Address, error)
}

// WaitlistClient интерфейс листа ожидания
type WaitlistClient interface {
	JoinWaitlist(ctx context.Context, req domain.WaitlistRequest) (*domain.WaitlistEntry, error)
}

// AvailabilityPlanner интерфейс use case планирования доступности
type AvailabilityPlanner interface {
	Execute(ctx context.Context, req *plan_availability.Request) (*plan_availability.Response, error)
	FindNextAvailable(ctx context.Context, req *plan_availability.Request) (*plan_availability.Response, error)
}

// HoldManager интерфейс use case жизненного цикла брони
type HoldManager interface {
	Confirm(ctx context.Context, lc *hold_lifecycle.Lifecycle, req *hold_lifecycle.Request) (*hold_lifecycle.Result, error)
	RetryGate(ctx context.Context, lc *hold_lifecycle.Lifecycle, req *hold_lifecycle.Request) (*hold_lifecycle.Result, error)
	StartPreSlotGate(ctx context.Context, lc *hold_lifecycle.Lifecycle, req *hold_lifecycle.Request) (*hold_lifecycle.Result, error)
	CompleteGate(ctx context.Context, lc *hold_lifecycle.Lifecycle, flowID, challengeID string, outcome domain.GateOutcome) (*hold_lifecycle.Result, error)
	Finalize(ctx context.Context, lc *hold_lifecycle.Lifecycle, req *hold_lifecycle.Request) (*hold_lifecycle.Result, error)
	Abandon(ctx context.Context, lc *hold_lifecycle.Lifecycle, flowID string)
}

// ContinuationReader интерфейс одноразового чтения данных продолжения
type ContinuationReader interface {
	Take(ctx context.Context, key string) (*domain.ContinuationSnapshot, error)
}

// Metrics интерфейс метрик сессий
type Metrics interface {
	SetActiveFlows(n int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
