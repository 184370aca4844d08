package hold_lifecycle

import (
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
)

// Options настройки use case
type Options struct {
	ContinuationTTL       time.Duration
	ContinuationKeyPrefix string
	// PublicBaseURL базовый адрес сервиса для callback и continuation ссылок
	PublicBaseURL string
}

// Request модель запроса операций жизненного цикла
type Request struct {
	FlowID  string
	Catalog *domain.CatalogSnapshot
	Draft   *draft.BookingDraft
}

// Result состояние брони после операции
type Result struct {
	State           domain.HoldState
	HoldID          string
	ChallengeURL    string // заполнен в gate_pending
	ContinuationURL string // заполнен в finalizing
	Booking         *domain.BookingConfirmation
	// Duplicate true, если confirm пришел во время уже идущего подтверждения и был проигнорирован
	Duplicate bool
}
