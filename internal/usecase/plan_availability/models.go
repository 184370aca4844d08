package plan_availability

import (
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
)

// Request модель запроса слотов по текущему черновику
type Request struct {
	Catalog *domain.CatalogSnapshot
	Draft   *draft.BookingDraft
	Tracker *RequestTracker // nil = без проверки устаревания
	Seq     uint64          // номер запроса из Tracker.Begin
}

// Response модель ответа со слотами на день
type Response struct {
	Seq       uint64
	Date      time.Time
	Span      domain.Span
	Slots     []domain.AvailableSlot // все кандидаты, как вернул сервис
	Available []domain.AvailableSlot // только доступные
}

// HasAvailability true, если на день есть хотя бы один доступный слот
func (r *Response) HasAvailability() bool {
	return len(r.Available) > 0
}
