package plan_availability

import (
	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
)

// ComputeSpan вычисляет длительность и буфер, которые должен резервировать запрос доступности.
//
// Без группы: сумма (длительность + буфер) по услугам без буфера последней услуги,
// буфер последней услуги передается отдельно.
// В группе: максимум сумм по основному клиенту и участникам, буфер 0.
func ComputeSpan(catalog *domain.CatalogSnapshot, d *draft.BookingDraft) domain.Span {
	state := d.State()
	primary := d.OfferingIDs()

	if !state.IsGroupBooking {
		total := spanFor(catalog, primary)
		last := 0
		if len(primary) > 0 {
			_, last = offeringSpan(catalog, primary[len(primary)-1])
		}
		return domain.Span{DurationMinutes: total - last, BufferMinutes: last}
	}

	longest := spanFor(catalog, primary)
	for _, p := range state.Participants {
		if s := spanFor(catalog, p.ServiceIDs); s > longest {
			longest = s
		}
	}
	return domain.Span{DurationMinutes: longest, BufferMinutes: 0}
}

// spanFor сумма длительностей и буферов услуг
func spanFor(catalog *domain.CatalogSnapshot, ids []string) int {
	total := 0
	for _, id := range ids {
		duration, buffer := offeringSpan(catalog, id)
		total += duration + buffer
	}
	return total
}

// offeringSpan длительность и буфер услуги; для отсутствующей в каталоге услуги значения по умолчанию
func offeringSpan(catalog *domain.CatalogSnapshot, id string) (int, int) {
	offering, ok := catalog.Offering(id)
	if !ok {
		return domain.DefaultOfferingDurationMinutes, domain.DefaultOfferingBufferMinutes
	}
	return offering.DurationMinutes, offering.BufferMinutes
}
