package draft

import (
	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// derive вычисляет итоги из состояния. Не хранит промежуточных значений.
func derive(catalog *domain.CatalogSnapshot, s State) Totals {
	return Totals{
		ServicesSubtotal:     servicesSubtotal(catalog, s),
		AddonsSubtotal:       addonsSubtotal(catalog, s.AddonIDs),
		TotalDurationMinutes: totalDuration(catalog, s),
		Currency:             currency(s),
	}
}

// servicesSubtotal цена пакета, если он выбран, иначе сумма цен услуг
func servicesSubtotal(catalog *domain.CatalogSnapshot, s State) float64 {
	if s.PackageID != nil {
		if pkg, ok := catalog.Package(*s.PackageID); ok {
			return pkg.Price
		}
	}
	var sum float64
	for _, svc := range s.Services {
		sum += svc.Price
	}
	return sum
}

// addonsSubtotal сумма цен дополнений по каталогу; неизвестные дополнения стоят UnknownAddonPrice
func addonsSubtotal(catalog *domain.CatalogSnapshot, addonIDs []string) float64 {
	var sum float64
	for _, id := range addonIDs {
		if addon, ok := catalog.Addon(id); ok {
			sum += addon.Price
			continue
		}
		sum += domain.UnknownAddonPrice
	}
	return sum
}

// totalDuration сумма длительностей услуг; в групповом режиме максимум по всем участникам
func totalDuration(catalog *domain.CatalogSnapshot, s State) int {
	primary := 0
	for _, svc := range s.Services {
		primary += svc.DurationMinutes
	}
	if !s.IsGroupBooking {
		return primary
	}

	longest := primary
	for _, p := range s.Participants {
		d := 0
		for _, id := range p.ServiceIDs {
			if offering, ok := catalog.Offering(id); ok {
				d += offering.DurationMinutes
				continue
			}
			d += domain.DefaultOfferingDurationMinutes
		}
		if d > longest {
			longest = d
		}
	}
	return longest
}

func currency(s State) string {
	if len(s.Services) > 0 && s.Services[0].Currency != "" {
		return s.Services[0].Currency
	}
	return domain.DefaultCurrency
}

// reprice обновляет цены услуг из каталога с учетом места оказания
func reprice(catalog *domain.CatalogSnapshot, s *State) {
	for i := range s.Services {
		if offering, ok := catalog.Offering(s.Services[i].OfferingID); ok {
			s.Services[i].Price = offering.PriceFor(s.VenueType)
		}
	}
}
