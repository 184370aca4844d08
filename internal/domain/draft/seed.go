package draft

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/pkg/ptr"
)

// Seed предвыбор из параметров deep link
type Seed struct {
	ServiceID  *string
	StaffID    *string
	LocationID *string
	Date       *time.Time
}

// New создает черновик со значениями по умолчанию и применяет предвыбор.
// Устаревшие значения deep link не являются ошибкой: они пропускаются и
// возвращаются в списке предупреждений.
func New(catalog *domain.CatalogSnapshot, seed Seed) (*BookingDraft, []string) {
	d := build(catalog, State{VenueType: domain.VenueAtSalon})
	var warnings []string

	if loc, ok := catalog.DefaultLocation(); ok {
		d = mustApply(catalog, d, Patch{LocationID: Set(ptr.Ptr(loc.ID))})
	}

	steps := []struct {
		name  string
		set   bool
		patch Patch
	}{
		{"location", seed.LocationID != nil, Patch{LocationID: Set(seed.LocationID)}},
		{"service", seed.ServiceID != nil, Patch{ServiceIDs: Set([]string{ptr.Value(seed.ServiceID)})}},
		{"staff", seed.StaffID != nil, Patch{StaffID: Set(seed.StaffID)}},
		{"date", seed.Date != nil, Patch{Date: Set(seed.Date)}},
	}
	for _, step := range steps {
		if !step.set {
			continue
		}
		next, err := ApplyPatch(catalog, d, step.patch)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("deep link %s ignored: %v", step.name, err))
			continue
		}
		d = next
	}

	// категорию выбираем по предвыбранной услуге
	if svc := d.state.Services; len(svc) == 1 {
		if offering, ok := catalog.Offering(svc[0].OfferingID); ok && offering.CategoryID != nil {
			d = mustApply(catalog, d, Patch{CategoryID: Set(ptr.Ptr(*offering.CategoryID))})
		}
	}

	return d, warnings
}

// mustApply применяет патч, который по построению ссылается только на данные каталога
func mustApply(catalog *domain.CatalogSnapshot, d *BookingDraft, p Patch) *BookingDraft {
	next, err := ApplyPatch(catalog, d, p)
	if err != nil {
		return d
	}
	return next
}
