package draft

import (
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/pkg/ptr"
)

// Patch частичное изменение черновика. Незаданные поля не меняются.
type Patch struct {
	VenueType   Field[domain.VenueType]
	Address     Field[*domain.Address]
	LocationID  Field[*string]
	CategoryID  Field[*string]
	PackageID   Field[*string]
	ServiceIDs  Field[[]string] // отдельные услуги, сбрасывают пакет
	AddonIDs    Field[[]string]
	StaffID     Field[*string]
	ResourceIDs Field[[]string]

	IsGroupBooking Field[bool]
	Participants   Field[[]domain.GroupParticipant]

	Date Field[*time.Time]
	Slot Field[*SelectedSlot]

	Client            Field[domain.ClientIntake]
	FormResponses     Field[map[string]string]
	CustomFieldValues Field[map[string]string]
	PolicyAccepted    Field[bool]
}

// ApplyPatch сливает патч с текущим состоянием и возвращает новый черновик:
//  1. поля патча переносятся в копию состояния (с проверкой ссылок на каталог);
//  2. пакет и отдельные услуги взаимоисключающие;
//  3. выбранный слот сбрасывается, если изменился любой вход длительности;
//  4. итоги пересчитываются с нуля по новому состоянию.
//
// Исходный черновик не изменяется. При ошибке возвращается nil.
func ApplyPatch(catalog *domain.CatalogSnapshot, current *BookingDraft, p Patch) (*BookingDraft, error) {
	if p.PackageID.IsSet() && p.PackageID.Value() != nil && p.ServiceIDs.IsSet() && len(p.ServiceIDs.Value()) > 0 {
		return nil, ErrPackageAndServices
	}

	before := current.state
	next := current.state.clone()

	if p.VenueType.IsSet() {
		venue := p.VenueType.Value()
		if venue != domain.VenueAtSalon && venue != domain.VenueAtHome {
			return nil, fmt.Errorf("%w: %q", ErrInvalidVenue, venue)
		}
		next.VenueType = venue
	}

	if p.Address.IsSet() {
		if addr := p.Address.Value(); addr != nil {
			copied := *addr
			next.Address = &copied
		} else {
			next.Address = nil
		}
	}

	if p.LocationID.IsSet() {
		id := p.LocationID.Value()
		if id != nil {
			if _, ok := catalog.Location(*id); !ok {
				return nil, fmt.Errorf("%w: id=%s", ErrUnknownLocation, *id)
			}
		}
		next.LocationID = cloneStr(id)
	}

	if p.CategoryID.IsSet() {
		id := p.CategoryID.Value()
		if id != nil && !catalog.HasCategory(*id) {
			return nil, fmt.Errorf("%w: id=%s", ErrUnknownCategory, *id)
		}
		next.CategoryID = cloneStr(id)
	}

	// отдельные услуги применяются раньше пакета: пакет из того же патча имеет приоритет
	if p.ServiceIDs.IsSet() {
		services, err := resolveServices(catalog, p.ServiceIDs.Value())
		if err != nil {
			return nil, err
		}
		next.Services = services
		next.PackageID = nil
	}

	if p.PackageID.IsSet() {
		id := p.PackageID.Value()
		if id != nil {
			pkg, ok := catalog.Package(*id)
			if !ok {
				return nil, fmt.Errorf("%w: id=%s", ErrUnknownPackage, *id)
			}
			next.PackageID = ptr.Ptr(pkg.ID)
			next.Services = packageServices(catalog, pkg)
		} else if next.PackageID != nil {
			// услуги были получены из пакета и уходят вместе с ним
			next.PackageID = nil
			next.Services = nil
		}
	}

	if p.AddonIDs.IsSet() {
		next.AddonIDs = dedupe(p.AddonIDs.Value())
	}

	if p.StaffID.IsSet() {
		id := p.StaffID.Value()
		if id != nil && *id != domain.AnyStaff {
			if _, ok := catalog.StaffMember(*id); !ok {
				return nil, fmt.Errorf("%w: id=%s", ErrUnknownStaff, *id)
			}
		}
		next.StaffID = cloneStr(id)
	}

	if p.ResourceIDs.IsSet() {
		ids := dedupe(p.ResourceIDs.Value())
		for _, id := range ids {
			if _, ok := catalog.Resource(id); !ok {
				return nil, fmt.Errorf("%w: id=%s", ErrUnknownResource, id)
			}
		}
		next.ResourceIDs = ids
	}

	if p.IsGroupBooking.IsSet() {
		next.IsGroupBooking = p.IsGroupBooking.Value()
	}

	if p.Participants.IsSet() {
		next.Participants = make([]domain.GroupParticipant, 0, len(p.Participants.Value()))
		for _, participant := range p.Participants.Value() {
			participant.ServiceIDs = dedupe(participant.ServiceIDs)
			next.Participants = append(next.Participants, cloneParticipant(participant))
		}
	}

	if p.Date.IsSet() {
		if date := p.Date.Value(); date != nil {
			day := truncateToDay(*date)
			next.Date = &day
		} else {
			next.Date = nil
		}
	}

	if p.Slot.IsSet() {
		if slot := p.Slot.Value(); slot != nil {
			copied := *slot
			copied.StaffID = cloneStr(slot.StaffID)
			next.Slot = &copied
		} else {
			next.Slot = nil
		}
	}

	if p.Client.IsSet() {
		next.Client = p.Client.Value()
	}
	if p.FormResponses.IsSet() {
		next.FormResponses = copyMap(p.FormResponses.Value())
	}
	if p.CustomFieldValues.IsSet() {
		next.CustomFieldValues = copyMap(p.CustomFieldValues.Value())
	}
	if p.PolicyAccepted.IsSet() {
		next.PolicyAccepted = p.PolicyAccepted.Value()
	}

	normalize(&next)

	// дата может прийти вместе со слотом этого дня, остальные входы сбрасывают слот всегда
	if spanInputsChanged(before, next) {
		next.Slot = nil
	} else if !sameDate(before.Date, next.Date) && !p.Slot.IsSet() {
		next.Slot = nil
	}

	return build(catalog, next), nil
}

// build пересчитывает цены и итоги. Единственное место, где заполняются Totals.
func build(catalog *domain.CatalogSnapshot, state State) *BookingDraft {
	reprice(catalog, &state)
	return &BookingDraft{
		state:  state,
		totals: derive(catalog, state),
	}
}

// normalize поддерживает связанные инварианты состояния
func normalize(s *State) {
	// адрес имеет смысл только при выезде на дом
	if s.VenueType == domain.VenueAtSalon {
		s.Address = nil
	}
	// без группового режима участников быть не должно
	if !s.IsGroupBooking {
		s.Participants = nil
	}
}

// spanInputsChanged true, если изменилось что-либо, что влияет на длительность
// или на параметры поиска слотов, кроме даты
func spanInputsChanged(before, after State) bool {
	if before.VenueType != after.VenueType {
		return true
	}
	if !ptr.Equal(before.LocationID, after.LocationID) || !ptr.Equal(before.StaffID, after.StaffID) {
		return true
	}
	if !ptr.Equal(before.PackageID, after.PackageID) {
		return true
	}
	if !slices.EqualFunc(before.Services, after.Services, func(a, b SelectedService) bool {
		return a.OfferingID == b.OfferingID
	}) {
		return true
	}
	if before.IsGroupBooking != after.IsGroupBooking {
		return true
	}
	return !slices.EqualFunc(before.Participants, after.Participants, func(a, b domain.GroupParticipant) bool {
		return a.ID == b.ID && slices.Equal(a.ServiceIDs, b.ServiceIDs)
	})
}

func resolveServices(catalog *domain.CatalogSnapshot, ids []string) ([]SelectedService, error) {
	services := make([]SelectedService, 0, len(ids))
	for _, id := range ids {
		offering, ok := catalog.Offering(id)
		if !ok {
			return nil, fmt.Errorf("%w: id=%s", ErrUnknownOffering, id)
		}
		services = append(services, toSelected(offering))
	}
	return services, nil
}

// packageServices раскладывает пакет в плоский список услуг.
// Участники пакета, которых нет в каталоге, пропускаются.
func packageServices(catalog *domain.CatalogSnapshot, pkg *domain.Package) []SelectedService {
	services := make([]SelectedService, 0, len(pkg.MemberOfferingIDs))
	for _, id := range pkg.MemberOfferingIDs {
		if offering, ok := catalog.Offering(id); ok {
			services = append(services, toSelected(offering))
		}
	}
	return services
}

func toSelected(o *domain.Offering) SelectedService {
	return SelectedService{
		OfferingID:      o.ID,
		Title:           o.Title,
		DurationMinutes: o.DurationMinutes,
		Price:           o.Price,
		Currency:        o.Currency,
	}
}

func dedupe(ids []string) []string {
	if ids == nil {
		return nil
	}
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(result, id) {
			result = append(result, id)
		}
	}
	return result
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
