package draft

import (
	"maps"
	"slices"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// SelectedService услуга в составе записи (из пакета или выбранная отдельно)
type SelectedService struct {
	OfferingID      string
	Title           string
	DurationMinutes int
	Price           float64
	Currency        string
}

// SelectedSlot выбранный временной слот
type SelectedSlot struct {
	Start   time.Time
	End     time.Time
	StaffID *string
}

// State изменяемая клиентом часть черновика
type State struct {
	VenueType   domain.VenueType
	Address     *domain.Address // имеет смысл только для at_home
	LocationID  *string
	CategoryID  *string
	PackageID   *string
	Services    []SelectedService
	AddonIDs    []string
	StaffID     *string // domain.AnyStaff = без предпочтений
	ResourceIDs []string

	IsGroupBooking bool
	Participants   []domain.GroupParticipant

	Date *time.Time
	Slot *SelectedSlot

	Client            domain.ClientIntake
	FormResponses     map[string]string
	CustomFieldValues map[string]string
	PolicyAccepted    bool
}

// Totals производные поля черновика
type Totals struct {
	ServicesSubtotal     float64
	AddonsSubtotal       float64
	TotalDurationMinutes int
	Currency             string
}

// Total итоговая стоимость записи
func (t Totals) Total() float64 {
	return t.ServicesSubtotal + t.AddonsSubtotal
}

// BookingDraft aggregate state of an in-progress booking.
// It is immutable: every change produces a new draft through ApplyPatch,
// which is also the only writer of Totals.
type BookingDraft struct {
	state  State
	totals Totals
}

// State возвращает копию состояния черновика
func (d *BookingDraft) State() State {
	return d.state.clone()
}

// Totals возвращает производные итоги
func (d *BookingDraft) Totals() Totals {
	return d.totals
}

// OfferingIDs идентификаторы выбранных услуг основного клиента в порядке выбора
func (d *BookingDraft) OfferingIDs() []string {
	ids := make([]string, len(d.state.Services))
	for i, s := range d.state.Services {
		ids[i] = s.OfferingID
	}
	return ids
}

// HasAddon проверяет, выбрано ли дополнение
func (d *BookingDraft) HasAddon(addonID string) bool {
	return slices.Contains(d.state.AddonIDs, addonID)
}

// Participant ищет участника группы по id
func (d *BookingDraft) Participant(id string) (domain.GroupParticipant, bool) {
	for _, p := range d.state.Participants {
		if p.ID == id {
			return cloneParticipant(p), true
		}
	}
	return domain.GroupParticipant{}, false
}

func (s State) clone() State {
	c := s
	if s.Address != nil {
		addr := *s.Address
		c.Address = &addr
	}
	c.LocationID = cloneStr(s.LocationID)
	c.CategoryID = cloneStr(s.CategoryID)
	c.PackageID = cloneStr(s.PackageID)
	c.StaffID = cloneStr(s.StaffID)
	c.Services = slices.Clone(s.Services)
	c.AddonIDs = slices.Clone(s.AddonIDs)
	c.ResourceIDs = slices.Clone(s.ResourceIDs)
	if s.Participants != nil {
		c.Participants = make([]domain.GroupParticipant, len(s.Participants))
		for i, p := range s.Participants {
			c.Participants[i] = cloneParticipant(p)
		}
	}
	if s.Date != nil {
		date := *s.Date
		c.Date = &date
	}
	if s.Slot != nil {
		slot := *s.Slot
		slot.StaffID = cloneStr(s.Slot.StaffID)
		c.Slot = &slot
	}
	c.FormResponses = maps.Clone(s.FormResponses)
	c.CustomFieldValues = maps.Clone(s.CustomFieldValues)
	return c
}

func cloneParticipant(p domain.GroupParticipant) domain.GroupParticipant {
	c := p
	c.Email = cloneStr(p.Email)
	c.Phone = cloneStr(p.Phone)
	c.Notes = cloneStr(p.Notes)
	c.ServiceIDs = slices.Clone(p.ServiceIDs)
	return c
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
