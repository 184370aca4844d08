package domain

import "time"

// VenueType где оказывается услуга
type VenueType string

const (
	VenueAtSalon VenueType = "at_salon"
	VenueAtHome  VenueType = "at_home"
)

// AvailableSlot represents a candidate time slot returned by the availability service
type AvailableSlot struct {
	Start       time.Time
	End         time.Time
	StaffID     *string
	IsAvailable *bool // nil = доступен
}

// Available returns true unless the service explicitly marked the slot unavailable
func (s *AvailableSlot) Available() bool {
	return s.IsAvailable == nil || *s.IsAvailable
}

// DurationMinutes returns the slot length
func (s *AvailableSlot) DurationMinutes() int {
	return int(s.End.Sub(s.Start).Minutes())
}

// FilterAvailable оставляет только доступные слоты
func FilterAvailable(slots []AvailableSlot) []AvailableSlot {
	result := make([]AvailableSlot, 0, len(slots))
	for _, s := range slots {
		if s.Available() {
			result = append(result, s)
		}
	}
	return result
}

// Span интервал, который должен резервировать запрос доступности
type Span struct {
	DurationMinutes int
	BufferMinutes   int
}

// AvailabilityQuery параметры запроса свободных слотов на один день
type AvailabilityQuery struct {
	ProviderID       string
	Date             time.Time
	ServiceID        string   // первая выбранная услуга
	ServiceIDs       []string // все услуги основного клиента
	StaffID          string   // id мастера или AnyStaff
	DurationMinutes  int
	BufferMinutes    int
	LocationID       *string
	MinNoticeMinutes int
	MaxAdvanceDays   int
}
