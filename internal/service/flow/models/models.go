package models

import (
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
)

// Request модели

// DeepLink параметры предвыбора из ссылки на запись
type DeepLink struct {
	ServiceID  *string `json:"serviceId,omitempty"`
	StaffID    *string `json:"staffId,omitempty"`
	LocationID *string `json:"locationId,omitempty"`
	Date       *string `json:"date,omitempty"` // YYYY-MM-DD
}

// Address адрес выезда на дом
type Address struct {
	Line1      string   `json:"line1"`
	Line2      string   `json:"line2,omitempty"`
	City       string   `json:"city"`
	PostalCode string   `json:"postalCode,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// Client контактные данные клиента
type Client struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// DraftPatch частичное изменение черновика. Отсутствующий ключ не меняет поле, null сбрасывает.
type DraftPatch struct {
	VenueType         draft.Field[domain.VenueType]  `json:"venueType"`
	Address           draft.Field[*Address]          `json:"address"`
	LocationID        draft.Field[*string]           `json:"locationId"`
	CategoryID        draft.Field[*string]           `json:"categoryId"`
	PackageID         draft.Field[*string]           `json:"packageId"`
	ServiceIDs        draft.Field[[]string]          `json:"serviceIds"`
	AddonIDs          draft.Field[[]string]          `json:"addonIds"`
	StaffID           draft.Field[*string]           `json:"staffId"`
	ResourceIDs       draft.Field[[]string]          `json:"resourceIds"`
	Date              draft.Field[*string]           `json:"date"`
	Client            draft.Field[Client]            `json:"client"`
	FormResponses     draft.Field[map[string]string] `json:"formResponses"`
	CustomFieldValues draft.Field[map[string]string] `json:"customFieldValues"`
	PolicyAccepted    draft.Field[bool]              `json:"policyAccepted"`
}

// Participant данные участника группы
type Participant struct {
	Name  string  `json:"name" validate:"required"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// SelectSlotRequest выбор слота из списка доступных
type SelectSlotRequest struct {
	Start   time.Time `json:"start" validate:"required"`
	StaffID *string   `json:"staffId,omitempty"`
}

// WaitlistRequest заявка в лист ожидания
type WaitlistRequest struct {
	Name           string     `json:"name" validate:"required"`
	Email          string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string     `json:"phone,omitempty"`
	PreferredDate  *string    `json:"preferredDate,omitempty"` // YYYY-MM-DD, по умолчанию дата черновика
	PreferredStart *time.Time `json:"preferredStart,omitempty"`
	PreferredEnd   *time.Time `json:"preferredEnd,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// Response модели

// FlowView состояние сессии записи для UI
type FlowView struct {
	FlowID     string        `json:"flowId"`
	ProviderID string        `json:"providerId"`
	Step       string        `json:"step"`
	Steps      []string      `json:"steps"`
	Draft      DraftView     `json:"draft"`
	Totals     TotalsView    `json:"totals"`
	Schedule   *ScheduleView `json:"schedule,omitempty"`
	Hold       HoldView      `json:"hold"`
	Warnings   []string      `json:"warnings,omitempty"`
}

// DraftView выбор клиента
type DraftView struct {
	VenueType         string            `json:"venueType"`
	Address           *Address          `json:"address,omitempty"`
	LocationID        *string           `json:"locationId,omitempty"`
	CategoryID        *string           `json:"categoryId,omitempty"`
	PackageID         *string           `json:"packageId,omitempty"`
	Services          []ServiceView     `json:"services"`
	AddonIDs          []string          `json:"addonIds"`
	StaffID           *string           `json:"staffId,omitempty"`
	ResourceIDs       []string          `json:"resourceIds"`
	IsGroupBooking    bool              `json:"isGroupBooking"`
	Participants      []ParticipantView `json:"participants,omitempty"`
	Date              *string           `json:"date,omitempty"`
	Slot              *SlotView         `json:"slot,omitempty"`
	Client            Client            `json:"client"`
	FormResponses     map[string]string `json:"formResponses,omitempty"`
	CustomFieldValues map[string]string `json:"customFieldValues,omitempty"`
	PolicyAccepted    bool              `json:"policyAccepted"`
}

// ServiceView выбранная услуга
type ServiceView struct {
	OfferingID      string  `json:"offeringId"`
	Title           string  `json:"title"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
}

// ParticipantView участник групповой записи
type ParticipantView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	ServiceIDs []string `json:"serviceIds"`
}

// TotalsView производные итоги
type TotalsView struct {
	ServicesSubtotal     float64 `json:"servicesSubtotal"`
	AddonsSubtotal       float64 `json:"addonsSubtotal"`
	Total                float64 `json:"total"`
	DepositDue           float64 `json:"depositDue"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	Currency             string  `json:"currency"`
}

// ScheduleView слоты на выбранную дату
type ScheduleView struct {
	Date            string     `json:"date"`
	DurationMinutes int        `json:"durationMinutes"`
	BufferMinutes   int        `json:"bufferMinutes"`
	Slots           []SlotView `json:"slots"`
}

// SlotView временной слот
type SlotView struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	StaffID *string   `json:"staffId,omitempty"`
}

// HoldView состояние брони
type HoldView struct {
	State           string `json:"state"`
	HoldID          string `json:"holdId,omitempty"`
	Verified        bool   `json:"verified"`
	GateOpen        bool   `json:"gateOpen"`
	ChallengeURL    string `json:"challengeUrl,omitempty"`
	ContinuationURL string `json:"continuationUrl,omitempty"`
	BookingID       string `json:"bookingId,omitempty"`
}

// WaitlistResponse принятая заявка в лист ожидания
type WaitlistResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToDomainAddress конвертирует адрес в доменную модель
func ToDomainAddress(a *Address) *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		PostalCode: a.PostalCode,
		Latitude:   a.Latitude,
		Longitude:  a.Longitude,
	}
}

// FromDomainAddress конвертирует доменный адрес в модель ответа
func FromDomainAddress(a *domain.Address) *Address {
	if a == nil {
		return nil
	}
	return &Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		PostalCode: a.PostalCode,
		Latitude:   a.Latitude,
		Longitude:  a.Longitude,
	}
}

// ToDomainClient конвертирует контактные данные в доменную модель
func ToDomainClient(c Client) domain.ClientIntake {
	return domain.ClientIntake{
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		SpecialRequests: c.SpecialRequests,
	}
}

// FromDomainClient конвертирует доменные контактные данные в модель ответа
func FromDomainClient(c domain.ClientIntake) Client {
	return Client{
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		SpecialRequests: c.SpecialRequests,
	}
}
