package platform

import (
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// Location точка обслуживания провайдера
type Location struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	IsPrimary bool   `json:"isPrimary"`
	Kind      string `json:"kind"`
}

// Category категория каталога
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Offering услуга или ее вариант
type Offering struct {
	ID                    string   `json:"id"`
	Title                 string   `json:"title"`
	DurationMinutes       *int     `json:"durationMinutes"`
	Price                 float64  `json:"price"`
	Currency              string   `json:"currency"`
	CategoryID            *string  `json:"categoryId,omitempty"`
	ParentOfferingID      *string  `json:"parentOfferingId,omitempty"`
	SupportsAtHome        bool     `json:"supportsAtHome"`
	AtHomePriceAdjustment float64  `json:"atHomePriceAdjustment"`
	BufferMinutes         *int     `json:"bufferMinutes"`
	RequiredResourceTypes []string `json:"requiredResourceTypes,omitempty"`
}

// Package пакет услуг
type Package struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Price             float64  `json:"price"`
	Currency          string   `json:"currency"`
	DiscountPct       *float64 `json:"discountPct,omitempty"`
	MemberOfferingIDs []string `json:"memberOfferingIds"`
}

// Addon дополнение к услуге
type Addon struct {
	ID              string  `json:"id"`
	OfferingID      string  `json:"offeringId"`
	Title           string  `json:"title"`
	Price           float64 `json:"price"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Currency        string  `json:"currency"`
}

// Staff мастер
type Staff struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Role   string   `json:"role"`
	Rating *float64 `json:"rating,omitempty"`
}

// Resource ресурс (кабинет, кресло, аппарат)
type Resource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// BookingSettings настройки онлайн-записи
type BookingSettings struct {
	StaffSelectionMode   string   `json:"staffSelectionMode"`
	RequireAuthStep      string   `json:"requireAuthStep"`
	MinNoticeMinutes     int      `json:"minNoticeMinutes"`
	MaxAdvanceDays       int      `json:"maxAdvanceDays"`
	DepositPolicy        *Deposit `json:"depositPolicy,omitempty"`
	RequiredFormFields   []string `json:"requiredFormFields,omitempty"`
	RequiredCustomFields []string `json:"requiredCustomFields,omitempty"`
}

// Deposit политика предоплаты
type Deposit struct {
	Kind   string  `json:"kind"`
	Amount float64 `json:"amount"`
}

// GroupBookingSettings настройки групповой записи
type GroupBookingSettings struct {
	Enabled             bool     `json:"enabled"`
	MaxGroupSize        int      `json:"maxGroupSize"`
	ExcludedOfferingIDs []string `json:"excludedOfferingIds,omitempty"`
	EnabledLocationIDs  []string `json:"enabledLocationIds,omitempty"`
}

// Slot слот из ответа сервиса доступности
type Slot struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	StaffID     *string   `json:"staffId,omitempty"`
	IsAvailable *bool     `json:"isAvailable,omitempty"`
}

// AvailabilityResponse ответ сервиса доступности
type AvailabilityResponse struct {
	Slots []Slot `json:"slots"`
}

// HoldServiceRequest услуга в запросе брони
type HoldServiceRequest struct {
	OfferingID      string  `json:"offeringId"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// AddressPayload адрес для выезда на дом
type AddressPayload struct {
	Line1      string   `json:"line1"`
	Line2      string   `json:"line2,omitempty"`
	City       string   `json:"city"`
	PostalCode string   `json:"postalCode,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// ParticipantPayload участник групповой записи
type ParticipantPayload struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	ServiceIDs []string `json:"serviceIds"`
	Notes      *string  `json:"notes,omitempty"`
}

// CreateHoldRequest тело запроса создания брони
type CreateHoldRequest struct {
	ProviderID   string               `json:"providerId"`
	StaffID      *string              `json:"staffId"`
	Services     []HoldServiceRequest `json:"services"`
	Start        time.Time            `json:"start"`
	End          time.Time            `json:"end"`
	LocationType string               `json:"locationType"`
	LocationID   *string              `json:"locationId"`
	Address      *AddressPayload      `json:"address"`
	ResourceIDs  []string             `json:"resourceIds,omitempty"`
	Participants []ParticipantPayload `json:"participants,omitempty"`
}

// HoldResponse ответ на создание брони
type HoldResponse struct {
	HoldID    string    `json:"holdId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClientPayload контактные данные клиента
type ClientPayload struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// CommitHoldRequest тело запроса подтверждения брони
type CommitHoldRequest struct {
	Client            ClientPayload        `json:"client"`
	AddonIDs          []string             `json:"addonIds"`
	FormResponses     map[string]string    `json:"formResponses,omitempty"`
	CustomFieldValues map[string]string    `json:"customFieldValues,omitempty"`
	Participants      []ParticipantPayload `json:"participants,omitempty"`
	Total             float64              `json:"total"`
	DepositDue        float64              `json:"depositDue"`
	Currency          string               `json:"currency"`
}

// CommitHoldResponse ответ подтверждения брони
type CommitHoldResponse struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

// WaitlistRequest тело заявки в лист ожидания
type WaitlistRequest struct {
	Name           string     `json:"name"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	OfferingIDs    []string   `json:"offeringIds"`
	StaffID        *string    `json:"staffId,omitempty"`
	PreferredDate  string     `json:"preferredDate"`
	PreferredStart *time.Time `json:"preferredStart,omitempty"`
	PreferredEnd   *time.Time `json:"preferredEnd,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// WaitlistResponse ответ листа ожидания
type WaitlistResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

func (o Offering) toDomain() domain.Offering {
	duration := domain.DefaultOfferingDurationMinutes
	if o.DurationMinutes != nil {
		duration = *o.DurationMinutes
	}
	buffer := domain.DefaultOfferingBufferMinutes
	if o.BufferMinutes != nil {
		buffer = *o.BufferMinutes
	}
	currency := o.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return domain.Offering{
		ID:                    o.ID,
		Title:                 o.Title,
		DurationMinutes:       duration,
		Price:                 o.Price,
		Currency:              currency,
		CategoryID:            o.CategoryID,
		ParentOfferingID:      o.ParentOfferingID,
		SupportsAtHome:        o.SupportsAtHome,
		AtHomePriceAdjustment: o.AtHomePriceAdjustment,
		BufferMinutes:         buffer,
		RequiredResourceTypes: o.RequiredResourceTypes,
	}
}

func (s BookingSettings) toDomain() domain.Settings {
	settings := domain.Settings{
		StaffSelectionMode:   domain.StaffSelectionMode(s.StaffSelectionMode),
		RequireAuthStep:      domain.AuthStepPlacement(s.RequireAuthStep),
		MinNoticeMinutes:     s.MinNoticeMinutes,
		MaxAdvanceDays:       s.MaxAdvanceDays,
		RequiredFormFields:   s.RequiredFormFields,
		RequiredCustomFields: s.RequiredCustomFields,
		DepositPolicy:        domain.DepositPolicy{Kind: domain.DepositNone},
	}
	switch settings.StaffSelectionMode {
	case domain.StaffClientChooses, domain.StaffAnyoneDefault, domain.StaffHiddenAutoAssign:
	default:
		settings.StaffSelectionMode = domain.StaffAnyoneDefault
	}
	if settings.RequireAuthStep != domain.AuthBeforeTimeSelection {
		settings.RequireAuthStep = domain.AuthAtCheckout
	}
	if s.DepositPolicy != nil {
		settings.DepositPolicy = domain.DepositPolicy{
			Kind:   domain.DepositKind(s.DepositPolicy.Kind),
			Amount: s.DepositPolicy.Amount,
		}
	}
	return settings
}

func toAddressPayload(a *domain.Address) *AddressPayload {
	if a == nil {
		return nil
	}
	return &AddressPayload{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		PostalCode: a.PostalCode,
		Latitude:   a.Latitude,
		Longitude:  a.Longitude,
	}
}

func toParticipantPayloads(list []domain.GroupParticipant) []ParticipantPayload {
	if len(list) == 0 {
		return nil
	}
	result := make([]ParticipantPayload, 0, len(list))
	for _, p := range list {
		result = append(result, ParticipantPayload{
			ID:         p.ID,
			Name:       p.Name,
			Email:      p.Email,
			Phone:      p.Phone,
			ServiceIDs: p.ServiceIDs,
			Notes:      p.Notes,
		})
	}
	return result
}
