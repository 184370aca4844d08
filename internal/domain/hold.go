package domain

import "time"

// HoldState состояние жизненного цикла временной брони
type HoldState string

const (
	HoldIdle        HoldState = "idle"
	HoldCreating    HoldState = "creating"
	HoldHeld        HoldState = "held"
	HoldGatePending HoldState = "gate_pending"
	HoldFinalizing  HoldState = "finalizing"
	HoldDone        HoldState = "done"
	HoldFailed      HoldState = "failed"
)

// CanConfirm returns true if a new hold may be requested from this state
func (s HoldState) CanConfirm() bool {
	return s == HoldIdle || s == HoldFailed
}

// GateOutcome результат прохождения identity gate
type GateOutcome string

const (
	GateVerified  GateOutcome = "verified"
	GateRejected  GateOutcome = "not_verified"
	GateAbandoned GateOutcome = "abandoned"
)

// Hold server-owned reservation handle
type Hold struct {
	ID        string
	CreatedAt time.Time
}

// Address адрес клиента для выезда на дом
type Address struct {
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Latitude   *float64
	Longitude  *float64
}

// IsComplete returns true if the address carries at least line1 and city
func (a *Address) IsComplete() bool {
	return a != nil && a.Line1 != "" && a.City != ""
}

// String форматирует адрес одной строкой (для геокодинга)
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	s := a.Line1
	for _, part := range []string{a.Line2, a.City, a.PostalCode} {
		if part != "" {
			s += ", " + part
		}
	}
	return s
}

// GroupParticipant member of a group booking besides the primary booker
type GroupParticipant struct {
	ID         string
	Name       string
	Email      *string
	Phone      *string
	ServiceIDs []string
	Notes      *string
}

// ClientIntake контактные данные клиента
type ClientIntake struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	SpecialRequests string
}

// HoldService услуга в запросе на создание брони
type HoldService struct {
	OfferingID      string
	DurationMinutes int
	Price           float64
}

// HoldRequest параметры создания временной брони
type HoldRequest struct {
	ProviderID   string
	StaffID      *string // nil = мастера назначает система бронирования
	Services     []HoldService
	Start        time.Time
	End          time.Time
	LocationType VenueType
	LocationID   *string
	Address      *Address
	ResourceIDs  []string
	Participants []GroupParticipant
}

// CommitRequest данные для превращения брони в подтвержденную запись
type CommitRequest struct {
	HoldID            string
	Client            ClientIntake
	AddonIDs          []string
	FormResponses     map[string]string
	CustomFieldValues map[string]string
	Participants      []GroupParticipant
	Total             float64
	DepositDue        float64
	Currency          string
}

// BookingConfirmation подтвержденная запись
type BookingConfirmation struct {
	BookingID string
	HoldID    string
	Status    string
}

// GateChallengeRequest запрос на прохождение identity gate
type GateChallengeRequest struct {
	FlowID      string
	HoldID      *string // nil, если gate запрошен до выбора времени
	Email       string
	Phone       string
	CallbackURL string
}

// GateChallenge открытая проверка личности
type GateChallenge struct {
	ID  string
	URL string
}
