package draft

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// newParticipantID генератор идентификаторов участников
var newParticipantID = uuid.NewString

// ParticipantDetails контактные данные участника группы
type ParticipantDetails struct {
	Name  string
	Email *string
	Phone *string
	Notes *string
}

// SetGroupMode включает или выключает групповую запись.
// Выключение удаляет всех участников, но не трогает услуги основного клиента.
func SetGroupMode(catalog *domain.CatalogSnapshot, current *BookingDraft, enabled bool) (*BookingDraft, error) {
	if enabled {
		if !catalog.GroupSettings.Enabled {
			return nil, ErrGroupBookingDisabled
		}
		if !catalog.GroupSettings.AllowsLocation(current.state.LocationID) {
			return nil, ErrGroupLocationNotAllowed
		}
	}
	return ApplyPatch(catalog, current, Patch{IsGroupBooking: Set(enabled)})
}

// AddParticipant добавляет участника с новым id и пустым набором услуг.
// Основной клиент занимает одно место, поэтому участников не больше maxGroupSize-1.
func AddParticipant(catalog *domain.CatalogSnapshot, current *BookingDraft, details ParticipantDetails) (*BookingDraft, string, error) {
	if !current.state.IsGroupBooking {
		return nil, "", ErrNotGroupBooking
	}

	maxSize := catalog.GroupSettings.MaxGroupSize
	if maxSize <= 0 {
		maxSize = domain.DefaultMaxGroupSize
	}
	if len(current.state.Participants) >= maxSize-1 {
		return nil, "", fmt.Errorf("%w: max group size is %d", ErrGroupFull, maxSize)
	}

	id := newParticipantID()
	participants := current.State().Participants
	participants = append(participants, domain.GroupParticipant{
		ID:         id,
		Name:       details.Name,
		Email:      cloneStr(details.Email),
		Phone:      cloneStr(details.Phone),
		Notes:      cloneStr(details.Notes),
		ServiceIDs: []string{},
	})

	next, err := ApplyPatch(catalog, current, Patch{Participants: Set(participants)})
	if err != nil {
		return nil, "", err
	}
	return next, id, nil
}

// UpdateParticipant обновляет контактные данные участника
func UpdateParticipant(catalog *domain.CatalogSnapshot, current *BookingDraft, participantID string, details ParticipantDetails) (*BookingDraft, error) {
	participants := current.State().Participants
	idx := participantIndex(participants, participantID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: id=%s", ErrParticipantNotFound, participantID)
	}

	participants[idx].Name = details.Name
	participants[idx].Email = cloneStr(details.Email)
	participants[idx].Phone = cloneStr(details.Phone)
	participants[idx].Notes = cloneStr(details.Notes)

	return ApplyPatch(catalog, current, Patch{Participants: Set(participants)})
}

// RemoveParticipant удаляет участника по id
func RemoveParticipant(catalog *domain.CatalogSnapshot, current *BookingDraft, participantID string) (*BookingDraft, error) {
	participants := current.State().Participants
	idx := participantIndex(participants, participantID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: id=%s", ErrParticipantNotFound, participantID)
	}

	participants = slices.Delete(participants, idx, idx+1)
	return ApplyPatch(catalog, current, Patch{Participants: Set(participants)})
}

// ToggleParticipantService добавляет услугу участнику или убирает ее
func ToggleParticipantService(catalog *domain.CatalogSnapshot, current *BookingDraft, participantID, offeringID string) (*BookingDraft, error) {
	participants := current.State().Participants
	idx := participantIndex(participants, participantID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: id=%s", ErrParticipantNotFound, participantID)
	}

	services := participants[idx].ServiceIDs
	if pos := slices.Index(services, offeringID); pos >= 0 {
		participants[idx].ServiceIDs = slices.Delete(services, pos, pos+1)
	} else {
		if _, ok := catalog.Offering(offeringID); !ok {
			return nil, fmt.Errorf("%w: id=%s", ErrUnknownOffering, offeringID)
		}
		if !catalog.GroupSettings.AllowsOffering(offeringID) {
			return nil, fmt.Errorf("%w: id=%s", ErrOfferingExcludedFromGroup, offeringID)
		}
		participants[idx].ServiceIDs = append(services, offeringID)
	}

	return ApplyPatch(catalog, current, Patch{Participants: Set(participants)})
}

func participantIndex(participants []domain.GroupParticipant, id string) int {
	return slices.IndexFunc(participants, func(p domain.GroupParticipant) bool {
		return p.ID == id
	})
}
