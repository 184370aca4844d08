package hold_lifecycle

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
)

// syntheticStaffIDs маркеры "любой мастер", которые нельзя передавать в сервис броней
var syntheticStaffIDs = []string{domain.AnyStaff, "anyone", "auto", "unassigned"}

// validateConfirm проверяет условия подтверждения
func validateConfirm(state draft.State) error {
	if len(state.Services) == 0 {
		return ErrNoServices
	}
	if state.Slot == nil {
		return ErrSlotRequired
	}
	if !state.PolicyAccepted {
		return ErrPolicyNotAccepted
	}
	if state.VenueType == domain.VenueAtHome && !state.Address.IsComplete() {
		return ErrAddressIncomplete
	}
	return nil
}

// ResolveStaffID выбирает мастера для брони: мастер слота приоритетнее выбора в черновике.
// Маркеры "любой мастер" и id, которых нет в каталоге, пропускаются; nil, если мастера не осталось.
func ResolveStaffID(catalog *domain.CatalogSnapshot, slotStaffID, draftStaffID *string) *string {
	for _, candidate := range []*string{slotStaffID, draftStaffID} {
		if candidate == nil {
			continue
		}
		id := strings.TrimSpace(*candidate)
		if id == "" || isSyntheticStaff(id) {
			continue
		}
		// список мастеров мог не загрузиться, тогда доверяем id как есть
		if len(catalog.Staff) > 0 {
			if _, ok := catalog.StaffMember(id); !ok {
				continue
			}
		}
		return &id
	}
	return nil
}

func isSyntheticStaff(id string) bool {
	lower := strings.ToLower(id)
	for _, marker := range syntheticStaffIDs {
		if lower == marker || strings.HasPrefix(lower, marker+"-") || strings.HasPrefix(lower, marker+"_") {
			return true
		}
	}
	return false
}

// buildHoldRequest формирует запрос на создание брони из черновика
func buildHoldRequest(catalog *domain.CatalogSnapshot, state draft.State) domain.HoldRequest {
	services := make([]domain.HoldService, 0, len(state.Services))
	for _, svc := range state.Services {
		services = append(services, domain.HoldService{
			OfferingID:      svc.OfferingID,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		})
	}

	req := domain.HoldRequest{
		ProviderID:   catalog.ProviderID,
		StaffID:      ResolveStaffID(catalog, state.Slot.StaffID, state.StaffID),
		Services:     services,
		Start:        state.Slot.Start,
		End:          state.Slot.End,
		LocationType: state.VenueType,
		ResourceIDs:  state.ResourceIDs,
	}
	if state.VenueType == domain.VenueAtHome {
		req.Address = state.Address
	} else {
		req.LocationID = state.LocationID
	}
	if state.IsGroupBooking {
		req.Participants = state.Participants
	}
	return req
}

// buildSnapshot данные черновика для продолжения после redirect
func buildSnapshot(flowID, holdID string, state draft.State, createdAt time.Time) *domain.ContinuationSnapshot {
	snap := &domain.ContinuationSnapshot{
		Version:           domain.ContinuationVersion,
		FlowID:            flowID,
		HoldID:            holdID,
		Client:            state.Client,
		AddonIDs:          state.AddonIDs,
		SpecialRequests:   state.Client.SpecialRequests,
		FormResponses:     state.FormResponses,
		CustomFieldValues: state.CustomFieldValues,
		CreatedAt:         createdAt,
	}
	if state.IsGroupBooking {
		snap.Participants = state.Participants
	}
	return snap
}
