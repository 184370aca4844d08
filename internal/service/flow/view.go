package flow

import (
	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

func (s *Service) viewLocked(sess *session) *models.FlowView {
	state := sess.draft.State()
	totals := sess.draft.Totals()
	status := sess.lifecycle.Status()

	view := &models.FlowView{
		FlowID:     sess.id,
		ProviderID: sess.catalog.ProviderID,
		Step:       string(sess.step),
		Warnings:   append([]string(nil), sess.warnings...),
		Totals: models.TotalsView{
			ServicesSubtotal:     totals.ServicesSubtotal,
			AddonsSubtotal:       totals.AddonsSubtotal,
			Total:                totals.Total(),
			DepositDue:           sess.catalog.Settings.DepositPolicy.Due(totals.Total()),
			TotalDurationMinutes: totals.TotalDurationMinutes,
			Currency:             totals.Currency,
		},
		Hold: models.HoldView{
			State:        string(status.State),
			HoldID:       status.HoldID,
			Verified:     status.Verified,
			GateOpen:     status.GateOpen,
			ChallengeURL: status.ChallengeURL,
			BookingID:    status.BookingID,
		},
	}
	if status.State == domain.HoldFinalizing || status.State == domain.HoldDone {
		view.Hold.ContinuationURL = sess.continuationURL
	}

	for _, step := range sess.nav.Steps() {
		view.Steps = append(view.Steps, string(step))
	}

	view.Draft = models.DraftView{
		VenueType:         string(state.VenueType),
		Address:           models.FromDomainAddress(state.Address),
		LocationID:        state.LocationID,
		CategoryID:        state.CategoryID,
		PackageID:         state.PackageID,
		Services:          make([]models.ServiceView, 0, len(state.Services)),
		AddonIDs:          nonNil(state.AddonIDs),
		StaffID:           state.StaffID,
		ResourceIDs:       nonNil(state.ResourceIDs),
		IsGroupBooking:    state.IsGroupBooking,
		Client:            models.FromDomainClient(state.Client),
		FormResponses:     state.FormResponses,
		CustomFieldValues: state.CustomFieldValues,
		PolicyAccepted:    state.PolicyAccepted,
	}
	for _, svc := range state.Services {
		view.Draft.Services = append(view.Draft.Services, models.ServiceView{
			OfferingID:      svc.OfferingID,
			Title:           svc.Title,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
			Currency:        svc.Currency,
		})
	}
	for _, p := range state.Participants {
		view.Draft.Participants = append(view.Draft.Participants, models.ParticipantView{
			ID:         p.ID,
			Name:       p.Name,
			Email:      p.Email,
			Phone:      p.Phone,
			Notes:      p.Notes,
			ServiceIDs: nonNil(p.ServiceIDs),
		})
	}
	if state.Date != nil {
		date := state.Date.Format(domain.DateFormat)
		view.Draft.Date = &date
	}
	if state.Slot != nil {
		view.Draft.Slot = &models.SlotView{Start: state.Slot.Start, End: state.Slot.End, StaffID: state.Slot.StaffID}
	}

	if sess.schedule != nil {
		schedule := &models.ScheduleView{
			Date:            sess.schedule.Date.Format(domain.DateFormat),
			DurationMinutes: sess.schedule.Span.DurationMinutes,
			BufferMinutes:   sess.schedule.Span.BufferMinutes,
			Slots:           make([]models.SlotView, 0, len(sess.schedule.Available)),
		}
		for _, slot := range sess.schedule.Available {
			schedule.Slots = append(schedule.Slots, models.SlotView{Start: slot.Start, End: slot.End, StaffID: slot.StaffID})
		}
		view.Schedule = schedule
	}

	return view
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
