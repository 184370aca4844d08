package flow

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/plan_availability"
	"github.com/m04kA/SMC-BookingFlow/pkg/ptr"
)

// RefreshSlots заново запрашивает слоты на выбранную дату
func (s *Service) RefreshSlots(ctx context.Context, flowID string) (*models.FlowView, error) {
	sess, err := s.session(flowID)
	if err != nil {
		return nil, err
	}
	if err := s.plan(ctx, sess, false); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// FindNextAvailable ищет ближайший день со свободными слотами и выбирает его
func (s *Service) FindNextAvailable(ctx context.Context, flowID string) (*models.FlowView, error) {
	sess, err := s.session(flowID)
	if err != nil {
		return nil, err
	}
	if err := s.plan(ctx, sess, true); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// SelectSlot выбирает слот из последнего списка доступных
func (s *Service) SelectSlot(ctx context.Context, flowID string, in models.SelectSlotRequest) (*models.FlowView, error) {
	sess, err := s.mutate(ctx, flowID, "SelectSlot", func(sess *session) (*draft.BookingDraft, error) {
		if sess.schedule == nil {
			return nil, ErrSlotNotOffered
		}
		for _, slot := range sess.schedule.Available {
			if !slot.Start.Equal(in.Start) {
				continue
			}
			if in.StaffID != nil && !ptr.Equal(slot.StaffID, in.StaffID) {
				continue
			}
			return draft.ApplyPatch(sess.catalog, sess.draft, draft.Patch{
				Slot: draft.Set(&draft.SelectedSlot{Start: slot.Start, End: slot.End, StaffID: slot.StaffID}),
			})
		}
		return nil, ErrSlotNotOffered
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("SelectSlot: flow=%s slot %s selected", flowID, in.Start.Format(domain.TimeFormat))
	return s.view(sess), nil
}

// plan выполняет запрос доступности вне мьютекса сессии и применяет результат,
// только если за это время не было более нового запроса
func (s *Service) plan(ctx context.Context, sess *session, findNext bool) error {
	sess.mu.Lock()
	if sess.catalog.Settings.RequireAuthStep == domain.AuthBeforeTimeSelection && !sess.lifecycle.Verified() {
		sess.mu.Unlock()
		return ErrIdentityRequired
	}
	if findNext && (sess.confirming || !sess.lifecycle.State().CanConfirm()) {
		sess.mu.Unlock()
		return ErrDraftLocked
	}
	seq := sess.tracker.Begin()
	req := &plan_availability.Request{
		Catalog: sess.catalog,
		Draft:   sess.draft,
		Tracker: sess.tracker,
		Seq:     seq,
	}
	sess.mu.Unlock()

	var (
		resp *plan_availability.Response
		err  error
	)
	if findNext {
		resp, err = s.planner.FindNextAvailable(ctx, req)
	} else {
		resp, err = s.planner.Execute(ctx, req)
	}
	if err != nil {
		if !errors.Is(err, plan_availability.ErrStaleResult) {
			s.logger.Warn("PlanAvailability: flow=%s seq=%d failed: %v", sess.id, seq, err)
		}
		return classify(err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.tracker.IsLatest(seq) {
		s.logger.Info("PlanAvailability: flow=%s result seq=%d superseded", sess.id, seq)
		return classify(plan_availability.ErrStaleResult)
	}
	if findNext {
		date := resp.Date
		d, err := draft.ApplyPatch(sess.catalog, sess.draft, draft.Patch{Date: draft.Set(&date)})
		if err != nil {
			return classify(err)
		}
		sess.draft = d
	}
	sess.schedule = resp
	return nil
}
