package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/steps"
	"github.com/m04kA/SMC-BookingFlow/internal/infra/storage/continuation"
	"github.com/m04kA/SMC-BookingFlow/internal/integrations/platform"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/hold_lifecycle"
	"github.com/m04kA/SMC-BookingFlow/pkg/phone"
)

// Confirm создает бронь по выбранному слоту и открывает identity gate.
// Повторный confirm во время подтверждения возвращает текущее состояние без новой брони.
func (s *Service) Confirm(ctx context.Context, flowID string) (*models.FlowView, error) {
	sess, err := s.session(flowID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.confirming {
		sess.mu.Unlock()
		s.logger.Info("Confirm: flow=%s duplicate submit ignored", flowID)
		return s.view(sess), nil
	}
	sess.confirming = true
	req := s.holdRequestLocked(sess)
	sess.mu.Unlock()

	res, err := s.holds.Confirm(ctx, sess.lifecycle, req)

	sess.mu.Lock()
	sess.confirming = false
	if err != nil {
		// слот заняли, пока клиент заполнял анкету: время нужно выбрать заново
		if errors.Is(err, platform.ErrSlotTaken) {
			s.resetScheduleLocked(sess)
		}
		sess.mu.Unlock()
		s.logger.Warn("Confirm: flow=%s failed: %v", flowID, err)
		return nil, classify(err)
	}
	s.applyResultLocked(sess, res)
	sess.mu.Unlock()

	return s.view(sess), nil
}

// CompleteGate применяет результат identity gate, пришедший на callback.
// Результат принимается только для challenge, открытого в этой сессии.
func (s *Service) CompleteGate(ctx context.Context, flowID, challengeID, outcome string) (*models.FlowView, error) {
	sess, err := s.session(flowID)
	if err != nil {
		return nil, err
	}

	res, err := s.holds.CompleteGate(ctx, sess.lifecycle, flowID, challengeID, domain.GateOutcome(outcome))
	if err != nil {
		s.logger.Warn("CompleteGate: flow=%s challenge=%s outcome=%s rejected: %v", flowID, challengeID, outcome, err)
		return nil, classify(err)
	}

	sess.mu.Lock()
	s.applyResultLocked(sess, res)
	// проверка до выбора времени пройдена: теперь можно показать слоты
	replan := res.HoldID == "" && sess.lifecycle.Verified() && sess.step == steps.StepSchedule
	sess.mu.Unlock()

	if replan {
		if err := s.enterSchedule(ctx, sess); err != nil {
			s.logger.Warn("CompleteGate: flow=%s slots not loaded: %v", flowID, err)
		}
	}
	return s.view(sess), nil
}

// RetryGate повторно открывает identity gate: для созданной брони или до выбора времени
func (s *Service) RetryGate(ctx context.Context, flowID string) (*models.FlowView, error) {
	sess, err := s.session(flowID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	req := s.holdRequestLocked(sess)
	preSlot := sess.lifecycle.State() != domain.HoldHeld &&
		sess.step == steps.StepSchedule &&
		sess.catalog.Settings.RequireAuthStep == domain.AuthBeforeTimeSelection &&
		!sess.lifecycle.Verified()
	sess.mu.Unlock()

	var res *hold_lifecycle.Result
	if preSlot {
		res, err = s.holds.StartPreSlotGate(ctx, sess.lifecycle, req)
	} else {
		res, err = s.holds.RetryGate(ctx, sess.lifecycle, req)
	}
	if err != nil {
		s.logger.Warn("RetryGate: flow=%s failed: %v", flowID, err)
		return nil, classify(err)
	}

	sess.mu.Lock()
	s.applyResultLocked(sess, res)
	sess.mu.Unlock()
	return s.view(sess), nil
}

// Finalize подтверждает запись по брони.
// Если бронь истекла, клиент возвращается на выбор времени.
func (s *Service) Finalize(ctx context.Context, flowID string) (*models.FlowView, error) {
	sess, err := s.session(flowID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	req := s.holdRequestLocked(sess)
	sess.mu.Unlock()

	res, err := s.holds.Finalize(ctx, sess.lifecycle, req)
	if err != nil {
		if errors.Is(err, hold_lifecycle.ErrHoldExpired) {
			sess.mu.Lock()
			s.resetScheduleLocked(sess)
			sess.mu.Unlock()
		}
		s.logger.Warn("Finalize: flow=%s failed: %v", flowID, err)
		return nil, classify(err)
	}

	sess.mu.Lock()
	s.applyResultLocked(sess, res)
	sess.mu.Unlock()
	return s.view(sess), nil
}

// Resume продолжает сессию после redirect identity gate.
// Данные продолжения читаются один раз; повторный вызов вернет ErrContinuationNotFound.
func (s *Service) Resume(ctx context.Context, flowID, holdID string) (*models.FlowView, error) {
	sess, err := s.session(flowID)
	if err != nil {
		return nil, err
	}

	if current := sess.lifecycle.HoldID(); current == "" || current != holdID {
		s.logger.Warn("Resume: flow=%s hold=%s does not match active hold=%q", flowID, holdID, current)
		return nil, ErrHoldMismatch
	}

	key := domain.ContinuationKey(s.opts.ContinuationKeyPrefix, flowID, holdID)
	snapshot, err := s.continuations.Take(ctx, key)
	if err != nil {
		if errors.Is(err, continuation.ErrNotFound) {
			s.logger.Info("Resume: flow=%s continuation for hold=%s not found", flowID, holdID)
			return nil, ErrContinuationNotFound
		}
		s.logger.Error("Resume: flow=%s failed to read continuation: %v", flowID, err)
		return nil, fmt.Errorf("%w: %w", ErrTransient, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// восстанавливаем только анкету: услуги, слот и участники уже в брони
	d, err := draft.ApplyPatch(sess.catalog, sess.draft, draft.Patch{
		Client:            draft.Set(snapshot.Client),
		AddonIDs:          draft.Set(snapshot.AddonIDs),
		FormResponses:     draft.Set(snapshot.FormResponses),
		CustomFieldValues: draft.Set(snapshot.CustomFieldValues),
	})
	if err != nil {
		s.logger.Warn("Resume: flow=%s snapshot not applied: %v", flowID, err)
		return nil, classify(err)
	}
	sess.draft = d
	sess.step = steps.StepReview

	s.logger.Info("Resume: flow=%s restored from continuation of hold=%s", flowID, holdID)
	return s.viewLocked(sess), nil
}

// JoinWaitlist записывает клиента в лист ожидания по текущему выбору услуг
func (s *Service) JoinWaitlist(ctx context.Context, flowID string, in models.WaitlistRequest) (*models.WaitlistResponse, error) {
	sess, err := s.session(flowID)
	if err != nil {
		return nil, err
	}

	if in.Name == "" || (in.Email == "" && in.Phone == "") {
		return nil, ErrWaitlistContact
	}
	phoneNumber := in.Phone
	if phoneNumber != "" {
		normalized, err := phone.Normalize(phoneNumber, s.opts.DefaultCountryCode)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		phoneNumber = normalized
	}

	sess.mu.Lock()
	state := sess.draft.State()
	req := domain.WaitlistRequest{
		ProviderID:     sess.catalog.ProviderID,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          phoneNumber,
		OfferingIDs:    sess.draft.OfferingIDs(),
		PreferredStart: in.PreferredStart,
		PreferredEnd:   in.PreferredEnd,
		Notes:          in.Notes,
	}
	sess.mu.Unlock()

	if len(req.OfferingIDs) == 0 {
		return nil, fmt.Errorf("%w: no services selected", ErrValidation)
	}
	if state.StaffID != nil && *state.StaffID != domain.AnyStaff {
		req.StaffID = state.StaffID
	}

	switch {
	case in.PreferredDate != nil:
		date, err := time.Parse(domain.DateFormat, *in.PreferredDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, *in.PreferredDate)
		}
		req.PreferredDate = date
	case state.Date != nil:
		req.PreferredDate = *state.Date
	default:
		req.PreferredDate = s.timeProvider.Now()
	}

	entry, err := s.waitlist.JoinWaitlist(ctx, req)
	if err != nil {
		s.logger.Error("JoinWaitlist: flow=%s failed: %v", flowID, err)
		return nil, classify(err)
	}

	s.logger.Info("JoinWaitlist: flow=%s entry=%s created", flowID, entry.ID)
	return &models.WaitlistResponse{ID: entry.ID, CreatedAt: entry.CreatedAt}, nil
}

func (s *Service) applyResultLocked(sess *session, res *hold_lifecycle.Result) {
	if res != nil && res.ContinuationURL != "" {
		sess.continuationURL = res.ContinuationURL
	}
}

// resetScheduleLocked сбрасывает слот и возвращает сессию на выбор времени
func (s *Service) resetScheduleLocked(sess *session) {
	d, err := draft.ApplyPatch(sess.catalog, sess.draft, draft.Patch{Slot: draft.Set[*draft.SelectedSlot](nil)})
	if err == nil {
		sess.draft = d
	}
	sess.tracker.Invalidate()
	sess.schedule = nil
	sess.continuationURL = ""
	if sess.nav.Contains(steps.StepSchedule) {
		sess.step = steps.StepSchedule
	}
}
