package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/steps"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
	"github.com/m04kA/SMC-BookingFlow/pkg/ptr"
)

// Next переходит к следующему шагу, если текущий завершен.
// Шаг категории с единственной категорией выбирается и пропускается автоматически.
// Вход на schedule запрашивает слоты либо открывает identity gate, если личность
// нужно подтвердить до выбора времени.
func (s *Service) Next(ctx context.Context, flowID string) (*models.FlowView, error) {
	sess, err := s.session(flowID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	current := sess.step
	if err := steps.CanAdvance(current, sess.catalog, sess.draft, s.stepOptions()); err != nil {
		sess.mu.Unlock()
		s.logger.Info("Next: flow=%s step=%s incomplete: %v", flowID, current, err)
		return nil, classify(err)
	}

	next, err := sess.nav.Next(current)
	if err != nil {
		sess.mu.Unlock()
		return nil, classify(err)
	}
	for steps.AutoSkips(next, sess.catalog) {
		s.autoSelectCategoryLocked(sess)
		after, err := sess.nav.Next(next)
		if err != nil {
			break
		}
		next = after
	}
	sess.step = next
	sess.mu.Unlock()

	s.logger.Info("Next: flow=%s %s -> %s", flowID, current, next)

	if next == steps.StepSchedule {
		if err := s.enterSchedule(ctx, sess); err != nil {
			return nil, err
		}
	}
	return s.view(sess), nil
}

// Back возвращается на предыдущий шаг, минуя автоматически пропускаемые
func (s *Service) Back(ctx context.Context, flowID string) (*models.FlowView, error) {
	sess, err := s.session(flowID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	prev, err := sess.nav.Previous(sess.step)
	if err != nil {
		return nil, classify(err)
	}
	for steps.AutoSkips(prev, sess.catalog) {
		before, err := sess.nav.Previous(prev)
		if err != nil {
			break
		}
		prev = before
	}

	s.logger.Info("Back: flow=%s %s -> %s", flowID, sess.step, prev)
	sess.step = prev
	return s.viewLocked(sess), nil
}

// JumpToReview переходит на review, если все предыдущие шаги завершены
func (s *Service) JumpToReview(ctx context.Context, flowID string) (*models.FlowView, error) {
	sess, err := s.session(flowID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	for _, step := range sess.nav.Steps() {
		if step == steps.StepReview {
			break
		}
		if steps.AutoSkips(step, sess.catalog) {
			s.autoSelectCategoryLocked(sess)
		}
		if err := steps.CanAdvance(step, sess.catalog, sess.draft, s.stepOptions()); err != nil {
			s.logger.Info("JumpToReview: flow=%s blocked at step=%s: %v", flowID, step, err)
			return nil, classify(fmt.Errorf("step %s: %w", step, err))
		}
	}

	sess.step = steps.StepReview
	return s.viewLocked(sess), nil
}

func (s *Service) autoSelectCategoryLocked(sess *session) {
	if sess.draft.State().CategoryID != nil || len(sess.catalog.Categories) != 1 {
		return
	}
	d, err := draft.ApplyPatch(sess.catalog, sess.draft, draft.Patch{
		CategoryID: draft.Set(ptr.Ptr(sess.catalog.Categories[0].ID)),
	})
	if err == nil {
		sess.draft = d
	}
}

// enterSchedule запускает действия входа на шаг schedule
func (s *Service) enterSchedule(ctx context.Context, sess *session) error {
	sess.mu.Lock()
	needsGate := sess.catalog.Settings.RequireAuthStep == domain.AuthBeforeTimeSelection && !sess.lifecycle.Verified()
	gateOpen := sess.lifecycle.Status().GateOpen
	if !needsGate && sess.draft.State().Date == nil {
		today := s.timeProvider.Now()
		if d, err := draft.ApplyPatch(sess.catalog, sess.draft, draft.Patch{Date: draft.Set(&today)}); err == nil {
			sess.draft = d
		}
	}
	req := s.holdRequestLocked(sess)
	sess.mu.Unlock()

	if needsGate {
		if gateOpen {
			return nil
		}
		// черновик остается как есть, слоты запросим после проверки
		if _, err := s.holds.StartPreSlotGate(ctx, sess.lifecycle, req); err != nil {
			s.logger.Error("Next: flow=%s failed to open identity gate: %v", sess.id, err)
			return classify(err)
		}
		return nil
	}

	if err := s.plan(ctx, sess, false); err != nil {
		if errors.Is(err, ErrStaleState) {
			return nil
		}
		return err
	}
	return nil
}
