package flow

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/steps"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/plan_availability"
	"github.com/m04kA/SMC-BookingFlow/pkg/phone"
	"github.com/m04kA/SMC-BookingFlow/pkg/ptr"
)

// ApplyPatch применяет частичное изменение черновика
func (s *Service) ApplyPatch(ctx context.Context, flowID string, in models.DraftPatch) (*models.FlowView, error) {
	patch, err := s.toDraftPatch(in)
	if err != nil {
		s.logger.Warn("ApplyPatch: flow=%s rejected: %v", flowID, err)
		return nil, err
	}

	sess, err := s.mutate(ctx, flowID, "ApplyPatch", func(sess *session) (*draft.BookingDraft, error) {
		return draft.ApplyPatch(sess.catalog, sess.draft, patch)
	})
	if err != nil {
		return nil, err
	}

	if patch.Address.IsSet() || patch.VenueType.IsSet() {
		s.geocode(ctx, sess)
	}
	return s.view(sess), nil
}

// ToggleAddon добавляет или убирает дополнение
func (s *Service) ToggleAddon(ctx context.Context, flowID, addonID string) (*models.FlowView, error) {
	sess, err := s.mutate(ctx, flowID, "ToggleAddon", func(sess *session) (*draft.BookingDraft, error) {
		return draft.ToggleAddon(sess.catalog, sess.draft, addonID)
	})
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// SetGroupMode включает или выключает групповую запись
func (s *Service) SetGroupMode(ctx context.Context, flowID string, enabled bool) (*models.FlowView, error) {
	sess, err := s.mutate(ctx, flowID, "SetGroupMode", func(sess *session) (*draft.BookingDraft, error) {
		return draft.SetGroupMode(sess.catalog, sess.draft, enabled)
	})
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// AddParticipant добавляет участника группы и возвращает его id
func (s *Service) AddParticipant(ctx context.Context, flowID string, in models.Participant) (*models.FlowView, string, error) {
	var participantID string
	sess, err := s.mutate(ctx, flowID, "AddParticipant", func(sess *session) (*draft.BookingDraft, error) {
		d, id, err := draft.AddParticipant(sess.catalog, sess.draft, toParticipantDetails(in))
		participantID = id
		return d, err
	})
	if err != nil {
		return nil, "", err
	}
	return s.view(sess), participantID, nil
}

// UpdateParticipant меняет контактные данные участника
func (s *Service) UpdateParticipant(ctx context.Context, flowID, participantID string, in models.Participant) (*models.FlowView, error) {
	sess, err := s.mutate(ctx, flowID, "UpdateParticipant", func(sess *session) (*draft.BookingDraft, error) {
		return draft.UpdateParticipant(sess.catalog, sess.draft, participantID, toParticipantDetails(in))
	})
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// RemoveParticipant удаляет участника группы
func (s *Service) RemoveParticipant(ctx context.Context, flowID, participantID string) (*models.FlowView, error) {
	sess, err := s.mutate(ctx, flowID, "RemoveParticipant", func(sess *session) (*draft.BookingDraft, error) {
		return draft.RemoveParticipant(sess.catalog, sess.draft, participantID)
	})
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// ToggleParticipantService добавляет или убирает услугу участника
func (s *Service) ToggleParticipantService(ctx context.Context, flowID, participantID, offeringID string) (*models.FlowView, error) {
	sess, err := s.mutate(ctx, flowID, "ToggleParticipantService", func(sess *session) (*draft.BookingDraft, error) {
		return draft.ToggleParticipantService(sess.catalog, sess.draft, participantID, offeringID)
	})
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// mutate применяет изменение черновика под мьютексом сессии.
// Если изменились параметры запроса доступности, слоты в полете становятся устаревшими,
// а на шаге schedule слоты запрашиваются заново.
func (s *Service) mutate(ctx context.Context, flowID, op string, fn func(sess *session) (*draft.BookingDraft, error)) (*session, error) {
	sess, err := s.session(flowID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.confirming || !sess.lifecycle.State().CanConfirm() {
		sess.mu.Unlock()
		s.logger.Warn("%s: flow=%s draft is locked by hold state=%s", op, flowID, sess.lifecycle.State())
		return nil, ErrDraftLocked
	}

	before := sess.draft
	next, err := fn(sess)
	if err != nil {
		sess.mu.Unlock()
		s.logger.Warn("%s: flow=%s rejected: %v", op, flowID, err)
		return nil, classify(err)
	}
	sess.draft = next

	replan := false
	if queryChanged(sess.catalog, before, next) {
		sess.tracker.Invalidate()
		sess.schedule = nil
		replan = sess.step == steps.StepSchedule && next.State().Date != nil
	}
	sess.mu.Unlock()

	if replan {
		if err := s.plan(ctx, sess, false); err != nil {
			s.logger.Warn("%s: flow=%s slots not refreshed: %v", op, flowID, err)
		}
	}
	return sess, nil
}

// geocode дополняет адрес выезда на дом координатами. Ошибки не фатальны.
func (s *Service) geocode(ctx context.Context, sess *session) {
	if s.geocoder == nil {
		return
	}

	sess.mu.Lock()
	state := sess.draft.State()
	sess.mu.Unlock()

	if state.VenueType != domain.VenueAtHome || !state.Address.IsComplete() || state.Address.Latitude != nil {
		return
	}

	enriched, err := s.geocoder.Enrich(ctx, state.Address)
	if err != nil {
		s.logger.Warn("ApplyPatch: flow=%s address kept without coordinates: %v", sess.id, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// адрес могли поменять, пока шел запрос
	current := sess.draft.State().Address
	if current == nil || current.String() != state.Address.String() {
		return
	}
	d, err := draft.ApplyPatch(sess.catalog, sess.draft, draft.Patch{Address: draft.Set(enriched)})
	if err != nil {
		s.logger.Warn("ApplyPatch: flow=%s failed to store coordinates: %v", sess.id, err)
		return
	}
	sess.draft = d
}

func (s *Service) toDraftPatch(in models.DraftPatch) (draft.Patch, error) {
	patch := draft.Patch{
		VenueType:         in.VenueType,
		Address:           draft.MapField(in.Address, models.ToDomainAddress),
		LocationID:        in.LocationID,
		CategoryID:        in.CategoryID,
		PackageID:         in.PackageID,
		ServiceIDs:        in.ServiceIDs,
		AddonIDs:          in.AddonIDs,
		StaffID:           in.StaffID,
		ResourceIDs:       in.ResourceIDs,
		FormResponses:     in.FormResponses,
		CustomFieldValues: in.CustomFieldValues,
		PolicyAccepted:    in.PolicyAccepted,
	}

	if in.Date.IsSet() {
		var date *time.Time
		if raw := in.Date.Value(); raw != nil {
			parsed, err := time.Parse(domain.DateFormat, *raw)
			if err != nil {
				return draft.Patch{}, fmt.Errorf("%w: %q", ErrInvalidDate, *raw)
			}
			date = &parsed
		}
		patch.Date = draft.Set(date)
	}

	if in.Client.IsSet() {
		client := models.ToDomainClient(in.Client.Value())
		// номер храним нормализованным; некорректный оставляем как есть для проверки шага intake
		if normalized, err := phone.Normalize(client.Phone, s.opts.DefaultCountryCode); err == nil {
			client.Phone = normalized
		}
		patch.Client = draft.Set(client)
	}

	return patch, nil
}

func toParticipantDetails(in models.Participant) draft.ParticipantDetails {
	return draft.ParticipantDetails{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
		Notes: in.Notes,
	}
}

// queryChanged true, если черновики дают разные запросы доступности
func queryChanged(catalog *domain.CatalogSnapshot, before, after *draft.BookingDraft) bool {
	b, a := before.State(), after.State()
	if (b.Date == nil) != (a.Date == nil) || (b.Date != nil && !b.Date.Equal(*a.Date)) {
		return true
	}

	qb := plan_availability.BuildQuery(catalog, before, time.Time{})
	qa := plan_availability.BuildQuery(catalog, after, time.Time{})
	return qb.StaffID != qa.StaffID ||
		qb.DurationMinutes != qa.DurationMinutes ||
		qb.BufferMinutes != qa.BufferMinutes ||
		!ptr.Equal(qb.LocationID, qa.LocationID) ||
		!slices.Equal(qb.ServiceIDs, qa.ServiceIDs)
}

func (s *Service) view(sess *session) *models.FlowView {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.viewLocked(sess)
}
