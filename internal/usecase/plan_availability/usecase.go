package plan_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
)

const (
	outcomeOK    = "ok"
	outcomeEmpty = "empty"
	outcomeStale = "stale"
	outcomeError = "error"
)

// UseCase планировщик запросов доступности
type UseCase struct {
	client       AvailabilityClient
	limiter      Limiter
	metrics      Metrics
	maxScanDays  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// maxScanDays ограничивает поиск ближайшего дня сверху (0 = domain.NextAvailableMaxDays).
func NewUseCase(
	client AvailabilityClient,
	limiter Limiter,
	metrics Metrics,
	maxScanDays int,
	logger Logger,
) *UseCase {
	if maxScanDays <= 0 {
		maxScanDays = domain.NextAvailableMaxDays
	}
	return &UseCase{
		client:       client,
		limiter:      limiter,
		metrics:      metrics,
		maxScanDays:  maxScanDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute запрашивает слоты на выбранную в черновике дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	state := req.Draft.State()
	if state.Date == nil {
		return nil, ErrDateRequired
	}
	if len(state.Services) == 0 {
		return nil, ErrNoServices
	}

	uc.logger.Info("PlanAvailability: provider=%s, date=%s, seq=%d",
		req.Catalog.ProviderID, state.Date.Format(domain.DateFormat), req.Seq)

	resp, err := uc.queryDay(ctx, req.Catalog, req.Draft, *state.Date)
	if err != nil {
		return nil, err
	}
	resp.Seq = req.Seq

	if req.Tracker != nil && !req.Tracker.IsLatest(req.Seq) {
		uc.observe(outcomeStale, 0)
		uc.logger.Info("PlanAvailability: dropping stale result seq=%d", req.Seq)
		return nil, ErrStaleResult
	}

	return resp, nil
}

// FindNextAvailable ищет первый день с доступным слотом.
// Дни опрашиваются последовательно, с темпом limiter. Поиск начинается со дня после
// выбранной даты (или с сегодняшнего дня) и ограничен min(maxScanDays, maxAdvanceDays).
func (uc *UseCase) FindNextAvailable(ctx context.Context, req *Request) (*Response, error) {
	state := req.Draft.State()
	if len(state.Services) == 0 {
		return nil, ErrNoServices
	}

	// 1. Определяем окно поиска
	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today
	if state.Date != nil && !state.Date.Before(today) {
		start = state.Date.AddDate(0, 0, 1)
	}

	window := uc.maxScanDays
	maxAdvance := req.Catalog.Settings.MaxAdvanceDays
	if maxAdvance > 0 && maxAdvance < window {
		window = maxAdvance
	}
	var lastDay time.Time
	if maxAdvance > 0 {
		lastDay = today.AddDate(0, 0, maxAdvance)
	}

	uc.logger.Info("FindNextAvailable: provider=%s, from=%s, window=%d days, seq=%d",
		req.Catalog.ProviderID, start.Format(domain.DateFormat), window, req.Seq)

	// 2. Последовательно опрашиваем дни
	for i := 0; i < window; i++ {
		day := start.AddDate(0, 0, i)
		if !lastDay.IsZero() && day.After(lastDay) {
			break
		}

		if err := uc.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: scan interrupted: %v", ErrAvailabilityFailed, err)
		}

		if req.Tracker != nil && !req.Tracker.IsLatest(req.Seq) {
			uc.observe(outcomeStale, 0)
			uc.logger.Info("FindNextAvailable: scan superseded at %s, seq=%d", day.Format(domain.DateFormat), req.Seq)
			return nil, ErrStaleResult
		}

		resp, err := uc.queryDay(ctx, req.Catalog, req.Draft, day)
		if err != nil {
			return nil, err
		}
		if resp.HasAvailability() {
			resp.Seq = req.Seq
			uc.logger.Info("FindNextAvailable: found %d slots on %s", len(resp.Available), day.Format(domain.DateFormat))
			return resp, nil
		}
	}

	uc.logger.Info("FindNextAvailable: no availability in %d days from %s", window, start.Format(domain.DateFormat))
	return nil, ErrNoAvailability
}

// BuildQuery формирует параметры запроса доступности на день
func BuildQuery(catalog *domain.CatalogSnapshot, d *draft.BookingDraft, day time.Time) domain.AvailabilityQuery {
	state := d.State()
	span := ComputeSpan(catalog, d)
	ids := d.OfferingIDs()

	query := domain.AvailabilityQuery{
		ProviderID:       catalog.ProviderID,
		Date:             day,
		ServiceIDs:       ids,
		StaffID:          domain.AnyStaff,
		DurationMinutes:  span.DurationMinutes,
		BufferMinutes:    span.BufferMinutes,
		MinNoticeMinutes: catalog.Settings.MinNoticeMinutes,
		MaxAdvanceDays:   catalog.Settings.MaxAdvanceDays,
	}
	if len(ids) > 0 {
		query.ServiceID = ids[0]
	}
	if state.StaffID != nil && *state.StaffID != "" {
		query.StaffID = *state.StaffID
	}
	if state.VenueType == domain.VenueAtSalon && state.LocationID != nil {
		query.LocationID = state.LocationID
	}
	return query
}

func (uc *UseCase) queryDay(ctx context.Context, catalog *domain.CatalogSnapshot, d *draft.BookingDraft, day time.Time) (*Response, error) {
	query := BuildQuery(catalog, d, day)

	started := uc.timeProvider.Now()
	slots, err := uc.client.GetAvailability(ctx, query)
	elapsed := uc.timeProvider.Now().Sub(started).Seconds()
	if err != nil {
		uc.observe(outcomeError, elapsed)
		uc.logger.Error("PlanAvailability: lookup failed for %s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrAvailabilityFailed, err)
	}

	available := domain.FilterAvailable(slots)
	if len(available) == 0 {
		uc.observe(outcomeEmpty, elapsed)
	} else {
		uc.observe(outcomeOK, elapsed)
	}

	return &Response{
		Date:      day,
		Span:      domain.Span{DurationMinutes: query.DurationMinutes, BufferMinutes: query.BufferMinutes},
		Slots:     slots,
		Available: available,
	}, nil
}

func (uc *UseCase) observe(outcome string, seconds float64) {
	if uc.metrics != nil {
		uc.metrics.ObserveAvailability(outcome, seconds)
	}
}
