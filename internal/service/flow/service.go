package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/steps"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/hold_lifecycle"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/plan_availability"
)

// Options настройки сервиса
type Options struct {
	SessionTTL            time.Duration
	CatalogTTL            time.Duration
	DefaultCountryCode    string
	ContinuationKeyPrefix string
}

// Service сервис сессий онлайн-записи: хранит черновик на сервере и
// проводит его через шаги, доступность и жизненный цикл брони
type Service struct {
	catalogClient CatalogClient
	geocoder      Geocoder
	waitlist      WaitlistClient
	planner       AvailabilityPlanner
	holds         HoldManager
	continuations ContinuationReader
	metrics       Metrics

	sessions *sessionStore
	catalogs *cache.Cache

	opts         Options
	newID        func() string
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	catalogClient CatalogClient,
	geocoder Geocoder,
	waitlist WaitlistClient,
	planner AvailabilityPlanner,
	holds HoldManager,
	continuations ContinuationReader,
	metrics Metrics,
	opts Options,
	logger Logger,
) *Service {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}
	if opts.CatalogTTL <= 0 {
		opts.CatalogTTL = 5 * time.Minute
	}

	s := &Service{
		catalogClient: catalogClient,
		geocoder:      geocoder,
		waitlist:      waitlist,
		planner:       planner,
		holds:         holds,
		continuations: continuations,
		metrics:       metrics,
		catalogs:      cache.New(opts.CatalogTTL, opts.CatalogTTL),
		opts:          opts,
		newID:         uuid.NewString,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
	s.sessions = newSessionStore(opts.SessionTTL, s.reportActive)
	return s
}

// Start открывает новую сессию записи к провайдеру
func (s *Service) Start(ctx context.Context, providerID string, link models.DeepLink) (*models.FlowView, error) {
	s.logger.Info("Start: opening flow for provider=%s", providerID)

	// 1. Загружаем каталог (из кеша, если есть)
	catalog, warnings, err := s.loadCatalog(ctx, providerID)
	if err != nil {
		s.logger.Error("Start: catalog unavailable for provider=%s: %v", providerID, err)
		return nil, classify(err)
	}

	// 2. Создаем черновик с предвыбором из deep link
	seed := draft.Seed{
		ServiceID:  link.ServiceID,
		StaffID:    link.StaffID,
		LocationID: link.LocationID,
	}
	if link.Date != nil {
		date, err := time.Parse(domain.DateFormat, *link.Date)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("deep link date ignored: %q", *link.Date))
		} else {
			seed.Date = &date
		}
	}
	d, seedWarnings := draft.New(catalog, seed)
	warnings = append(warnings, seedWarnings...)
	if catalog.IsEmpty() {
		warnings = append(warnings, "provider has no bookable services")
	}

	// 3. Регистрируем сессию
	nav := steps.NewNavigator(catalog.Settings, catalog.GroupSettings)
	sess := &session{
		id:        s.newID(),
		catalog:   catalog,
		warnings:  warnings,
		nav:       nav,
		step:      nav.First(),
		draft:     d,
		tracker:   &plan_availability.RequestTracker{},
		lifecycle: hold_lifecycle.NewLifecycle(),
	}
	s.sessions.put(sess)
	s.reportActive(s.sessions.count())

	s.logger.Info("Start: flow=%s opened for provider=%s, steps=%v, warnings=%d",
		sess.id, providerID, nav.Steps(), len(warnings))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.viewLocked(sess), nil
}

// Get возвращает текущее состояние сессии
func (s *Service) Get(ctx context.Context, flowID string) (*models.FlowView, error) {
	sess, err := s.session(flowID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.viewLocked(sess), nil
}

// Abandon закрывает сессию и освобождает данные продолжения
func (s *Service) Abandon(ctx context.Context, flowID string) error {
	sess, err := s.session(flowID)
	if err != nil {
		return err
	}

	sess.tracker.Invalidate()
	s.holds.Abandon(ctx, sess.lifecycle, flowID)
	s.sessions.remove(flowID)
	s.reportActive(s.sessions.count())

	s.logger.Info("Abandon: flow=%s closed", flowID)
	return nil
}

func (s *Service) session(flowID string) (*session, error) {
	sess, ok := s.sessions.get(flowID)
	if !ok {
		return nil, fmt.Errorf("%w: flow=%s", ErrSessionNotFound, flowID)
	}
	return sess, nil
}

// loadCatalog загружает каталог. Кешируются только каталоги, загруженные без деградации.
func (s *Service) loadCatalog(ctx context.Context, providerID string) (*domain.CatalogSnapshot, []string, error) {
	if v, ok := s.catalogs.Get(providerID); ok {
		entry := v.(*catalogEntry)
		return entry.snapshot, append([]string(nil), entry.warnings...), nil
	}

	snapshot, warnings, err := s.catalogClient.GetCatalog(ctx, providerID)
	if err != nil {
		return nil, nil, err
	}
	if len(warnings) == 0 {
		s.catalogs.SetDefault(providerID, &catalogEntry{snapshot: snapshot})
	}
	return snapshot, warnings, nil
}

// holdRequestLocked запрос к менеджеру брони по текущему черновику
func (s *Service) holdRequestLocked(sess *session) *hold_lifecycle.Request {
	return &hold_lifecycle.Request{
		FlowID:  sess.id,
		Catalog: sess.catalog,
		Draft:   sess.draft,
	}
}

func (s *Service) stepOptions() steps.Options {
	return steps.Options{DefaultCountryCode: s.opts.DefaultCountryCode}
}

func (s *Service) reportActive(n int) {
	if s.metrics != nil {
		s.metrics.SetActiveFlows(n)
	}
}
