package flow

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
	"github.com/m04kA/SMC-BookingFlow/internal/infra/storage/continuation"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/hold_lifecycle"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/plan_availability"
	"github.com/m04kA/SMC-BookingFlow/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	testNow    = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	testToday  = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	slotTen    = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	slotEleven = time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
)

func testCatalog() *domain.CatalogSnapshot {
	return &domain.CatalogSnapshot{
		ProviderID: "salon-1",
		Locations:  []domain.Location{{ID: "loc-main", Name: "Main", IsPrimary: true}},
		Categories: []domain.Category{{ID: "hair", Name: "Hair"}},
		Offerings: []domain.Offering{
			{ID: "cut", Title: "Cut", DurationMinutes: 60, Price: 350, Currency: "ZAR", CategoryID: ptr.Ptr("hair"), BufferMinutes: 10, SupportsAtHome: true},
			{ID: "wash", Title: "Wash", DurationMinutes: 30, Price: 100, Currency: "ZAR", CategoryID: ptr.Ptr("hair")},
		},
		VariantsByOffering: map[string][]domain.Offering{},
		Addons:             []domain.Addon{{ID: "mask", OfferingID: "cut", Title: "Mask", Price: 50}},
		Staff:              []domain.Staff{{ID: "anna", Name: "Anna"}},
		Settings: domain.Settings{
			StaffSelectionMode: domain.StaffAnyoneDefault,
			RequireAuthStep:    domain.AuthAtCheckout,
			MaxAdvanceDays:     60,
			DepositPolicy:      domain.DepositPolicy{Kind: domain.DepositPercentage, Amount: 20},
		},
		GroupSettings: domain.GroupBookingSettings{MaxGroupSize: domain.DefaultMaxGroupSize},
	}
}

type fakeCatalog struct {
	mu       sync.Mutex
	snapshot *domain.CatalogSnapshot
	warnings []string
	err      error
	calls    int
}

func (f *fakeCatalog) GetCatalog(ctx context.Context, providerID string) (*domain.CatalogSnapshot, []string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.snapshot, append([]string(nil), f.warnings...), nil
}

// fakeAvailability отдает слоты по дням. onCall вызывается один раз до ответа,
// вне мьютекса, чтобы имитировать действие клиента во время запроса.
type fakeAvailability struct {
	mu      sync.Mutex
	byDay   map[string][]domain.AvailableSlot
	err     error
	queries []domain.AvailabilityQuery
	onCall  func()
	// respond если задан, заменяет byDay
	respond func(query domain.AvailabilityQuery) []domain.AvailableSlot
}

func (f *fakeAvailability) GetAvailability(ctx context.Context, query domain.AvailabilityQuery) ([]domain.AvailableSlot, error) {
	f.mu.Lock()
	hook := f.onCall
	f.onCall = nil
	f.mu.Unlock()

	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	if f.respond != nil {
		return f.respond(query), nil
	}
	return f.byDay[query.Date.Format(domain.DateFormat)], nil
}

func (f *fakeAvailability) calls() []domain.AvailabilityQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.AvailabilityQuery(nil), f.queries...)
}

type nopLimiter struct{}

func (nopLimiter) Wait(context.Context) error { return nil }

type fakeHolds struct {
	mu        sync.Mutex
	created   []domain.HoldRequest
	createErr error
	commitErr error
	commits   []domain.CommitRequest
}

func (f *fakeHolds) CreateHold(ctx context.Context, req domain.HoldRequest, key string) (*domain.Hold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Hold{ID: fmt.Sprintf("hold-%d", len(f.created))}, nil
}

func (f *fakeHolds) CommitHold(ctx context.Context, req domain.CommitRequest) (*domain.BookingConfirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits = append(f.commits, req)
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	return &domain.BookingConfirmation{BookingID: "booking-1", HoldID: req.HoldID, Status: "confirmed"}, nil
}

type fakeGate struct {
	mu       sync.Mutex
	requests []domain.GateChallengeRequest
}

func (g *fakeGate) StartChallenge(ctx context.Context, req domain.GateChallengeRequest) (*domain.GateChallenge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return &domain.GateChallenge{ID: "ch-1", URL: "https://id.example.com/ch-1"}, nil
}

// memStore хранилище продолжений в памяти с одноразовым чтением
type memStore struct {
	mu    sync.Mutex
	items map[string]*domain.ContinuationSnapshot
}

func (m *memStore) Save(ctx context.Context, key string, snap *domain.ContinuationSnapshot, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = snap
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *memStore) Take(ctx context.Context, key string) (*domain.ContinuationSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.items[key]
	if !ok {
		return nil, continuation.ErrNotFound
	}
	delete(m.items, key)
	return snap, nil
}

type fakeGeocoder struct {
	calls int
	err   error
}

func (g *fakeGeocoder) Enrich(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	g.calls++
	if g.err != nil {
		return address, g.err
	}
	enriched := *address
	enriched.Latitude = ptr.Ptr(-33.92)
	enriched.Longitude = ptr.Ptr(18.42)
	return &enriched, nil
}

type fakeWaitlist struct {
	requests []domain.WaitlistRequest
}

func (w *fakeWaitlist) JoinWaitlist(ctx context.Context, req domain.WaitlistRequest) (*domain.WaitlistEntry, error) {
	w.requests = append(w.requests, req)
	return &domain.WaitlistEntry{ID: "wl-1", CreatedAt: testNow}, nil
}

type gaugeMetrics struct {
	mu     sync.Mutex
	active int
}

func (m *gaugeMetrics) SetActiveFlows(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = n
}

func (m *gaugeMetrics) value() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

type env struct {
	svc          *Service
	catalog      *fakeCatalog
	availability *fakeAvailability
	holds        *fakeHolds
	gate         *fakeGate
	store        *memStore
	geocoder     *fakeGeocoder
	waitlist     *fakeWaitlist
	metrics      *gaugeMetrics
}

func newEnv(t *testing.T, catalog *domain.CatalogSnapshot) *env {
	t.Helper()
	slots := map[string][]domain.AvailableSlot{
		"2026-03-10": {
			{Start: slotTen, End: slotTen.Add(time.Hour), StaffID: ptr.Ptr("anna")},
			{Start: slotEleven, End: slotEleven.Add(time.Hour), IsAvailable: ptr.Ptr(false)},
		},
	}
	e := &env{
		catalog:      &fakeCatalog{snapshot: catalog},
		availability: &fakeAvailability{byDay: slots},
		holds:        &fakeHolds{},
		gate:         &fakeGate{},
		store:        &memStore{items: map[string]*domain.ContinuationSnapshot{}},
		geocoder:     &fakeGeocoder{},
		waitlist:     &fakeWaitlist{},
		metrics:      &gaugeMetrics{},
	}

	planner := plan_availability.NewUseCase(e.availability, nopLimiter{}, nil, 14, nopLogger{})
	holds := hold_lifecycle.NewUseCase(e.holds, e.gate, e.store, nil, hold_lifecycle.Options{
		ContinuationTTL:       30 * time.Minute,
		ContinuationKeyPrefix: "bookingflow",
		PublicBaseURL:         "https://book.example.com",
	}, nopLogger{})

	e.svc = NewService(e.catalog, e.geocoder, e.waitlist, planner, holds, e.store, e.metrics, Options{
		SessionTTL:            time.Hour,
		CatalogTTL:            time.Hour,
		DefaultCountryCode:    "27",
		ContinuationKeyPrefix: "bookingflow",
	}, nopLogger{})
	e.svc.timeProvider = fixedTime{now: testNow}
	ids := 0
	e.svc.newID = func() string {
		ids++
		return fmt.Sprintf("flow-%d", ids)
	}
	return e
}

// toSchedule открывает сессию и доводит ее до шага schedule с услугой cut
func (e *env) toSchedule(t *testing.T) *models.FlowView {
	t.Helper()
	ctx := context.Background()

	view, err := e.svc.Start(ctx, "salon-1", models.DeepLink{ServiceID: ptr.Ptr("cut")})
	require.NoError(t, err)
	flowID := view.FlowID

	for _, want := range []string{"services", "addons", "schedule"} {
		view, err = e.svc.Next(ctx, flowID)
		require.NoError(t, err)
		require.Equal(t, want, view.Step)
	}
	return view
}

// toReview доводит сессию до review с выбранным слотом, анкетой и принятой политикой
func (e *env) toReview(t *testing.T) *models.FlowView {
	t.Helper()
	ctx := context.Background()

	view := e.toSchedule(t)
	flowID := view.FlowID

	view, err := e.svc.SelectSlot(ctx, flowID, models.SelectSlotRequest{Start: slotTen})
	require.NoError(t, err)

	view, err = e.svc.Next(ctx, flowID)
	require.NoError(t, err)
	require.Equal(t, "resources", view.Step)

	view, err = e.svc.Next(ctx, flowID)
	require.NoError(t, err)
	require.Equal(t, "intake", view.Step)

	_, err = e.svc.ApplyPatch(ctx, flowID, models.DraftPatch{
		Client: draft.Set(models.Client{
			FirstName: "Thandi", LastName: "Nkosi", Email: "thandi@example.com",
			Phone: "082 123 4567", SpecialRequests: "quiet chair",
		}),
		FormResponses: draft.Set(map[string]string{"allergies": "none"}),
	})
	require.NoError(t, err)

	view, err = e.svc.Next(ctx, flowID)
	require.NoError(t, err)
	require.Equal(t, "review", view.Step)

	view, err = e.svc.ApplyPatch(ctx, flowID, models.DraftPatch{PolicyAccepted: draft.Set(true)})
	require.NoError(t, err)
	return view
}
