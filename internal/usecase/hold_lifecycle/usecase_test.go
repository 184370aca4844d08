package hold_lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
	"github.com/m04kA/SMC-BookingFlow/internal/integrations/platform"
	"github.com/m04kA/SMC-BookingFlow/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// events общий журнал вызовов внешних сервисов, чтобы проверять порядок
type events struct {
	mu   sync.Mutex
	list []string
}

func (e *events) add(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.list = append(e.list, s)
}

func (e *events) all() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.list...)
}

type fakeHolds struct {
	log       *events
	mu        sync.Mutex
	created   []domain.HoldRequest
	keys      []string
	createErr error
	commitErr error
	release   chan struct{} // если не nil, CreateHold ждет закрытия
	commits   []domain.CommitRequest
}

func (f *fakeHolds) CreateHold(ctx context.Context, req domain.HoldRequest, key string) (*domain.Hold, error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log.add("create_hold")
	f.created = append(f.created, req)
	f.keys = append(f.keys, key)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Hold{ID: fmt.Sprintf("hold-%d", len(f.created))}, nil
}

func (f *fakeHolds) CommitHold(ctx context.Context, req domain.CommitRequest) (*domain.BookingConfirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log.add("commit_hold")
	f.commits = append(f.commits, req)
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	return &domain.BookingConfirmation{BookingID: "booking-1", HoldID: req.HoldID, Status: "confirmed"}, nil
}

func (f *fakeHolds) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type fakeGate struct {
	log      *events
	err      error
	requests []domain.GateChallengeRequest
}

func (g *fakeGate) StartChallenge(ctx context.Context, req domain.GateChallengeRequest) (*domain.GateChallenge, error) {
	g.log.add("start_gate")
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return &domain.GateChallenge{ID: "ch-1", URL: "https://id.example.com/ch-1"}, nil
}

type fakeStore struct {
	log     *events
	saveErr error
	saved   map[string]*domain.ContinuationSnapshot
	deleted []string
}

func (s *fakeStore) Save(ctx context.Context, key string, snap *domain.ContinuationSnapshot, ttl time.Duration) error {
	s.log.add("save")
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[key] = snap
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.saved, key)
	return nil
}

type recordingMetrics struct {
	mu          sync.Mutex
	transitions []string
	gates       []string
}

func (m *recordingMetrics) ObserveHoldTransition(state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, state)
}

func (m *recordingMetrics) ObserveGateOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gates = append(m.gates, outcome)
}

type env struct {
	uc      *UseCase
	holds   *fakeHolds
	gate    *fakeGate
	store   *fakeStore
	metrics *recordingMetrics
	log     *events
}

func newEnv() *env {
	log := &events{}
	e := &env{
		holds:   &fakeHolds{log: log},
		gate:    &fakeGate{log: log},
		store:   &fakeStore{log: log, saved: map[string]*domain.ContinuationSnapshot{}},
		metrics: &recordingMetrics{},
		log:     log,
	}
	e.uc = NewUseCase(e.holds, e.gate, e.store, e.metrics, Options{
		ContinuationTTL:       30 * time.Minute,
		ContinuationKeyPrefix: "bookingflow",
		PublicBaseURL:         "https://book.example.com",
	}, nopLogger{})
	e.uc.newKey = func() string { return "key-1" }
	return e
}

var slotStart = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

func testCatalog() *domain.CatalogSnapshot {
	return &domain.CatalogSnapshot{
		ProviderID: "salon-1",
		Locations:  []domain.Location{{ID: "loc-main", IsPrimary: true}},
		Offerings: []domain.Offering{
			{ID: "cut", DurationMinutes: 60, Price: 350, Currency: "ZAR"},
			{ID: "mani", DurationMinutes: 30, Price: 150, Currency: "ZAR", SupportsAtHome: true},
		},
		Addons: []domain.Addon{{ID: "mask", Price: 50}},
		Staff:  []domain.Staff{{ID: "anna"}, {ID: "ben"}},
		Settings: domain.Settings{
			RequireAuthStep: domain.AuthAtCheckout,
			DepositPolicy:   domain.DepositPolicy{Kind: domain.DepositPercentage, Amount: 20},
		},
	}
}

func readyDraft(t *testing.T, catalog *domain.CatalogSnapshot, extra draft.Patch) *draft.BookingDraft {
	t.Helper()
	d, _ := draft.New(catalog, draft.Seed{})
	d, err := draft.ApplyPatch(catalog, d, draft.Patch{
		ServiceIDs: draft.Set([]string{"cut"}),
		AddonIDs:   draft.Set([]string{"mask"}),
		StaffID:    draft.Set(ptr.Ptr(domain.AnyStaff)),
		Client: draft.Set(domain.ClientIntake{
			FirstName: "Thandi", LastName: "Nkosi", Email: "thandi@example.com",
			Phone: "+27821234567", SpecialRequests: "quiet chair",
		}),
		PolicyAccepted: draft.Set(true),
	})
	require.NoError(t, err)
	d, err = draft.ApplyPatch(catalog, d, extra)
	require.NoError(t, err)
	if d.State().Slot == nil {
		d, err = draft.ApplyPatch(catalog, d, draft.Patch{Slot: draft.Set(&draft.SelectedSlot{
			Start: slotStart, End: slotStart.Add(time.Hour),
		})})
		require.NoError(t, err)
	}
	return d
}

func TestConfirm_CheckoutGateOpensAfterHold(t *testing.T) {
	e := newEnv()
	catalog := testCatalog()
	lc := NewLifecycle()
	req := &Request{FlowID: "flow-1", Catalog: catalog, Draft: readyDraft(t, catalog, draft.Patch{})}

	res, err := e.uc.Confirm(context.Background(), lc, req)
	require.NoError(t, err)

	assert.Equal(t, domain.HoldGatePending, res.State)
	assert.Equal(t, "hold-1", res.HoldID)
	assert.Equal(t, "https://id.example.com/ch-1", res.ChallengeURL)
	assert.Equal(t, []string{"create_hold", "save", "start_gate"}, e.log.all())
	assert.Equal(t, []string{"key-1"}, e.holds.keys)

	require.Len(t, e.gate.requests, 1)
	assert.Equal(t, "hold-1", *e.gate.requests[0].HoldID)
	assert.Equal(t, "https://book.example.com/api/v1/flows/flow-1/gate/callback", e.gate.requests[0].CallbackURL)

	snap := e.store.saved["bookingflow:flow-1:hold-1"]
	require.NotNil(t, snap)
	assert.Equal(t, domain.ContinuationVersion, snap.Version)
	assert.Equal(t, []string{"mask"}, snap.AddonIDs)
	assert.Equal(t, "quiet chair", snap.SpecialRequests)

	res, err = e.uc.CompleteGate(context.Background(), lc, "flow-1", "ch-1", domain.GateVerified)
	require.NoError(t, err)
	assert.Equal(t, domain.HoldFinalizing, res.State)
	assert.Equal(t, "https://book.example.com/api/v1/continuations/hold-1?flowId=flow-1", res.ContinuationURL)
	assert.True(t, lc.Verified())

	assert.Equal(t, []string{"creating", "held", "gate_pending", "finalizing"}, e.metrics.transitions)
	assert.Equal(t, []string{"verified"}, e.metrics.gates)
}

func TestConfirm_HoldRequest(t *testing.T) {
	e := newEnv()
	catalog := testCatalog()
	d := readyDraft(t, catalog, draft.Patch{})

	_, err := e.uc.Confirm(context.Background(), NewLifecycle(), &Request{FlowID: "flow-1", Catalog: catalog, Draft: d})
	require.NoError(t, err)

	require.Len(t, e.holds.created, 1)
	hr := e.holds.created[0]
	assert.Equal(t, "salon-1", hr.ProviderID)
	assert.Nil(t, hr.StaffID)
	assert.Equal(t, domain.VenueAtSalon, hr.LocationType)
	assert.Equal(t, "loc-main", *hr.LocationID)
	assert.Nil(t, hr.Address)
	assert.Equal(t, slotStart, hr.Start)
	require.Len(t, hr.Services, 1)
	assert.Equal(t, "cut", hr.Services[0].OfferingID)
}

func TestConfirm_Preconditions(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name    string
		patch   draft.Patch
		wantErr error
	}{
		{"no services", draft.Patch{ServiceIDs: draft.Set([]string{})}, ErrNoServices},
		{"policy not accepted", draft.Patch{PolicyAccepted: draft.Set(false)}, ErrPolicyNotAccepted},
		{
			"at home without city",
			draft.Patch{
				VenueType: draft.Set(domain.VenueAtHome),
				Address:   draft.Set(&domain.Address{Line1: "1 Long St"}),
			},
			ErrAddressIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			lc := NewLifecycle()
			d := readyDraft(t, catalog, tt.patch)

			_, err := e.uc.Confirm(context.Background(), lc, &Request{FlowID: "flow-1", Catalog: catalog, Draft: d})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrPrecondition)
			assert.Equal(t, 0, e.holds.createCount())
			assert.Equal(t, domain.HoldIdle, lc.State())
		})
	}
}

func TestConfirm_NoSlot(t *testing.T) {
	e := newEnv()
	catalog := testCatalog()
	d := readyDraft(t, catalog, draft.Patch{})
	d, err := draft.ApplyPatch(catalog, d, draft.Patch{Slot: draft.Set[*draft.SelectedSlot](nil)})
	require.NoError(t, err)

	_, err = e.uc.Confirm(context.Background(), NewLifecycle(), &Request{FlowID: "flow-1", Catalog: catalog, Draft: d})
	assert.ErrorIs(t, err, ErrSlotRequired)
	assert.Equal(t, 0, e.holds.createCount())
}

func TestConfirm_ConcurrentDoubleSubmitCreatesOneHold(t *testing.T) {
	e := newEnv()
	e.holds.release = make(chan struct{})
	catalog := testCatalog()
	lc := NewLifecycle()
	req := &Request{FlowID: "flow-1", Catalog: catalog, Draft: readyDraft(t, catalog, draft.Patch{})}

	firstDone := make(chan *Result, 1)
	go func() {
		res, err := e.uc.Confirm(context.Background(), lc, req)
		assert.NoError(t, err)
		firstDone <- res
	}()

	require.Eventually(t, func() bool { return lc.State() == domain.HoldCreating }, time.Second, time.Millisecond)

	dup, err := e.uc.Confirm(context.Background(), lc, req)
	require.NoError(t, err)
	assert.True(t, dup.Duplicate)
	assert.Equal(t, domain.HoldCreating, dup.State)

	close(e.holds.release)
	first := <-firstDone
	assert.False(t, first.Duplicate)
	assert.Equal(t, 1, e.holds.createCount())

	again, err := e.uc.Confirm(context.Background(), lc, req)
	require.NoError(t, err)
	assert.True(t, again.Duplicate)
	assert.Equal(t, 1, e.holds.createCount())
}

func TestConfirm_HoldCreationFailure(t *testing.T) {
	e := newEnv()
	e.holds.createErr = errors.New("503 service unavailable")
	catalog := testCatalog()
	lc := NewLifecycle()
	req := &Request{FlowID: "flow-1", Catalog: catalog, Draft: readyDraft(t, catalog, draft.Patch{})}

	_, err := e.uc.Confirm(context.Background(), lc, req)
	assert.ErrorIs(t, err, ErrHoldCreationFailed)
	assert.Equal(t, domain.HoldIdle, lc.State())
	assert.Equal(t, "503 service unavailable", lc.Status().LastError)
	assert.Equal(t, []string{"creating", "failed", "idle"}, e.metrics.transitions)
	assert.Empty(t, e.store.saved)
	assert.NotContains(t, e.log.all(), "save")

	// после ошибки создания можно подтвердить снова
	e.holds.createErr = nil
	res, err := e.uc.Confirm(context.Background(), lc, req)
	require.NoError(t, err)
	assert.Equal(t, domain.HoldGatePending, res.State)
	assert.Empty(t, lc.Status().LastError)
}

func TestConfirm_SaveFailureDoesNotBlock(t *testing.T) {
	e := newEnv()
	e.store.saveErr = errors.New("redis down")
	catalog := testCatalog()
	lc := NewLifecycle()

	res, err := e.uc.Confirm(context.Background(), lc, &Request{FlowID: "flow-1", Catalog: catalog, Draft: readyDraft(t, catalog, draft.Patch{})})
	require.NoError(t, err)
	assert.Equal(t, domain.HoldGatePending, res.State)
}

func TestConfirm_GateUnavailableKeepsHold(t *testing.T) {
	e := newEnv()
	e.gate.err = errors.New("timeout")
	catalog := testCatalog()
	lc := NewLifecycle()
	req := &Request{FlowID: "flow-1", Catalog: catalog, Draft: readyDraft(t, catalog, draft.Patch{})}

	_, err := e.uc.Confirm(context.Background(), lc, req)
	assert.ErrorIs(t, err, ErrGateUnavailable)
	assert.Equal(t, domain.HoldHeld, lc.State())
	assert.Equal(t, "hold-1", lc.HoldID())

	e.gate.err = nil
	res, err := e.uc.RetryGate(context.Background(), lc, req)
	require.NoError(t, err)
	assert.Equal(t, domain.HoldGatePending, res.State)
	assert.Equal(t, 1, e.holds.createCount())
}

func TestCompleteGate_CancelReturnsToHeld(t *testing.T) {
	for _, outcome := range []domain.GateOutcome{domain.GateAbandoned, domain.GateRejected} {
		t.Run(string(outcome), func(t *testing.T) {
			e := newEnv()
			catalog := testCatalog()
			lc := NewLifecycle()
			req := &Request{FlowID: "flow-1", Catalog: catalog, Draft: readyDraft(t, catalog, draft.Patch{})}

			_, err := e.uc.Confirm(context.Background(), lc, req)
			require.NoError(t, err)

			res, err := e.uc.CompleteGate(context.Background(), lc, "flow-1", "ch-1", outcome)
			require.NoError(t, err)
			assert.Equal(t, domain.HoldHeld, res.State)
			assert.Equal(t, "hold-1", res.HoldID)
			assert.False(t, lc.Verified())

			res, err = e.uc.RetryGate(context.Background(), lc, req)
			require.NoError(t, err)
			assert.Equal(t, domain.HoldGatePending, res.State)
			assert.Len(t, e.gate.requests, 2)
		})
	}
}

func TestCompleteGate_InvalidState(t *testing.T) {
	e := newEnv()

	_, err := e.uc.CompleteGate(context.Background(), NewLifecycle(), "flow-1", "ch-1", domain.GateVerified)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = e.uc.CompleteGate(context.Background(), NewLifecycle(), "flow-1", "ch-1", domain.GateOutcome("maybe"))
	assert.ErrorIs(t, err, ErrUnknownGateOutcome)
}

func TestCompleteGate_RequiresOpenChallenge(t *testing.T) {
	tests := []struct {
		name        string
		challengeID string
	}{
		{"missing challenge id", ""},
		{"foreign challenge id", "ch-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			catalog := testCatalog()
			lc := NewLifecycle()
			_, err := e.uc.Confirm(context.Background(), lc, &Request{FlowID: "flow-1", Catalog: catalog, Draft: readyDraft(t, catalog, draft.Patch{})})
			require.NoError(t, err)

			_, err = e.uc.CompleteGate(context.Background(), lc, "flow-1", tt.challengeID, domain.GateVerified)
			assert.ErrorIs(t, err, ErrChallengeMismatch)
			assert.Equal(t, domain.HoldGatePending, lc.State())
			assert.False(t, lc.Verified())
			assert.Empty(t, e.metrics.gates)
		})
	}

	t.Run("challenge closed after outcome", func(t *testing.T) {
		e := newEnv()
		catalog := testCatalog()
		lc := NewLifecycle()
		_, err := e.uc.Confirm(context.Background(), lc, &Request{FlowID: "flow-1", Catalog: catalog, Draft: readyDraft(t, catalog, draft.Patch{})})
		require.NoError(t, err)

		_, err = e.uc.CompleteGate(context.Background(), lc, "flow-1", "ch-1", domain.GateAbandoned)
		require.NoError(t, err)

		_, err = e.uc.CompleteGate(context.Background(), lc, "flow-1", "ch-1", domain.GateVerified)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, domain.HoldHeld, lc.State())
		assert.False(t, lc.Verified())
	})

	t.Run("pre-slot gate", func(t *testing.T) {
		e := newEnv()
		catalog := testCatalog()
		lc := NewLifecycle()
		_, err := e.uc.StartPreSlotGate(context.Background(), lc, &Request{FlowID: "flow-1", Catalog: catalog, Draft: readyDraft(t, catalog, draft.Patch{})})
		require.NoError(t, err)

		_, err = e.uc.CompleteGate(context.Background(), lc, "flow-1", "", domain.GateVerified)
		assert.ErrorIs(t, err, ErrChallengeMismatch)
		assert.False(t, lc.Verified())
		assert.True(t, lc.Status().GateOpen)
	})
}

func TestConfirm_BeforeTimeSelection(t *testing.T) {
	catalog := testCatalog()
	catalog.Settings.RequireAuthStep = domain.AuthBeforeTimeSelection

	t.Run("verified earlier skips gate", func(t *testing.T) {
		e := newEnv()
		lc := NewLifecycle()
		d := readyDraft(t, catalog, draft.Patch{})
		req := &Request{FlowID: "flow-1", Catalog: catalog, Draft: d}

		pre, err := e.uc.StartPreSlotGate(context.Background(), lc, req)
		require.NoError(t, err)
		assert.Equal(t, "https://id.example.com/ch-1", pre.ChallengeURL)
		assert.Nil(t, e.gate.requests[0].HoldID)
		assert.True(t, lc.Status().GateOpen)

		_, err = e.uc.CompleteGate(context.Background(), lc, "flow-1", "ch-1", domain.GateVerified)
		require.NoError(t, err)
		assert.True(t, lc.Verified())
		assert.Equal(t, domain.HoldIdle, lc.State())

		res, err := e.uc.Confirm(context.Background(), lc, req)
		require.NoError(t, err)
		assert.Equal(t, domain.HoldFinalizing, res.State)
		assert.Contains(t, res.ContinuationURL, "/continuations/hold-1")
		assert.Len(t, e.gate.requests, 1)
	})

	t.Run("unverified session still gets the gate", func(t *testing.T) {
		e := newEnv()
		lc := NewLifecycle()

		res, err := e.uc.Confirm(context.Background(), lc, &Request{FlowID: "flow-1", Catalog: catalog, Draft: readyDraft(t, catalog, draft.Patch{})})
		require.NoError(t, err)
		assert.Equal(t, domain.HoldGatePending, res.State)
	})
}

func finalizingLifecycle(t *testing.T, e *env, catalog *domain.CatalogSnapshot, d *draft.BookingDraft) *Lifecycle {
	t.Helper()
	lc := NewLifecycle()
	_, err := e.uc.Confirm(context.Background(), lc, &Request{FlowID: "flow-1", Catalog: catalog, Draft: d})
	require.NoError(t, err)
	_, err = e.uc.CompleteGate(context.Background(), lc, "flow-1", "ch-1", domain.GateVerified)
	require.NoError(t, err)
	return lc
}

func TestFinalize(t *testing.T) {
	e := newEnv()
	catalog := testCatalog()
	d := readyDraft(t, catalog, draft.Patch{})
	lc := finalizingLifecycle(t, e, catalog, d)

	res, err := e.uc.Finalize(context.Background(), lc, &Request{FlowID: "flow-1", Catalog: catalog, Draft: d})
	require.NoError(t, err)
	assert.Equal(t, domain.HoldDone, res.State)
	assert.Equal(t, "booking-1", res.Booking.BookingID)

	require.Len(t, e.holds.commits, 1)
	commit := e.holds.commits[0]
	assert.Equal(t, "hold-1", commit.HoldID)
	assert.Equal(t, 400.0, commit.Total)
	assert.Equal(t, 80.0, commit.DepositDue)
	assert.Equal(t, "ZAR", commit.Currency)

	assert.Equal(t, []string{"bookingflow:flow-1:hold-1"}, e.store.deleted)

	// повторный finalize возвращает результат без нового commit
	again, err := e.uc.Finalize(context.Background(), lc, &Request{FlowID: "flow-1", Catalog: catalog, Draft: d})
	require.NoError(t, err)
	assert.Equal(t, domain.HoldDone, again.State)
	assert.Len(t, e.holds.commits, 1)
}

func TestFinalize_ExpiredHoldIsSurfaced(t *testing.T) {
	e := newEnv()
	e.holds.commitErr = fmt.Errorf("%w: 410", platform.ErrHoldExpired)
	catalog := testCatalog()
	d := readyDraft(t, catalog, draft.Patch{})
	lc := finalizingLifecycle(t, e, catalog, d)

	_, err := e.uc.Finalize(context.Background(), lc, &Request{FlowID: "flow-1", Catalog: catalog, Draft: d})
	assert.ErrorIs(t, err, ErrHoldExpired)
	assert.Equal(t, domain.HoldFailed, lc.State())
	assert.Empty(t, lc.HoldID())
	assert.Len(t, e.holds.commits, 1)
}

func TestFinalize_TransientErrorIsRetryable(t *testing.T) {
	e := newEnv()
	e.holds.commitErr = errors.New("connection reset")
	catalog := testCatalog()
	d := readyDraft(t, catalog, draft.Patch{})
	lc := finalizingLifecycle(t, e, catalog, d)

	_, err := e.uc.Finalize(context.Background(), lc, &Request{FlowID: "flow-1", Catalog: catalog, Draft: d})
	assert.ErrorIs(t, err, ErrFinalizeFailed)
	assert.Equal(t, domain.HoldFinalizing, lc.State())

	e.holds.commitErr = nil
	res, err := e.uc.Finalize(context.Background(), lc, &Request{FlowID: "flow-1", Catalog: catalog, Draft: d})
	require.NoError(t, err)
	assert.Equal(t, domain.HoldDone, res.State)
}

func TestFinalize_NotFinalizing(t *testing.T) {
	e := newEnv()
	catalog := testCatalog()
	_, err := e.uc.Finalize(context.Background(), NewLifecycle(), &Request{FlowID: "flow-1", Catalog: catalog, Draft: readyDraft(t, catalog, draft.Patch{})})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestResolveStaffID(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name     string
		slot     *string
		chosen   *string
		expected *string
	}{
		{"slot staff wins", ptr.Ptr("ben"), ptr.Ptr("anna"), ptr.Ptr("ben")},
		{"draft staff when slot has none", nil, ptr.Ptr("anna"), ptr.Ptr("anna")},
		{"any becomes nil", nil, ptr.Ptr(domain.AnyStaff), nil},
		{"synthetic slot marker keeps draft staff", ptr.Ptr("any-staff"), ptr.Ptr("anna"), ptr.Ptr("anna")},
		{"any slot keeps draft staff", ptr.Ptr(domain.AnyStaff), ptr.Ptr("anna"), ptr.Ptr("anna")},
		{"synthetic slot and any draft", ptr.Ptr(domain.AnyStaff), ptr.Ptr(domain.AnyStaff), nil},
		{"unknown id becomes nil", ptr.Ptr("ghost"), nil, nil},
		{"unknown slot id keeps draft staff", ptr.Ptr("ghost"), ptr.Ptr("anna"), ptr.Ptr("anna")},
		{"empty slot staff falls back", ptr.Ptr(""), ptr.Ptr("anna"), ptr.Ptr("anna")},
		{"nothing chosen", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveStaffID(catalog, tt.slot, tt.chosen))
		})
	}
}

func TestResolveStaffID_DegradedStaffList(t *testing.T) {
	catalog := testCatalog()
	catalog.Staff = nil

	assert.Equal(t, ptr.Ptr("ghost"), ResolveStaffID(catalog, ptr.Ptr("ghost"), nil))
}
