package hold_lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/integrations/platform"
)

// UseCase менеджер жизненного цикла брони:
// idle -> creating -> held -> gate_pending | finalizing -> done.
// Ошибка создания возвращает в idle, истекшая при подтверждении бронь -> failed.
type UseCase struct {
	holds        HoldClient
	gate         IdentityGate
	store        ContinuationStore
	metrics      Metrics
	opts         Options
	newKey       func() string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	holds HoldClient,
	gate IdentityGate,
	store ContinuationStore,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		holds:        holds,
		gate:         gate,
		store:        store,
		metrics:      metrics,
		opts:         opts,
		newKey:       uuid.NewString,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Confirm создает бронь по выбранному слоту и запускает identity gate.
// Повторный вызов во время подтверждения ничего не делает и возвращает текущее состояние.
func (uc *UseCase) Confirm(ctx context.Context, lc *Lifecycle, req *Request) (*Result, error) {
	state := req.Draft.State()

	// 1. Проверяем состояние и условия подтверждения
	lc.mu.Lock()
	if !lc.state.CanConfirm() {
		res := lc.resultLocked()
		res.Duplicate = true
		lc.mu.Unlock()
		uc.logger.Info("Confirm: flow=%s ignored, state=%s", req.FlowID, res.State)
		return res, nil
	}
	if err := validateConfirm(state); err != nil {
		lc.mu.Unlock()
		uc.logger.Warn("Confirm: flow=%s validation failed: %v", req.FlowID, err)
		return nil, err
	}
	uc.transitionLocked(lc, domain.HoldCreating)
	lc.lastError = ""
	lc.mu.Unlock()

	// 2. Создаем бронь (ключ идемпотентности на одно действие confirm)
	key := uc.newKey()
	holdReq := buildHoldRequest(req.Catalog, state)
	uc.logger.Info("Confirm: flow=%s creating hold provider=%s start=%s key=%s",
		req.FlowID, holdReq.ProviderID, holdReq.Start.Format(domain.TimeFormat), key)

	hold, err := uc.holds.CreateHold(ctx, holdReq, key)
	if err != nil {
		// брони нет: failed фиксируется в метриках, сессия возвращается в idle
		lc.mu.Lock()
		uc.transitionLocked(lc, domain.HoldFailed)
		uc.transitionLocked(lc, domain.HoldIdle)
		lc.lastError = err.Error()
		lc.mu.Unlock()
		uc.logger.Error("Confirm: flow=%s failed to create hold: %v", req.FlowID, err)
		return nil, fmt.Errorf("%w: %w", ErrHoldCreationFailed, err)
	}

	lc.mu.Lock()
	lc.hold = hold
	lc.booking = nil
	uc.transitionLocked(lc, domain.HoldHeld)
	verified := lc.verified
	lc.mu.Unlock()
	uc.logger.Info("Confirm: flow=%s hold=%s created", req.FlowID, hold.ID)

	// 3. Сохраняем данные, которые должны пережить redirect
	storeKey := domain.ContinuationKey(uc.opts.ContinuationKeyPrefix, req.FlowID, hold.ID)
	snapshot := buildSnapshot(req.FlowID, hold.ID, state, uc.timeProvider.Now())
	if err := uc.store.Save(ctx, storeKey, snapshot, uc.opts.ContinuationTTL); err != nil {
		// бронь уже есть; продолжение после redirect будет без восстановленных данных
		uc.logger.Warn("Confirm: flow=%s failed to save continuation: %v", req.FlowID, err)
	} else {
		lc.mu.Lock()
		lc.snapshotKey = storeKey
		lc.mu.Unlock()
	}

	// 4. Ветвление по месту identity gate
	if req.Catalog.Settings.RequireAuthStep == domain.AuthBeforeTimeSelection && verified {
		lc.mu.Lock()
		defer lc.mu.Unlock()
		uc.transitionLocked(lc, domain.HoldFinalizing)
		res := lc.resultLocked()
		res.ContinuationURL = uc.continuationURL(req.FlowID, hold.ID)
		uc.logger.Info("Confirm: flow=%s identity already verified, hold=%s ready to finalize", req.FlowID, hold.ID)
		return res, nil
	}

	return uc.openGate(ctx, lc, req)
}

// RetryGate повторно открывает identity gate после отмены
func (uc *UseCase) RetryGate(ctx context.Context, lc *Lifecycle, req *Request) (*Result, error) {
	lc.mu.Lock()
	state := lc.state
	lc.mu.Unlock()

	if state != domain.HoldHeld {
		uc.logger.Warn("RetryGate: flow=%s not allowed in state=%s", req.FlowID, state)
		return nil, fmt.Errorf("%w: state=%s", ErrInvalidState, state)
	}
	return uc.openGate(ctx, lc, req)
}

// StartPreSlotGate открывает identity gate до выбора времени (requireAuthStep=before_time_selection)
func (uc *UseCase) StartPreSlotGate(ctx context.Context, lc *Lifecycle, req *Request) (*Result, error) {
	lc.mu.Lock()
	if lc.state != domain.HoldIdle && lc.state != domain.HoldFailed {
		state := lc.state
		lc.mu.Unlock()
		return nil, fmt.Errorf("%w: state=%s", ErrInvalidState, state)
	}
	lc.mu.Unlock()

	client := req.Draft.State().Client
	challenge, err := uc.gate.StartChallenge(ctx, domain.GateChallengeRequest{
		FlowID:      req.FlowID,
		Email:       client.Email,
		Phone:       client.Phone,
		CallbackURL: uc.callbackURL(req.FlowID),
	})
	if err != nil {
		uc.logger.Error("StartPreSlotGate: flow=%s failed to start challenge: %v", req.FlowID, err)
		return nil, fmt.Errorf("%w: %v", ErrGateUnavailable, err)
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.preSlotGate = true
	lc.challenge = challenge
	uc.logger.Info("StartPreSlotGate: flow=%s challenge=%s opened", req.FlowID, challenge.ID)
	return &Result{State: lc.state, ChallengeURL: challenge.URL}, nil
}

// CompleteGate применяет результат identity gate.
// challengeID должен совпадать с открытым challenge, иначе результат отклоняется.
// verified: бронь переходит в finalizing; отказ или отмена возвращают в held без освобождения брони.
func (uc *UseCase) CompleteGate(ctx context.Context, lc *Lifecycle, flowID, challengeID string, outcome domain.GateOutcome) (*Result, error) {
	if outcome != domain.GateVerified && outcome != domain.GateRejected && outcome != domain.GateAbandoned {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGateOutcome, outcome)
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	gateOpen := lc.state == domain.HoldGatePending || lc.preSlotGate
	if !gateOpen {
		uc.logger.Warn("CompleteGate: flow=%s not allowed in state=%s", flowID, lc.state)
		return nil, fmt.Errorf("%w: state=%s", ErrInvalidState, lc.state)
	}
	if lc.challenge == nil || challengeID == "" || challengeID != lc.challenge.ID {
		uc.logger.Warn("CompleteGate: flow=%s challenge=%q does not match open gate", flowID, challengeID)
		return nil, fmt.Errorf("%w: challenge=%q", ErrChallengeMismatch, challengeID)
	}

	// gate до выбора времени: брони еще нет
	if lc.preSlotGate && lc.state != domain.HoldGatePending {
		lc.preSlotGate = false
		lc.challenge = nil
		uc.observeGate(outcome)
		if outcome == domain.GateVerified {
			lc.verified = true
		}
		uc.logger.Info("CompleteGate: flow=%s pre-slot gate outcome=%s", flowID, outcome)
		return lc.resultLocked(), nil
	}

	uc.observeGate(outcome)
	lc.challenge = nil

	if outcome != domain.GateVerified {
		uc.transitionLocked(lc, domain.HoldHeld)
		uc.logger.Info("CompleteGate: flow=%s gate outcome=%s, hold=%s kept", flowID, outcome, lc.hold.ID)
		return lc.resultLocked(), nil
	}

	lc.verified = true
	uc.transitionLocked(lc, domain.HoldFinalizing)
	res := lc.resultLocked()
	res.ContinuationURL = uc.continuationURL(flowID, lc.hold.ID)
	uc.logger.Info("CompleteGate: flow=%s verified, continuing with hold=%s", flowID, lc.hold.ID)
	return res, nil
}

// Finalize превращает бронь в подтвержденную запись.
// Истекшая бронь не переиспользуется: состояние failed, нужен новый confirm.
func (uc *UseCase) Finalize(ctx context.Context, lc *Lifecycle, req *Request) (*Result, error) {
	lc.mu.Lock()
	if lc.state == domain.HoldDone {
		res := lc.resultLocked()
		lc.mu.Unlock()
		return res, nil
	}
	if lc.state != domain.HoldFinalizing {
		state := lc.state
		lc.mu.Unlock()
		uc.logger.Warn("Finalize: flow=%s not allowed in state=%s", req.FlowID, state)
		return nil, fmt.Errorf("%w: state=%s", ErrInvalidState, state)
	}
	holdID := lc.hold.ID
	lc.mu.Unlock()

	state := req.Draft.State()
	totals := req.Draft.Totals()
	commit := domain.CommitRequest{
		HoldID:            holdID,
		Client:            state.Client,
		AddonIDs:          state.AddonIDs,
		FormResponses:     state.FormResponses,
		CustomFieldValues: state.CustomFieldValues,
		Total:             totals.Total(),
		DepositDue:        req.Catalog.Settings.DepositPolicy.Due(totals.Total()),
		Currency:          totals.Currency,
	}
	if state.IsGroupBooking {
		commit.Participants = state.Participants
	}

	uc.logger.Info("Finalize: flow=%s committing hold=%s total=%.2f %s", req.FlowID, holdID, commit.Total, commit.Currency)
	booking, err := uc.holds.CommitHold(ctx, commit)
	if err != nil {
		if errors.Is(err, platform.ErrHoldExpired) {
			lc.mu.Lock()
			lc.hold = nil
			lc.lastError = err.Error()
			uc.transitionLocked(lc, domain.HoldFailed)
			lc.mu.Unlock()
			uc.clearSnapshot(ctx, lc, req.FlowID)
			uc.logger.Warn("Finalize: flow=%s hold=%s expired", req.FlowID, holdID)
			return nil, fmt.Errorf("%w: hold=%s", ErrHoldExpired, holdID)
		}
		uc.logger.Error("Finalize: flow=%s failed to commit hold=%s: %v", req.FlowID, holdID, err)
		return nil, fmt.Errorf("%w: %v", ErrFinalizeFailed, err)
	}

	lc.mu.Lock()
	lc.booking = booking
	uc.transitionLocked(lc, domain.HoldDone)
	res := lc.resultLocked()
	lc.mu.Unlock()

	uc.clearSnapshot(ctx, lc, req.FlowID)
	uc.logger.Info("Finalize: flow=%s booking=%s confirmed", req.FlowID, booking.BookingID)
	return res, nil
}

// Abandon удаляет данные продолжения брошенной сессии
func (uc *UseCase) Abandon(ctx context.Context, lc *Lifecycle, flowID string) {
	uc.clearSnapshot(ctx, lc, flowID)
}

func (uc *UseCase) openGate(ctx context.Context, lc *Lifecycle, req *Request) (*Result, error) {
	lc.mu.Lock()
	holdID := lc.hold.ID
	lc.mu.Unlock()

	client := req.Draft.State().Client
	challenge, err := uc.gate.StartChallenge(ctx, domain.GateChallengeRequest{
		FlowID:      req.FlowID,
		HoldID:      &holdID,
		Email:       client.Email,
		Phone:       client.Phone,
		CallbackURL: uc.callbackURL(req.FlowID),
	})

	lc.mu.Lock()
	defer lc.mu.Unlock()

	if err != nil {
		lc.lastError = err.Error()
		uc.logger.Error("Confirm: flow=%s failed to open identity gate for hold=%s: %v", req.FlowID, holdID, err)
		return nil, fmt.Errorf("%w: %v", ErrGateUnavailable, err)
	}

	lc.challenge = challenge
	lc.preSlotGate = false
	uc.transitionLocked(lc, domain.HoldGatePending)
	uc.logger.Info("Confirm: flow=%s identity gate opened for hold=%s", req.FlowID, holdID)
	return lc.resultLocked(), nil
}

func (uc *UseCase) clearSnapshot(ctx context.Context, lc *Lifecycle, flowID string) {
	lc.mu.Lock()
	key := lc.snapshotKey
	lc.snapshotKey = ""
	lc.mu.Unlock()

	if key == "" {
		return
	}
	if err := uc.store.Delete(ctx, key); err != nil {
		uc.logger.Warn("Continuation: flow=%s failed to delete snapshot: %v", flowID, err)
	}
}

func (uc *UseCase) transitionLocked(lc *Lifecycle, to domain.HoldState) {
	lc.state = to
	if uc.metrics != nil {
		uc.metrics.ObserveHoldTransition(string(to))
	}
}

func (uc *UseCase) observeGate(outcome domain.GateOutcome) {
	if uc.metrics != nil {
		uc.metrics.ObserveGateOutcome(string(outcome))
	}
}

func (uc *UseCase) callbackURL(flowID string) string {
	return fmt.Sprintf("%s/api/v1/flows/%s/gate/callback", uc.opts.PublicBaseURL, url.PathEscape(flowID))
}

func (uc *UseCase) continuationURL(flowID, holdID string) string {
	return fmt.Sprintf("%s/api/v1/continuations/%s?flowId=%s",
		uc.opts.PublicBaseURL, url.PathEscape(holdID), url.QueryEscape(flowID))
}
