package hold_lifecycle

import (
	"sync"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// Lifecycle состояние брони одной сессии записи.
// Переходы выполняет UseCase; сетевые вызовы идут вне мьютекса.
type Lifecycle struct {
	mu sync.Mutex

	state       domain.HoldState
	hold        *domain.Hold
	verified    bool
	preSlotGate bool
	challenge   *domain.GateChallenge
	snapshotKey string
	booking     *domain.BookingConfirmation
	lastError   string
}

// Status снимок состояния для чтения
type Status struct {
	State        domain.HoldState
	HoldID       string
	Verified     bool
	GateOpen     bool // открыт identity gate (до или после создания брони)
	ChallengeURL string
	BookingID    string
	LastError    string
}

// NewLifecycle создает жизненный цикл в состоянии idle
func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: domain.HoldIdle}
}

// Status возвращает текущее состояние
func (l *Lifecycle) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.statusLocked()
}

// State текущее состояние брони
func (l *Lifecycle) State() domain.HoldState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Verified true, если личность клиента уже подтверждена в этой сессии
func (l *Lifecycle) Verified() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verified
}

// HoldID id активной брони или пустая строка
func (l *Lifecycle) HoldID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.hold == nil {
		return ""
	}
	return l.hold.ID
}

func (l *Lifecycle) statusLocked() Status {
	s := Status{
		State:     l.state,
		Verified:  l.verified,
		GateOpen:  l.state == domain.HoldGatePending || l.preSlotGate,
		LastError: l.lastError,
	}
	if l.hold != nil {
		s.HoldID = l.hold.ID
	}
	if l.challenge != nil && s.GateOpen {
		s.ChallengeURL = l.challenge.URL
	}
	if l.booking != nil {
		s.BookingID = l.booking.BookingID
	}
	return s
}

func (l *Lifecycle) resultLocked() *Result {
	r := &Result{State: l.state, Booking: l.booking}
	if l.hold != nil {
		r.HoldID = l.hold.ID
	}
	if l.challenge != nil && l.state == domain.HoldGatePending {
		r.ChallengeURL = l.challenge.URL
	}
	return r
}
