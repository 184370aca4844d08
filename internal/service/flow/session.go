package flow

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/steps"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/hold_lifecycle"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/plan_availability"
)

// session серверная сессия одного прохода мастера записи.
// Все поля, кроме tracker и lifecycle, читаются и пишутся под mu.
type session struct {
	mu sync.Mutex

	id       string
	catalog  *domain.CatalogSnapshot
	warnings []string
	nav      *steps.Navigator
	step     steps.Step
	draft    *draft.BookingDraft

	// слоты последнего примененного запроса доступности
	schedule *plan_availability.Response

	tracker         *plan_availability.RequestTracker
	lifecycle       *hold_lifecycle.Lifecycle
	continuationURL string
	// confirming true, пока идет Confirm; черновик в это время менять нельзя
	confirming bool
}

// sessionStore хранилище сессий в памяти со скользящим TTL
type sessionStore struct {
	items *cache.Cache
	ttl   time.Duration
}

func newSessionStore(ttl time.Duration, onChange func(n int)) *sessionStore {
	store := &sessionStore{
		items: cache.New(ttl, ttl/2),
		ttl:   ttl,
	}
	if onChange != nil {
		store.items.OnEvicted(func(string, interface{}) {
			onChange(store.items.ItemCount())
		})
	}
	return store
}

func (s *sessionStore) put(sess *session) {
	s.items.Set(sess.id, sess, s.ttl)
}

// get возвращает сессию и продлевает ее TTL
func (s *sessionStore) get(id string) (*session, bool) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, false
	}
	sess := v.(*session)
	s.items.Set(id, sess, s.ttl)
	return sess, true
}

func (s *sessionStore) remove(id string) {
	s.items.Delete(id)
}

func (s *sessionStore) count() int {
	return s.items.ItemCount()
}

// catalogEntry каталог провайдера в кеше
type catalogEntry struct {
	snapshot *domain.CatalogSnapshot
	warnings []string
}
