package plan_availability

import "sync"

// RequestTracker нумерует запросы доступности одной сессии.
// Результат применяется, только если его номер последний (last-request-wins).
type RequestTracker struct {
	mu     sync.Mutex
	latest uint64
}

// Begin регистрирует новый запрос и возвращает его номер
func (t *RequestTracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest++
	return t.latest
}

// Invalidate делает все запросы в полете устаревшими
func (t *RequestTracker) Invalidate() {
	t.Begin()
}

// IsLatest true, если после seq не было новых запросов
func (t *RequestTracker) IsLatest(seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return seq == t.latest
}
