package draft

import "encoding/json"

// Field опциональное поле патча: отличает "не передано" от "передано пустое значение".
// Для nullable полей передача nil означает сброс.
type Field[T any] struct {
	set   bool
	value T
}

// Set создает заданное поле патча
func Set[T any](v T) Field[T] {
	return Field[T]{set: true, value: v}
}

// IsSet true, если поле присутствует в патче
func (f Field[T]) IsSet() bool {
	return f.set
}

// Value возвращает значение поля (zero value, если поле не задано)
func (f Field[T]) Value() T {
	return f.value
}

// UnmarshalJSON помечает поле заданным, если ключ присутствует в JSON (включая null)
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	return json.Unmarshal(data, &f.value)
}

// MapField переносит заданность поля при конвертации типа
func MapField[T, U any](f Field[T], fn func(T) U) Field[U] {
	if !f.set {
		return Field[U]{}
	}
	return Set(fn(f.value))
}
