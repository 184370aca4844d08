package plan_availability

import "errors"

var (
	// ErrNoServices возвращается, когда в черновике не выбрано ни одной услуги
	ErrNoServices = errors.New("plan_availability: no services selected")

	// ErrDateRequired возвращается, когда дата для запроса не выбрана
	ErrDateRequired = errors.New("plan_availability: date is required")

	// ErrStaleResult возвращается, когда параметры изменились, пока запрос был в полете
	ErrStaleResult = errors.New("plan_availability: result superseded by a newer request")

	// ErrNoAvailability возвращается, когда в окне поиска нет ни одного свободного дня
	ErrNoAvailability = errors.New("plan_availability: no availability in search window")

	// ErrAvailabilityFailed возвращается при ошибке сервиса доступности
	ErrAvailabilityFailed = errors.New("plan_availability: availability lookup failed")
)
