package platform

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("platform client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("platform client: invalid response")

	// ErrUnavailable сервис недоступен (сеть, timeout, 5xx)
	ErrUnavailable = errors.New("platform client: service unavailable")

	// ErrInvalidRequest сервис отклонил параметры запроса
	ErrInvalidRequest = errors.New("platform client: request rejected")

	// ErrNotFound ресурс не найден
	ErrNotFound = errors.New("platform client: not found")

	// ErrSlotTaken слот занят к моменту создания брони
	ErrSlotTaken = errors.New("platform client: slot is no longer available")

	// ErrHoldExpired бронь истекла или освобождена сервером
	ErrHoldExpired = errors.New("platform client: hold expired")

	// ErrCatalogUnavailable не удалось загрузить ни одной части каталога
	ErrCatalogUnavailable = errors.New("platform client: catalog unavailable")
)
