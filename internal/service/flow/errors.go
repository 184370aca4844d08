package flow

import (
	"errors"
	"fmt"
)

// Категории ошибок. Handlers выбирают HTTP статус и сообщение только по ним.
var (
	// ErrValidation некорректный ввод или незавершенный шаг
	ErrValidation = errors.New("flow: validation failed")

	// ErrTransient временная ошибка внешнего сервиса, операцию можно повторить
	ErrTransient = errors.New("flow: temporary failure")

	// ErrBusiness бизнес-отказ: нет слотов, функция выключена, бронь истекла
	ErrBusiness = errors.New("flow: request refused")

	// ErrStaleState операция опоздала или недоступна в текущем состоянии сессии
	ErrStaleState = errors.New("flow: stale state")

	// ErrCatalogUnavailable каталог провайдера не загрузился, можно повторить старт
	ErrCatalogUnavailable = errors.New("flow: catalog unavailable")

	// ErrSessionNotFound сессия не найдена или истекла
	ErrSessionNotFound = errors.New("flow: session not found")
)

var (
	// ErrDraftLocked черновик нельзя менять, пока идет подтверждение брони
	ErrDraftLocked = fmt.Errorf("%w: booking confirmation in progress", ErrStaleState)

	// ErrSlotNotOffered выбранного времени нет среди доступных слотов
	ErrSlotNotOffered = fmt.Errorf("%w: slot is not among available slots", ErrValidation)

	// ErrInvalidDate дата не в формате YYYY-MM-DD
	ErrInvalidDate = fmt.Errorf("%w: invalid date", ErrValidation)

	// ErrIdentityRequired слоты доступны только после проверки личности
	ErrIdentityRequired = fmt.Errorf("%w: identity verification required before time selection", ErrBusiness)

	// ErrContinuationNotFound данные продолжения не найдены, истекли или уже использованы
	ErrContinuationNotFound = fmt.Errorf("%w: continuation not found", ErrBusiness)

	// ErrHoldMismatch continuation относится к другой брони
	ErrHoldMismatch = fmt.Errorf("%w: continuation does not match active hold", ErrStaleState)

	// ErrWaitlistContact для листа ожидания нужны имя и email или телефон
	ErrWaitlistContact = fmt.Errorf("%w: waitlist requires a name and an email or phone", ErrValidation)
)
