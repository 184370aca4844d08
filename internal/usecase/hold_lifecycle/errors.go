package hold_lifecycle

import (
	"errors"
	"fmt"
)

// ErrPrecondition базовая ошибка невыполненных условий подтверждения.
// Такие ошибки проверяются локально и не доходят до сети.
var ErrPrecondition = errors.New("hold_lifecycle: confirm precondition failed")

var (
	// ErrNoServices не выбрано ни одной услуги
	ErrNoServices = fmt.Errorf("%w: no services selected", ErrPrecondition)

	// ErrSlotRequired не выбран слот
	ErrSlotRequired = fmt.Errorf("%w: no slot selected", ErrPrecondition)

	// ErrPolicyNotAccepted политика провайдера не принята
	ErrPolicyNotAccepted = fmt.Errorf("%w: policy not accepted", ErrPrecondition)

	// ErrAddressIncomplete для выезда на дом нужен адрес с line1 и city
	ErrAddressIncomplete = fmt.Errorf("%w: at-home address requires line1 and city", ErrPrecondition)
)

var (
	// ErrInvalidState операция недоступна в текущем состоянии брони
	ErrInvalidState = errors.New("hold_lifecycle: operation not allowed in current state")

	// ErrChallengeMismatch результат gate пришел для другого или уже закрытого challenge
	ErrChallengeMismatch = errors.New("hold_lifecycle: challenge does not match open identity gate")

	// ErrUnknownGateOutcome неизвестный результат identity gate
	ErrUnknownGateOutcome = errors.New("hold_lifecycle: unknown gate outcome")

	// ErrHoldCreationFailed не удалось создать бронь (можно повторить)
	ErrHoldCreationFailed = errors.New("hold_lifecycle: failed to create hold")

	// ErrGateUnavailable не удалось открыть identity gate (можно повторить)
	ErrGateUnavailable = errors.New("hold_lifecycle: identity gate unavailable")

	// ErrHoldExpired бронь истекла до подтверждения
	ErrHoldExpired = errors.New("hold_lifecycle: hold expired")

	// ErrFinalizeFailed не удалось подтвердить запись (можно повторить)
	ErrFinalizeFailed = errors.New("hold_lifecycle: failed to finalize booking")
)
