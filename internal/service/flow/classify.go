package flow

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/steps"
	"github.com/m04kA/SMC-BookingFlow/internal/integrations/platform"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/hold_lifecycle"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/plan_availability"
)

// classify сводит ошибки компонентов к категориям сервиса.
// Исходная ошибка сохраняется в цепочке для логов.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrTransient), errors.Is(err, ErrBusiness),
		errors.Is(err, ErrStaleState), errors.Is(err, ErrCatalogUnavailable), errors.Is(err, ErrSessionNotFound):
		return err

	// бизнес-отказы проверяем раньше общих ошибок валидации
	case errors.Is(err, draft.ErrGroupBookingDisabled),
		errors.Is(err, draft.ErrGroupLocationNotAllowed),
		errors.Is(err, draft.ErrGroupFull),
		errors.Is(err, draft.ErrOfferingExcludedFromGroup),
		errors.Is(err, plan_availability.ErrNoAvailability),
		errors.Is(err, hold_lifecycle.ErrHoldExpired),
		errors.Is(err, platform.ErrSlotTaken):
		return fmt.Errorf("%w: %w", ErrBusiness, err)

	case errors.Is(err, draft.ErrInvalidPatch),
		errors.Is(err, steps.ErrStepIncomplete),
		errors.Is(err, steps.ErrNoNextStep),
		errors.Is(err, steps.ErrNoPreviousStep),
		errors.Is(err, steps.ErrUnknownStep),
		errors.Is(err, plan_availability.ErrNoServices),
		errors.Is(err, plan_availability.ErrDateRequired),
		errors.Is(err, hold_lifecycle.ErrPrecondition),
		errors.Is(err, hold_lifecycle.ErrUnknownGateOutcome),
		errors.Is(err, hold_lifecycle.ErrChallengeMismatch),
		errors.Is(err, platform.ErrInvalidRequest):
		return fmt.Errorf("%w: %w", ErrValidation, err)

	case errors.Is(err, plan_availability.ErrStaleResult),
		errors.Is(err, hold_lifecycle.ErrInvalidState):
		return fmt.Errorf("%w: %w", ErrStaleState, err)

	case errors.Is(err, platform.ErrCatalogUnavailable):
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)

	default:
		// сеть, timeout, 5xx, недоступность gate и commit
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}
}
