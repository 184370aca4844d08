package steps

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStep шаг отсутствует в вычисленной последовательности
	ErrUnknownStep = errors.New("steps: step is not part of the sequence")

	// ErrNoNextStep текущий шаг последний
	ErrNoNextStep = errors.New("steps: already at the last step")

	// ErrNoPreviousStep текущий шаг первый
	ErrNoPreviousStep = errors.New("steps: already at the first step")

	// ErrStepIncomplete базовая ошибка незавершенного шага
	ErrStepIncomplete = errors.New("steps: step is incomplete")
)

var (
	ErrLocationRequired      = fmt.Errorf("%w: location is required", ErrStepIncomplete)
	ErrAddressIncomplete     = fmt.Errorf("%w: address must include line1 and city", ErrStepIncomplete)
	ErrCategoryRequired      = fmt.Errorf("%w: category is required", ErrStepIncomplete)
	ErrServicesRequired      = fmt.Errorf("%w: at least one service is required", ErrStepIncomplete)
	ErrParticipantIncomplete = fmt.Errorf("%w: every participant needs a name and a service", ErrStepIncomplete)
	ErrStaffRequired         = fmt.Errorf("%w: staff member or any staff is required", ErrStepIncomplete)
	ErrSlotRequired          = fmt.Errorf("%w: time slot is required", ErrStepIncomplete)
	ErrResourcesRequired     = fmt.Errorf("%w: required resource is not selected", ErrStepIncomplete)
	ErrNameRequired          = fmt.Errorf("%w: first and last name are required", ErrStepIncomplete)
	ErrInvalidEmail          = fmt.Errorf("%w: invalid email", ErrStepIncomplete)
	ErrInvalidPhone          = fmt.Errorf("%w: invalid phone number", ErrStepIncomplete)
	ErrRequiredFieldMissing  = fmt.Errorf("%w: required field is missing", ErrStepIncomplete)
	ErrPolicyNotAccepted     = fmt.Errorf("%w: policy must be accepted", ErrStepIncomplete)
)
