package steps

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/domain/draft"
	"github.com/m04kA/SMC-BookingFlow/pkg/phone"
)

var validate = validator.New()

// intakeRules правила валидации анкеты клиента
type intakeRules struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
}

// Options параметры проверок, не зависящие от каталога
type Options struct {
	// DefaultCountryCode код страны для локальных номеров телефона
	DefaultCountryCode string
}

// CanAdvance возвращает nil, если шаг завершен, иначе ошибку ErrStepIncomplete с причиной
func CanAdvance(step Step, catalog *domain.CatalogSnapshot, d *draft.BookingDraft, opts Options) error {
	state := d.State()

	switch step {
	case StepVenue:
		return checkVenue(catalog, state)
	case StepCategory:
		if state.CategoryID == nil && len(catalog.Categories) > 0 {
			return ErrCategoryRequired
		}
		return nil
	case StepServices:
		if len(state.Services) == 0 {
			return ErrServicesRequired
		}
		return nil
	case StepAddons:
		return nil
	case StepGroup:
		return checkGroup(state)
	case StepStaff:
		if state.StaffID == nil {
			return ErrStaffRequired
		}
		return nil
	case StepSchedule:
		if state.Slot == nil {
			return ErrSlotRequired
		}
		return nil
	case StepResources:
		return checkResources(catalog, state)
	case StepIntake:
		return checkIntake(catalog, state, opts)
	case StepReview:
		if !state.PolicyAccepted {
			return ErrPolicyNotAccepted
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
}

func checkVenue(catalog *domain.CatalogSnapshot, state draft.State) error {
	if state.VenueType == domain.VenueAtHome {
		if !state.Address.IsComplete() {
			return ErrAddressIncomplete
		}
		return nil
	}
	if state.LocationID == nil && len(catalog.Locations) > 0 {
		return ErrLocationRequired
	}
	return nil
}

func checkGroup(state draft.State) error {
	if !state.IsGroupBooking {
		return nil
	}
	if len(state.Services) == 0 {
		return ErrServicesRequired
	}
	for _, p := range state.Participants {
		if strings.TrimSpace(p.Name) == "" || len(p.ServiceIDs) == 0 {
			return fmt.Errorf("%w: participant=%s", ErrParticipantIncomplete, p.ID)
		}
	}
	return nil
}

func checkResources(catalog *domain.CatalogSnapshot, state draft.State) error {
	for _, resourceType := range RequiredResourceTypes(catalog, state) {
		covered := slices.ContainsFunc(state.ResourceIDs, func(id string) bool {
			r, ok := catalog.Resource(id)
			return ok && r.Type == resourceType
		})
		if !covered {
			return fmt.Errorf("%w: type=%s", ErrResourcesRequired, resourceType)
		}
	}
	return nil
}

func checkIntake(catalog *domain.CatalogSnapshot, state draft.State, opts Options) error {
	client := state.Client
	err := validate.Struct(intakeRules{
		FirstName: strings.TrimSpace(client.FirstName),
		LastName:  strings.TrimSpace(client.LastName),
		Email:     strings.TrimSpace(client.Email),
	})
	if err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			for _, fe := range errs {
				if fe.Field() == "Email" {
					return ErrInvalidEmail
				}
			}
			return ErrNameRequired
		}
		return fmt.Errorf("%w: %v", ErrStepIncomplete, err)
	}

	if _, err := phone.Normalize(client.Phone, opts.DefaultCountryCode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}

	for _, key := range catalog.Settings.RequiredFormFields {
		if strings.TrimSpace(state.FormResponses[key]) == "" {
			return fmt.Errorf("%w: form field %s", ErrRequiredFieldMissing, key)
		}
	}
	for _, key := range catalog.Settings.RequiredCustomFields {
		if strings.TrimSpace(state.CustomFieldValues[key]) == "" {
			return fmt.Errorf("%w: custom field %s", ErrRequiredFieldMissing, key)
		}
	}
	return nil
}

// RequiredResourceTypes типы ресурсов, которые требуют выбранные услуги основного клиента и участников
func RequiredResourceTypes(catalog *domain.CatalogSnapshot, state draft.State) []string {
	ids := make([]string, 0, len(state.Services))
	for _, svc := range state.Services {
		ids = append(ids, svc.OfferingID)
	}
	for _, p := range state.Participants {
		ids = append(ids, p.ServiceIDs...)
	}

	var types []string
	for _, id := range ids {
		offering, ok := catalog.Offering(id)
		if !ok {
			continue
		}
		for _, t := range offering.RequiredResourceTypes {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}
	return types
}
