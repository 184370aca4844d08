package steps

import (
	"fmt"
	"slices"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// Step шаг мастера записи
type Step string

const (
	StepVenue     Step = "venue"
	StepCategory  Step = "category"
	StepServices  Step = "services"
	StepAddons    Step = "addons"
	StepGroup     Step = "group"
	StepStaff     Step = "staff"
	StepSchedule  Step = "schedule"
	StepResources Step = "resources"
	StepIntake    Step = "intake"
	StepReview    Step = "review"
)

// ComputeSteps вычисляет упорядоченный список активных шагов по настройкам провайдера.
// Шаг resources присутствует всегда, чтобы индексы шагов не зависели от выбранных услуг.
func ComputeSteps(settings domain.Settings, group domain.GroupBookingSettings) []Step {
	result := []Step{StepVenue, StepCategory, StepServices, StepAddons}
	if group.Enabled {
		result = append(result, StepGroup)
	}
	if settings.StaffSelectionMode == domain.StaffClientChooses {
		result = append(result, StepStaff)
	}
	return append(result, StepSchedule, StepResources, StepIntake, StepReview)
}

// Navigator перемещение по вычисленной последовательности шагов
type Navigator struct {
	steps []Step
}

// NewNavigator создает навигатор для последовательности шагов провайдера
func NewNavigator(settings domain.Settings, group domain.GroupBookingSettings) *Navigator {
	return &Navigator{steps: ComputeSteps(settings, group)}
}

// Steps возвращает копию последовательности
func (n *Navigator) Steps() []Step {
	return slices.Clone(n.steps)
}

// First первый шаг
func (n *Navigator) First() Step {
	return n.steps[0]
}

// Contains проверяет, что шаг активен
func (n *Navigator) Contains(step Step) bool {
	return slices.Contains(n.steps, step)
}

// Index позиция шага или -1
func (n *Navigator) Index(step Step) int {
	return slices.Index(n.steps, step)
}

// Next шаг после текущего. Проверку завершенности делает вызывающий через CanAdvance.
func (n *Navigator) Next(current Step) (Step, error) {
	idx := n.Index(current)
	if idx < 0 {
		return "", fmt.Errorf("%w: %s", ErrUnknownStep, current)
	}
	if idx == len(n.steps)-1 {
		return "", ErrNoNextStep
	}
	return n.steps[idx+1], nil
}

// Previous шаг перед текущим
func (n *Navigator) Previous(current Step) (Step, error) {
	idx := n.Index(current)
	if idx < 0 {
		return "", fmt.Errorf("%w: %s", ErrUnknownStep, current)
	}
	if idx == 0 {
		return "", ErrNoPreviousStep
	}
	return n.steps[idx-1], nil
}

// AutoSkips true, если шаг проходится без участия клиента.
// Категория пропускается, когда в каталоге ровно одна категория.
func AutoSkips(step Step, catalog *domain.CatalogSnapshot) bool {
	return step == StepCategory && len(catalog.Categories) == 1
}
