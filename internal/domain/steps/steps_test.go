package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

func TestComputeSteps(t *testing.T) {
	tests := []struct {
		name     string
		mode     domain.StaffSelectionMode
		group    bool
		expected []Step
	}{
		{
			name:  "client chooses staff, no group",
			mode:  domain.StaffClientChooses,
			group: false,
			expected: []Step{StepVenue, StepCategory, StepServices, StepAddons,
				StepStaff, StepSchedule, StepResources, StepIntake, StepReview},
		},
		{
			name:  "group and staff",
			mode:  domain.StaffClientChooses,
			group: true,
			expected: []Step{StepVenue, StepCategory, StepServices, StepAddons,
				StepGroup, StepStaff, StepSchedule, StepResources, StepIntake, StepReview},
		},
		{
			name:  "anyone default hides staff",
			mode:  domain.StaffAnyoneDefault,
			group: true,
			expected: []Step{StepVenue, StepCategory, StepServices, StepAddons,
				StepGroup, StepSchedule, StepResources, StepIntake, StepReview},
		},
		{
			name:  "hidden auto assign",
			mode:  domain.StaffHiddenAutoAssign,
			group: false,
			expected: []Step{StepVenue, StepCategory, StepServices, StepAddons,
				StepSchedule, StepResources, StepIntake, StepReview},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSteps(
				domain.Settings{StaffSelectionMode: tt.mode},
				domain.GroupBookingSettings{Enabled: tt.group},
			)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestComputeSteps_Reachability(t *testing.T) {
	modes := []domain.StaffSelectionMode{domain.StaffClientChooses, domain.StaffAnyoneDefault, domain.StaffHiddenAutoAssign, ""}
	for _, mode := range modes {
		for _, group := range []bool{true, false} {
			got := ComputeSteps(domain.Settings{StaffSelectionMode: mode}, domain.GroupBookingSettings{Enabled: group})
			assert.Equal(t, group, contains(got, StepGroup), "mode=%s group=%v", mode, group)
			assert.Equal(t, mode == domain.StaffClientChooses, contains(got, StepStaff), "mode=%s group=%v", mode, group)
			assert.Equal(t, StepReview, got[len(got)-1])
		}
	}
}

func TestNavigator(t *testing.T) {
	nav := NewNavigator(domain.Settings{StaffSelectionMode: domain.StaffAnyoneDefault}, domain.GroupBookingSettings{})

	assert.Equal(t, StepVenue, nav.First())

	next, err := nav.Next(StepAddons)
	require.NoError(t, err)
	assert.Equal(t, StepSchedule, next)

	prev, err := nav.Previous(StepSchedule)
	require.NoError(t, err)
	assert.Equal(t, StepAddons, prev)

	_, err = nav.Next(StepReview)
	assert.ErrorIs(t, err, ErrNoNextStep)

	_, err = nav.Previous(StepVenue)
	assert.ErrorIs(t, err, ErrNoPreviousStep)

	_, err = nav.Next(StepStaff)
	assert.ErrorIs(t, err, ErrUnknownStep)
	assert.False(t, nav.Contains(StepStaff))
}

func TestAutoSkips(t *testing.T) {
	single := &domain.CatalogSnapshot{Categories: []domain.Category{{ID: "hair"}}}
	many := &domain.CatalogSnapshot{Categories: []domain.Category{{ID: "hair"}, {ID: "nails"}}}

	assert.True(t, AutoSkips(StepCategory, single))
	assert.False(t, AutoSkips(StepCategory, many))
	assert.False(t, AutoSkips(StepServices, single))
}

func contains(steps []Step, s Step) bool {
	for _, step := range steps {
		if step == s {
			return true
		}
	}
	return false
}
