package financing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homespark/campaigner/pkg/models"
)

func plan(number int, down, rate, monthly float64) models.Plan {
	return models.Plan{
		PlanNumber:     number,
		DownPayment:    down,
		InterestRate:   rate,
		MonthlyPayment: monthly,
		IsAvailable:    true,
	}
}

func TestSelectPlan_EmptyListYieldsNilSelection(t *testing.T) {
	selection := SelectPlan(nil, models.StrategyPlan1, nil)

	assert.Nil(t, selection.Plan)
	assert.False(t, selection.PendingManualChoice)
}

func TestSelectPlan_Plan1(t *testing.T) {
	plans := []models.Plan{plan(2, 10000, 5.0, 1500), plan(1, 20000, 4.5, 1200)}

	selection := SelectPlan(plans, models.StrategyPlan1, nil)
	require.NotNil(t, selection.Plan)
	assert.Equal(t, 1, selection.Plan.PlanNumber)
}

func TestSelectPlan_Plan1_NoNumberedFallsToFirst(t *testing.T) {
	plans := []models.Plan{plan(2, 10000, 5.0, 1500), plan(3, 20000, 4.5, 1200)}

	selection := SelectPlan(plans, models.StrategyPlan1, nil)
	require.NotNil(t, selection.Plan)
	assert.Equal(t, 2, selection.Plan.PlanNumber)
}

func TestSelectPlan_Plan2FallsBackToPlan1Rule(t *testing.T) {
	plans := []models.Plan{plan(1, 10000, 5.0, 1500), plan(3, 20000, 4.5, 1200)}

	// No plan #2: the fallback is the plan-1 rule, which must agree with the
	// plan-1 strategy on the same input.
	fromPlan2 := SelectPlan(plans, models.StrategyPlan2, nil)
	fromPlan1 := SelectPlan(plans, models.StrategyPlan1, nil)

	require.NotNil(t, fromPlan2.Plan)
	assert.Equal(t, fromPlan1.Plan.PlanNumber, fromPlan2.Plan.PlanNumber)
}

func TestSelectPlan_Plan2Native(t *testing.T) {
	plans := []models.Plan{plan(1, 10000, 5.0, 1500), plan(2, 20000, 4.5, 1200)}

	selection := SelectPlan(plans, models.StrategyPlan2, nil)
	require.NotNil(t, selection.Plan)
	assert.Equal(t, 2, selection.Plan.PlanNumber)
}

func TestSelectPlan_Plan3Native(t *testing.T) {
	plans := []models.Plan{plan(1, 10000, 5.0, 1500), plan(3, 20000, 4.5, 1200)}

	selection := SelectPlan(plans, models.StrategyPlan3, nil)
	require.NotNil(t, selection.Plan)
	assert.Equal(t, 3, selection.Plan.PlanNumber)
	assert.False(t, selection.PendingManualChoice)
}

func TestSelectPlan_Plan3SinglePlan(t *testing.T) {
	plans := []models.Plan{plan(2, 10000, 5.0, 1500)}

	selection := SelectPlan(plans, models.StrategyPlan3, nil)
	require.NotNil(t, selection.Plan)
	assert.Equal(t, 2, selection.Plan.PlanNumber)
	assert.False(t, selection.PendingManualChoice)
}

func TestSelectPlan_Plan3NoNativeNoOverrideFlagsPending(t *testing.T) {
	plans := []models.Plan{plan(1, 10000, 5.0, 1500), plan(2, 20000, 4.5, 1200)}

	selection := SelectPlan(plans, models.StrategyPlan3, nil)
	require.NotNil(t, selection.Plan)
	assert.Equal(t, 1, selection.Plan.PlanNumber)
	assert.True(t, selection.PendingManualChoice)
}

func TestSelectPlan_Plan3Override(t *testing.T) {
	plans := []models.Plan{plan(1, 10000, 5.0, 1500), plan(2, 20000, 4.5, 1200)}

	override := 2
	selection := SelectPlan(plans, models.StrategyPlan3, &override)
	require.NotNil(t, selection.Plan)
	assert.Equal(t, 2, selection.Plan.PlanNumber)
	assert.False(t, selection.PendingManualChoice)
}

func TestSelectPlan_Plan3OverrideMissingFallsBack(t *testing.T) {
	plans := []models.Plan{plan(1, 10000, 5.0, 1500), plan(2, 20000, 4.5, 1200)}

	override := 7
	selection := SelectPlan(plans, models.StrategyPlan3, &override)
	require.NotNil(t, selection.Plan)
	assert.Equal(t, 1, selection.Plan.PlanNumber)
	assert.False(t, selection.PendingManualChoice)
}

func TestSelectPlan_Extremums(t *testing.T) {
	plans := []models.Plan{
		plan(1, 10000, 5.0, 1500),
		plan(2, 5000, 6.5, 900),
		plan(3, 8000, 4.2, 2100),
	}

	tests := []struct {
		strategy models.PlanStrategy
		want     int
	}{
		{models.StrategyMonthlyLow, 2},
		{models.StrategyMonthlyHigh, 3},
		{models.StrategyDownPaymentLow, 2},
		{models.StrategyDownPaymentHigh, 1},
		{models.StrategyInterestLow, 3},
		{models.StrategyInterestHigh, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			selection := SelectPlan(plans, tt.strategy, nil)
			require.NotNil(t, selection.Plan)
			assert.Equal(t, tt.want, selection.Plan.PlanNumber)
		})
	}
}

func TestSelectPlan_TieKeepsFirstSeen(t *testing.T) {
	plans := []models.Plan{
		plan(1, 10000, 5.0, 1200),
		plan(2, 10000, 5.0, 1200),
	}

	for _, strategy := range []models.PlanStrategy{
		models.StrategyMonthlyLow,
		models.StrategyMonthlyHigh,
		models.StrategyDownPaymentLow,
		models.StrategyDownPaymentHigh,
		models.StrategyInterestLow,
		models.StrategyInterestHigh,
	} {
		selection := SelectPlan(plans, strategy, nil)
		require.NotNil(t, selection.Plan)
		assert.Equal(t, 1, selection.Plan.PlanNumber, "strategy %s broke the tie away from the first plan", strategy)
	}
}

func TestSelectPlan_Deterministic(t *testing.T) {
	plans := []models.Plan{
		plan(1, 10000, 5.0, 1500),
		plan(2, 5000, 6.5, 900),
	}

	first := SelectPlan(plans, models.StrategyDownPaymentLow, nil)

	for range 10 {
		again := SelectPlan(plans, models.StrategyDownPaymentLow, nil)
		assert.Equal(t, first.Plan.PlanNumber, again.Plan.PlanNumber)
	}
}

func TestSelectPlan_UnknownStrategyDegradesToPlan1Rule(t *testing.T) {
	plans := []models.Plan{plan(2, 10000, 5.0, 1500), plan(1, 20000, 4.5, 1200)}

	selection := SelectPlan(plans, models.PlanStrategy("vibes"), nil)
	require.NotNil(t, selection.Plan)
	assert.Equal(t, 1, selection.Plan.PlanNumber)
}
