// Package financing picks one financing plan per property for financed
// campaigns. Selection is deterministic: identical inputs always yield the
// identical plan.
package financing

import "github.com/homespark/campaigner/pkg/models"

// Selection is the outcome of plan selection for one property.
type Selection struct {
	// Plan is nil when no plan qualifies; the property is then
	// financing-ineligible for the campaign.
	Plan *models.Plan

	// PendingManualChoice is set by the plan-3 strategy when the property has
	// more than one plan, no native plan #3, and no manual override yet. The
	// selection falls back to the plan-1 rule until the user picks.
	PendingManualChoice bool
}

// SelectPlan picks one plan from a property's available plans by strategy.
// plans must already be filtered to available ones, in declaration order.
// override is the property's entry from the campaign's custom plan
// selections (nil when unset); only the plan-3 strategy consults it.
func SelectPlan(plans []models.Plan, strategy models.PlanStrategy, override *int) Selection {
	if len(plans) == 0 {
		return Selection{}
	}

	switch strategy {
	case models.StrategyPlan2:
		if plan := byNumber(plans, 2); plan != nil {
			return Selection{Plan: plan}
		}
		// Absent plan #2 falls back to the plan-1 rule, not simply the first
		// plan.
		return Selection{Plan: firstOrNumbered(plans, 1)}

	case models.StrategyPlan3:
		return selectPlan3(plans, override)

	case models.StrategyMonthlyLow:
		return Selection{Plan: extremum(plans, monthlyPayment, less)}
	case models.StrategyMonthlyHigh:
		return Selection{Plan: extremum(plans, monthlyPayment, greater)}
	case models.StrategyDownPaymentLow:
		return Selection{Plan: extremum(plans, downPayment, less)}
	case models.StrategyDownPaymentHigh:
		return Selection{Plan: extremum(plans, downPayment, greater)}
	case models.StrategyInterestLow:
		return Selection{Plan: extremum(plans, interestRate, less)}
	case models.StrategyInterestHigh:
		return Selection{Plan: extremum(plans, interestRate, greater)}

	default:
		// plan-1, and any unknown strategy that slipped past validation.
		return Selection{Plan: firstOrNumbered(plans, 1)}
	}
}

func selectPlan3(plans []models.Plan, override *int) Selection {
	if plan := byNumber(plans, 3); plan != nil {
		return Selection{Plan: plan}
	}

	if len(plans) == 1 {
		return Selection{Plan: &plans[0]}
	}

	if override != nil {
		if plan := byNumber(plans, *override); plan != nil {
			return Selection{Plan: plan}
		}

		return Selection{Plan: firstOrNumbered(plans, 1)}
	}

	return Selection{
		Plan:                firstOrNumbered(plans, 1),
		PendingManualChoice: true,
	}
}

// firstOrNumbered is the plan-1 rule: the plan with the given number, else
// the first available plan.
func firstOrNumbered(plans []models.Plan, number int) *models.Plan {
	if plan := byNumber(plans, number); plan != nil {
		return plan
	}

	return &plans[0]
}

func byNumber(plans []models.Plan, number int) *models.Plan {
	for i := range plans {
		if plans[i].PlanNumber == number {
			return &plans[i]
		}
	}

	return nil
}

// extremum folds over the plans comparing the named field. The comparison is
// strict, so the first-seen plan wins ties.
func extremum(plans []models.Plan, field func(models.Plan) float64, better func(a, b float64) bool) *models.Plan {
	best := &plans[0]

	for i := 1; i < len(plans); i++ {
		if better(field(plans[i]), field(*best)) {
			best = &plans[i]
		}
	}

	return best
}

func monthlyPayment(p models.Plan) float64 { return p.MonthlyPayment }
func downPayment(p models.Plan) float64    { return p.DownPayment }
func interestRate(p models.Plan) float64   { return p.InterestRate }

func less(a, b float64) bool    { return a < b }
func greater(a, b float64) bool { return a > b }
