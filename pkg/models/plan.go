package models

// Plan is one of up to three predefined financing offers attached to a
// property. Unavailable plans are excluded from selection regardless of
// their numeric fields.
type Plan struct {
	PlanNumber     int     `json:"plan_number"     validate:"required,min=1,max=3"`
	DownPayment    float64 `json:"down_payment"`
	LoanAmount     float64 `json:"loan_amount"`
	InterestRate   float64 `json:"interest_rate"`
	MonthlyPayment float64 `json:"monthly_payment"`
	IsAvailable    bool    `json:"is_available"`
}

// PlanStrategy names the rule used to pick one financing plan per property
// in a multi-property campaign.
type PlanStrategy string

const (
	StrategyPlan1           PlanStrategy = "plan-1"
	StrategyPlan2           PlanStrategy = "plan-2"
	StrategyPlan3           PlanStrategy = "plan-3"
	StrategyMonthlyLow      PlanStrategy = "monthly-low"
	StrategyMonthlyHigh     PlanStrategy = "monthly-high"
	StrategyDownPaymentLow  PlanStrategy = "down-payment-low"
	StrategyDownPaymentHigh PlanStrategy = "down-payment-high"
	StrategyInterestLow     PlanStrategy = "interest-low"
	StrategyInterestHigh    PlanStrategy = "interest-high"
)

// PlanStrategies lists every valid strategy identifier.
var PlanStrategies = []PlanStrategy{
	StrategyPlan1,
	StrategyPlan2,
	StrategyPlan3,
	StrategyMonthlyLow,
	StrategyMonthlyHigh,
	StrategyDownPaymentLow,
	StrategyDownPaymentHigh,
	StrategyInterestLow,
	StrategyInterestHigh,
}

// IsValid reports whether s is a known plan strategy identifier.
func (s PlanStrategy) IsValid() bool {
	for _, known := range PlanStrategies {
		if s == known {
			return true
		}
	}

	return false
}
