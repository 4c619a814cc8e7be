package models

// ConditionCategory groups conditions by the data they filter on.
type ConditionCategory string

const (
	CategoryPropertyData ConditionCategory = "property_data"
	CategoryCampaignData ConditionCategory = "campaign_data"
	CategoryContactData  ConditionCategory = "contact_data"
)

// Operator is a clause comparison operator.
type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "not_equals"
	OperatorContains    Operator = "contains"
	OperatorNotContains Operator = "not_contains"
	OperatorGreaterThan Operator = "greater_than"
	OperatorLessThan    Operator = "less_than"
	OperatorBetween     Operator = "between"
	OperatorIn          Operator = "in"
	OperatorNotIn       Operator = "not_in"
)

// Clause is a single field comparison inside a condition group.
// SecondValue is only meaningful for the between operator.
type Clause struct {
	Field       string   `json:"field"                  validate:"required"`
	Operator    Operator `json:"operator"               validate:"required,oneof=equals not_equals contains not_contains greater_than less_than between in not_in"`
	Value       any      `json:"value"`
	SecondValue any      `json:"second_value,omitempty"`
}

// Condition is a group of clauses evaluated against trigger context before
// an action fires. MatchAll selects AND semantics over the clauses; otherwise
// at least one clause must hold.
type Condition struct {
	Category ConditionCategory `json:"category"  validate:"required,oneof=property_data campaign_data contact_data"`
	MatchAll bool              `json:"match_all"`
	Clauses  []Clause          `json:"clauses"   validate:"required,min=1,dive"`
}
