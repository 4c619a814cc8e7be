package policy

import (
	"fmt"

	"github.com/homespark/campaigner/pkg/models"
)

// CheckConditions validates a proposed condition list against the trigger's
// policy. A condition whose category the trigger disables is rejected: the
// trigger already guarantees that filter, so allowing it would be redundant
// or contradictory. Malformed clause shapes (a between without a second
// value, an in without a list) are rejected here as well.
func CheckConditions(trigger models.Trigger, conditions []models.Condition) ValidationErrors {
	triggerPolicy := ForTrigger(trigger)

	var errs ValidationErrors

	for i, condition := range conditions {
		if triggerPolicy.DisablesCategory(condition.Category) {
			errs = append(errs, FieldError{
				Field: fmt.Sprintf("conditions[%d].category", i),
				Message: fmt.Sprintf("category %q is redundant for trigger %q: the trigger already filters on it",
					condition.Category, trigger.Kind),
			})
		}

		for j, clause := range condition.Clauses {
			errs = append(errs, checkClauseShape(clause, i, j)...)
		}
	}

	return errs
}

func checkClauseShape(clause models.Clause, conditionIdx, clauseIdx int) ValidationErrors {
	var errs ValidationErrors

	field := func(name string) string {
		return fmt.Sprintf("conditions[%d].clauses[%d].%s", conditionIdx, clauseIdx, name)
	}

	switch clause.Operator {
	case models.OperatorBetween:
		if clause.SecondValue == nil {
			errs = append(errs, FieldError{
				Field:   field("second_value"),
				Message: "between requires a second value",
			})
		}
	case models.OperatorIn, models.OperatorNotIn:
		if !isList(clause.Value) {
			errs = append(errs, FieldError{
				Field:   field("value"),
				Message: fmt.Sprintf("%s requires a list value", clause.Operator),
			})
		}
	case models.OperatorEquals, models.OperatorNotEquals,
		models.OperatorContains, models.OperatorNotContains,
		models.OperatorGreaterThan, models.OperatorLessThan:
		// No extra shape requirements.
	default:
		errs = append(errs, FieldError{
			Field:   field("operator"),
			Message: fmt.Sprintf("unknown operator %q", clause.Operator),
		})
	}

	return errs
}

func isList(value any) bool {
	switch value.(type) {
	case []any, []string, []float64, []int:
		return true
	default:
		return false
	}
}
