package policy

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/homespark/campaigner/pkg/models"
)

// EvaluateCondition evaluates one condition group against trigger context
// data. MatchAll requires every clause to hold; otherwise one suffices.
// An empty clause list evaluates to true.
func EvaluateCondition(condition models.Condition, data map[string]any) (bool, error) {
	if len(condition.Clauses) == 0 {
		return true, nil
	}

	for i, clause := range condition.Clauses {
		holds, err := EvaluateClause(clause, data)
		if err != nil {
			return false, fmt.Errorf("clause %d (%s): %w", i, clause.Field, err)
		}

		if condition.MatchAll && !holds {
			return false, nil
		}

		if !condition.MatchAll && holds {
			return true, nil
		}
	}

	// AND: no clause failed. OR: no clause held.
	return condition.MatchAll, nil
}

// EvaluateClause evaluates a single clause against context data. A missing
// field is treated as a nil value, not an error.
func EvaluateClause(clause models.Clause, data map[string]any) (bool, error) {
	actual := data[clause.Field]

	switch clause.Operator {
	case models.OperatorEquals:
		return equalValues(actual, clause.Value), nil

	case models.OperatorNotEquals:
		return !equalValues(actual, clause.Value), nil

	case models.OperatorContains:
		return containsValue(actual, clause.Value), nil

	case models.OperatorNotContains:
		return !containsValue(actual, clause.Value), nil

	case models.OperatorGreaterThan:
		ordering, err := compareValues(actual, clause.Value)
		if err != nil {
			return false, err
		}

		return ordering > 0, nil

	case models.OperatorLessThan:
		ordering, err := compareValues(actual, clause.Value)
		if err != nil {
			return false, err
		}

		return ordering < 0, nil

	case models.OperatorBetween:
		lower, err := compareValues(actual, clause.Value)
		if err != nil {
			return false, err
		}

		upper, err := compareValues(actual, clause.SecondValue)
		if err != nil {
			return false, err
		}

		// Inclusive on both bounds.
		return lower >= 0 && upper <= 0, nil

	case models.OperatorIn:
		return listContains(clause.Value, actual), nil

	case models.OperatorNotIn:
		return !listContains(clause.Value, actual), nil

	default:
		return false, fmt.Errorf("unknown operator %q", clause.Operator)
	}
}

// equalValues compares two loosely typed values, preferring numeric equality
// when both sides are numeric so 2 and 2.0 compare equal across JSON decodes.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	aNum, aOK := toFloat(a)
	bNum, bOK := toFloat(b)

	if aOK && bOK {
		return aNum == bNum
	}

	return toString(a) == toString(b)
}

// containsValue implements substring matching for strings and membership for
// lists.
func containsValue(haystack, needle any) bool {
	switch h := haystack.(type) {
	case string:
		return strings.Contains(h, toString(needle))
	default:
		return listContains(haystack, needle)
	}
}

// listContains reports whether list (a loosely typed slice) contains value.
func listContains(list, value any) bool {
	switch items := list.(type) {
	case []any:
		for _, item := range items {
			if equalValues(item, value) {
				return true
			}
		}
	case []string:
		for _, item := range items {
			if equalValues(item, value) {
				return true
			}
		}
	case []float64:
		for _, item := range items {
			if equalValues(item, value) {
				return true
			}
		}
	case []int:
		for _, item := range items {
			if equalValues(item, value) {
				return true
			}
		}
	}

	return false
}

// compareValues orders two values numerically or by date, returning -1, 0 or
// 1. Values that are neither numeric nor dates cannot be ordered.
func compareValues(a, b any) (int, error) {
	aNum, aOK := toFloat(a)
	bNum, bOK := toFloat(b)

	if aOK && bOK {
		switch {
		case aNum < bNum:
			return -1, nil
		case aNum > bNum:
			return 1, nil
		default:
			return 0, nil
		}
	}

	aTime, aOK := toTime(a)
	bTime, bOK := toTime(b)

	if aOK && bOK {
		switch {
		case aTime.Before(bTime):
			return -1, nil
		case aTime.After(bTime):
			return 1, nil
		default:
			return 0, nil
		}
	}

	return 0, fmt.Errorf("cannot order %T against %T", a, b)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}

		return parsed, true
	default:
		return 0, false
	}
}

func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed, true
			}
		}
	}

	return time.Time{}, false
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
