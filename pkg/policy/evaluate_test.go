package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homespark/campaigner/pkg/models"
)

func TestEvaluateClause_Operators(t *testing.T) {
	data := map[string]any{
		"price":   350000.0,
		"city":    "Austin",
		"tags":    []any{"waterfront", "new"},
		"listed":  "2026-05-01",
		"bedroom": 3,
	}

	tests := []struct {
		name   string
		clause models.Clause
		want   bool
	}{
		{"equals string", models.Clause{Field: "city", Operator: models.OperatorEquals, Value: "Austin"}, true},
		{"equals numeric across types", models.Clause{Field: "bedroom", Operator: models.OperatorEquals, Value: 3.0}, true},
		{"not_equals", models.Clause{Field: "city", Operator: models.OperatorNotEquals, Value: "Dallas"}, true},
		{"contains substring", models.Clause{Field: "city", Operator: models.OperatorContains, Value: "ust"}, true},
		{"contains list member", models.Clause{Field: "tags", Operator: models.OperatorContains, Value: "new"}, true},
		{"not_contains", models.Clause{Field: "tags", Operator: models.OperatorNotContains, Value: "pool"}, true},
		{"greater_than", models.Clause{Field: "price", Operator: models.OperatorGreaterThan, Value: 300000}, true},
		{"less_than false", models.Clause{Field: "price", Operator: models.OperatorLessThan, Value: 300000}, false},
		{"between inclusive lower", models.Clause{Field: "price", Operator: models.OperatorBetween, Value: 350000, SecondValue: 400000}, true},
		{"between inclusive upper", models.Clause{Field: "price", Operator: models.OperatorBetween, Value: 300000, SecondValue: 350000}, true},
		{"between outside", models.Clause{Field: "price", Operator: models.OperatorBetween, Value: 400000, SecondValue: 500000}, false},
		{"between dates", models.Clause{Field: "listed", Operator: models.OperatorBetween, Value: "2026-04-01", SecondValue: "2026-06-01"}, true},
		{"in", models.Clause{Field: "city", Operator: models.OperatorIn, Value: []string{"Austin", "Dallas"}}, true},
		{"not_in", models.Clause{Field: "city", Operator: models.OperatorNotIn, Value: []string{"Houston"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateClause(tt.clause, data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateClause_MissingFieldIsNil(t *testing.T) {
	holds, err := EvaluateClause(models.Clause{
		Field:    "nope",
		Operator: models.OperatorEquals,
		Value:    nil,
	}, map[string]any{})
	require.NoError(t, err)
	assert.True(t, holds)

	holds, err = EvaluateClause(models.Clause{
		Field:    "nope",
		Operator: models.OperatorEquals,
		Value:    "something",
	}, map[string]any{})
	require.NoError(t, err)
	assert.False(t, holds)
}

func TestEvaluateClause_UnorderableValues(t *testing.T) {
	_, err := EvaluateClause(models.Clause{
		Field:    "city",
		Operator: models.OperatorGreaterThan,
		Value:    100,
	}, map[string]any{"city": "Austin"})
	require.Error(t, err)
}

func TestEvaluateCondition_MatchAll(t *testing.T) {
	data := map[string]any{"price": 200000.0, "city": "Austin"}

	condition := models.Condition{
		Category: models.CategoryPropertyData,
		MatchAll: true,
		Clauses: []models.Clause{
			{Field: "price", Operator: models.OperatorLessThan, Value: 300000},
			{Field: "city", Operator: models.OperatorEquals, Value: "Austin"},
		},
	}

	holds, err := EvaluateCondition(condition, data)
	require.NoError(t, err)
	assert.True(t, holds)

	condition.Clauses[1].Value = "Dallas"

	holds, err = EvaluateCondition(condition, data)
	require.NoError(t, err)
	assert.False(t, holds)
}

func TestEvaluateCondition_AnyMatch(t *testing.T) {
	data := map[string]any{"price": 200000.0}

	condition := models.Condition{
		Category: models.CategoryPropertyData,
		Clauses: []models.Clause{
			{Field: "price", Operator: models.OperatorGreaterThan, Value: 900000},
			{Field: "price", Operator: models.OperatorLessThan, Value: 300000},
		},
	}

	holds, err := EvaluateCondition(condition, data)
	require.NoError(t, err)
	assert.True(t, holds)
}

func TestEvaluateCondition_EmptyClausesIsTrue(t *testing.T) {
	holds, err := EvaluateCondition(models.Condition{Category: models.CategoryContactData}, nil)
	require.NoError(t, err)
	assert.True(t, holds)
}
