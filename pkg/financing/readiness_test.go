package financing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homespark/campaigner/pkg/models"
)

func TestReady_FinancingDisabled(t *testing.T) {
	selections := []Selection{
		{Plan: &models.Plan{PlanNumber: 1, MonthlyPayment: 0}},
	}

	assert.True(t, Ready(false, selections))
}

func TestReady_NoFinancedProperties(t *testing.T) {
	assert.True(t, Ready(true, nil))
	assert.True(t, Ready(true, []Selection{{Plan: nil}, {Plan: nil}}))
}

func TestReady_AllFinancedHavePositiveMonthly(t *testing.T) {
	selections := []Selection{
		{Plan: &models.Plan{PlanNumber: 1, MonthlyPayment: 1200}},
		{Plan: nil}, // ineligible property, does not count
		{Plan: &models.Plan{PlanNumber: 2, MonthlyPayment: 900}},
	}

	assert.True(t, Ready(true, selections))
}

func TestReady_ZeroMonthlyBlocksSend(t *testing.T) {
	selections := []Selection{
		{Plan: &models.Plan{PlanNumber: 1, MonthlyPayment: 1200}},
		{Plan: &models.Plan{PlanNumber: 2, MonthlyPayment: 0}},
	}

	assert.False(t, Ready(true, selections))
}
