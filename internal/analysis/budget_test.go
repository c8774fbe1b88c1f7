package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lease-advisor/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func testCars() map[string]models.Vehicle {
	return map[string]models.Vehicle{
		"car1": {Make: "BMW", Model: "X3"},
		"car2": {Make: "Toyota", Model: "Camry"},
	}
}

func TestCompareMonthlyPayments_RegularBudget(t *testing.T) {
	criteria := models.UserCriteria{
		MinMonthlyPayment:      floatPtr(400),
		MaxMonthlyPayment:      floatPtr(700),
		MonthlyPaymentDecision: "Yes",
	}
	payments := map[string]float64{"car1": 615.75, "car2": 320}

	comparison := CompareMonthlyPayments(testCars(), payments, criteria)
	require.Len(t, comparison, 2)

	within := comparison["car1"]
	assert.Equal(t, StatusWithinBudget, within.Status)
	assert.Equal(t, "BMW X3", within.CarInfo)
	assert.Equal(t, models.BudgetTypeRegular, within.BudgetType)
	assert.Equal(t, "Payment 615.75 is within regular budget range 400.00 - 700.00", within.Reason)

	below := comparison["car2"]
	assert.Equal(t, StatusBelowBudget, below.Status)
	assert.Equal(t, "Payment 320.00 is below minimum regular budget of 400.00", below.Reason)
}

func TestCompareMonthlyPayments_CustomBudget(t *testing.T) {
	criteria := models.UserCriteria{
		MinMonthlyPayment:       floatPtr(400),
		MaxMonthlyPayment:       floatPtr(700),
		MinMonthlyPaymentCustom: floatPtr(200),
		MaxMonthlyPaymentCustom: floatPtr(500),
		MonthlyPaymentDecision:  "No",
	}
	payments := map[string]float64{"car1": 615.75, "car2": 320}

	comparison := CompareMonthlyPayments(testCars(), payments, criteria)

	// The regular range is ignored when the user declined it.
	assert.Equal(t, StatusAboveBudget, comparison["car1"].Status)
	assert.Equal(t, models.BudgetTypeCustom, comparison["car1"].BudgetType)
	assert.Equal(t, "Payment 615.75 exceeds maximum custom budget of 500.00", comparison["car1"].Reason)
	assert.Equal(t, StatusWithinBudget, comparison["car2"].Status)
}

func TestCompareMonthlyPayments_InclusiveBounds(t *testing.T) {
	criteria := models.UserCriteria{
		MinMonthlyPayment:      floatPtr(400),
		MaxMonthlyPayment:      floatPtr(700),
		MonthlyPaymentDecision: "Yes",
	}

	tests := []struct {
		name     string
		payment  float64
		expected BudgetStatus
	}{
		{name: "exactly min", payment: 400, expected: StatusWithinBudget},
		{name: "exactly max", payment: 700, expected: StatusWithinBudget},
		{name: "one cent under min", payment: 399.99, expected: StatusBelowBudget},
		{name: "one cent over max", payment: 700.01, expected: StatusAboveBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cars := map[string]models.Vehicle{"car1": {Make: "BMW", Model: "X3"}}
			payments := map[string]float64{"car1": tt.payment}

			comparison := CompareMonthlyPayments(cars, payments, criteria)
			assert.Equal(t, tt.expected, comparison["car1"].Status)
		})
	}
}

func TestCompareMonthlyPayments_NoBudgetSet(t *testing.T) {
	tests := []struct {
		name     string
		criteria models.UserCriteria
		wantType models.BudgetType
	}{
		{
			name: "regular selected but missing max",
			criteria: models.UserCriteria{
				MinMonthlyPayment:      floatPtr(400),
				MonthlyPaymentDecision: "Yes",
			},
			wantType: models.BudgetTypeRegular,
		},
		{
			name:     "custom selected with no bounds at all",
			criteria: models.UserCriteria{MonthlyPaymentDecision: "No"},
			wantType: models.BudgetTypeCustom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments := map[string]float64{"car1": 615.75, "car2": 320}
			comparison := CompareMonthlyPayments(testCars(), payments, tt.criteria)

			for _, c := range comparison {
				assert.Equal(t, StatusNoBudgetSet, c.Status)
				assert.Equal(t, "No valid "+string(tt.wantType)+" budget values provided", c.Reason)
				assert.Nil(t, c.UserMinBudget)
				assert.Nil(t, c.UserMaxBudget)
			}
		})
	}
}
