// internal/analysis/budget.go
package analysis

import (
	"fmt"

	"lease-advisor/internal/models"
)

// BudgetStatus classifies a computed payment against the user's range.
type BudgetStatus string

const (
	StatusWithinBudget BudgetStatus = "within_budget"
	StatusBelowBudget  BudgetStatus = "below_budget"
	StatusAboveBudget  BudgetStatus = "above_budget"
	StatusNoBudgetSet  BudgetStatus = "no_budget_set"
)

// BudgetComparison is the per-vehicle classification result.
type BudgetComparison struct {
	CarInfo        string            `json:"car_info"`
	MonthlyPayment float64           `json:"monthly_payment"`
	UserMinBudget  *float64          `json:"user_min_budget,omitempty"`
	UserMaxBudget  *float64          `json:"user_max_budget,omitempty"`
	BudgetType     models.BudgetType `json:"budget_type,omitempty"`
	Status         BudgetStatus      `json:"status"`
	Reason         string            `json:"reason"`
}

// CompareMonthlyPayments classifies each vehicle's payment against the
// effective budget range. payments holds the engine-computed scenario-0
// payment per car key. The missing-bounds check runs once for the whole
// batch: if either bound of the selected range is absent, every vehicle is
// no_budget_set with a reason naming the budget type attempted. Bounds are
// inclusive: a payment exactly at min or max is within_budget.
func CompareMonthlyPayments(cars map[string]models.Vehicle, payments map[string]float64, criteria models.UserCriteria) map[string]BudgetComparison {
	comparison := make(map[string]BudgetComparison, len(cars))

	min, max, budgetType := criteria.EffectiveBudget()

	if min == nil || max == nil {
		for key, car := range cars {
			comparison[key] = BudgetComparison{
				CarInfo:        car.CarInfo(),
				MonthlyPayment: payments[key],
				Status:         StatusNoBudgetSet,
				Reason:         fmt.Sprintf("No valid %s budget values provided", budgetType),
			}
		}
		return comparison
	}

	for key, car := range cars {
		payment := payments[key]

		var status BudgetStatus
		var reason string
		switch {
		case payment < *min:
			status = StatusBelowBudget
			reason = fmt.Sprintf("Payment %.2f is below minimum %s budget of %.2f", payment, budgetType, *min)
		case payment <= *max:
			status = StatusWithinBudget
			reason = fmt.Sprintf("Payment %.2f is within %s budget range %.2f - %.2f", payment, budgetType, *min, *max)
		default:
			status = StatusAboveBudget
			reason = fmt.Sprintf("Payment %.2f exceeds maximum %s budget of %.2f", payment, budgetType, *max)
		}

		comparison[key] = BudgetComparison{
			CarInfo:        car.CarInfo(),
			MonthlyPayment: payment,
			UserMinBudget:  min,
			UserMaxBudget:  max,
			BudgetType:     budgetType,
			Status:         status,
			Reason:         reason,
		}
	}

	return comparison
}
