// internal/analysis/criteria.go
package analysis

import "lease-advisor/internal/models"

// ExtractCriteria distills the raw quiz submission into the budget view the
// rest of the pipeline works with. Absent or zero-valued bounds come through
// as nil.
func ExtractCriteria(quiz models.QuizData) models.UserCriteria {
	return models.UserCriteria{
		MinMonthlyPayment:       quiz.LowerBoundLeasePayment.Ptr(),
		MaxMonthlyPayment:       quiz.UpperBoundLeasePayment.Ptr(),
		MinMonthlyPaymentCustom: quiz.CustomMinBudget.Ptr(),
		MaxMonthlyPaymentCustom: quiz.CustomMaxBudget.Ptr(),
		MonthlyPaymentDecision:  quiz.DecisionMonthlyBudgetRange,
		DownPayment:             quiz.DPBudget.Value,
		AnnualMileage:           quiz.LeaseMiles.Int(),
		IncludeStretchOptions:   true,
	}
}
