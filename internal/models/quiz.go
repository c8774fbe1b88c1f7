// internal/models/quiz.go
package models

// QuizData is the raw quiz submission from the frontend. Numeric fields may
// arrive as strings, and multi-select fields may arrive as a single string.
type QuizData struct {
	Zipcode                    string        `json:"zipcode"`
	CarMake                    string        `json:"car_make"`
	CarMakeOther               string        `json:"car_make_other"`
	BodyType                   StringList    `json:"body_type"`
	Powertrain                 StringList    `json:"powertrain"`
	LowerBoundLeasePayment     OptionalFloat `json:"lower_bound_lease_payment"`
	UpperBoundLeasePayment     OptionalFloat `json:"upper_bound_lease_payment"`
	CustomMinBudget            OptionalFloat `json:"custom_min_budget"`
	CustomMaxBudget            OptionalFloat `json:"custom_max_budget"`
	DecisionMonthlyBudgetRange string        `json:"decision_monthly_budget_range"`
	DPBudget                   OptionalFloat `json:"dp_budget"`
	LeaseMiles                 FlexInt       `json:"lease_miles"`
}

// EffectiveMake resolves the free-text "other" entry.
func (q QuizData) EffectiveMake() string {
	if q.CarMake != "" {
		return q.CarMake
	}
	if q.CarMakeOther != "" {
		return q.CarMakeOther
	}
	return "any make"
}

// UserCriteria is the immutable budget view derived from one quiz
// submission. A nil bound means the user never set that value.
type UserCriteria struct {
	MinMonthlyPayment       *float64 `json:"minMonthlyPayment"`
	MaxMonthlyPayment       *float64 `json:"maxMonthlyPayment"`
	MinMonthlyPaymentCustom *float64 `json:"minMonthlyPaymentCustom"`
	MaxMonthlyPaymentCustom *float64 `json:"maxMonthlyPaymentCustom"`
	MonthlyPaymentDecision  string   `json:"monthlyPaymentDecision"`
	DownPayment             float64  `json:"downPayment"`
	AnnualMileage           int      `json:"annualMileage"`
	IncludeStretchOptions   bool     `json:"includeStretchOptions"`
}

// BudgetType identifies which pair of bounds is authoritative.
type BudgetType string

const (
	BudgetTypeRegular BudgetType = "regular"
	BudgetTypeCustom  BudgetType = "custom"
)

// EffectiveBudget selects the authoritative budget pair: the system-suggested
// range when the user accepted it ("Yes"), the custom range otherwise.
func (c UserCriteria) EffectiveBudget() (min, max *float64, budgetType BudgetType) {
	if c.MonthlyPaymentDecision == "Yes" {
		return c.MinMonthlyPayment, c.MaxMonthlyPayment, BudgetTypeRegular
	}
	return c.MinMonthlyPaymentCustom, c.MaxMonthlyPaymentCustom, BudgetTypeCustom
}
