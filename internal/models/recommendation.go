// internal/models/recommendation.go
package models

// RecommendationDocument is the JSON payload extracted from a generative
// response. A missing recommendations field decodes to an empty slice.
type RecommendationDocument struct {
	Recommendations []Vehicle `json:"recommendations"`
}

// Vehicle is one candidate lease offer as reported by the external source.
// The source is string-leaning: msrp, residual, and money_factor routinely
// arrive quoted. Nothing in here is trusted until it passes normalization.
type Vehicle struct {
	Rank              FlexInt    `json:"rank"`
	Make              string     `json:"make"`
	Model             string     `json:"model"`
	Year              FlexInt    `json:"year"`
	Trim              string     `json:"trim"`
	Category          string     `json:"category"`
	MSRP              FlexString `json:"msrp"`
	Residual          FlexString `json:"residual"`
	MoneyFactor       FlexString `json:"money_factor"`
	MonthlyPayment    FlexFloat  `json:"monthly_payment"`
	DownPayment       FlexFloat  `json:"down_payment"`
	LeaseMonths       FlexInt    `json:"lease_months"`
	LeaseMilesPerYear FlexInt    `json:"lease_miles_per_year"`
	Source            string     `json:"source"`
}

// CarInfo renders the display name used in analysis output keys and reasons.
func (v Vehicle) CarInfo() string {
	return v.Make + " " + v.Model
}
