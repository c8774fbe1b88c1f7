// internal/recommend/fallback.go
package recommend

import "lease-advisor/internal/models"

// FallbackDocument returns the deterministic recommendation set served when
// the external source is unreachable, so the quiz UI always has something to
// render. These are broadly available national lease programs, not live
// offers.
func FallbackDocument() *models.RecommendationDocument {
	return &models.RecommendationDocument{
		Recommendations: []models.Vehicle{
			{
				Rank:              1,
				Make:              "Toyota",
				Model:             "Camry SE",
				Year:              2025,
				Trim:              "SE",
				Category:          "Sedan",
				MSRP:              "29855",
				Residual:          "60%",
				MoneyFactor:       "0.00160",
				MonthlyPayment:    339,
				LeaseMonths:       36,
				LeaseMilesPerYear: 12000,
				Source:            "Toyota.com",
			},
			{
				Rank:              2,
				Make:              "Honda",
				Model:             "CR-V EX",
				Year:              2025,
				Trim:              "EX",
				Category:          "SUV",
				MSRP:              "33350",
				Residual:          "58%",
				MoneyFactor:       "0.00180",
				MonthlyPayment:    379,
				LeaseMonths:       36,
				LeaseMilesPerYear: 12000,
				Source:            "Honda.com",
			},
			{
				Rank:              3,
				Make:              "Hyundai",
				Model:             "Tucson SEL",
				Year:              2025,
				Trim:              "SEL",
				Category:          "SUV",
				MSRP:              "31250",
				Residual:          "55%",
				MoneyFactor:       "0.00150",
				MonthlyPayment:    329,
				LeaseMonths:       36,
				LeaseMilesPerYear: 12000,
				Source:            "Hyundai.com",
			},
		},
	}
}
