// internal/analysis/scenario.go
package analysis

import (
	"fmt"
	"math"
)

// downPaymentMultipliers is the fixed scenario ladder. Index 0 is the
// "original" entry at the user's actual down payment; index 5 (1.0, "100%")
// yields the same numbers. The duplication is intentional and preserved for
// compatibility with the consuming charts.
var downPaymentMultipliers = []float64{1, 0.2, 0.4, 0.6, 0.8, 1.0, 1.2, 1.4, 1.6}

// Scenario is one payment computation at a specific down-payment level. All
// fields are derived and immutable once computed.
type Scenario struct {
	Scenario              string  `json:"scenario"`
	DownPayment           float64 `json:"down_payment"`
	DownPaymentMultiplier float64 `json:"down_payment_multiplier"`
	CapCost               float64 `json:"cap_cost"`
	ResidualValue         float64 `json:"residual_value"`
	Depreciation          float64 `json:"depreciation"`
	FinanceFee            float64 `json:"finance_fee"`
	MonthlyPayment        float64 `json:"monthly_payment"`
}

// OriginalData snapshots the normalized inputs a scenario set was derived from.
type OriginalData struct {
	MSRP              float64 `json:"msrp"`
	LeaseMonths       int     `json:"lease_months"`
	ResidualPercent   float64 `json:"residual_percent"`
	MoneyFactor       float64 `json:"money_factor"`
	UserDownPayment   float64 `json:"user_down_payment"`
	LeaseMilesPerYear int     `json:"lease_miles_per_year"`
}

// ScenarioSet is the per-vehicle result: either nine scenarios plus the input
// snapshot, or an explicit missing-data error and no scenarios.
type ScenarioSet struct {
	CarInfo      string        `json:"car_info"`
	Error        string        `json:"error,omitempty"`
	OriginalData *OriginalData `json:"original_data,omitempty"`
	Scenarios    []Scenario    `json:"scenarios"`
}

// Failed reports whether the vehicle's terms were unusable.
func (s ScenarioSet) Failed() bool {
	return s.Error != ""
}

// CalculateScenarios produces the nine payment scenarios for one vehicle.
// Intermediate math runs at full precision; rounding happens only on output:
// down_payment, cap_cost, and residual_value round to the nearest whole
// currency unit, the per-month amounts round to 2 decimal places.
func CalculateScenarios(carInfo string, v NormalizedVehicle, userDownPayment float64) ScenarioSet {
	if v.MSRP == 0 || v.LeaseMonths == 0 {
		return ScenarioSet{
			CarInfo:   carInfo,
			Error:     "Missing essential data (MSRP or lease months)",
			Scenarios: []Scenario{},
		}
	}

	scenarios := make([]Scenario, 0, len(downPaymentMultipliers))
	for i, multiplier := range downPaymentMultipliers {
		downPayment := userDownPayment * multiplier
		capCost := v.MSRP - downPayment
		residualValue := v.MSRP * v.ResidualPercent
		depreciation := (capCost - residualValue) / float64(v.LeaseMonths)
		financeFee := (capCost + residualValue) * v.MoneyFactor
		totalPayment := depreciation + financeFee

		label := "original"
		if i != 0 {
			label = fmt.Sprintf("%d%%", int(math.Round(multiplier*100)))
		}

		scenarios = append(scenarios, Scenario{
			Scenario:              label,
			DownPayment:           math.Round(downPayment),
			DownPaymentMultiplier: multiplier,
			CapCost:               math.Round(capCost),
			ResidualValue:         math.Round(residualValue),
			Depreciation:          round2(depreciation),
			FinanceFee:            round2(financeFee),
			MonthlyPayment:        round2(totalPayment),
		})
	}

	return ScenarioSet{
		CarInfo: carInfo,
		OriginalData: &OriginalData{
			MSRP:              v.MSRP,
			LeaseMonths:       v.LeaseMonths,
			ResidualPercent:   v.ResidualPercent,
			MoneyFactor:       v.MoneyFactor,
			UserDownPayment:   userDownPayment,
			LeaseMilesPerYear: v.LeaseMilesPerYear,
		},
		Scenarios: scenarios,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
