// internal/analysis/normalize.go
package analysis

import (
	"strconv"
	"strings"

	"lease-advisor/internal/models"
)

// Defaults applied when the source omits or mangles a lease term.
const (
	defaultMoneyFactor = 0.0000175
	defaultLeaseMonths = 36
)

// NormalizedVehicle carries the numeric lease terms after boundary parsing.
// The scenario calculator only ever receives this type; raw source values
// never cross that line.
type NormalizedVehicle struct {
	MSRP                   float64
	LeaseMonths            int
	ResidualPercent        float64
	MoneyFactor            float64
	LeaseMilesPerYear      int
	AdvisoryMonthlyPayment float64
}

// NormalizeVehicle converts one raw source vehicle into numeric lease terms.
// A zero MSRP marks the vehicle invalid downstream; money factor and lease
// months fall back to their defaults when absent or unparseable.
func NormalizeVehicle(v models.Vehicle) NormalizedVehicle {
	leaseMonths := v.LeaseMonths.Int()
	if leaseMonths == 0 {
		leaseMonths = defaultLeaseMonths
	}

	moneyFactor := parseCurrency(v.MoneyFactor.String())
	if moneyFactor == 0 {
		moneyFactor = defaultMoneyFactor
	}

	return NormalizedVehicle{
		MSRP:                   parseCurrency(v.MSRP.String()),
		LeaseMonths:            leaseMonths,
		ResidualPercent:        ConvertResidualToDecimal(v.Residual.String()),
		MoneyFactor:            moneyFactor,
		LeaseMilesPerYear:      v.LeaseMilesPerYear.Int(),
		AdvisoryMonthlyPayment: v.MonthlyPayment.Float64(),
	}
}

// ConvertResidualToDecimal normalizes a residual expressed as "58%", 58, or
// 0.58 into a decimal fraction in [0,1]. A value above 1 is treated as a
// whole percentage. Missing or unparseable input normalizes to 0, which
// callers treat as suspect data rather than a valid residual.
func ConvertResidualToDecimal(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	if strings.Contains(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, "%", "")), 64)
		if err != nil {
			return 0
		}
		return f / 100
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if f > 1 {
		return f / 100
	}
	return f
}

// parseCurrency parses a numeric amount that may carry a currency symbol and
// thousands separators. Unparseable input yields 0.
func parseCurrency(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
