package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lease-advisor/internal/models"
)

func TestConvertResidualToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "percent string", input: "58%", expected: 0.58},
		{name: "percent string with spaces", input: " 58 % ", expected: 0.58},
		{name: "whole number", input: "58", expected: 0.58},
		{name: "decimal fraction", input: "0.58", expected: 0.58},
		{name: "exactly one", input: "1", expected: 1},
		{name: "empty", input: "", expected: 0},
		{name: "garbage", input: "n/a", expected: 0},
		{name: "garbage percent", input: "abc%", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConvertResidualToDecimal(tt.input))
		})
	}
}

func TestNormalizeVehicle_StringLeaningPayload(t *testing.T) {
	raw := `{
		"make": "BMW",
		"model": "X3",
		"msrp": "$55,890",
		"residual": "58%",
		"money_factor": "0.0019",
		"lease_months": "39",
		"lease_miles_per_year": 10000,
		"monthly_payment": "615.75"
	}`

	var v models.Vehicle
	require.NoError(t, json.Unmarshal([]byte(raw), &v))

	n := NormalizeVehicle(v)
	assert.Equal(t, float64(55890), n.MSRP)
	assert.Equal(t, 39, n.LeaseMonths)
	assert.Equal(t, 0.58, n.ResidualPercent)
	assert.Equal(t, 0.0019, n.MoneyFactor)
	assert.Equal(t, 10000, n.LeaseMilesPerYear)
	assert.Equal(t, 615.75, n.AdvisoryMonthlyPayment)
}

func TestNormalizeVehicle_Defaults(t *testing.T) {
	var v models.Vehicle
	require.NoError(t, json.Unmarshal([]byte(`{"make":"Toyota","model":"Camry","msrp":29000}`), &v))

	n := NormalizeVehicle(v)
	assert.Equal(t, float64(29000), n.MSRP)
	assert.Equal(t, 36, n.LeaseMonths)
	assert.Equal(t, 0.0000175, n.MoneyFactor)
	assert.Equal(t, float64(0), n.ResidualPercent)
}

func TestNormalizeVehicle_UnparseableMSRPIsZero(t *testing.T) {
	var v models.Vehicle
	require.NoError(t, json.Unmarshal([]byte(`{"make":"X","model":"Y","msrp":"call dealer"}`), &v))

	n := NormalizeVehicle(v)
	assert.Equal(t, float64(0), n.MSRP)
}
