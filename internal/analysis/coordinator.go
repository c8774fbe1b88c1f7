// internal/analysis/coordinator.go
package analysis

import (
	"fmt"

	"lease-advisor/internal/common/logger"
	"lease-advisor/internal/common/metrics"
	"lease-advisor/internal/models"
)

// Result is the full analysis payload returned alongside the raw
// recommendations. Keys in IndividualCars, PaymentCalculations and
// MonthlyPaymentComparison line up ("car1", "car2", ...).
type Result struct {
	Success                  bool                        `json:"success"`
	Error                    string                      `json:"error,omitempty"`
	Recommendations          []models.Vehicle            `json:"recommendations"`
	IndividualCars           map[string]models.Vehicle   `json:"individualCars"`
	UserCriteria             models.UserCriteria         `json:"userCriteria"`
	PaymentCalculations      map[string]ScenarioSet      `json:"paymentCalculations"`
	MonthlyPaymentComparison map[string]BudgetComparison `json:"monthlyPaymentComparison"`
}

// Coordinator runs the deterministic half of the pipeline: split the
// recommendation document into per-vehicle entries, compute payment scenarios
// for each, and classify every vehicle against the user's budget.
type Coordinator struct {
	logger logger.Logger
}

func NewCoordinator(log logger.Logger) *Coordinator {
	return &Coordinator{logger: log}
}

// Analyze never returns an error: any panic inside the numeric pipeline is
// converted into a structured failure result so the caller can still ship the
// raw recommendations to the client.
func (c *Coordinator) Analyze(doc models.RecommendationDocument, quiz models.QuizData) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("analysis pipeline panicked", map[string]interface{}{
				"panic": fmt.Sprintf("%v", r),
			})
			result = Result{
				Success: false,
				Error:   fmt.Sprintf("analysis failed: %v", r),
			}
		}
	}()

	criteria := ExtractCriteria(quiz)
	cars := splitRecommendations(doc)

	calculations := make(map[string]ScenarioSet, len(cars))
	payments := make(map[string]float64, len(cars))

	for key, car := range cars {
		normalized := NormalizeVehicle(car)
		set := CalculateScenarios(car.CarInfo(), normalized, criteria.DownPayment)
		calculations[key] = set
		metrics.VehiclesAnalyzed.Inc()

		if set.Failed() {
			// scenario math had nothing to work with, fall back to the
			// payment the source itself quoted
			payments[key] = normalized.AdvisoryMonthlyPayment
			c.logger.Warn("scenario calculation failed, using advisory payment", map[string]interface{}{
				"car":     car.CarInfo(),
				"key":     key,
				"payment": normalized.AdvisoryMonthlyPayment,
			})
			continue
		}
		payments[key] = set.Scenarios[0].MonthlyPayment
	}

	comparison := CompareMonthlyPayments(cars, payments, criteria)

	c.logger.Info("analysis complete", map[string]interface{}{
		"vehicles": len(cars),
	})

	return Result{
		Success:                  true,
		Recommendations:          doc.Recommendations,
		IndividualCars:           cars,
		UserCriteria:             criteria,
		PaymentCalculations:      calculations,
		MonthlyPaymentComparison: comparison,
	}
}

// splitRecommendations keys each vehicle by its 1-based position.
func splitRecommendations(doc models.RecommendationDocument) map[string]models.Vehicle {
	cars := make(map[string]models.Vehicle, len(doc.Recommendations))
	for i, vehicle := range doc.Recommendations {
		cars[fmt.Sprintf("car%d", i+1)] = vehicle
	}
	return cars
}
