// internal/models/deal.go
package models

import "time"

// Deal is one row of the curated current_deals table shown to the quiz UI.
type Deal struct {
	ID                      int64     `json:"id"`
	Make                    string    `json:"make"`
	Model                   string    `json:"model"`
	Year                    int       `json:"year"`
	Category                string    `json:"category"`
	EstimatedMonthlyPayment float64   `json:"estimated_monthly_payment"`
	EstimatedDownPayment    float64   `json:"estimated_down_payment"`
	Active                  bool      `json:"active"`
	CreatedAt               time.Time `json:"created_at"`
}
