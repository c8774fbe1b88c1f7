// internal/models/lead.go
package models

import "time"

type Customer struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type Lead struct {
	ID                   int64     `json:"id"`
	CustomerID           int64     `json:"customer_id"`
	CustomerPreferences  string    `json:"customer_preferences"`
	MaxMonthlyBudget     float64   `json:"max_monthly_budget"`
	AvailableDownPayment float64   `json:"available_down_payment"`
	PreferredCategory    string    `json:"preferred_category"`
	KnowsCarType         bool      `json:"knows_car_type"`
	QualificationStatus  string    `json:"qualification_status"`
	CreatedAt            time.Time `json:"created_at"`

	// Populated on admin reads only.
	FirstName          string         `json:"first_name,omitempty"`
	LastName           string         `json:"last_name,omitempty"`
	Email              string         `json:"email,omitempty"`
	Phone              string         `json:"phone,omitempty"`
	SelectedDealsCount int            `json:"selected_deals_count,omitempty"`
	SelectedDeals      []SelectedDeal `json:"selected_deals,omitempty"`
}

// SelectedDealInput is the request shape for attaching deals to a new lead.
type SelectedDealInput struct {
	DealID        int64  `json:"deal_id"`
	PriorityRank  int    `json:"priority_rank"`
	CustomerNotes string `json:"customer_notes"`
}

// SelectedDeal is a lead's chosen deal joined with the deal's summary fields.
type SelectedDeal struct {
	ID                      int64   `json:"id"`
	LeadID                  int64   `json:"lead_id"`
	DealID                  int64   `json:"deal_id"`
	PriorityRank            int     `json:"priority_rank"`
	CustomerNotes           string  `json:"customer_notes"`
	Make                    string  `json:"make,omitempty"`
	Model                   string  `json:"model,omitempty"`
	Year                    int     `json:"year,omitempty"`
	Category                string  `json:"category,omitempty"`
	EstimatedMonthlyPayment float64 `json:"estimated_monthly_payment,omitempty"`
	EstimatedDownPayment    float64 `json:"estimated_down_payment,omitempty"`
}
