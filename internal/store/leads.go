// internal/store/leads.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	commonerrors "lease-advisor/internal/common/errors"
	"lease-advisor/internal/models"
)

// LeadStore persists qualified leads and their selected deals. A lead and its
// deal selections are written in one transaction so a partial write never
// surfaces to the admin views.
type LeadStore struct {
	db *sql.DB
}

func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{db: db}
}

// CreateLeadInput is the request shape for registering a lead.
type CreateLeadInput struct {
	CustomerID           int64                      `json:"customer_id"`
	CustomerPreferences  string                     `json:"customer_preferences"`
	MaxMonthlyBudget     float64                    `json:"max_monthly_budget"`
	AvailableDownPayment float64                    `json:"available_down_payment"`
	PreferredCategory    string                     `json:"preferred_category"`
	KnowsCarType         bool                       `json:"knows_car_type"`
	SelectedDeals        []models.SelectedDealInput `json:"selected_deals"`
}

const insertLeadQuery = `
	INSERT INTO leads (customer_id, customer_preferences, max_monthly_budget,
	                   available_down_payment, preferred_category, knows_car_type,
	                   qualification_status)
	VALUES ($1, $2, $3, $4, $5, $6, 'PENDING')
	RETURNING id, customer_id, customer_preferences, max_monthly_budget,
	          available_down_payment, preferred_category, knows_car_type,
	          qualification_status, created_at`

const insertSelectedDealQuery = `
	INSERT INTO lead_selected_deals (lead_id, deal_id, priority_rank, customer_notes)
	VALUES ($1, $2, $3, $4)`

const listAdminLeadsQuery = `
	SELECT l.id, l.customer_id, l.customer_preferences, l.max_monthly_budget,
	       l.available_down_payment, l.preferred_category, l.knows_car_type,
	       l.qualification_status, l.created_at,
	       c.first_name, c.last_name, c.email, c.phone,
	       COUNT(lsd.id) AS selected_deals_count
	FROM leads l
	JOIN customers c ON l.customer_id = c.id
	LEFT JOIN lead_selected_deals lsd ON l.id = lsd.lead_id
	GROUP BY l.id, c.id
	ORDER BY l.created_at DESC`

const getAdminLeadQuery = `
	SELECT l.id, l.customer_id, l.customer_preferences, l.max_monthly_budget,
	       l.available_down_payment, l.preferred_category, l.knows_car_type,
	       l.qualification_status, l.created_at,
	       c.first_name, c.last_name, c.email, c.phone
	FROM leads l
	JOIN customers c ON l.customer_id = c.id
	WHERE l.id = $1`

const getSelectedDealsQuery = `
	SELECT lsd.id, lsd.lead_id, lsd.deal_id, lsd.priority_rank, lsd.customer_notes,
	       cd.make, cd.model, cd.year, cd.category,
	       cd.estimated_monthly_payment, cd.estimated_down_payment
	FROM lead_selected_deals lsd
	JOIN current_deals cd ON lsd.deal_id = cd.id
	WHERE lsd.lead_id = $1
	ORDER BY lsd.priority_rank`

// Create inserts the lead and its selected deals atomically.
func (s *LeadStore) Create(ctx context.Context, in CreateLeadInput) (*models.Lead, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, commonerrors.NewDatabaseConnectionFailedError(err)
	}

	var lead models.Lead
	err = tx.QueryRowContext(ctx, insertLeadQuery,
		in.CustomerID, in.CustomerPreferences, in.MaxMonthlyBudget,
		in.AvailableDownPayment, in.PreferredCategory, in.KnowsCarType,
	).Scan(
		&lead.ID, &lead.CustomerID, &lead.CustomerPreferences,
		&lead.MaxMonthlyBudget, &lead.AvailableDownPayment,
		&lead.PreferredCategory, &lead.KnowsCarType,
		&lead.QualificationStatus, &lead.CreatedAt,
	)
	if err != nil {
		tx.Rollback()
		return nil, commonerrors.NewDatabaseInsertFailedError("leads", err)
	}

	for _, deal := range in.SelectedDeals {
		if _, err := tx.ExecContext(ctx, insertSelectedDealQuery,
			lead.ID, deal.DealID, deal.PriorityRank, deal.CustomerNotes,
		); err != nil {
			tx.Rollback()
			return nil, commonerrors.NewDatabaseInsertFailedError("lead_selected_deals", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, commonerrors.NewDatabaseInsertFailedError("leads", err)
	}
	return &lead, nil
}

// ListAdmin returns every lead joined with its customer and a count of the
// deals it selected, newest first.
func (s *LeadStore) ListAdmin(ctx context.Context) ([]models.Lead, error) {
	rows, err := s.db.QueryContext(ctx, listAdminLeadsQuery)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("leads", err)
	}
	defer rows.Close()

	leads := make([]models.Lead, 0)
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(
			&l.ID, &l.CustomerID, &l.CustomerPreferences, &l.MaxMonthlyBudget,
			&l.AvailableDownPayment, &l.PreferredCategory, &l.KnowsCarType,
			&l.QualificationStatus, &l.CreatedAt,
			&l.FirstName, &l.LastName, &l.Email, &l.Phone,
			&l.SelectedDealsCount,
		); err != nil {
			return nil, commonerrors.NewQueryExecutionFailedError("leads", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("leads", err)
	}
	return leads, nil
}

// GetByID returns one lead with its customer fields and selected deals.
func (s *LeadStore) GetByID(ctx context.Context, id int64) (*models.Lead, error) {
	var l models.Lead
	err := s.db.QueryRowContext(ctx, getAdminLeadQuery, id).Scan(
		&l.ID, &l.CustomerID, &l.CustomerPreferences, &l.MaxMonthlyBudget,
		&l.AvailableDownPayment, &l.PreferredCategory, &l.KnowsCarType,
		&l.QualificationStatus, &l.CreatedAt,
		&l.FirstName, &l.LastName, &l.Email, &l.Phone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, commonerrors.NewRecordNotFoundError("lead", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("leads", err)
	}

	rows, err := s.db.QueryContext(ctx, getSelectedDealsQuery, id)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("lead_selected_deals", err)
	}
	defer rows.Close()

	deals := make([]models.SelectedDeal, 0)
	for rows.Next() {
		var d models.SelectedDeal
		if err := rows.Scan(
			&d.ID, &d.LeadID, &d.DealID, &d.PriorityRank, &d.CustomerNotes,
			&d.Make, &d.Model, &d.Year, &d.Category,
			&d.EstimatedMonthlyPayment, &d.EstimatedDownPayment,
		); err != nil {
			return nil, commonerrors.NewQueryExecutionFailedError("lead_selected_deals", err)
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("lead_selected_deals", err)
	}

	l.SelectedDeals = deals
	l.SelectedDealsCount = len(deals)
	return &l, nil
}
