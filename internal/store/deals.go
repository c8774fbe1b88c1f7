// internal/store/deals.go
package store

import (
	"context"
	"database/sql"

	commonerrors "lease-advisor/internal/common/errors"
	"lease-advisor/internal/models"
)

// DealStore reads the curated current_deals table shown to the quiz UI.
type DealStore struct {
	db *sql.DB
}

func NewDealStore(db *sql.DB) *DealStore {
	return &DealStore{db: db}
}

const listDealsQuery = `
	SELECT id, make, model, year, category, estimated_monthly_payment,
	       estimated_down_payment, active, created_at
	FROM current_deals
	WHERE active = true
	ORDER BY category, make, model`

const listDealsByCategoryQuery = `
	SELECT id, make, model, year, category, estimated_monthly_payment,
	       estimated_down_payment, active, created_at
	FROM current_deals
	WHERE category = $1 AND active = true
	ORDER BY make, model`

// List returns every active deal ordered for display.
func (s *DealStore) List(ctx context.Context) ([]models.Deal, error) {
	rows, err := s.db.QueryContext(ctx, listDealsQuery)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("deals", err)
	}
	defer rows.Close()

	return scanDeals(rows)
}

// ListByCategory returns active deals within one category.
func (s *DealStore) ListByCategory(ctx context.Context, category string) ([]models.Deal, error) {
	rows, err := s.db.QueryContext(ctx, listDealsByCategoryQuery, category)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("deals", err)
	}
	defer rows.Close()

	return scanDeals(rows)
}

func scanDeals(rows *sql.Rows) ([]models.Deal, error) {
	deals := make([]models.Deal, 0)
	for rows.Next() {
		var d models.Deal
		if err := rows.Scan(
			&d.ID, &d.Make, &d.Model, &d.Year, &d.Category,
			&d.EstimatedMonthlyPayment, &d.EstimatedDownPayment,
			&d.Active, &d.CreatedAt,
		); err != nil {
			return nil, commonerrors.NewQueryExecutionFailedError("deals", err)
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("deals", err)
	}
	return deals, nil
}
