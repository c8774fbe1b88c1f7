package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "lease-advisor/internal/common/errors"
	"lease-advisor/internal/models"
)

func leadRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "customer_id", "customer_preferences", "max_monthly_budget",
		"available_down_payment", "preferred_category", "knows_car_type",
		"qualification_status", "created_at",
	}).AddRow(11, 7, "SUV, hybrid", 700.0, 5589.0, "SUV", true, "PENDING", time.Now())
}

func TestLeadStore_Create_WithSelectedDeals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO leads`).
		WithArgs(int64(7), "SUV, hybrid", 700.0, 5589.0, "SUV", true).
		WillReturnRows(leadRow())
	mock.ExpectExec(`INSERT INTO lead_selected_deals`).
		WithArgs(int64(11), int64(2), 1, "top pick").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO lead_selected_deals`).
		WithArgs(int64(11), int64(5), 2, "").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	lead, err := NewLeadStore(db).Create(context.Background(), CreateLeadInput{
		CustomerID:           7,
		CustomerPreferences:  "SUV, hybrid",
		MaxMonthlyBudget:     700,
		AvailableDownPayment: 5589,
		PreferredCategory:    "SUV",
		KnowsCarType:         true,
		SelectedDeals: []models.SelectedDealInput{
			{DealID: 2, PriorityRank: 1, CustomerNotes: "top pick"},
			{DealID: 5, PriorityRank: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), lead.ID)
	assert.Equal(t, "PENDING", lead.QualificationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadStore_Create_RollsBackOnDealInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO leads`).
		WithArgs(int64(7), "", 0.0, 0.0, "", false).
		WillReturnRows(leadRow())
	mock.ExpectExec(`INSERT INTO lead_selected_deals`).
		WithArgs(int64(11), int64(99), 1, "").
		WillReturnError(errors.New("foreign key violation"))
	mock.ExpectRollback()

	_, err = NewLeadStore(db).Create(context.Background(), CreateLeadInput{
		CustomerID:    7,
		SelectedDeals: []models.SelectedDealInput{{DealID: 99, PriorityRank: 1}},
	})
	require.Error(t, err)

	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeDatabaseInsertFailed, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadStore_ListAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "customer_id", "customer_preferences", "max_monthly_budget",
		"available_down_payment", "preferred_category", "knows_car_type",
		"qualification_status", "created_at",
		"first_name", "last_name", "email", "phone", "selected_deals_count",
	}).AddRow(11, 7, "SUV, hybrid", 700.0, 5589.0, "SUV", true, "PENDING", time.Now(),
		"Dana", "Lee", "dana@example.com", "+15551234567", 2)

	mock.ExpectQuery(`FROM leads l\s+JOIN customers c ON l.customer_id = c.id\s+LEFT JOIN lead_selected_deals`).
		WillReturnRows(rows)

	leads, err := NewLeadStore(db).ListAdmin(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "dana@example.com", leads[0].Email)
	assert.Equal(t, 2, leads[0].SelectedDealsCount)
}

func TestLeadStore_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	leadWithCustomer := sqlmock.NewRows([]string{
		"id", "customer_id", "customer_preferences", "max_monthly_budget",
		"available_down_payment", "preferred_category", "knows_car_type",
		"qualification_status", "created_at",
		"first_name", "last_name", "email", "phone",
	}).AddRow(11, 7, "SUV, hybrid", 700.0, 5589.0, "SUV", true, "PENDING", time.Now(),
		"Dana", "Lee", "dana@example.com", "+15551234567")

	selectedDeals := sqlmock.NewRows([]string{
		"id", "lead_id", "deal_id", "priority_rank", "customer_notes",
		"make", "model", "year", "category",
		"estimated_monthly_payment", "estimated_down_payment",
	}).AddRow(1, 11, 2, 1, "top pick", "Honda", "CR-V", 2025, "SUV", 379.0, 2500.0)

	mock.ExpectQuery(`FROM leads l\s+JOIN customers c ON l.customer_id = c.id\s+WHERE l.id = \$1`).
		WithArgs(int64(11)).
		WillReturnRows(leadWithCustomer)
	mock.ExpectQuery(`FROM lead_selected_deals lsd\s+JOIN current_deals cd ON lsd.deal_id = cd.id`).
		WithArgs(int64(11)).
		WillReturnRows(selectedDeals)

	lead, err := NewLeadStore(db).GetByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "Dana", lead.FirstName)
	require.Len(t, lead.SelectedDeals, 1)
	assert.Equal(t, "CR-V", lead.SelectedDeals[0].Model)
	assert.Equal(t, 1, lead.SelectedDealsCount)
}

func TestLeadStore_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE l.id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewLeadStore(db).GetByID(context.Background(), 404)
	require.Error(t, err)

	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeRecordNotFound, stdErr.Code)
}
