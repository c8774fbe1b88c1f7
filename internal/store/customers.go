// internal/store/customers.go
package store

import (
	"context"
	"database/sql"
	"errors"

	commonerrors "lease-advisor/internal/common/errors"
	"lease-advisor/internal/models"
)

// CustomerStore persists quiz takers. Creation is idempotent on email: a
// repeat submission with a known address returns the existing row untouched.
type CustomerStore struct {
	db *sql.DB
}

func NewCustomerStore(db *sql.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

const selectCustomerByEmailQuery = `
	SELECT id, email, first_name, last_name, phone, created_at
	FROM customers
	WHERE email = $1`

const insertCustomerQuery = `
	INSERT INTO customers (email, first_name, last_name, phone)
	VALUES ($1, $2, $3, $4)
	RETURNING id, email, first_name, last_name, phone, created_at`

// CreateInput is the request shape for registering a customer.
type CreateCustomerInput struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// GetOrCreate returns the customer for the given email, inserting a new row
// only when none exists. The bool reports whether the row already existed.
func (s *CustomerStore) GetOrCreate(ctx context.Context, in CreateCustomerInput) (*models.Customer, bool, error) {
	existing, err := s.getByEmail(ctx, in.Email)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, commonerrors.NewQueryExecutionFailedError("customers", err)
	}

	var c models.Customer
	err = s.db.QueryRowContext(ctx, insertCustomerQuery,
		in.Email, in.FirstName, in.LastName, in.Phone,
	).Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Phone, &c.CreatedAt)
	if err != nil {
		return nil, false, commonerrors.NewDatabaseInsertFailedError("customers", err)
	}
	return &c, false, nil
}

func (s *CustomerStore) getByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var c models.Customer
	err := s.db.QueryRowContext(ctx, selectCustomerByEmailQuery, email).Scan(
		&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Phone, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
