package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/edupay-api/internal/models"
)

// ErrRegistrationMissing signals that the re-select after insert returned
// no row. Insert and timestamp assignment are treated as separate trust
// boundaries, so the absence fails the whole transaction.
var ErrRegistrationMissing = errors.New("registration not found after insert")

// RegistrationRepository manages persistence for paid course registrations.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// CreateConfirmed inserts the registration, re-selects the committed row to
// pick up the generated id and server-assigned timestamp, and then runs the
// sideEffects callback inside the same transaction. Any failure, including
// the re-select returning nothing, rolls everything back so a partial
// registration never persists.
func (r *RegistrationRepository) CreateConfirmed(ctx context.Context, reg *models.StudentRegistration, sideEffects func(*models.StudentRegistration) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	reg.PaymentStatus = models.PaymentStatusSuccessful
	const insert = `INSERT INTO students (name, email, phone, course, amount, payment_id, order_id, payment_status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err = tx.ExecContext(ctx, insert,
		reg.Name, reg.Email, reg.Phone, reg.Course, reg.Amount, reg.PaymentID, reg.OrderID, reg.PaymentStatus,
	); err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}

	const reselect = `SELECT id, name, email, phone, course, amount, payment_id, order_id, payment_status, registered_at
        FROM students WHERE payment_id = $1 ORDER BY id DESC LIMIT 1`
	if err = tx.GetContext(ctx, reg, reselect, reg.PaymentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrRegistrationMissing
		}
		return fmt.Errorf("reselect registration: %w", err)
	}

	if sideEffects != nil {
		if err = sideEffects(reg); err != nil {
			return fmt.Errorf("registration side effects: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit registration: %w", err)
	}
	return nil
}

// ExistsByPaymentID reports whether a registration with the given payment
// reference has already been recorded.
func (r *RegistrationRepository) ExistsByPaymentID(ctx context.Context, paymentID string) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM students WHERE payment_id = $1 LIMIT 1", paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check payment id: %w", err)
	}
	return true, nil
}

// List returns all registrations, newest first.
func (r *RegistrationRepository) List(ctx context.Context) ([]models.StudentRegistration, error) {
	const query = `SELECT id, name, email, phone, course, amount, payment_id, order_id, payment_status, registered_at
        FROM students ORDER BY registered_at DESC`
	registrations := make([]models.StudentRegistration, 0)
	if err := r.db.SelectContext(ctx, &registrations, query); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return registrations, nil
}
