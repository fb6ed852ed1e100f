package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/edupay-api/internal/models"
)

// AboutRepository manages persistence for about-page inquiries.
type AboutRepository struct {
	db *sqlx.DB
}

// NewAboutRepository constructs an AboutRepository.
func NewAboutRepository(db *sqlx.DB) *AboutRepository {
	return &AboutRepository{db: db}
}

// CreateRecorded inserts the inquiry and runs the sideEffects callback
// inside the same transaction; a callback failure rolls the insert back.
func (r *AboutRepository) CreateRecorded(ctx context.Context, inquiry *models.AboutInquiry, sideEffects func(*models.AboutInquiry) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin about tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insert = `INSERT INTO about_inquiries (name, email, subject, message)
        VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	if err = tx.QueryRowxContext(ctx, insert,
		inquiry.Name, inquiry.Email, inquiry.Subject, inquiry.Message,
	).Scan(&inquiry.ID, &inquiry.CreatedAt); err != nil {
		return fmt.Errorf("insert about inquiry: %w", err)
	}

	if sideEffects != nil {
		if err = sideEffects(inquiry); err != nil {
			return fmt.Errorf("about side effects: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit about inquiry: %w", err)
	}
	return nil
}

// List returns all about inquiries, newest first.
func (r *AboutRepository) List(ctx context.Context) ([]models.AboutInquiry, error) {
	const query = `SELECT id, name, email, subject, message, created_at
        FROM about_inquiries ORDER BY created_at DESC`
	inquiries := make([]models.AboutInquiry, 0)
	if err := r.db.SelectContext(ctx, &inquiries, query); err != nil {
		return nil, fmt.Errorf("list about inquiries: %w", err)
	}
	return inquiries, nil
}
