package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/edupay-api/internal/models"
)

// ContactRepository manages persistence for contact-form submissions.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository constructs a ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// CreateRecorded inserts the message and runs the sideEffects callback
// inside the same transaction; a callback failure rolls the insert back.
func (r *ContactRepository) CreateRecorded(ctx context.Context, msg *models.ContactMessage, sideEffects func(*models.ContactMessage) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin contact tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insert = `INSERT INTO contact_messages (name, email, phone, subject, message)
        VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	if err = tx.QueryRowxContext(ctx, insert,
		msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message,
	).Scan(&msg.ID, &msg.CreatedAt); err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}

	if sideEffects != nil {
		if err = sideEffects(msg); err != nil {
			return fmt.Errorf("contact side effects: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit contact message: %w", err)
	}
	return nil
}

// List returns all contact messages, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	const query = `SELECT id, name, email, phone, subject, message, created_at
        FROM contact_messages ORDER BY created_at DESC`
	messages := make([]models.ContactMessage, 0)
	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return messages, nil
}
