package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/edupay-api/internal/models"
)

// ContentRepository manages persistence for learning-content metadata.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository constructs a ContentRepository.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// Create inserts a metadata row and fills in the generated id and timestamp.
func (r *ContentRepository) Create(ctx context.Context, content *models.Content) error {
	const insert = `INSERT INTO lms_content (title, description, content_type, file_url, public_id, file_size, file_name, uploaded_by, uploader_email, external_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at`
	if err := r.db.QueryRowxContext(ctx, insert,
		content.Title, content.Description, content.ContentType, content.FileURL, content.PublicID,
		content.FileSize, content.FileName, content.UploadedBy, content.UploaderEmail, content.ExternalID,
	).Scan(&content.ID, &content.CreatedAt); err != nil {
		return fmt.Errorf("insert content: %w", err)
	}
	return nil
}

// FindByID fetches a single content row.
func (r *ContentRepository) FindByID(ctx context.Context, id int64) (*models.Content, error) {
	const query = `SELECT id, title, description, content_type, file_url, public_id, file_size, file_name, uploaded_by, uploader_email, external_id, created_at
        FROM lms_content WHERE id = $1`
	var content models.Content
	if err := r.db.GetContext(ctx, &content, query, id); err != nil {
		return nil, err
	}
	return &content, nil
}

// List returns all content metadata, newest first.
func (r *ContentRepository) List(ctx context.Context) ([]models.Content, error) {
	const query = `SELECT id, title, description, content_type, file_url, public_id, file_size, file_name, uploaded_by, uploader_email, external_id, created_at
        FROM lms_content ORDER BY created_at DESC`
	contents := make([]models.Content, 0)
	if err := r.db.SelectContext(ctx, &contents, query); err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return contents, nil
}

// Delete removes a metadata row. Returns sql.ErrNoRows when nothing matched.
func (r *ContentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM lms_content WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("delete content result: %w", err)
	}
	return nil
}
