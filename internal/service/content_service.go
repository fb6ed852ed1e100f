package service

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/edupay-api/internal/media"
	"github.com/noah-isme/edupay-api/internal/models"
	appErrors "github.com/noah-isme/edupay-api/pkg/errors"
	"github.com/noah-isme/edupay-api/pkg/jobs"
)

type contentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	FindByID(ctx context.Context, id int64) (*models.Content, error)
	List(ctx context.Context) ([]models.Content, error)
	Delete(ctx context.Context, id int64) error
}

type mediaHost interface {
	Upload(ctx context.Context, r io.Reader, filename string) (*media.UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

type cleanupQueue interface {
	Enqueue(task jobs.Task) error
}

// UploadContentRequest describes a multipart upload.
type UploadContentRequest struct {
	Title         string  `validate:"required"`
	Description   *string
	MIMEType      string `validate:"required"`
	FileName      string
	UploadedBy    string `validate:"required"`
	UploaderEmail string `validate:"required,email"`
	ExternalID    *string
}

// RegisterContentRequest registers metadata for an asset already stored
// on the media host.
type RegisterContentRequest struct {
	Title         string  `json:"title" validate:"required"`
	Description   *string `json:"description"`
	MIMEType      string  `json:"mime_type" validate:"required"`
	FileURL       string  `json:"file_url" validate:"required,url"`
	PublicID      string  `json:"public_id" validate:"required"`
	FileSize      *int64  `json:"file_size"`
	FileName      *string `json:"file_name"`
	UploadedBy    string  `json:"uploaded_by" validate:"required"`
	UploaderEmail string  `json:"uploader_email" validate:"required,email"`
	ExternalID    *string `json:"external_id"`
}

// ContentService manages learning-content metadata. The binary asset is
// owned by the external media host; deleting metadata only schedules a
// best-effort remote destroy that never blocks the local delete.
type ContentService struct {
	repo      contentRepository
	host      mediaHost
	cleanup   cleanupQueue
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContentService constructs the content service. Host and cleanup are
// optional; without them uploads are rejected and deletes skip the remote
// destroy.
func NewContentService(repo contentRepository, host mediaHost, cleanup cleanupQueue, validate *validator.Validate, logger *zap.Logger) *ContentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{repo: repo, host: host, cleanup: cleanup, validator: validate, logger: logger}
}

// Upload pushes the file to the media host and records its metadata.
func (s *ContentService) Upload(ctx context.Context, req UploadContentRequest, file io.Reader) (*models.Content, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid upload payload")
	}
	if s.host == nil {
		return nil, appErrors.New(appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "media host not configured")
	}

	uploaded, err := s.host.Upload(ctx, file, req.FileName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to upload asset")
	}

	content := &models.Content{
		Title:         req.Title,
		Description:   req.Description,
		ContentType:   models.ContentTypeFromMIME(req.MIMEType),
		FileURL:       uploaded.URL,
		PublicID:      uploaded.PublicID,
		UploadedBy:    req.UploadedBy,
		UploaderEmail: req.UploaderEmail,
		ExternalID:    req.ExternalID,
	}
	if uploaded.Bytes > 0 {
		size := uploaded.Bytes
		content.FileSize = &size
	}
	if req.FileName != "" {
		name := req.FileName
		content.FileName = &name
	}

	if err := s.repo.Create(ctx, content); err != nil {
		// The asset is already remote; schedule it for cleanup so it
		// does not leak when the metadata insert fails.
		s.scheduleDestroy(content.PublicID)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record content metadata")
	}
	return content, nil
}

// Register records metadata for an externally uploaded asset.
func (s *ContentService) Register(ctx context.Context, req RegisterContentRequest) (*models.Content, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid content payload")
	}

	content := &models.Content{
		Title:         req.Title,
		Description:   req.Description,
		ContentType:   models.ContentTypeFromMIME(req.MIMEType),
		FileURL:       req.FileURL,
		PublicID:      req.PublicID,
		FileSize:      req.FileSize,
		FileName:      req.FileName,
		UploadedBy:    req.UploadedBy,
		UploaderEmail: req.UploaderEmail,
		ExternalID:    req.ExternalID,
	}
	if err := s.repo.Create(ctx, content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record content metadata")
	}
	return content, nil
}

// List returns all content metadata, newest first.
func (s *ContentService) List(ctx context.Context) ([]models.Content, error) {
	contents, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list content")
	}
	return contents, nil
}

// Delete removes the metadata row and schedules a best-effort remote
// destroy of the asset. Remote failures are retried in the background and
// never surface to the client.
func (s *ContentService) Delete(ctx context.Context, id int64) error {
	content, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "content not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load content")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "content not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete content")
	}

	s.scheduleDestroy(content.PublicID)
	return nil
}

// DestroyAsset is the cleanup-queue handler for remote asset deletes.
func (s *ContentService) DestroyAsset(ctx context.Context, task jobs.Task) error {
	publicID, ok := task.Payload.(string)
	if !ok || publicID == "" {
		return nil
	}
	if s.host == nil {
		return nil
	}
	return s.host.Destroy(ctx, publicID)
}

func (s *ContentService) scheduleDestroy(publicID string) {
	if s.cleanup == nil || publicID == "" {
		return
	}
	task := jobs.Task{ID: uuid.NewString(), Kind: "media_destroy", Payload: publicID}
	if err := s.cleanup.Enqueue(task); err != nil {
		s.logger.Warn("failed to schedule remote asset cleanup",
			zap.String("public_id", publicID),
			zap.Error(err),
		)
	}
}
