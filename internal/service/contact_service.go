package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edupay-api/internal/mirror"
	"github.com/noah-isme/edupay-api/internal/models"
	appErrors "github.com/noah-isme/edupay-api/pkg/errors"
)

type contactRepository interface {
	CreateRecorded(ctx context.Context, msg *models.ContactMessage, sideEffects func(*models.ContactMessage) error) error
	List(ctx context.Context) ([]models.ContactMessage, error)
}

type aboutRepository interface {
	CreateRecorded(ctx context.Context, inquiry *models.AboutInquiry, sideEffects func(*models.AboutInquiry) error) error
	List(ctx context.Context) ([]models.AboutInquiry, error)
}

type submissionNotifier interface {
	SendContactAlert(msg *models.ContactMessage) error
	SendAboutAlert(inquiry *models.AboutInquiry) error
}

// SubmitContactRequest is the contact-form payload.
type SubmitContactRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject" validate:"required"`
	Message string  `json:"message" validate:"required"`
}

// SubmitAboutRequest is the about-page inquiry payload.
type SubmitAboutRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ContactService runs the contact and about pipelines: the same
// store, mirror, notify shape as payment confirmation, minus signature
// verification.
type ContactService struct {
	contacts  contactRepository
	abouts    aboutRepository
	mirror    mirrorStore
	notifier  submissionNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs the contact service.
func NewContactService(contacts contactRepository, abouts aboutRepository, mirror mirrorStore, notifier submissionNotifier, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{
		contacts:  contacts,
		abouts:    abouts,
		mirror:    mirror,
		notifier:  notifier,
		validator: validate,
		logger:    logger,
	}
}

// SubmitContact records a contact message; the insert, mirror row and
// admin alert commit or fail as one unit.
func (s *ContactService) SubmitContact(ctx context.Context, req SubmitContactRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing contact fields")
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	err := s.contacts.CreateRecorded(ctx, msg, func(created *models.ContactMessage) error {
		if err := s.mirror.AppendRow(mirror.KindContacts, mirror.ContactRow(created)); err != nil {
			return err
		}
		return s.notifier.SendContactAlert(created)
	})
	if err != nil {
		s.logger.Error("contact submission rolled back", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record contact message")
	}
	return nil
}

// SubmitAbout records an about-page inquiry with the same contract.
func (s *ContactService) SubmitAbout(ctx context.Context, req SubmitAboutRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing inquiry fields")
	}

	inquiry := &models.AboutInquiry{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	err := s.abouts.CreateRecorded(ctx, inquiry, func(created *models.AboutInquiry) error {
		if err := s.mirror.AppendRow(mirror.KindAbout, mirror.AboutRow(created)); err != nil {
			return err
		}
		return s.notifier.SendAboutAlert(created)
	})
	if err != nil {
		s.logger.Error("about submission rolled back", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record about inquiry")
	}
	return nil
}

// ListContacts returns all contact messages, newest first.
func (s *ContactService) ListContacts(ctx context.Context) ([]models.ContactMessage, error) {
	messages, err := s.contacts.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list contact messages")
	}
	return messages, nil
}

// ListAbouts returns all about inquiries, newest first.
func (s *ContactService) ListAbouts(ctx context.Context) ([]models.AboutInquiry, error) {
	inquiries, err := s.abouts.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list about inquiries")
	}
	return inquiries, nil
}
