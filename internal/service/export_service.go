package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/edupay-api/pkg/errors"
	"github.com/noah-isme/edupay-api/pkg/export"
)

// Export formats accepted by the admin dataset export.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportFile is a rendered admin export ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the students, contact and about datasets for
// offline admin use.
type ExportService struct {
	registrations registrationRepository
	contacts      contactRepository
	abouts        aboutRepository
	logger        *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(registrations registrationRepository, contacts contactRepository, abouts aboutRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		registrations: registrations,
		contacts:      contacts,
		abouts:        abouts,
		logger:        logger,
	}
}

// Render builds the requested dataset and encodes it in the requested
// format.
func (s *ExportService) Render(ctx context.Context, entity, format string) (*ExportFile, error) {
	dataset, err := s.buildDataset(ctx, entity)
	if err != nil {
		return nil, err
	}

	var payload []byte
	var contentType string
	switch format {
	case ExportFormatCSV, "":
		format = ExportFormatCSV
		contentType = "text/csv"
		payload, err = export.RenderCSV(*dataset)
	case ExportFormatPDF:
		contentType = "application/pdf"
		payload, err = export.RenderPDF(*dataset)
	default:
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("unsupported format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("%s_%s.%s", entity, time.Now().Format("20060102"), format),
		ContentType: contentType,
		Data:        payload,
	}, nil
}

func (s *ExportService) buildDataset(ctx context.Context, entity string) (*export.Dataset, error) {
	switch entity {
	case "students":
		registrations, err := s.registrations.List(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registrations")
		}
		dataset := &export.Dataset{
			Title:   "Student Registrations",
			Headers: []string{"ID", "Name", "Email", "Phone", "Course", "Amount", "Payment ID", "Status", "Registered"},
		}
		for _, reg := range registrations {
			dataset.Rows = append(dataset.Rows, []string{
				strconv.FormatInt(reg.ID, 10), reg.Name, reg.Email, reg.Phone, reg.Course,
				fmt.Sprintf("%.2f", reg.Amount), reg.PaymentID, reg.PaymentStatus,
				reg.RegisteredAt.Format(time.RFC3339),
			})
		}
		return dataset, nil
	case "contact-messages":
		messages, err := s.contacts.List(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load contact messages")
		}
		dataset := &export.Dataset{
			Title:   "Contact Messages",
			Headers: []string{"ID", "Name", "Email", "Phone", "Subject", "Message", "Submitted"},
		}
		for _, msg := range messages {
			phone := ""
			if msg.Phone != nil {
				phone = *msg.Phone
			}
			dataset.Rows = append(dataset.Rows, []string{
				strconv.FormatInt(msg.ID, 10), msg.Name, msg.Email, phone, msg.Subject, msg.Message,
				msg.CreatedAt.Format(time.RFC3339),
			})
		}
		return dataset, nil
	case "about-inquiries":
		inquiries, err := s.abouts.List(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load about inquiries")
		}
		dataset := &export.Dataset{
			Title:   "About Inquiries",
			Headers: []string{"ID", "Name", "Email", "Subject", "Message", "Submitted"},
		}
		for _, inquiry := range inquiries {
			dataset.Rows = append(dataset.Rows, []string{
				strconv.FormatInt(inquiry.ID, 10), inquiry.Name, inquiry.Email, inquiry.Subject, inquiry.Message,
				inquiry.CreatedAt.Format(time.RFC3339),
			})
		}
		return dataset, nil
	default:
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("unknown export entity %q", entity))
	}
}
