package mirror

import (
	"fmt"
	"strconv"
	"time"

	"github.com/noah-isme/edupay-api/internal/models"
)

// Timestamps are mirrored the way the admin sheet readers expect them,
// not as RFC 3339.
const timestampLayout = "02/01/2006, 15:04:05"

// StudentRow flattens a committed registration into its mirror projection.
func StudentRow(reg *models.StudentRegistration) []string {
	return []string{
		strconv.FormatInt(reg.ID, 10),
		reg.Name,
		reg.Email,
		reg.Phone,
		reg.Course,
		fmt.Sprintf("%.2f", reg.Amount),
		reg.PaymentID,
		reg.OrderID,
		reg.PaymentStatus,
		formatTimestamp(reg.RegisteredAt),
	}
}

// ContactRow flattens a committed contact message.
func ContactRow(msg *models.ContactMessage) []string {
	phone := ""
	if msg.Phone != nil {
		phone = *msg.Phone
	}
	return []string{
		strconv.FormatInt(msg.ID, 10),
		msg.Name,
		msg.Email,
		phone,
		msg.Subject,
		msg.Message,
		formatTimestamp(msg.CreatedAt),
	}
}

// AboutRow flattens a committed about inquiry.
func AboutRow(inquiry *models.AboutInquiry) []string {
	return []string{
		strconv.FormatInt(inquiry.ID, 10),
		inquiry.Name,
		inquiry.Email,
		inquiry.Subject,
		inquiry.Message,
		formatTimestamp(inquiry.CreatedAt),
	}
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format(timestampLayout)
}
