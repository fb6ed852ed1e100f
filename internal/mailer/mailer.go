package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	gomail "gopkg.in/gomail.v2"

	"github.com/noah-isme/edupay-api/internal/models"
	"github.com/noah-isme/edupay-api/pkg/config"
)

// Mailer renders fixed HTML templates and sends them over SMTP.
// Exactly one outbound message per successful call; send failures
// surface to the caller and are never swallowed.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	admin  string
}

// New constructs a Mailer from the configured SMTP account.
func New(cfg config.MailConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		admin:  cfg.AdminEmail,
	}
}

// SendPaymentConfirmation mails the payer, blind-copying the admin.
func (m *Mailer) SendPaymentConfirmation(reg *models.StudentRegistration) error {
	body, err := render(paymentConfirmationTmpl, reg)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Registration Confirmed: %s", reg.Course)
	return m.send(reg.Email, m.admin, subject, body)
}

// SendContactAlert mails the admin about a new contact message.
func (m *Mailer) SendContactAlert(msg *models.ContactMessage) error {
	body, err := render(contactAlertTmpl, msg)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("New Contact Message: %s", msg.Subject)
	return m.send(m.admin, "", subject, body)
}

// SendAboutAlert mails the admin about a new about-page inquiry.
func (m *Mailer) SendAboutAlert(inquiry *models.AboutInquiry) error {
	body, err := render(aboutAlertTmpl, inquiry)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("New About Inquiry: %s", inquiry.Subject)
	return m.send(m.admin, "", subject, body)
}

func (m *Mailer) send(to, bcc, subject, body string) error {
	if to == "" {
		return fmt.Errorf("mail recipient missing")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	if bcc != "" {
		msg.SetHeader("Bcc", bcc)
	}
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render mail template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
