package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

// EmailSender dials SMTP with whatever settings the caller hands it.
// Holding no configuration of its own keeps it testable and lets the
// operator swap SMTP accounts without a restart.
type EmailSender struct{}

func NewEmailSender() *EmailSender {
	return &EmailSender{}
}

func (s *EmailSender) Send(cfg entity.SMTPSettings, to, subject, htmlBody string) error {
	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}
