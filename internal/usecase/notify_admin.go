package usecase

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

// NotifyAdminUseCase is the notification dispatcher: best-effort email
// to the operator when a lead arrives. It never panics and its errors
// are for logging only; the lead-creation path ignores them.
type NotifyAdminUseCase struct {
	SMTPRepo entity.SMTPRepositoryInterface
	Mailer   EmailService
}

func NewNotifyAdminUseCase(smtpRepo entity.SMTPRepositoryInterface, mailer EmailService) *NotifyAdminUseCase {
	return &NotifyAdminUseCase{SMTPRepo: smtpRepo, Mailer: mailer}
}

func (uc *NotifyAdminUseCase) Execute(ctx context.Context, lead entity.Lead) error {
	cfg, err := uc.SMTPRepo.GetActive(ctx)
	if err != nil {
		return fmt.Errorf("load smtp settings: %w", err)
	}
	if cfg == nil || !cfg.Active {
		// Soft failure: the site runs fine without mail configured.
		log.Printf("no active SMTP settings, skipping notification for lead %s", lead.ID)
		return nil
	}

	subject := fmt.Sprintf("New %s enquiry from %s", lead.Source, lead.FullName)
	body := leadSummaryHTML(lead)

	if err := uc.Mailer.Send(*cfg, cfg.AdminEmail, subject, body); err != nil {
		return fmt.Errorf("send admin notification: %w", err)
	}

	return nil
}

func leadSummaryHTML(lead entity.Lead) string {
	row := func(label, value string) string {
		if value == "" {
			return ""
		}
		return "<tr><td><b>" + label + "</b></td><td>" + html.EscapeString(value) + "</td></tr>"
	}

	passengers := ""
	if lead.Passengers > 0 {
		passengers = fmt.Sprintf("%d", lead.Passengers)
	}

	return "<h3>New enquiry received</h3><table>" +
		row("Name", lead.FullName) +
		row("Phone", lead.Phone) +
		row("Email", lead.Email) +
		row("Service", lead.ServiceType) +
		row("Travel date", lead.TravelDate) +
		row("Pickup", lead.PickupLocation) +
		row("Drop", lead.DropLocation) +
		row("Passengers", passengers) +
		row("Message", lead.Message) +
		row("Source", lead.Source) +
		"</table>"
}
