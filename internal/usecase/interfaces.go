package usecase

import (
	"context"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

// Entry surfaces for lead capture. Each surface has its own required
// fields and default source (see validation.go).
const (
	SourceContact   = "contact"
	SourceQuotation = "quotation"
	SourceLead      = "lead"
)

type CreateLeadInput struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ServiceType    string `json:"serviceType"`
	TravelDate     string `json:"travelDate"`
	PickupLocation string `json:"pickupLocation"`
	DropLocation   string `json:"dropLocation"`
	Passengers     int    `json:"passengers"`
	Message        string `json:"message"`
	Source         string `json:"source"`

	// FormSource identifies which public form submitted the lead; set by
	// the handler, not by the client payload.
	FormSource string `json:"-"`
}

type CreateLeadOutput struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Source      string `json:"source"`
	SubmittedAt string `json:"submittedAt"`
}

type UpdateLeadOutput struct {
	Lead       *entity.Lead `json:"lead"`
	ReviewLink string       `json:"reviewLink,omitempty"`
	Note       string       `json:"note,omitempty"`
}

type TripContext struct {
	CustomerName   string `json:"customerName"`
	ServiceType    string `json:"serviceType"`
	TravelDate     string `json:"travelDate,omitempty"`
	PickupLocation string `json:"pickupLocation,omitempty"`
	DropLocation   string `json:"dropLocation,omitempty"`
}

type SubmitReviewInput struct {
	Token    string `json:"token"`
	Rating   int    `json:"rating"`
	Content  string `json:"content"`
	Location string `json:"location"`
}

type SubmitReviewOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LeadEventProducerInterface publishes lead-created events onto the
// notification channel. Failures are always swallowed by callers.
type LeadEventProducerInterface interface {
	PublishLeadCreated(ctx context.Context, lead entity.Lead) error
}

// EmailService sends a message using the SMTP settings passed in; the
// dispatcher owns no ambient configuration.
type EmailService interface {
	Send(cfg entity.SMTPSettings, to, subject, htmlBody string) error
}
