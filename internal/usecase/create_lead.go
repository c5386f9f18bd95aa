package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

type CreateLeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Producer LeadEventProducerInterface
	Notifier *NotifyAdminUseCase
}

func NewCreateLeadUseCase(
	repo entity.LeadRepositoryInterface,
	producer LeadEventProducerInterface,
	notifier *NotifyAdminUseCase,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		Repo:     repo,
		Producer: producer,
		Notifier: notifier,
	}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	validationErrors := ValidateCreateLeadInput(input)
	if len(validationErrors) > 0 {
		return nil, validationFailed(validationErrors)
	}

	source := input.Source
	if source == "" {
		source = input.FormSource
	}
	if source == "" {
		source = "website"
	}

	// The quotation surface has no free-text field; compose a description
	// from the trip details so operators see one consistent shape.
	message := strings.TrimSpace(input.Message)
	if message == "" && input.FormSource == SourceQuotation {
		message = "Quotation request: " + input.ServiceType +
			" on " + input.TravelDate + " from " + input.PickupLocation
		if input.DropLocation != "" {
			message += " to " + input.DropLocation
		}
	}

	lead := &entity.Lead{
		ID:             uuid.New().String(),
		FullName:       strings.TrimSpace(input.FullName),
		Email:          strings.TrimSpace(input.Email),
		Phone:          strings.TrimSpace(input.Phone),
		ServiceType:    input.ServiceType,
		TravelDate:     input.TravelDate,
		PickupLocation: input.PickupLocation,
		DropLocation:   input.DropLocation,
		Passengers:     input.Passengers,
		Message:        message,
		Status:         entity.LeadStatusNew,
		Priority:       entity.PriorityMedium,
		Source:         source,
		SubmittedAt:    time.Now(),
		LastUpdated:    time.Now(),
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist lead: " + err.Error(),
		}
	}

	// Best-effort notification. Publish to the queue when one is wired;
	// otherwise dispatch directly off the request goroutine. Either way
	// the lead is already saved and this must not affect the response.
	uc.dispatchNotification(*lead)

	return &CreateLeadOutput{
		ID:          lead.ID,
		Status:      lead.Status,
		Priority:    lead.Priority,
		Source:      lead.Source,
		SubmittedAt: lead.SubmittedAt.Format(time.RFC3339),
	}, nil
}

func (uc *CreateLeadUseCase) dispatchNotification(lead entity.Lead) {
	if uc.Producer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := uc.Producer.PublishLeadCreated(ctx, lead); err == nil {
			return
		} else {
			log.Printf("⚠️ lead %s saved but queue publish failed: %v", lead.ID, err)
		}
	}

	if uc.Notifier != nil {
		go func() {
			if err := uc.Notifier.Execute(context.Background(), lead); err != nil {
				log.Printf("⚠️ admin notification failed for lead %s: %v", lead.ID, err)
			}
		}()
	}
}
