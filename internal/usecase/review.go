package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

// ReviewUseCase is the only unauthenticated write surface: it resolves
// bearer review tokens, converts submissions into draft testimonials and
// burns the token so a shared link can never be redeemed twice.
type ReviewUseCase struct {
	LeadRepo        entity.LeadRepositoryInterface
	TestimonialRepo entity.TestimonialRepositoryInterface
}

func NewReviewUseCase(
	leadRepo entity.LeadRepositoryInterface,
	testimonialRepo entity.TestimonialRepositoryInterface,
) *ReviewUseCase {
	return &ReviewUseCase{
		LeadRepo:        leadRepo,
		TestimonialRepo: testimonialRepo,
	}
}

// GetTripContext returns the reduced lead view used to render the review
// form. Every failure mode collapses into the one opaque token error.
func (uc *ReviewUseCase) GetTripContext(ctx context.Context, token string) (*TripContext, error) {
	lead, err := uc.resolveToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return &TripContext{
		CustomerName:   lead.FullName,
		ServiceType:    lead.ServiceType,
		TravelDate:     lead.TravelDate,
		PickupLocation: lead.PickupLocation,
		DropLocation:   lead.DropLocation,
	}, nil
}

func (uc *ReviewUseCase) SubmitReview(ctx context.Context, input SubmitReviewInput) (*SubmitReviewOutput, error) {
	lead, err := uc.resolveToken(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	if input.Rating < 1 || input.Rating > 5 {
		return nil, &DomainError{Code: CodeValidation, Message: "Rating must be between 1 and 5"}
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "Review content is required"}
	}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		location = lead.PickupLocation
	}

	testimonial := &entity.Testimonial{
		ID:           uuid.New().String(),
		LeadID:       lead.ID,
		Name:         lead.FullName,
		Location:     location,
		Content:      content,
		Rating:       input.Rating,
		ServicesType: lead.ServiceType,
		Status:       entity.TestimonialDraft,
		CreatedAt:    time.Now(),
	}

	// Insert first, burn second: a crash between the two leaves a stray
	// draft rather than a silently dropped review. The burn is
	// conditional on the token still matching, and a lost race deletes
	// the testimonial we just wrote, so concurrent redemptions of the
	// same link produce exactly one draft.
	txn := NewTransaction()

	txn.AddOperation("create_testimonial", func(ctx context.Context) error {
		return uc.TestimonialRepo.Create(ctx, testimonial)
	})
	txn.AddCompensation("delete_testimonial", func(ctx context.Context) error {
		return uc.TestimonialRepo.Delete(ctx, testimonial.ID)
	})

	txn.AddOperation("burn_review_token", func(ctx context.Context) error {
		burned, err := uc.LeadRepo.BurnReviewToken(ctx, lead.ID, input.Token)
		if err != nil {
			return err
		}
		if !burned {
			return errTokenAlreadyBurned
		}
		return nil
	})

	if err := txn.Execute(ctx); err != nil {
		if errors.Is(err, errTokenAlreadyBurned) {
			return nil, ErrInvalidToken()
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to record review: " + err.Error(),
		}
	}

	// No internal identifiers in the anonymous response.
	return &SubmitReviewOutput{
		Success: true,
		Message: "Thank you for your review! It will appear once approved.",
	}, nil
}

var errTokenAlreadyBurned = errors.New("review token already redeemed")

func (uc *ReviewUseCase) resolveToken(ctx context.Context, token string) (*entity.Lead, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken()
	}

	lead, err := uc.LeadRepo.FindByReviewToken(ctx, token)
	if err != nil {
		// "never existed", "already redeemed" and "malformed" must be
		// indistinguishable from the outside.
		if DomainCode(err) == CodeNotFound {
			return nil, ErrInvalidToken()
		}
		return nil, err
	}

	return lead, nil
}
