package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

func seedLead(repo *fakeLeadRepo, id, status string) *entity.Lead {
	lead := &entity.Lead{
		ID:             id,
		FullName:       "Priya Raman",
		Phone:          "9876543210",
		ServiceType:    "Airport Taxi",
		TravelDate:     "2026-09-15",
		PickupLocation: "Chennai",
		DropLocation:   "Pondicherry",
		Status:         status,
		Priority:       entity.PriorityMedium,
		Source:         "website",
		SubmittedAt:    time.Now(),
		LastUpdated:    time.Now(),
	}
	repo.Create(context.Background(), lead)
	return lead
}

func strPtr(s string) *string { return &s }

func TestUpdateLeadNotFound(t *testing.T) {
	uc := NewUpdateLeadUseCase(newFakeLeadRepo(), "https://vinushreetours.com")

	_, err := uc.Execute(context.Background(), "missing", entity.LeadPatch{Status: strPtr("contacted")})

	assert.Error(t, err)
	assert.Equal(t, CodeNotFound, DomainCode(err))
}

func TestUpdateLeadEmptyPatch(t *testing.T) {
	repo := newFakeLeadRepo()
	seedLead(repo, "lead-1", entity.LeadStatusNew)
	uc := NewUpdateLeadUseCase(repo, "https://vinushreetours.com")

	_, err := uc.Execute(context.Background(), "lead-1", entity.LeadPatch{})

	assert.Equal(t, CodeValidation, DomainCode(err))
}

func TestUpdateLeadRejectsUnknownStatus(t *testing.T) {
	repo := newFakeLeadRepo()
	seedLead(repo, "lead-1", entity.LeadStatusNew)
	uc := NewUpdateLeadUseCase(repo, "https://vinushreetours.com")

	_, err := uc.Execute(context.Background(), "lead-1", entity.LeadPatch{Status: strPtr("archived")})

	assert.Equal(t, CodeValidation, DomainCode(err))
}

// Mirrors the admin journey: new -> contacted (no token), then
// completed (token minted, link embeds it).
func TestUpdateLeadMintsTokenOnCompletion(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLeadRepo()
	seedLead(repo, "lead-1", entity.LeadStatusNew)
	uc := NewUpdateLeadUseCase(repo, "https://vinushreetours.com")

	out, err := uc.Execute(ctx, "lead-1", entity.LeadPatch{Status: strPtr(entity.LeadStatusContacted)})
	assert.NoError(t, err)
	assert.Empty(t, out.Lead.ReviewToken)
	assert.Empty(t, out.ReviewLink)

	out, err = uc.Execute(ctx, "lead-1", entity.LeadPatch{Status: strPtr(entity.LeadStatusCompleted)})
	assert.NoError(t, err)
	assert.NotEmpty(t, out.Lead.ReviewToken)
	assert.Contains(t, out.Lead.ReviewLink, out.Lead.ReviewToken)
	assert.True(t, strings.HasPrefix(out.Lead.ReviewLink, "https://vinushreetours.com/review?token="))
	assert.Equal(t, out.Lead.ReviewLink, out.ReviewLink)
	assert.NotEmpty(t, out.Note)
}

func TestUpdateLeadMintsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLeadRepo()
	seedLead(repo, "lead-1", entity.LeadStatusConfirmed)
	uc := NewUpdateLeadUseCase(repo, "https://vinushreetours.com")

	first, err := uc.Execute(ctx, "lead-1", entity.LeadPatch{Status: strPtr(entity.LeadStatusCompleted)})
	assert.NoError(t, err)
	token := first.Lead.ReviewToken
	assert.NotEmpty(t, token)

	// Repeat completions must neither mint nor overwrite.
	for i := 0; i < 3; i++ {
		again, err := uc.Execute(ctx, "lead-1", entity.LeadPatch{Status: strPtr(entity.LeadStatusCompleted)})
		assert.NoError(t, err)
		assert.Equal(t, token, again.Lead.ReviewToken)
		assert.Empty(t, again.ReviewLink)
	}
}

func TestUpdateLeadNoMintOnUnrelatedChange(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLeadRepo()
	seedLead(repo, "lead-1", entity.LeadStatusConfirmed)
	uc := NewUpdateLeadUseCase(repo, "https://vinushreetours.com")

	first, err := uc.Execute(ctx, "lead-1", entity.LeadPatch{Status: strPtr(entity.LeadStatusCompleted)})
	assert.NoError(t, err)
	token := first.Lead.ReviewToken

	out, err := uc.Execute(ctx, "lead-1", entity.LeadPatch{Message: strPtr("customer called back")})
	assert.NoError(t, err)
	assert.Equal(t, token, out.Lead.ReviewToken)
	assert.Equal(t, "customer called back", out.Lead.Message)
	assert.Empty(t, out.ReviewLink)
}

func TestUpdateLeadConcurrentCompletionMintsOneToken(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLeadRepo()
	seedLead(repo, "lead-1", entity.LeadStatusNew)
	uc := NewUpdateLeadUseCase(repo, "https://vinushreetours.com")

	const callers = 8
	links := make(chan string, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := uc.Execute(ctx, "lead-1", entity.LeadPatch{Status: strPtr(entity.LeadStatusCompleted)})
			assert.NoError(t, err)
			links <- out.ReviewLink
		}()
	}
	wg.Wait()
	close(links)

	minted := 0
	for link := range links {
		if link != "" {
			minted++
		}
	}
	assert.Equal(t, 1, minted, "exactly one caller should mint the token")

	lead, err := repo.FindByID(ctx, "lead-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, lead.ReviewToken)
}

func TestUpdateLeadNormalizesLegacyStatuses(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLeadRepo()
	seedLead(repo, "lead-1", entity.LeadStatusNew)
	uc := NewUpdateLeadUseCase(repo, "https://vinushreetours.com")

	out, err := uc.Execute(ctx, "lead-1", entity.LeadPatch{Status: strPtr("in-progress")})
	assert.NoError(t, err)
	assert.Equal(t, entity.LeadStatusContacted, out.Lead.Status)

	out, err = uc.Execute(ctx, "lead-1", entity.LeadPatch{Status: strPtr("pending")})
	assert.NoError(t, err)
	assert.Equal(t, entity.LeadStatusNew, out.Lead.Status)
}

func TestReviewTokenShape(t *testing.T) {
	a := newReviewToken("0f47ac10-58cc-4372-a567-0e02b2c3d479")
	b := newReviewToken("0f47ac10-58cc-4372-a567-0e02b2c3d479")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "rv-0f47ac10-"))
	// 16 random bytes hex encoded
	parts := strings.Split(a, "-")
	assert.Len(t, parts[len(parts)-1], 32)
}
