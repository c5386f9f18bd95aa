package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

const shareNote = "Review link generated. Share it with the customer via WhatsApp or SMS."

// UpdateLeadUseCase mediates every admin update to a lead and owns the
// token-minting rule: exactly one review token per lead, minted on the
// transition into "completed" and never again.
type UpdateLeadUseCase struct {
	Repo       entity.LeadRepositoryInterface
	AppBaseURL string
}

func NewUpdateLeadUseCase(repo entity.LeadRepositoryInterface, appBaseURL string) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{
		Repo:       repo,
		AppBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, id string, patch entity.LeadPatch) (*UpdateLeadOutput, error) {
	if patch.IsEmpty() {
		return nil, &DomainError{Code: CodeValidation, Message: "validation failed: patch must not be empty"}
	}

	if patch.Status != nil {
		normalized := NormalizeStatus(*patch.Status)
		patch.Status = &normalized
	}

	if validationErrors := ValidateLeadPatch(patch); len(validationErrors) > 0 {
		return nil, validationFailed(validationErrors)
	}

	current, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	minted := false
	var link string

	if patch.Status != nil && *patch.Status == entity.LeadStatusCompleted &&
		current.Status != entity.LeadStatusCompleted {
		token := newReviewToken(id)
		link = uc.AppBaseURL + "/review?token=" + token

		// Single conditional statement: the "status <> completed" guard
		// makes concurrent completion attempts mint at most one token.
		minted, err = uc.Repo.CompleteWithToken(ctx, id, patch, token, link)
		if err != nil {
			return nil, &TechnicalError{
				Code:    "DATABASE_ERROR",
				Message: "failed to update lead: " + err.Error(),
			}
		}

		if !minted {
			// Lost the race: another caller completed the lead between
			// our read and the conditional write. Their token stands;
			// apply the rest of the patch without touching token fields.
			link = ""
			if err := uc.Repo.Update(ctx, id, patch); err != nil {
				return nil, &TechnicalError{
					Code:    "DATABASE_ERROR",
					Message: "failed to update lead: " + err.Error(),
				}
			}
		}
	} else {
		// No transition into completed: plain patch. Re-saving an
		// already-completed lead must leave the token untouched.
		if err := uc.Repo.Update(ctx, id, patch); err != nil {
			return nil, &TechnicalError{
				Code:    "DATABASE_ERROR",
				Message: "failed to update lead: " + err.Error(),
			}
		}
	}

	updated, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &UpdateLeadOutput{Lead: updated}
	if minted {
		out.ReviewLink = link
		out.Note = shareNote
	}
	return out, nil
}

// newReviewToken builds an unguessable single-use capability token:
// a lead-id fragment for traceability, the mint time, and 128 bits of
// randomness. Possession of the string is sufficient to redeem.
func newReviewToken(leadID string) string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}

	fragment := leadID
	if len(fragment) > 8 {
		fragment = fragment[:8]
	}

	return fmt.Sprintf("rv-%s-%d-%s", fragment, time.Now().UnixNano(), hex.EncodeToString(buf))
}
