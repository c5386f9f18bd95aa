package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/udhay1409/vinushree-travels-api/internal/infra/http/middleware"
	"github.com/udhay1409/vinushree-travels-api/internal/usecase"
)

// ReviewHandler is the token-gated public surface: look up trip context
// for a review link, and redeem the link into a draft testimonial.
type ReviewHandler struct {
	reviewUC    *usecase.ReviewUseCase
	rateLimiter *RateLimiter
}

func NewReviewHandler(reviewUC *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUC:    reviewUC,
		rateLimiter: NewRateLimiter(20, time.Minute),
	}
}

// HandleGetContext (GET /api/review?token=...)
func (h *ReviewHandler) HandleGetContext(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	ctx, err := h.reviewUC.GetTripContext(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ctx)
}

// HandleSubmit (POST /api/review)
func (h *ReviewHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.SubmitReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}

	output, err := h.reviewUC.SubmitReview(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordReviewSubmitted()

	writeJSON(w, http.StatusCreated, output)
}
