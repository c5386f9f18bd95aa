package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/udhay1409/vinushree-travels-api/internal/infra/http/middleware"
	"github.com/udhay1409/vinushree-travels-api/internal/usecase"
)

// LeadHandler serves the three public capture surfaces: contact form,
// quotation form and the generic lead form. Same pipeline, different
// required fields and default source.
type LeadHandler struct {
	createUC    *usecase.CreateLeadUseCase
	rateLimiter *RateLimiter
}

func NewLeadHandler(createUC *usecase.CreateLeadUseCase) *LeadHandler {
	return &LeadHandler{
		createUC:    createUC,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

func (h *LeadHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	h.capture(w, r, usecase.SourceContact)
}

func (h *LeadHandler) HandleQuotation(w http.ResponseWriter, r *http.Request) {
	h.capture(w, r, usecase.SourceQuotation)
}

func (h *LeadHandler) HandleLead(w http.ResponseWriter, r *http.Request) {
	h.capture(w, r, usecase.SourceLead)
}

func (h *LeadHandler) capture(w http.ResponseWriter, r *http.Request, formSource string) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}
	input.FormSource = formSource

	output, err := h.createUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadCaptured(output.Source)

	writeJSON(w, http.StatusCreated, output)
}
