package handlers

import (
	"net/http"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

type TestimonialHandler struct {
	repo entity.TestimonialRepositoryInterface
}

func NewTestimonialHandler(repo entity.TestimonialRepositoryInterface) *TestimonialHandler {
	return &TestimonialHandler{repo: repo}
}

// HandleList (GET /api/testimonials) serves the published testimonials
// for the public site. Drafts stay invisible until an operator publishes
// them.
func (h *TestimonialHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.repo.List(r.Context(), entity.TestimonialPublished)
	if err != nil {
		writeError(w, err)
		return
	}
	if testimonials == nil {
		testimonials = []entity.Testimonial{}
	}

	writeJSON(w, http.StatusOK, testimonials)
}
