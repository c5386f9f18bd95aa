package entity

import (
	"context"
	"time"
)

const (
	TestimonialDraft     = "draft"
	TestimonialPublished = "published"
)

type Testimonial struct {
	ID           string    `json:"id"`
	LeadID       string    `json:"-"` // provenance, never exposed publicly
	Name         string    `json:"name"`
	Location     string    `json:"location,omitempty"`
	Content      string    `json:"content"`
	Rating       int       `json:"rating"` // 1..5
	ServicesType string    `json:"servicesType"`
	Status       string    `json:"status"` // draft until an operator publishes
	CreatedAt    time.Time `json:"createdAt"`
}

type TestimonialRepositoryInterface interface {
	Create(ctx context.Context, t *Testimonial) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status string) ([]Testimonial, error)
}
