package entity

import (
	"context"
	"time"
)

// Lead statuses. "completed" is terminal for the review pipeline:
// the transition into it mints the review token.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConfirmed = "confirmed"
	LeadStatusCompleted = "completed"
	LeadStatusCancelled = "cancelled"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var LeadStatuses = []string{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusConfirmed,
	LeadStatusCompleted,
	LeadStatusCancelled,
}

var LeadPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

var LeadSources = []string{
	"website", "whatsapp", "phone", "referral",
	"contact", "quotation", "lead", "brochure",
}

type Lead struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone"`
	ServiceType    string    `json:"serviceType"`
	TravelDate     string    `json:"travelDate,omitempty"`
	PickupLocation string    `json:"pickupLocation,omitempty"`
	DropLocation   string    `json:"dropLocation,omitempty"`
	Passengers     int       `json:"passengers,omitempty"`
	Message        string    `json:"message,omitempty"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	Source         string    `json:"source"`
	ReviewToken    string    `json:"reviewToken,omitempty"` // empty = no active token
	ReviewLink     string    `json:"reviewLink,omitempty"`
	SubmittedAt    time.Time `json:"submittedAt"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// LeadPatch is a partial update. Nil fields are left untouched.
type LeadPatch struct {
	FullName       *string `json:"fullName,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	ServiceType    *string `json:"serviceType,omitempty"`
	TravelDate     *string `json:"travelDate,omitempty"`
	PickupLocation *string `json:"pickupLocation,omitempty"`
	DropLocation   *string `json:"dropLocation,omitempty"`
	Passengers     *int    `json:"passengers,omitempty"`
	Message        *string `json:"message,omitempty"`
	Status         *string `json:"status,omitempty"`
	Priority       *string `json:"priority,omitempty"`
	Source         *string `json:"source,omitempty"`
}

func (p LeadPatch) IsEmpty() bool {
	return p.FullName == nil && p.Email == nil && p.Phone == nil &&
		p.ServiceType == nil && p.TravelDate == nil && p.PickupLocation == nil &&
		p.DropLocation == nil && p.Passengers == nil && p.Message == nil &&
		p.Status == nil && p.Priority == nil && p.Source == nil
}

type LeadFilter struct {
	Status   string
	Priority string
	Source   string
	Page     int
	Limit    int
	All      bool
}

// DashboardStats is the raw aggregate read from storage. Growth math
// lives in the usecase layer.
type DashboardStats struct {
	Total         int64
	ThisMonth     int64
	LastMonth     int64
	ThisWeek      int64
	ByStatus      map[string]int64
	ByServiceType []ServiceTypeCount
	RecentLeads   []Lead
}

type ServiceTypeCount struct {
	ServiceType string `json:"serviceType"`
	Count       int64  `json:"count"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindByReviewToken(ctx context.Context, token string) (*Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]Lead, int64, error)

	// Update applies the patch and bumps last_updated. It never touches
	// the review token columns.
	Update(ctx context.Context, id string, patch LeadPatch) error

	// CompleteWithToken applies the patch plus status=completed and the
	// token fields in a single conditional statement guarded by
	// "status <> 'completed'". Returns false when the guard matched no
	// row, i.e. a concurrent caller already completed the lead.
	CompleteWithToken(ctx context.Context, id string, patch LeadPatch, token, link string) (bool, error)

	// BurnReviewToken clears the token only if it still equals the given
	// value. Returns false if another redemption got there first.
	BurnReviewToken(ctx context.Context, id, token string) (bool, error)

	Stats(ctx context.Context) (*DashboardStats, error)
}
