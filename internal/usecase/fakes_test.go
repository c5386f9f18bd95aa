package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

// fakeLeadRepo mimics the Postgres repository including the conditional
// update semantics (the "status <> completed" mint guard and the
// token compare-and-set burn), so the race-sensitive tests exercise the
// same guarantees the SQL layer provides.
type fakeLeadRepo struct {
	mu    sync.Mutex
	leads map[string]*entity.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: map[string]*entity.Lead{}}
}

func (r *fakeLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound()
	}
	cp := *lead
	return &cp, nil
}

func (r *fakeLeadRepo) FindByReviewToken(ctx context.Context, token string) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, lead := range r.leads {
		if lead.ReviewToken != "" && lead.ReviewToken == token {
			cp := *lead
			return &cp, nil
		}
	}
	return nil, ErrLeadNotFound()
}

func (r *fakeLeadRepo) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.Lead
	for _, lead := range r.leads {
		if filter.Status != "" && lead.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && lead.Priority != filter.Priority {
			continue
		}
		if filter.Source != "" && lead.Source != filter.Source {
			continue
		}
		out = append(out, *lead)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, int64(len(out)), nil
}

func (r *fakeLeadRepo) Update(ctx context.Context, id string, patch entity.LeadPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return ErrLeadNotFound()
	}
	applyPatch(lead, patch)
	return nil
}

func (r *fakeLeadRepo) CompleteWithToken(ctx context.Context, id string, patch entity.LeadPatch, token, link string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return false, nil
	}
	if lead.Status == entity.LeadStatusCompleted {
		return false, nil
	}
	applyPatch(lead, patch)
	lead.Status = entity.LeadStatusCompleted
	lead.ReviewToken = token
	lead.ReviewLink = link
	return true, nil
}

func (r *fakeLeadRepo) BurnReviewToken(ctx context.Context, id, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok || lead.ReviewToken == "" || lead.ReviewToken != token {
		return false, nil
	}
	lead.ReviewToken = ""
	lead.ReviewLink = ""
	return true, nil
}

func (r *fakeLeadRepo) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &entity.DashboardStats{ByStatus: map[string]int64{}}
	for _, lead := range r.leads {
		stats.Total++
		stats.ByStatus[lead.Status]++
	}
	return stats, nil
}

func applyPatch(lead *entity.Lead, patch entity.LeadPatch) {
	if patch.FullName != nil {
		lead.FullName = *patch.FullName
	}
	if patch.Email != nil {
		lead.Email = *patch.Email
	}
	if patch.Phone != nil {
		lead.Phone = *patch.Phone
	}
	if patch.ServiceType != nil {
		lead.ServiceType = *patch.ServiceType
	}
	if patch.TravelDate != nil {
		lead.TravelDate = *patch.TravelDate
	}
	if patch.PickupLocation != nil {
		lead.PickupLocation = *patch.PickupLocation
	}
	if patch.DropLocation != nil {
		lead.DropLocation = *patch.DropLocation
	}
	if patch.Passengers != nil {
		lead.Passengers = *patch.Passengers
	}
	if patch.Message != nil {
		lead.Message = *patch.Message
	}
	if patch.Status != nil {
		lead.Status = *patch.Status
	}
	if patch.Priority != nil {
		lead.Priority = *patch.Priority
	}
	if patch.Source != nil {
		lead.Source = *patch.Source
	}
}

// fakeTestimonialRepo records creations and deletions in memory.
type fakeTestimonialRepo struct {
	mu           sync.Mutex
	testimonials map[string]*entity.Testimonial
	failCreate   error
}

func newFakeTestimonialRepo() *fakeTestimonialRepo {
	return &fakeTestimonialRepo{testimonials: map[string]*entity.Testimonial{}}
}

func (r *fakeTestimonialRepo) Create(ctx context.Context, t *entity.Testimonial) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *t
	r.testimonials[t.ID] = &cp
	return nil
}

func (r *fakeTestimonialRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.testimonials, id)
	return nil
}

func (r *fakeTestimonialRepo) List(ctx context.Context, status string) ([]entity.Testimonial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Testimonial
	for _, t := range r.testimonials {
		if status == "" || t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

// MockProducer / MockEmailService / MockSMTPRepo are testify mocks for
// the notification path.
type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishLeadCreated(ctx context.Context, lead entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(cfg entity.SMTPSettings, to, subject, htmlBody string) error {
	args := m.Called(cfg, to, subject, htmlBody)
	return args.Error(0)
}

type MockSMTPRepo struct {
	mock.Mock
}

func (m *MockSMTPRepo) GetActive(ctx context.Context) (*entity.SMTPSettings, error) {
	args := m.Called(ctx)
	if cfg, ok := args.Get(0).(*entity.SMTPSettings); ok {
		return cfg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSMTPRepo) Save(ctx context.Context, s *entity.SMTPSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
