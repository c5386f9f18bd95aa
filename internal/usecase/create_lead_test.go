package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

func validContactInput() CreateLeadInput {
	return CreateLeadInput{
		FullName:    "Arun Kumar",
		Email:       "arun@example.com",
		Phone:       "9876501234",
		ServiceType: "Honeymoon Package",
		Message:     "Looking for a 3 day Ooty package",
		FormSource:  SourceContact,
	}
}

func TestCreateLeadFromContactForm(t *testing.T) {
	repo := newFakeLeadRepo()
	uc := NewCreateLeadUseCase(repo, nil, nil)

	out, err := uc.Execute(context.Background(), validContactInput())

	assert.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.LeadStatusNew, out.Status)
	assert.Equal(t, entity.PriorityMedium, out.Priority)
	assert.Equal(t, "contact", out.Source)

	lead, err := repo.FindByID(context.Background(), out.ID)
	assert.NoError(t, err)
	assert.Empty(t, lead.ReviewToken, "new leads carry no review token")
}

func TestCreateLeadRequiredFieldsPerSurface(t *testing.T) {
	uc := NewCreateLeadUseCase(newFakeLeadRepo(), nil, nil)

	// Contact surface: message required.
	input := validContactInput()
	input.Message = ""
	_, err := uc.Execute(context.Background(), input)
	assert.Equal(t, CodeValidation, DomainCode(err))
	assert.Contains(t, err.Error(), "message")

	// Quotation surface: trip details replace the message.
	quotation := CreateLeadInput{
		FullName:       "Arun Kumar",
		Phone:          "9876501234",
		ServiceType:    "Airport Taxi",
		TravelDate:     "2026-10-01",
		PickupLocation: "Chennai Airport",
		FormSource:     SourceQuotation,
	}
	out, err := uc.Execute(context.Background(), quotation)
	assert.NoError(t, err)
	assert.Equal(t, "quotation", out.Source)

	quotation.TravelDate = ""
	_, err = uc.Execute(context.Background(), quotation)
	assert.Equal(t, CodeValidation, DomainCode(err))
	assert.Contains(t, err.Error(), "travelDate")
}

func TestCreateLeadComposesQuotationMessage(t *testing.T) {
	repo := newFakeLeadRepo()
	uc := NewCreateLeadUseCase(repo, nil, nil)

	out, err := uc.Execute(context.Background(), CreateLeadInput{
		FullName:       "Arun Kumar",
		Phone:          "9876501234",
		ServiceType:    "Airport Taxi",
		TravelDate:     "2026-10-01",
		PickupLocation: "Chennai Airport",
		DropLocation:   "Mahabalipuram",
		FormSource:     SourceQuotation,
	})
	assert.NoError(t, err)

	lead, _ := repo.FindByID(context.Background(), out.ID)
	assert.Contains(t, lead.Message, "Airport Taxi")
	assert.Contains(t, lead.Message, "Chennai Airport")
	assert.Contains(t, lead.Message, "Mahabalipuram")
}

func TestCreateLeadRejectsBadInput(t *testing.T) {
	uc := NewCreateLeadUseCase(newFakeLeadRepo(), nil, nil)

	cases := []struct {
		name  string
		edit  func(*CreateLeadInput)
		field string
	}{
		{"missing name", func(i *CreateLeadInput) { i.FullName = " " }, "fullName"},
		{"missing phone", func(i *CreateLeadInput) { i.Phone = "" }, "phone"},
		{"short phone", func(i *CreateLeadInput) { i.Phone = "12345" }, "phone"},
		{"bad email", func(i *CreateLeadInput) { i.Email = "not-an-email" }, "email"},
		{"missing service", func(i *CreateLeadInput) { i.ServiceType = "" }, "serviceType"},
		{"unknown source", func(i *CreateLeadInput) { i.Source = "carrier-pigeon" }, "source"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validContactInput()
			tc.edit(&input)
			_, err := uc.Execute(context.Background(), input)
			assert.Equal(t, CodeValidation, DomainCode(err))
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

// Creation must succeed no matter what the notification path does.
func TestCreateLeadSucceedsWhenQueueIsDown(t *testing.T) {
	repo := newFakeLeadRepo()
	producer := new(MockProducer)
	producer.On("PublishLeadCreated", mock.Anything, mock.Anything).Return(errors.New("broker unreachable"))

	smtpRepo := new(MockSMTPRepo)
	smtpRepo.On("GetActive", mock.Anything).Return((*entity.SMTPSettings)(nil), nil)
	notifier := NewNotifyAdminUseCase(smtpRepo, new(MockEmailService))

	uc := NewCreateLeadUseCase(repo, producer, notifier)

	out, err := uc.Execute(context.Background(), validContactInput())

	assert.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	producer.AssertCalled(t, "PublishLeadCreated", mock.Anything, mock.Anything)
}

func TestCreateLeadSucceedsWhenSMTPIsUnreachable(t *testing.T) {
	repo := newFakeLeadRepo()

	smtpRepo := new(MockSMTPRepo)
	smtpRepo.On("GetActive", mock.Anything).Return(&entity.SMTPSettings{
		Host: "smtp.example.com", Port: 587, Username: "u", Password: "p",
		FromEmail: "noreply@vinushreetours.com", AdminEmail: "admin@vinushreetours.com",
		Active: true,
	}, nil)

	mailer := new(MockEmailService)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("dial tcp: connection refused"))

	notifier := NewNotifyAdminUseCase(smtpRepo, mailer)
	uc := NewCreateLeadUseCase(repo, nil, notifier)

	out, err := uc.Execute(context.Background(), validContactInput())

	assert.NoError(t, err)
	assert.NotEmpty(t, out.ID)

	// The inline dispatch runs on its own goroutine; give it a beat so
	// the mock records the attempt.
	assert.Eventually(t, func() bool {
		for _, call := range mailer.Calls {
			if call.Method == "Send" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestNotifyAdminSkipsWithoutActiveConfig(t *testing.T) {
	smtpRepo := new(MockSMTPRepo)
	smtpRepo.On("GetActive", mock.Anything).Return((*entity.SMTPSettings)(nil), nil)
	mailer := new(MockEmailService)

	notifier := NewNotifyAdminUseCase(smtpRepo, mailer)
	err := notifier.Execute(context.Background(), entity.Lead{ID: "lead-1", FullName: "Arun"})

	assert.NoError(t, err)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifyAdminSendsSummary(t *testing.T) {
	cfg := &entity.SMTPSettings{
		Host: "smtp.example.com", Port: 587, Username: "u", Password: "p",
		FromEmail: "noreply@vinushreetours.com", AdminEmail: "admin@vinushreetours.com",
		Active: true,
	}
	smtpRepo := new(MockSMTPRepo)
	smtpRepo.On("GetActive", mock.Anything).Return(cfg, nil)

	mailer := new(MockEmailService)
	mailer.On("Send", *cfg, "admin@vinushreetours.com", mock.Anything, mock.MatchedBy(func(body string) bool {
		return len(body) > 0
	})).Return(nil)

	notifier := NewNotifyAdminUseCase(smtpRepo, mailer)
	err := notifier.Execute(context.Background(), entity.Lead{
		ID: "lead-1", FullName: "Arun Kumar", Phone: "9876501234",
		ServiceType: "Airport Taxi", Source: "contact",
	})

	assert.NoError(t, err)
	mailer.AssertExpectations(t)
}
