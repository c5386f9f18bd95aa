package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validationFailed folds a slice of field errors into one DomainError
// the handlers can flatten into a 400 response.
func validationFailed(errs []ValidationError) *DomainError {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Field+" ("+e.Message+")")
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(msgs, ", "),
	}
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FullName) == "" {
		errors = append(errors, ValidationError{"fullName", "is required"})
	} else if len(input.FullName) > 200 {
		errors = append(errors, ValidationError{"fullName", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if strings.TrimSpace(input.ServiceType) == "" {
		errors = append(errors, ValidationError{"serviceType", "is required"})
	}

	// Required-field matrix differs per entry surface: the quotation form
	// supplies trip details instead of a free-text message.
	switch input.FormSource {
	case SourceQuotation:
		if strings.TrimSpace(input.TravelDate) == "" {
			errors = append(errors, ValidationError{"travelDate", "is required"})
		} else if !isValidDate(input.TravelDate) {
			errors = append(errors, ValidationError{"travelDate", "must be a valid date (YYYY-MM-DD)"})
		}
		if strings.TrimSpace(input.PickupLocation) == "" {
			errors = append(errors, ValidationError{"pickupLocation", "is required"})
		}
	default:
		if strings.TrimSpace(input.Message) == "" {
			errors = append(errors, ValidationError{"message", "is required"})
		}
	}

	if input.TravelDate != "" && !isValidDate(input.TravelDate) {
		errors = append(errors, ValidationError{"travelDate", "must be a valid date (YYYY-MM-DD)"})
	}
	if input.Passengers < 0 {
		errors = append(errors, ValidationError{"passengers", "must not be negative"})
	}
	if input.Source != "" && !contains(entity.LeadSources, input.Source) {
		errors = append(errors, ValidationError{"source", "is not a known source"})
	}

	return errors
}

func ValidateLeadPatch(patch entity.LeadPatch) []ValidationError {
	var errors []ValidationError

	if patch.Status != nil && !contains(entity.LeadStatuses, *patch.Status) {
		errors = append(errors, ValidationError{"status", "must be one of " + strings.Join(entity.LeadStatuses, ", ")})
	}
	if patch.Priority != nil && !contains(entity.LeadPriorities, *patch.Priority) {
		errors = append(errors, ValidationError{"priority", "must be one of " + strings.Join(entity.LeadPriorities, ", ")})
	}
	if patch.Source != nil && !contains(entity.LeadSources, *patch.Source) {
		errors = append(errors, ValidationError{"source", "is not a known source"})
	}
	if patch.FullName != nil && strings.TrimSpace(*patch.FullName) == "" {
		errors = append(errors, ValidationError{"fullName", "must not be empty"})
	}
	if patch.Phone != nil && !isValidPhoneNumber(*patch.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}
	if patch.Email != nil && *patch.Email != "" {
		if _, err := mail.ParseAddress(*patch.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}
	if patch.TravelDate != nil && *patch.TravelDate != "" && !isValidDate(*patch.TravelDate) {
		errors = append(errors, ValidationError{"travelDate", "must be a valid date (YYYY-MM-DD)"})
	}
	if patch.Passengers != nil && *patch.Passengers < 0 {
		errors = append(errors, ValidationError{"passengers", "must not be negative"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")

	return len(cleaned) >= 10 && len(cleaned) <= 13
}

func isValidDate(dateStr string) bool {
	if _, err := time.Parse("2006-01-02", dateStr); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return true
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// NormalizeStatus maps legacy admin-client vocabulary onto the canonical
// enum so older entry surfaces keep working.
func NormalizeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "pending":
		return entity.LeadStatusNew
	case "in-progress":
		return entity.LeadStatusContacted
	default:
		return strings.ToLower(strings.TrimSpace(status))
	}
}
