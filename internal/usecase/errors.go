package usecase

// Error codes surfaced by the use cases. The HTTP layer maps these to
// status codes; INVALID_TOKEN deliberately carries one generic message
// for every token failure mode so callers cannot probe token validity.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidToken = "INVALID_OR_EXPIRED_TOKEN"
)

const invalidTokenMessage = "Invalid or expired review link"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

func DomainCode(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	return ""
}

func ErrLeadNotFound() *DomainError {
	return &DomainError{Code: CodeNotFound, Message: "lead not found"}
}

func ErrInvalidToken() *DomainError {
	return &DomainError{Code: CodeInvalidToken, Message: invalidTokenMessage}
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
