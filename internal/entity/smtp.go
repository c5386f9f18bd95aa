package entity

import "context"

// SMTPSettings is the operator-editable mail configuration. It is loaded
// and passed into the mail sender per call, never held as ambient state.
type SMTPSettings struct {
	ID         string `json:"id,omitempty"`
	Host       string `json:"host"`
	Port       int    `json:"port"`
	Username   string `json:"username"`
	Password   string `json:"-"`
	FromEmail  string `json:"fromEmail"`
	FromName   string `json:"fromName,omitempty"`
	AdminEmail string `json:"adminEmail"`
	Active     bool   `json:"active"`
}

type SMTPRepositoryInterface interface {
	// GetActive returns nil (and no error) when no active config exists.
	GetActive(ctx context.Context) (*SMTPSettings, error)
	Save(ctx context.Context, s *SMTPSettings) error
}
