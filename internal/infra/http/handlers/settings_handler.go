package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

type SettingsHandler struct {
	smtpRepo entity.SMTPRepositoryInterface
}

func NewSettingsHandler(smtpRepo entity.SMTPRepositoryInterface) *SettingsHandler {
	return &SettingsHandler{smtpRepo: smtpRepo}
}

// HandleGetSMTP (GET /api/admin/settings/smtp). The password never
// leaves the server; the entity's json tag strips it.
func (h *SettingsHandler) HandleGetSMTP(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.smtpRepo.GetActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if cfg == nil {
		writeJSON(w, http.StatusOK, map[string]any{"configured": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"configured": true, "settings": cfg})
}

type saveSMTPRequest struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	FromEmail  string `json:"fromEmail"`
	FromName   string `json:"fromName"`
	AdminEmail string `json:"adminEmail"`
	Active     bool   `json:"active"`
}

// HandleSaveSMTP (PUT /api/admin/settings/smtp)
func (h *SettingsHandler) HandleSaveSMTP(w http.ResponseWriter, r *http.Request) {
	var req saveSMTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}

	var missing []string
	for field, value := range map[string]string{
		"host":       req.Host,
		"username":   req.Username,
		"password":   req.Password,
		"fromEmail":  req.FromEmail,
		"adminEmail": req.AdminEmail,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if req.Port <= 0 {
		missing = append(missing, "port")
	}
	if len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "missing required fields: " + strings.Join(missing, ", "),
		})
		return
	}

	cfg := &entity.SMTPSettings{
		Host:       req.Host,
		Port:       req.Port,
		Username:   req.Username,
		Password:   req.Password,
		FromEmail:  req.FromEmail,
		FromName:   req.FromName,
		AdminEmail: req.AdminEmail,
		Active:     req.Active,
	}

	if err := h.smtpRepo.Save(r.Context(), cfg); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
