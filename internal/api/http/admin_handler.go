package http

import (
	"encoding/json"
	"net/http"

	"vendorhub/internal/logger"
	"vendorhub/internal/security"
	"vendorhub/internal/service"
)

const adminKeyHeader = "X-Admin-Key"

// AdminHandler covers the inviter-side endpoints, guarded by the
// shared admin key.
type AdminHandler struct {
	admin        service.AdminService
	adminKeyHash string
}

func NewAdminHandler(admin service.AdminService, adminKeyHash string) *AdminHandler {
	return &AdminHandler{
		admin:        admin,
		adminKeyHash: adminKeyHash,
	}
}

// HandleCreateInvitation issues a new invitation and emails the vendor
// their onboarding link.
func (h *AdminHandler) HandleCreateInvitation(w http.ResponseWriter, r *http.Request) {
	if err := security.CheckAdminKey(h.adminKeyHash, r.Header.Get(adminKeyHeader)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req service.CreateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.CompanyName == "" {
		writeError(w, http.StatusBadRequest, "An email and company name are required")
		return
	}

	inv, err := h.admin.CreateInvitation(r.Context(), req)
	if err != nil {
		logger.Error("invitation creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create invitation")
		return
	}

	writeJSON(w, http.StatusCreated, inv)
}
