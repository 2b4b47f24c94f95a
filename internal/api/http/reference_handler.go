package http

import (
	"net/http"

	"vendorhub/internal/logger"
	"vendorhub/internal/service"
)

// ReferenceHandler serves the option catalog the wizard pages are built
// from.
type ReferenceHandler struct {
	catalogs service.ReferenceService
}

func NewReferenceHandler(catalogs service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{catalogs: catalogs}
}

func (h *ReferenceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalogs.FetchReferenceCatalog(r.Context())
	if err != nil {
		logger.Error("catalog fetch failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load reference data")
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}
