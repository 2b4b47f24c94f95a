package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"vendorhub/internal/domain"
	"vendorhub/internal/logger"
	"vendorhub/internal/service"
	"vendorhub/internal/wizard"
)

// DraftHandler serves the draft lifecycle: init, page saves, submission
// and the rendered review.
type DraftHandler struct {
	drafts   service.DraftService
	catalogs service.ReferenceService
}

func NewDraftHandler(drafts service.DraftService, catalogs service.ReferenceService) *DraftHandler {
	return &DraftHandler{
		drafts:   drafts,
		catalogs: catalogs,
	}
}

type initDraftRequest struct {
	VendorToken  string `json:"vendorToken"`
	InviterEmail string `json:"inviterEmail"`
}

// HandleInit creates a draft for a fresh invitation token, or returns
// the existing draft when one is already underway.
func (h *DraftHandler) HandleInit(w http.ResponseWriter, r *http.Request) {
	var req initDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.VendorToken == "" {
		writeError(w, http.StatusBadRequest, "A vendor token is required")
		return
	}

	result, err := h.drafts.InitDraft(r.Context(), req.VendorToken, req.InviterEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidVendorToken):
			writeError(w, http.StatusNotFound, "Unknown vendor token")
		case errors.Is(err, service.ErrInviteExpired):
			writeError(w, http.StatusGone, "This invitation has expired")
		default:
			logger.Error("draft init failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to initialize draft")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleSavePage stores one page fragment on an existing draft.
func (h *DraftHandler) HandleSavePage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	draftID := vars["draftId"]

	page, err := strconv.Atoi(vars["pageNumber"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid page number")
		return
	}
	step := domain.Step(page)
	if !step.DataStep() {
		writeError(w, http.StatusBadRequest, "Invalid page number")
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	frag, err := domain.ParseFragment(step, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid page payload")
		return
	}

	if err := h.drafts.SavePage(r.Context(), draftID, step, frag); err != nil {
		var vErr *wizard.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeError(w, http.StatusBadRequest, vErr.Reason)
		case errors.Is(err, service.ErrDraftNotFound):
			writeError(w, http.StatusNotFound, "Draft not found")
		case errors.Is(err, service.ErrDraftSubmitted):
			writeError(w, http.StatusConflict, "Draft has already been submitted")
		default:
			logger.Error("page save failed", "draft_id", draftID, "page", page, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to save page")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSubmit finalizes a draft. Re-submitting a finished draft is not
// an error.
func (h *DraftHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	already, err := h.drafts.SubmitDraft(r.Context(), draftID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDraftNotFound):
			writeError(w, http.StatusNotFound, "Draft not found")
		default:
			logger.Error("draft submit failed", "draft_id", draftID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to submit draft")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"alreadySubmitted": already})
}

// HandleReview renders the human-readable summary rows for a draft.
func (h *DraftHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	draft, err := h.drafts.GetDraft(r.Context(), draftID)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			writeError(w, http.StatusNotFound, "Draft not found")
			return
		}
		logger.Error("draft fetch failed", "draft_id", draftID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load draft")
		return
	}

	catalog, err := h.catalogs.FetchReferenceCatalog(r.Context())
	if err != nil {
		logger.Error("catalog fetch failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load reference data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"rows": wizard.BuildReview(&draft.Payload, catalog),
	})
}
