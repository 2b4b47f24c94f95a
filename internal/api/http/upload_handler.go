package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"vendorhub/internal/logger"
	"vendorhub/internal/service"
)

// UploadHandler issues pre-signed upload targets and accepts the staged
// tax document bytes.
type UploadHandler struct {
	uploads service.UploadService
}

func NewUploadHandler(uploads service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

type uploadTargetRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
	VendorToken string `json:"vendorToken"`
}

// HandleRequestTarget validates the upload policy and hands back a
// signed single-use URL.
func (h *UploadHandler) HandleRequestTarget(w http.ResponseWriter, r *http.Request) {
	var req uploadTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FileName == "" || req.VendorToken == "" {
		writeError(w, http.StatusBadRequest, "A file name and vendor token are required")
		return
	}

	target, err := h.uploads.RequestUploadTarget(r.Context(), req.FileName, req.ContentType, req.SizeBytes, req.VendorToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadTypeNotAllowed):
			writeError(w, http.StatusBadRequest, "Only PDF documents are accepted")
		case errors.Is(err, service.ErrUploadTooLarge):
			writeError(w, http.StatusBadRequest, "File exceeds the maximum allowed size")
		case errors.Is(err, service.ErrInvalidVendorToken):
			writeError(w, http.StatusNotFound, "Unknown vendor token")
		default:
			logger.Error("upload target request failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to prepare upload")
		}
		return
	}

	writeJSON(w, http.StatusOK, target)
}

// HandleStage receives the file bytes for a previously issued upload
// token.
func (h *UploadHandler) HandleStage(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	stagingPath, err := h.uploads.StoreUpload(r.Context(), token, r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadTokenInvalid):
			writeError(w, http.StatusForbidden, "Invalid or expired upload token")
		case errors.Is(err, service.ErrUploadTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "File exceeds the declared size")
		case errors.Is(err, service.ErrUploadTypeNotAllowed):
			writeError(w, http.StatusBadRequest, "Content type does not match the upload request")
		default:
			logger.Error("upload staging failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to store upload")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"stagingPath": stagingPath})
}
