package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"vendorhub/internal/service"
)

// RouterDeps bundles the services the API needs.
type RouterDeps struct {
	Drafts       service.DraftService
	Catalogs     service.ReferenceService
	Uploads      service.UploadService
	Admin        service.AdminService
	AdminKeyHash string
}

// NewRouter wires every onboarding endpoint onto a gorilla router.
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()

	reference := NewReferenceHandler(deps.Catalogs)
	drafts := NewDraftHandler(deps.Drafts, deps.Catalogs)
	uploads := NewUploadHandler(deps.Uploads)
	admin := NewAdminHandler(deps.Admin, deps.AdminKeyHash)

	router.HandleFunc("/health", handleHealth).Methods("GET")

	router.HandleFunc("/api/reference", reference.HandleGet).Methods("GET")

	router.HandleFunc("/api/drafts/init", drafts.HandleInit).Methods("POST")
	router.HandleFunc("/api/drafts/{draftId}/page/{pageNumber}", drafts.HandleSavePage).Methods("PUT")
	router.HandleFunc("/api/drafts/{draftId}/submit", drafts.HandleSubmit).Methods("POST")
	router.HandleFunc("/api/drafts/{draftId}/review", drafts.HandleReview).Methods("GET")

	router.HandleFunc("/api/uploads/taxdoc/sas", uploads.HandleRequestTarget).Methods("POST")
	router.HandleFunc("/api/uploads/stage/{token}", uploads.HandleStage).Methods("PUT")

	router.HandleFunc("/api/admin/invitations", admin.HandleCreateInvitation).Methods("POST")

	return router
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
