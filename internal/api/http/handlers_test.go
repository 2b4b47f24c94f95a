package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "vendorhub/internal/api/http"
	"vendorhub/internal/domain"
	"vendorhub/internal/security"
	"vendorhub/internal/service"
	"vendorhub/internal/wizard"
)

// MockDraftService
type MockDraftService struct {
	mock.Mock
}

func (m *MockDraftService) InitDraft(ctx context.Context, vendorToken, inviterEmail string) (*wizard.InitResult, error) {
	args := m.Called(ctx, vendorToken, inviterEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wizard.InitResult), args.Error(1)
}
func (m *MockDraftService) SavePage(ctx context.Context, draftID string, step domain.Step, frag domain.Fragment) error {
	args := m.Called(ctx, draftID, step, frag)
	return args.Error(0)
}
func (m *MockDraftService) SubmitDraft(ctx context.Context, draftID string) (bool, error) {
	args := m.Called(ctx, draftID)
	return args.Bool(0), args.Error(1)
}
func (m *MockDraftService) GetDraft(ctx context.Context, draftID string) (*domain.Draft, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Draft), args.Error(1)
}

// MockReferenceService
type MockReferenceService struct {
	mock.Mock
}

func (m *MockReferenceService) FetchReferenceCatalog(ctx context.Context) (*domain.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Catalog), args.Error(1)
}

// MockUploadService
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) RequestUploadTarget(ctx context.Context, fileName, contentType string, sizeBytes int64, vendorToken string) (*domain.UploadTarget, error) {
	args := m.Called(ctx, fileName, contentType, sizeBytes, vendorToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadTarget), args.Error(1)
}
func (m *MockUploadService) StoreUpload(ctx context.Context, token, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, token, contentType, body)
	return args.String(0), args.Error(1)
}

// MockAdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) CreateInvitation(ctx context.Context, req service.CreateInvitationRequest) (*domain.Invitation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}

type testDeps struct {
	drafts   *MockDraftService
	catalogs *MockReferenceService
	uploads  *MockUploadService
	admin    *MockAdminService
}

func newTestRouter(t *testing.T) (*testDeps, http.Handler) {
	t.Helper()
	deps := &testDeps{
		drafts:   new(MockDraftService),
		catalogs: new(MockReferenceService),
		uploads:  new(MockUploadService),
		admin:    new(MockAdminService),
	}
	hash, err := security.HashAdminKey("test-admin-key")
	if err != nil {
		t.Fatalf("failed to hash admin key: %v", err)
	}
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Drafts:       deps.drafts,
		Catalogs:     deps.catalogs,
		Uploads:      deps.uploads,
		Admin:        deps.admin,
		AdminKeyHash: hash,
	})
	return deps, router
}

func doJSON(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestDraftHandler_Init(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		deps, router := newTestRouter(t)
		deps.drafts.On("InitDraft", mock.Anything, "tok-1", "buyer@example.com").Return(&wizard.InitResult{
			DraftID: "d-1",
			Step:    domain.StepProfile,
		}, nil)

		rec := doJSON(router, "POST", "/api/drafts/init", map[string]string{
			"vendorToken":  "tok-1",
			"inviterEmail": "buyer@example.com",
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		var result wizard.InitResult
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "d-1", result.DraftID)
	})

	t.Run("MissingToken", func(t *testing.T) {
		_, router := newTestRouter(t)
		rec := doJSON(router, "POST", "/api/drafts/init", map[string]string{"inviterEmail": "x@example.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		deps, router := newTestRouter(t)
		deps.drafts.On("InitDraft", mock.Anything, "bogus", "").Return(nil, service.ErrInvalidVendorToken)

		rec := doJSON(router, "POST", "/api/drafts/init", map[string]string{"vendorToken": "bogus"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ExpiredInvitation", func(t *testing.T) {
		deps, router := newTestRouter(t)
		deps.drafts.On("InitDraft", mock.Anything, "tok-old", "").Return(nil, service.ErrInviteExpired)

		rec := doJSON(router, "POST", "/api/drafts/init", map[string]string{"vendorToken": "tok-old"})
		assert.Equal(t, http.StatusGone, rec.Code)
	})
}

func TestDraftHandler_SavePage(t *testing.T) {
	page := map[string]any{"companyName": "Acme Media", "website": "https://acme.example.com", "timeZone": "UTC"}

	t.Run("Success", func(t *testing.T) {
		deps, router := newTestRouter(t)
		deps.drafts.On("SavePage", mock.Anything, "d-1", domain.StepProfile, mock.MatchedBy(func(frag domain.Fragment) bool {
			p, ok := frag.(*domain.ProfilePage)
			return ok && p.CompanyName == "Acme Media"
		})).Return(nil)

		rec := doJSON(router, "PUT", "/api/drafts/d-1/page/1", page)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("ValidationFailureCarriesReason", func(t *testing.T) {
		deps, router := newTestRouter(t)
		deps.drafts.On("SavePage", mock.Anything, "d-1", domain.StepProfile, mock.Anything).
			Return(&wizard.ValidationError{Step: domain.StepProfile, Reason: "Please select a time zone."})

		rec := doJSON(router, "PUT", "/api/drafts/d-1/page/1", page)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please select a time zone.")
	})

	t.Run("NonDataPageRejected", func(t *testing.T) {
		_, router := newTestRouter(t)
		assert.Equal(t, http.StatusBadRequest, doJSON(router, "PUT", "/api/drafts/d-1/page/8", page).Code)
		assert.Equal(t, http.StatusBadRequest, doJSON(router, "PUT", "/api/drafts/d-1/page/0", page).Code)
	})

	t.Run("SubmittedDraftConflicts", func(t *testing.T) {
		deps, router := newTestRouter(t)
		deps.drafts.On("SavePage", mock.Anything, "d-1", domain.StepProfile, mock.Anything).
			Return(service.ErrDraftSubmitted)

		rec := doJSON(router, "PUT", "/api/drafts/d-1/page/1", page)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestDraftHandler_Submit(t *testing.T) {
	t.Run("FirstSubmission", func(t *testing.T) {
		deps, router := newTestRouter(t)
		deps.drafts.On("SubmitDraft", mock.Anything, "d-1").Return(false, nil)

		rec := doJSON(router, "POST", "/api/drafts/d-1/submit", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"alreadySubmitted":false`)
	})

	t.Run("RepeatSubmissionStillOK", func(t *testing.T) {
		deps, router := newTestRouter(t)
		deps.drafts.On("SubmitDraft", mock.Anything, "d-1").Return(true, nil)

		rec := doJSON(router, "POST", "/api/drafts/d-1/submit", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"alreadySubmitted":true`)
	})

	t.Run("MissingDraft", func(t *testing.T) {
		deps, router := newTestRouter(t)
		deps.drafts.On("SubmitDraft", mock.Anything, "d-gone").Return(false, service.ErrDraftNotFound)

		rec := doJSON(router, "POST", "/api/drafts/d-gone/submit", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestReferenceHandler(t *testing.T) {
	deps, router := newTestRouter(t)
	deps.catalogs.On("FetchReferenceCatalog", mock.Anything).Return(domain.NewCatalog(map[string][]domain.Option{
		domain.CategoryRegions: {{ID: 1, Title: "United States"}},
	}), nil)

	rec := doJSON(router, "GET", "/api/reference", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var catalog domain.Catalog
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	title, ok := catalog.Title(domain.CategoryRegions, 1)
	assert.True(t, ok)
	assert.Equal(t, "United States", title)
}

func TestUploadHandler_Stage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		deps, router := newTestRouter(t)
		deps.uploads.On("StoreUpload", mock.Anything, "tok-abc", "application/pdf", mock.Anything).
			Return("taxdocs/x/w9.pdf", nil)

		req := httptest.NewRequest("PUT", "/api/uploads/stage/tok-abc", strings.NewReader("pdf bytes"))
		req.Header.Set("Content-Type", "application/pdf")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "taxdocs/x/w9.pdf")
	})

	t.Run("InvalidToken", func(t *testing.T) {
		deps, router := newTestRouter(t)
		deps.uploads.On("StoreUpload", mock.Anything, "bad", "application/pdf", mock.Anything).
			Return("", service.ErrUploadTokenInvalid)

		req := httptest.NewRequest("PUT", "/api/uploads/stage/bad", strings.NewReader("pdf bytes"))
		req.Header.Set("Content-Type", "application/pdf")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAdminHandler_CreateInvitation(t *testing.T) {
	body := map[string]string{
		"firstName":   "Ada",
		"email":       "ada@vendor.example",
		"companyName": "Acme Media",
	}

	t.Run("RequiresAdminKey", func(t *testing.T) {
		_, router := newTestRouter(t)
		rec := doJSON(router, "POST", "/api/admin/invitations", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		deps, router := newTestRouter(t)
		deps.admin.On("CreateInvitation", mock.Anything, mock.MatchedBy(func(req service.CreateInvitationRequest) bool {
			return req.CompanyName == "Acme Media"
		})).Return(&domain.Invitation{Token: "tok-new", CompanyName: "Acme Media"}, nil)

		raw, _ := json.Marshal(body)
		req := httptest.NewRequest("POST", "/api/admin/invitations", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Admin-Key", "test-admin-key")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "tok-new")
	})
}
