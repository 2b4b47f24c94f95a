package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"vendorhub/internal/domain"
	"vendorhub/internal/logger"
	"vendorhub/internal/repository"
	"vendorhub/internal/security"
	"vendorhub/internal/storage"
	"vendorhub/internal/wizard"
)

var (
	ErrUploadTypeNotAllowed = errors.New("file type is not accepted for tax documents")
	ErrUploadTooLarge       = errors.New("file exceeds the upload size limit")
	ErrUploadTokenInvalid   = errors.New("upload target is invalid or has expired")
)

const uploadTokenTTL = 15 * time.Minute

type uploadService struct {
	inviteRepo repository.InvitationRepository
	store      storage.Store
	tokens     security.TokenManager
	baseURL    string
	settings   wizard.Settings
}

func NewUploadService(inviteRepo repository.InvitationRepository, store storage.Store, tokens security.TokenManager, baseURL string, settings wizard.Settings) UploadService {
	return &uploadService{
		inviteRepo: inviteRepo,
		store:      store,
		tokens:     tokens,
		baseURL:    strings.TrimRight(baseURL, "/"),
		settings:   settings,
	}
}

// RequestUploadTarget validates the request against the configured tax
// document policy and returns a pre-signed, single-purpose upload URL
// plus the staging key it will land under. The vendor token must
// resolve to a real invitation; the staging key is fresh per request so
// retries never overwrite a prior upload.
func (s *uploadService) RequestUploadTarget(ctx context.Context, fileName, contentType string, sizeBytes int64, vendorToken string) (*domain.UploadTarget, error) {
	if _, err := s.inviteRepo.GetByToken(ctx, vendorToken); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidVendorToken
		}
		return nil, fmt.Errorf("look up invitation: %w", err)
	}
	if !typeAllowed(contentType, s.settings.AllowedTaxTypes) {
		return nil, ErrUploadTypeNotAllowed
	}
	if s.settings.MaxUploadBytes > 0 && sizeBytes > s.settings.MaxUploadBytes {
		return nil, ErrUploadTooLarge
	}

	key := path.Join("taxdocs", uuid.New().String(), sanitizeFileName(fileName))
	token, err := s.tokens.GenerateUploadToken(key, contentType, sizeBytes, uploadTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign upload token: %w", err)
	}

	return &domain.UploadTarget{
		UploadURL:   s.baseURL + "/api/uploads/stage/" + token,
		StagingPath: key,
	}, nil
}

// StoreUpload receives the staged bytes for a previously issued target.
// The token pins the staging key, content type, and byte budget; a
// body that exceeds the budget is rejected and the partial file is not
// kept.
func (s *uploadService) StoreUpload(ctx context.Context, token, contentType string, body io.Reader) (string, error) {
	claims, err := s.tokens.ValidateUploadToken(token)
	if err != nil {
		return "", ErrUploadTokenInvalid
	}
	if contentType != claims.ContentType {
		return "", ErrUploadTypeNotAllowed
	}

	limited := &limitedReader{r: body, remaining: claims.SizeBytes}
	if err := s.store.SaveFile(claims.Key, limited); err != nil {
		if errors.Is(err, errUploadBudget) {
			s.store.DeleteFile(ctx, claims.Key)
			return "", ErrUploadTooLarge
		}
		return "", fmt.Errorf("stage upload: %w", err)
	}
	logger.Info("Tax document staged", "key", claims.Key, "content_type", contentType)
	return claims.Key, nil
}

func typeAllowed(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if t == contentType {
			return true
		}
	}
	return false
}

// sanitizeFileName keeps only the base name so a client-supplied path
// cannot steer the staging key.
func sanitizeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "document"
	}
	return base
}

var errUploadBudget = errors.New("upload exceeds declared size")

// limitedReader errors once more bytes arrive than the upload token
// declared.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, errUploadBudget
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, errUploadBudget
	}
	return n, err
}
