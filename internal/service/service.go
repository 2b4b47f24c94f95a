package service

import (
	"context"
	"io"

	"vendorhub/internal/domain"
	"vendorhub/internal/wizard"
)

// DraftService is the server half of the wizard's draft store. It
// satisfies wizard.DraftStore, so a Session can run in-process against
// it directly.
type DraftService interface {
	InitDraft(ctx context.Context, vendorToken, inviterEmail string) (*wizard.InitResult, error)
	SavePage(ctx context.Context, draftID string, step domain.Step, frag domain.Fragment) error
	SubmitDraft(ctx context.Context, draftID string) (alreadySubmitted bool, err error)
	GetDraft(ctx context.Context, draftID string) (*domain.Draft, error)
}

// ReferenceService serves the immutable reference catalog. It satisfies
// wizard.CatalogLoader.
type ReferenceService interface {
	FetchReferenceCatalog(ctx context.Context) (*domain.Catalog, error)
}

// UploadService issues pre-signed tax document upload targets and
// receives the staged bytes.
type UploadService interface {
	RequestUploadTarget(ctx context.Context, fileName, contentType string, sizeBytes int64, vendorToken string) (*domain.UploadTarget, error)
	StoreUpload(ctx context.Context, token, contentType string, body io.Reader) (string, error)
}

// AdminService covers the inviter-side flow: issuing the invitations
// whose tokens vendors onboard with.
type AdminService interface {
	CreateInvitation(ctx context.Context, req CreateInvitationRequest) (*domain.Invitation, error)
}

type EmailService interface {
	SendInvitation(ctx context.Context, inv *domain.Invitation, onboardingURL string) error
	SendSubmissionConfirmation(ctx context.Context, email, name, companyName string) error
	SendInviterNotice(ctx context.Context, inviterEmail, companyName string) error
	SendDraftReminder(ctx context.Context, email, name string, step domain.Step) error
}
