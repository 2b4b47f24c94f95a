package repository

import (
	"context"
	"errors"
	"time"

	"vendorhub/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type DraftRepository interface {
	Create(ctx context.Context, draft *domain.Draft) error
	GetByID(ctx context.Context, draftID string) (*domain.Draft, error)
	GetByVendorToken(ctx context.Context, token string) (*domain.Draft, error)
	// SavePage merges the fragment into the stored payload and bumps the
	// persisted step so a cache-less resume lands past the saved page.
	SavePage(ctx context.Context, draftID string, step domain.Step, frag domain.Fragment) error
	UpdateStep(ctx context.Context, draftID string, step domain.Step) error
	// MarkSubmitted assigns the vendor identity exactly once. It returns
	// false when the draft was already submitted.
	MarkSubmitted(ctx context.Context, draftID, vendorID string) (bool, error)
	// ListIdle returns unsubmitted drafts untouched since the cutoff,
	// with their invite contact details populated.
	ListIdle(ctx context.Context, cutoff time.Time) ([]domain.Draft, error)
	// ListSubmittedBefore returns ids of drafts submitted before the
	// cutoff, for snapshot cache cleanup.
	ListSubmittedBefore(ctx context.Context, cutoff time.Time) ([]string, error)
}

type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	GetByToken(ctx context.Context, token string) (*domain.Invitation, error)
	// DeleteExpired removes invitations past their expiry that never
	// produced a draft. It returns the number removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type ReferenceRepository interface {
	// ListOptions returns every catalog category with its ordered
	// option list.
	ListOptions(ctx context.Context) (map[string][]domain.Option, error)
}
