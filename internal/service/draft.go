package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vendorhub/internal/domain"
	"vendorhub/internal/logger"
	"vendorhub/internal/repository"
	"vendorhub/internal/wizard"
)

var (
	ErrInvalidVendorToken = errors.New("vendor token is not recognized")
	ErrInviteExpired      = errors.New("invitation has expired")
	ErrDraftNotFound      = errors.New("draft not found")
	ErrDraftSubmitted     = errors.New("draft has already been submitted")
)

type draftService struct {
	draftRepo  repository.DraftRepository
	inviteRepo repository.InvitationRepository
	emailSvc   EmailService
	snapshots  wizard.SnapshotCache
	settings   wizard.Settings
}

// NewDraftService builds the server-side draft store. snapshots may be
// nil; when set, every successful mutation writes through to it so
// sessions sharing the cache resume without a server round trip.
func NewDraftService(draftRepo repository.DraftRepository, inviteRepo repository.InvitationRepository, emailSvc EmailService, snapshots wizard.SnapshotCache, settings wizard.Settings) DraftService {
	return &draftService{
		draftRepo:  draftRepo,
		inviteRepo: inviteRepo,
		emailSvc:   emailSvc,
		snapshots:  snapshots,
		settings:   settings,
	}
}

// InitDraft resolves the vendor token to its draft, creating one on
// first contact. The operation is idempotent per token: every later
// call returns the same draft. Invitation expiry gates creation only;
// a draft that already exists keeps working so a vendor mid-flow is
// never locked out.
func (s *draftService) InitDraft(ctx context.Context, vendorToken, inviterEmail string) (*wizard.InitResult, error) {
	draft, err := s.draftRepo.GetByVendorToken(ctx, vendorToken)
	if err == nil {
		return initResult(draft), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("look up draft: %w", err)
	}

	inv, err := s.inviteRepo.GetByToken(ctx, vendorToken)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidVendorToken
	}
	if err != nil {
		return nil, fmt.Errorf("look up invitation: %w", err)
	}
	if inv.Expired(time.Now()) {
		return nil, ErrInviteExpired
	}

	draft = &domain.Draft{
		DraftID:      uuid.New().String(),
		VendorToken:  vendorToken,
		InviterEmail: inviterEmail,
		Step:         domain.StepProfile,
		Invite:       inv.ToInvite(),
	}
	if err := s.draftRepo.Create(ctx, draft); err != nil {
		// Two sessions raced the first init for this token; the winner's
		// draft is the draft.
		existing, lookupErr := s.draftRepo.GetByVendorToken(ctx, vendorToken)
		if lookupErr != nil {
			return nil, fmt.Errorf("create draft: %w", err)
		}
		return initResult(existing), nil
	}
	logger.Info("Draft initialized", "draft_id", draft.DraftID, "company", inv.CompanyName)
	s.writeSnapshot(ctx, draft)
	return initResult(draft), nil
}

func (s *draftService) writeSnapshot(ctx context.Context, draft *domain.Draft) {
	if s.snapshots == nil {
		return
	}
	snap := &wizard.Snapshot{
		DraftID:   draft.DraftID,
		Step:      draft.Step,
		Payload:   draft.Payload,
		Invite:    draft.Invite,
		Submitted: draft.Submitted(),
	}
	if err := s.snapshots.Put(ctx, draft.DraftID, snap); err != nil {
		logger.Warn("Snapshot write failed", "draft_id", draft.DraftID, "error", err)
	}
}

func initResult(draft *domain.Draft) *wizard.InitResult {
	return &wizard.InitResult{
		DraftID:          draft.DraftID,
		Step:             draft.Step,
		Payload:          draft.Payload,
		Invite:           draft.Invite,
		AlreadySubmitted: draft.Submitted(),
	}
}

// SavePage persists a page fragment. The page gate runs here too:
// clients validate before calling, but the store is the authority and
// rejects fragments that would not pass the wizard.
func (s *draftService) SavePage(ctx context.Context, draftID string, step domain.Step, frag domain.Fragment) error {
	if step != frag.Step() {
		return fmt.Errorf("fragment is for page %d, not page %d", frag.Step(), step)
	}
	wizard.NormalizeFragment(frag)
	if err := wizard.ValidateFragment(frag, s.settings); err != nil {
		return err
	}
	err := s.draftRepo.SavePage(ctx, draftID, step, frag)
	if errors.Is(err, repository.ErrNotFound) {
		// Either no such draft or the draft is already finalized.
		draft, lookupErr := s.draftRepo.GetByID(ctx, draftID)
		if lookupErr == nil && draft.Submitted() {
			return ErrDraftSubmitted
		}
		return ErrDraftNotFound
	}
	if err != nil {
		return err
	}
	if s.snapshots != nil {
		if draft, lookupErr := s.draftRepo.GetByID(ctx, draftID); lookupErr == nil {
			s.writeSnapshot(ctx, draft)
		}
	}
	return nil
}

// SubmitDraft finalizes the draft, assigning its vendor identity
// exactly once. A repeat submission reports alreadySubmitted as
// success rather than error, so no duplicate vendor record can be
// created. Notification emails are sent best-effort; the submission
// stands even if they fail.
func (s *draftService) SubmitDraft(ctx context.Context, draftID string) (bool, error) {
	draft, err := s.draftRepo.GetByID(ctx, draftID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, ErrDraftNotFound
	}
	if err != nil {
		return false, fmt.Errorf("look up draft: %w", err)
	}
	if draft.Submitted() {
		return true, nil
	}

	vendorID := uuid.New().String()
	won, err := s.draftRepo.MarkSubmitted(ctx, draftID, vendorID)
	if err != nil {
		return false, fmt.Errorf("finalize draft: %w", err)
	}
	if !won {
		return true, nil
	}

	logger.Info("Draft submitted", "draft_id", draftID, "vendor_id", vendorID)
	draft.VendorID = &vendorID
	s.writeSnapshot(ctx, draft)
	s.sendSubmissionEmails(ctx, draft)
	return false, nil
}

func (s *draftService) sendSubmissionEmails(ctx context.Context, draft *domain.Draft) {
	if s.emailSvc == nil {
		return
	}
	companyName := ""
	if draft.Payload.Profile != nil {
		companyName = draft.Payload.Profile.CompanyName
	}
	if companyName == "" && draft.Invite != nil {
		companyName = draft.Invite.CompanyName
	}
	if draft.Invite != nil && draft.Invite.Email != "" {
		name := draft.Invite.FirstName
		if err := s.emailSvc.SendSubmissionConfirmation(ctx, draft.Invite.Email, name, companyName); err != nil {
			logger.Error("Submission confirmation email failed", "draft_id", draft.DraftID, "error", err)
		}
	}
	if draft.InviterEmail != "" {
		if err := s.emailSvc.SendInviterNotice(ctx, draft.InviterEmail, companyName); err != nil {
			logger.Error("Inviter notice email failed", "draft_id", draft.DraftID, "error", err)
		}
	}
}

func (s *draftService) GetDraft(ctx context.Context, draftID string) (*domain.Draft, error) {
	draft, err := s.draftRepo.GetByID(ctx, draftID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrDraftNotFound
	}
	return draft, err
}
