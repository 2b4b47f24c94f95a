package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"vendorhub/internal/domain"
	"vendorhub/internal/logger"
)

var (
	ErrNotInitialized   = errors.New("wizard session is not initialized")
	ErrBlocked          = errors.New("no vendor token supplied")
	ErrAlreadySubmitted = errors.New("draft has already been submitted")
	ErrInvalidStep      = errors.New("invalid wizard step")
	ErrWrongStep        = errors.New("fragment does not belong to the current step")
	ErrNotAtReview      = errors.New("draft can only be submitted from the review step")
)

// InitResult is what the draft store returns when a session starts.
// AlreadySubmitted is set when the draft holds a finalized vendor
// identity, in which case the session skips straight to the terminal
// view.
type InitResult struct {
	DraftID          string
	Step             domain.Step
	Payload          domain.Payload
	Invite           *domain.Invite
	AlreadySubmitted bool
}

// DraftStore is the remote persistence collaborator. InitDraft is
// idempotent per vendor token: repeated calls with the same token
// return the same draft.
type DraftStore interface {
	InitDraft(ctx context.Context, vendorToken, inviterEmail string) (*InitResult, error)
	SavePage(ctx context.Context, draftID string, step domain.Step, frag domain.Fragment) error
	SubmitDraft(ctx context.Context, draftID string) (alreadySubmitted bool, err error)
}

// CatalogLoader fetches the reference catalog at session start.
type CatalogLoader interface {
	FetchReferenceCatalog(ctx context.Context) (*domain.Catalog, error)
}

// Snapshot is the serialized wizard state kept in the local cache so an
// interrupted session can resume where it left off.
type Snapshot struct {
	DraftID   string         `json:"draftId"`
	Step      domain.Step    `json:"step"`
	Payload   domain.Payload `json:"payload"`
	Invite    *domain.Invite `json:"invite,omitempty"`
	Submitted bool           `json:"submitted"`
}

// SnapshotCache is the local persistence collaborator, keyed by draft
// id. Get returns (nil, nil) when no snapshot exists.
type SnapshotCache interface {
	Get(ctx context.Context, draftID string) (*Snapshot, error)
	Put(ctx context.Context, draftID string, snap *Snapshot) error
	Delete(ctx context.Context, draftID string) error
}

// State is the lifecycle phase of a session.
type State int

const (
	StateUninitialized State = iota
	StateBlocked
	StateActive
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateBlocked:
		return "blocked"
	case StateActive:
		return "active"
	case StateSubmitted:
		return "submitted"
	default:
		return "uninitialized"
	}
}

// Session owns the authoritative in-memory draft state for one vendor
// onboarding flow: current step, per-page payload fragments, and the
// submission flag. It is the sole writer of the canonical payload;
// callers hand it fragment copies and read state back through
// accessors. A mutex serializes transitions, so at most one remote
// operation is in flight per session.
type Session struct {
	store    DraftStore
	catalogs CatalogLoader
	cache    SnapshotCache
	settings Settings

	mu           sync.Mutex
	state        State
	draftID      string
	vendorToken  string
	inviterEmail string
	step         domain.Step
	payload      domain.Payload
	invite       *domain.Invite
	submitted    bool
	catalog      *domain.Catalog
}

// NewSession creates an uninitialized session. The hosting application
// constructs one per user session and calls Bootstrap before anything
// else.
func NewSession(store DraftStore, catalogs CatalogLoader, cache SnapshotCache, settings Settings) *Session {
	return &Session{
		store:    store,
		catalogs: catalogs,
		cache:    cache,
		settings: settings,
		state:    StateUninitialized,
	}
}

// Bootstrap starts the session: it loads the reference catalog,
// initializes (or resumes) the remote draft for the vendor token, and
// reconciles the server state against the locally cached snapshot.
//
// A missing vendor token is a hard gate, not an error: the session
// enters Blocked and no draft resources are created. Any catalog or
// draft-init failure is fatal for the session; no partial state is
// adopted. Cached step and payload take precedence over the freshly
// fetched draft, except that the server-sourced invite is preserved
// whenever the cached invite is absent or empty.
func (s *Session) Bootstrap(ctx context.Context, vendorToken, inviterEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if vendorToken == "" {
		s.state = StateBlocked
		logger.Info("Wizard session blocked: no vendor token")
		return nil
	}

	catalog, err := s.catalogs.FetchReferenceCatalog(ctx)
	if err != nil {
		return fmt.Errorf("load reference catalog: %w", err)
	}

	init, err := s.store.InitDraft(ctx, vendorToken, inviterEmail)
	if err != nil {
		return fmt.Errorf("initialize draft: %w", err)
	}

	// Adopt server state first, then merge the cached snapshot over it.
	step := init.Step
	payload := init.Payload
	invite := init.Invite
	submitted := false

	cached, err := s.cache.Get(ctx, init.DraftID)
	if err != nil {
		// A broken local cache must not keep the wizard from starting.
		logger.Warn("Snapshot cache read failed", "draft_id", init.DraftID, "error", err)
		cached = nil
	}
	if cached != nil {
		step = cached.Step
		payload = cached.Payload
		submitted = cached.Submitted
		if !cached.Invite.Empty() {
			invite = cached.Invite
		}
	}

	s.vendorToken = vendorToken
	s.inviterEmail = inviterEmail
	s.draftID = init.DraftID
	s.catalog = catalog
	s.payload = payload
	s.invite = invite
	s.submitted = submitted

	// The server-side vendor identity wins over whatever the cache said.
	if init.AlreadySubmitted || submitted {
		s.submitted = true
		s.state = StateSubmitted
		s.step = domain.StepDone
		s.writeSnapshot(ctx)
		logger.Info("Wizard session resumed as submitted", "draft_id", s.draftID)
		return nil
	}

	if step < domain.StepProfile || step > domain.StepReview {
		step = domain.StepProfile
	}
	s.step = step
	s.state = StateActive
	s.writeSnapshot(ctx)
	logger.Info("Wizard session bootstrapped", "draft_id", s.draftID, "step", int(s.step))
	return nil
}

// GoToStep moves to a step without re-validating it. Backward and
// lateral navigation is always allowed so earlier answers can be
// revisited. Once the draft is submitted only the terminal view remains
// reachable. The snapshot is written through to the cache before the
// call returns.
func (s *Session) GoToStep(ctx context.Context, step domain.Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStarted(); err != nil {
		return err
	}
	if !step.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}
	if s.state == StateSubmitted && step != domain.StepDone {
		return ErrAlreadySubmitted
	}

	s.step = step
	s.writeSnapshot(ctx)
	return nil
}

// Advance validates the fragment for its page, persists it remotely,
// and moves to the fragment's step plus one. Validation runs before any
// persistence; on failure the session stays on the current step, the
// returned error carries a page-specific reason, and no network call is
// made.
//
// The save policy is strict: the remote page save must succeed before
// the payload, cache, or step mutate. A failed save therefore leaves
// the draft aggregate untouched and the caller may retry.
func (s *Session) Advance(ctx context.Context, frag domain.Fragment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStarted(); err != nil {
		return err
	}
	if s.state == StateSubmitted {
		return ErrAlreadySubmitted
	}

	step := frag.Step()
	if step != s.step {
		return fmt.Errorf("%w: got page %d while on step %d", ErrWrongStep, step, s.step)
	}

	// The session owns its copy; the renderer's object is never aliased.
	frag = frag.Clone()
	NormalizeFragment(frag)
	if err := ValidateFragment(frag, s.settings); err != nil {
		return err
	}

	if err := s.store.SavePage(ctx, s.draftID, step, frag); err != nil {
		return fmt.Errorf("save page %d: %w", step, err)
	}

	s.payload.Set(frag)
	s.step = step + 1
	s.writeSnapshot(ctx)
	logger.Debug("Wizard advanced", "draft_id", s.draftID, "step", int(s.step))
	return nil
}

// Submit finalizes the draft from the review step. Submission is
// idempotent: once the session is submitted no second remote call is
// made, and a server response of alreadySubmitted counts as success,
// never as an error. On failure the session stays at the review step
// with submitted still false, and the caller may retry.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStarted(); err != nil {
		return err
	}
	if s.submitted {
		return nil
	}
	if s.step != domain.StepReview {
		return ErrNotAtReview
	}

	if _, err := s.store.SubmitDraft(ctx, s.draftID); err != nil {
		return fmt.Errorf("submit draft: %w", err)
	}

	s.submitted = true
	s.state = StateSubmitted
	s.step = domain.StepDone
	s.writeSnapshot(ctx)
	logger.Info("Draft submitted", "draft_id", s.draftID)
	return nil
}

// Review projects pages 1-7 into read-only display rows using the
// reference catalog. It is derived on demand and never mutates state.
func (s *Session) Review() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildReview(&s.payload, s.catalog)
}

// State returns the session lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Step returns the current wizard step.
func (s *Session) Step() domain.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// DraftID returns the draft identifier adopted at bootstrap.
func (s *Session) DraftID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftID
}

// Submitted reports whether the draft has been finalized this session.
func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// Invite returns a copy of the reconciled invite, or nil.
func (s *Session) Invite() *domain.Invite {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.invite == nil {
		return nil
	}
	inv := *s.invite
	return &inv
}

// Payload returns a deep copy of the collected payload.
func (s *Session) Payload() domain.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payload.Clone()
}

// Catalog returns the session-scoped reference catalog.
func (s *Session) Catalog() *domain.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

func (s *Session) requireStarted() error {
	switch s.state {
	case StateUninitialized:
		return ErrNotInitialized
	case StateBlocked:
		return ErrBlocked
	}
	return nil
}

// writeSnapshot persists the full state to the cache. Cache failures
// are logged and tolerated; the remote draft remains the source of
// truth for resume.
func (s *Session) writeSnapshot(ctx context.Context) {
	if s.draftID == "" {
		return
	}
	snap := &Snapshot{
		DraftID:   s.draftID,
		Step:      s.step,
		Payload:   s.payload,
		Invite:    s.invite,
		Submitted: s.submitted,
	}
	if err := s.cache.Put(ctx, s.draftID, snap); err != nil {
		logger.Warn("Snapshot cache write failed", "draft_id", s.draftID, "error", err)
	}
}
