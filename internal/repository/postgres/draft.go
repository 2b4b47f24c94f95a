package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"vendorhub/internal/domain"
	"vendorhub/internal/repository"
)

type draftRepository struct {
	db *sql.DB
}

func NewDraftRepository(db *sql.DB) repository.DraftRepository {
	return &draftRepository{db: db}
}

const draftColumns = `d.draft_id, d.vendor_token, d.inviter_email, d.step, d.payload, d.vendor_id,
	       i.first_name, i.last_name, i.email, i.company_name, d.created_on, d.updated_on`

func (r *draftRepository) Create(ctx context.Context, draft *domain.Draft) error {
	payload, err := json.Marshal(draft.Payload)
	if err != nil {
		return fmt.Errorf("marshal draft payload: %w", err)
	}
	now := time.Now()
	query := `INSERT INTO drafts (draft_id, vendor_token, inviter_email, step, payload, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $6)`
	_, err = r.db.ExecContext(ctx, query, draft.DraftID, draft.VendorToken, draft.InviterEmail, int(draft.Step), payload, now)
	if err != nil {
		return err
	}
	draft.CreatedOn = now
	draft.UpdatedOn = now
	return nil
}

func (r *draftRepository) GetByID(ctx context.Context, draftID string) (*domain.Draft, error) {
	query := `SELECT ` + draftColumns + `
	          FROM drafts d JOIN invitations i ON i.token = d.vendor_token
	          WHERE d.draft_id = $1`
	return r.scanDraft(r.db.QueryRowContext(ctx, query, draftID))
}

func (r *draftRepository) GetByVendorToken(ctx context.Context, token string) (*domain.Draft, error) {
	query := `SELECT ` + draftColumns + `
	          FROM drafts d JOIN invitations i ON i.token = d.vendor_token
	          WHERE d.vendor_token = $1`
	return r.scanDraft(r.db.QueryRowContext(ctx, query, token))
}

func (r *draftRepository) scanDraft(row *sql.Row) (*domain.Draft, error) {
	draft := &domain.Draft{Invite: &domain.Invite{}}
	var payload []byte
	var step int
	err := row.Scan(
		&draft.DraftID, &draft.VendorToken, &draft.InviterEmail, &step, &payload, &draft.VendorID,
		&draft.Invite.FirstName, &draft.Invite.LastName, &draft.Invite.Email, &draft.Invite.CompanyName,
		&draft.CreatedOn, &draft.UpdatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	draft.Step = domain.Step(step)
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &draft.Payload); err != nil {
			return nil, fmt.Errorf("parse draft payload: %w", err)
		}
	}
	return draft, nil
}

// SavePage merges the fragment into the payload at its page key. The
// jsonb concatenation replaces only the saved page's top-level key, so
// concurrent saves of different pages cannot clobber each other. The
// persisted step only moves forward; revisiting an earlier page must
// not regress a cache-less resume.
func (r *draftRepository) SavePage(ctx context.Context, draftID string, step domain.Step, frag domain.Fragment) error {
	body, err := json.Marshal(frag)
	if err != nil {
		return fmt.Errorf("marshal page %d fragment: %w", step, err)
	}
	patch, err := json.Marshal(map[string]json.RawMessage{step.PageKey(): body})
	if err != nil {
		return fmt.Errorf("marshal page %d patch: %w", step, err)
	}
	query := `UPDATE drafts
	          SET payload = payload || $2::jsonb, step = GREATEST(step, $3), updated_on = $4
	          WHERE draft_id = $1 AND vendor_id IS NULL`
	res, err := r.db.ExecContext(ctx, query, draftID, patch, int(step)+1, time.Now())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *draftRepository) UpdateStep(ctx context.Context, draftID string, step domain.Step) error {
	query := `UPDATE drafts SET step = $2, updated_on = $3 WHERE draft_id = $1`
	_, err := r.db.ExecContext(ctx, query, draftID, int(step), time.Now())
	return err
}

func (r *draftRepository) MarkSubmitted(ctx context.Context, draftID, vendorID string) (bool, error) {
	query := `UPDATE drafts SET vendor_id = $2, submitted_on = $3, updated_on = $3
	          WHERE draft_id = $1 AND vendor_id IS NULL`
	res, err := r.db.ExecContext(ctx, query, draftID, vendorID, time.Now())
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *draftRepository) ListIdle(ctx context.Context, cutoff time.Time) ([]domain.Draft, error) {
	query := `SELECT ` + draftColumns + `
	          FROM drafts d JOIN invitations i ON i.token = d.vendor_token
	          WHERE d.vendor_id IS NULL AND d.updated_on < $1
	          ORDER BY d.updated_on`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []domain.Draft
	for rows.Next() {
		draft := domain.Draft{Invite: &domain.Invite{}}
		var payload []byte
		var step int
		err := rows.Scan(
			&draft.DraftID, &draft.VendorToken, &draft.InviterEmail, &step, &payload, &draft.VendorID,
			&draft.Invite.FirstName, &draft.Invite.LastName, &draft.Invite.Email, &draft.Invite.CompanyName,
			&draft.CreatedOn, &draft.UpdatedOn,
		)
		if err != nil {
			return nil, err
		}
		draft.Step = domain.Step(step)
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &draft.Payload); err != nil {
				return nil, fmt.Errorf("parse draft payload: %w", err)
			}
		}
		drafts = append(drafts, draft)
	}
	return drafts, rows.Err()
}

func (r *draftRepository) ListSubmittedBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	query := `SELECT draft_id FROM drafts WHERE vendor_id IS NOT NULL AND submitted_on < $1`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
