package postgres

import (
	"context"
	"database/sql"
	"time"

	"vendorhub/internal/domain"
	"vendorhub/internal/repository"
)

type invitationRepository struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `INSERT INTO invitations (token, first_name, last_name, email, company_name, inviter_email, created_on, expires_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		inv.Token, inv.FirstName, inv.LastName, inv.Email, inv.CompanyName, inv.InviterEmail, now, inv.ExpiresOn)
	if err != nil {
		return err
	}
	inv.CreatedOn = now
	return nil
}

func (r *invitationRepository) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	query := `SELECT token, first_name, last_name, email, company_name, inviter_email, created_on, expires_on
	          FROM invitations WHERE token = $1`
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&inv.Token, &inv.FirstName, &inv.LastName, &inv.Email, &inv.CompanyName, &inv.InviterEmail,
		&inv.CreatedOn, &inv.ExpiresOn)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM invitations
	          WHERE expires_on < $1
	          AND NOT EXISTS (SELECT 1 FROM drafts d WHERE d.vendor_token = invitations.token)`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
