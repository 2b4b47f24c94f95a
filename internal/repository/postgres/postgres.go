package postgres

import (
	"database/sql"

	"vendorhub/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.DraftRepository
	repository.InvitationRepository
	repository.ReferenceRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		DraftRepository:      NewDraftRepository(db),
		InvitationRepository: NewInvitationRepository(db),
		ReferenceRepository:  NewReferenceRepository(db),
	}
}
