package postgres

import (
	"context"
	"database/sql"

	"vendorhub/internal/domain"
	"vendorhub/internal/repository"
)

type referenceRepository struct {
	db *sql.DB
}

func NewReferenceRepository(db *sql.DB) repository.ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) ListOptions(ctx context.Context) (map[string][]domain.Option, error) {
	query := `SELECT category, option_id, title FROM reference_options ORDER BY category, sort_order`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make(map[string][]domain.Option)
	for rows.Next() {
		var category string
		var opt domain.Option
		if err := rows.Scan(&category, &opt.ID, &opt.Title); err != nil {
			return nil, err
		}
		categories[category] = append(categories[category], opt)
	}
	return categories, rows.Err()
}
