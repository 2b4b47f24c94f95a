package service

import (
	"context"
	"fmt"
	"sync"

	"vendorhub/internal/domain"
	"vendorhub/internal/repository"
)

type referenceService struct {
	repo repository.ReferenceRepository

	mu      sync.Mutex
	catalog *domain.Catalog
}

func NewReferenceService(repo repository.ReferenceRepository) ReferenceService {
	return &referenceService{repo: repo}
}

// FetchReferenceCatalog loads the catalog on first use and serves the
// same immutable instance afterwards. Option lists change only between
// deployments, never within a session.
func (s *referenceService) FetchReferenceCatalog(ctx context.Context) (*domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog != nil {
		return s.catalog, nil
	}
	categories, err := s.repo.ListOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reference options: %w", err)
	}
	s.catalog = domain.NewCatalog(categories)
	return s.catalog, nil
}
