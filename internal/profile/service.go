package profile

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrProfileNotFound = errors.New("profile not found")
)

// Service handles profile business logic
type Service struct {
	repo *Repository
}

// NewService creates a new profile service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetByID retrieves a profile by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// GetByIDs retrieves profiles for a set of member IDs
func (s *Service) GetByIDs(ctx context.Context, ids []string) (map[string]*Profile, error) {
	return s.repo.GetByIDs(ctx, ids)
}
