package flat

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrFlatNotFound  = errors.New("flat not found")
	ErrNotFlatMember = errors.New("not a member of this flat")
)

// Service handles flat business logic
type Service struct {
	repo *Repository
}

// NewService creates a new flat service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new flat owned by the caller
func (s *Service) Create(ctx context.Context, ownerID string, req *CreateFlatRequest) (*Flat, error) {
	return s.repo.Create(ctx, ownerID, req)
}

// GetByID retrieves a flat by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*Flat, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFlatNotFound
	}
	return f, nil
}

// Members returns the flat's cost-sharing members with their join dates
func (s *Service) Members(ctx context.Context, flatID string) ([]*Member, error) {
	f, err := s.GetByID(ctx, flatID)
	if err != nil {
		return nil, err
	}
	return s.repo.Members(ctx, f)
}

// CanAccess reports whether the user may read or mutate the flat's data:
// the flat's owner, or anyone holding an accepted room assignment in it.
// Returns ErrFlatNotFound if the flat itself is missing.
func (s *Service) CanAccess(ctx context.Context, flatID, userID string) (bool, error) {
	f, err := s.repo.GetByID(ctx, flatID)
	if err != nil {
		return false, err
	}
	if f == nil {
		return false, ErrFlatNotFound
	}
	if f.OwnerID == userID {
		return true, nil
	}
	return s.repo.HasAcceptedAssignment(ctx, flatID, userID)
}
