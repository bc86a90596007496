package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/alvarosanz/flatshare/internal/flat"
	"github.com/alvarosanz/flatshare/pkg/money"
	"github.com/alvarosanz/flatshare/pkg/period"
)

// Common errors
var (
	ErrInvalidPayload     = errors.New("invalid expense payload")
	ErrInvalidDate        = errors.New("invalid expense date")
	ErrInvalidMonth       = errors.New("invalid month format")
	ErrInvalidParticipant = errors.New("invalid participant selection")
)

// FlatDirectory is the membership collaborator: who belongs to a flat and
// since when, and whether a caller may touch its data.
type FlatDirectory interface {
	CanAccess(ctx context.Context, flatID, userID string) (bool, error)
	Members(ctx context.Context, flatID string) ([]*flat.Member, error)
}

// Notifier records an in-app notification for a member. Implementations must
// be safe to call best-effort; delivery failures do not fail the request.
type Notifier interface {
	Notify(ctx context.Context, recipientID, message, entityType, entityID string) error
}

// Service handles expense business logic
type Service struct {
	repo     *Repository
	flats    FlatDirectory
	notifier Notifier
}

// NewService creates a new expense service
func NewService(repo *Repository, flats FlatDirectory, notifier Notifier) *Service {
	return &Service{repo: repo, flats: flats, notifier: notifier}
}

// Create records a new expense paid by the caller. Explicit participants must
// be flat members whose join date is on or before the expense date.
func (s *Service) Create(ctx context.Context, userID string, req *CreateExpenseRequest) (*Expense, error) {
	req.Concept = strings.TrimSpace(req.Concept)
	if req.FlatID == "" || req.Concept == "" || req.Amount <= 0 {
		return nil, ErrInvalidPayload
	}

	expenseDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.ExpenseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpenseDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		expenseDate = parsed
	}

	allowed, err := s.flats.CanAccess(ctx, req.FlatID, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, flat.ErrNotFlatMember
	}

	members, err := s.flats.Members(ctx, req.FlatID)
	if err != nil {
		return nil, err
	}

	participants := dedupe(req.Participants)
	if len(participants) > 0 {
		byID := make(map[string]*flat.Member, len(members))
		for _, m := range members {
			byID[m.ID] = m
		}
		for _, id := range participants {
			m, ok := byID[id]
			if !ok || !m.EligibleOn(expenseDate) {
				return nil, ErrInvalidParticipant
			}
		}
	}

	created, err := s.repo.Create(ctx, &Expense{
		FlatID:       req.FlatID,
		Concept:      req.Concept,
		AmountCents:  money.ToCents(req.Amount),
		ExpenseDate:  expenseDate,
		Note:         trimmedOrNil(req.Note),
		CreatedBy:    userID,
		Participants: participants,
	})
	if err != nil {
		return nil, err
	}

	s.notifyMembers(ctx, members, created)

	return created, nil
}

// ListByFlat retrieves a flat's expenses, optionally month-filtered and with
// the member roster attached.
func (s *Service) ListByFlat(ctx context.Context, userID, flatID, month string, includeMembers bool) ([]*Expense, []*flat.Member, error) {
	if flatID == "" {
		return nil, nil, ErrInvalidPayload
	}

	var start, end *time.Time
	if month != "" {
		if !period.IsValid(month) {
			return nil, nil, ErrInvalidMonth
		}
		from, to, err := period.Range(month)
		if err != nil {
			return nil, nil, ErrInvalidMonth
		}
		start, end = &from, &to
	}

	allowed, err := s.flats.CanAccess(ctx, flatID, userID)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, nil, flat.ErrNotFlatMember
	}

	expenses, err := s.repo.ListByFlat(ctx, flatID, start, end)
	if err != nil {
		return nil, nil, err
	}

	var members []*flat.Member
	if includeMembers {
		members, err = s.flats.Members(ctx, flatID)
		if err != nil {
			return nil, nil, err
		}
	}

	return expenses, members, nil
}

// notifyMembers tells everyone except the creator about the new expense.
// Best effort: a notification failure never fails the expense.
func (s *Service) notifyMembers(ctx context.Context, members []*flat.Member, e *Expense) {
	if s.notifier == nil {
		return
	}
	message := fmt.Sprintf("New expense: %s (%s)", e.Concept, money.Format(e.AmountCents))
	for _, m := range members {
		if m.ID == e.CreatedBy {
			continue
		}
		if err := s.notifier.Notify(ctx, m.ID, message, "EXPENSE", e.ID); err != nil {
			slog.Warn("expense notification failed", "expense_id", e.ID, "recipient_id", m.ID, "error", err)
		}
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
