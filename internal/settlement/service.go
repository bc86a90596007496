package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alvarosanz/flatshare/internal/expense"
	"github.com/alvarosanz/flatshare/internal/flat"
	"github.com/alvarosanz/flatshare/pkg/money"
	"github.com/alvarosanz/flatshare/pkg/period"
)

// Common errors
var (
	ErrInvalidPayload = errors.New("invalid settlement payload")
	ErrInvalidMonth   = errors.New("invalid month format")
)

// Flats is the membership collaborator
type Flats interface {
	GetByID(ctx context.Context, id string) (*flat.Flat, error)
	Members(ctx context.Context, flatID string) ([]*flat.Member, error)
	CanAccess(ctx context.Context, flatID, userID string) (bool, error)
}

// Expenses loads the expense records a settlement is computed from
type Expenses interface {
	ListByFlat(ctx context.Context, flatID string, start, end *time.Time) ([]*expense.Expense, error)
}

// Ledger is the payment record store
type Ledger interface {
	Upsert(ctx context.Context, p *PaymentRecord) error
	Delete(ctx context.Context, flatID, month, fromID, toID string, amountCents int64) error
	ListByFlatMonth(ctx context.Context, flatID, month string) ([]*PaymentRecord, error)
}

// Notifier records an in-app notification for a member
type Notifier interface {
	Notify(ctx context.Context, recipientID, message, entityType, entityID string) error
}

// Service computes settlement summaries and maintains the payment ledger.
// It holds no state of its own: every read is a fresh computation over the
// collaborators' current records.
type Service struct {
	flats    Flats
	expenses Expenses
	ledger   Ledger
	notifier Notifier
}

// NewService creates a new settlement service
func NewService(flats Flats, expenses Expenses, ledger Ledger, notifier Notifier) *Service {
	return &Service{flats: flats, expenses: expenses, ledger: ledger, notifier: notifier}
}

// Summary computes the settlement for a flat, scoped to a month when given.
// Without a month it covers all time and skips the ledger entirely: payment
// records are month-scoped facts.
func (s *Service) Summary(ctx context.Context, userID, flatID, month string) (*SummaryResponse, error) {
	if flatID == "" {
		return nil, ErrInvalidPayload
	}
	if month != "" && !period.IsValid(month) {
		return nil, ErrInvalidMonth
	}

	allowed, err := s.flats.CanAccess(ctx, flatID, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, flat.ErrNotFlatMember
	}

	f, err := s.flats.GetByID(ctx, flatID)
	if err != nil {
		return nil, err
	}

	members, err := s.flats.Members(ctx, flatID)
	if err != nil {
		return nil, err
	}

	var start, end *time.Time
	if month != "" {
		from, to, err := period.Range(month)
		if err != nil {
			return nil, ErrInvalidMonth
		}
		start, end = &from, &to
	}

	expenses, err := s.expenses.ListByFlat(ctx, flatID, start, end)
	if err != nil {
		return nil, err
	}

	var payments []*PaymentRecord
	if month != "" {
		payments, err = s.ledger.ListByFlatMonth(ctx, flatID, month)
		if err != nil {
			return nil, err
		}
	}

	return buildSummary(f, month, members, expenses, payments), nil
}

// buildSummary runs the engine over a loaded snapshot and shapes the result.
func buildSummary(f *flat.Flat, month string, members []*flat.Member, expenses []*expense.Expense, payments []*PaymentRecord) *SummaryResponse {
	balances := computeBalances(members, expenses, payments)

	paidSet := make(map[string]struct{}, len(payments))
	for _, p := range payments {
		paidSet[paidKey(p.FromID, p.ToID, p.AmountCents)] = struct{}{}
	}
	transfers := minimizeTransfers(balances, paidSet)

	var totalCents int64
	for _, b := range balances {
		totalCents += b.PaidCents
	}
	memberCount := len(members)
	perMemberCount := memberCount
	if perMemberCount == 0 {
		perMemberCount = 1
	}

	byID := make(map[string]*flat.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	memberSummaries := make([]*MemberSummary, len(balances))
	for i, b := range balances {
		ms := &MemberSummary{
			ID:      b.MemberID,
			Paid:    money.FromCents(b.PaidCents),
			Share:   money.FromCents(b.ShareCents),
			Balance: money.FromCents(b.NetCents),
		}
		if m := byID[b.MemberID]; m != nil {
			ms.DisplayName = m.DisplayName
			ms.AvatarURL = m.AvatarURL
		}
		memberSummaries[i] = ms
	}

	transferResponses := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		transferResponses[i] = t.ToResponse()
	}

	paymentResponses := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		paymentResponses[i] = p.ToResponse()
	}

	resp := &SummaryResponse{
		FlatID:       f.ID,
		FlatAddress:  &f.Address,
		FlatCity:     &f.City,
		FlatDistrict: f.District,
		Total:        money.FromCents(totalCents),
		MemberCount:  memberCount,
		PerMember:    money.FromCents(money.RoundDiv(totalCents, perMemberCount)),
		Members:      memberSummaries,
		Transfers:    transferResponses,
		Payments:     paymentResponses,
	}
	if month != "" {
		resp.Month = &month
	}

	return resp
}

// SetPaid idempotently marks or unmarks a transfer as settled. It never
// touches balances: the next read recomputes them from source records, which
// keeps retried and out-of-order writes harmless.
func (s *Service) SetPaid(ctx context.Context, userID string, req *SetPaidRequest) error {
	if req.FlatID == "" || req.FromID == "" || req.ToID == "" || req.Month == "" || req.Amount <= 0 {
		return ErrInvalidPayload
	}
	if !period.IsValid(req.Month) {
		return ErrInvalidMonth
	}

	allowed, err := s.flats.CanAccess(ctx, req.FlatID, userID)
	if err != nil {
		return err
	}
	if !allowed {
		return flat.ErrNotFlatMember
	}

	amountCents := money.ToCents(req.Amount)

	if req.Paid {
		err = s.ledger.Upsert(ctx, &PaymentRecord{
			FlatID:      req.FlatID,
			Month:       req.Month,
			FromID:      req.FromID,
			ToID:        req.ToID,
			AmountCents: amountCents,
			MarkedBy:    userID,
		})
	} else {
		err = s.ledger.Delete(ctx, req.FlatID, req.Month, req.FromID, req.ToID, amountCents)
	}
	if err != nil {
		return err
	}

	s.notifyCounterparty(ctx, userID, req, amountCents)

	return nil
}

// notifyCounterparty tells the other side of the transfer about the mark.
// Best effort.
func (s *Service) notifyCounterparty(ctx context.Context, userID string, req *SetPaidRequest, amountCents int64) {
	if s.notifier == nil || !req.Paid {
		return
	}
	recipient := req.ToID
	if userID == req.ToID {
		recipient = req.FromID
	}
	if recipient == userID {
		return
	}
	message := fmt.Sprintf("Transfer of %s marked as paid for %s", money.Format(amountCents), req.Month)
	if err := s.notifier.Notify(ctx, recipient, message, "SETTLEMENT", req.FlatID); err != nil {
		slog.Warn("settlement notification failed", "flat_id", req.FlatID, "recipient_id", recipient, "error", err)
	}
}
