package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alvarosanz/flatshare/internal/flat"
)

type testFlatDirectory struct {
	members []*flat.Member
	access  map[string]bool
	err     error
}

func (d *testFlatDirectory) CanAccess(ctx context.Context, flatID, userID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.access[userID], nil
}

func (d *testFlatDirectory) Members(ctx context.Context, flatID string) ([]*flat.Member, error) {
	return d.members, nil
}

func joined(id, date string) *flat.Member {
	t, _ := time.Parse("2006-01-02", date)
	return &flat.Member{ID: id, JoinedOn: t}
}

func newTestExpenseService() *Service {
	flats := &testFlatDirectory{
		members: []*flat.Member{
			joined("alice", "2025-01-01"),
			joined("late", "2025-06-01"),
		},
		access: map[string]bool{"alice": true, "late": true},
	}
	return NewService(nil, flats, nil)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestExpenseService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *CreateExpenseRequest
		want error
	}{
		{"missing flat", &CreateExpenseRequest{Concept: "Rent", Amount: 100}, ErrInvalidPayload},
		{"blank concept", &CreateExpenseRequest{FlatID: "flat-1", Concept: "   ", Amount: 100}, ErrInvalidPayload},
		{"zero amount", &CreateExpenseRequest{FlatID: "flat-1", Concept: "Rent", Amount: 0}, ErrInvalidPayload},
		{"negative amount", &CreateExpenseRequest{FlatID: "flat-1", Concept: "Rent", Amount: -5}, ErrInvalidPayload},
		{"malformed date", &CreateExpenseRequest{FlatID: "flat-1", Concept: "Rent", Amount: 100, ExpenseDate: "10/03/2025"}, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "alice", tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateAccessDenied(t *testing.T) {
	svc := newTestExpenseService()

	_, err := svc.Create(context.Background(), "stranger", &CreateExpenseRequest{
		FlatID: "flat-1", Concept: "Rent", Amount: 100,
	})
	assert.ErrorIs(t, err, flat.ErrNotFlatMember)
}

func TestCreateRejectsUnknownParticipant(t *testing.T) {
	svc := newTestExpenseService()

	_, err := svc.Create(context.Background(), "alice", &CreateExpenseRequest{
		FlatID: "flat-1", Concept: "Groceries", Amount: 30,
		ExpenseDate:  "2025-03-10",
		Participants: []string{"nobody"},
	})
	assert.ErrorIs(t, err, ErrInvalidParticipant)
}

func TestCreateRejectsParticipantNotYetJoined(t *testing.T) {
	svc := newTestExpenseService()

	// "late" joins in June; a March expense cannot name them.
	_, err := svc.Create(context.Background(), "alice", &CreateExpenseRequest{
		FlatID: "flat-1", Concept: "Groceries", Amount: 30,
		ExpenseDate:  "2025-03-10",
		Participants: []string{"late"},
	})
	assert.ErrorIs(t, err, ErrInvalidParticipant)
}

func TestListByFlatValidation(t *testing.T) {
	svc := newTestExpenseService()
	ctx := context.Background()

	_, _, err := svc.ListByFlat(ctx, "alice", "", "", false)
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, _, err = svc.ListByFlat(ctx, "alice", "flat-1", "2025-3", false)
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, _, err = svc.ListByFlat(ctx, "stranger", "flat-1", "2025-03", false)
	assert.ErrorIs(t, err, flat.ErrNotFlatMember)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, dedupe([]string{"b", "a", "b", " a ", ""}))
	assert.Empty(t, dedupe(nil))
}

func TestTrimmedOrNil(t *testing.T) {
	assert.Nil(t, trimmedOrNil(nil))

	blank := "   "
	assert.Nil(t, trimmedOrNil(&blank))

	note := "  paid in cash "
	got := trimmedOrNil(&note)
	assert.NotNil(t, got)
	assert.Equal(t, "paid in cash", *got)
}
