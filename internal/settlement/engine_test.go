package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvarosanz/flatshare/internal/expense"
	"github.com/alvarosanz/flatshare/internal/flat"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func member(id, joined string) *flat.Member {
	return &flat.Member{ID: id, JoinedOn: day(joined)}
}

func exp(payer string, cents int64, date string, participants ...string) *expense.Expense {
	return &expense.Expense{
		CreatedBy:    payer,
		AmountCents:  cents,
		ExpenseDate:  day(date),
		Participants: participants,
	}
}

func balanceByID(t *testing.T, balances []*Balance, id string) *Balance {
	t.Helper()
	for _, b := range balances {
		if b.MemberID == id {
			return b
		}
	}
	t.Fatalf("no balance for member %s", id)
	return nil
}

func TestComputeBalancesEvenSplit(t *testing.T) {
	members := []*flat.Member{
		member("alice", "2025-01-01"),
		member("bob", "2025-01-01"),
	}
	expenses := []*expense.Expense{
		exp("alice", 10000, "2025-03-10"),
	}

	balances := computeBalances(members, expenses, nil)
	require.Len(t, balances, 2)

	alice := balanceByID(t, balances, "alice")
	assert.Equal(t, int64(10000), alice.PaidCents)
	assert.Equal(t, int64(5000), alice.ShareCents)
	assert.Equal(t, int64(5000), alice.BaseCents)

	bob := balanceByID(t, balances, "bob")
	assert.Equal(t, int64(0), bob.PaidCents)
	assert.Equal(t, int64(5000), bob.ShareCents)
	assert.Equal(t, int64(-5000), bob.BaseCents)
}

func TestComputeBalancesRemainderGoesToLowestIDs(t *testing.T) {
	members := []*flat.Member{
		member("c-carol", "2025-01-01"),
		member("a-alice", "2025-01-01"),
		member("b-bob", "2025-01-01"),
	}
	// 100.01 across three members: 33.33 base plus two extra cents.
	expenses := []*expense.Expense{
		exp("a-alice", 10001, "2025-03-10"),
	}

	balances := computeBalances(members, expenses, nil)

	assert.Equal(t, int64(3334), balanceByID(t, balances, "a-alice").ShareCents)
	assert.Equal(t, int64(3334), balanceByID(t, balances, "b-bob").ShareCents)
	assert.Equal(t, int64(3333), balanceByID(t, balances, "c-carol").ShareCents)
}

func TestComputeBalancesSharesAlwaysSumToAmount(t *testing.T) {
	members := []*flat.Member{
		member("a", "2025-01-01"),
		member("b", "2025-01-01"),
		member("c", "2025-01-01"),
		member("d", "2025-01-01"),
	}

	for _, cents := range []int64{1, 2, 3, 99, 100, 10001, 33333, 999999} {
		expenses := []*expense.Expense{exp("a", cents, "2025-03-10")}
		balances := computeBalances(members, expenses, nil)

		var total int64
		for _, b := range balances {
			total += b.ShareCents
		}
		assert.Equal(t, cents, total, "cents=%d", cents)
	}
}

func TestComputeBalancesBaseSumsToZero(t *testing.T) {
	members := []*flat.Member{
		member("a", "2025-01-01"),
		member("b", "2025-01-01"),
		member("c", "2025-02-15"),
	}
	expenses := []*expense.Expense{
		exp("a", 10001, "2025-03-10"),
		exp("b", 4599, "2025-03-12"),
		exp("c", 333, "2025-03-20", "a", "c"),
	}

	balances := computeBalances(members, expenses, nil)

	var total int64
	for _, b := range balances {
		total += b.BaseCents
	}
	assert.Equal(t, int64(0), total)
}

func TestComputeBalancesExplicitParticipants(t *testing.T) {
	members := []*flat.Member{
		member("a", "2025-01-01"),
		member("b", "2025-01-01"),
		member("c", "2025-01-01"),
	}
	expenses := []*expense.Expense{
		exp("a", 6000, "2025-03-10", "b", "c"),
	}

	balances := computeBalances(members, expenses, nil)

	assert.Equal(t, int64(0), balanceByID(t, balances, "a").ShareCents)
	assert.Equal(t, int64(6000), balanceByID(t, balances, "a").BaseCents)
	assert.Equal(t, int64(3000), balanceByID(t, balances, "b").ShareCents)
	assert.Equal(t, int64(3000), balanceByID(t, balances, "c").ShareCents)
}

func TestComputeBalancesJoinDateEligibility(t *testing.T) {
	members := []*flat.Member{
		member("a", "2025-01-01"),
		member("b", "2025-01-01"),
		member("late", "2025-03-15"),
	}
	expenses := []*expense.Expense{
		// Before the late member joined: split between a and b only.
		exp("a", 10000, "2025-03-10"),
		// On the join date itself the member is already eligible.
		exp("b", 9000, "2025-03-15"),
	}

	balances := computeBalances(members, expenses, nil)

	late := balanceByID(t, balances, "late")
	assert.Equal(t, int64(3000), late.ShareCents)
	assert.Equal(t, int64(5000+3000), balanceByID(t, balances, "a").ShareCents)
	assert.Equal(t, int64(5000+3000), balanceByID(t, balances, "b").ShareCents)
}

func TestComputeBalancesEmptyEligibleSet(t *testing.T) {
	members := []*flat.Member{
		member("a", "2025-01-01"),
		member("late", "2025-06-01"),
	}
	// Sole named participant had not joined yet: the payer's paid total still
	// counts but nobody carries a share.
	expenses := []*expense.Expense{
		exp("a", 5000, "2025-03-10", "late"),
	}

	balances := computeBalances(members, expenses, nil)

	a := balanceByID(t, balances, "a")
	assert.Equal(t, int64(5000), a.PaidCents)
	assert.Equal(t, int64(0), a.ShareCents)
	assert.Equal(t, int64(5000), a.BaseCents)
	assert.Equal(t, int64(0), balanceByID(t, balances, "late").ShareCents)
}

func TestComputeBalancesPaymentAdjustment(t *testing.T) {
	members := []*flat.Member{
		member("a", "2025-01-01"),
		member("b", "2025-01-01"),
	}
	expenses := []*expense.Expense{
		exp("a", 10000, "2025-03-10"),
	}
	payments := []*PaymentRecord{
		{FromID: "b", ToID: "a", AmountCents: 5000},
	}

	balances := computeBalances(members, expenses, payments)

	a := balanceByID(t, balances, "a")
	b := balanceByID(t, balances, "b")

	// The base position ignores payments; the net position is reconciled.
	assert.Equal(t, int64(5000), a.BaseCents)
	assert.Equal(t, int64(0), a.NetCents)
	assert.Equal(t, int64(-5000), b.BaseCents)
	assert.Equal(t, int64(0), b.NetCents)
}

func TestComputeBalancesSortedByMemberID(t *testing.T) {
	members := []*flat.Member{
		member("zed", "2025-01-01"),
		member("amy", "2025-01-01"),
		member("mia", "2025-01-01"),
	}

	balances := computeBalances(members, nil, nil)
	require.Len(t, balances, 3)
	assert.Equal(t, "amy", balances[0].MemberID)
	assert.Equal(t, "mia", balances[1].MemberID)
	assert.Equal(t, "zed", balances[2].MemberID)
}

func TestMinimizeTransfersSimplePair(t *testing.T) {
	balances := []*Balance{
		{MemberID: "a", BaseCents: 5000},
		{MemberID: "b", BaseCents: -5000},
	}

	transfers := minimizeTransfers(balances, nil)
	require.Len(t, transfers, 1)
	assert.Equal(t, "b", transfers[0].FromID)
	assert.Equal(t, "a", transfers[0].ToID)
	assert.Equal(t, int64(5000), transfers[0].AmountCents)
	assert.False(t, transfers[0].Paid)
}

func TestMinimizeTransfersEmitsAtMostNMinusOne(t *testing.T) {
	balances := []*Balance{
		{MemberID: "a", BaseCents: 7000},
		{MemberID: "b", BaseCents: 2000},
		{MemberID: "c", BaseCents: -3000},
		{MemberID: "d", BaseCents: -1000},
		{MemberID: "e", BaseCents: -5000},
	}

	transfers := minimizeTransfers(balances, nil)
	assert.LessOrEqual(t, len(transfers), len(balances)-1)

	// Every balance must close exactly.
	settled := map[string]int64{}
	for _, b := range balances {
		settled[b.MemberID] = b.BaseCents
	}
	for _, tr := range transfers {
		settled[tr.FromID] += tr.AmountCents
		settled[tr.ToID] -= tr.AmountCents
	}
	for id, remaining := range settled {
		assert.Equal(t, int64(0), remaining, "member %s", id)
	}
}

func TestMinimizeTransfersDeterministic(t *testing.T) {
	balances := func() []*Balance {
		return []*Balance{
			{MemberID: "d", BaseCents: -2500},
			{MemberID: "a", BaseCents: 4000},
			{MemberID: "c", BaseCents: -1500},
			{MemberID: "b", BaseCents: 0},
		}
	}

	first := minimizeTransfers(balances(), nil)
	second := minimizeTransfers(balances(), nil)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, *first[i], *second[i])
	}
}

func TestMinimizeTransfersZeroBalances(t *testing.T) {
	balances := []*Balance{
		{MemberID: "a", BaseCents: 0},
		{MemberID: "b", BaseCents: 0},
	}

	transfers := minimizeTransfers(balances, nil)
	assert.Empty(t, transfers)
}

func TestMinimizeTransfersPaidFlagFromLedger(t *testing.T) {
	balances := []*Balance{
		{MemberID: "a", BaseCents: 4000},
		{MemberID: "b", BaseCents: -4000},
	}
	paidSet := map[string]struct{}{
		paidKey("b", "a", 4000): {},
	}

	transfers := minimizeTransfers(balances, paidSet)
	require.Len(t, transfers, 1)
	assert.True(t, transfers[0].Paid)
}

func TestMinimizeTransfersStaleRecordRevertsToUnpaid(t *testing.T) {
	// The ledger holds the old 40.00 mark, but new expenses moved the
	// balance to 55.00. The amounts no longer match, so the transfer
	// comes back unpaid.
	balances := []*Balance{
		{MemberID: "a", BaseCents: 5500},
		{MemberID: "b", BaseCents: -5500},
	}
	paidSet := map[string]struct{}{
		paidKey("b", "a", 4000): {},
	}

	transfers := minimizeTransfers(balances, paidSet)
	require.Len(t, transfers, 1)
	assert.Equal(t, int64(5500), transfers[0].AmountCents)
	assert.False(t, transfers[0].Paid)
}

func TestMinimizeTransfersRunsOnBaseNotNet(t *testing.T) {
	members := []*flat.Member{
		member("a", "2025-01-01"),
		member("b", "2025-01-01"),
	}
	expenses := []*expense.Expense{
		exp("a", 8000, "2025-03-10"),
	}
	payments := []*PaymentRecord{
		{FromID: "b", ToID: "a", AmountCents: 4000},
	}

	balances := computeBalances(members, expenses, payments)
	paidSet := map[string]struct{}{
		paidKey("b", "a", 4000): {},
	}

	// The marked transfer stays visible with its paid flag set instead of
	// vanishing once the net position reaches zero.
	transfers := minimizeTransfers(balances, paidSet)
	require.Len(t, transfers, 1)
	assert.Equal(t, "b", transfers[0].FromID)
	assert.Equal(t, "a", transfers[0].ToID)
	assert.Equal(t, int64(4000), transfers[0].AmountCents)
	assert.True(t, transfers[0].Paid)
}
