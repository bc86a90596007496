package settlement

import (
	"fmt"
	"sort"

	"github.com/alvarosanz/flatshare/internal/expense"
	"github.com/alvarosanz/flatshare/internal/flat"
)

// The engine is a pure function over a snapshot of members, expenses and
// payment records. Nothing here touches storage and nothing is cached between
// reads; that is what keeps results correct under retries, concurrent ledger
// writes and out-of-order expense entry.

// paidKey is the exact-match identity of a transfer in the payment ledger.
func paidKey(fromID, toID string, amountCents int64) string {
	return fmt.Sprintf("%s|%s|%d", fromID, toID, amountCents)
}

// computeBalances derives each member's position for the period.
//
// Paid is the sum of expense amounts the member fronted. Share is the
// member's allocated portion of every expense; base is paid minus share. Net
// reconciles the base against recorded payments: a payment moves its amount
// from the receiver's balance to the payer's, so someone who owed 50 and
// settled it in cash reads as even. Results are sorted by member ID.
func computeBalances(members []*flat.Member, expenses []*expense.Expense, payments []*PaymentRecord) []*Balance {
	paid := make(map[string]int64, len(members))
	share := make(map[string]int64, len(members))
	for _, m := range members {
		paid[m.ID] = 0
		share[m.ID] = 0
	}

	for _, e := range expenses {
		paid[e.CreatedBy] += e.AmountCents
		allocate(e, members, share)
	}

	adjustment := make(map[string]int64, len(members))
	for _, p := range payments {
		if p.AmountCents == 0 {
			continue
		}
		adjustment[p.FromID] += p.AmountCents
		adjustment[p.ToID] -= p.AmountCents
	}

	balances := make([]*Balance, 0, len(members))
	for _, m := range members {
		base := paid[m.ID] - share[m.ID]
		balances = append(balances, &Balance{
			MemberID:   m.ID,
			PaidCents:  paid[m.ID],
			ShareCents: share[m.ID],
			BaseCents:  base,
			NetCents:   base + adjustment[m.ID],
		})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].MemberID < balances[j].MemberID })

	return balances
}

// allocate splits one expense's cents across its eligible members and
// accumulates the result into share.
//
// Eligible members are the explicit participants if the expense names any,
// otherwise every member, in both cases restricted to members who had joined
// by the expense date. The amount splits into floor(amount/n) per head, with
// the remainder cents going one each to the first members in ascending ID
// order; that fixed tie-break makes allocation reproducible run over run. The
// assigned shares always sum to the expense amount exactly.
//
// An expense whose eligible set is empty (e.g. its only named participant
// joined later) still counts toward the payer's paid total but allocates
// nothing; that is deliberate, not an error.
func allocate(e *expense.Expense, members []*flat.Member, share map[string]int64) {
	byID := make(map[string]*flat.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	candidates := e.Participants
	if len(candidates) == 0 {
		candidates = make([]string, 0, len(members))
		for _, m := range members {
			candidates = append(candidates, m.ID)
		}
	}

	eligible := make([]string, 0, len(candidates))
	for _, id := range candidates {
		m, ok := byID[id]
		if ok && m.EligibleOn(e.ExpenseDate) {
			eligible = append(eligible, id)
		}
	}
	if len(eligible) == 0 {
		return
	}
	sort.Strings(eligible)

	n := int64(len(eligible))
	base := e.AmountCents / n
	remainder := e.AmountCents - base*n

	for i, id := range eligible {
		extra := int64(0)
		if int64(i) < remainder {
			extra = 1
		}
		share[id] += base + extra
	}
}

// minimizeTransfers nets the base balances into a short list of settling
// transfers using greedy two-pointer debt netting: debtors and creditors each
// sorted by member ID, repeatedly matching the current pair for the smaller
// of the two remainders. It emits at most len(balances)-1 transfers and
// closes every balance exactly. Globally minimal transaction counts are
// NP-hard; this is the standard practical trade-off.
//
// Transfers run over the base balances, not the reconciled ones: a transfer
// someone already marked paid stays in the list with its paid flag set, and
// if new expenses change the amount the stale record no longer matches, so
// the transfer reverts to unpaid and must be re-confirmed.
func minimizeTransfers(balances []*Balance, paidSet map[string]struct{}) []*Transfer {
	type party struct {
		id     string
		amount int64
	}

	var debtors, creditors []*party
	for _, b := range balances {
		switch {
		case b.BaseCents < 0:
			debtors = append(debtors, &party{id: b.MemberID, amount: -b.BaseCents})
		case b.BaseCents > 0:
			creditors = append(creditors, &party{id: b.MemberID, amount: b.BaseCents})
		}
	}
	sort.Slice(debtors, func(i, j int) bool { return debtors[i].id < debtors[j].id })
	sort.Slice(creditors, func(i, j int) bool { return creditors[i].id < creditors[j].id })

	transfers := []*Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := debtors[i], creditors[j]

		amount := debtor.amount
		if creditor.amount < amount {
			amount = creditor.amount
		}

		if amount > 0 {
			_, paid := paidSet[paidKey(debtor.id, creditor.id, amount)]
			transfers = append(transfers, &Transfer{
				FromID:      debtor.id,
				ToID:        creditor.id,
				AmountCents: amount,
				Paid:        paid,
			})
			debtor.amount -= amount
			creditor.amount -= amount
		}

		if debtor.amount == 0 {
			i++
		}
		if creditor.amount == 0 {
			j++
		}
	}

	return transfers
}
