package settlement

import "time"

// PaymentRecord is the durable fact that a suggested transfer was settled
// outside the app (cash, bank transfer). Uniquely identified by
// (flat, month, from, to, amount); there is no edit operation — a changed
// amount is a different record.
type PaymentRecord struct {
	FlatID      string    `json:"flat_id"`
	Month       string    `json:"month"`
	FromID      string    `json:"from_id"`
	ToID        string    `json:"to_id"`
	AmountCents int64     `json:"-"`
	MarkedBy    string    `json:"marked_by"`
	MarkedAt    time.Time `json:"marked_at"`
}

// Balance is a member's derived position for a period. Never persisted;
// recomputed from expenses and payment records on every read.
type Balance struct {
	MemberID   string
	PaidCents  int64
	ShareCents int64
	// BaseCents is paid minus share: the position implied by expenses alone.
	BaseCents int64
	// NetCents is the base reconciled against recorded payments.
	NetCents int64
}

// Transfer is a suggested debtor-to-creditor payment that would settle the
// period. Paid is true when a payment record matches the exact
// (from, to, amount) tuple.
type Transfer struct {
	FromID      string
	ToID        string
	AmountCents int64
	Paid        bool
}
