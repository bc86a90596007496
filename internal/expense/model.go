package expense

import "time"

// Expense represents an individually paid shared expense. Immutable once
// recorded: the settlement engine recomputes everything from these rows, so
// there is no edit path that could diverge from history.
type Expense struct {
	ID          string    `json:"id"`
	FlatID      string    `json:"flat_id"`
	Concept     string    `json:"concept"`
	AmountCents int64     `json:"-"`
	ExpenseDate time.Time `json:"-"`
	Note        *string   `json:"note,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`

	// Explicit participant subset; empty means every member eligible on the
	// expense date shares the cost.
	Participants []string `json:"participants"`

	// Populated via JOIN
	CreatorName *string `json:"creator_name,omitempty"`
}
