package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Repository handles expense data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new expense and its explicit participants in one
// transaction
func (r *Repository) Create(ctx context.Context, e *Expense) (*Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO flat_expenses (id, flat_id, concept, amount_cents, expense_date, note, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, flat_id, concept, amount_cents, expense_date, note, created_by, created_at
	`

	created := &Expense{Participants: e.Participants}
	err = tx.QueryRowContext(ctx, query,
		uuid.New().String(),
		e.FlatID,
		e.Concept,
		e.AmountCents,
		e.ExpenseDate,
		e.Note,
		e.CreatedBy,
	).Scan(
		&created.ID,
		&created.FlatID,
		&created.Concept,
		&created.AmountCents,
		&created.ExpenseDate,
		&created.Note,
		&created.CreatedBy,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	for _, memberID := range e.Participants {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO flat_expense_participants (expense_id, member_id) VALUES ($1, $2)`,
			created.ID, memberID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create expense participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return created, nil
}

// ListByFlat retrieves a flat's expenses, newest first, optionally restricted
// to expense dates within [start, end). Explicit participants are attached to
// each row.
func (r *Repository) ListByFlat(ctx context.Context, flatID string, start, end *time.Time) ([]*Expense, error) {
	query := `
		SELECT e.id, e.flat_id, e.concept, e.amount_cents, e.expense_date, e.note,
		       e.created_by, e.created_at, p.display_name
		FROM flat_expenses e
		LEFT JOIN profiles p ON p.id = e.created_by
		WHERE e.flat_id = $1
		  AND ($2::date IS NULL OR e.expense_date >= $2)
		  AND ($3::date IS NULL OR e.expense_date < $3)
		ORDER BY e.expense_date DESC, e.created_at DESC, e.id
	`

	rows, err := r.db.QueryContext(ctx, query, flatID, nullTime(start), nullTime(end))
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	ids := make([]string, 0)
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(
			&e.ID, &e.FlatID, &e.Concept, &e.AmountCents, &e.ExpenseDate, &e.Note,
			&e.CreatedBy, &e.CreatedAt, &e.CreatorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	participants, err := r.participantsByExpense(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		e.Participants = participants[e.ID]
	}

	return expenses, nil
}

// participantsByExpense loads the explicit participant sets for a batch of
// expenses
func (r *Repository) participantsByExpense(ctx context.Context, expenseIDs []string) (map[string][]string, error) {
	byExpense := make(map[string][]string)
	if len(expenseIDs) == 0 {
		return byExpense, nil
	}

	query := `
		SELECT expense_id, member_id
		FROM flat_expense_participants
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, member_id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(expenseIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list expense participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID, memberID string
		if err := rows.Scan(&expenseID, &memberID); err != nil {
			return nil, fmt.Errorf("failed to scan expense participant: %w", err)
		}
		byExpense[expenseID] = append(byExpense[expenseID], memberID)
	}

	return byExpense, rows.Err()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
