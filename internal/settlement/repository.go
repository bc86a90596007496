package settlement

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles payment ledger persistence. The natural key
// (flat, month, from, to, amount) backs a unique index, which is what makes
// concurrent writers converge without locking.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert records a payment mark. Calling it twice with the same key is a
// no-op apart from last-write-wins on who marked it and when.
func (r *Repository) Upsert(ctx context.Context, p *PaymentRecord) error {
	query := `
		INSERT INTO flat_settlement_payments (flat_id, month, from_id, to_id, amount_cents, marked_by, marked_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (flat_id, month, from_id, to_id, amount_cents)
		DO UPDATE SET marked_by = EXCLUDED.marked_by, marked_at = EXCLUDED.marked_at
	`

	_, err := r.db.ExecContext(ctx, query, p.FlatID, p.Month, p.FromID, p.ToID, p.AmountCents, p.MarkedBy)
	if err != nil {
		return fmt.Errorf("failed to upsert payment: %w", err)
	}

	return nil
}

// Delete removes a payment mark by its natural key. Deleting a record that
// does not exist is not an error.
func (r *Repository) Delete(ctx context.Context, flatID, month, fromID, toID string, amountCents int64) error {
	query := `
		DELETE FROM flat_settlement_payments
		WHERE flat_id = $1 AND month = $2 AND from_id = $3 AND to_id = $4 AND amount_cents = $5
	`

	_, err := r.db.ExecContext(ctx, query, flatID, month, fromID, toID, amountCents)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	return nil
}

// ListByFlatMonth retrieves all payment records for a flat and month
func (r *Repository) ListByFlatMonth(ctx context.Context, flatID, month string) ([]*PaymentRecord, error) {
	query := `
		SELECT flat_id, month, from_id, to_id, amount_cents, marked_by, marked_at
		FROM flat_settlement_payments
		WHERE flat_id = $1 AND month = $2
		ORDER BY from_id, to_id, amount_cents
	`

	rows, err := r.db.QueryContext(ctx, query, flatID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*PaymentRecord
	for rows.Next() {
		p := &PaymentRecord{}
		if err := rows.Scan(&p.FlatID, &p.Month, &p.FromID, &p.ToID, &p.AmountCents, &p.MarkedBy, &p.MarkedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}
