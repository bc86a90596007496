package profile

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles profile data access
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new profile repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a profile by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Profile, error) {
	query := `
		SELECT id, display_name, avatar_url, created_at
		FROM profiles
		WHERE id = $1
	`

	p := &Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.DisplayName,
		&p.AvatarURL,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

// GetByIDs retrieves several profiles at once, keyed by ID. Missing IDs are
// simply absent from the result.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) (map[string]*Profile, error) {
	profiles := make(map[string]*Profile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	query := `
		SELECT id, display_name, avatar_url, created_at
		FROM profiles
		WHERE id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p := &Profile{}
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.AvatarURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles[p.ID] = p
	}

	return profiles, rows.Err()
}
