package flat

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Repository handles flat and room assignment data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new flat repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new flat owned by the given user
func (r *Repository) Create(ctx context.Context, ownerID string, req *CreateFlatRequest) (*Flat, error) {
	query := `
		INSERT INTO flats (id, owner_id, address, city, district)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, owner_id, address, city, district, created_at
	`

	f := &Flat{}
	err := r.db.QueryRowContext(ctx, query,
		uuid.New().String(),
		ownerID,
		req.Address,
		req.City,
		req.District,
	).Scan(&f.ID, &f.OwnerID, &f.Address, &f.City, &f.District, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create flat: %w", err)
	}

	return f, nil
}

// GetByID retrieves a flat by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Flat, error) {
	query := `
		SELECT id, owner_id, address, city, district, created_at
		FROM flats
		WHERE id = $1
	`

	f := &Flat{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.OwnerID, &f.Address, &f.City, &f.District, &f.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get flat: %w", err)
	}

	return f, nil
}

// HasAcceptedAssignment reports whether the user holds an accepted room
// assignment in the flat
func (r *Repository) HasAcceptedAssignment(ctx context.Context, flatID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM room_assignments ra
			JOIN rooms rm ON rm.id = ra.room_id
			WHERE rm.flat_id = $1
			  AND ra.assignee_id = $2
			  AND ra.status = $3
		)
	`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, flatID, userID, AssignmentStatusAccepted).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}

	return exists, nil
}

// Members returns the flat's cost-sharing members: the owner, joined on the
// flat's creation date, plus every accepted assignee, joined on the date the
// assignment was accepted. The owner wins on duplicate IDs and the result is
// sorted by member ID so callers get a stable order.
func (r *Repository) Members(ctx context.Context, f *Flat) ([]*Member, error) {
	byID := make(map[string]*Member)

	ownerQuery := `
		SELECT p.id, p.display_name, p.avatar_url
		FROM profiles p
		WHERE p.id = $1
	`
	owner := &Member{JoinedOn: f.CreatedAt}
	err := r.db.QueryRowContext(ctx, ownerQuery, f.OwnerID).Scan(
		&owner.ID, &owner.DisplayName, &owner.AvatarURL,
	)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get owner profile: %w", err)
	}
	if err == nil {
		byID[owner.ID] = owner
	}

	assigneeQuery := `
		SELECT ra.assignee_id, ra.updated_at, p.display_name, p.avatar_url
		FROM room_assignments ra
		JOIN rooms rm ON rm.id = ra.room_id
		JOIN profiles p ON p.id = ra.assignee_id
		WHERE rm.flat_id = $1
		  AND ra.status = $2
	`

	rows, err := r.db.QueryContext(ctx, assigneeQuery, f.ID, AssignmentStatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(&m.ID, &m.JoinedOn, &m.DisplayName, &m.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan assignee: %w", err)
		}
		if _, ok := byID[m.ID]; !ok {
			byID[m.ID] = m
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list assignees: %w", err)
	}

	members := make([]*Member, 0, len(byID))
	for _, m := range byID {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

	return members, nil
}
