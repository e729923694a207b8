package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/communityroots/volunteer-backend-go/internal/domain/group"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type groupRepository struct {
	db *database.DB
}

func NewGroupRepository(db *database.DB) group.GroupRepository {
	return &groupRepository{db: db}
}

// Create implements group.GroupRepository.
func (r *groupRepository) Create(ctx context.Context, g group.Group) (group.Group, error) {
	q := GetQuerier(ctx, r.db)

	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	query := `
		INSERT INTO groups (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, g.ID, g.Name, g.Description).Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return group.Group{}, group.ErrGroupNameExists
		}
		return group.Group{}, fmt.Errorf("failed to create group: %w", err)
	}

	return g, nil
}

// GetByID implements group.GroupRepository.
func (r *groupRepository) GetByID(ctx context.Context, id string) (group.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT g.id, g.name, g.description, g.created_at, g.updated_at,
			   (SELECT COUNT(*) FROM group_memberships m WHERE m.group_id = g.id)
		FROM groups g
		WHERE g.id = $1
	`

	var g group.Group
	err := q.QueryRow(ctx, query, id).Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt, &g.MemberCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return group.Group{}, group.ErrGroupNotFound
		}
		return group.Group{}, fmt.Errorf("failed to get group: %w", err)
	}

	return g, nil
}

// List implements group.GroupRepository.
func (r *groupRepository) List(ctx context.Context) ([]group.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT g.id, g.name, g.description, g.created_at, g.updated_at,
			   (SELECT COUNT(*) FROM group_memberships m WHERE m.group_id = g.id)
		FROM groups g
		ORDER BY g.name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []group.Group
	for rows.Next() {
		var g group.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt, &g.MemberCount); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// Update implements group.GroupRepository.
func (r *groupRepository) Update(ctx context.Context, g group.Group) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE groups SET name = $2, description = $3, updated_at = NOW() WHERE id = $1
	`, g.ID, g.Name, g.Description)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return group.ErrGroupNameExists
		}
		return fmt.Errorf("failed to update group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return group.ErrGroupNotFound
	}

	return nil
}

// Delete implements group.GroupRepository.
func (r *groupRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return group.ErrGroupNotFound
	}

	return nil
}

type membershipRepository struct {
	db *database.DB
}

func NewMembershipRepository(db *database.DB) group.MembershipRepository {
	return &membershipRepository{db: db}
}

// Create implements group.MembershipRepository.
func (r *membershipRepository) Create(ctx context.Context, m group.Membership) (group.Membership, error) {
	q := GetQuerier(ctx, r.db)

	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	query := `
		INSERT INTO group_memberships (id, group_id, user_id, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, m.ID, m.GroupID, m.UserID, m.Role).Scan(&m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return group.Membership{}, group.ErrAlreadyMember
		}
		return group.Membership{}, fmt.Errorf("failed to create membership: %w", err)
	}

	return m, nil
}

// Get implements group.MembershipRepository.
func (r *membershipRepository) Get(ctx context.Context, groupID, userID string) (group.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, group_id, user_id, role, created_at
		FROM group_memberships
		WHERE group_id = $1 AND user_id = $2
	`

	var m group.Membership
	err := q.QueryRow(ctx, query, groupID, userID).Scan(&m.ID, &m.GroupID, &m.UserID, &m.Role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return group.Membership{}, group.ErrMembershipNotFound
		}
		return group.Membership{}, fmt.Errorf("failed to get membership: %w", err)
	}

	return m, nil
}

// ListByGroup implements group.MembershipRepository.
func (r *membershipRepository) ListByGroup(ctx context.Context, groupID string) ([]group.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.group_id, m.user_id, m.role, m.created_at,
			   u.first_name || ' ' || u.last_name, u.email
		FROM group_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.group_id = $1
		ORDER BY m.created_at ASC
	`

	rows, err := q.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships for group: %w", err)
	}
	defer rows.Close()

	var memberships []group.Membership
	for rows.Next() {
		var m group.Membership
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.Role, &m.CreatedAt, &m.MemberName, &m.MemberEmail); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}

// ListByUser implements group.MembershipRepository.
func (r *membershipRepository) ListByUser(ctx context.Context, userID string) ([]group.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, group_id, user_id, role, created_at
		FROM group_memberships
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships for user: %w", err)
	}
	defer rows.Close()

	var memberships []group.Membership
	for rows.Next() {
		var m group.Membership
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}

// Delete implements group.MembershipRepository.
func (r *membershipRepository) Delete(ctx context.Context, groupID, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM group_memberships WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return group.ErrMembershipNotFound
	}

	return nil
}
