package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatterbox/server/internal/models"
)

// GroupStore persists groups and their memberships.
type GroupStore struct {
	pool *pgxpool.Pool
}

func NewGroupStore(pool *pgxpool.Pool) *GroupStore {
	return &GroupStore{pool: pool}
}

// Create inserts the group, the creator's admin membership, and one
// non-admin membership per remaining id, all in a single transaction.
// Member ids that do not resolve to a user are skipped.
func (s *GroupStore) Create(ctx context.Context, creatorID uuid.UUID, name string, description *string, memberIDs []uuid.UUID) (models.GroupDto, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.GroupDto{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	var group models.GroupDto
	err = tx.QueryRow(ctx, `
		INSERT INTO groups (id, name, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, created_by, created_at
	`, uuid.New(), name, description, creatorID, now).
		Scan(&group.ID, &group.Name, &group.Description, &group.CreatedByID, &group.CreatedAt)
	if err != nil {
		return models.GroupDto{}, fmt.Errorf("failed to create group: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO group_members (group_id, user_id, is_admin, joined_at)
		VALUES ($1, $2, true, $3)
	`, group.ID, creatorID, now)
	if err != nil {
		return models.GroupDto{}, fmt.Errorf("failed to add creator to group: %w", err)
	}

	// Remaining members in one statement so an unknown id cannot poison
	// the transaction; duplicates of the creator are excluded here.
	_, err = tx.Exec(ctx, `
		INSERT INTO group_members (group_id, user_id, is_admin, joined_at)
		SELECT $1, u.id, false, $4
		FROM users u
		WHERE u.id = ANY($2) AND u.id <> $3
		ON CONFLICT (group_id, user_id) DO NOTHING
	`, group.ID, memberIDs, creatorID, now)
	if err != nil {
		return models.GroupDto{}, fmt.Errorf("failed to add members to group: %w", err)
	}

	err = tx.QueryRow(ctx, `
		SELECT u.user_name,
		       (SELECT COUNT(*) FROM group_members WHERE group_id = $1)
		FROM users u WHERE u.id = $2
	`, group.ID, creatorID).Scan(&group.CreatedByName, &group.MemberCount)
	if err != nil {
		return models.GroupDto{}, fmt.Errorf("failed to load group summary: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.GroupDto{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return group, nil
}

// IsAdmin reports whether the user holds an admin membership in the group.
func (s *GroupStore) IsAdmin(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var admin bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM group_members
			WHERE group_id = $1 AND user_id = $2 AND is_admin
		)
	`, groupID, userID).Scan(&admin)
	if err != nil {
		return false, fmt.Errorf("failed to check group admin: %w", err)
	}
	return admin, nil
}

// HasMember reports whether the user has any membership in the group.
func (s *GroupStore) HasMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var member bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2
		)
	`, groupID, userID).Scan(&member)
	if err != nil {
		return false, fmt.Errorf("failed to check group membership: %w", err)
	}
	return member, nil
}

// AddMember inserts a membership row.
func (s *GroupStore) AddMember(ctx context.Context, groupID, userID uuid.UUID, admin bool) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO group_members (group_id, user_id, is_admin, joined_at)
		VALUES ($1, $2, $3, $4)
	`, groupID, userID, admin, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

// RemoveMember deletes a membership row. Removal is terminal.
func (s *GroupStore) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM group_members WHERE group_id = $1 AND user_id = $2
	`, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	return nil
}

// ListForUser returns every group the user belongs to.
func (s *GroupStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.GroupDto, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT g.id, g.name, g.description, g.created_at, g.created_by, u.user_name,
		       (SELECT COUNT(*) FROM group_members WHERE group_id = g.id)
		FROM groups g
		INNER JOIN group_members gm ON gm.group_id = g.id
		INNER JOIN users u ON u.id = g.created_by
		WHERE gm.user_id = $1
		ORDER BY g.created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := []models.GroupDto{}
	for rows.Next() {
		var g models.GroupDto
		err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt,
			&g.CreatedByID, &g.CreatedByName, &g.MemberCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Members returns the user projection of every member of the group.
func (s *GroupStore) Members(ctx context.Context, groupID uuid.UUID) ([]models.UserDto, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, u.user_name, u.email, u.status, u.last_login
		FROM group_members gm
		INNER JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY gm.joined_at
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	defer rows.Close()

	members := []models.UserDto{}
	for rows.Next() {
		var u models.UserDto
		if err := rows.Scan(&u.ID, &u.UserName, &u.Email, &u.Status, &u.LastLogin); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, u)
	}
	return members, rows.Err()
}
