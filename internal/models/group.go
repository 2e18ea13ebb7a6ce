package models

import (
	"time"

	"github.com/google/uuid"
)

// Group represents a chat group
type Group struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedByID uuid.UUID `json:"createdById" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// GroupMember represents a user's membership in a group.
// At most one row exists per (group, user) pair.
type GroupMember struct {
	GroupID  uuid.UUID `json:"groupId" db:"group_id"`
	UserID   uuid.UUID `json:"userId" db:"user_id"`
	IsAdmin  bool      `json:"isAdmin" db:"is_admin"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`
}

// GroupDto is the group projection sent to clients.
type GroupDto struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedByID   uuid.UUID `json:"createdById"`
	CreatedByName string    `json:"createdByName"`
	MemberCount   int       `json:"memberCount"`
}
