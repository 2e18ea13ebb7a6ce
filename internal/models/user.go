package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UserStatus is the presence state shown to other users.
type UserStatus string

const (
	StatusOnline    UserStatus = "online"
	StatusOffline   UserStatus = "offline"
	StatusBusy      UserStatus = "busy"
	StatusAvailable UserStatus = "available"
)

// ParseUserStatus validates a status token from a client.
func ParseUserStatus(s string) (UserStatus, error) {
	switch UserStatus(s) {
	case StatusOnline, StatusOffline, StatusBusy, StatusAvailable:
		return UserStatus(s), nil
	}
	return "", fmt.Errorf("unknown user status %q", s)
}

// User represents a registered account
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserName     string     `json:"userName" db:"user_name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // Never expose in JSON
	Status       UserStatus `json:"status" db:"status"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" db:"last_login"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// UserDto is what we send to clients (without sensitive data)
type UserDto struct {
	ID        uuid.UUID  `json:"id"`
	UserName  string     `json:"userName"`
	Email     string     `json:"email"`
	Status    UserStatus `json:"status"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// ToDto converts User to UserDto
func (u *User) ToDto() UserDto {
	return UserDto{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		Status:    u.Status,
		LastLogin: u.LastLogin,
	}
}
