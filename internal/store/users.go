package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatterbox/server/internal/models"
)

// UserStore persists accounts and presence status.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

// Create inserts a new account. Status starts offline.
func (s *UserStore) Create(ctx context.Context, userName, email, passwordHash string) (models.User, error) {
	var user models.User
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, user_name, email, password_hash, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_name, email, password_hash, status, last_login, created_at
	`, uuid.New(), userName, email, passwordHash, models.StatusOffline, time.Now().UTC()).
		Scan(&user.ID, &user.UserName, &user.Email, &user.PasswordHash,
			&user.Status, &user.LastLogin, &user.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetByEmail returns nil without error when no such account exists.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.get(ctx, "email = $1", email)
}

// GetByID returns nil without error when no such account exists.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.get(ctx, "id = $1", id)
}

func (s *UserStore) get(ctx context.Context, where string, arg any) (*models.User, error) {
	var user models.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_name, email, password_hash, status, last_login, created_at
		FROM users WHERE `+where,
		arg).Scan(&user.ID, &user.UserName, &user.Email, &user.PasswordHash,
		&user.Status, &user.LastLogin, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// List returns the status projection of every account.
func (s *UserStore) List(ctx context.Context) ([]models.UserDto, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_name, email, status, last_login
		FROM users ORDER BY user_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.UserDto{}
	for rows.Next() {
		var u models.UserDto
		if err := rows.Scan(&u.ID, &u.UserName, &u.Email, &u.Status, &u.LastLogin); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateStatus sets the presence status of one user.
func (s *UserStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.UserStatus) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return nil
}

// TouchLogin records a successful login: status online, last login now.
func (s *UserStore) TouchLogin(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE users SET status = $1, last_login = $2 WHERE id = $3
	`, models.StatusOnline, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}
