package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatterbox/server/internal/models"
)

// MessageStore persists messages and answers history queries.
type MessageStore struct {
	pool *pgxpool.Pool
}

func NewMessageStore(pool *pgxpool.Pool) *MessageStore {
	return &MessageStore{pool: pool}
}

// Insert persists a message with a server-assigned id and timestamp and
// returns it joined with the sender's display name.
func (s *MessageStore) Insert(ctx context.Context, msg models.Message) (models.MessageDto, error) {
	var dto models.MessageDto
	err := s.pool.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO messages (id, content, type, file_url, sender_id, receiver_id, group_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, content, type, file_url, sender_id, receiver_id, group_id, created_at
		)
		SELECT ins.id, ins.content, ins.type, ins.file_url, ins.sender_id,
		       u.user_name, ins.receiver_id, ins.group_id, ins.created_at
		FROM ins
		INNER JOIN users u ON u.id = ins.sender_id
	`, uuid.New(), msg.Content, msg.Type, msg.FileURL, msg.SenderID,
		msg.ReceiverID, msg.GroupID, time.Now().UTC()).
		Scan(&dto.ID, &dto.Content, &dto.Type, &dto.FileURL, &dto.SenderID,
			&dto.SenderName, &dto.ReceiverID, &dto.GroupID, &dto.Timestamp)
	if err != nil {
		return models.MessageDto{}, fmt.Errorf("failed to insert message: %w", err)
	}
	return dto, nil
}

// Private returns every message between the two users, either direction,
// ascending by timestamp.
func (s *MessageStore) Private(ctx context.Context, a, b uuid.UUID) ([]models.MessageDto, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT m.id, m.content, m.type, m.file_url, m.sender_id,
		       u.user_name, m.receiver_id, m.group_id, m.created_at
		FROM messages m
		INNER JOIN users u ON m.sender_id = u.id
		WHERE (m.sender_id = $1 AND m.receiver_id = $2)
		   OR (m.sender_id = $2 AND m.receiver_id = $1)
		ORDER BY m.created_at ASC
	`, a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to load private messages: %w", err)
	}
	return scanMessages(rows)
}

// Group returns every message sent to the group, ascending by timestamp.
func (s *MessageStore) Group(ctx context.Context, groupID uuid.UUID) ([]models.MessageDto, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT m.id, m.content, m.type, m.file_url, m.sender_id,
		       u.user_name, m.receiver_id, m.group_id, m.created_at
		FROM messages m
		INNER JOIN users u ON m.sender_id = u.id
		WHERE m.group_id = $1
		ORDER BY m.created_at ASC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group messages: %w", err)
	}
	return scanMessages(rows)
}

func scanMessages(rows pgx.Rows) ([]models.MessageDto, error) {
	defer rows.Close()

	messages := []models.MessageDto{}
	for rows.Next() {
		var m models.MessageDto
		err := rows.Scan(&m.ID, &m.Content, &m.Type, &m.FileURL, &m.SenderID,
			&m.SenderName, &m.ReceiverID, &m.GroupID, &m.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
