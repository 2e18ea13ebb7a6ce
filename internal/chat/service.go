// Package chat implements message routing, group membership, and the
// identity boundary on top of the persistence stores. Live delivery is
// delegated to a Notifier owned by the caller.
package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"chatterbox/server/internal/auth"
	"chatterbox/server/internal/models"
)

// UserStore is the identity persistence the service depends on.
// Lookups return nil without error on a miss.
type UserStore interface {
	Create(ctx context.Context, userName, email, passwordHash string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.UserDto, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.UserStatus) error
	TouchLogin(ctx context.Context, id uuid.UUID) error
}

// MessageStore persists messages and answers history queries.
type MessageStore interface {
	Insert(ctx context.Context, msg models.Message) (models.MessageDto, error)
	Private(ctx context.Context, a, b uuid.UUID) ([]models.MessageDto, error)
	Group(ctx context.Context, groupID uuid.UUID) ([]models.MessageDto, error)
}

// GroupStore persists groups and memberships.
type GroupStore interface {
	Create(ctx context.Context, creatorID uuid.UUID, name string, description *string, memberIDs []uuid.UUID) (models.GroupDto, error)
	IsAdmin(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	HasMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID, admin bool) error
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.GroupDto, error)
	Members(ctx context.Context, groupID uuid.UUID) ([]models.UserDto, error)
}

// Notifier pushes delivery events to live transports. A miss (recipient
// not connected, nobody in the group channel) is never an error.
type Notifier interface {
	PushToUser(receiverID uuid.UUID, msg models.MessageDto)
	PushToGroup(groupID uuid.UUID, msg models.MessageDto)
	PushReceipt(senderID uuid.UUID, msg models.MessageDto)
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Generate(user models.User) (string, error)
}

// Service wires the stores, the notifier, and the token issuer together.
type Service struct {
	users    UserStore
	messages MessageStore
	groups   GroupStore
	notifier Notifier
	tokens   TokenIssuer
}

func NewService(users UserStore, messages MessageStore, groups GroupStore, notifier Notifier, tokens TokenIssuer) *Service {
	return &Service{
		users:    users,
		messages: messages,
		groups:   groups,
		notifier: notifier,
		tokens:   tokens,
	}
}

// Register creates an account and logs it straight in.
func (s *Service) Register(ctx context.Context, userName, email, password string) (string, models.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", models.User{}, err
	}
	if existing != nil {
		return "", models.User{}, ErrUserExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, userName, email, hash)
	if err != nil {
		return "", models.User{}, err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", models.User{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// Login verifies credentials and issues a session token. The same error
// covers an unknown email and a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (string, models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", models.User{}, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return "", models.User{}, ErrInvalidCredentials
	}

	if err := s.users.TouchLogin(ctx, user.ID); err != nil {
		return "", models.User{}, err
	}
	user.Status = models.StatusOnline

	token, err := s.tokens.Generate(*user)
	if err != nil {
		return "", models.User{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, *user, nil
}

// Logout is stateless; it only flips the status row back to offline.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.users.UpdateStatus(ctx, userID, models.StatusOffline)
}

// GetUser looks up one account.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (models.UserDto, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.UserDto{}, err
	}
	if user == nil {
		return models.UserDto{}, ErrNotFound
	}
	return user.ToDto(), nil
}

// ListUsers returns the status projection of every account.
func (s *Service) ListUsers(ctx context.Context) ([]models.UserDto, error) {
	return s.users.List(ctx)
}

// UpdateStatus sets the caller's presence status.
func (s *Service) UpdateStatus(ctx context.Context, userID uuid.UUID, status string) error {
	parsed, err := models.ParseUserStatus(status)
	if err != nil {
		return err
	}
	return s.users.UpdateStatus(ctx, userID, parsed)
}

// Send persists a message and fans it out to live recipients. Exactly
// one of receiverID and groupID must be set; the check runs before any
// persistence. A persistence failure aborts the call with no fan-out.
// An offline direct recipient is not an error. The sender always gets a
// delivery receipt on its own transport.
func (s *Service) Send(ctx context.Context, senderID uuid.UUID, receiverID, groupID *uuid.UUID, content, msgType string, fileURL *string) (models.MessageDto, error) {
	if (receiverID == nil) == (groupID == nil) {
		return models.MessageDto{}, ErrInvalidTarget
	}

	parsedType, err := models.ParseMessageType(msgType)
	if err != nil {
		return models.MessageDto{}, ErrInvalidMessageType
	}

	dto, err := s.messages.Insert(ctx, models.Message{
		Content:    content,
		Type:       parsedType,
		FileURL:    fileURL,
		SenderID:   senderID,
		ReceiverID: receiverID,
		GroupID:    groupID,
	})
	if err != nil {
		return models.MessageDto{}, err
	}

	if receiverID != nil {
		s.notifier.PushToUser(*receiverID, dto)
	} else {
		s.notifier.PushToGroup(*groupID, dto)
	}
	s.notifier.PushReceipt(senderID, dto)

	return dto, nil
}

// PrivateHistory returns the full conversation between two users,
// ascending by timestamp. Symmetric in its arguments.
func (s *Service) PrivateHistory(ctx context.Context, a, b uuid.UUID) ([]models.MessageDto, error) {
	return s.messages.Private(ctx, a, b)
}

// GroupHistory returns the full message history of a group.
func (s *Service) GroupHistory(ctx context.Context, groupID uuid.UUID) ([]models.MessageDto, error) {
	return s.messages.Group(ctx, groupID)
}

// CreateGroup creates a group with the creator as its sole admin.
// Duplicates of the creator in memberIDs are skipped; an empty member
// list yields a creator-only group.
func (s *Service) CreateGroup(ctx context.Context, creatorID uuid.UUID, name string, description *string, memberIDs []uuid.UUID) (models.GroupDto, error) {
	return s.groups.Create(ctx, creatorID, name, description, memberIDs)
}

// AddMember inserts a non-admin membership. Only admins may add, and a
// user cannot be added twice.
func (s *Service) AddMember(ctx context.Context, groupID, userID, requesterID uuid.UUID) error {
	admin, err := s.groups.IsAdmin(ctx, groupID, requesterID)
	if err != nil {
		return err
	}
	if !admin {
		return ErrNotAuthorized
	}

	member, err := s.groups.HasMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if member {
		return ErrAlreadyMember
	}

	return s.groups.AddMember(ctx, groupID, userID, false)
}

// RemoveMember deletes a membership. Only admins may remove.
func (s *Service) RemoveMember(ctx context.Context, groupID, userID, requesterID uuid.UUID) error {
	admin, err := s.groups.IsAdmin(ctx, groupID, requesterID)
	if err != nil {
		return err
	}
	if !admin {
		return ErrNotAuthorized
	}

	member, err := s.groups.HasMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotAMember
	}

	return s.groups.RemoveMember(ctx, groupID, userID)
}

// UserGroups returns every group the user belongs to.
func (s *Service) UserGroups(ctx context.Context, userID uuid.UUID) ([]models.GroupDto, error) {
	return s.groups.ListForUser(ctx, userID)
}

// GroupMembers returns every member of a group.
func (s *Service) GroupMembers(ctx context.Context, groupID uuid.UUID) ([]models.UserDto, error) {
	return s.groups.Members(ctx, groupID)
}
