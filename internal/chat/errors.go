package chat

import "errors"

var (
	// ErrInvalidTarget means a message named zero or two targets.
	ErrInvalidTarget = errors.New("message must have either a receiver or a group")

	// ErrInvalidMessageType means the type token did not parse.
	ErrInvalidMessageType = errors.New("invalid message type, must be text, image, or file")

	// ErrNotAuthorized means a non-admin attempted an admin-only group mutation.
	ErrNotAuthorized = errors.New("only group admins can modify members")

	ErrAlreadyMember = errors.New("user is already in the group")
	ErrNotAMember    = errors.New("user is not in the group")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
	ErrNotFound           = errors.New("not found")
	ErrUnauthenticated    = errors.New("unauthenticated")
)
