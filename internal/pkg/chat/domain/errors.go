package chat

import "errors"

// Domain-level errors for chat behaviors. Controllers and the realtime
// session map these onto HTTP statuses / error frames with errors.Is.
var (
	ErrInvalidParticipants = errors.New("chat: invalid participant set for room kind")
	ErrInvalidName         = errors.New("chat: group room requires a non-empty name")
	ErrEmptyMessage        = errors.New("chat: empty message content")
	ErrNotAMember          = errors.New("chat: user is not a member of the room")
	ErrRoomNotFound        = errors.New("chat: room not found")
	ErrUserNotFound        = errors.New("chat: user not found")
	ErrAlreadyMember       = errors.New("chat: user is already a member of the room")
	ErrNotGroupRoom        = errors.New("chat: members can only be added to group rooms")
)
