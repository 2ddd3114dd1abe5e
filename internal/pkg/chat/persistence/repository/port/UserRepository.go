package repository

import (
	"context"

	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
)

// UserRepository is the read-only user lookup the chat context needs.
// Account management and authentication live outside this module.
type UserRepository interface {
	// FindByUsername returns the user or nil when absent.
	FindByUsername(ctx context.Context, username string) (*chat.User, error)

	// FindByID returns the user or nil when absent.
	FindByID(ctx context.Context, id int64) (*chat.User, error)
}
