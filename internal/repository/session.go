package repository

import (
	"context"
	"errors"

	"xelar/internal/domain"
)

var (
	// ErrSessionNotFound is returned when no session is persisted.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionCorrupt is returned when the persisted payload cannot be
	// decoded as an account.
	ErrSessionCorrupt = errors.New("session payload corrupt")
)

// SessionRepository persists the single "current session" slot across
// process restarts. Last write wins; there is exactly one slot.
type SessionRepository interface {
	Init(ctx context.Context) error
	Save(ctx context.Context, user *domain.User) error
	Load(ctx context.Context) (*domain.User, error)
	Clear(ctx context.Context) error
}
