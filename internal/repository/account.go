package repository

import (
	"context"
	"errors"

	"xelar/internal/domain"
)

var (
	// ErrAccountNotFound is returned when no account matches the identifier.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists is returned when an email or handle is already taken.
	ErrAccountExists = errors.New("account already exists")
)

// AccountRepository is the authoritative store of accounts and their secrets.
// Secrets never leave the repository; verification happens inside it.
type AccountRepository interface {
	// Insert appends a new account with its hashed secret. Returns
	// ErrAccountExists if the email or handle is already taken.
	Insert(ctx context.Context, account *domain.User, passwordHash string) error

	// GetByHandleOrEmail matches the identifier case-insensitively against
	// either the handle (a leading @ may be omitted) or the email.
	GetByHandleOrEmail(ctx context.Context, identifier string) (*domain.User, error)

	// Exists reports whether any account matches the email or handle,
	// case-insensitively.
	Exists(ctx context.Context, email, handle string) (bool, error)

	// VerifyPassword looks up the account by identifier and checks the
	// supplied password against the stored hash.
	VerifyPassword(ctx context.Context, identifier, password string) (bool, error)

	// Update replaces the stored profile of an existing account. The secret
	// is left untouched.
	Update(ctx context.Context, account *domain.User) error
}
