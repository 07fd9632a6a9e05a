// Package memory implements the in-memory account store. The account table
// deliberately does not survive process restarts; only the current session
// slot is persisted elsewhere.
package memory

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"xelar/internal/domain"
	"xelar/internal/repository"
)

type record struct {
	user domain.User
	hash string
}

// AccountRepository is a mutex-guarded in-memory implementation of
// repository.AccountRepository.
type AccountRepository struct {
	mu       sync.Mutex
	accounts []record
}

var _ repository.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

// NormalizeHandle lowercases a handle and ensures the leading @.
func NormalizeHandle(handle string) string {
	handle = strings.ToLower(strings.TrimSpace(handle))
	if handle == "" {
		return handle
	}
	if !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}
	return handle
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.User, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(account.Email)
	handle := NormalizeHandle(account.Handle)
	for _, rec := range r.accounts {
		if strings.ToLower(rec.user.Email) == email || NormalizeHandle(rec.user.Handle) == handle {
			return repository.ErrAccountExists
		}
	}

	r.accounts = append(r.accounts, record{user: *account, hash: passwordHash})
	return nil
}

func (r *AccountRepository) GetByHandleOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.lookup(identifier)
	if rec == nil {
		return nil, repository.ErrAccountNotFound
	}
	user := rec.user
	return &user, nil
}

func (r *AccountRepository) Exists(ctx context.Context, email, handle string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	handle = NormalizeHandle(handle)
	for _, rec := range r.accounts {
		if strings.ToLower(rec.user.Email) == email || NormalizeHandle(rec.user.Handle) == handle {
			return true, nil
		}
	}
	return false, nil
}

func (r *AccountRepository) VerifyPassword(ctx context.Context, identifier, password string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.lookup(identifier)
	if rec == nil {
		return false, repository.ErrAccountNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.hash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.accounts {
		if r.accounts[i].user.ID == account.ID {
			hash := r.accounts[i].hash
			r.accounts[i] = record{user: *account, hash: hash}
			return nil
		}
	}
	return repository.ErrAccountNotFound
}

// lookup matches identifier against handle (with or without the leading @)
// or email, case-insensitively. Caller must hold the lock.
func (r *AccountRepository) lookup(identifier string) *record {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return nil
	}
	asHandle := NormalizeHandle(identifier)
	for i := range r.accounts {
		rec := &r.accounts[i]
		if NormalizeHandle(rec.user.Handle) == asHandle || strings.ToLower(rec.user.Email) == identifier {
			return rec
		}
	}
	return nil
}
