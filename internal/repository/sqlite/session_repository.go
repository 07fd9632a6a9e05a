package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"xelar/internal/domain"
	"xelar/internal/repository"
)

const createSessionTable = `
CREATE TABLE IF NOT EXISTS session (
	slot TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// currentSlot is the single key-value slot holding the current session.
const currentSlot = "current"

// SessionRepository persists the current session as a serialized account in a
// single sqlite row.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSessionTable); err != nil {
		return fmt.Errorf("create session table: %w", err)
	}
	return nil
}

func (r *SessionRepository) Save(ctx context.Context, user *domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO session (slot, payload, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		currentSlot,
		string(payload),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Load(ctx context.Context) (*domain.User, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `
SELECT payload FROM session WHERE slot = ?`, currentSlot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrSessionCorrupt, err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: missing account id", repository.ErrSessionCorrupt)
	}
	return &user, nil
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE slot = ?`, currentSlot); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
