package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/danirando/backend-film-antigravity/models"
)

// AccountRepository persists accounts and their session tokens.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(account models.Account) error {
	_, err := r.db.Exec(
		`INSERT INTO accounts (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		account.ID, account.Username, account.PasswordHash, account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByUsername(username string) (*models.Account, error) {
	var account models.Account
	err := r.db.QueryRow(
		`SELECT id, username, password_hash, created_at FROM accounts WHERE username = ?`,
		username,
	).Scan(&account.ID, &account.Username, &account.PasswordHash, &account.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup account by username: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) GetByID(id string) (*models.Account, error) {
	var account models.Account
	err := r.db.QueryRow(
		`SELECT id, username, password_hash, created_at FROM accounts WHERE id = ?`,
		id,
	).Scan(&account.ID, &account.Username, &account.PasswordHash, &account.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup account by id: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) CreateSession(session models.Session) error {
	_, err := r.db.Exec(
		`INSERT INTO sessions (token, account_id, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		session.Token, session.AccountID, session.ExpiresAt, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetSession(token string) (*models.Session, error) {
	var session models.Session
	err := r.db.QueryRow(
		`SELECT token, account_id, expires_at, created_at FROM sessions WHERE token = ?`,
		token,
	).Scan(&session.Token, &session.AccountID, &session.ExpiresAt, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	return &session, nil
}

func (r *AccountRepository) DeleteSession(token string) error {
	_, err := r.db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions past their expiry.
func (r *AccountRepository) DeleteExpiredSessions(now time.Time) error {
	_, err := r.db.Exec(`DELETE FROM sessions WHERE expires_at < ?`, now)
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}
