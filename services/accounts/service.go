package accounts

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danirando/backend-film-antigravity/internal/database"
	"github.com/danirando/backend-film-antigravity/models"
)

var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// SessionTTL is how long an issued token stays valid.
const SessionTTL = 30 * 24 * time.Hour

// Service manages user accounts and session tokens.
type Service struct {
	repo *database.AccountRepository
}

func NewService(repo *database.AccountRepository) *Service {
	return &Service{repo: repo}
}

// Register creates a new account with the provided credentials.
func (s *Service) Register(username, password string) (models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.Account{}, ErrUsernameRequired
	}
	password = strings.TrimSpace(password)
	if password == "" {
		return models.Account{}, ErrPasswordRequired
	}

	existing, err := s.repo.GetByUsername(username)
	if err != nil {
		return models.Account{}, err
	}
	if existing != nil {
		return models.Account{}, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account := models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// Authenticate verifies the credentials and issues a session token.
func (s *Service) Authenticate(username, password string) (models.Account, models.Session, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return models.Account{}, models.Session{}, ErrInvalidCredentials
	}

	account, err := s.repo.GetByUsername(username)
	if err != nil {
		return models.Account{}, models.Session{}, err
	}
	if account == nil {
		// Burn a comparison so missing users take as long as bad passwords.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$dummy"), []byte(password))
		return models.Account{}, models.Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return models.Account{}, models.Session{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := models.Session{
		Token:     uuid.NewString(),
		AccountID: account.ID,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}
	if err := s.repo.CreateSession(session); err != nil {
		return models.Account{}, models.Session{}, err
	}
	return *account, session, nil
}

// Validate resolves a session token to its account.
func (s *Service) Validate(token string) (models.Account, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Account{}, ErrInvalidSession
	}

	session, err := s.repo.GetSession(token)
	if err != nil {
		return models.Account{}, err
	}
	if session == nil {
		return models.Account{}, ErrInvalidSession
	}
	if session.Expired(time.Now().UTC()) {
		_ = s.repo.DeleteSession(token)
		return models.Account{}, ErrInvalidSession
	}

	account, err := s.repo.GetByID(session.AccountID)
	if err != nil {
		return models.Account{}, err
	}
	if account == nil {
		return models.Account{}, ErrInvalidSession
	}
	return *account, nil
}

// Logout revokes a session token.
func (s *Service) Logout(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.repo.DeleteSession(token)
}
