package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/danirando/backend-film-antigravity/models"
	"github.com/danirando/backend-film-antigravity/services/accounts"
)

type accountService interface {
	Register(username, password string) (models.Account, error)
	Authenticate(username, password string) (models.Account, models.Session, error)
	Logout(token string) error
}

var _ accountService = (*accounts.Service)(nil)

type AuthHandler struct {
	Accounts accountService
}

func NewAuthHandler(accountsSvc accountService) *AuthHandler {
	return &AuthHandler{Accounts: accountsSvc}
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.Accounts.Register(body.Username, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrUsernameRequired), errors.Is(err, accounts.ErrPasswordRequired):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, accounts.ErrUsernameExists):
			writeJSONError(w, http.StatusConflict, err.Error())
		default:
			writeJSONError(w, http.StatusInternalServerError, "failed to create account")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":       account.ID,
		"username": account.Username,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, session, err := h.Accounts.Authenticate(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			writeJSONError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"account": map[string]string{
			"id":       account.ID,
			"username": account.Username,
		},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	if len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	}
	if err := h.Accounts.Logout(token); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to log out")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
