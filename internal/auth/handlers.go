package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Jogoraa/Woliso-Rentals/internal/api"
	"github.com/Jogoraa/Woliso-Rentals/internal/user"
	"github.com/Jogoraa/Woliso-Rentals/pkg/db"
)

type Handlers struct {
	Users  *user.Repository
	Tokens *TokenManager
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Role        string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        *user.User `json:"user"`
}

func (h Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "valid email is required")
		return
	}
	if req.Password == "" || req.FullName == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "password and full_name are required")
		return
	}
	if !user.ValidRole(req.Role) {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid role")
		return
	}

	if _, err := h.Users.FindByEmail(r.Context(), req.Email); err == nil {
		api.WriteError(w, http.StatusBadRequest, "EMAIL_TAKEN", "email already registered")
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	u := &user.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		FullName:     req.FullName,
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		Role:         req.Role,
		PasswordHash: hash,
	}
	if err := h.Users.Create(r.Context(), u); err != nil {
		// Unique email constraint can still fire under concurrent registration.
		if db.IsUniqueViolation(err) {
			api.WriteError(w, http.StatusBadRequest, "EMAIL_TAKEN", "email already registered")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	h.writeToken(w, u)
}

func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	u, err := h.Users.FindByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !CheckPassword(u.PasswordHash, req.Password) {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid email or password")
		return
	}

	h.writeToken(w, u)
}

func (h Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}
	api.WriteJSON(w, http.StatusOK, u)
}

func (h Handlers) writeToken(w http.ResponseWriter, u *user.User) {
	token, err := h.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        u,
	})
}
