package apiserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"hospohub/internal/auth"
	"hospohub/internal/middleware"
	"hospohub/internal/services"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService    services.AuthService
	tokenBlacklist auth.TokenBlacklist
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService, blacklist auth.TokenBlacklist) *AuthHandler {
	return &AuthHandler{authService: as, tokenBlacklist: blacklist}
}

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeJSONError(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			writeJSONError(w, err.Error(), http.StatusConflict)
			return
		}
		log.Printf("Error registering user %s: %v", req.Username, err)
		writeJSONError(w, "registration failed", http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, http.StatusCreated, user)
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	token, user, err := h.authService.Login(r.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrInvalidCredentials) {
			// One message for both: do not reveal which part was wrong.
			writeJSONError(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		log.Printf("Error logging in user %s: %v", req.UsernameOrEmail, err)
		writeJSONError(w, "login failed", http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// LogoutHandler handles POST /api/v1/auth/logout by blacklisting the token's
// JTI until its natural expiry.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok || claims.ID == "" {
		writeJSONError(w, "could not resolve token from context", http.StatusUnauthorized)
		return
	}

	if err := h.tokenBlacklist.Add(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		log.Printf("Error blacklisting token %s: %v", claims.ID, err)
		writeJSONError(w, "logout failed", http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}
