package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"literacylab/internal/security"
	"literacylab/internal/service"
	"literacylab/internal/validation"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	profileService       *service.ProfileService
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
	appBaseURL           string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, profileService *service.ProfileService, oauthProviders map[string]OAuthProvider, oauthRedirectBaseURL, appBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		profileService:       profileService,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
		appBaseURL:           appBaseURL,
	}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User        *userView `json:"user"`
	AccessToken string    `json:"access_token"`
}

type userView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Register handles account creation
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		var verr validation.ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(w, http.StatusBadRequest, verr.Message, "", nil)
		case errors.Is(err, service.ErrEmailTaken):
			respondError(w, http.StatusConflict, "An account with this email already exists", "", nil)
		default:
			respondError(w, http.StatusInternalServerError, "Registration failed", "Registration error", err)
		}
		return
	}

	// Auto-login after registration
	_, session, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Registration succeeded but login failed", "Post-registration login error", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, "session_id", session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusCreated, authResponse{
		User:        &userView{ID: user.ID, Email: user.Email},
		AccessToken: token,
	})
}

// Login handles credential sign-in
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	user, session, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Login failed", "Login error", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, "session_id", session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusOK, authResponse{
		User:        &userView{ID: user.ID, Email: user.Email},
		AccessToken: token,
	})
}

// Logout ends the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			respondError(w, http.StatusInternalServerError, "Logout failed", "Logout error", err)
			return
		}
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, "session_id"))
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated user with their profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	profile, err := h.profileService.GetProfile(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load profile", "Profile lookup error", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":    userView{ID: user.ID, Email: user.Email},
		"profile": profile,
	})
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type passwordResetConfirm struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// RequestPasswordReset starts the password reset flow. The response is the
// same whether or not the email exists.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	if err := h.authService.RequestPasswordReset(req.Email); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to process request", "Password reset request error", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "If an account exists for that email, a reset link has been sent",
	})
}

// ResetPassword completes the password reset flow
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordResetConfirm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		var verr validation.ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(w, http.StatusBadRequest, verr.Message, "", nil)
		case errors.Is(err, service.ErrInvalidToken):
			respondError(w, http.StatusBadRequest, "Invalid or expired reset token", "", nil)
		default:
			respondError(w, http.StatusInternalServerError, "Failed to reset password", "Password reset error", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}
