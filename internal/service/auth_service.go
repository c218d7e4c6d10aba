package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"literacylab/internal/models"
	"literacylab/internal/repository"
	"literacylab/internal/security"
	"literacylab/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        *repository.UserRepository
	profileRepo     *repository.ProfileRepository
	emailService    *EmailService
	sessionDuration time.Duration
	jwtSecret       []byte
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository, emailService *EmailService, sessionDuration time.Duration, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		emailService:    emailService,
		sessionDuration: sessionDuration,
		jwtSecret:       []byte(jwtSecret),
	}
}

// Register creates a new user account with its empty profile
func (s *AuthService) Register(email, password, firstName, lastName string) (*models.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := s.profileRepo.CreateProfile(user.ID, firstName, lastName); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	// Welcome email is best-effort
	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(context.Background(), email, firstName); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}

	return user, nil
}

// Login verifies credentials and creates a session plus an API access token
func (s *AuthService) Login(email, password string) (*models.User, *models.Session, string, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || user.PasswordHash == "" || !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, "", ErrInvalidCredentials
	}

	session, token, err := s.startSession(user)
	if err != nil {
		return nil, nil, "", err
	}
	return user, session, token, nil
}

// LoginOAuth looks up or creates a user for an external identity and starts a session
func (s *AuthService) LoginOAuth(provider, subject, email, name string) (*models.User, *models.Session, string, error) {
	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to look up oauth user: %w", err)
	}

	if user == nil {
		// Link to an existing account with the same email if there is one
		user, err = s.userRepo.GetUserByEmail(email)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to look up user by email: %w", err)
		}
	}

	if user == nil {
		user, err = s.userRepo.CreateOAuthUser(email, provider, subject)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to create oauth user: %w", err)
		}
		if _, err := s.profileRepo.CreateProfile(user.ID, name, ""); err != nil {
			return nil, nil, "", fmt.Errorf("failed to create profile: %w", err)
		}
	}

	session, token, err := s.startSession(user)
	if err != nil {
		return nil, nil, "", err
	}
	return user, session, token, nil
}

func (s *AuthService) startSession(user *models.User) (*models.Session, string, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.userRepo.CreateSession(sessionID, user.ID, expiresAt)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.issueAccessToken(user.ID, expiresAt)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue access token: %w", err)
	}

	return session, token, nil
}

// issueAccessToken signs a JWT the client can present as a bearer token
func (s *AuthService) issueAccessToken(userID string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "literacylab",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateAccessToken verifies a bearer token and returns its user
func (s *AuthService) ValidateAccessToken(tokenString string) (*models.User, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	claims := &jwt.RegisteredClaims{}

	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// ValidateSession verifies a session cookie value and returns its user
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.IsExpired() {
		_ = s.userRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}
	return user, nil
}

// Logout removes a session
func (s *AuthService) Logout(sessionID string) error {
	return s.userRepo.DeleteSession(sessionID)
}

// CleanupExpiredSessions removes all expired sessions
func (s *AuthService) CleanupExpiredSessions() error {
	return s.userRepo.DeleteExpiredSessions()
}

// RequestPasswordReset creates a reset token and emails it to the user.
// It reports success even for unknown emails so addresses cannot be probed.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.userRepo.CreatePasswordResetToken(token, user.ID, time.Now().Add(1*time.Hour)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if s.emailService != nil {
		if err := s.emailService.SendPasswordResetEmail(context.Background(), email, token); err != nil {
			log.Printf("Failed to send password reset email to %s: %v", email, err)
		}
	}
	return nil
}

// ResetPassword sets a new password from a valid reset token
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	resetToken, err := s.userRepo.GetPasswordResetToken(token)
	if err != nil {
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	if resetToken == nil || resetToken.Used || resetToken.IsExpired() {
		return ErrInvalidToken
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(resetToken.UserID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return s.userRepo.MarkPasswordResetTokenUsed(token)
}
