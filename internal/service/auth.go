package service

import (
	"dictioquiz/internal/repository"
)

// AuthService handles the optional bot password
type AuthService struct {
	userRepo    repository.UserRepository
	botPassword string
}

// NewAuthService creates a new auth service. An empty password disables the gate.
func NewAuthService(userRepo repository.UserRepository, botPassword string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		botPassword: botPassword,
	}
}

// Enabled reports whether a password is required
func (s *AuthService) Enabled() bool {
	return s.botPassword != ""
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return s.Enabled() && password == s.botPassword
}

// IsAuthorized checks if user is authorized; everyone is when the gate is off
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	if !s.Enabled() {
		return true, nil
	}
	return s.userRepo.IsAuthorized(userID)
}

// AuthorizeUser authorizes a user
func (s *AuthService) AuthorizeUser(userID int64) error {
	return s.userRepo.AuthorizeUser(userID)
}
