package models

import "time"

// User represents a registered educator account. The password hash and the
// stored Gemini API key are internal-only and never serialized.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Institution  string    `json:"institution"`
	Department   string    `json:"department"`
	Newsletter   bool      `json:"newsletter"`
	PasswordHash string    `json:"-"`
	APIKey       string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SignupRequest represents a new account registration
type SignupRequest struct {
	FirstName   string `json:"firstName" binding:"required,max=100"`
	LastName    string `json:"lastName" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email,max=255"`
	Institution string `json:"institution" binding:"max=255"`
	Department  string `json:"department" binding:"max=255"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	Newsletter  bool   `json:"newsletter"`
}

// LoginRequest represents a credentials login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// APIKeyRequest carries a candidate Gemini API key to validate and store
type APIKeyRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

// UserProfile is the public projection of a User
type UserProfile struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Institution string    `json:"institution"`
	Department  string    `json:"department"`
	Newsletter  bool      `json:"newsletter"`
	HasAPIKey   bool      `json:"hasApiKey"`
	CreatedAt   time.Time `json:"created_at"`
}

// Profile returns the public view of the user. HasAPIKey signals key
// presence without ever exposing the key itself.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Institution: u.Institution,
		Department:  u.Department,
		Newsletter:  u.Newsletter,
		HasAPIKey:   u.APIKey != "",
		CreatedAt:   u.CreatedAt,
	}
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *UserProfile `json:"user"`
}
