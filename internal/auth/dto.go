package auth

import "github.com/rmartelo/freightops-backend/internal/users"

// LoginRequest carries the credentials presented at POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the minted token pair and the authenticated user.
type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in"`
	User         *users.UserView `json:"user"`
}

// RefreshRequest rotates a refresh token tied to a (possibly expired) access token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the replacement token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LogoutRequest revokes the session behind the provided access token.
type LogoutRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}
