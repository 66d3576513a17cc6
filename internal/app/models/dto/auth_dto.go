package dto

// RegisterRequest represents a registration request redeemed with an
// invitation token.
type RegisterRequest struct {
	InvitationToken string `json:"invitationToken" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"member@greeklink.app"`
	Password string `json:"password" binding:"required" example:"secret1234"`
}

// RefreshTokenRequest represents a refresh token exchange request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn"`
	RefreshExpiresIn int    `json:"refreshExpiresIn"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// AuthResponse bundles the member and their tokens after register/login
type AuthResponse struct {
	User   ProfileResponse `json:"user"`
	Tokens TokenResponse   `json:"tokens"`
}
