package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/auth"
	"github.com/greeklink/greeklink/internal/pkg/logger"
)

// ProfileStore is the persistence surface the auth service needs
type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// InvitationStore is the invitation lookup surface used during registration
type InvitationStore interface {
	GetByToken(ctx context.Context, token string) (*models.Invitation, error)
	MarkAccepted(ctx context.Context, id int64, at time.Time) error
}

// TokenStore tracks issued refresh tokens
type TokenStore interface {
	Create(ctx context.Context, t *models.RefreshToken) (int64, error)
	GetByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id int64, at time.Time) error
	RevokeAllForUser(ctx context.Context, userID int64, at time.Time) error
}

// WelcomeMailer sends the post-registration greeting
type WelcomeMailer interface {
	SendWelcome(to, firstName string) error
}

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	profileRepo    ProfileStore
	invitationRepo InvitationStore
	tokenRepo      TokenStore
	jwtService     *auth.JWTService
	mailer         WelcomeMailer
}

// NewAuthService creates a new AuthService
func NewAuthService(profileRepo ProfileStore, invitationRepo InvitationStore, tokenRepo TokenStore, jwtService *auth.JWTService, mailer WelcomeMailer) *AuthService {
	return &AuthService{
		profileRepo:    profileRepo,
		invitationRepo: invitationRepo,
		tokenRepo:      tokenRepo,
		jwtService:     jwtService,
		mailer:         mailer,
	}
}

// Register redeems an invitation token and creates the member account.
// The invitation fixes the chapter and role; the email must match the
// invited address.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	inv, err := s.invitationRepo.GetByToken(ctx, req.InvitationToken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch {
	case inv.RevokedAt != nil:
		return nil, apperrors.ErrInvitationRevoked
	case inv.AcceptedAt != nil:
		return nil, apperrors.ErrInvitationUsed
	case !now.Before(inv.ExpiresAt):
		return nil, apperrors.ErrInvitationExpired
	}

	if !strings.EqualFold(strings.TrimSpace(req.Email), inv.Email) {
		return nil, apperrors.NewBadRequestError("email does not match the invitation")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hashed,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      inv.Role,
		ChapterID: inv.ChapterID,
		IsActive:  true,
	}

	id, err := s.profileRepo.Create(ctx, profile)
	if err != nil {
		return nil, err
	}

	if err := s.invitationRepo.MarkAccepted(ctx, inv.ID, now); err != nil {
		logger.Error().Err(err).Int64("invitationId", inv.ID).Msg("Failed to mark invitation accepted")
	}

	created, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcome(created.Email, created.FirstName); err != nil {
			logger.Warn().Err(err).Str("email", created.Email).Msg("Failed to send welcome email")
		}
	}

	tokens, err := s.issueTokens(ctx, created)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{User: dto.FromProfile(created), Tokens: *tokens}, nil
}

// Login verifies credentials and issues a token pair. Successful login
// stamps both last_login_at and last_active_at.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(profile.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !profile.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	now := time.Now()
	if err := s.profileRepo.UpdateLastLogin(ctx, profile.ID, now); err != nil {
		logger.Warn().Err(err).Int64("userId", profile.ID).Msg("Failed to stamp last login")
	}
	profile.LastLoginAt = &now
	profile.LastActiveAt = &now

	tokens, err := s.issueTokens(ctx, profile)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{User: dto.FromProfile(profile), Tokens: *tokens}, nil
}

// RefreshToken exchanges a valid refresh token for a new pair. The old
// token is revoked, so each refresh token is single-use.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}

	now := time.Now()
	if stored.RevokedAt != nil {
		return nil, apperrors.ErrTokenRevoked
	}
	if !stored.Valid(now) {
		return nil, apperrors.ErrTokenExpired
	}

	profile, err := s.profileRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !profile.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.Revoke(ctx, stored.ID, now); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, profile)
}

// Logout revokes every outstanding refresh token of the member
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.RevokeAllForUser(ctx, userID, time.Now())
}

func (s *AuthService) issueTokens(ctx context.Context, profile *models.Profile) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(
		profile.ID, profile.Email, string(profile.Role),
	)
	if err != nil {
		return nil, err
	}

	_, err = s.tokenRepo.Create(ctx, &models.RefreshToken{
		UserID:    profile.ID,
		Token:     refreshToken,
		ExpiresAt: s.jwtService.GetRefreshTokenExpiry(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
