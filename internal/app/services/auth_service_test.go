package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/auth"
)

// MockProfileStore is a mock implementation of ProfileStore.
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) Create(ctx context.Context, p *models.Profile) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileStore) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileStore) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileStore) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockInvitationStore is a mock implementation of InvitationStore.
type MockInvitationStore struct {
	mock.Mock
}

func (m *MockInvitationStore) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationStore) MarkAccepted(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStore.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Create(ctx context.Context, t *models.RefreshToken) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTokenStore) GetByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockTokenStore) Revoke(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockTokenStore) RevokeAllForUser(ctx context.Context, userID int64, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

// MockWelcomeMailer is a mock implementation of WelcomeMailer.
type MockWelcomeMailer struct {
	mock.Mock
}

func (m *MockWelcomeMailer) SendWelcome(to, firstName string) error {
	args := m.Called(to, firstName)
	return args.Error(0)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "greeklink.test",
	})
}

func newAuthFixture() (*AuthService, *MockProfileStore, *MockInvitationStore, *MockTokenStore, *MockWelcomeMailer) {
	profileStore := new(MockProfileStore)
	invitationStore := new(MockInvitationStore)
	tokenStore := new(MockTokenStore)
	mailer := new(MockWelcomeMailer)
	svc := NewAuthService(profileStore, invitationStore, tokenStore, testJWTService(), mailer)
	return svc, profileStore, invitationStore, tokenStore, mailer
}

func TestRegister_Success(t *testing.T) {
	svc, profileStore, invitationStore, tokenStore, mailer := newAuthFixture()
	ctx := context.Background()

	chapterID := int64(3)
	inv := &models.Invitation{
		ID:        10,
		Email:     "jane@example.com",
		Role:      models.RoleMember,
		ChapterID: &chapterID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	invitationStore.On("GetByToken", mock.Anything, "tok-1").Return(inv, nil)
	invitationStore.On("MarkAccepted", mock.Anything, int64(10), mock.Anything).Return(nil)
	profileStore.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.Email == "jane@example.com" &&
			p.Role == models.RoleMember &&
			p.ChapterID != nil && *p.ChapterID == 3 &&
			p.IsActive
	})).Return(int64(5), nil)
	profileStore.On("GetByID", mock.Anything, int64(5)).Return(&models.Profile{
		ID: 5, Email: "jane@example.com", FirstName: "Jane", LastName: "Doe",
		Role: models.RoleMember, IsActive: true,
	}, nil)
	mailer.On("SendWelcome", "jane@example.com", "Jane").Return(nil)
	tokenStore.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		InvitationToken: "tok-1",
		Email:           "Jane@Example.com",
		Password:        "secret1234",
		FirstName:       "Jane",
		LastName:        "Doe",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.User.ID)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Equal(t, "Bearer", resp.Tokens.TokenType)
	invitationStore.AssertExpectations(t)
}

func TestRegister_InvitationChecks(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	tests := []struct {
		name string
		inv  *models.Invitation
		want error
	}{
		{"revoked", &models.Invitation{Email: "jane@example.com", RevokedAt: &past, ExpiresAt: now.Add(time.Hour)}, apperrors.ErrInvitationRevoked},
		{"used", &models.Invitation{Email: "jane@example.com", AcceptedAt: &past, ExpiresAt: now.Add(time.Hour)}, apperrors.ErrInvitationUsed},
		{"expired", &models.Invitation{Email: "jane@example.com", ExpiresAt: past}, apperrors.ErrInvitationExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, invitationStore, _, _ := newAuthFixture()
			invitationStore.On("GetByToken", mock.Anything, "tok").Return(tt.inv, nil)

			_, err := svc.Register(context.Background(), &dto.RegisterRequest{
				InvitationToken: "tok",
				Email:           "jane@example.com",
				Password:        "secret1234",
				FirstName:       "Jane",
				LastName:        "Doe",
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegister_EmailMustMatchInvitation(t *testing.T) {
	svc, _, invitationStore, _, _ := newAuthFixture()
	invitationStore.On("GetByToken", mock.Anything, "tok").Return(&models.Invitation{
		Email:     "invited@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		InvitationToken: "tok",
		Email:           "someone-else@example.com",
		Password:        "secret1234",
		FirstName:       "Jane",
		LastName:        "Doe",
	})
	assert.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	svc, profileStore, _, tokenStore, _ := newAuthFixture()

	hashed, err := auth.HashPassword("secret1234")
	require.NoError(t, err)

	profileStore.On("GetByEmail", mock.Anything, "jane@example.com").Return(&models.Profile{
		ID: 5, Email: "jane@example.com", Password: hashed, IsActive: true,
	}, nil)
	profileStore.On("UpdateLastLogin", mock.Anything, int64(5), mock.Anything).Return(nil)
	tokenStore.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@example.com", Password: "secret1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotNil(t, resp.User.LastLoginAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, profileStore, _, _, _ := newAuthFixture()

	hashed, err := auth.HashPassword("secret1234")
	require.NoError(t, err)

	profileStore.On("GetByEmail", mock.Anything, "jane@example.com").Return(&models.Profile{
		ID: 5, Email: "jane@example.com", Password: hashed, IsActive: true,
	}, nil)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	svc, profileStore, _, _, _ := newAuthFixture()

	profileStore.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrProfileNotFound)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "whatever123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, profileStore, _, _, _ := newAuthFixture()

	hashed, err := auth.HashPassword("secret1234")
	require.NoError(t, err)

	profileStore.On("GetByEmail", mock.Anything, "jane@example.com").Return(&models.Profile{
		ID: 5, Email: "jane@example.com", Password: hashed, IsActive: false,
	}, nil)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@example.com", Password: "secret1234"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshToken_RotatesSingleUse(t *testing.T) {
	svc, profileStore, _, tokenStore, _ := newAuthFixture()

	stored := &models.RefreshToken{
		ID: 9, UserID: 5, Token: "old-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	tokenStore.On("GetByToken", mock.Anything, "old-token").Return(stored, nil)
	profileStore.On("GetByID", mock.Anything, int64(5)).Return(&models.Profile{ID: 5, IsActive: true}, nil)
	tokenStore.On("Revoke", mock.Anything, int64(9), mock.Anything).Return(nil)
	tokenStore.On("Create", mock.Anything, mock.Anything).Return(int64(10), nil)

	resp, err := svc.RefreshToken(context.Background(), "old-token")
	require.NoError(t, err)
	assert.NotEqual(t, "old-token", resp.RefreshToken)
	tokenStore.AssertCalled(t, "Revoke", mock.Anything, int64(9), mock.Anything)
}

func TestRefreshToken_RejectsRevokedAndExpired(t *testing.T) {
	now := time.Now()
	revokedAt := now.Add(-time.Minute)

	tests := []struct {
		name   string
		stored *models.RefreshToken
		want   error
	}{
		{"revoked", &models.RefreshToken{ID: 1, UserID: 5, RevokedAt: &revokedAt, ExpiresAt: now.Add(time.Hour)}, apperrors.ErrTokenRevoked},
		{"expired", &models.RefreshToken{ID: 2, UserID: 5, ExpiresAt: now.Add(-time.Hour)}, apperrors.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, tokenStore, _ := newAuthFixture()
			tokenStore.On("GetByToken", mock.Anything, "tok").Return(tt.stored, nil)

			_, err := svc.RefreshToken(context.Background(), "tok")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRefreshToken_UnknownTokenMapsToInvalid(t *testing.T) {
	svc, _, _, tokenStore, _ := newAuthFixture()
	tokenStore.On("GetByToken", mock.Anything, "ghost").Return(nil, apperrors.ErrTokenNotFound)

	_, err := svc.RefreshToken(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestLogout_RevokesAllTokens(t *testing.T) {
	svc, _, _, tokenStore, _ := newAuthFixture()
	tokenStore.On("RevokeAllForUser", mock.Anything, int64(5), mock.Anything).Return(nil)

	require.NoError(t, svc.Logout(context.Background(), 5))
	tokenStore.AssertExpectations(t)
}
