package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/logger"
)

// DefaultInvitationDays is how long an invitation stays redeemable
const DefaultInvitationDays = 14

// InvitationAdminStore extends the redemption surface with management
// operations.
type InvitationAdminStore interface {
	InvitationStore
	Create(ctx context.Context, inv *models.Invitation) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Invitation, error)
	ListByInviter(ctx context.Context, invitedBy int64) ([]*models.Invitation, error)
	MarkRevoked(ctx context.Context, id int64, at time.Time) error
}

// InvitationMailer sends the invitation link
type InvitationMailer interface {
	SendInvitation(to, inviterName, inviteURL string) error
}

// InvitationService manages member invitations
type InvitationService struct {
	invitationRepo InvitationAdminStore
	profileRepo    ProfileStore
	mailer         InvitationMailer
	baseURL        string
}

// NewInvitationService creates a new InvitationService
func NewInvitationService(invitationRepo InvitationAdminStore, profileRepo ProfileStore, mailer InvitationMailer, baseURL string) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		profileRepo:    profileRepo,
		mailer:         mailer,
		baseURL:        strings.TrimRight(baseURL, "/"),
	}
}

// CreateInvitation issues an invitation token and mails the link. When
// the request carries no chapter the inviter's own chapter is used.
func (s *InvitationService) CreateInvitation(ctx context.Context, inviterID int64, req *dto.CreateInvitationRequest) (*models.Invitation, error) {
	inviter, err := s.profileRepo.GetByID(ctx, inviterID)
	if err != nil {
		return nil, err
	}

	role := models.RoleMember
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	chapterID := req.ChapterID
	if chapterID == nil {
		chapterID = inviter.ChapterID
	}

	days := req.ExpiresInDays
	if days <= 0 {
		days = DefaultInvitationDays
	}

	inv := &models.Invitation{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Token:     uuid.New().String(),
		ChapterID: chapterID,
		Role:      role,
		InvitedBy: inviterID,
		ExpiresAt: time.Now().AddDate(0, 0, days),
	}

	id, err := s.invitationRepo.Create(ctx, inv)
	if err != nil {
		return nil, err
	}
	inv.ID = id

	if s.mailer != nil {
		inviteURL := fmt.Sprintf("%s/register?invitation=%s", s.baseURL, inv.Token)
		if err := s.mailer.SendInvitation(inv.Email, inviter.FullName(), inviteURL); err != nil {
			logger.Warn().Err(err).Str("email", inv.Email).Msg("Failed to send invitation email")
		}
	}

	return inv, nil
}

// GetInvitationByToken retrieves an invitation for the public acceptance
// page, verifying it is still redeemable.
func (s *InvitationService) GetInvitationByToken(ctx context.Context, token string) (*models.Invitation, error) {
	inv, err := s.invitationRepo.GetByToken(ctx, token)
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

	return inv, nil
}

// ListInvitations retrieves the invitations a member has sent
func (s *InvitationService) ListInvitations(ctx context.Context, inviterID int64) ([]*models.Invitation, error) {
	return s.invitationRepo.ListByInviter(ctx, inviterID)
}

// RevokeInvitation withdraws a pending invitation. Only the inviter or
// an admin may revoke.
func (s *InvitationService) RevokeInvitation(ctx context.Context, id, userID int64, isAdmin bool) error {
	inv, err := s.invitationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if inv.InvitedBy != userID && !isAdmin {
		return apperrors.NewForbiddenError("cannot revoke an invitation you did not send")
	}
	if inv.AcceptedAt != nil {
		return apperrors.ErrInvitationUsed
	}
	if inv.RevokedAt != nil {
		return apperrors.ErrInvitationRevoked
	}

	return s.invitationRepo.MarkRevoked(ctx, id, time.Now())
}
