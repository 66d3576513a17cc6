package dto

import (
	"time"

	"github.com/greeklink/greeklink/internal/app/models"
)

// CreateInvitationRequest represents a request to invite a new member
type CreateInvitationRequest struct {
	Email     string `json:"email" binding:"required,email"`
	ChapterID *int64 `json:"chapterId,omitempty"`
	Role      string `json:"role,omitempty" binding:"omitempty,oneof=MEMBER ADMIN"`
	// ExpiresInDays defaults to 14 when zero
	ExpiresInDays int `json:"expiresInDays,omitempty" binding:"omitempty,min=1,max=90"`
}

// InvitationResponse represents an invitation in API responses
type InvitationResponse struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	ChapterID  *int64     `json:"chapterId,omitempty"`
	Role       string     `json:"role"`
	InvitedBy  int64      `json:"invitedBy"`
	Status     string     `json:"status"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// FromInvitation converts an invitation model to its response DTO
func FromInvitation(inv *models.Invitation, now time.Time) InvitationResponse {
	status := "pending"
	switch {
	case inv.AcceptedAt != nil:
		status = "accepted"
	case inv.RevokedAt != nil:
		status = "revoked"
	case !now.Before(inv.ExpiresAt):
		status = "expired"
	}

	return InvitationResponse{
		ID:         inv.ID,
		Email:      inv.Email,
		ChapterID:  inv.ChapterID,
		Role:       string(inv.Role),
		InvitedBy:  inv.InvitedBy,
		Status:     status,
		ExpiresAt:  inv.ExpiresAt,
		AcceptedAt: inv.AcceptedAt,
		CreatedAt:  inv.CreatedAt,
	}
}
