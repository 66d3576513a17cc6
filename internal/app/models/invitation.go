package models

import "time"

// Invitation represents an invitation sent to a prospective member
type Invitation struct {
	ID         int64      `json:"id" db:"id"`
	Email      string     `json:"email" db:"email"`
	Token      string     `json:"-" db:"token"`
	ChapterID  *int64     `json:"chapterId,omitempty" db:"chapter_id"`
	Role       Role       `json:"role" db:"role"`
	InvitedBy  int64      `json:"invitedBy" db:"invited_by"`
	ExpiresAt  time.Time  `json:"expiresAt" db:"expires_at"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty" db:"accepted_at"`
	RevokedAt  *time.Time `json:"revokedAt,omitempty" db:"revoked_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}

// Usable reports whether the invitation can still be redeemed
func (i *Invitation) Usable(now time.Time) bool {
	return i.AcceptedAt == nil && i.RevokedAt == nil && now.Before(i.ExpiresAt)
}
