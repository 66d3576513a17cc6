package models

import (
	"time"
)

// Profile defines the member account model based on the 'profiles' table
type Profile struct {
	ID             int64      `json:"id" db:"id" example:"1"`
	Email          string     `json:"email" db:"email" example:"member@greeklink.app"`
	Password       string     `json:"-" db:"password"`
	FirstName      string     `json:"firstName" db:"first_name" example:"John"`
	LastName       string     `json:"lastName" db:"last_name" example:"Doe"`
	Role           Role       `json:"role" db:"role" example:"MEMBER"`
	ChapterID      *int64     `json:"chapterId,omitempty" db:"chapter_id"`
	GraduationYear *int       `json:"graduationYear,omitempty" db:"graduation_year"`
	Major          string     `json:"major,omitempty" db:"major"`
	GPA            *float64   `json:"gpa,omitempty" db:"gpa"`
	LinkedInURL    string     `json:"linkedinUrl,omitempty" db:"linkedin_url"`
	Phone          string     `json:"phone,omitempty" db:"phone"`
	AvatarURL      string     `json:"avatarUrl,omitempty" db:"avatar_url"`
	IsActive       bool       `json:"isActive" db:"is_active"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	LastActiveAt   *time.Time `json:"lastActiveAt,omitempty" db:"last_active_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`

	Chapter *Chapter `json:"chapter,omitempty"` // Relation, no db tag
}

// ProfilePreview is the minimal display projection of a member, used
// when embedding members inside other resources.
type ProfilePreview struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// FullName returns the preview's display name
func (p ProfilePreview) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// FullName returns the member's display name
func (p *Profile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// IsAdmin reports whether the member has the admin role
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
