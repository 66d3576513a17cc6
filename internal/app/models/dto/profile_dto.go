package dto

import (
	"time"

	"github.com/greeklink/greeklink/internal/app/models"
)

// ProfileResponse represents a member profile in API responses
type ProfileResponse struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Role           string     `json:"role"`
	ChapterID      *int64     `json:"chapterId,omitempty"`
	ChapterName    string     `json:"chapterName,omitempty"`
	GraduationYear *int       `json:"graduationYear,omitempty"`
	Major          string     `json:"major,omitempty"`
	GPA            *float64   `json:"gpa,omitempty"`
	LinkedInURL    string     `json:"linkedinUrl,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	AvatarURL      string     `json:"avatarUrl,omitempty"`
	IsActive       bool       `json:"isActive"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
	LastActiveAt   *time.Time `json:"lastActiveAt,omitempty"`
}

// FromProfile converts a profile model to its response DTO
func FromProfile(p *models.Profile) ProfileResponse {
	if p == nil {
		return ProfileResponse{}
	}

	resp := ProfileResponse{
		ID:             p.ID,
		Email:          p.Email,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Role:           string(p.Role),
		ChapterID:      p.ChapterID,
		GraduationYear: p.GraduationYear,
		Major:          p.Major,
		GPA:            p.GPA,
		LinkedInURL:    p.LinkedInURL,
		Phone:          p.Phone,
		AvatarURL:      p.AvatarURL,
		IsActive:       p.IsActive,
		LastLoginAt:    p.LastLoginAt,
		LastActiveAt:   p.LastActiveAt,
	}
	if p.Chapter != nil {
		resp.ChapterName = p.Chapter.Name
	}
	return resp
}

// UpdateProfileRequest represents a profile update. Optional fields use
// pointers so a cleared field can be told apart from an omitted one.
type UpdateProfileRequest struct {
	FirstName      *string  `json:"firstName,omitempty"`
	LastName       *string  `json:"lastName,omitempty"`
	Email          *string  `json:"email,omitempty"`
	ChapterID      *int64   `json:"chapterId,omitempty"`
	GraduationYear *int     `json:"graduationYear,omitempty"`
	Major          *string  `json:"major,omitempty"`
	GPA            *float64 `json:"gpa,omitempty"`
	LinkedInURL    *string  `json:"linkedinUrl,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	AvatarURL      *string  `json:"avatarUrl,omitempty"`

	// Alumni directory fields, upserted into the parallel alumni record
	Company        *string   `json:"company,omitempty"`
	JobTitle       *string   `json:"jobTitle,omitempty"`
	Industry       *string   `json:"industry,omitempty"`
	Location       *string   `json:"location,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
	ActivelyHiring *bool     `json:"activelyHiring,omitempty"`
	ShowEmail      *bool     `json:"showEmail,omitempty"`
	ShowPhone      *bool     `json:"showPhone,omitempty"`

	// SyncAlumni requests the parallel alumni record upsert on save
	SyncAlumni bool `json:"syncAlumni,omitempty"`
}

// ProfileDraft is the autosaved, session-convenience form state. It is
// stored verbatim with a TTL and carries no durability guarantee.
type ProfileDraft struct {
	Payload   map[string]interface{} `json:"payload"`
	SavedAt   time.Time              `json:"savedAt"`
	ProfileID int64                  `json:"profileId"`
}
