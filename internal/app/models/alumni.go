package models

import "time"

// ActivityStatus buckets an alumnus by how recently their linked profile
// was active: <1h hot, <24h warm, everything else (including no linked
// profile) cold.
type ActivityStatus string

const (
	ActivityStatusHot  ActivityStatus = "hot"
	ActivityStatusWarm ActivityStatus = "warm"
	ActivityStatusCold ActivityStatus = "cold"
)

// ActivityStatusOf derives the activity bucket from a last-active timestamp.
func ActivityStatusOf(lastActiveAt *time.Time, now time.Time) ActivityStatus {
	if lastActiveAt == nil {
		return ActivityStatusCold
	}
	since := now.Sub(*lastActiveAt)
	switch {
	case since < time.Hour:
		return ActivityStatusHot
	case since < 24*time.Hour:
		return ActivityStatusWarm
	default:
		return ActivityStatusCold
	}
}

// Alumni defines the alumni directory record based on the 'alumni' table.
// Contact fields carry independent visibility flags; the redacted
// projection is computed per viewer, never stored.
type Alumni struct {
	ID             int64      `json:"id" db:"id"`
	UserID         *int64     `json:"userId,omitempty" db:"user_id"` // Linked profile, nullable
	FirstName      string     `json:"firstName" db:"first_name"`
	LastName       string     `json:"lastName" db:"last_name"`
	ChapterName    string     `json:"chapterName" db:"chapter_name"`
	ChapterID      *int64     `json:"chapterId,omitempty" db:"chapter_id"`
	GraduationYear int        `json:"graduationYear" db:"graduation_year"`
	Company        string     `json:"company,omitempty" db:"company"`
	JobTitle       string     `json:"jobTitle,omitempty" db:"job_title"`
	Industry       string     `json:"industry,omitempty" db:"industry"`
	ActivelyHiring bool       `json:"activelyHiring" db:"actively_hiring"`
	Email          string     `json:"email,omitempty" db:"email"`
	ShowEmail      bool       `json:"showEmail" db:"show_email"`
	Phone          string     `json:"phone,omitempty" db:"phone"`
	ShowPhone      bool       `json:"showPhone" db:"show_phone"`
	Location       string     `json:"location,omitempty" db:"location"`
	Description    string     `json:"description,omitempty" db:"description"`
	Tags           []string   `json:"tags,omitempty" db:"tags"`
	AvatarURL      string     `json:"avatarUrl,omitempty" db:"avatar_url"`
	Verified       bool       `json:"verified" db:"verified"`
	LastContactAt  *time.Time `json:"lastContactAt,omitempty" db:"last_contact_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`

	// Activity timestamps joined from the linked profile
	LastActiveAt *time.Time `json:"lastActiveAt,omitempty"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// HasProfile reports whether the record is linked to a member account
func (a *Alumni) HasProfile() bool {
	return a.UserID != nil
}

// FullName returns the alumnus display name
func (a *Alumni) FullName() string {
	if a.FirstName == "" {
		return a.LastName
	}
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
