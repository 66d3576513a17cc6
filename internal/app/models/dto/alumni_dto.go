package dto

import (
	"time"

	"github.com/greeklink/greeklink/internal/app/models"
)

// GraduationYearFilter is the parsed form of the graduationYear query
// parameter. "All Years" disables the filter and "older" selects
// everything at or before the cutoff class of 2019.
type GraduationYearFilter struct {
	Disabled bool
	Older    bool
	Year     int
}

// OlderCutoffYear is the newest class included by the "older" filter value
const OlderCutoffYear = 2019

// AlumniDirectoryQuery carries the parsed filter parameters for the
// alumni directory listing.
type AlumniDirectoryQuery struct {
	Page           int
	Limit          int
	Search         string
	Industry       string
	Chapter        models.ChapterRef
	Location       string
	GraduationYear GraduationYearFilter
	ActivelyHiring *bool
	State          string
	ActivityStatus models.ActivityStatus
	ShowActiveOnly bool
}

// MutualConnectionPreview is a display projection of a shared connection
type MutualConnectionPreview struct {
	UserID    int64  `json:"userId"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// AlumniProjection is the privacy-filtered view of an alumni record.
// Email and phone are nil unless the viewer is the owner, an admin, or
// the respective visibility flag permits public access.
type AlumniProjection struct {
	ID                int64                     `json:"id"`
	FirstName         string                    `json:"firstName"`
	LastName          string                    `json:"lastName"`
	FullName          string                    `json:"fullName"`
	Chapter           string                    `json:"chapter"`
	GraduationYear    int                       `json:"graduationYear"`
	Company           string                    `json:"company,omitempty"`
	JobTitle          string                    `json:"jobTitle,omitempty"`
	Industry          string                    `json:"industry,omitempty"`
	ActivelyHiring    bool                      `json:"activelyHiring"`
	Email             *string                   `json:"email"`
	Phone             *string                   `json:"phone"`
	Location          string                    `json:"location,omitempty"`
	Description       string                    `json:"description,omitempty"`
	Tags              []string                  `json:"tags,omitempty"`
	AvatarURL         string                    `json:"avatarUrl,omitempty"`
	Verified          bool                      `json:"verified"`
	HasProfile        bool                      `json:"hasProfile"`
	ActivityStatus    models.ActivityStatus     `json:"activityStatus"`
	LastActiveAt      *time.Time                `json:"lastActiveAt,omitempty"`
	MutualConnections []MutualConnectionPreview `json:"mutualConnections"`
}

// DirectoryPagination is the pagination metadata block of the alumni
// listing response.
type DirectoryPagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// AlumniDirectoryResponse is the wire shape of GET /api/alumni
type AlumniDirectoryResponse struct {
	Alumni     []AlumniProjection  `json:"alumni"`
	Pagination DirectoryPagination `json:"pagination"`
	Message    string              `json:"message"`
}

// DirectoryErrorResponse is the wire shape of alumni listing failures
type DirectoryErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Code    string `json:"code,omitempty"`
}
