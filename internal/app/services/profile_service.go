package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/drafts"
	"github.com/greeklink/greeklink/internal/pkg/logger"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ProfileEditStore extends the lookup surface with column updates
type ProfileEditStore interface {
	ProfileStore
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	TouchLastActive(ctx context.Context, id int64, at time.Time) error
}

// AlumniSyncStore is the alumni-record surface the profile service uses
// to keep the parallel directory entry current.
type AlumniSyncStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Alumni, error)
	UpsertByUserID(ctx context.Context, a *models.Alumni) error
}

// DraftStore keeps autosaved form drafts
type DraftStore interface {
	Save(ctx context.Context, draft *dto.ProfileDraft) error
	Get(ctx context.Context, profileID int64) (*dto.ProfileDraft, error)
	Delete(ctx context.Context, profileID int64) error
}

// ProfileService manages member profiles, their alumni-record sync and
// autosaved drafts.
type ProfileService struct {
	profileRepo ProfileEditStore
	alumniRepo  AlumniSyncStore
	draftStore  DraftStore
}

// NewProfileService creates a new ProfileService. draftStore may be nil
// when Redis is disabled.
func NewProfileService(profileRepo ProfileEditStore, alumniRepo AlumniSyncStore, draftStore DraftStore) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		alumniRepo:  alumniRepo,
		draftStore:  draftStore,
	}
}

// GetProfile retrieves a member profile by id
func (s *ProfileService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

// UpdateProfile validates and applies a partial profile update, then
// syncs the parallel alumni record when requested.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	fields := make(map[string]interface{})

	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return nil, apperrors.NewBadRequestError("firstName cannot be empty")
		}
		fields["first_name"] = name
	}
	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if name == "" {
			return nil, apperrors.NewBadRequestError("lastName cannot be empty")
		}
		fields["last_name"] = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailPattern.MatchString(email) {
			return nil, apperrors.NewBadRequestError("invalid email address")
		}
		fields["email"] = email
	}
	if req.ChapterID != nil {
		fields["chapter_id"] = *req.ChapterID
	}
	if req.GraduationYear != nil {
		if *req.GraduationYear < 1900 || *req.GraduationYear > time.Now().Year()+10 {
			return nil, apperrors.NewBadRequestError("graduationYear is out of range")
		}
		fields["graduation_year"] = *req.GraduationYear
	}
	if req.Major != nil {
		fields["major"] = strings.TrimSpace(*req.Major)
	}
	if req.GPA != nil {
		if *req.GPA < 0 || *req.GPA > 4.0 {
			return nil, apperrors.NewBadRequestError("gpa must be between 0.0 and 4.0")
		}
		fields["gpa"] = *req.GPA
	}
	if req.LinkedInURL != nil {
		link := strings.TrimSpace(*req.LinkedInURL)
		if link != "" {
			if err := validateLinkedInURL(link); err != nil {
				return nil, err
			}
		}
		fields["linkedin_url"] = link
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone != "" {
			formatted, err := FormatPhone(phone)
			if err != nil {
				return nil, err
			}
			phone = formatted
		}
		fields["phone"] = phone
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = strings.TrimSpace(*req.AvatarURL)
	}

	if err := s.profileRepo.Update(ctx, userID, fields); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.SyncAlumni {
		if err := s.syncAlumniRecord(ctx, profile, req); err != nil {
			logger.Error().Err(err).Int64("userId", userID).Msg("Failed to sync alumni record")
			return nil, err
		}
	}

	// A successful save discards the stale autosaved draft
	if s.draftStore != nil {
		if err := s.draftStore.Delete(ctx, userID); err != nil {
			logger.Warn().Err(err).Int64("userId", userID).Msg("Failed to discard profile draft")
		}
	}

	return profile, nil
}

// syncAlumniRecord upserts the member's directory entry from the saved
// profile. Unset directory fields fall back to "Not Specified" so the
// record renders without holes.
func (s *ProfileService) syncAlumniRecord(ctx context.Context, profile *models.Profile, req *dto.UpdateProfileRequest) error {
	record, err := s.alumniRepo.GetByUserID(ctx, profile.ID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAlumnusNotFound) {
			return err
		}
		record = &models.Alumni{UserID: &profile.ID}
	}

	record.FirstName = profile.FirstName
	record.LastName = profile.LastName
	record.Email = profile.Email
	record.Phone = profile.Phone
	record.AvatarURL = profile.AvatarURL
	if profile.Chapter != nil {
		record.ChapterName = profile.Chapter.Name
		record.ChapterID = profile.ChapterID
	}
	if profile.GraduationYear != nil {
		record.GraduationYear = *profile.GraduationYear
	}

	if req.Company != nil {
		record.Company = strings.TrimSpace(*req.Company)
	}
	if req.JobTitle != nil {
		record.JobTitle = strings.TrimSpace(*req.JobTitle)
	}
	if req.Industry != nil {
		record.Industry = strings.TrimSpace(*req.Industry)
	}
	if req.Location != nil {
		record.Location = strings.TrimSpace(*req.Location)
	}
	if req.Description != nil {
		record.Description = strings.TrimSpace(*req.Description)
	}
	if req.Tags != nil {
		record.Tags = *req.Tags
	}
	if req.ActivelyHiring != nil {
		record.ActivelyHiring = *req.ActivelyHiring
	}
	if req.ShowEmail != nil {
		record.ShowEmail = *req.ShowEmail
	}
	if req.ShowPhone != nil {
		record.ShowPhone = *req.ShowPhone
	}

	if record.Company == "" {
		record.Company = "Not Specified"
	}
	if record.JobTitle == "" {
		record.JobTitle = "Not Specified"
	}
	if record.Industry == "" {
		record.Industry = "Not Specified"
	}
	if record.Location == "" {
		record.Location = "Not Specified"
	}

	return s.alumniRepo.UpsertByUserID(ctx, record)
}

// TouchActivity stamps the member's last-active timestamp
func (s *ProfileService) TouchActivity(ctx context.Context, userID int64, at time.Time) error {
	return s.profileRepo.TouchLastActive(ctx, userID, at)
}

// SaveDraft autosaves in-progress form state with a TTL
func (s *ProfileService) SaveDraft(ctx context.Context, userID int64, payload map[string]interface{}) (*dto.ProfileDraft, error) {
	if s.draftStore == nil {
		return nil, apperrors.NewBadRequestError("draft autosave is not enabled")
	}

	draft := &dto.ProfileDraft{
		Payload:   payload,
		SavedAt:   time.Now(),
		ProfileID: userID,
	}
	if err := s.draftStore.Save(ctx, draft); err != nil {
		return nil, err
	}

	return draft, nil
}

// GetDraft retrieves the member's autosaved draft
func (s *ProfileService) GetDraft(ctx context.Context, userID int64) (*dto.ProfileDraft, error) {
	if s.draftStore == nil {
		return nil, drafts.ErrDraftNotFound
	}
	return s.draftStore.Get(ctx, userID)
}

// DiscardDraft deletes the member's autosaved draft
func (s *ProfileService) DiscardDraft(ctx context.Context, userID int64) error {
	if s.draftStore == nil {
		return nil
	}
	return s.draftStore.Delete(ctx, userID)
}

// FormatPhone normalizes a US phone number to "(XXX) XXX-XXXX". A
// leading country code 1 is stripped; anything else is rejected.
func FormatPhone(raw string) (string, error) {
	digits := make([]rune, 0, len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}

	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", apperrors.NewBadRequestError("phone must be a 10-digit US number")
	}

	d := string(digits)
	return fmt.Sprintf("(%s) %s-%s", d[0:3], d[3:6], d[6:10]), nil
}

func validateLinkedInURL(link string) error {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return apperrors.NewBadRequestError("linkedinUrl must be a valid http(s) URL")
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "linkedin.com" && !strings.HasSuffix(host, ".linkedin.com") {
		return apperrors.NewBadRequestError("linkedinUrl must point to linkedin.com")
	}
	return nil
}
