package services

import (
	"context"
	"strings"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/helpers"
)

// ChapterStore is the persistence surface for chapters
type ChapterStore interface {
	GetAll(ctx context.Context) ([]*models.Chapter, error)
	GetByID(ctx context.Context, id int64) (*models.Chapter, error)
	GetByName(ctx context.Context, name string) (*models.Chapter, error)
	Create(ctx context.Context, c *models.Chapter) (int64, error)
	Update(ctx context.Context, c *models.Chapter) error
	Delete(ctx context.Context, id int64) error
}

// ChapterService manages chapters
type ChapterService struct {
	chapterRepo ChapterStore
}

// NewChapterService creates a new ChapterService
func NewChapterService(chapterRepo ChapterStore) *ChapterService {
	return &ChapterService{chapterRepo: chapterRepo}
}

// ListChapters retrieves all chapters
func (s *ChapterService) ListChapters(ctx context.Context) ([]*models.Chapter, error) {
	return s.chapterRepo.GetAll(ctx)
}

// GetChapter retrieves one chapter
func (s *ChapterService) GetChapter(ctx context.Context, id int64) (*models.Chapter, error) {
	return s.chapterRepo.GetByID(ctx, id)
}

// CreateChapter creates a chapter. Admin only, enforced by middleware.
func (s *ChapterService) CreateChapter(ctx context.Context, req *dto.CreateChapterRequest) (*models.Chapter, error) {
	state := strings.ToUpper(strings.TrimSpace(req.State))
	if helpers.StateName(state) == "" {
		return nil, apperrors.NewBadRequestError("state must be a valid two-letter US state code")
	}

	c := &models.Chapter{
		Name:    strings.TrimSpace(req.Name),
		Letters: strings.TrimSpace(req.Letters),
		School:  strings.TrimSpace(req.School),
		State:   state,
	}

	id, err := s.chapterRepo.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	return s.chapterRepo.GetByID(ctx, id)
}

// UpdateChapter modifies a chapter. Admin only, enforced by middleware.
func (s *ChapterService) UpdateChapter(ctx context.Context, id int64, req *dto.UpdateChapterRequest) (*models.Chapter, error) {
	c, err := s.chapterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	state := strings.ToUpper(strings.TrimSpace(req.State))
	if helpers.StateName(state) == "" {
		return nil, apperrors.NewBadRequestError("state must be a valid two-letter US state code")
	}

	c.Name = strings.TrimSpace(req.Name)
	c.Letters = strings.TrimSpace(req.Letters)
	c.School = strings.TrimSpace(req.School)
	c.State = state

	if err := s.chapterRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return s.chapterRepo.GetByID(ctx, id)
}

// DeleteChapter removes a chapter that has no members. Admin only.
func (s *ChapterService) DeleteChapter(ctx context.Context, id int64) error {
	return s.chapterRepo.Delete(ctx, id)
}

// ResolveChapterRef turns a raw chapter filter value into an explicit
// reference. Purely numeric values are treated as ids, anything else as
// a name; "all" disables the filter.
func (s *ChapterService) ResolveChapterRef(value string) models.ChapterRef {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "all") {
		return models.ChapterRef{Kind: models.ChapterRefNone}
	}

	if id, ok := parseID(value); ok {
		return models.ChapterRef{Kind: models.ChapterRefByID, ID: id}
	}

	return models.ChapterRef{Kind: models.ChapterRefByName, Name: value}
}

func parseID(s string) (int64, bool) {
	var id int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		id = id*10 + int64(r-'0')
	}
	return id, id > 0
}
