package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/pkg/helpers"
	"github.com/greeklink/greeklink/internal/pkg/logger"
)

// AlumniStore is the persistence surface the directory service needs
type AlumniStore interface {
	List(ctx context.Context, q *dto.AlumniDirectoryQuery) ([]*models.Alumni, error)
	GetByID(ctx context.Context, id int64) (*models.Alumni, error)
	Create(ctx context.Context, a *models.Alumni) (int64, error)
	Update(ctx context.Context, a *models.Alumni) error
	Delete(ctx context.Context, id int64) error
}

// ConnectionEdgeStore provides the batched connection lookups used for
// mutual-connection previews.
type ConnectionEdgeStore interface {
	GetAcceptedPartnerIDs(ctx context.Context, userID int64) ([]int64, error)
	GetAcceptedEdgesTouching(ctx context.Context, userIDs []int64) ([]*models.Connection, error)
}

// ProfilePreviewStore resolves member ids into display previews
type ProfilePreviewStore interface {
	GetPreviews(ctx context.Context, ids []int64) (map[int64]models.ProfilePreview, error)
}

// AlumniService implements the alumni directory listing pipeline:
// SQL-level filtering, in-memory filtering, privacy redaction,
// mutual-connection enrichment, ranking, then pagination.
type AlumniService struct {
	alumniRepo     AlumniStore
	connectionRepo ConnectionEdgeStore
	profileRepo    ProfilePreviewStore
	now            func() time.Time
}

// NewAlumniService creates a new AlumniService
func NewAlumniService(alumniRepo AlumniStore, connectionRepo ConnectionEdgeStore, profileRepo ProfilePreviewStore) *AlumniService {
	return &AlumniService{
		alumniRepo:     alumniRepo,
		connectionRepo: connectionRepo,
		profileRepo:    profileRepo,
		now:            time.Now,
	}
}

// MaxMutualPreviews caps how many shared connections are rendered per row
const MaxMutualPreviews = 3

// ListDirectory runs the full directory pipeline for one request. The
// whole filtered set is materialized and ranked before the requested
// page is sliced out, so ordering is stable across pages.
func (s *AlumniService) ListDirectory(ctx context.Context, query *dto.AlumniDirectoryQuery, viewer models.Viewer) (*dto.AlumniDirectoryResponse, error) {
	var (
		alumni     []*models.Alumni
		viewerConn []int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		alumni, err = s.alumniRepo.List(gctx, query)
		return err
	})
	g.Go(func() error {
		if viewer.Anonymous() {
			return nil
		}
		ids, err := s.connectionRepo.GetAcceptedPartnerIDs(gctx, viewer.UserID)
		if err != nil {
			// Mutual connections are an enrichment, not a gate. A failed
			// lookup degrades to an empty set instead of failing the page.
			logger.Warn().Err(err).Int64("viewerId", viewer.UserID).Msg("Failed to load viewer connections, degrading to empty")
			return nil
		}
		viewerConn = ids
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to list alumni: %w", err)
	}

	now := s.now()
	alumni = s.applyMemoryFilters(alumni, query, now)

	mutuals := s.resolveMutualConnections(ctx, alumni, viewer, viewerConn)

	projections := make([]dto.AlumniProjection, 0, len(alumni))
	for _, a := range alumni {
		projections = append(projections, s.project(a, viewer, mutuals, now))
	}

	RankAlumni(projections)

	return s.paginate(projections, query), nil
}

// applyMemoryFilters handles the filters that depend on joined profile
// state or fuzzy location matching and so stay out of the SQL query.
func (s *AlumniService) applyMemoryFilters(alumni []*models.Alumni, query *dto.AlumniDirectoryQuery, now time.Time) []*models.Alumni {
	filtered := alumni[:0]
	for _, a := range alumni {
		if query.State != "" && !helpers.LocationMatchesState(a.Location, query.State) {
			continue
		}
		status := models.ActivityStatusOf(a.LastActiveAt, now)
		if query.ActivityStatus != "" && status != query.ActivityStatus {
			continue
		}
		if query.ShowActiveOnly && status == models.ActivityStatusCold {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered
}

// resolveMutualConnections computes, per alumni record, the viewer's
// shared accepted connections. One batched edge query covers every
// candidate on the page, one preview query covers every shared member.
func (s *AlumniService) resolveMutualConnections(ctx context.Context, alumni []*models.Alumni, viewer models.Viewer, viewerConn []int64) map[int64][]dto.MutualConnectionPreview {
	mutuals := make(map[int64][]dto.MutualConnectionPreview)
	if viewer.Anonymous() || len(viewerConn) == 0 {
		return mutuals
	}

	viewerSet := make(map[int64]struct{}, len(viewerConn))
	for _, id := range viewerConn {
		viewerSet[id] = struct{}{}
	}

	candidateIDs := make([]int64, 0, len(alumni))
	for _, a := range alumni {
		if a.UserID != nil && *a.UserID != viewer.UserID {
			candidateIDs = append(candidateIDs, *a.UserID)
		}
	}
	if len(candidateIDs) == 0 {
		return mutuals
	}

	edges, err := s.connectionRepo.GetAcceptedEdgesTouching(ctx, candidateIDs)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load connection edges, degrading to empty")
		return mutuals
	}

	// candidate user id -> its accepted partners
	partners := make(map[int64][]int64)
	candidateSet := make(map[int64]struct{}, len(candidateIDs))
	for _, id := range candidateIDs {
		candidateSet[id] = struct{}{}
	}
	for _, e := range edges {
		if _, ok := candidateSet[e.RequesterID]; ok {
			partners[e.RequesterID] = append(partners[e.RequesterID], e.AddresseeID)
		}
		if _, ok := candidateSet[e.AddresseeID]; ok {
			partners[e.AddresseeID] = append(partners[e.AddresseeID], e.RequesterID)
		}
	}

	shared := make(map[int64][]int64, len(candidateIDs))
	previewIDs := make(map[int64]struct{})
	for candidate, ps := range partners {
		for _, p := range ps {
			if p == viewer.UserID {
				continue
			}
			if _, ok := viewerSet[p]; ok {
				shared[candidate] = append(shared[candidate], p)
				previewIDs[p] = struct{}{}
			}
		}
	}
	if len(previewIDs) == 0 {
		return mutuals
	}

	ids := make([]int64, 0, len(previewIDs))
	for id := range previewIDs {
		ids = append(ids, id)
	}
	previews, err := s.profileRepo.GetPreviews(ctx, ids)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load mutual connection previews, degrading to empty")
		return mutuals
	}

	for candidate, ps := range shared {
		for _, p := range ps {
			preview, ok := previews[p]
			if !ok {
				continue
			}
			mutuals[candidate] = append(mutuals[candidate], dto.MutualConnectionPreview{
				UserID:    preview.ID,
				FullName:  preview.FullName(),
				AvatarURL: preview.AvatarURL,
			})
			if len(mutuals[candidate]) >= MaxMutualPreviews {
				break
			}
		}
	}

	return mutuals
}

// project builds the viewer-specific wire view of one alumni record,
// applying the contact redaction rules.
func (s *AlumniService) project(a *models.Alumni, viewer models.Viewer, mutuals map[int64][]dto.MutualConnectionPreview, now time.Time) dto.AlumniProjection {
	p := dto.AlumniProjection{
		ID:                a.ID,
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		FullName:          a.FullName(),
		Chapter:           a.ChapterName,
		GraduationYear:    a.GraduationYear,
		Company:           a.Company,
		JobTitle:          a.JobTitle,
		Industry:          a.Industry,
		ActivelyHiring:    a.ActivelyHiring,
		Location:          a.Location,
		Description:       a.Description,
		Tags:              a.Tags,
		AvatarURL:         a.AvatarURL,
		Verified:          a.Verified,
		HasProfile:        a.HasProfile(),
		ActivityStatus:    models.ActivityStatusOf(a.LastActiveAt, now),
		LastActiveAt:      a.LastActiveAt,
		MutualConnections: []dto.MutualConnectionPreview{},
	}

	privileged := viewer.IsAdmin() || viewer.Owns(a)
	if a.Email != "" && (privileged || a.ShowEmail) {
		email := a.Email
		p.Email = &email
	}
	if a.Phone != "" && (privileged || a.ShowPhone) {
		phone := a.Phone
		p.Phone = &phone
	}

	if a.UserID != nil {
		if m, ok := mutuals[*a.UserID]; ok {
			p.MutualConnections = m
		}
	}

	return p
}

// paginate slices the ranked set into the requested page and builds the
// pagination metadata.
func (s *AlumniService) paginate(projections []dto.AlumniProjection, query *dto.AlumniDirectoryQuery) *dto.AlumniDirectoryResponse {
	total := len(projections)
	page, limit := helpers.NormalizePage(query.Page, query.Limit)

	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &dto.AlumniDirectoryResponse{
		Alumni: projections[start:end],
		Pagination: dto.DirectoryPagination{
			Page:        page,
			Limit:       limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
		Message: directoryMessage(total),
	}
}

func directoryMessage(total int) string {
	if total == 0 {
		return "No alumni found matching the given filters"
	}
	return fmt.Sprintf("Found %d %s", total, pluralAlumni(total))
}

func pluralAlumni(n int) string {
	if n == 1 {
		return "alumnus"
	}
	return "alumni"
}

// GetAlumnus retrieves a single redacted alumni record for a viewer
func (s *AlumniService) GetAlumnus(ctx context.Context, id int64, viewer models.Viewer) (*dto.AlumniProjection, error) {
	a, err := s.alumniRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := s.project(a, viewer, nil, s.now())
	return &p, nil
}

// CreateAlumnus inserts a directory record. Admin only, enforced by the
// route middleware.
func (s *AlumniService) CreateAlumnus(ctx context.Context, a *models.Alumni) (*models.Alumni, error) {
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)

	id, err := s.alumniRepo.Create(ctx, a)
	if err != nil {
		return nil, err
	}

	return s.alumniRepo.GetByID(ctx, id)
}

// UpdateAlumnus modifies a directory record
func (s *AlumniService) UpdateAlumnus(ctx context.Context, a *models.Alumni) (*models.Alumni, error) {
	if err := s.alumniRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.alumniRepo.GetByID(ctx, a.ID)
}

// DeleteAlumnus removes a directory record
func (s *AlumniService) DeleteAlumnus(ctx context.Context, id int64) error {
	return s.alumniRepo.Delete(ctx, id)
}
