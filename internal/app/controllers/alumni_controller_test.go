package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/app/services"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
)

type stubAlumniStore struct {
	listFn func(ctx context.Context, q *dto.AlumniDirectoryQuery) ([]*models.Alumni, error)
}

func (s *stubAlumniStore) List(ctx context.Context, q *dto.AlumniDirectoryQuery) ([]*models.Alumni, error) {
	return s.listFn(ctx, q)
}

func (s *stubAlumniStore) GetByID(ctx context.Context, id int64) (*models.Alumni, error) {
	return nil, apperrors.ErrAlumnusNotFound
}

func (s *stubAlumniStore) Create(ctx context.Context, a *models.Alumni) (int64, error) {
	return 0, nil
}

func (s *stubAlumniStore) Update(ctx context.Context, a *models.Alumni) error { return nil }

func (s *stubAlumniStore) Delete(ctx context.Context, id int64) error { return nil }

type stubEdgeStore struct{}

func (s *stubEdgeStore) GetAcceptedPartnerIDs(ctx context.Context, userID int64) ([]int64, error) {
	return nil, nil
}

func (s *stubEdgeStore) GetAcceptedEdgesTouching(ctx context.Context, userIDs []int64) ([]*models.Connection, error) {
	return nil, nil
}

type stubPreviewStore struct{}

func (s *stubPreviewStore) GetPreviews(ctx context.Context, ids []int64) (map[int64]models.ProfilePreview, error) {
	return map[int64]models.ProfilePreview{}, nil
}

func newDirectoryRouter(listFn func(ctx context.Context, q *dto.AlumniDirectoryQuery) ([]*models.Alumni, error)) *gin.Engine {
	gin.SetMode(gin.TestMode)

	alumniService := services.NewAlumniService(&stubAlumniStore{listFn: listFn}, &stubEdgeStore{}, &stubPreviewStore{})
	chapterService := services.NewChapterService(nil)
	controller := NewAlumniController(alumniService, chapterService)

	router := gin.New()
	router.GET("/api/alumni", controller.ListAlumni)
	return router
}

func TestListAlumni_WireShape(t *testing.T) {
	router := newDirectoryRouter(func(ctx context.Context, q *dto.AlumniDirectoryQuery) ([]*models.Alumni, error) {
		return []*models.Alumni{
			{ID: 1, FirstName: "Jane", LastName: "Doe", ChapterName: "Alpha", GraduationYear: 2015},
		}, nil
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/alumni", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "alumni")
	assert.Contains(t, body, "pagination")
	assert.Contains(t, body, "message")

	var pagination map[string]interface{}
	require.NoError(t, json.Unmarshal(body["pagination"], &pagination))
	for _, key := range []string{"page", "limit", "total", "totalPages", "hasNextPage", "hasPrevPage"} {
		assert.Contains(t, pagination, key)
	}

	var alumni []map[string]interface{}
	require.NoError(t, json.Unmarshal(body["alumni"], &alumni))
	require.Len(t, alumni, 1)
	assert.Equal(t, "Jane Doe", alumni[0]["fullName"])
	// Redacted contact fields are present but null
	assert.Contains(t, alumni[0], "email")
	assert.Nil(t, alumni[0]["email"])
	assert.Contains(t, alumni[0], "mutualConnections")

	var resp dto.AlumniDirectoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Found 1 alumnus", resp.Message)
}

func TestListAlumni_FilterParsing(t *testing.T) {
	var captured *dto.AlumniDirectoryQuery
	router := newDirectoryRouter(func(ctx context.Context, q *dto.AlumniDirectoryQuery) ([]*models.Alumni, error) {
		captured = q
		return []*models.Alumni{}, nil
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/alumni?page=2&limit=10&search=doe&industry=tech&graduationYear=older&activelyHiring=true&state=tx&activityStatus=HOT&showActiveOnly=true&userChapter=Alpha%20Chapter", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)

	assert.Equal(t, 2, captured.Page)
	assert.Equal(t, 10, captured.Limit)
	assert.Equal(t, "doe", captured.Search)
	assert.Equal(t, "tech", captured.Industry)
	assert.True(t, captured.GraduationYear.Older)
	require.NotNil(t, captured.ActivelyHiring)
	assert.True(t, *captured.ActivelyHiring)
	assert.Equal(t, "TX", captured.State)
	assert.Equal(t, models.ActivityStatusHot, captured.ActivityStatus)
	assert.True(t, captured.ShowActiveOnly)
	// chapter falls back to userChapter and resolves by name
	assert.Equal(t, models.ChapterRefByName, captured.Chapter.Kind)
	assert.Equal(t, "Alpha Chapter", captured.Chapter.Name)
}

func TestListAlumni_AllYearsDisablesFilter(t *testing.T) {
	var captured *dto.AlumniDirectoryQuery
	router := newDirectoryRouter(func(ctx context.Context, q *dto.AlumniDirectoryQuery) ([]*models.Alumni, error) {
		captured = q
		return []*models.Alumni{}, nil
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/alumni?graduationYear=All%20Years", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, captured.GraduationYear.Disabled)
}

func TestListAlumni_InvalidFilterRejected(t *testing.T) {
	router := newDirectoryRouter(func(ctx context.Context, q *dto.AlumniDirectoryQuery) ([]*models.Alumni, error) {
		return []*models.Alumni{}, nil
	})

	for _, path := range []string{
		"/api/alumni?page=NaN",
		"/api/alumni?activelyHiring=maybe",
		"/api/alumni?activityStatus=lukewarm",
		"/api/alumni?graduationYear=recent",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Invalid query parameters", body["error"])
		assert.Contains(t, body, "details")
	}
}

func TestListAlumni_StoreErrorShape(t *testing.T) {
	router := newDirectoryRouter(func(ctx context.Context, q *dto.AlumniDirectoryQuery) ([]*models.Alumni, error) {
		return nil, apperrors.NewStoreError(`relation "alumni" does not exist`, "42P01")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/alumni", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch alumni", body["error"])
	assert.Equal(t, `relation "alumni" does not exist`, body["details"])
	assert.Equal(t, "42P01", body["code"])
}
