package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
)

// MockAlumniStore is a mock implementation of AlumniStore.
type MockAlumniStore struct {
	mock.Mock
}

func (m *MockAlumniStore) List(ctx context.Context, q *dto.AlumniDirectoryQuery) ([]*models.Alumni, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Alumni), args.Error(1)
}

func (m *MockAlumniStore) GetByID(ctx context.Context, id int64) (*models.Alumni, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Alumni), args.Error(1)
}

func (m *MockAlumniStore) Create(ctx context.Context, a *models.Alumni) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlumniStore) Update(ctx context.Context, a *models.Alumni) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAlumniStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockConnectionEdgeStore is a mock implementation of ConnectionEdgeStore.
type MockConnectionEdgeStore struct {
	mock.Mock
}

func (m *MockConnectionEdgeStore) GetAcceptedPartnerIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockConnectionEdgeStore) GetAcceptedEdgesTouching(ctx context.Context, userIDs []int64) ([]*models.Connection, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Connection), args.Error(1)
}

// MockProfilePreviewStore is a mock implementation of ProfilePreviewStore.
type MockProfilePreviewStore struct {
	mock.Mock
}

func (m *MockProfilePreviewStore) GetPreviews(ctx context.Context, ids []int64) (map[int64]models.ProfilePreview, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]models.ProfilePreview), args.Error(1)
}

func newDirectoryFixture(t *testing.T, now time.Time) (*AlumniService, *MockAlumniStore, *MockConnectionEdgeStore, *MockProfilePreviewStore) {
	t.Helper()
	alumniStore := new(MockAlumniStore)
	connStore := new(MockConnectionEdgeStore)
	previewStore := new(MockProfilePreviewStore)
	svc := NewAlumniService(alumniStore, connStore, previewStore)
	svc.now = func() time.Time { return now }
	return svc, alumniStore, connStore, previewStore
}

func int64p(v int64) *int64 { return &v }

func timep(v time.Time) *time.Time { return &v }

func TestListDirectory_EmptyResult(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, alumniStore, _, _ := newDirectoryFixture(t, now)

	alumniStore.On("List", mock.Anything, mock.Anything).Return([]*models.Alumni{}, nil)

	resp, err := svc.ListDirectory(context.Background(), &dto.AlumniDirectoryQuery{}, models.Viewer{})
	require.NoError(t, err)

	assert.Empty(t, resp.Alumni)
	assert.Equal(t, "No alumni found matching the given filters", resp.Message)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 0, resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
	assert.False(t, resp.Pagination.HasNextPage)
	assert.False(t, resp.Pagination.HasPrevPage)
}

func TestListDirectory_StoreErrorPropagates(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, alumniStore, _, _ := newDirectoryFixture(t, now)

	alumniStore.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := svc.ListDirectory(context.Background(), &dto.AlumniDirectoryQuery{}, models.Viewer{})
	assert.Error(t, err)
}

func TestListDirectory_StateFilter(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, alumniStore, _, _ := newDirectoryFixture(t, now)

	alumniStore.On("List", mock.Anything, mock.Anything).Return([]*models.Alumni{
		{ID: 1, FirstName: "In", LastName: "Texas", Location: "Austin, TX"},
		{ID: 2, FirstName: "Spelled", LastName: "Out", Location: "Dallas, Texas"},
		{ID: 3, FirstName: "Else", LastName: "Where", Location: "Reno, NV"},
	}, nil)

	resp, err := svc.ListDirectory(context.Background(), &dto.AlumniDirectoryQuery{State: "TX"}, models.Viewer{})
	require.NoError(t, err)

	require.Len(t, resp.Alumni, 2)
	for _, a := range resp.Alumni {
		assert.NotEqual(t, int64(3), a.ID)
	}
}

func TestListDirectory_ActivityStatusFilter(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, alumniStore, _, _ := newDirectoryFixture(t, now)

	hot := now.Add(-30 * time.Minute)
	warm := now.Add(-5 * time.Hour)
	cold := now.Add(-72 * time.Hour)

	alumniStore.On("List", mock.Anything, mock.Anything).Return([]*models.Alumni{
		{ID: 1, FirstName: "Hot", LastName: "One", LastActiveAt: timep(hot)},
		{ID: 2, FirstName: "Warm", LastName: "One", LastActiveAt: timep(warm)},
		{ID: 3, FirstName: "Cold", LastName: "One", LastActiveAt: timep(cold)},
		{ID: 4, FirstName: "Never", LastName: "Seen"},
	}, nil)

	resp, err := svc.ListDirectory(context.Background(), &dto.AlumniDirectoryQuery{ActivityStatus: models.ActivityStatusWarm}, models.Viewer{})
	require.NoError(t, err)

	require.Len(t, resp.Alumni, 1)
	assert.Equal(t, int64(2), resp.Alumni[0].ID)
	assert.Equal(t, models.ActivityStatusWarm, resp.Alumni[0].ActivityStatus)
}

func TestListDirectory_ShowActiveOnlyDropsCold(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, alumniStore, _, _ := newDirectoryFixture(t, now)

	alumniStore.On("List", mock.Anything, mock.Anything).Return([]*models.Alumni{
		{ID: 1, FirstName: "Hot", LastName: "One", LastActiveAt: timep(now.Add(-time.Minute))},
		{ID: 2, FirstName: "Warm", LastName: "One", LastActiveAt: timep(now.Add(-2 * time.Hour))},
		{ID: 3, FirstName: "Cold", LastName: "One"},
	}, nil)

	resp, err := svc.ListDirectory(context.Background(), &dto.AlumniDirectoryQuery{ShowActiveOnly: true}, models.Viewer{})
	require.NoError(t, err)

	require.Len(t, resp.Alumni, 2)
	for _, a := range resp.Alumni {
		assert.NotEqual(t, models.ActivityStatusCold, a.ActivityStatus)
	}
}

func TestListDirectory_RedactionForAnonymousViewer(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, alumniStore, _, _ := newDirectoryFixture(t, now)

	alumniStore.On("List", mock.Anything, mock.Anything).Return([]*models.Alumni{
		{ID: 1, FirstName: "Open", LastName: "Book", Email: "open@x.com", ShowEmail: true, Phone: "(555) 111-2222", ShowPhone: false},
	}, nil)

	resp, err := svc.ListDirectory(context.Background(), &dto.AlumniDirectoryQuery{}, models.Viewer{})
	require.NoError(t, err)

	require.Len(t, resp.Alumni, 1)
	require.NotNil(t, resp.Alumni[0].Email)
	assert.Equal(t, "open@x.com", *resp.Alumni[0].Email)
	assert.Nil(t, resp.Alumni[0].Phone)
}

func TestListDirectory_OwnerSeesOwnContactInfo(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, alumniStore, connStore, _ := newDirectoryFixture(t, now)

	alumniStore.On("List", mock.Anything, mock.Anything).Return([]*models.Alumni{
		{ID: 1, UserID: int64p(42), FirstName: "Own", LastName: "Er", Email: "me@x.com", Phone: "(555) 111-2222"},
		{ID: 2, UserID: int64p(43), FirstName: "Other", LastName: "Member", Email: "them@x.com", Phone: "(555) 333-4444"},
	}, nil)
	connStore.On("GetAcceptedPartnerIDs", mock.Anything, int64(42)).Return([]int64{}, nil)

	viewer := models.Viewer{UserID: 42, Role: models.RoleMember}
	resp, err := svc.ListDirectory(context.Background(), &dto.AlumniDirectoryQuery{}, viewer)
	require.NoError(t, err)
	require.Len(t, resp.Alumni, 2)

	byID := map[int64]dto.AlumniProjection{}
	for _, a := range resp.Alumni {
		byID[a.ID] = a
	}
	require.NotNil(t, byID[1].Email)
	require.NotNil(t, byID[1].Phone)
	assert.Nil(t, byID[2].Email)
	assert.Nil(t, byID[2].Phone)
}

func TestListDirectory_AdminBypassesVisibilityFlags(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, alumniStore, connStore, _ := newDirectoryFixture(t, now)

	alumniStore.On("List", mock.Anything, mock.Anything).Return([]*models.Alumni{
		{ID: 1, FirstName: "Hidden", LastName: "Contact", Email: "hidden@x.com", Phone: "(555) 111-2222"},
	}, nil)
	connStore.On("GetAcceptedPartnerIDs", mock.Anything, int64(9)).Return([]int64{}, nil)

	viewer := models.Viewer{UserID: 9, Role: models.RoleAdmin}
	resp, err := svc.ListDirectory(context.Background(), &dto.AlumniDirectoryQuery{}, viewer)
	require.NoError(t, err)

	require.Len(t, resp.Alumni, 1)
	require.NotNil(t, resp.Alumni[0].Email)
	require.NotNil(t, resp.Alumni[0].Phone)
}

func TestListDirectory_MutualConnections(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, alumniStore, connStore, previewStore := newDirectoryFixture(t, now)

	// Viewer 1 is connected to 10 and 11. Candidate 20 is connected to 10
	// and 30; only 10 is shared.
	alumniStore.On("List", mock.Anything, mock.Anything).Return([]*models.Alumni{
		{ID: 1, UserID: int64p(20), FirstName: "Candi", LastName: "Date"},
	}, nil)
	connStore.On("GetAcceptedPartnerIDs", mock.Anything, int64(1)).Return([]int64{10, 11}, nil)
	connStore.On("GetAcceptedEdgesTouching", mock.Anything, []int64{20}).Return([]*models.Connection{
		{RequesterID: 20, AddresseeID: 10, Status: models.ConnectionStatusAccepted},
		{RequesterID: 30, AddresseeID: 20, Status: models.ConnectionStatusAccepted},
	}, nil)
	previewStore.On("GetPreviews", mock.Anything, []int64{10}).Return(map[int64]models.ProfilePreview{
		10: {ID: 10, FirstName: "Shared", LastName: "Friend", AvatarURL: "https://cdn.example.com/s.png"},
	}, nil)

	viewer := models.Viewer{UserID: 1, Role: models.RoleMember}
	resp, err := svc.ListDirectory(context.Background(), &dto.AlumniDirectoryQuery{}, viewer)
	require.NoError(t, err)

	require.Len(t, resp.Alumni, 1)
	require.Len(t, resp.Alumni[0].MutualConnections, 1)
	assert.Equal(t, int64(10), resp.Alumni[0].MutualConnections[0].UserID)
	assert.Equal(t, "Shared Friend", resp.Alumni[0].MutualConnections[0].FullName)
}

func TestListDirectory_ConnectionLookupFailureDegrades(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, alumniStore, connStore, _ := newDirectoryFixture(t, now)

	alumniStore.On("List", mock.Anything, mock.Anything).Return([]*models.Alumni{
		{ID: 1, UserID: int64p(20), FirstName: "Still", LastName: "Listed"},
	}, nil)
	connStore.On("GetAcceptedPartnerIDs", mock.Anything, int64(1)).Return(nil, errors.New("connection pool exhausted"))

	viewer := models.Viewer{UserID: 1, Role: models.RoleMember}
	resp, err := svc.ListDirectory(context.Background(), &dto.AlumniDirectoryQuery{}, viewer)
	require.NoError(t, err)

	require.Len(t, resp.Alumni, 1)
	assert.Empty(t, resp.Alumni[0].MutualConnections)
}

func TestListDirectory_PaginationMetadata(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, alumniStore, _, _ := newDirectoryFixture(t, now)

	records := make([]*models.Alumni, 0, 25)
	for i := int64(1); i <= 25; i++ {
		records = append(records, &models.Alumni{ID: i, FirstName: "Member", LastName: "Number"})
	}
	alumniStore.On("List", mock.Anything, mock.Anything).Return(records, nil)

	resp, err := svc.ListDirectory(context.Background(), &dto.AlumniDirectoryQuery{Page: 2, Limit: 10}, models.Viewer{})
	require.NoError(t, err)

	assert.Len(t, resp.Alumni, 10)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 10, resp.Pagination.Limit)
	assert.Equal(t, 25, resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNextPage)
	assert.True(t, resp.Pagination.HasPrevPage)
	assert.Equal(t, "Found 25 alumni", resp.Message)
}

func TestListDirectory_PageBeyondEnd(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, alumniStore, _, _ := newDirectoryFixture(t, now)

	alumniStore.On("List", mock.Anything, mock.Anything).Return([]*models.Alumni{
		{ID: 1, FirstName: "Only", LastName: "One"},
	}, nil)

	resp, err := svc.ListDirectory(context.Background(), &dto.AlumniDirectoryQuery{Page: 5, Limit: 20}, models.Viewer{})
	require.NoError(t, err)

	assert.Empty(t, resp.Alumni)
	assert.Equal(t, 5, resp.Pagination.Page)
	assert.Equal(t, 1, resp.Pagination.Total)
	assert.Equal(t, "Found 1 alumnus", resp.Message)
}
