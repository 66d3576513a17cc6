package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
)

// MockProfileEditStore is a mock implementation of ProfileEditStore.
type MockProfileEditStore struct {
	mock.Mock
}

func (m *MockProfileEditStore) Create(ctx context.Context, p *models.Profile) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileEditStore) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileEditStore) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileEditStore) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockProfileEditStore) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockProfileEditStore) TouchLastActive(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockAlumniSyncStore is a mock implementation of AlumniSyncStore.
type MockAlumniSyncStore struct {
	mock.Mock
}

func (m *MockAlumniSyncStore) GetByUserID(ctx context.Context, userID int64) (*models.Alumni, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Alumni), args.Error(1)
}

func (m *MockAlumniSyncStore) UpsertByUserID(ctx context.Context, a *models.Alumni) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// MockDraftStore is a mock implementation of DraftStore.
type MockDraftStore struct {
	mock.Mock
}

func (m *MockDraftStore) Save(ctx context.Context, draft *dto.ProfileDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftStore) Get(ctx context.Context, profileID int64) (*dto.ProfileDraft, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProfileDraft), args.Error(1)
}

func (m *MockDraftStore) Delete(ctx context.Context, profileID int64) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"5551234567", "(555) 123-4567", false},
		{"555-123-4567", "(555) 123-4567", false},
		{"(555) 123 4567", "(555) 123-4567", false},
		{"15551234567", "(555) 123-4567", false},
		{"+1 555 123 4567", "(555) 123-4567", false},
		{"25551234567", "", true}, // 11 digits but not a US country code
		{"123456", "", true},
		{"not a phone", "", true},
	}

	for _, tt := range tests {
		got, err := FormatPhone(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
		} else {
			require.NoError(t, err, "input %q", tt.in)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestUpdateProfile_RejectsInvalidFields(t *testing.T) {
	svc := NewProfileService(new(MockProfileEditStore), new(MockAlumniSyncStore), nil)
	ctx := context.Background()

	empty := "  "
	_, err := svc.UpdateProfile(ctx, 1, &dto.UpdateProfileRequest{FirstName: &empty})
	assert.Error(t, err)

	badEmail := "not-an-email"
	_, err = svc.UpdateProfile(ctx, 1, &dto.UpdateProfileRequest{Email: &badEmail})
	assert.Error(t, err)

	badYear := 1600
	_, err = svc.UpdateProfile(ctx, 1, &dto.UpdateProfileRequest{GraduationYear: &badYear})
	assert.Error(t, err)

	badGPA := 4.5
	_, err = svc.UpdateProfile(ctx, 1, &dto.UpdateProfileRequest{GPA: &badGPA})
	assert.Error(t, err)

	badLink := "https://example.com/in/someone"
	_, err = svc.UpdateProfile(ctx, 1, &dto.UpdateProfileRequest{LinkedInURL: &badLink})
	assert.Error(t, err)

	badPhone := "12345"
	_, err = svc.UpdateProfile(ctx, 1, &dto.UpdateProfileRequest{Phone: &badPhone})
	assert.Error(t, err)
}

func TestUpdateProfile_NormalizesAndSaves(t *testing.T) {
	profileStore := new(MockProfileEditStore)
	svc := NewProfileService(profileStore, new(MockAlumniSyncStore), nil)
	ctx := context.Background()

	email := " Jane.Doe@Example.COM "
	phone := "555 123 4567"
	link := "https://www.linkedin.com/in/janedoe"

	profileStore.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["email"] == "jane.doe@example.com" &&
			fields["phone"] == "(555) 123-4567" &&
			fields["linkedin_url"] == link
	})).Return(nil)
	profileStore.On("GetByID", mock.Anything, int64(1)).Return(&models.Profile{ID: 1, Email: "jane.doe@example.com"}, nil)

	updated, err := svc.UpdateProfile(ctx, 1, &dto.UpdateProfileRequest{
		Email:       &email,
		Phone:       &phone,
		LinkedInURL: &link,
	})
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", updated.Email)
	profileStore.AssertExpectations(t)
}

func TestUpdateProfile_SyncCreatesAlumniRecordWithDefaults(t *testing.T) {
	profileStore := new(MockProfileEditStore)
	alumniStore := new(MockAlumniSyncStore)
	svc := NewProfileService(profileStore, alumniStore, nil)
	ctx := context.Background()

	gradYear := 2018
	saved := &models.Profile{
		ID:             1,
		Email:          "jane@example.com",
		FirstName:      "Jane",
		LastName:       "Doe",
		GraduationYear: &gradYear,
	}

	profileStore.On("Update", mock.Anything, int64(1), mock.Anything).Return(nil)
	profileStore.On("GetByID", mock.Anything, int64(1)).Return(saved, nil)
	alumniStore.On("GetByUserID", mock.Anything, int64(1)).Return(nil, apperrors.ErrAlumnusNotFound)
	alumniStore.On("UpsertByUserID", mock.Anything, mock.MatchedBy(func(a *models.Alumni) bool {
		return a.UserID != nil && *a.UserID == 1 &&
			a.FirstName == "Jane" &&
			a.GraduationYear == 2018 &&
			a.Company == "Acme" &&
			a.JobTitle == "Not Specified" &&
			a.Industry == "Not Specified" &&
			a.Location == "Not Specified"
	})).Return(nil)

	company := "Acme"
	_, err := svc.UpdateProfile(ctx, 1, &dto.UpdateProfileRequest{
		Company:    &company,
		SyncAlumni: true,
	})
	require.NoError(t, err)
	alumniStore.AssertExpectations(t)
}

func TestUpdateProfile_SuccessDiscardsDraft(t *testing.T) {
	profileStore := new(MockProfileEditStore)
	draftStore := new(MockDraftStore)
	svc := NewProfileService(profileStore, new(MockAlumniSyncStore), draftStore)
	ctx := context.Background()

	profileStore.On("Update", mock.Anything, int64(1), mock.Anything).Return(nil)
	profileStore.On("GetByID", mock.Anything, int64(1)).Return(&models.Profile{ID: 1}, nil)
	draftStore.On("Delete", mock.Anything, int64(1)).Return(nil)

	major := "History"
	_, err := svc.UpdateProfile(ctx, 1, &dto.UpdateProfileRequest{Major: &major})
	require.NoError(t, err)
	draftStore.AssertExpectations(t)
}

func TestSaveDraft_RequiresStore(t *testing.T) {
	svc := NewProfileService(new(MockProfileEditStore), new(MockAlumniSyncStore), nil)

	_, err := svc.SaveDraft(context.Background(), 1, map[string]interface{}{"firstName": "Jane"})
	assert.Error(t, err)
}

func TestSaveDraft_StampsOwner(t *testing.T) {
	draftStore := new(MockDraftStore)
	svc := NewProfileService(new(MockProfileEditStore), new(MockAlumniSyncStore), draftStore)

	draftStore.On("Save", mock.Anything, mock.MatchedBy(func(d *dto.ProfileDraft) bool {
		return d.ProfileID == 7 && !d.SavedAt.IsZero()
	})).Return(nil)

	draft, err := svc.SaveDraft(context.Background(), 7, map[string]interface{}{"major": "History"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), draft.ProfileID)
}
