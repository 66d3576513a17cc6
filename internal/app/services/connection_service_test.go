package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
)

// MockConnectionStore is a mock implementation of ConnectionStore.
type MockConnectionStore struct {
	MockConnectionEdgeStore
}

func (m *MockConnectionStore) Create(ctx context.Context, c *models.Connection) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConnectionStore) GetByID(ctx context.Context, id int64) (*models.Connection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Connection), args.Error(1)
}

func (m *MockConnectionStore) GetByPair(ctx context.Context, userA, userB int64) (*models.Connection, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Connection), args.Error(1)
}

func (m *MockConnectionStore) UpdateStatus(ctx context.Context, id int64, status models.ConnectionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockConnectionStore) ListForUser(ctx context.Context, userID int64, status *models.ConnectionStatus) ([]*models.Connection, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Connection), args.Error(1)
}

func (m *MockConnectionStore) AreConnected(ctx context.Context, userA, userB int64) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *MockConnectionStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newConnectionFixture() (*ConnectionService, *MockConnectionStore, *MockProfileStore) {
	connStore := new(MockConnectionStore)
	profileStore := new(MockProfileStore)
	return NewConnectionService(connStore, profileStore), connStore, profileStore
}

func TestRequestConnection_SelfRejected(t *testing.T) {
	svc, _, _ := newConnectionFixture()

	_, err := svc.RequestConnection(context.Background(), 1, 1)
	assert.ErrorIs(t, err, apperrors.ErrSelfConnection)
}

func TestRequestConnection_CreatesPendingEdge(t *testing.T) {
	svc, connStore, profileStore := newConnectionFixture()

	profileStore.On("GetByID", mock.Anything, int64(2)).Return(&models.Profile{ID: 2}, nil)
	connStore.On("GetByPair", mock.Anything, int64(1), int64(2)).Return(nil, apperrors.ErrConnectionNotFound)
	connStore.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Connection) bool {
		return c.RequesterID == 1 && c.AddresseeID == 2 && c.Status == models.ConnectionStatusPending
	})).Return(int64(9), nil)
	connStore.On("GetByID", mock.Anything, int64(9)).Return(&models.Connection{
		ID: 9, RequesterID: 1, AddresseeID: 2, Status: models.ConnectionStatusPending,
	}, nil)

	c, err := svc.RequestConnection(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusPending, c.Status)
}

func TestRequestConnection_ExistingPairConflicts(t *testing.T) {
	svc, connStore, profileStore := newConnectionFixture()

	profileStore.On("GetByID", mock.Anything, int64(2)).Return(&models.Profile{ID: 2}, nil)
	connStore.On("GetByPair", mock.Anything, int64(1), int64(2)).Return(&models.Connection{
		ID: 9, RequesterID: 2, AddresseeID: 1, Status: models.ConnectionStatusAccepted,
	}, nil)

	_, err := svc.RequestConnection(context.Background(), 1, 2)
	assert.ErrorIs(t, err, apperrors.ErrConnectionExists)
}

func TestRequestConnection_DeclinedEdgeFlipsBackToPending(t *testing.T) {
	svc, connStore, profileStore := newConnectionFixture()

	profileStore.On("GetByID", mock.Anything, int64(2)).Return(&models.Profile{ID: 2}, nil)
	connStore.On("GetByPair", mock.Anything, int64(1), int64(2)).Return(&models.Connection{
		ID: 9, RequesterID: 1, AddresseeID: 2, Status: models.ConnectionStatusDeclined,
	}, nil)
	connStore.On("UpdateStatus", mock.Anything, int64(9), models.ConnectionStatusPending).Return(nil)
	connStore.On("GetByID", mock.Anything, int64(9)).Return(&models.Connection{
		ID: 9, RequesterID: 1, AddresseeID: 2, Status: models.ConnectionStatusPending,
	}, nil)

	c, err := svc.RequestConnection(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusPending, c.Status)
}

func TestRespondToConnection_OnlyAddressee(t *testing.T) {
	svc, connStore, _ := newConnectionFixture()

	connStore.On("GetByID", mock.Anything, int64(9)).Return(&models.Connection{
		ID: 9, RequesterID: 1, AddresseeID: 2, Status: models.ConnectionStatusPending,
	}, nil)

	_, err := svc.RespondToConnection(context.Background(), 9, 1, true)
	assert.Error(t, err)
}

func TestRespondToConnection_Accept(t *testing.T) {
	svc, connStore, _ := newConnectionFixture()

	connStore.On("GetByID", mock.Anything, int64(9)).Return(&models.Connection{
		ID: 9, RequesterID: 1, AddresseeID: 2, Status: models.ConnectionStatusPending,
	}, nil).Once()
	connStore.On("UpdateStatus", mock.Anything, int64(9), models.ConnectionStatusAccepted).Return(nil)
	connStore.On("GetByID", mock.Anything, int64(9)).Return(&models.Connection{
		ID: 9, RequesterID: 1, AddresseeID: 2, Status: models.ConnectionStatusAccepted,
	}, nil)

	c, err := svc.RespondToConnection(context.Background(), 9, 2, true)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusAccepted, c.Status)
}

func TestRespondToConnection_AlreadyAnswered(t *testing.T) {
	svc, connStore, _ := newConnectionFixture()

	connStore.On("GetByID", mock.Anything, int64(9)).Return(&models.Connection{
		ID: 9, RequesterID: 1, AddresseeID: 2, Status: models.ConnectionStatusAccepted,
	}, nil)

	_, err := svc.RespondToConnection(context.Background(), 9, 2, false)
	assert.Error(t, err)
}

func TestRemoveConnection_ParticipantOnly(t *testing.T) {
	svc, connStore, _ := newConnectionFixture()

	connStore.On("GetByID", mock.Anything, int64(9)).Return(&models.Connection{
		ID: 9, RequesterID: 1, AddresseeID: 2, Status: models.ConnectionStatusAccepted,
	}, nil)

	err := svc.RemoveConnection(context.Background(), 9, 3)
	assert.Error(t, err)

	connStore.On("Delete", mock.Anything, int64(9)).Return(nil)
	require.NoError(t, svc.RemoveConnection(context.Background(), 9, 2))
}
