package services

import (
	"context"
	"errors"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
)

// ConnectionStore is the full persistence surface for connection edges
type ConnectionStore interface {
	ConnectionEdgeStore
	Create(ctx context.Context, c *models.Connection) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Connection, error)
	GetByPair(ctx context.Context, userA, userB int64) (*models.Connection, error)
	UpdateStatus(ctx context.Context, id int64, status models.ConnectionStatus) error
	ListForUser(ctx context.Context, userID int64, status *models.ConnectionStatus) ([]*models.Connection, error)
	AreConnected(ctx context.Context, userA, userB int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// ConnectionService manages connection requests between members
type ConnectionService struct {
	connectionRepo ConnectionStore
	profileRepo    ProfileStore
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(connectionRepo ConnectionStore, profileRepo ProfileStore) *ConnectionService {
	return &ConnectionService{
		connectionRepo: connectionRepo,
		profileRepo:    profileRepo,
	}
}

// RequestConnection creates a pending request toward another member. A
// previously declined edge can be re-requested; it flips back to pending.
func (s *ConnectionService) RequestConnection(ctx context.Context, requesterID, addresseeID int64) (*models.Connection, error) {
	if requesterID == addresseeID {
		return nil, apperrors.ErrSelfConnection
	}

	if _, err := s.profileRepo.GetByID(ctx, addresseeID); err != nil {
		return nil, err
	}

	existing, err := s.connectionRepo.GetByPair(ctx, requesterID, addresseeID)
	if err != nil && !errors.Is(err, apperrors.ErrConnectionNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Status != models.ConnectionStatusDeclined {
			return nil, apperrors.ErrConnectionExists
		}
		if err := s.connectionRepo.UpdateStatus(ctx, existing.ID, models.ConnectionStatusPending); err != nil {
			return nil, err
		}
		return s.connectionRepo.GetByID(ctx, existing.ID)
	}

	c := &models.Connection{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      models.ConnectionStatusPending,
	}
	id, err := s.connectionRepo.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	return s.connectionRepo.GetByID(ctx, id)
}

// RespondToConnection accepts or declines a pending request. Only the
// addressee may respond.
func (s *ConnectionService) RespondToConnection(ctx context.Context, connectionID, userID int64, accept bool) (*models.Connection, error) {
	c, err := s.connectionRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	if c.AddresseeID != userID {
		return nil, apperrors.NewForbiddenError("only the addressee can respond to a connection request")
	}
	if c.Status != models.ConnectionStatusPending {
		return nil, apperrors.NewConflictError("connection request has already been answered")
	}

	status := models.ConnectionStatusDeclined
	if accept {
		status = models.ConnectionStatusAccepted
	}
	if err := s.connectionRepo.UpdateStatus(ctx, connectionID, status); err != nil {
		return nil, err
	}

	return s.connectionRepo.GetByID(ctx, connectionID)
}

// ListConnections retrieves a member's connections, optionally filtered
// by status.
func (s *ConnectionService) ListConnections(ctx context.Context, userID int64, status *models.ConnectionStatus) ([]*models.Connection, error) {
	return s.connectionRepo.ListForUser(ctx, userID, status)
}

// RemoveConnection deletes an edge the member participates in
func (s *ConnectionService) RemoveConnection(ctx context.Context, connectionID, userID int64) error {
	c, err := s.connectionRepo.GetByID(ctx, connectionID)
	if err != nil {
		return err
	}

	if c.RequesterID != userID && c.AddresseeID != userID {
		return apperrors.NewForbiddenError("cannot remove a connection you are not part of")
	}

	return s.connectionRepo.Delete(ctx, connectionID)
}

// AreConnected reports whether two members share an accepted connection
func (s *ConnectionService) AreConnected(ctx context.Context, userA, userB int64) (bool, error) {
	return s.connectionRepo.AreConnected(ctx, userA, userB)
}
