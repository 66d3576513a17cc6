package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
)

// InvitationRepository handles database operations for invitations
type InvitationRepository struct {
	db *pgxpool.Pool
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *pgxpool.Pool) *InvitationRepository {
	return &InvitationRepository{db: db}
}

const invitationColumns = "id, email, token, chapter_id, role, invited_by, expires_at, accepted_at, revoked_at, created_at"

// Create inserts a new invitation and returns its id
func (r *InvitationRepository) Create(ctx context.Context, inv *models.Invitation) (int64, error) {
	query := `
		INSERT INTO invitations (email, token, chapter_id, role, invited_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		inv.Email, inv.Token, inv.ChapterID, inv.Role, inv.InvitedBy, inv.ExpiresAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByToken retrieves an invitation by its opaque token
func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	query := fmt.Sprintf("SELECT %s FROM invitations WHERE token = $1", invitationColumns)
	return r.queryOne(ctx, query, token)
}

// GetByID retrieves an invitation by id
func (r *InvitationRepository) GetByID(ctx context.Context, id int64) (*models.Invitation, error) {
	query := fmt.Sprintf("SELECT %s FROM invitations WHERE id = $1", invitationColumns)
	return r.queryOne(ctx, query, id)
}

func (r *InvitationRepository) queryOne(ctx context.Context, query string, arg interface{}) (*models.Invitation, error) {
	var inv models.Invitation
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&inv.ID, &inv.Email, &inv.Token, &inv.ChapterID, &inv.Role,
		&inv.InvitedBy, &inv.ExpiresAt, &inv.AcceptedAt, &inv.RevokedAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &inv, nil
}

// ListByInviter retrieves invitations created by a member, newest first
func (r *InvitationRepository) ListByInviter(ctx context.Context, invitedBy int64) ([]*models.Invitation, error) {
	query := fmt.Sprintf("SELECT %s FROM invitations WHERE invited_by = $1 ORDER BY created_at DESC", invitationColumns)

	rows, err := r.db.Query(ctx, query, invitedBy)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	invitations := make([]*models.Invitation, 0)
	for rows.Next() {
		var inv models.Invitation
		if err := rows.Scan(
			&inv.ID, &inv.Email, &inv.Token, &inv.ChapterID, &inv.Role,
			&inv.InvitedBy, &inv.ExpiresAt, &inv.AcceptedAt, &inv.RevokedAt, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		invitations = append(invitations, &inv)
	}

	return invitations, rows.Err()
}

// MarkAccepted stamps the invitation as redeemed
func (r *InvitationRepository) MarkAccepted(ctx context.Context, id int64, at time.Time) error {
	result, err := r.db.Exec(ctx, "UPDATE invitations SET accepted_at = $1 WHERE id = $2", at, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInvitationNotFound
	}

	return nil
}

// MarkRevoked stamps the invitation as withdrawn
func (r *InvitationRepository) MarkRevoked(ctx context.Context, id int64, at time.Time) error {
	result, err := r.db.Exec(ctx, "UPDATE invitations SET revoked_at = $1 WHERE id = $2", at, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInvitationNotFound
	}

	return nil
}
