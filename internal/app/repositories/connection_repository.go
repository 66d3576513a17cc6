package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/dberrors"
)

// ConnectionRepository handles database operations for connections
type ConnectionRepository struct {
	db *pgxpool.Pool
}

// NewConnectionRepository creates a new ConnectionRepository
func NewConnectionRepository(db *pgxpool.Pool) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

const connectionColumns = "id, requester_id, addressee_id, status, created_at, updated_at"

// Create inserts a pending connection request
func (r *ConnectionRepository) Create(ctx context.Context, c *models.Connection) (int64, error) {
	query := `
		INSERT INTO connections (requester_id, addressee_id, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, c.RequesterID, c.AddresseeID, c.Status).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "connections_pair_key") {
			return 0, apperrors.ErrConnectionExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a connection by ID
func (r *ConnectionRepository) GetByID(ctx context.Context, id int64) (*models.Connection, error) {
	query := fmt.Sprintf("SELECT %s FROM connections WHERE id = $1", connectionColumns)

	var c models.Connection
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.RequesterID, &c.AddresseeID, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConnectionNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &c, nil
}

// GetByPair retrieves the connection between two members regardless of
// which side asked.
func (r *ConnectionRepository) GetByPair(ctx context.Context, userA, userB int64) (*models.Connection, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM connections
		WHERE (requester_id = $1 AND addressee_id = $2)
		   OR (requester_id = $2 AND addressee_id = $1)
	`, connectionColumns)

	var c models.Connection
	err := r.db.QueryRow(ctx, query, userA, userB).Scan(
		&c.ID, &c.RequesterID, &c.AddresseeID, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConnectionNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &c, nil
}

// UpdateStatus transitions a connection's status
func (r *ConnectionRepository) UpdateStatus(ctx context.Context, id int64, status models.ConnectionStatus) error {
	query := `UPDATE connections SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrConnectionNotFound
	}

	return nil
}

// ListForUser retrieves all connections touching a member, optionally
// restricted to one status.
func (r *ConnectionRepository) ListForUser(ctx context.Context, userID int64, status *models.ConnectionStatus) ([]*models.Connection, error) {
	builder := squirrel.Select("id", "requester_id", "addressee_id", "status", "created_at", "updated_at").
		From("connections").
		Where(squirrel.Or{
			squirrel.Eq{"requester_id": userID},
			squirrel.Eq{"addressee_id": userID},
		}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	connections := make([]*models.Connection, 0)
	for rows.Next() {
		var c models.Connection
		if err := rows.Scan(&c.ID, &c.RequesterID, &c.AddresseeID, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		connections = append(connections, &c)
	}

	return connections, rows.Err()
}

// GetAcceptedPartnerIDs retrieves the ids of everyone the member has an
// accepted connection with.
func (r *ConnectionRepository) GetAcceptedPartnerIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT CASE WHEN requester_id = $1 THEN addressee_id ELSE requester_id END
		FROM connections
		WHERE (requester_id = $1 OR addressee_id = $1) AND status = 'accepted'
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// GetAcceptedEdgesTouching retrieves, in one batched query, every
// accepted edge touching any of the given members. Used to compute
// mutual connections without per-row fan-out.
func (r *ConnectionRepository) GetAcceptedEdgesTouching(ctx context.Context, userIDs []int64) ([]*models.Connection, error) {
	if len(userIDs) == 0 {
		return []*models.Connection{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s FROM connections
		WHERE status = 'accepted'
		  AND (requester_id = ANY($1) OR addressee_id = ANY($1))
	`, connectionColumns)

	rows, err := r.db.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	edges := make([]*models.Connection, 0)
	for rows.Next() {
		var c models.Connection
		if err := rows.Scan(&c.ID, &c.RequesterID, &c.AddresseeID, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		edges = append(edges, &c)
	}

	return edges, rows.Err()
}

// AreConnected reports whether two members share an accepted connection
func (r *ConnectionRepository) AreConnected(ctx context.Context, userA, userB int64) (bool, error) {
	c, err := r.GetByPair(ctx, userA, userB)
	if err != nil {
		if errors.Is(err, apperrors.ErrConnectionNotFound) {
			return false, nil
		}
		return false, err
	}
	return c.Status == models.ConnectionStatusAccepted, nil
}

// Delete removes a connection edge
func (r *ConnectionRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("connections").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrConnectionNotFound
	}

	return nil
}
