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

// ChapterRepository handles database operations for chapters
type ChapterRepository struct {
	db *pgxpool.Pool
}

// NewChapterRepository creates a new ChapterRepository
func NewChapterRepository(db *pgxpool.Pool) *ChapterRepository {
	return &ChapterRepository{db: db}
}

const chapterColumns = "id, name, letters, school, state, created_at, updated_at"

// GetAll retrieves all chapters ordered by name
func (r *ChapterRepository) GetAll(ctx context.Context) ([]*models.Chapter, error) {
	query := fmt.Sprintf("SELECT %s FROM chapters ORDER BY name", chapterColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	chapters := make([]*models.Chapter, 0)
	for rows.Next() {
		var c models.Chapter
		if err := rows.Scan(&c.ID, &c.Name, &c.Letters, &c.School, &c.State, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		chapters = append(chapters, &c)
	}

	return chapters, rows.Err()
}

// GetByID retrieves a chapter by its id
func (r *ChapterRepository) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	query := fmt.Sprintf("SELECT %s FROM chapters WHERE id = $1", chapterColumns)

	var c models.Chapter
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Letters, &c.School, &c.State, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChapterNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &c, nil
}

// GetByName retrieves a chapter by exact name, case-insensitively
func (r *ChapterRepository) GetByName(ctx context.Context, name string) (*models.Chapter, error) {
	query := fmt.Sprintf("SELECT %s FROM chapters WHERE LOWER(name) = LOWER($1)", chapterColumns)

	var c models.Chapter
	err := r.db.QueryRow(ctx, query, name).Scan(
		&c.ID, &c.Name, &c.Letters, &c.School, &c.State, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChapterNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &c, nil
}

// Create inserts a new chapter and returns its id
func (r *ChapterRepository) Create(ctx context.Context, c *models.Chapter) (int64, error) {
	query := `
		INSERT INTO chapters (name, letters, school, state)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, c.Name, c.Letters, c.School, c.State).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrChapterAlreadyExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// Update modifies an existing chapter
func (r *ChapterRepository) Update(ctx context.Context, c *models.Chapter) error {
	builder := squirrel.Update("chapters").
		Set("name", c.Name).
		Set("letters", c.Letters).
		Set("school", c.School).
		Set("state", c.State).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrChapterAlreadyExists
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrChapterNotFound
	}

	return nil
}

// Delete removes a chapter. Fails when members or alumni still reference it.
func (r *ChapterRepository) Delete(ctx context.Context, id int64) error {
	var memberCount int
	err := r.db.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM profiles WHERE chapter_id = $1) +
		        (SELECT COUNT(*) FROM alumni WHERE chapter_id = $1)`, id).Scan(&memberCount)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if memberCount > 0 {
		return apperrors.ErrChapterHasRelations
	}

	result, err := r.db.Exec(ctx, "DELETE FROM chapters WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrChapterNotFound
	}

	return nil
}
