package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/dberrors"
)

// ProfileRepository handles database operations for member profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `
	p.id, p.email, p.password, p.first_name, p.last_name, p.role,
	p.chapter_id, p.graduation_year, p.major, p.gpa, p.linkedin_url,
	p.phone, p.avatar_url, p.is_active, p.last_login_at, p.last_active_at,
	p.created_at, p.updated_at
`

// Create inserts a new profile and returns its id
func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) (int64, error) {
	query := `
		INSERT INTO profiles (email, password, first_name, last_name, role, chapter_id, graduation_year, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		p.Email, p.Password, p.FirstName, p.LastName, p.Role,
		p.ChapterID, p.GraduationYear, p.IsActive,
	).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a profile by its id
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s, c.id, c.name, c.school, c.state
		FROM profiles p
		LEFT JOIN chapters c ON c.id = p.chapter_id
		WHERE p.id = $1
	`, profileColumns)

	return r.queryOne(ctx, query, id)
}

// GetByEmail retrieves a profile by email address
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s, c.id, c.name, c.school, c.state
		FROM profiles p
		LEFT JOIN chapters c ON c.id = p.chapter_id
		WHERE LOWER(p.email) = LOWER($1)
	`, profileColumns)

	return r.queryOne(ctx, query, email)
}

func (r *ProfileRepository) queryOne(ctx context.Context, query string, arg interface{}) (*models.Profile, error) {
	var p models.Profile
	var chapterID *int64
	var chapterName, chapterSchool, chapterState *string

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Email, &p.Password, &p.FirstName, &p.LastName, &p.Role,
		&p.ChapterID, &p.GraduationYear, &p.Major, &p.GPA, &p.LinkedInURL,
		&p.Phone, &p.AvatarURL, &p.IsActive, &p.LastLoginAt, &p.LastActiveAt,
		&p.CreatedAt, &p.UpdatedAt,
		&chapterID, &chapterName, &chapterSchool, &chapterState,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	if chapterID != nil {
		p.Chapter = &models.Chapter{
			ID:     *chapterID,
			Name:   derefString(chapterName),
			School: derefString(chapterSchool),
			State:  derefString(chapterState),
		}
	}

	return &p, nil
}

// GetPreviews retrieves display previews for a batch of members, keyed
// by profile id. Missing ids are simply absent from the result.
func (r *ProfileRepository) GetPreviews(ctx context.Context, ids []int64) (map[int64]models.ProfilePreview, error) {
	previews := make(map[int64]models.ProfilePreview, len(ids))
	if len(ids) == 0 {
		return previews, nil
	}

	query := `SELECT id, first_name, last_name, avatar_url FROM profiles WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.ProfilePreview
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.AvatarURL); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		previews[p.ID] = p
	}

	return previews, rows.Err()
}

// Update applies the given column changes to a profile
func (r *ProfileRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	builder := squirrel.Update("profiles").
		Where(squirrel.Eq{"id": id}).
		Set("updated_at", squirrel.Expr("NOW()")).
		PlaceholderFormat(squirrel.Dollar)

	for column, value := range fields {
		builder = builder.Set(column, value)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

// UpdateLastLogin stamps both the login and activity timestamps
func (r *ProfileRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE profiles SET last_login_at = $1, last_active_at = $1 WHERE id = $2`

	_, err := r.db.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// TouchLastActive stamps the activity timestamp only
func (r *ProfileRepository) TouchLastActive(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE profiles SET last_active_at = $1 WHERE id = $2`

	_, err := r.db.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// Delete deactivates a profile rather than removing the row
func (r *ProfileRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE profiles SET is_active = false, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
