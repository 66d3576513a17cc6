package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/dberrors"
)

// AlumniRepository handles database operations for alumni records
type AlumniRepository struct {
	db *pgxpool.Pool
}

// NewAlumniRepository creates a new AlumniRepository
func NewAlumniRepository(db *pgxpool.Pool) *AlumniRepository {
	return &AlumniRepository{db: db}
}

var alumniColumns = []string{
	"a.id", "a.user_id", "a.first_name", "a.last_name",
	"a.chapter_name", "a.chapter_id", "a.graduation_year",
	"a.company", "a.job_title", "a.industry", "a.actively_hiring",
	"a.email", "a.show_email", "a.phone", "a.show_phone",
	"a.location", "a.description", "a.tags", "a.avatar_url",
	"a.verified", "a.last_contact_at", "a.created_at", "a.updated_at",
	"p.last_active_at", "p.last_login_at",
}

// buildListQuery assembles the filtered directory query. Chapter
// filtering uses a single OR predicate across both join keys
// (chapter_id and chapter_name), so rows matched through either key
// appear exactly once.
func buildListQuery(q *dto.AlumniDirectoryQuery) (string, []interface{}, error) {
	builder := squirrel.Select(alumniColumns...).
		From("alumni a").
		LeftJoin("profiles p ON p.id = a.user_id").
		PlaceholderFormat(squirrel.Dollar)

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"a.first_name": pattern},
			squirrel.ILike{"a.last_name": pattern},
			squirrel.ILike{"a.company": pattern},
			squirrel.ILike{"a.job_title": pattern},
			squirrel.ILike{"a.industry": pattern},
		})
	}

	if q.Industry != "" {
		builder = builder.Where(squirrel.ILike{"a.industry": q.Industry})
	}

	switch q.Chapter.Kind {
	case models.ChapterRefByID:
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"a.chapter_id": q.Chapter.ID},
			squirrel.Expr("a.chapter_name = (SELECT name FROM chapters WHERE id = ?)", q.Chapter.ID),
		})
	case models.ChapterRefByName:
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"a.chapter_name": q.Chapter.Name},
			squirrel.Expr("a.chapter_id IN (SELECT id FROM chapters WHERE name ILIKE ?)", q.Chapter.Name),
		})
	}

	if q.Location != "" {
		builder = builder.Where(squirrel.ILike{"a.location": "%" + q.Location + "%"})
	}

	if !q.GraduationYear.Disabled {
		if q.GraduationYear.Older {
			builder = builder.Where(squirrel.LtOrEq{"a.graduation_year": dto.OlderCutoffYear})
		} else if q.GraduationYear.Year > 0 {
			builder = builder.Where(squirrel.Eq{"a.graduation_year": q.GraduationYear.Year})
		}
	}

	if q.ActivelyHiring != nil {
		builder = builder.Where(squirrel.Eq{"a.actively_hiring": *q.ActivelyHiring})
	}

	// Deterministic base order; ranking happens in the service layer
	builder = builder.OrderBy("a.id")

	return builder.ToSql()
}

// List retrieves all alumni matching the store-level filters, joined
// with the linked profile's activity timestamps.
func (r *AlumniRepository) List(ctx context.Context, q *dto.AlumniDirectoryQuery) ([]*models.Alumni, error) {
	sql, args, err := buildListQuery(q)
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		msg, code := dberrors.MessageAndCode(err)
		return nil, apperrors.NewStoreError(msg, code)
	}
	defer rows.Close()

	alumni := make([]*models.Alumni, 0)
	for rows.Next() {
		a, err := scanAlumnus(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning alumni row: %w", err)
		}
		alumni = append(alumni, a)
	}

	if err := rows.Err(); err != nil {
		msg, code := dberrors.MessageAndCode(err)
		return nil, apperrors.NewStoreError(msg, code)
	}

	return alumni, nil
}

// GetByID retrieves an alumni record by ID
func (r *AlumniRepository) GetByID(ctx context.Context, id int64) (*models.Alumni, error) {
	builder := squirrel.Select(alumniColumns...).
		From("alumni a").
		LeftJoin("profiles p ON p.id = a.user_id").
		Where("a.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading row: %w", err)
		}
		return nil, apperrors.ErrAlumnusNotFound
	}

	return scanAlumnus(rows)
}

// GetByUserID retrieves the alumni record linked to a member account
func (r *AlumniRepository) GetByUserID(ctx context.Context, userID int64) (*models.Alumni, error) {
	builder := squirrel.Select(alumniColumns...).
		From("alumni a").
		LeftJoin("profiles p ON p.id = a.user_id").
		Where("a.user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading row: %w", err)
		}
		return nil, apperrors.ErrAlumnusNotFound
	}

	return scanAlumnus(rows)
}

// Create inserts a new alumni record
func (r *AlumniRepository) Create(ctx context.Context, a *models.Alumni) (int64, error) {
	query := `
		INSERT INTO alumni (
			user_id, first_name, last_name, chapter_name, chapter_id,
			graduation_year, company, job_title, industry, actively_hiring,
			email, show_email, phone, show_phone, location, description,
			tags, avatar_url, verified, last_contact_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		a.UserID, a.FirstName, a.LastName, a.ChapterName, a.ChapterID,
		a.GraduationYear, a.Company, a.JobTitle, a.Industry, a.ActivelyHiring,
		a.Email, a.ShowEmail, a.Phone, a.ShowPhone, a.Location, a.Description,
		a.Tags, a.AvatarURL, a.Verified, a.LastContactAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// UpsertByUserID inserts or updates the alumni record linked to a member
// account, keyed on user_id. Used by the profile sync.
func (r *AlumniRepository) UpsertByUserID(ctx context.Context, a *models.Alumni) error {
	query := `
		INSERT INTO alumni (
			user_id, first_name, last_name, chapter_name, chapter_id,
			graduation_year, company, job_title, industry, actively_hiring,
			email, show_email, phone, show_phone, location, description,
			tags, avatar_url, verified
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			chapter_name = EXCLUDED.chapter_name,
			chapter_id = EXCLUDED.chapter_id,
			graduation_year = EXCLUDED.graduation_year,
			company = EXCLUDED.company,
			job_title = EXCLUDED.job_title,
			industry = EXCLUDED.industry,
			actively_hiring = EXCLUDED.actively_hiring,
			email = EXCLUDED.email,
			show_email = EXCLUDED.show_email,
			phone = EXCLUDED.phone,
			show_phone = EXCLUDED.show_phone,
			location = EXCLUDED.location,
			description = EXCLUDED.description,
			tags = EXCLUDED.tags,
			avatar_url = EXCLUDED.avatar_url,
			verified = EXCLUDED.verified,
			updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		a.UserID, a.FirstName, a.LastName, a.ChapterName, a.ChapterID,
		a.GraduationYear, a.Company, a.JobTitle, a.Industry, a.ActivelyHiring,
		a.Email, a.ShowEmail, a.Phone, a.ShowPhone, a.Location, a.Description,
		a.Tags, a.AvatarURL, a.Verified,
	)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// Update updates an existing alumni record
func (r *AlumniRepository) Update(ctx context.Context, a *models.Alumni) error {
	query := `
		UPDATE alumni SET
			first_name = $1, last_name = $2, chapter_name = $3, chapter_id = $4,
			graduation_year = $5, company = $6, job_title = $7, industry = $8,
			actively_hiring = $9, email = $10, show_email = $11, phone = $12,
			show_phone = $13, location = $14, description = $15, tags = $16,
			avatar_url = $17, verified = $18, last_contact_at = $19,
			updated_at = NOW()
		WHERE id = $20
	`

	result, err := r.db.Exec(ctx, query,
		a.FirstName, a.LastName, a.ChapterName, a.ChapterID,
		a.GraduationYear, a.Company, a.JobTitle, a.Industry,
		a.ActivelyHiring, a.Email, a.ShowEmail, a.Phone,
		a.ShowPhone, a.Location, a.Description, a.Tags,
		a.AvatarURL, a.Verified, a.LastContactAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAlumnusNotFound
	}

	return nil
}

// Delete deletes an alumni record
func (r *AlumniRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("alumni").
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
		return apperrors.ErrAlumnusNotFound
	}

	return nil
}

// scanAlumnus scans the current row into an alumni model
func scanAlumnus(rows pgx.Rows) (*models.Alumni, error) {
	var a models.Alumni
	err := rows.Scan(
		&a.ID, &a.UserID, &a.FirstName, &a.LastName,
		&a.ChapterName, &a.ChapterID, &a.GraduationYear,
		&a.Company, &a.JobTitle, &a.Industry, &a.ActivelyHiring,
		&a.Email, &a.ShowEmail, &a.Phone, &a.ShowPhone,
		&a.Location, &a.Description, &a.Tags, &a.AvatarURL,
		&a.Verified, &a.LastContactAt, &a.CreatedAt, &a.UpdatedAt,
		&a.LastActiveAt, &a.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAlumnusNotFound
		}
		return nil, err
	}
	return &a, nil
}
