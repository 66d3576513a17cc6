package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/helpers"
)

// DocumentRepository handles database operations for chapter documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = "id, file_name, file_path, file_url, file_size, file_type, chapter_id, uploaded_by, created_at, updated_at"

// Create inserts a new document record and returns its id
func (r *DocumentRepository) Create(ctx context.Context, d *models.Document) (int64, error) {
	query := `
		INSERT INTO documents (file_name, file_path, file_url, file_size, file_type, chapter_id, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		d.FileName, d.FilePath, d.FileURL, d.FileSize, d.FileType, d.ChapterID, d.UploadedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a document by id
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query := fmt.Sprintf("SELECT %s FROM documents WHERE id = $1", documentColumns)

	var d models.Document
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.FileName, &d.FilePath, &d.FileURL, &d.FileSize, &d.FileType,
		&d.ChapterID, &d.UploadedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &d, nil
}

// ListByChapter retrieves a page of a chapter's documents, newest first
func (r *DocumentRepository) ListByChapter(ctx context.Context, chapterID int64, page, size int) ([]*models.Document, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM documents WHERE chapter_id = $1", chapterID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	query := fmt.Sprintf(`
		SELECT %s FROM documents
		WHERE chapter_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, documentColumns)

	rows, err := r.db.Query(ctx, query, chapterID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	documents := make([]*models.Document, 0)
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(
			&d.ID, &d.FileName, &d.FilePath, &d.FileURL, &d.FileSize, &d.FileType,
			&d.ChapterID, &d.UploadedBy, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		documents = append(documents, &d)
	}

	return documents, total, rows.Err()
}

// Delete removes a document record
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}

	return nil
}
