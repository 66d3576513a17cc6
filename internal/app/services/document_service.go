package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/filestorage"
	"github.com/greeklink/greeklink/internal/pkg/logger"
)

// MaxDocumentSize caps uploads at 25MB
const MaxDocumentSize = 25 << 20

var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain": true,
	"image/png":  true,
	"image/jpeg": true,
}

// DocumentStore is the persistence surface for chapter documents
type DocumentStore interface {
	Create(ctx context.Context, d *models.Document) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Document, error)
	ListByChapter(ctx context.Context, chapterID int64, page, size int) ([]*models.Document, int64, error)
	Delete(ctx context.Context, id int64) error
}

// DocumentService manages a chapter's shared documents
type DocumentService struct {
	documentRepo DocumentStore
	storage      *filestorage.LocalStorage
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documentRepo DocumentStore, storage *filestorage.LocalStorage) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		storage:      storage,
	}
}

// UploadDocument stores the file and records it for the chapter
func (s *DocumentService) UploadDocument(ctx context.Context, fileHeader *multipart.FileHeader, chapterID, uploadedBy int64) (*models.Document, error) {
	if fileHeader.Size > MaxDocumentSize {
		return nil, apperrors.NewBadRequestError("file exceeds the 25MB size limit")
	}

	fileType := fileHeader.Header.Get("Content-Type")
	if !allowedDocumentTypes[fileType] {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("file type %q is not allowed", fileType))
	}

	saved, err := s.storage.Save(fileHeader, fmt.Sprintf("chapters/%d", chapterID))
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		FileName:   fileHeader.Filename,
		FilePath:   saved.Path,
		FileURL:    saved.URL,
		FileSize:   saved.Size,
		FileType:   fileType,
		ChapterID:  chapterID,
		UploadedBy: uploadedBy,
	}

	id, err := s.documentRepo.Create(ctx, doc)
	if err != nil {
		// Orphaned file, clean it up
		if cleanupErr := s.storage.Delete(saved.Path); cleanupErr != nil {
			logger.Warn().Err(cleanupErr).Str("path", saved.Path).Msg("Failed to clean up orphaned upload")
		}
		return nil, err
	}

	return s.documentRepo.GetByID(ctx, id)
}

// ListDocuments retrieves a page of a chapter's documents
func (s *DocumentService) ListDocuments(ctx context.Context, chapterID int64, page, size int) ([]*models.Document, int64, error) {
	return s.documentRepo.ListByChapter(ctx, chapterID, page, size)
}

// GetDocument retrieves one document record
func (s *DocumentService) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	return s.documentRepo.GetByID(ctx, id)
}

// DeleteDocument removes a document. Only the uploader or an admin may
// delete it.
func (s *DocumentService) DeleteDocument(ctx context.Context, id, userID int64, isAdmin bool) error {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if doc.UploadedBy != userID && !isAdmin {
		return apperrors.NewForbiddenError("cannot delete a document you did not upload")
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.Delete(doc.FilePath); err != nil {
		logger.Warn().Err(err).Str("path", doc.FilePath).Msg("Failed to delete stored file")
	}

	return nil
}
