package dto

import (
	"time"

	"github.com/greeklink/greeklink/internal/app/models"
)

// DocumentResponse represents a chapter document in API responses
type DocumentResponse struct {
	ID         int64     `json:"id"`
	FileName   string    `json:"fileName"`
	FileURL    string    `json:"fileUrl"`
	FileSize   int64     `json:"fileSize"`
	FileType   string    `json:"fileType"`
	ChapterID  int64     `json:"chapterId"`
	UploadedBy int64     `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromDocument converts a document model to its response DTO
func FromDocument(d *models.Document) DocumentResponse {
	return DocumentResponse{
		ID:         d.ID,
		FileName:   d.FileName,
		FileURL:    d.FileURL,
		FileSize:   d.FileSize,
		FileType:   d.FileType,
		ChapterID:  d.ChapterID,
		UploadedBy: d.UploadedBy,
		CreatedAt:  d.CreatedAt,
	}
}
