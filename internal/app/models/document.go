package models

import "time"

// Document represents a file in a chapter's document manager
type Document struct {
	ID         int64     `json:"id" db:"id"`
	FileName   string    `json:"fileName" db:"file_name"`
	FilePath   string    `json:"filePath" db:"file_path"`
	FileURL    string    `json:"fileUrl" db:"file_url"`
	FileSize   int64     `json:"fileSize" db:"file_size"`
	FileType   string    `json:"fileType" db:"file_type"` // MIME type
	ChapterID  int64     `json:"chapterId" db:"chapter_id"`
	UploadedBy int64     `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
