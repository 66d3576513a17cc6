package dto

// CreateChapterRequest represents a request to create a chapter
type CreateChapterRequest struct {
	Name    string `json:"name" binding:"required"`
	Letters string `json:"letters" binding:"required"`
	School  string `json:"school" binding:"required"`
	State   string `json:"state" binding:"required,len=2"`
}

// UpdateChapterRequest represents a request to update a chapter
type UpdateChapterRequest struct {
	Name    string `json:"name" binding:"required"`
	Letters string `json:"letters" binding:"required"`
	School  string `json:"school" binding:"required"`
	State   string `json:"state" binding:"required,len=2"`
}
