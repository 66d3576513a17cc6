package models

import "time"

// Chapter defines the chapter model based on the 'chapters' table
type Chapter struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Letters   string    `json:"letters" db:"letters"` // Greek letters, e.g. "ΣΑΕ"
	School    string    `json:"school" db:"school"`
	State     string    `json:"state" db:"state"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ChapterRefKind discriminates how a chapter filter value identifies a chapter.
type ChapterRefKind int

const (
	ChapterRefNone ChapterRefKind = iota
	ChapterRefByID
	ChapterRefByName
)

// ChapterRef is an explicit chapter identifier, resolved once at the API
// boundary instead of re-guessing the string shape downstream.
type ChapterRef struct {
	Kind ChapterRefKind
	ID   int64
	Name string
}

// IsZero reports whether no chapter filter was supplied
func (r ChapterRef) IsZero() bool {
	return r.Kind == ChapterRefNone
}
