package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	ProfileRepository    *ProfileRepository
	AlumniRepository     *AlumniRepository
	ConnectionRepository *ConnectionRepository
	ChapterRepository    *ChapterRepository
	InvitationRepository *InvitationRepository
	DocumentRepository   *DocumentRepository
	MessageRepository    *MessageRepository
	TokenRepository      *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		ProfileRepository:    NewProfileRepository(db),
		AlumniRepository:     NewAlumniRepository(db),
		ConnectionRepository: NewConnectionRepository(db),
		ChapterRepository:    NewChapterRepository(db),
		InvitationRepository: NewInvitationRepository(db),
		DocumentRepository:   NewDocumentRepository(db),
		MessageRepository:    NewMessageRepository(db),
		TokenRepository:      NewTokenRepository(db),
	}
}
