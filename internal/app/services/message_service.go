package services

import (
	"context"
	"strings"
	"time"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/helpers"
	"github.com/greeklink/greeklink/internal/pkg/websocket"
)

// MessageStore is the persistence surface for conversations and messages
type MessageStore interface {
	GetOrCreateConversation(ctx context.Context, userA, userB int64) (*models.Conversation, error)
	GetConversationByID(ctx context.Context, id int64) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID int64) ([]*models.Conversation, error)
	CreateMessage(ctx context.Context, m *models.Message) (int64, error)
	ListMessages(ctx context.Context, conversationID int64, before *time.Time, limit int) ([]*models.Message, error)
}

// ConnectionChecker gates messaging on an accepted connection
type ConnectionChecker interface {
	AreConnected(ctx context.Context, userA, userB int64) (bool, error)
}

// MessageService handles direct messaging between connected members
type MessageService struct {
	messageRepo    MessageStore
	connectionRepo ConnectionChecker
	profileRepo    ProfileStore
	hub            *websocket.Hub
}

// NewMessageService creates a new MessageService. hub may be nil in tests.
func NewMessageService(messageRepo MessageStore, connectionRepo ConnectionChecker, profileRepo ProfileStore, hub *websocket.Hub) *MessageService {
	return &MessageService{
		messageRepo:    messageRepo,
		connectionRepo: connectionRepo,
		profileRepo:    profileRepo,
		hub:            hub,
	}
}

// SendMessage delivers a direct message to another member. Both sides
// must share an accepted connection.
func (s *MessageService) SendMessage(ctx context.Context, senderID, recipientID int64, content string) (*models.Message, error) {
	if senderID == recipientID {
		return nil, apperrors.NewBadRequestError("cannot message yourself")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewBadRequestError("message content cannot be empty")
	}

	connected, err := s.connectionRepo.AreConnected(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, apperrors.ErrNotConnected
	}

	conversation, err := s.messageRepo.GetOrCreateConversation(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Content:        content,
	}
	if _, err := s.messageRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.SendToUser(&websocket.Event{
			Type:           "message",
			RecipientID:    recipientID,
			ConversationID: conversation.ID,
			SenderID:       senderID,
			Content:        content,
			ID:             message.ID,
			Timestamp:      message.CreatedAt,
		})
	}

	return message, nil
}

// ListConversations retrieves the member's threads with the other
// participant's preview attached.
func (s *MessageService) ListConversations(ctx context.Context, userID int64) ([]dto.ConversationResponse, error) {
	conversations, err := s.messageRepo.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		resp := dto.ConversationResponse{
			ID:            c.ID,
			LastMessageAt: c.LastMessageAt,
			CreatedAt:     c.CreatedAt,
		}
		if other, err := s.profileRepo.GetByID(ctx, c.OtherSide(userID)); err == nil {
			p := dto.FromProfile(other)
			resp.Participant = &p
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// GetMessages retrieves a page of a conversation's messages, newest first.
// Only participants may read the thread.
func (s *MessageService) GetMessages(ctx context.Context, conversationID, userID int64, req *dto.GetMessagesRequest) ([]*models.Message, error) {
	conversation, err := s.messageRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.Includes(userID) {
		return nil, apperrors.NewForbiddenError("cannot read a conversation you are not part of")
	}

	limit := req.Limit
	if limit <= 0 || limit > helpers.MaxPageSize {
		limit = 50
	}

	return s.messageRepo.ListMessages(ctx, conversationID, req.Before, limit)
}
