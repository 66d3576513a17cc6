package dto

import (
	"time"

	"github.com/greeklink/greeklink/internal/app/models"
)

// SendMessageRequest represents a direct message send request
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

// GetMessagesRequest carries paging parameters for a conversation
type GetMessagesRequest struct {
	Before *time.Time `form:"before"`
	Limit  int        `form:"limit"`
}

// MessageResponse represents a direct message in API responses
type MessageResponse struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	SenderID       int64     `json:"senderId"`
	SenderName     string    `json:"senderName,omitempty"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToMessageResponse converts a message model to its response DTO
func ToMessageResponse(m *models.Message) MessageResponse {
	resp := MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
	if m.Sender != nil {
		resp.SenderName = m.Sender.FullName()
	}
	return resp
}

// ConversationResponse represents a conversation thread in API responses
type ConversationResponse struct {
	ID            int64            `json:"id"`
	Participant   *ProfileResponse `json:"participant,omitempty"`
	LastMessageAt *time.Time       `json:"lastMessageAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}
