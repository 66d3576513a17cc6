package models

import "time"

// Conversation is a direct-message thread between two connected members.
// The pair is stored ordered (user_a_id < user_b_id) so each pair has a
// single thread.
type Conversation struct {
	ID            int64      `json:"id" db:"id"`
	UserAID       int64      `json:"userAId" db:"user_a_id"`
	UserBID       int64      `json:"userBId" db:"user_b_id"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty" db:"last_message_at"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}

// Includes reports whether the member participates in the conversation
func (c *Conversation) Includes(userID int64) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// OtherSide returns the other participant
func (c *Conversation) OtherSide(userID int64) int64 {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

// Message represents a direct message within a conversation
type Message struct {
	ID             int64     `json:"id" db:"id"`
	ConversationID int64     `json:"conversationId" db:"conversation_id"`
	SenderID       int64     `json:"senderId" db:"sender_id"`
	Content        string    `json:"content" db:"content"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	Sender *Profile `json:"sender,omitempty"`
}
