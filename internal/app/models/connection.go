package models

import "time"

// ConnectionStatus represents the state of a connection request
type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusDeclined ConnectionStatus = "declined"
)

// Connection is an undirected edge between two members. The pair is
// unique regardless of direction; direction only records who asked.
type Connection struct {
	ID          int64            `json:"id" db:"id"`
	RequesterID int64            `json:"requesterId" db:"requester_id"`
	AddresseeID int64            `json:"addresseeId" db:"addressee_id"`
	Status      ConnectionStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`

	Requester *Profile `json:"requester,omitempty"`
	Addressee *Profile `json:"addressee,omitempty"`
}

// OtherSide returns the member on the other end of the edge
func (c *Connection) OtherSide(userID int64) int64 {
	if c.RequesterID == userID {
		return c.AddresseeID
	}
	return c.RequesterID
}
