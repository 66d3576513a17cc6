package dto

import (
	"time"

	"github.com/greeklink/greeklink/internal/app/models"
)

// CreateConnectionRequest asks for a connection with another member
type CreateConnectionRequest struct {
	AddresseeID int64 `json:"addresseeId" binding:"required,min=1"`
}

// ConnectionResponse represents a connection edge in API responses
type ConnectionResponse struct {
	ID          int64      `json:"id"`
	RequesterID int64      `json:"requesterId"`
	AddresseeID int64      `json:"addresseeId"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Requester   *ProfileResponse `json:"requester,omitempty"`
	Addressee   *ProfileResponse `json:"addressee,omitempty"`
}

// FromConnection converts a connection model to its response DTO
func FromConnection(c *models.Connection) ConnectionResponse {
	resp := ConnectionResponse{
		ID:          c.ID,
		RequesterID: c.RequesterID,
		AddresseeID: c.AddresseeID,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Requester != nil {
		r := FromProfile(c.Requester)
		resp.Requester = &r
	}
	if c.Addressee != nil {
		a := FromProfile(c.Addressee)
		resp.Addressee = &a
	}
	return resp
}
