package dto

import (
	"time"

	"github.com/cityworks/complaint-service/internal/domain"
)

// LocationPayload pins a complaint.
type LocationPayload struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    LocationPayload `json:"location"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ComplaintResponse mirrors a complaint record.
type ComplaintResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Location    LocationPayload        `json:"location"`
	ImageURL    *string                `json:"imageUrl,omitempty"`
	Status      domain.ComplaintStatus `json:"status"`
	UserID      string                 `json:"userId"`
	UserEmail   string                 `json:"userEmail"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// StatsResponse counts complaints per status.
type StatsResponse struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Total      int `json:"total"`
}

// NewComplaintResponse converts a domain complaint.
func NewComplaintResponse(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Location: LocationPayload{
			Lat:     c.Location.Lat,
			Lng:     c.Location.Lng,
			Address: c.Location.Address,
		},
		ImageURL:  c.ImageURL,
		Status:    c.Status,
		UserID:    c.UserID,
		UserEmail: c.UserEmail,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewComplaintList converts a slice, never returning nil.
func NewComplaintList(complaints []domain.Complaint) []ComplaintResponse {
	items := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, NewComplaintResponse(&complaints[i]))
	}
	return items
}
