// Package seed holds the fixed dataset the stores start from.
package seed

import (
	"time"

	"github.com/cityworks/complaint-service/internal/domain"
)

// Users returns the seeded users in their canonical order. Leaderboard ties
// fall back to this order.
func Users() []domain.User {
	return []domain.User{
		{ID: "user-1", Name: "Alice Johnson", Email: "user1@example.com", Role: domain.RoleUser, SubmittedIssues: 5, ResolvedIssues: 3},
		{ID: "user-2", Name: "Bob Smith", Email: "user2@example.com", Role: domain.RoleUser, SubmittedIssues: 2, ResolvedIssues: 2},
		{ID: "user-3", Name: "Carol Davis", Email: "user3@example.com", Role: domain.RoleUser, SubmittedIssues: 5, ResolvedIssues: 5},
		{ID: "admin-1", Name: "City Admin", Email: "admin@example.com", Role: domain.RoleAdmin},
	}
}

// Complaints returns the seeded complaints, newest first.
func Complaints() []domain.Complaint {
	image := func(s string) *string { return &s }
	day := func(d, h int) time.Time {
		return time.Date(2024, time.May, d, h, 0, 0, 0, time.UTC)
	}
	return []domain.Complaint{
		{
			ID:          "CMPT-004",
			Title:       "Overflowing trash bins",
			Description: "Bins at the park entrance have not been emptied for a week.",
			Location:    domain.Location{Lat: 34.0407, Lng: -118.2468, Address: "Pershing Square, Los Angeles, CA"},
			Status:      domain.ComplaintStatusPending,
			UserID:      "user-3",
			UserEmail:   "user3@example.com",
			CreatedAt:   day(20, 9),
			UpdatedAt:   day(20, 9),
		},
		{
			ID:          "CMPT-003",
			Title:       "Broken streetlight",
			Description: "The streetlight on the corner has been out for several nights.",
			Location:    domain.Location{Lat: 34.0522, Lng: -118.2437, Address: "1st St & Main St, Los Angeles, CA"},
			ImageURL:    image("https://picsum.photos/seed/streetlight/800/600"),
			Status:      domain.ComplaintStatusResolved,
			UserID:      "user-2",
			UserEmail:   "user2@example.com",
			CreatedAt:   day(12, 18),
			UpdatedAt:   day(15, 10),
		},
		{
			ID:          "CMPT-002",
			Title:       "Leaking fire hydrant",
			Description: "Water has been running from the hydrant since this morning.",
			Location:    domain.Location{Lat: 34.0561, Lng: -118.2365, Address: "Olvera St, Los Angeles, CA"},
			Status:      domain.ComplaintStatusInProgress,
			UserID:      "user-1",
			UserEmail:   "user1@example.com",
			CreatedAt:   day(8, 7),
			UpdatedAt:   day(9, 14),
		},
		{
			ID:          "CMPT-001",
			Title:       "Pothole on Main Street",
			Description: "A deep pothole is damaging cars near the intersection.",
			Location:    domain.Location{Lat: 34.0505, Lng: -118.2551, Address: "Main St & 5th St, Los Angeles, CA"},
			ImageURL:    image("https://picsum.photos/seed/pothole/800/600"),
			Status:      domain.ComplaintStatusPending,
			UserID:      "user-1",
			UserEmail:   "user1@example.com",
			CreatedAt:   day(1, 12),
			UpdatedAt:   day(1, 12),
		},
	}
}

// MaxComplaintSequence returns the highest sequence number used by the given complaints.
func MaxComplaintSequence(complaints []domain.Complaint) int64 {
	var max int64
	for _, c := range complaints {
		if seq, ok := domain.ParseComplaintSequence(c.ID); ok && seq > max {
			max = seq
		}
	}
	return max
}
