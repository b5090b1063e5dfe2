package dto

import (
	"time"

	"github.com/cityworks/complaint-service/internal/domain"
)

// LoginRequest payload. Identity is the email alone.
type LoginRequest struct {
	Email string `json:"email"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse exposes a user record.
type UserResponse struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Role            domain.Role `json:"role"`
	SubmittedIssues int         `json:"submittedIssues"`
	ResolvedIssues  int         `json:"resolvedIssues"`
}

// LeaderboardEntryResponse is one leaderboard row.
type LeaderboardEntryResponse struct {
	Rank            int    `json:"rank"`
	UserID          string `json:"userId"`
	Name            string `json:"name"`
	SubmittedIssues int    `json:"submittedIssues"`
	ResolvedIssues  int    `json:"resolvedIssues"`
	TotalScore      int    `json:"totalScore"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		SubmittedIssues: u.SubmittedIssues,
		ResolvedIssues:  u.ResolvedIssues,
	}
}
