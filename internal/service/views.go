package service

import (
	"context"
	"sort"
	"strings"

	"github.com/cityworks/complaint-service/internal/domain"
	"github.com/cityworks/complaint-service/internal/repository"
	apperrors "github.com/cityworks/complaint-service/pkg/util/errorutil"
)

// StatusFilterAll disables status filtering.
const StatusFilterAll = "All"

// FilterByStatus keeps complaints whose status matches filter, preserving
// order. An empty filter or "All" returns the input unchanged.
func FilterByStatus(complaints []domain.Complaint, filter string) ([]domain.Complaint, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, StatusFilterAll) {
		return complaints, nil
	}
	status, err := domain.ParseComplaintStatus(filter)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"status": filter})
	}
	result := make([]domain.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if c.Status == status {
			result = append(result, c)
		}
	}
	return result, nil
}

// StatusStats counts complaints per status.
type StatusStats struct {
	Pending    int
	InProgress int
	Resolved   int
	Total      int
}

// CountByStatus aggregates complaints per status.
func CountByStatus(complaints []domain.Complaint) StatusStats {
	var stats StatusStats
	for _, c := range complaints {
		switch c.Status {
		case domain.ComplaintStatusPending:
			stats.Pending++
		case domain.ComplaintStatusInProgress:
			stats.InProgress++
		case domain.ComplaintStatusResolved:
			stats.Resolved++
		}
		stats.Total++
	}
	return stats
}

// StatsForUser aggregates the user's own complaints.
func (s *ComplaintService) StatsForUser(ctx context.Context, userID string) (StatusStats, error) {
	complaints, err := s.complaints.ListByUser(ctx, userID)
	if err != nil {
		return StatusStats{}, err
	}
	return CountByStatus(complaints), nil
}

// FleetStats aggregates the whole collection.
func (s *ComplaintService) FleetStats(ctx context.Context) (StatusStats, error) {
	complaints, err := s.complaints.List(ctx)
	if err != nil {
		return StatusStats{}, err
	}
	return CountByStatus(complaints), nil
}

// Search treats a query containing "@" as an owner email and returns every
// complaint filed under it; any other query is matched against complaint ids.
// Both comparisons ignore case. No match yields an empty result.
func (s *ComplaintService) Search(ctx context.Context, query string) ([]domain.Complaint, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Complaint{}, nil
	}
	if strings.Contains(query, "@") {
		all, err := s.complaints.List(ctx)
		if err != nil {
			return nil, err
		}
		result := []domain.Complaint{}
		for _, c := range all {
			if strings.EqualFold(c.UserEmail, query) {
				result = append(result, c)
			}
		}
		return result, nil
	}

	complaint, ok, err := s.GetByID(ctx, query)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Complaint{}, nil
	}
	return []domain.Complaint{*complaint}, nil
}

// LeaderboardEntry is one ranked contributor.
type LeaderboardEntry struct {
	Rank int
	User domain.User
	// TotalScore is SubmittedIssues + ResolvedIssues, the same value used for ranking.
	TotalScore int
}

// Score returns the ranking key of a user.
func Score(u domain.User) int {
	return u.SubmittedIssues + u.ResolvedIssues
}

// RankUsers ranks users with the user role by score, highest first. Ties keep
// the input order.
func RankUsers(users []domain.User) []LeaderboardEntry {
	ranked := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.Role == domain.RoleUser {
			ranked = append(ranked, u)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i]) > Score(ranked[j])
	})

	entries := make([]LeaderboardEntry, 0, len(ranked))
	for i, u := range ranked {
		entries = append(entries, LeaderboardEntry{Rank: i + 1, User: u, TotalScore: Score(u)})
	}
	return entries
}

// LeaderboardService ranks contributors.
type LeaderboardService struct {
	users repository.UserRepository
}

// NewLeaderboardService constructs the service.
func NewLeaderboardService(users repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{users: users}
}

// Leaderboard ranks every seeded citizen.
func (s *LeaderboardService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return RankUsers(users), nil
}
