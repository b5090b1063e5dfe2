package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cityworks/complaint-service/internal/api/dto"
	"github.com/cityworks/complaint-service/internal/service"
)

// LeaderboardHandler serves the contributor ranking.
type LeaderboardHandler struct {
	service *service.LeaderboardService
}

// NewLeaderboardHandler constructs handler.
func NewLeaderboardHandler(leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: leaderboard}
}

// Leaderboard GET /leaderboard.
func (h *LeaderboardHandler) Leaderboard(c *fiber.Ctx) error {
	entries, err := h.service.Leaderboard(c.UserContext())
	if err != nil {
		return err
	}
	rows := make([]dto.LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, dto.LeaderboardEntryResponse{
			Rank:            e.Rank,
			UserID:          e.User.ID,
			Name:            e.User.Name,
			SubmittedIssues: e.User.SubmittedIssues,
			ResolvedIssues:  e.User.ResolvedIssues,
			TotalScore:      e.TotalScore,
		})
	}
	return c.JSON(fiber.Map{"data": rows})
}
