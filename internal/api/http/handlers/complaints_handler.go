package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cityworks/complaint-service/internal/api/dto"
	"github.com/cityworks/complaint-service/internal/auth"
	"github.com/cityworks/complaint-service/internal/domain"
	"github.com/cityworks/complaint-service/internal/service"
	apperrors "github.com/cityworks/complaint-service/pkg/util/errorutil"
)

// ComplaintsHandler manages complaint endpoints for citizens and administrators.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// CreateComplaint POST /complaints.
func (h *ComplaintsHandler) CreateComplaint(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	missing := []string{}
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(req.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("title, description required", map[string]any{"missing": missing})
	}

	complaint, err := h.service.Add(c.UserContext(), user, domain.ComplaintDraft{
		Title:       req.Title,
		Description: req.Description,
		Location: domain.Location{
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
			Address: req.Location.Address,
		},
		ImageURL:  req.ImageURL,
		UserID:    user.ID,
		UserEmail: user.Email,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// GetComplaint GET /complaints/:id.
func (h *ComplaintsHandler) GetComplaint(c *fiber.Ctx) error {
	id := c.Params("id")
	complaint, ok, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFound("complaint", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// ListMine GET /me/complaints.
func (h *ComplaintsHandler) ListMine(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	complaints, err := h.service.ListByUser(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	filtered, err := service.FilterByStatus(complaints, c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintList(filtered)})
}

// MyStats GET /me/stats.
func (h *ComplaintsHandler) MyStats(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	stats, err := h.service.StatsForUser(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": statsResponse(stats)})
}

// ListAll GET /admin/complaints.
func (h *ComplaintsHandler) ListAll(c *fiber.Ctx) error {
	complaints, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	filtered, err := service.FilterByStatus(complaints, c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintList(filtered)})
}

// FleetStats GET /admin/stats.
func (h *ComplaintsHandler) FleetStats(c *fiber.Ctx) error {
	stats, err := h.service.FleetStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": statsResponse(stats)})
}

// UpdateStatus PATCH /admin/complaints/:id/status.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := domain.ParseComplaintStatus(req.Status)
	if err != nil {
		return apperrors.NewValidationError("status must be one of Pending, In Progress, Resolved", map[string]any{"status": req.Status})
	}

	complaint, err := h.service.UpdateStatus(c.UserContext(), user, c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// Track GET /track?q=.
func (h *ComplaintsHandler) Track(c *fiber.Ctx) error {
	results, err := h.service.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintList(results)})
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("sign in required")
	}
	user := principal.User()
	if user == nil {
		return nil, apperrors.NewUnauthorized("sign in required")
	}
	return user, nil
}

func statsResponse(stats service.StatusStats) dto.StatsResponse {
	return dto.StatsResponse{
		Pending:    stats.Pending,
		InProgress: stats.InProgress,
		Resolved:   stats.Resolved,
		Total:      stats.Total,
	}
}
