package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cityworks/complaint-service/internal/api/dto"
	"github.com/cityworks/complaint-service/internal/auth"
	"github.com/cityworks/complaint-service/internal/service"
	apperrors "github.com/cityworks/complaint-service/pkg/util/errorutil"
)

// SessionHandler exposes login, logout and identity endpoints.
type SessionHandler struct {
	auth *service.AuthService
}

// NewSessionHandler constructs handler.
func NewSessionHandler(authService *service.AuthService) *SessionHandler {
	return &SessionHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	sess := h.auth.NewSession()
	user, token, exp, err := h.auth.Login(c.UserContext(), sess, req.Email)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("sign in required")
	}
	if err := h.auth.Logout(c.UserContext(), principal.Session, principal.Token, principal.ExpiresAt); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User() == nil {
		return apperrors.NewUnauthorized("sign in required")
	}
	role, _ := principal.Session.Role()
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(principal.User()),
			"role": role,
		},
	})
}
