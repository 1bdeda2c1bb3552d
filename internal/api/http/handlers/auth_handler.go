package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/open-helpdesk/helpdesk-service/internal/api/dto"
	"github.com/open-helpdesk/helpdesk-service/internal/auth"
	"github.com/open-helpdesk/helpdesk-service/internal/service"
	"github.com/open-helpdesk/helpdesk-service/pkg/util/errorutil"
)

// AuthHandler manages login and logout.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return errorutil.NewValidationError("email and password required", nil)
	}
	account, token, expiresAt, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   accountResponse(account),
	}})
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return errorutil.NewUnauthenticated("authentication required")
	}
	if err := h.authService.Logout(c.Context(), principal.TokenID, time.Unix(principal.Expires, 0)); err != nil {
		return errorutil.NewStoreUnavailable(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "logged out"}})
}
