package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/open-helpdesk/helpdesk-service/internal/api/dto"
	"github.com/open-helpdesk/helpdesk-service/internal/auth"
	"github.com/open-helpdesk/helpdesk-service/internal/domain"
	"github.com/open-helpdesk/helpdesk-service/internal/service"
	"github.com/open-helpdesk/helpdesk-service/pkg/util/errorutil"
)

// UsersHandler manages account administration endpoints.
type UsersHandler struct {
	accounts *service.AccountService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accounts *service.AccountService) *UsersHandler {
	return &UsersHandler{accounts: accounts}
}

// Me GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return errorutil.NewUnauthenticated("authentication required")
	}
	return c.JSON(fiber.Map{"data": accountResponse(principal.Account)})
}

// Create POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	account, err := h.accounts.Create(c.Context(), caller, service.AccountCreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": accountResponse(account)})
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	accounts, err := h.accounts.List(c.Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": accountResponses(accounts)})
}

// UpdateRole PATCH /users/:id/role.
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	account, err := h.accounts.UpdateRole(c.Context(), caller, c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": accountResponse(account)})
}

// SupportAgents GET /users/support-agents.
func (h *UsersHandler) SupportAgents(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	agents, err := h.accounts.SupportAgents(c.Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": accountResponses(agents)})
}

func accountResponse(account *domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Role:      account.Role,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

func accountResponses(accounts []domain.Account) []dto.AccountResponse {
	items := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, accountResponse(&accounts[i]))
	}
	return items
}
