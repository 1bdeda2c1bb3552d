package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/open-helpdesk/helpdesk-service/internal/auth"
	"github.com/open-helpdesk/helpdesk-service/internal/authz"
	"github.com/open-helpdesk/helpdesk-service/internal/domain"
	"github.com/open-helpdesk/helpdesk-service/internal/repository"
	"github.com/open-helpdesk/helpdesk-service/pkg/util/errorutil"
)

// AccountService covers administrator account management.
type AccountService struct {
	accounts   repository.AccountRepository
	bcryptCost int
}

// NewAccountService constructs the service.
func NewAccountService(accounts repository.AccountRepository, bcryptCost int) *AccountService {
	return &AccountService{accounts: accounts, bcryptCost: bcryptCost}
}

// AccountCreateInput describes the admin account-creation payload.
type AccountCreateInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Create registers a new account. Role defaults to support when omitted.
func (s *AccountService) Create(ctx context.Context, caller Caller, input AccountCreateInput) (*domain.Account, error) {
	if err := authz.Authorize(caller.Role, authz.OpManageAccounts); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, errorutil.NewValidationError("name, email and password required", nil)
	}
	role := input.Role
	if role == "" {
		role = domain.RoleSupport
	}
	if !domain.ValidRole(role) {
		return nil, errorutil.NewValidationError("invalid role", map[string]any{"role": role})
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, errorutil.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, errorutil.NewStoreUnavailable(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, errorutil.NewInternalError(err)
	}

	account := &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, errorutil.NewStoreUnavailable(err)
	}
	return account, nil
}

// List returns every account.
func (s *AccountService) List(ctx context.Context, caller Caller) ([]domain.Account, error) {
	if err := authz.Authorize(caller.Role, authz.OpManageAccounts); err != nil {
		return nil, err
	}
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, errorutil.NewStoreUnavailable(err)
	}
	return accounts, nil
}

// UpdateRole changes an account's role.
func (s *AccountService) UpdateRole(ctx context.Context, caller Caller, accountID string, role domain.Role) (*domain.Account, error) {
	if err := authz.Authorize(caller.Role, authz.OpManageAccounts); err != nil {
		return nil, err
	}
	if !domain.ValidRole(role) {
		return nil, errorutil.NewValidationError("invalid role", map[string]any{"role": role})
	}
	account, err := s.accounts.UpdateRole(ctx, accountID, role)
	if err != nil {
		return nil, errorutil.MapStoreError(err, "account", map[string]any{"account_id": accountID})
	}
	return account, nil
}

// SupportAgents lists the accounts holding the support role, for the
// assignment picker.
func (s *AccountService) SupportAgents(ctx context.Context, caller Caller) ([]domain.Account, error) {
	if err := authz.Authorize(caller.Role, authz.OpManageAccounts); err != nil {
		return nil, err
	}
	agents, err := s.accounts.ListByRole(ctx, domain.RoleSupport)
	if err != nil {
		return nil, errorutil.NewStoreUnavailable(err)
	}
	return agents, nil
}
