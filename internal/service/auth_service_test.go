package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/open-helpdesk/helpdesk-service/internal/config"
	"github.com/open-helpdesk/helpdesk-service/internal/domain"
)

func newAuthServiceWithAccount(t *testing.T, password string) (*AuthService, *domain.Account) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	account := &domain.Account{
		ID:           "acc-1",
		Name:         "Sam Agent",
		Email:        "sam@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleSupport,
	}
	repo := new(MockAccountRepository)
	repo.On("GetByEmail", mock.Anything, account.Email).Return(account, nil)
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, pgx.ErrNoRows)

	cfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 30}
	return NewAuthService(cfg, repo, nil), account
}

func TestAuthService_LoginIssuesParsableToken(t *testing.T) {
	svc, account := newAuthServiceWithAccount(t, "hunter22")

	got, token, expires, err := svc.Login(context.Background(), "sam@example.com", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	assert.True(t, expires.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.Subject)
	assert.Equal(t, domain.RoleSupport, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthService_TokenCarriesSingleSubjectClaim(t *testing.T) {
	svc, account := newAuthServiceWithAccount(t, "hunter22")

	_, token, _, err := svc.Login(context.Background(), "sam@example.com", "hunter22")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	assert.Equal(t, 1, bytes.Count(payload, []byte(`"sub"`)))

	var body map[string]any
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, account.ID, body["sub"])
	assert.Equal(t, string(domain.RoleSupport), body["role"])
}

func TestAuthService_LoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newAuthServiceWithAccount(t, "hunter22")

	_, _, _, err := svc.Login(context.Background(), "sam@example.com", "wrong")

	assertCode(t, err, "UNAUTHENTICATED")
}

func TestAuthService_LoginUnknownEmailLooksLikeBadPassword(t *testing.T) {
	svc, _ := newAuthServiceWithAccount(t, "hunter22")

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22")

	// Same error either way so callers cannot probe which emails exist.
	assertCode(t, err, "UNAUTHENTICATED")
}
