package services

import (
	"estoque-console/models"
	"estoque-console/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	hash, err := utils.HashPassword("caixa-123")
	require.NoError(t, err)
	return NewAuthService(AuthConfig{
		OperatorUser:         "caixa",
		OperatorPasswordHash: hash,
		JWTSecret:            "test-secret",
		JWTExpiry:            time.Hour,
	})
}

func TestAuthLogin(t *testing.T) {
	auth := newTestAuth(t)
	require.True(t, auth.Enabled())

	resp, err := auth.Login(models.LoginRequest{User: "caixa", Password: "caixa-123"})
	require.NoError(t, err)
	assert.Equal(t, "caixa", resp.Operator)

	operator, err := auth.Authenticate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "caixa", operator)
}

func TestAuthLoginRejected(t *testing.T) {
	auth := newTestAuth(t)

	_, err := auth.Login(models.LoginRequest{User: "caixa", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(models.LoginRequest{User: "gerente", Password: "caixa-123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthDisabledWithoutOperator(t *testing.T) {
	auth := NewAuthService(AuthConfig{JWTSecret: "x"})
	assert.False(t, auth.Enabled())
	_, err := auth.Login(models.LoginRequest{User: "", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
