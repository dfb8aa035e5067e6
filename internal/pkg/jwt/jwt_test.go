package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "a@b.co", employee.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, expiresAt)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "ADMIN", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")

	_, _, err := svc.GenerateAccessToken("user-1", "a@b.co", employee.RoleEmployee)
	assert.Error(t, err)
}

func TestClaimsFromContext(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	token, _, err := svc.GenerateAccessToken("user-1", "a@b.co", employee.RoleEmployee)
	require.NoError(t, err)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), decoded, nil)
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.False(t, claims.IsAdmin())

	_, err = ClaimsFromContext(context.Background())
	assert.Error(t, err)
}
