package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/garage-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)
	user := &domain.User{ID: "u-7", Email: "sam@garage.test", Role: domain.RoleStaff}

	token, expires, err := tm.GenerateToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expires, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-7", claims.UserID)
	assert.Equal(t, "sam@garage.test", claims.Email)
	assert.Equal(t, domain.RoleStaff, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 30)
	verifier := NewTokenManager("secret-b", 30)

	token, _, err := issuer.GenerateToken(&domain.User{ID: "u-1", Email: "a@b.c", Role: domain.RoleCustomer})
	require.NoError(t, err)

	claims, err := verifier.ParseToken(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)

	claims, err := tm.ParseToken("not.a.jwt")
	assert.Nil(t, claims)
	assert.Error(t, err)
}
