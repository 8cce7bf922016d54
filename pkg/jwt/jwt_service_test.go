package jwt

import (
	"Produce-Scan-Backend/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	service := &jwtService{secretKey: "test-secret", issuer: "PRODUCE_SCAN"}

	token := service.GenerateTokenUser(42, domain.RoleUser)
	require.NotEmpty(t, token)

	userID, role, err := service.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, domain.RoleUser, role)
}

func TestGetUserIDByToken_Invalid(t *testing.T) {
	service := &jwtService{secretKey: "test-secret", issuer: "PRODUCE_SCAN"}

	_, _, err := service.GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetUserIDByToken_WrongKey(t *testing.T) {
	signer := &jwtService{secretKey: "key-a", issuer: "PRODUCE_SCAN"}
	verifier := &jwtService{secretKey: "key-b", issuer: "PRODUCE_SCAN"}

	token := signer.GenerateTokenUser(42, domain.RoleUser)

	_, _, err := verifier.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
