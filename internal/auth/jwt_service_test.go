package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "sigpat"})
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(AccessTokenInput{
		UserID: "3f3c7a2e-0b2f-4dd7-9d3a-bb0f0e4c5a21",
		Name:   "Maria Silva",
		Email:  "maria.silva@example.gov.br",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "3f3c7a2e-0b2f-4dd7-9d3a-bb0f0e4c5a21", claims.UserID)
	require.Equal(t, "Maria Silva", claims.Name)
	require.Equal(t, "maria.silva@example.gov.br", claims.Email)
	require.Equal(t, "sigpat", claims.Issuer)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issued := time.Now().Add(-48 * time.Hour)
	issuer, err := NewJWTService(JWTConfig{
		Secret:         "test-secret",
		AccessTokenTTL: time.Hour,
		Clock:          func() time.Time { return issued },
	})
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken(AccessTokenInput{UserID: "user"})
	require.NoError(t, err)

	validator, err := NewJWTService(JWTConfig{Secret: "test-secret"})
	require.NoError(t, err)

	_, err = validator.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	other, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "someone-else"})
	require.NoError(t, err)
	token, err := other.GenerateAccessToken(AccessTokenInput{UserID: "user"})
	require.NoError(t, err)

	svc, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "sigpat"})
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestServiceRequiresSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	require.Error(t, err)
}
