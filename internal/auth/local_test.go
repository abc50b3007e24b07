package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naxine_api/internal/models"
)

func TestLocalVerifierRoundTrip(t *testing.T) {
	v := NewLocalVerifier("test-secret")
	u := &models.Usuario{
		ID:              12,
		Email:           "ana@example.com",
		Rol:             models.RolProfesionista,
		EmailVerificado: true,
		Activo:          true,
	}

	token, err := v.GenerateToken(u)
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.UsuarioID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, models.RolProfesionista, claims.Rol)
	assert.True(t, claims.EmailVerificado)
	assert.True(t, claims.Activo)
}

func TestLocalVerifierWrongSecret(t *testing.T) {
	token, err := NewLocalVerifier("secret-a").GenerateToken(&models.Usuario{ID: 1})
	require.NoError(t, err)

	_, err = NewLocalVerifier("secret-b").Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLocalVerifierExpiredToken(t *testing.T) {
	v := NewLocalVerifier("test-secret")
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id_usuario": 1,
		"exp":        time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLocalVerifierRejectsUnsignedToken(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id_usuario": 1,
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewLocalVerifier("test-secret").Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLocalVerifierClaimDefaults(t *testing.T) {
	// tokens missing rol and activo fall back to an active usuario
	minimal := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "solo@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	token, err := minimal.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, err := NewLocalVerifier("test-secret").Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(0), claims.UsuarioID)
	assert.Equal(t, "solo@example.com", claims.Email)
	assert.Equal(t, models.RolUsuario, claims.Rol)
	assert.True(t, claims.Activo)
	assert.False(t, claims.EmailVerificado)
}
