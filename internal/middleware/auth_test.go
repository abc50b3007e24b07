package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naxine_api/internal/auth"
	"naxine_api/internal/models"
)

func testRouter(t *testing.T) (*gin.Engine, *auth.LocalVerifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	verifier := auth.NewLocalVerifier("test-secret")
	gate := auth.NewGate(verifier, nil)

	r := gin.New()
	r.GET("/protegido", RequireAuth(gate), func(c *gin.Context) {
		p := PrincipalFrom(c)
		require.NotNil(t, p)
		c.JSON(http.StatusOK, gin.H{"email": p.Email, "rol": p.Rol})
	})
	return r, verifier
}

func TestRequireAuthMissingToken(t *testing.T) {
	r, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Se requiere un token de autenticación")
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token inválido o expirado")
}

func TestRequireAuthValidToken(t *testing.T) {
	r, verifier := testRouter(t)

	token, err := verifier.GenerateToken(&models.Usuario{
		ID:     5,
		Email:  "ana@example.com",
		Rol:    models.RolProfesionista,
		Activo: true,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ana@example.com", body["email"])
	assert.Equal(t, models.RolProfesionista, body["rol"])
}

func TestPrincipalFromUnauthenticatedContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, PrincipalFrom(c))
}
