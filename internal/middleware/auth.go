package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"naxine_api/internal/auth"
)

const principalKey = "principal"

// RequireAuth authenticates every request through the injected gate and
// stores the resulting principal for downstream handlers.
func RequireAuth(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := gate.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			msg := "Token inválido o expirado"
			if errors.Is(err, auth.ErrUnauthenticated) {
				msg = "Se requiere un token de autenticación"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// PrincipalFrom returns the authenticated principal, or nil on routes that
// skipped RequireAuth.
func PrincipalFrom(c *gin.Context) *auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}
