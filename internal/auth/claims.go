package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"naxine_api/internal/models"
)

var (
	// ErrUnauthenticated indicates the request carried no bearer credential.
	ErrUnauthenticated = errors.New("missing bearer credential")
	// ErrInvalidToken indicates signature or expiry verification failed.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims are the verified token claims, independent of which verification
// mode produced them.
type Claims struct {
	UsuarioID       uint
	Email           string
	Rol             string
	EmailVerificado bool
	Activo          bool
}

// Principal is the authenticated identity and role context for one request.
// It is built fresh per request and discarded afterwards.
type Principal struct {
	UsuarioID       uint
	Email           string
	Rol             string
	EmailVerificado bool
	Activo          bool
}

func (p *Principal) EsAdministrador() bool {
	return p != nil && p.Rol == models.RolAdministrador
}

// claimsFromMap extracts our claim set from raw JWT claims, applying the
// defaults for absent fields: rol "usuario", activo true.
func claimsFromMap(mc jwt.MapClaims) *Claims {
	claims := &Claims{Rol: models.RolUsuario, Activo: true}

	if v, ok := mc["id_usuario"].(float64); ok {
		claims.UsuarioID = uint(v)
	}
	if v, ok := mc["email"].(string); ok {
		claims.Email = v
	}
	if v, ok := mc["rol"].(string); ok && v != "" {
		claims.Rol = v
	}
	if v, ok := mc["email_verificado"].(bool); ok {
		claims.EmailVerificado = v
	} else if v, ok := mc["email_verified"].(bool); ok {
		// Cognito spells the flag in English
		claims.EmailVerificado = v
	}
	if v, ok := mc["activo"].(bool); ok {
		claims.Activo = v
	}
	return claims
}
