package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"naxine_api/internal/models"
)

// LocalVerifier signs and verifies HS256 tokens with a deployment secret.
type LocalVerifier struct {
	secret []byte
}

func NewLocalVerifier(secret string) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret)}
}

// GenerateToken issues a signed token carrying the user's identity, role
// and account flags.
func (v *LocalVerifier) GenerateToken(u *models.Usuario) (string, error) {
	claims := jwt.MapClaims{
		"id_usuario":       u.ID,
		"email":            u.Email,
		"rol":              u.Rol,
		"email_verificado": u.EmailVerificado,
		"activo":           u.Activo,
		"exp":              time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

func (v *LocalVerifier) Verify(_ context.Context, tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claimsFromMap(mc), nil
}
