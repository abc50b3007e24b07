package auth

import (
	"context"
	"strings"

	logrus "github.com/sirupsen/logrus"

	"naxine_api/internal/models"
)

// TokenVerifier is the single verification capability behind the gate.
// The deployment enforces exactly one mode: local HMAC or Cognito JWKS.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// UserDirectory looks up the durable local identity behind a verified
// claim set and records last-access touches.
type UserDirectory interface {
	ByID(ctx context.Context, id uint) (*models.Usuario, error)
	ByEmail(ctx context.Context, email string) (*models.Usuario, error)
	TouchUltimoAcceso(ctx context.Context, id uint) error
}

// Gate authenticates requests. It is constructed once at startup with its
// verifier and passed explicitly to the middleware; it holds no mutable
// state.
type Gate struct {
	verifier TokenVerifier
	users    UserDirectory
}

func NewGate(verifier TokenVerifier, users UserDirectory) *Gate {
	return &Gate{verifier: verifier, users: users}
}

// Authenticate turns an Authorization header into a Principal.
// Returns ErrUnauthenticated when no bearer token is present and
// ErrInvalidToken when verification fails.
func (g *Gate) Authenticate(ctx context.Context, authHeader string) (*Principal, error) {
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, ErrUnauthenticated
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if tokenStr == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := g.verifier.Verify(ctx, tokenStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	p := &Principal{
		UsuarioID:       claims.UsuarioID,
		Email:           claims.Email,
		Rol:             claims.Rol,
		EmailVerificado: claims.EmailVerificado,
		Activo:          claims.Activo,
	}

	// Resolve the durable local identity. Federated tokens carry no local
	// id, so those are matched by email. A lookup failure never fails the
	// request; the principal simply keeps its claim-sourced fields.
	if g.users != nil {
		u, err := g.lookup(ctx, claims)
		if err != nil {
			logrus.WithError(err).Warn("auth: user directory lookup failed")
		} else if u != nil {
			p.UsuarioID = u.ID
			p.Rol = u.Rol
			p.Activo = u.Activo
			p.EmailVerificado = u.EmailVerificado
			go g.touch(u.ID)
		}
	}
	return p, nil
}

func (g *Gate) lookup(ctx context.Context, claims *Claims) (*models.Usuario, error) {
	if claims.UsuarioID != 0 {
		return g.users.ByID(ctx, claims.UsuarioID)
	}
	if claims.Email != "" {
		return g.users.ByEmail(ctx, claims.Email)
	}
	return nil, nil
}

// touch records ultimo_acceso off the request path.
func (g *Gate) touch(id uint) {
	if err := g.users.TouchUltimoAcceso(context.Background(), id); err != nil {
		logrus.WithError(err).WithField("id_usuario", id).Warn("auth: could not record last access")
	}
}
