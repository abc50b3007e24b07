package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naxine_api/internal/models"
)

type fakeVerifier struct {
	claims *Claims
	err    error
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (*Claims, error) {
	return f.claims, f.err
}

type fakeDirectory struct {
	byID    map[uint]*models.Usuario
	byEmail map[string]*models.Usuario
	touched chan uint
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		byID:    map[uint]*models.Usuario{},
		byEmail: map[string]*models.Usuario{},
		touched: make(chan uint, 8),
	}
}

func (f *fakeDirectory) ByID(_ context.Context, id uint) (*models.Usuario, error) {
	return f.byID[id], nil
}

func (f *fakeDirectory) ByEmail(_ context.Context, email string) (*models.Usuario, error) {
	return f.byEmail[email], nil
}

func (f *fakeDirectory) TouchUltimoAcceso(_ context.Context, id uint) error {
	f.touched <- id
	return nil
}

func TestGateRejectsMissingCredential(t *testing.T) {
	g := NewGate(&fakeVerifier{claims: &Claims{}}, nil)

	for _, header := range []string{"", "token-sin-esquema", "Basic abc", "Bearer ", "Bearer   "} {
		_, err := g.Authenticate(context.Background(), header)
		assert.ErrorIs(t, err, ErrUnauthenticated, "header %q", header)
	}
}

func TestGateRejectsInvalidToken(t *testing.T) {
	g := NewGate(&fakeVerifier{err: errors.New("bad signature")}, nil)

	_, err := g.Authenticate(context.Background(), "Bearer whatever")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGatePrincipalFromClaims(t *testing.T) {
	g := NewGate(&fakeVerifier{claims: &Claims{
		UsuarioID:       9,
		Email:           "ana@example.com",
		Rol:             models.RolProfesionista,
		EmailVerificado: true,
		Activo:          true,
	}}, nil)

	p, err := g.Authenticate(context.Background(), "Bearer token")
	require.NoError(t, err)
	assert.Equal(t, uint(9), p.UsuarioID)
	assert.Equal(t, "ana@example.com", p.Email)
	assert.Equal(t, models.RolProfesionista, p.Rol)
	assert.True(t, p.EmailVerificado)
	assert.True(t, p.Activo)
}

func TestGateDirectoryOverridesClaims(t *testing.T) {
	// the local row is authoritative over whatever the token says
	dir := newFakeDirectory()
	dir.byID[9] = &models.Usuario{ID: 9, Rol: models.RolAdministrador, Activo: false, EmailVerificado: true}

	g := NewGate(&fakeVerifier{claims: &Claims{UsuarioID: 9, Rol: models.RolUsuario, Activo: true}}, dir)

	p, err := g.Authenticate(context.Background(), "Bearer token")
	require.NoError(t, err)
	assert.Equal(t, models.RolAdministrador, p.Rol)
	assert.False(t, p.Activo)
	assert.True(t, p.EmailVerificado)

	select {
	case id := <-dir.touched:
		assert.Equal(t, uint(9), id)
	case <-time.After(time.Second):
		t.Fatal("expected a last-access touch")
	}
}

func TestGateFederatedLookupByEmail(t *testing.T) {
	// federated tokens carry no local id, so the row is matched by email
	dir := newFakeDirectory()
	dir.byEmail["fede@example.com"] = &models.Usuario{ID: 31, Rol: models.RolUsuario, Activo: true}

	g := NewGate(&fakeVerifier{claims: &Claims{Email: "fede@example.com", Rol: models.RolUsuario, Activo: true}}, dir)

	p, err := g.Authenticate(context.Background(), "Bearer token")
	require.NoError(t, err)
	assert.Equal(t, uint(31), p.UsuarioID)
}

func TestGateUnknownUserKeepsClaimFields(t *testing.T) {
	dir := newFakeDirectory()
	g := NewGate(&fakeVerifier{claims: &Claims{UsuarioID: 77, Rol: models.RolUsuario, Activo: true}}, dir)

	p, err := g.Authenticate(context.Background(), "Bearer token")
	require.NoError(t, err)
	assert.Equal(t, uint(77), p.UsuarioID)
	assert.Equal(t, models.RolUsuario, p.Rol)

	select {
	case <-dir.touched:
		t.Fatal("no touch expected for an unknown user")
	case <-time.After(50 * time.Millisecond):
	}
}
