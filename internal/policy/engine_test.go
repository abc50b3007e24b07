package policy

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naxine_api/internal/auth"
	"naxine_api/internal/models"
)

type fakeResolver struct {
	clienteID      uint
	hasCliente     bool
	profesionalID  uint
	hasProfesional bool
}

func (f *fakeResolver) OwnedClientID(_ context.Context, _ uint) (uint, bool, error) {
	return f.clienteID, f.hasCliente, nil
}

func (f *fakeResolver) OwnedProfessionalID(_ context.Context, _ uint) (uint, bool, error) {
	return f.profesionalID, f.hasProfesional, nil
}

type fakeTargets struct {
	refs map[string]*OwnerRef
}

func (f *fakeTargets) OwnerRef(_ context.Context, e Entity, id uint) (*OwnerRef, error) {
	return f.refs[fmt.Sprintf("%s/%d", e, id)], nil
}

func usuario(id uint) *auth.Principal {
	return &auth.Principal{UsuarioID: id, Rol: models.RolUsuario, Activo: true}
}

func profesionista(id uint) *auth.Principal {
	return &auth.Principal{UsuarioID: id, Rol: models.RolProfesionista, Activo: true}
}

func administrador(id uint) *auth.Principal {
	return &auth.Principal{UsuarioID: id, Rol: models.RolAdministrador, Activo: true}
}

func TestAuthorizeNilPrincipal(t *testing.T) {
	e := NewEngine(&fakeResolver{}, &fakeTargets{})

	d, err := e.Authorize(context.Background(), EntityPrecio, OpList, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)
	assert.Equal(t, ReasonUnauthenticated, d.Reason)
}

func TestAuthorizeAdministradorAlwaysAllowed(t *testing.T) {
	// admin decisions never consult ownership or target existence
	e := NewEngine(&fakeResolver{}, &fakeTargets{})
	admin := administrador(1)

	for _, entity := range []Entity{EntityUsuario, EntityCliente, EntityProfesional, EntitySesion, EntityValoracion, EntityPago, EntityPrecio, EntityEstadistica} {
		for _, op := range []Operation{OpCreate, OpRead, OpList, OpUpdate, OpDelete} {
			d, err := e.Authorize(context.Background(), entity, op, admin, 99)
			require.NoError(t, err)
			assert.Equal(t, Allow, d.Effect, "%s %s", entity, op)
			assert.False(t, d.Scope.Empty)
		}
	}
}

func TestAuthorizeUsuarioDeniedAdminEntities(t *testing.T) {
	e := NewEngine(&fakeResolver{}, &fakeTargets{
		refs: map[string]*OwnerRef{"usuarios/7": {Activo: true}},
	})

	d, err := e.Authorize(context.Background(), EntityUsuario, OpRead, usuario(7), 7)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)
	assert.Equal(t, ReasonForbidden, d.Reason)

	d, err = e.Authorize(context.Background(), EntityEstadistica, OpList, profesionista(7), 0)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)
}

func TestAuthorizeTargetNotFound(t *testing.T) {
	e := NewEngine(&fakeResolver{clienteID: 4, hasCliente: true}, &fakeTargets{})

	d, err := e.Authorize(context.Background(), EntityCliente, OpRead, usuario(1), 42)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)
	assert.Equal(t, ReasonNotFound, d.Reason)
}

func TestAuthorizeClienteOwnership(t *testing.T) {
	targets := &fakeTargets{refs: map[string]*OwnerRef{
		"clientes/4": {ClienteID: 4, Activo: true},
		"clientes/9": {ClienteID: 9, Activo: true},
	}}
	e := NewEngine(&fakeResolver{clienteID: 4, hasCliente: true}, targets)

	d, err := e.Authorize(context.Background(), EntityCliente, OpRead, usuario(1), 4)
	require.NoError(t, err)
	assert.Equal(t, Allow, d.Effect)

	d, err = e.Authorize(context.Background(), EntityCliente, OpUpdate, usuario(1), 4)
	require.NoError(t, err)
	assert.Equal(t, Allow, d.Effect)

	// someone else's client record
	d, err = e.Authorize(context.Background(), EntityCliente, OpRead, usuario(1), 9)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)
	assert.Equal(t, ReasonForbidden, d.Reason)

	// a usuario with no client projection owns nothing
	none := NewEngine(&fakeResolver{}, targets)
	d, err = none.Authorize(context.Background(), EntityCliente, OpRead, usuario(1), 4)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)
}

func TestAuthorizeProfesionalVisibility(t *testing.T) {
	targets := &fakeTargets{refs: map[string]*OwnerRef{
		"profesionales/2": {ProfesionalID: 2, Activo: true},
		"profesionales/3": {ProfesionalID: 3, Activo: false},
	}}
	e := NewEngine(&fakeResolver{profesionalID: 2, hasProfesional: true}, targets)

	d, err := e.Authorize(context.Background(), EntityProfesional, OpRead, usuario(1), 2)
	require.NoError(t, err)
	assert.Equal(t, Allow, d.Effect)

	// inactive profiles are hidden from usuarios
	d, err = e.Authorize(context.Background(), EntityProfesional, OpRead, usuario(1), 3)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)
	assert.Equal(t, ReasonForbidden, d.Reason)

	// but visible to other professionals
	d, err = e.Authorize(context.Background(), EntityProfesional, OpRead, profesionista(1), 3)
	require.NoError(t, err)
	assert.Equal(t, Allow, d.Effect)

	// listing is restricted to active rows for both roles
	d, err = e.Authorize(context.Background(), EntityProfesional, OpList, usuario(1), 0)
	require.NoError(t, err)
	assert.Equal(t, AllowScoped, d.Effect)
	assert.Equal(t, "activo", d.Scope.Column)
	assert.Equal(t, true, d.Scope.Value)
}

func TestAuthorizeProfesionalUpdateOwnOnly(t *testing.T) {
	targets := &fakeTargets{refs: map[string]*OwnerRef{
		"profesionales/2": {ProfesionalID: 2, Activo: true},
		"profesionales/5": {ProfesionalID: 5, Activo: true},
	}}
	e := NewEngine(&fakeResolver{profesionalID: 2, hasProfesional: true}, targets)

	d, err := e.Authorize(context.Background(), EntityProfesional, OpUpdate, profesionista(1), 2)
	require.NoError(t, err)
	assert.Equal(t, Allow, d.Effect)

	d, err = e.Authorize(context.Background(), EntityProfesional, OpUpdate, profesionista(1), 5)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)

	d, err = e.Authorize(context.Background(), EntityProfesional, OpUpdate, usuario(1), 2)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)
}

func TestAuthorizeSesionListScoping(t *testing.T) {
	e := NewEngine(&fakeResolver{clienteID: 4, hasCliente: true}, &fakeTargets{})

	d, err := e.Authorize(context.Background(), EntitySesion, OpList, usuario(1), 0)
	require.NoError(t, err)
	assert.Equal(t, AllowScoped, d.Effect)
	assert.Equal(t, "id_cliente", d.Scope.Column)
	assert.Equal(t, uint(4), d.Scope.Value)
	assert.False(t, d.Scope.Empty)

	// without a client projection the list is allowed but empty, never
	// an unscoped query
	none := NewEngine(&fakeResolver{}, &fakeTargets{})
	d, err = none.Authorize(context.Background(), EntitySesion, OpList, usuario(1), 0)
	require.NoError(t, err)
	assert.Equal(t, AllowScoped, d.Effect)
	assert.True(t, d.Scope.Empty)
}

func TestAuthorizeSesionReadOwnership(t *testing.T) {
	targets := &fakeTargets{refs: map[string]*OwnerRef{
		"sesiones/10": {ClienteID: 4, ProfesionalID: 2, Activo: true},
	}}

	d, err := NewEngine(&fakeResolver{clienteID: 4, hasCliente: true}, targets).
		Authorize(context.Background(), EntitySesion, OpRead, usuario(1), 10)
	require.NoError(t, err)
	assert.Equal(t, Allow, d.Effect)

	d, err = NewEngine(&fakeResolver{clienteID: 7, hasCliente: true}, targets).
		Authorize(context.Background(), EntitySesion, OpRead, usuario(1), 10)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)

	d, err = NewEngine(&fakeResolver{profesionalID: 2, hasProfesional: true}, targets).
		Authorize(context.Background(), EntitySesion, OpRead, profesionista(1), 10)
	require.NoError(t, err)
	assert.Equal(t, Allow, d.Effect)
}

func TestAuthorizeValoracionCreate(t *testing.T) {
	// the owned client id is carried on the scope and must be stamped on
	// the new record
	e := NewEngine(&fakeResolver{clienteID: 4, hasCliente: true}, &fakeTargets{})

	d, err := e.Authorize(context.Background(), EntityValoracion, OpCreate, usuario(1), 0)
	require.NoError(t, err)
	assert.Equal(t, AllowScoped, d.Effect)
	assert.Equal(t, "id_cliente", d.Scope.Column)
	assert.Equal(t, uint(4), d.Scope.Value)

	// no client projection, no rating
	none := NewEngine(&fakeResolver{}, &fakeTargets{})
	d, err = none.Authorize(context.Background(), EntityValoracion, OpCreate, usuario(1), 0)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)
	assert.Equal(t, ReasonForbidden, d.Reason)
}

func TestAuthorizePagoScoping(t *testing.T) {
	targets := &fakeTargets{refs: map[string]*OwnerRef{
		"pagos/3": {ProfesionalID: 2, Activo: true},
	}}
	e := NewEngine(&fakeResolver{profesionalID: 2, hasProfesional: true}, targets)

	d, err := e.Authorize(context.Background(), EntityPago, OpList, profesionista(1), 0)
	require.NoError(t, err)
	assert.Equal(t, AllowScoped, d.Effect)
	assert.Equal(t, "id_profesional", d.Scope.Column)
	assert.Equal(t, uint(2), d.Scope.Value)

	d, err = e.Authorize(context.Background(), EntityPago, OpRead, profesionista(1), 3)
	require.NoError(t, err)
	assert.Equal(t, Allow, d.Effect)

	// payment data is never exposed to usuarios
	d, err = e.Authorize(context.Background(), EntityPago, OpRead, usuario(1), 3)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)

	d, err = e.Authorize(context.Background(), EntityPago, OpList, usuario(1), 0)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)
}

func TestAuthorizePrecioOpenReads(t *testing.T) {
	targets := &fakeTargets{refs: map[string]*OwnerRef{
		"precios/1": {Activo: true},
	}}
	e := NewEngine(&fakeResolver{}, targets)

	for _, p := range []*auth.Principal{usuario(1), profesionista(1)} {
		d, err := e.Authorize(context.Background(), EntityPrecio, OpRead, p, 1)
		require.NoError(t, err)
		assert.Equal(t, Allow, d.Effect, p.Rol)

		d, err = e.Authorize(context.Background(), EntityPrecio, OpList, p, 0)
		require.NoError(t, err)
		assert.Equal(t, Allow, d.Effect, p.Rol)
	}

	d, err := e.Authorize(context.Background(), EntityPrecio, OpCreate, usuario(1), 0)
	require.NoError(t, err)
	assert.Equal(t, Deny, d.Effect)

	d, err = e.Authorize(context.Background(), EntityPrecio, OpCreate, profesionista(1), 0)
	require.NoError(t, err)
	assert.Equal(t, Allow, d.Effect)
}
