package policy

import (
	"context"

	"naxine_api/internal/auth"
	"naxine_api/internal/models"
)

// Column names used by scope predicates and ownership comparisons.
const (
	colCliente     = "id_cliente"
	colProfesional = "id_profesional"
	colActivo      = "activo"
)

// OwnershipResolver maps a user identity to its owned projections. Absence
// is not an error: the boolean reports whether the projection exists.
type OwnershipResolver interface {
	OwnedClientID(ctx context.Context, usuarioID uint) (uint, bool, error)
	OwnedProfessionalID(ctx context.Context, usuarioID uint) (uint, bool, error)
}

// OwnerRef carries the owning foreign keys of a target record. Activo is
// meaningful for profesionales and true elsewhere.
type OwnerRef struct {
	ClienteID     uint
	ProfesionalID uint
	Activo        bool
}

// TargetStore fetches the owner reference of the record an operation
// targets. A nil ref means the record does not exist.
type TargetStore interface {
	OwnerRef(ctx context.Context, e Entity, id uint) (*OwnerRef, error)
}

// access states the conditions under which a role may perform an
// operation. The zero value grants unconditionally.
type access struct {
	ownClient       bool // target must belong to the principal's Cliente
	ownProfessional bool // target must belong to the principal's Profesional
	activeOnly      bool // read: only active records; list: activo=true scope
	scopeByClient   bool // list restricted to the owned Cliente
	scopeByProf     bool // list restricted to the owned Profesional
	requireClient   bool // create requires an owned Cliente, whose id is forced
}

// rules is the policy table: entity → operation → role → conditions.
// A role absent from an operation's map is denied; administrador never
// reaches the table.
var rules = map[Entity]map[Operation]map[string]access{
	EntityUsuario: {
		// account administration is administrator-only
	},
	EntityCliente: {
		OpCreate: {models.RolProfesionista: {}},
		OpRead: {
			models.RolUsuario:       {ownClient: true},
			models.RolProfesionista: {},
		},
		OpList: {models.RolProfesionista: {}},
		OpUpdate: {
			models.RolUsuario:       {ownClient: true},
			models.RolProfesionista: {},
		},
	},
	EntityProfesional: {
		OpRead: {
			models.RolUsuario:       {activeOnly: true},
			models.RolProfesionista: {},
		},
		OpList: {
			models.RolUsuario:       {activeOnly: true},
			models.RolProfesionista: {activeOnly: true},
		},
		OpUpdate: {models.RolProfesionista: {ownProfessional: true}},
	},
	EntitySesion: {
		OpCreate: {models.RolProfesionista: {}},
		OpRead: {
			models.RolUsuario:       {ownClient: true},
			models.RolProfesionista: {ownProfessional: true},
		},
		OpList: {
			models.RolUsuario:       {scopeByClient: true},
			models.RolProfesionista: {scopeByProf: true},
		},
		OpUpdate: {models.RolProfesionista: {ownProfessional: true}},
	},
	EntityValoracion: {
		OpCreate: {
			models.RolUsuario:       {requireClient: true},
			models.RolProfesionista: {requireClient: true},
		},
		OpRead: {
			models.RolUsuario:       {},
			models.RolProfesionista: {ownProfessional: true},
		},
		OpList: {
			models.RolUsuario:       {},
			models.RolProfesionista: {scopeByProf: true},
		},
	},
	EntityPago: {
		OpRead: {models.RolProfesionista: {ownProfessional: true}},
		OpList: {models.RolProfesionista: {scopeByProf: true}},
	},
	EntityPrecio: {
		OpCreate: {models.RolProfesionista: {}},
		OpRead: {
			models.RolUsuario:       {},
			models.RolProfesionista: {},
		},
		OpList: {
			models.RolUsuario:       {},
			models.RolProfesionista: {},
		},
		OpUpdate: {models.RolProfesionista: {}},
	},
	EntityEstadistica: {
		// reporting is administrator-only
	},
}

// Engine is the stateless authorization policy engine. Decisions follow a
// fixed precedence: administrador is unconditionally allowed, then the
// role allow-list applies, then ownership is confirmed against the target
// record, and list operations receive a scoping predicate.
type Engine struct {
	resolver OwnershipResolver
	targets  TargetStore
}

func NewEngine(resolver OwnershipResolver, targets TargetStore) *Engine {
	return &Engine{resolver: resolver, targets: targets}
}

// Authorize decides whether the principal may perform op on the entity.
// targetID is zero for create and list operations. The error return is
// reserved for storage failures; every policy outcome is a Decision.
func (e *Engine) Authorize(ctx context.Context, entity Entity, op Operation, p *auth.Principal, targetID uint) (Decision, error) {
	if p == nil {
		return deny(ReasonUnauthenticated), nil
	}
	if p.EsAdministrador() {
		return allow(), nil
	}

	acc, ok := rules[entity][op][p.Rol]
	if !ok {
		return deny(ReasonForbidden), nil
	}

	switch op {
	case OpList:
		return e.scopeList(ctx, acc, p)
	case OpCreate:
		return e.allowCreate(ctx, acc, p)
	default:
		return e.checkTarget(ctx, entity, acc, p, targetID)
	}
}

func (e *Engine) scopeList(ctx context.Context, acc access, p *auth.Principal) (Decision, error) {
	switch {
	case acc.scopeByClient:
		id, ok, err := e.resolver.OwnedClientID(ctx, p.UsuarioID)
		if err != nil {
			return Decision{}, err
		}
		if !ok {
			return allowEmpty(), nil
		}
		return allowScoped(colCliente, id), nil
	case acc.scopeByProf:
		id, ok, err := e.resolver.OwnedProfessionalID(ctx, p.UsuarioID)
		if err != nil {
			return Decision{}, err
		}
		if !ok {
			return allowEmpty(), nil
		}
		return allowScoped(colProfesional, id), nil
	case acc.activeOnly:
		return allowScoped(colActivo, true), nil
	}
	return allow(), nil
}

func (e *Engine) allowCreate(ctx context.Context, acc access, p *auth.Principal) (Decision, error) {
	if !acc.requireClient {
		return allow(), nil
	}
	id, ok, err := e.resolver.OwnedClientID(ctx, p.UsuarioID)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return deny(ReasonForbidden), nil
	}
	// the caller must stamp this id on the created record, overriding
	// whatever the request body claims
	return allowScoped(colCliente, id), nil
}

func (e *Engine) checkTarget(ctx context.Context, entity Entity, acc access, p *auth.Principal, targetID uint) (Decision, error) {
	ref, err := e.targets.OwnerRef(ctx, entity, targetID)
	if err != nil {
		return Decision{}, err
	}
	if ref == nil {
		// non-existence is role-independent, so it is reported before any
		// ownership verdict
		return deny(ReasonNotFound), nil
	}
	if acc.activeOnly && !ref.Activo {
		return deny(ReasonForbidden), nil
	}
	if acc.ownClient {
		id, ok, err := e.resolver.OwnedClientID(ctx, p.UsuarioID)
		if err != nil {
			return Decision{}, err
		}
		if !ok || id != ref.ClienteID {
			return deny(ReasonForbidden), nil
		}
	}
	if acc.ownProfessional {
		id, ok, err := e.resolver.OwnedProfessionalID(ctx, p.UsuarioID)
		if err != nil {
			return Decision{}, err
		}
		if !ok || id != ref.ProfesionalID {
			return deny(ReasonForbidden), nil
		}
	}
	return allow(), nil
}
