package policy

// Entity names a protected resource type. Values match the API route and
// table names.
type Entity string

const (
	EntityUsuario     Entity = "usuarios"
	EntityCliente     Entity = "clientes"
	EntityProfesional Entity = "profesionales"
	EntitySesion      Entity = "sesiones"
	EntityValoracion  Entity = "valoraciones"
	EntityPago        Entity = "pagos"
	EntityPrecio      Entity = "precios"
	EntityEstadistica Entity = "estadisticas"
)

// Operation is one of the five resource operations the engine decides on.
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpList   Operation = "list"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Reason classifies a denial.
type Reason string

const (
	ReasonUnauthenticated   Reason = "Unauthenticated"
	ReasonForbidden         Reason = "Forbidden"
	ReasonNotFound          Reason = "NotFound"
	ReasonLastAdministrator Reason = "LastAdministrator"
)

// Effect is the decision variant.
type Effect int

const (
	Deny Effect = iota
	Allow
	AllowScoped
)

// Scope restricts a query to the principal's rows. For list operations it
// is a where-clause predicate; for valoracion creation it carries the
// owned client id that must be stamped on the new record. Empty means the
// principal owns no such entity and the result must be an empty list,
// never an unscoped query.
type Scope struct {
	Column string
	Value  any
	Empty  bool
}

// Decision is the engine's verdict for one (entity, operation, principal)
// triple. Deny is a terminal outcome, not an error.
type Decision struct {
	Effect Effect
	Reason Reason
	Scope  Scope
}

func (d Decision) Denied() bool { return d.Effect == Deny }

func allow() Decision {
	return Decision{Effect: Allow}
}

func deny(r Reason) Decision {
	return Decision{Effect: Deny, Reason: r}
}

func allowScoped(column string, value any) Decision {
	return Decision{Effect: AllowScoped, Scope: Scope{Column: column, Value: value}}
}

func allowEmpty() Decision {
	return Decision{Effect: AllowScoped, Scope: Scope{Empty: true}}
}
