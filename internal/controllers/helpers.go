package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"naxine_api/internal/auth"
	"naxine_api/internal/policy"
)

// Authorizer is the policy capability every controller delegates to.
// Controllers never implement role or ownership logic inline.
type Authorizer interface {
	Authorize(ctx context.Context, e policy.Entity, op policy.Operation, p *auth.Principal, targetID uint) (policy.Decision, error)
}

// abortDecision maps a policy denial onto the HTTP boundary.
func abortDecision(c *gin.Context, d policy.Decision) {
	switch d.Reason {
	case policy.ReasonUnauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Se requiere un token de autenticación"})
	case policy.ReasonNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro no encontrado"})
	case policy.ReasonLastAdministrator:
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se puede eliminar el último administrador"})
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Acceso denegado"})
	}
}

// storageError reports a persistence failure without leaking internals.
func storageError(c *gin.Context, err error) {
	logrus.WithError(err).WithField("path", c.FullPath()).Error("storage error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Error de base de datos"})
}

// paramID parses the :id route parameter. A false return means the
// response has already been written.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return 0, false
	}
	return uint(id), true
}
