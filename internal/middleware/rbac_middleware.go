package middleware

import (
	"net/http"

	"github.com/esnupy/lafa/internal/shared/apperror"
	"github.com/esnupy/lafa/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is a local interface; any type with Enforce fits.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Falta contexto de autenticacion", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Error al evaluar permisos", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"No tienes permiso para esta accion", resource+":"+action)
			c.Abort()
			return
		}
		c.Next()
	}
}
