package rmiddleware

import (
	"context"
	"log"

	"github.com/DhavalSuthar-24/clubportal/internal/common"
	"github.com/DhavalSuthar-24/clubportal/pkg/responses"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ContextRoleKey = "user_role"

// RoleLookup returns the club role stored in the user's profile.
type RoleLookup interface {
	GetRole(ctx context.Context, userID uuid.UUID) (string, error)
}

// RoleMiddleware re-reads the user's role on every request and lets the
// request through only when it equals one of requiredRoles exactly. It must run
// after middleware.AuthMiddleware.
func RoleMiddleware(roles RoleLookup, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := common.GetUserIDFromContext(c)
		if err != nil {
			responses.Unauthorized(c, "Unauthorized: "+err.Error())
			return
		}

		userRole, err := roles.GetRole(c.Request.Context(), userID)
		if err != nil {
			log.Printf("role lookup for %s failed: %v", userID, err)
			responses.Forbidden(c, "")
			return
		}

		hasRequiredRole := false
		for _, requiredRole := range requiredRoles {
			if userRole == requiredRole {
				hasRequiredRole = true
				break
			}
		}

		if !hasRequiredRole {
			responses.Forbidden(c, "")
			return
		}

		c.Set(ContextRoleKey, userRole)
		c.Next()
	}
}

// DirectivaMiddleware is a convenience middleware for club directors.
func DirectivaMiddleware(roles RoleLookup) gin.HandlerFunc {
	return RoleMiddleware(roles, "directiva")
}
