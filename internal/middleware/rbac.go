package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/response"
)

// RequireRole checks that the JWT belongs to an account of the given role.
// Must run after RequireJWT.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if claims.Role != role {
			response.AbortFail(c, http.StatusForbidden, roleOnlyCode(role))
			return
		}

		c.Next()
	}
}

func roleOnlyCode(role model.Role) response.ErrCode {
	switch role {
	case model.RoleAdmin:
		return response.ErrAdminAccessOnly
	case model.RoleRecruiter:
		return response.ErrRecruiterOnly
	case model.RoleStudent:
		return response.ErrStudentAccessOnly
	}
	return response.ErrForbidden
}
