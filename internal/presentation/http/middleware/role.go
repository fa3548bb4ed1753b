package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/milk-ledger/internal/domain/enum"
)

// RoleKey is the context key holding the caller's enum.Role.
const RoleKey = "role"

// RoleMiddleware marks every request in a route group with the role the
// group serves. There is no authentication: the path prefix decides.
func RoleMiddleware(role enum.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(RoleKey, role)
		c.Next()
	}
}
