package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Identity is supplied by the external auth layer as headers on every
// request; the core never authenticates, it only consumes the caller's
// identity for ownership and admin checks.
const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	ctxUserID  = "identity.user_id"
	ctxIsAdmin = "identity.is_admin"
)

func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(headerUserID); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				c.Set(ctxUserID, id)
			}
		}
		c.Set(ctxIsAdmin, c.GetHeader(headerUserRole) == "admin")
		c.Next()
	}
}

func currentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}

func isAdmin(c *gin.Context) bool {
	return c.GetBool(ctxIsAdmin)
}
