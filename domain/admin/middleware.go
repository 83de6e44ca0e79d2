package admin

import (
	"net/http"
	"strings"

	"github.com/waitlyst/waitlyst/config/router"
)

// AdminCookieName carries the admin session token for browser clients;
// non-browser clients may send it as a bearer token instead.
const AdminCookieName = "waitlyst_admin"

// RequireAdmin aborts any request that does not hold a live admin session.
func RequireAdmin(service AdminService) router.MiddlewareFunc {
	return func(c *router.RequestContext) {
		token := adminToken(c)

		if !service.IsAuthenticated(c.Request.Context(), token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, router.UnauthorizedResult("Admin session required").ToJSON())
			return
		}

		c.Next()
	}
}

func adminToken(c *router.RequestContext) string {
	if token, err := c.Cookie(AdminCookieName); err == nil && token != "" {
		return token
	}

	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}

	return ""
}
