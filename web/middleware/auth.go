package middleware

import (
	"net/http"

	"userhub/web/session"

	"github.com/gin-gonic/gin"
)

// LoginRequired refuses requests without an active session. Browsers are
// redirected to the login page, AJAX callers get a JSON 401.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.IsLogin(c) {
			c.Next()
			return
		}
		if isAjax(c) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		} else {
			c.Redirect(http.StatusFound, "/login")
		}
		c.Abort()
	}
}

func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
