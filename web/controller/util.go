package controller

import (
	"net"
	"net/http"

	"userhub/config"
	"userhub/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real client address from proxy headers or the
// remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		return value
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// html renders a template, draining queued flash messages and the logged-in
// user into the page data.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["cur_ver"] = config.GetVersion()
	if _, ok := data["flashes"]; !ok {
		data["flashes"] = session.TakeFlashes(c)
	}
	if user := session.GetLoginUser(c); user != nil {
		data["username"] = user.Username
		data["firstName"] = user.FirstName
	}
	c.HTML(http.StatusOK, name, data)
}

// htmlWithFlash renders a template with an immediate one-shot message, the
// way a failed form submission re-renders without a redirect.
func htmlWithFlash(c *gin.Context, name string, title string, category, message string) {
	html(c, name, title, gin.H{
		"flashes": []session.FlashMessage{{Category: category, Message: message}},
	})
}

// isAjax checks if the request is an AJAX request.
func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// wantsJSON reports whether the caller asked for a JSON response.
func wantsJSON(c *gin.Context) bool {
	return isAjax(c) || c.GetHeader("Accept") == "application/json"
}
