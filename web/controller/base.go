// Package controller provides the HTTP request handlers: login/logout,
// registration, the paginated user directory, and the health probe.
package controller

import (
	"userhub/logger"

	"github.com/gin-gonic/gin"
)

// BaseController carries behavior shared by all controllers.
type BaseController struct{}

// I18nWeb retrieves a localized message through the translation func the
// locale middleware put on the context.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return name
	}
	i18nFunc, _ := anyfunc.(func(key string, params ...string) string)
	return i18nFunc(name, params...)
}
