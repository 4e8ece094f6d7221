package controller

import (
	"net/http"

	"userhub/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController routes the bare root path.
type IndexController struct {
	BaseController
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
}

func (a *IndexController) index(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusFound, "/users")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
