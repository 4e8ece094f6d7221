package controller

import (
	"net/http"

	"userhub/database"

	"github.com/gin-gonic/gin"
)

// ServerController exposes operational probes.
type ServerController struct {
	BaseController
}

func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g.GET("/health", a.health)
}

// health probes store connectivity.
func (a *ServerController) health(c *gin.Context) {
	if err := database.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "database connected"})
}
