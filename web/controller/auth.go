package controller

import (
	"net/http"

	"userhub/logger"
	"userhub/web/service"
	"userhub/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request body.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// AuthController handles login and logout.
type AuthController struct {
	BaseController

	userService service.UserService
}

func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
}

// loginPage renders the login form. Any existing session is dropped so a
// fresh login attempt always starts clean.
func (a *AuthController) loginPage(c *gin.Context) {
	if err := session.ClearSession(c); err != nil {
		logger.Warning("clear session err:", err)
	}
	html(c, "login.html", "pages.login.title", nil)
}

// login authenticates the submitted credentials and establishes the session.
// Unknown usernames and wrong passwords produce the same response.
func (a *AuthController) login(c *gin.Context) {
	if err := session.ClearSession(c); err != nil {
		logger.Warning("clear session err:", err)
	}

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		htmlWithFlash(c, "login.html", "pages.login.title", "error",
			I18nWeb(c, "pages.login.toasts.invalidCredentials"))
		return
	}
	if form.Username == "" {
		htmlWithFlash(c, "login.html", "pages.login.title", "error",
			I18nWeb(c, "pages.login.toasts.usernameRequired"))
		return
	}
	if form.Password == "" {
		htmlWithFlash(c, "login.html", "pages.login.title", "error",
			I18nWeb(c, "pages.login.toasts.passwordRequired"))
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q from %s", form.Username, getRemoteIp(c))
		htmlWithFlash(c, "login.html", "pages.login.title", "error",
			I18nWeb(c, "pages.login.toasts.invalidCredentials"))
		return
	}

	err := session.SetLoginUser(c, session.User{
		Id:        user.Id,
		Username:  user.Username,
		FirstName: user.FirstName,
	})
	if err != nil {
		logger.Warning("unable to save session:", err)
		htmlWithFlash(c, "login.html", "pages.login.title", "error",
			I18nWeb(c, "pages.login.toasts.invalidCredentials"))
		return
	}

	logger.Infof("%s logged in successfully from %s", user.Username, getRemoteIp(c))
	c.Redirect(http.StatusFound, "/")
}

// logout clears the session unconditionally and redirects to the login page.
func (a *AuthController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out", user.Username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("clear session err:", err)
	}
	c.Redirect(http.StatusFound, "/login")
}
