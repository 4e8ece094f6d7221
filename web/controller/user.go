package controller

import (
	"errors"
	"net/http"
	"strconv"

	"userhub/config"
	"userhub/logger"
	"userhub/util/validation"
	"userhub/web/entity"
	"userhub/web/middleware"
	"userhub/web/service"
	"userhub/web/session"

	"github.com/gin-gonic/gin"
)

// UserController handles registration and the paginated user directory.
type UserController struct {
	BaseController

	userService   service.UserService
	uploadService service.UploadService
}

func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g.GET("/register", a.registerPage)
	g.POST("/register", a.register)
	g.GET("/users", middleware.LoginRequired(), a.users)
}

func (a *UserController) registerPage(c *gin.Context) {
	html(c, "register.html", "pages.register.title", nil)
}

// register runs the full registration workflow: validate, save the picture,
// hash and insert, then log the new user in. Every failure re-renders the
// form with the first violated rule; a username/email conflict is reported
// the same way, never retried.
func (a *UserController) register(c *gin.Context) {
	file, err := c.FormFile("profilePicture")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			a.flashTooLarge(c)
			return
		}
		// Missing file falls through to the validation pipeline so the
		// rejection order stays fixed.
		file = nil
	}

	var form validation.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			a.flashTooLarge(c)
			return
		}
		logger.Warning("bind register form err:", err)
	}
	if file != nil {
		form.PictureFilename = file.Filename
	}

	if verr := validation.CheckRegistration(form, config.GetPhoneRegion()); verr != nil {
		htmlWithFlash(c, "register.html", "pages.register.title", "error", I18nWeb(c, verr.Key))
		return
	}

	src, err := file.Open()
	if err != nil {
		logger.Error("open uploaded picture err:", err)
		htmlWithFlash(c, "register.html", "pages.register.title", "error",
			I18nWeb(c, "pages.register.toasts.pictureRequired"))
		return
	}
	defer src.Close()

	picName, err := a.uploadService.SavePicture(src, file.Filename, config.GetProfilePicsFolder())
	if err != nil {
		logger.Error("save uploaded picture err:", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"title":   "pages.error.title",
			"code":    http.StatusInternalServerError,
			"message": I18nWeb(c, "pages.error.serverError"),
		})
		return
	}

	user, err := a.userService.Register(form, picName)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUser) {
			htmlWithFlash(c, "register.html", "pages.register.title", "error",
				I18nWeb(c, "pages.register.toasts.duplicate"))
			return
		}
		logger.Error("register user err:", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"title":   "pages.error.title",
			"code":    http.StatusInternalServerError,
			"message": I18nWeb(c, "pages.error.serverError"),
		})
		return
	}

	err = session.SetLoginUser(c, session.User{
		Id:        user.Id,
		Username:  user.Username,
		FirstName: user.FirstName,
	})
	if err != nil {
		logger.Warning("unable to save session:", err)
	}
	if err := session.Flash(c, "success", I18nWeb(c, "pages.register.toasts.success")); err != nil {
		logger.Warning("flash err:", err)
	}

	logger.Infof("new user %s registered from %s", user.Username, getRemoteIp(c))
	c.Redirect(http.StatusFound, "/users")
}

func (a *UserController) flashTooLarge(c *gin.Context) {
	maxMB := strconv.FormatInt(config.GetMaxUploadSize()/(1024*1024), 10)
	if err := session.Flash(c, "error", I18nWeb(c, "upload.tooLarge", "Max=="+maxMB)); err != nil {
		logger.Warning("flash err:", err)
	}
	c.Redirect(http.StatusFound, c.Request.URL.Path)
}

// users serves the paginated directory, excluding administrator accounts.
// Browsers get the rendered table, AJAX callers the JSON page.
func (a *UserController) users(c *gin.Context) {
	page := atoiDefault(c.Query("page"), 1)
	perPage := atoiDefault(c.Query("per_page"), service.DefaultPerPage)

	total, list, err := a.userService.ListNonAdmins(page, perPage)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
			return
		}
		logger.Error("list users err:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if perPage > service.MaxPerPage {
		perPage = service.MaxPerPage
	}
	if perPage <= 0 {
		perPage = service.DefaultPerPage
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, entity.UserPage{
			Total:   total,
			Page:    page,
			PerPage: perPage,
			Users:   list,
		})
		return
	}

	totalPages := (total + int64(perPage) - 1) / int64(perPage)
	html(c, "users.html", "pages.users.title", gin.H{
		"users":      list,
		"total":      total,
		"page":       page,
		"perPage":    perPage,
		"totalPages": totalPages,
		"hasPrev":    page > 1,
		"hasNext":    int64(page) < totalPages,
		"prevPage":   page - 1,
		"nextPage":   page + 1,
	})
}

// atoiDefault mirrors the lenient query parsing of the original app: any
// unparsable value falls back to the default rather than erroring.
func atoiDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
