// Package web provides the web server for userhub: routing, templates,
// session middleware, and the scheduled cleanup job.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"userhub/config"
	"userhub/logger"
	"userhub/util/common"
	"userhub/util/random"
	"userhub/web/controller"
	"userhub/web/job"
	"userhub/web/locale"
	"userhub/web/middleware"
	websession "userhub/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

// orphanGrace keeps freshly written uploads out of the cleanup job's reach.
const orphanGrace = 24 * time.Hour

// Server is the userhub web server with its controllers and cron scheduler.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index  *controller.IndexController
	auth   *controller.AuthController
	users  *controller.UserController
	server *controller.ServerController

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(htmlFS, "html/*.html")
}

// initRouter initializes Gin, registers middleware, templates, and
// controllers, and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		logger.Error("panic recovered:", err)
		renderError(c, http.StatusInternalServerError)
	}))

	secret := config.GetSecret()
	if secret == "" {
		secret = random.Seq(32)
		logger.Warning("APP_SECRET not set, sessions will not survive a restart")
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
	})
	engine.Use(sessions.Sessions(websession.CookieName, store))

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	engine.Use(locale.LocalizerMiddleware())

	funcMap := template.FuncMap{"i18n": locale.I18n}
	tpl, err := s.getHtmlTemplate(funcMap)
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	engine.Use(middleware.BodySizeLimit(config.GetMaxUploadSize()))

	// Uploaded pictures are served straight off disk.
	engine.Static("/static/uploads/images", config.GetProfilePicsFolder())

	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		renderError(c, http.StatusNotFound)
	})
	engine.NoMethod(func(c *gin.Context) {
		renderError(c, http.StatusNotFound)
	})

	g := engine.Group("/")
	s.index = controller.NewIndexController(g)
	s.auth = controller.NewAuthController(g)
	s.users = controller.NewUserController(g)
	s.server = controller.NewServerController(g)

	return engine, nil
}

func renderError(c *gin.Context, code int) {
	messageKey := "pages.error.serverError"
	if code == http.StatusNotFound {
		messageKey = "pages.error.notFound"
	}
	c.HTML(code, "error.html", gin.H{
		"title":   "pages.error.title",
		"cur_ver": config.GetVersion(),
		"code":    strconv.Itoa(code),
		"message": locale.I18n(messageKey),
	})
	c.Abort()
}

// startTask schedules the background maintenance jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewOrphanPictureCleanupJob(config.GetProfilePicsFolder(), orphanGrace))
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	for _, dir := range []string{config.GetUploadFolder(), config.GetProfilePicsFolder()} {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	s.cron = cron.New()
	s.startTask()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	return nil
}

// Stop gracefully shuts down the web server and the cron scheduler.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
