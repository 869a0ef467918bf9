// Package web provides the SecondPlan web server: HTTP/HTTPS serving,
// routing, session handling, embedded templates and scheduled maintenance.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"time"

	"secondplan/config"
	"secondplan/logger"
	"secondplan/util/random"
	"secondplan/web/controller"
	"secondplan/web/job"
	"secondplan/web/middleware"
	"secondplan/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html/*
var htmlFS embed.FS

// Server is the SecondPlan web server with its controllers and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index   *controller.IndexController
	panel   *controller.PanelController
	booking *controller.BookingController
	event   *controller.EventController
	expense *controller.ExpenseController
	merch   *controller.MerchandiseController
	task    *controller.TaskController
	users   *controller.UserAdminController
	system  *controller.SystemController

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// getHtmlTemplate parses the embedded HTML templates.
func (s *Server) getHtmlTemplate() (*template.Template, error) {
	return template.New("").ParseFS(htmlFS, "html/*.html")
}

// initRouter initializes gin, registers middleware, templates, static assets
// and controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	if webDomain := config.GetWebDomain(); webDomain != "" {
		engine.Use(middleware.DomainValidator(webDomain))
	}

	basePath := config.GetBasePath()
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", basePath)
		c.Next()
	})

	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{basePath + "api/"}),
	))

	secret := config.GetSessionSecret()
	if secret == "" {
		secret = random.TokenHex(32)
		logger.Warning("SP_SESSION_SECRET not set; sessions will not survive a restart")
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   config.GetCertFile() != "",
	})
	engine.Use(sessions.Sessions(session.CookieName, store))
	engine.Use(middleware.SessionRotate())

	tpl, err := s.getHtmlTemplate()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		return nil, err
	}
	engine.StaticFS(basePath+"assets", http.FS(assets))
	engine.Static(basePath+"uploads", config.GetUploadFolder())

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	g := engine.Group(basePath)
	s.index = controller.NewIndexController(g, loginLimiter)
	s.panel = controller.NewPanelController(g)

	api := g.Group("/api")
	api.Use(middleware.CsrfGuard())
	s.booking = controller.NewBookingController(api)
	s.event = controller.NewEventController(api)
	s.expense = controller.NewExpenseController(api)
	s.merch = controller.NewMerchandiseController(api)
	s.task = controller.NewTaskController(api)
	s.users = controller.NewUserAdminController(api)
	s.system = controller.NewSystemController(api)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules background maintenance jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewOrphanUploadJob())
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listen := config.GetListen()
	listener, err := net.Listen("tcp", listen)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{Handler: engine}
	certFile := config.GetCertFile()
	keyFile := config.GetKeyFile()

	s.startTask()

	go func() {
		var serveErr error
		if certFile != "" && keyFile != "" {
			logger.Infof("%s %s serving https on %s", config.GetName(), config.GetVersion(), listen)
			serveErr = s.httpServer.ServeTLS(listener, certFile, keyFile)
		} else {
			logger.Infof("%s %s serving http on %s", config.GetName(), config.GetVersion(), listen)
			serveErr = s.httpServer.Serve(listener)
		}
		if serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("web server exited:", serveErr)
		}
	}()

	return nil
}

// Stop shuts the server, listener and scheduled jobs down.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		if closeErr := s.listener.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}
