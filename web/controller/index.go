package controller

import (
	"net/http"
	"strings"
	"time"

	"secondplan/config"
	"secondplan/logger"
	"secondplan/web/entity"
	"secondplan/web/middleware"
	"secondplan/web/service"
	"secondplan/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Next     string `json:"next" form:"next"`
}

// RegisterForm represents the registration request structure.
type RegisterForm struct {
	Name            string `json:"name" form:"name"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	Role            string `json:"role" form:"role"`
}

// IndexController handles the public pages and the login, registration and
// logout flows.
type IndexController struct {
	BaseController

	userService service.UserService
}

// NewIndexController creates an IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup, limiter *middleware.RateLimiter) *IndexController {
	a := &IndexController{}
	a.initRouter(g, limiter)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup, limiter *middleware.RateLimiter) {
	g.GET("/", a.index)
	g.GET("/login", a.loginPage)
	g.GET("/register", a.registerPage)

	auth := g.Group("/auth")
	auth.GET("/csrf", a.csrfToken)
	auth.GET("/logout", a.logout)

	guarded := auth.Group("", limiter.Limit(), middleware.CsrfGuard())
	guarded.POST("/login", a.login)
	guarded.POST("/register", a.register)
}

// index shows the public marketing page with the booking inquiry form.
func (a *IndexController) index(c *gin.Context) {
	html(c, "index.html", "SecondPlan", nil)
}

func (a *IndexController) loginPage(c *gin.Context) {
	if session.IsLogin(c) {
		user := session.GetLoginUser(c)
		c.Redirect(http.StatusTemporaryRedirect, a.userService.LandingPath(user.Role))
		return
	}
	html(c, "login.html", "Log in", gin.H{
		"registered": c.Query("registered") == "1",
	})
}

func (a *IndexController) registerPage(c *gin.Context) {
	html(c, "register.html", "Create account", nil)
}

// csrfToken returns the session's current CSRF token, minting one if needed.
func (a *IndexController) csrfToken(c *gin.Context) {
	ttl := time.Duration(config.GetCsrfTokenTTL()) * time.Second
	token, err := session.IssueCsrfToken(c, ttl)
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, gin.H{"token": token})
}

// login authenticates email+password credentials and establishes a session.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid form data.")
		return
	}
	if form.Email == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "Email and password are required.")
		return
	}

	user := a.userService.CheckUser(form.Email, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q, IP: %s", form.Email, getRemoteIp(c))
		pureJsonMsg(c, http.StatusUnauthorized, false, "Invalid email or password.")
		return
	}

	role := a.userService.PrimaryRole(user)
	err := session.SetLoginUser(c, session.User{
		Id:    user.Id,
		Name:  user.Name,
		Email: user.Email,
		Role:  role,
	})
	if err != nil {
		jsonFail(c, err)
		return
	}

	redirect := a.userService.LandingPath(role)
	if next := sanitizeNext(form.Next); next != "" {
		redirect = next
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Email, getRemoteIp(c))
	c.JSON(http.StatusOK, entity.Msg{
		Success: true,
		Message: "Logged in.",
		Data:    entity.LoginResult{Role: role, Redirect: redirect},
	})
}

// register creates a self-service account and points the client at the login
// page with a registered flag.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid form data.")
		return
	}

	user, err := a.userService.Register(form.Name, form.Email, form.Password, form.ConfirmPassword, form.Role)
	if err != nil {
		jsonFail(c, err)
		return
	}

	logger.Infof("registered new account %s (%s)", user.Email, form.Role)
	c.JSON(http.StatusCreated, entity.Msg{
		Success: true,
		Message: "Account created. Please log in.",
		Data:    gin.H{"redirect": "/login?registered=1"},
		Id:      user.Id,
	})
}

// logout destroys all session state unconditionally.
func (a *IndexController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil {
		logger.Infof("%s logged out", user.Email)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, "/")
}

// sanitizeNext keeps post-login redirects on-site.
func sanitizeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}
