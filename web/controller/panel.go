package controller

import (
	"secondplan/database/model"
	"secondplan/web/middleware"

	"github.com/gin-gonic/gin"
)

// PanelController serves the server-rendered admin and band page shells. The
// tables on these pages are filled in by client JS calling the /api routes.
type PanelController struct {
	BaseController
}

func NewPanelController(g *gin.RouterGroup) *PanelController {
	a := &PanelController{}
	a.initRouter(g)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup) {
	admin := g.Group("/admin")
	admin.Use(a.checkLogin, middleware.RequireRole(model.RoleManager))
	admin.GET("/dashboard", a.adminDashboard)
	admin.GET("/bookings", a.bookings)
	admin.GET("/events", a.events)
	admin.GET("/expenses", a.expenses)
	admin.GET("/merchandise", a.merchandise)
	admin.GET("/tasks", a.tasks)
	admin.GET("/users", middleware.RequireRole(model.RoleAdmin), a.users)

	band := g.Group("/band")
	band.Use(a.checkLogin, middleware.RequireRole(model.RoleBandMember, model.RoleManager))
	band.GET("/dashboard", a.bandDashboard)
	band.GET("/tasks", a.tasks)
	band.GET("/expenses", a.expenses)
}

func (a *PanelController) adminDashboard(c *gin.Context) {
	html(c, "dashboard.html", "Dashboard", gin.H{"panel": "admin"})
}

func (a *PanelController) bandDashboard(c *gin.Context) {
	html(c, "dashboard.html", "Band dashboard", gin.H{"panel": "band"})
}

func (a *PanelController) bookings(c *gin.Context) {
	html(c, "bookings.html", "Bookings", nil)
}

func (a *PanelController) events(c *gin.Context) {
	html(c, "events.html", "Events", nil)
}

func (a *PanelController) expenses(c *gin.Context) {
	html(c, "expenses.html", "Expenses", nil)
}

func (a *PanelController) merchandise(c *gin.Context) {
	html(c, "merchandise.html", "Merchandise", nil)
}

func (a *PanelController) tasks(c *gin.Context) {
	html(c, "tasks.html", "Tasks", nil)
}

func (a *PanelController) users(c *gin.Context) {
	html(c, "users.html", "Users", nil)
}
