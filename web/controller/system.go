package controller

import (
	"strconv"

	"secondplan/database/model"
	"secondplan/logger"
	"secondplan/web/middleware"
	"secondplan/web/service"

	"github.com/gin-gonic/gin"
)

// SystemController exposes panel housekeeping endpoints to admins: recent
// log lines and a host status probe.
type SystemController struct {
	serverService *service.ServerService
}

func NewSystemController(api *gin.RouterGroup) *SystemController {
	a := &SystemController{
		serverService: service.NewServerService(),
	}
	a.initRouter(api)
	return a
}

func (a *SystemController) initRouter(api *gin.RouterGroup) {
	g := api.Group("/system")
	g.Use(middleware.RequireLogin(), middleware.RequireRole(model.RoleAdmin))
	g.GET("/status", a.status)
	g.GET("/logs", a.logs)
}

func (a *SystemController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus())
}

func (a *SystemController) logs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "100"))
	if err != nil || count <= 0 {
		count = 100
	}
	level := c.DefaultQuery("level", "info")
	jsonObj(c, logger.GetLogs(count, level))
}
