package controller

import (
	"secondplan/database/model"
	"secondplan/logger"
	"secondplan/web/middleware"
	"secondplan/web/service"
	"secondplan/web/session"

	"github.com/gin-gonic/gin"
)

// EventController exposes event CRUD for managers, including the optional
// poster upload.
type EventController struct {
	eventService  service.EventService
	uploadService service.UploadService
}

func NewEventController(api *gin.RouterGroup) *EventController {
	a := &EventController{}
	a.initRouter(api)
	return a
}

func (a *EventController) initRouter(api *gin.RouterGroup) {
	g := api.Group("/events")
	g.Use(middleware.RequireLogin(), middleware.RequireRole(model.RoleManager))
	g.GET("", a.list)
	g.GET("/stats", a.stats)
	g.GET("/:id", a.get)
	g.POST("", a.create)
	g.PUT("/:id", a.update)
	g.DELETE("/:id", a.del)
	g.POST("/:id/cancel", a.cancel)
}

func (a *EventController) list(c *gin.Context) {
	events, err := a.eventService.GetEvents(service.EventFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
	})
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, events)
}

func (a *EventController) stats(c *gin.Context) {
	stats, err := a.eventService.Stats()
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, stats)
}

func (a *EventController) get(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	event, err := a.eventService.GetEvent(id)
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, event)
}

func (a *EventController) create(c *gin.Context) {
	var event model.Event
	if err := c.ShouldBind(&event); err != nil {
		pureJsonMsg(c, 400, false, "Invalid form data.")
		return
	}
	if user := session.GetLoginUser(c); user != nil {
		event.CreatedBy = user.Id
	}

	poster, err := a.savePoster(c)
	if err != nil {
		jsonFail(c, err)
		return
	}
	event.PosterPath = poster

	if err := a.eventService.CreateEvent(&event); err != nil {
		// The row never landed; do not leave the poster orphaned.
		if poster != "" {
			if rmErr := a.uploadService.Remove(poster); rmErr != nil {
				logger.Warning("could not remove orphaned poster:", rmErr)
			}
		}
		jsonFail(c, err)
		return
	}
	jsonCreated(c, event.Id)
}

func (a *EventController) update(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	var event model.Event
	if err := c.ShouldBind(&event); err != nil {
		pureJsonMsg(c, 400, false, "Invalid form data.")
		return
	}

	poster, err := a.savePoster(c)
	if err != nil {
		jsonFail(c, err)
		return
	}
	event.PosterPath = poster

	if err := a.eventService.UpdateEvent(id, &event); err != nil {
		if poster != "" {
			if rmErr := a.uploadService.Remove(poster); rmErr != nil {
				logger.Warning("could not remove orphaned poster:", rmErr)
			}
		}
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "Event updated.")
}

// savePoster stores the optional poster file, returning its relative path or
// "" when the request carries no file.
func (a *EventController) savePoster(c *gin.Context) (string, error) {
	header, err := c.FormFile("poster")
	if err != nil {
		return "", nil
	}
	return a.uploadService.Save(header, service.UploadPoster)
}

func (a *EventController) cancel(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	if err := a.eventService.CancelEvent(id); err != nil {
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "Event cancelled.")
}

func (a *EventController) del(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	if err := a.eventService.DeleteEvent(id); err != nil {
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "Event deleted.")
}
