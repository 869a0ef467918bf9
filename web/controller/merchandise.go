package controller

import (
	"secondplan/database/model"
	"secondplan/logger"
	"secondplan/web/middleware"
	"secondplan/web/service"

	"github.com/gin-gonic/gin"
)

// MerchandiseController exposes merchandise CRUD for managers, including the
// item image upload.
type MerchandiseController struct {
	merchService  service.MerchandiseService
	uploadService service.UploadService
}

func NewMerchandiseController(api *gin.RouterGroup) *MerchandiseController {
	a := &MerchandiseController{}
	a.initRouter(api)
	return a
}

func (a *MerchandiseController) initRouter(api *gin.RouterGroup) {
	g := api.Group("/merchandise")
	g.Use(middleware.RequireLogin(), middleware.RequireRole(model.RoleManager))
	g.GET("", a.list)
	g.GET("/stats", a.stats)
	g.GET("/:id", a.get)
	g.POST("", a.create)
	g.PUT("/:id", a.update)
	g.DELETE("/:id", a.del)
}

func (a *MerchandiseController) list(c *gin.Context) {
	items, err := a.merchService.GetItems(c.Query("q"))
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, items)
}

func (a *MerchandiseController) stats(c *gin.Context) {
	stats, err := a.merchService.Stats()
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, stats)
}

func (a *MerchandiseController) get(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	item, err := a.merchService.GetItem(id)
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, item)
}

func (a *MerchandiseController) create(c *gin.Context) {
	var item model.Merchandise
	if err := c.ShouldBind(&item); err != nil {
		pureJsonMsg(c, 400, false, "Invalid form data.")
		return
	}

	image, err := a.saveImage(c)
	if err != nil {
		jsonFail(c, err)
		return
	}
	item.ImagePath = image

	if err := a.merchService.CreateItem(&item); err != nil {
		if image != "" {
			if rmErr := a.uploadService.Remove(image); rmErr != nil {
				logger.Warning("could not remove orphaned image:", rmErr)
			}
		}
		jsonFail(c, err)
		return
	}
	jsonCreated(c, item.Id)
}

func (a *MerchandiseController) update(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	var item model.Merchandise
	if err := c.ShouldBind(&item); err != nil {
		pureJsonMsg(c, 400, false, "Invalid form data.")
		return
	}

	image, err := a.saveImage(c)
	if err != nil {
		jsonFail(c, err)
		return
	}
	item.ImagePath = image

	if err := a.merchService.UpdateItem(id, &item); err != nil {
		if image != "" {
			if rmErr := a.uploadService.Remove(image); rmErr != nil {
				logger.Warning("could not remove orphaned image:", rmErr)
			}
		}
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "Item updated.")
}

func (a *MerchandiseController) saveImage(c *gin.Context) (string, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	return a.uploadService.Save(header, service.UploadImage)
}

func (a *MerchandiseController) del(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	if err := a.merchService.DeleteItem(id); err != nil {
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "Item deleted.")
}
