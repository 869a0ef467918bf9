package controller

import (
	"secondplan/database/model"
	"secondplan/logger"
	"secondplan/web/middleware"
	"secondplan/web/service"

	"github.com/gin-gonic/gin"
)

// BookingController exposes booking CRUD for managers plus the public
// inquiry endpoint used by the marketing site's booking form.
type BookingController struct {
	bookingService service.BookingService
}

func NewBookingController(api *gin.RouterGroup) *BookingController {
	a := &BookingController{}
	a.initRouter(api)
	return a
}

func (a *BookingController) initRouter(api *gin.RouterGroup) {
	// The inquiry form is reachable without a login but is CSRF-protected
	// like every other mutation.
	api.POST("/inquiries", a.createInquiry)

	g := api.Group("/bookings")
	g.Use(middleware.RequireLogin(), middleware.RequireRole(model.RoleManager))
	g.GET("", a.list)
	g.GET("/stats", a.stats)
	g.GET("/:id", a.get)
	g.POST("", a.create)
	g.PUT("/:id", a.update)
	g.DELETE("/:id", a.del)
	g.POST("/:id/approve", a.approve)
	g.POST("/:id/reject", a.reject)
}

func (a *BookingController) list(c *gin.Context) {
	bookings, err := a.bookingService.GetBookings(service.BookingFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
	})
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, bookings)
}

func (a *BookingController) stats(c *gin.Context) {
	stats, err := a.bookingService.Stats()
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, stats)
}

func (a *BookingController) get(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	booking, err := a.bookingService.GetBooking(id)
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, booking)
}

// createInquiry accepts a booking inquiry from the public site.
func (a *BookingController) createInquiry(c *gin.Context) {
	a.create(c)
}

func (a *BookingController) create(c *gin.Context) {
	var booking model.Booking
	if err := c.ShouldBind(&booking); err != nil {
		pureJsonMsg(c, 400, false, "Invalid form data.")
		return
	}
	if err := a.bookingService.CreateBooking(&booking); err != nil {
		jsonFail(c, err)
		return
	}
	logger.Infof("booking inquiry #%d created for %q", booking.Id, booking.CompanyName)
	jsonCreated(c, booking.Id)
}

func (a *BookingController) update(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	var booking model.Booking
	if err := c.ShouldBind(&booking); err != nil {
		pureJsonMsg(c, 400, false, "Invalid form data.")
		return
	}
	if err := a.bookingService.UpdateBooking(id, &booking); err != nil {
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "Booking updated.")
}

func (a *BookingController) approve(c *gin.Context) {
	a.setStatus(c, model.BookingApproved)
}

func (a *BookingController) reject(c *gin.Context) {
	a.setStatus(c, model.BookingRejected)
}

func (a *BookingController) setStatus(c *gin.Context, status model.BookingStatus) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	if err := a.bookingService.SetStatus(id, status); err != nil {
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "Booking "+string(status)+".")
}

func (a *BookingController) del(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	if err := a.bookingService.DeleteBooking(id); err != nil {
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "Booking deleted.")
}
