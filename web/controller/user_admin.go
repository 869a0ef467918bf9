package controller

import (
	"secondplan/database/model"
	"secondplan/logger"
	"secondplan/web/middleware"
	"secondplan/web/service"
	"secondplan/web/session"

	"github.com/gin-gonic/gin"
)

// UserAdminController exposes account management to the admin role only.
type UserAdminController struct {
	userService service.UserService
}

func NewUserAdminController(api *gin.RouterGroup) *UserAdminController {
	a := &UserAdminController{}
	a.initRouter(api)
	return a
}

func (a *UserAdminController) initRouter(api *gin.RouterGroup) {
	g := api.Group("/users")
	g.Use(middleware.RequireLogin(), middleware.RequireRole(model.RoleAdmin))
	g.GET("", a.list)
	g.GET("/:id", a.get)
	g.PUT("/:id", a.update)
	g.PATCH("/:id/roles", a.setRoles)
	g.PATCH("/:id/password", a.resetPassword)
	g.DELETE("/:id", a.del)

	me := api.Group("/me")
	me.Use(middleware.RequireLogin())
	me.GET("", a.me)
}

func (a *UserAdminController) list(c *gin.Context) {
	users, err := a.userService.GetUsers()
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, users)
}

func (a *UserAdminController) get(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	user, err := a.userService.GetUser(id)
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, user)
}

type userUpdateForm struct {
	Name   string           `json:"name" form:"name"`
	Email  string           `json:"email" form:"email"`
	Phone  string           `json:"phone" form:"phone"`
	Status model.UserStatus `json:"status" form:"status"`
}

func (a *UserAdminController) update(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	var form userUpdateForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, 400, false, "Invalid form data.")
		return
	}
	if err := a.userService.UpdateUser(id, form.Name, form.Email, form.Phone, form.Status); err != nil {
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "User updated.")
}

type rolesForm struct {
	Roles []string `json:"roles" form:"roles"`
}

func (a *UserAdminController) setRoles(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	var form rolesForm
	if err := c.ShouldBind(&form); err != nil || len(form.Roles) == 0 {
		pureJsonMsg(c, 400, false, "At least one role is required.")
		return
	}
	if err := a.userService.SetRoles(id, form.Roles); err != nil {
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "Roles updated.")
}

type passwordForm struct {
	Password string `json:"password" form:"password"`
}

func (a *UserAdminController) resetPassword(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	var form passwordForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, 400, false, "Invalid form data.")
		return
	}
	if err := a.userService.ResetPassword(id, form.Password); err != nil {
		jsonFail(c, err)
		return
	}
	logger.Infof("password reset for user #%d", id)
	jsonMsg(c, "Password updated.")
}

func (a *UserAdminController) del(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	if user := session.GetLoginUser(c); user != nil && user.Id == id {
		pureJsonMsg(c, 400, false, "You cannot delete your own account.")
		return
	}
	if err := a.userService.DeleteUser(id); err != nil {
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "User deleted.")
}

// me returns the authenticated user's own session identity.
func (a *UserAdminController) me(c *gin.Context) {
	user := session.GetLoginUser(c)
	jsonObj(c, gin.H{
		"id":    user.Id,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}
