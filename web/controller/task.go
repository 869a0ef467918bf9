package controller

import (
	"net/http"
	"strconv"

	"secondplan/database/model"
	"secondplan/web/middleware"
	"secondplan/web/service"
	"secondplan/web/session"

	"github.com/gin-gonic/gin"
)

// TaskController exposes task CRUD. Managers manage every task; band members
// see the board and may update tasks assigned to them.
type TaskController struct {
	taskService service.TaskService
}

func NewTaskController(api *gin.RouterGroup) *TaskController {
	a := &TaskController{}
	a.initRouter(api)
	return a
}

func (a *TaskController) initRouter(api *gin.RouterGroup) {
	g := api.Group("/tasks")
	g.Use(middleware.RequireLogin(), middleware.RequireRole(model.RoleManager, model.RoleBandMember))
	g.GET("", a.list)
	g.GET("/stats", a.stats)
	g.GET("/:id", a.get)
	g.PUT("/:id", a.update)

	managed := g.Group("", middleware.RequireRole(model.RoleManager))
	managed.POST("", a.create)
	managed.DELETE("/:id", a.del)
}

func (a *TaskController) list(c *gin.Context) {
	assigneeId, _ := strconv.Atoi(c.Query("assigneeId"))
	tasks, err := a.taskService.GetTasks(service.TaskFilter{
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		AssigneeId: assigneeId,
	})
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, tasks)
}

func (a *TaskController) stats(c *gin.Context) {
	stats, err := a.taskService.Stats()
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, stats)
}

func (a *TaskController) get(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	task, err := a.taskService.GetTask(id)
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, task)
}

func (a *TaskController) create(c *gin.Context) {
	var task model.Task
	if err := c.ShouldBind(&task); err != nil {
		pureJsonMsg(c, 400, false, "Invalid form data.")
		return
	}
	if err := a.taskService.CreateTask(&task); err != nil {
		jsonFail(c, err)
		return
	}
	jsonCreated(c, task.Id)
}

func (a *TaskController) update(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	existing, err := a.taskService.GetTask(id)
	if err != nil {
		jsonFail(c, err)
		return
	}

	user := session.GetLoginUser(c)
	if user == nil || !a.taskService.CanMutate(existing, user.Id, user.Role) {
		pureJsonMsg(c, http.StatusForbidden, false, "Only the assignee or an admin may update this task.")
		return
	}

	var task model.Task
	if err := c.ShouldBind(&task); err != nil {
		pureJsonMsg(c, 400, false, "Invalid form data.")
		return
	}
	if err := a.taskService.UpdateTask(id, &task); err != nil {
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "Task updated.")
}

func (a *TaskController) del(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	if err := a.taskService.DeleteTask(id); err != nil {
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "Task deleted.")
}
