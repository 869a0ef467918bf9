package controller

import (
	"secondplan/database/model"
	"secondplan/logger"
	"secondplan/web/middleware"
	"secondplan/web/service"
	"secondplan/web/session"

	"github.com/gin-gonic/gin"
)

// ExpenseController exposes expense CRUD for managers and band members,
// including the receipt upload.
type ExpenseController struct {
	expenseService service.ExpenseService
	uploadService  service.UploadService
}

func NewExpenseController(api *gin.RouterGroup) *ExpenseController {
	a := &ExpenseController{}
	a.initRouter(api)
	return a
}

func (a *ExpenseController) initRouter(api *gin.RouterGroup) {
	g := api.Group("/expenses")
	g.Use(middleware.RequireLogin(), middleware.RequireRole(model.RoleManager, model.RoleBandMember))
	g.GET("", a.list)
	g.GET("/stats", a.stats)
	g.GET("/:id", a.get)
	g.POST("", a.create)
	g.PUT("/:id", a.update)
	g.DELETE("/:id", a.del)
}

func (a *ExpenseController) list(c *gin.Context) {
	expenses, err := a.expenseService.GetExpenses(service.ExpenseFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	})
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, expenses)
}

func (a *ExpenseController) stats(c *gin.Context) {
	stats, err := a.expenseService.Stats()
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, stats)
}

func (a *ExpenseController) get(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	expense, err := a.expenseService.GetExpense(id)
	if err != nil {
		jsonFail(c, err)
		return
	}
	jsonObj(c, expense)
}

func (a *ExpenseController) create(c *gin.Context) {
	var expense model.Expense
	if err := c.ShouldBind(&expense); err != nil {
		pureJsonMsg(c, 400, false, "Invalid form data.")
		return
	}
	if user := session.GetLoginUser(c); user != nil {
		expense.SubmittedBy = user.Id
	}

	receipt, err := a.saveReceipt(c)
	if err != nil {
		jsonFail(c, err)
		return
	}
	expense.ReceiptPath = receipt

	if err := a.expenseService.CreateExpense(&expense); err != nil {
		if receipt != "" {
			if rmErr := a.uploadService.Remove(receipt); rmErr != nil {
				logger.Warning("could not remove orphaned receipt:", rmErr)
			}
		}
		jsonFail(c, err)
		return
	}
	jsonCreated(c, expense.Id)
}

func (a *ExpenseController) update(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	var expense model.Expense
	if err := c.ShouldBind(&expense); err != nil {
		pureJsonMsg(c, 400, false, "Invalid form data.")
		return
	}

	receipt, err := a.saveReceipt(c)
	if err != nil {
		jsonFail(c, err)
		return
	}
	expense.ReceiptPath = receipt

	if err := a.expenseService.UpdateExpense(id, &expense); err != nil {
		if receipt != "" {
			if rmErr := a.uploadService.Remove(receipt); rmErr != nil {
				logger.Warning("could not remove orphaned receipt:", rmErr)
			}
		}
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "Expense updated.")
}

func (a *ExpenseController) saveReceipt(c *gin.Context) (string, error) {
	header, err := c.FormFile("receipt")
	if err != nil {
		return "", nil
	}
	return a.uploadService.Save(header, service.UploadReceipt)
}

func (a *ExpenseController) del(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	if err := a.expenseService.DeleteExpense(id); err != nil {
		jsonFail(c, err)
		return
	}
	jsonMsg(c, "Expense deleted.")
}
