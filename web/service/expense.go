package service

import (
	"strings"
	"time"

	"secondplan/database"
	"secondplan/database/model"
)

type ExpenseService struct{}

type ExpenseFilter struct {
	Status   string
	Category string
}

func (s *ExpenseService) GetExpenses(filter ExpenseFilter) ([]model.Expense, error) {
	db := database.GetDB()
	q := db.Model(model.Expense{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	var expenses []model.Expense
	err := q.Order("date desc, id desc").Find(&expenses).Error
	return expenses, err
}

func (s *ExpenseService) GetExpense(id int) (*model.Expense, error) {
	db := database.GetDB()
	var expense model.Expense
	err := db.First(&expense, id).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *ExpenseService) validate(expense *model.Expense) error {
	var problems []string
	if strings.TrimSpace(expense.Category) == "" {
		problems = append(problems, "Category is required.")
	}
	if expense.Amount <= 0 {
		problems = append(problems, "Amount must be greater than zero.")
	}
	if strings.TrimSpace(expense.Date) == "" {
		problems = append(problems, "Date is required.")
	} else if _, err := time.Parse("2006-01-02", expense.Date); err != nil {
		problems = append(problems, "Date must be a valid date (YYYY-MM-DD).")
	}
	if len(problems) > 0 {
		return newValidationError(strings.Join(problems, " "), problems...)
	}
	return nil
}

func (s *ExpenseService) CreateExpense(expense *model.Expense) error {
	if err := s.validate(expense); err != nil {
		return err
	}
	if expense.Status == "" {
		expense.Status = model.ExpensePending
	}
	return database.GetDB().Create(expense).Error
}

func (s *ExpenseService) UpdateExpense(id int, expense *model.Expense) error {
	if err := s.validate(expense); err != nil {
		return err
	}
	switch expense.Status {
	case model.ExpensePending, model.ExpensePaid:
	default:
		return newValidationError("Invalid expense status.", "status")
	}
	db := database.GetDB()
	updates := map[string]any{
		"category":  expense.Category,
		"amount":    expense.Amount,
		"date":      expense.Date,
		"reference": expense.Reference,
		"notes":     expense.Notes,
		"status":    expense.Status,
	}
	if expense.ReceiptPath != "" {
		updates["receipt_path"] = expense.ReceiptPath
	}
	result := db.Model(model.Expense{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ExpenseService) DeleteExpense(id int) error {
	db := database.GetDB()
	result := db.Delete(&model.Expense{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ExpenseService) Stats() (map[string]any, error) {
	db := database.GetDB()

	var total int64
	if err := db.Model(model.Expense{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var sum float64
	err := db.Model(model.Expense{}).Select("COALESCE(SUM(amount), 0)").Scan(&sum).Error
	if err != nil {
		return nil, err
	}

	var pending int64
	err = db.Model(model.Expense{}).Where("status = ?", model.ExpensePending).Count(&pending).Error
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"total":   total,
		"sum":     sum,
		"pending": pending,
	}, nil
}
