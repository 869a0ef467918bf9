package service

import (
	"strings"
	"time"

	"secondplan/database"
	"secondplan/database/model"
)

type TaskService struct{}

type TaskFilter struct {
	Status     string
	Priority   string
	AssigneeId int
}

// TaskRow is a task joined with its assignee's name for display.
type TaskRow struct {
	model.Task
	AssigneeName string `json:"assigneeName"`
}

func (s *TaskService) GetTasks(filter TaskFilter) ([]TaskRow, error) {
	db := database.GetDB()
	q := db.Model(model.Task{}).
		Select("tasks.*, COALESCE(users.name, '') as assignee_name").
		Joins("LEFT JOIN users ON users.id = tasks.assignee_id")
	if filter.Status != "" {
		q = q.Where("tasks.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("tasks.priority = ?", filter.Priority)
	}
	if filter.AssigneeId != 0 {
		q = q.Where("tasks.assignee_id = ?", filter.AssigneeId)
	}
	var tasks []TaskRow
	err := q.Order("tasks.due_date asc, tasks.id desc").Scan(&tasks).Error
	return tasks, err
}

func (s *TaskService) GetTask(id int) (*model.Task, error) {
	db := database.GetDB()
	var task model.Task
	err := db.First(&task, id).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) validate(task *model.Task) error {
	var problems []string
	if strings.TrimSpace(task.Title) == "" {
		problems = append(problems, "Title is required.")
	}
	if task.DueDate != "" {
		if _, err := time.Parse("2006-01-02", task.DueDate); err != nil {
			problems = append(problems, "Due date must be a valid date (YYYY-MM-DD).")
		}
	}
	switch task.Priority {
	case "", model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityUrgent:
	default:
		problems = append(problems, "Invalid priority.")
	}
	switch task.Status {
	case "", model.TaskTodo, model.TaskInProgress, model.TaskCompleted:
	default:
		problems = append(problems, "Invalid status.")
	}
	if len(problems) > 0 {
		return newValidationError(strings.Join(problems, " "), problems...)
	}
	return nil
}

func (s *TaskService) CreateTask(task *model.Task) error {
	if err := s.validate(task); err != nil {
		return err
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.Status == "" {
		task.Status = model.TaskTodo
	}
	return database.GetDB().Create(task).Error
}

func (s *TaskService) UpdateTask(id int, task *model.Task) error {
	if err := s.validate(task); err != nil {
		return err
	}
	db := database.GetDB()
	result := db.Model(model.Task{}).Where("id = ?", id).Updates(map[string]any{
		"title":       task.Title,
		"description": task.Description,
		"assignee_id": task.AssigneeId,
		"due_date":    task.DueDate,
		"priority":    task.Priority,
		"status":      task.Status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CanMutate reports whether the user may update the task: admins always,
// otherwise only the assignee.
func (s *TaskService) CanMutate(task *model.Task, userId int, role string) bool {
	if role == model.RoleAdmin {
		return true
	}
	return task.AssigneeId != nil && *task.AssigneeId == userId
}

func (s *TaskService) DeleteTask(id int) error {
	db := database.GetDB()
	result := db.Delete(&model.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TaskService) Stats() (map[string]any, error) {
	db := database.GetDB()

	var total int64
	if err := db.Model(model.Task{}).Count(&total).Error; err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64)
	rows := []struct {
		Status string
		N      int64
	}{}
	err := db.Model(model.Task{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		byStatus[r.Status] = r.N
	}

	var urgent int64
	err = db.Model(model.Task{}).
		Where("priority = ? AND status != ?", model.PriorityUrgent, model.TaskCompleted).
		Count(&urgent).Error
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"total":    total,
		"byStatus": byStatus,
		"urgent":   urgent,
	}, nil
}
