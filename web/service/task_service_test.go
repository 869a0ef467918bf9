package service

import (
	"testing"

	"secondplan/database/model"

	"github.com/stretchr/testify/assert"
)

func TestTaskCrudWithAssignee(t *testing.T) {
	setup(t)

	users := UserService{}
	drummer, err := users.Register("Drummer", "drums@example.com", "password1", "password1", model.RoleBandMember)
	assert.NoError(t, err)

	service := TaskService{}
	task := &model.Task{
		Title:      "Load in gear",
		AssigneeId: &drummer.Id,
		DueDate:    "2026-03-01",
		Priority:   model.PriorityHigh,
	}
	assert.NoError(t, service.CreateTask(task))
	assert.Equal(t, model.TaskTodo, task.Status)

	rows, err := service.GetTasks(TaskFilter{AssigneeId: drummer.Id})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Drummer", rows[0].AssigneeName)

	task.Status = model.TaskInProgress
	assert.NoError(t, service.UpdateTask(task.Id, task))

	assert.ErrorIs(t, service.DeleteTask(999), ErrNotFound)
	assert.NoError(t, service.DeleteTask(task.Id))
}

func TestTaskDefaultsAndValidation(t *testing.T) {
	setup(t)

	service := TaskService{}
	task := &model.Task{Title: "Book rehearsal room"}
	assert.NoError(t, service.CreateTask(task))
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, model.TaskTodo, task.Status)

	assert.Error(t, service.CreateTask(&model.Task{}))
	assert.Error(t, service.CreateTask(&model.Task{Title: "x", DueDate: "soon"}))
	assert.Error(t, service.CreateTask(&model.Task{Title: "x", Priority: "asap"}))
}

func TestTaskCanMutate(t *testing.T) {
	service := TaskService{}
	assignee := 7
	task := &model.Task{AssigneeId: &assignee}

	assert.True(t, service.CanMutate(task, 1, model.RoleAdmin))
	assert.False(t, service.CanMutate(task, 1, model.RoleManager))
	assert.True(t, service.CanMutate(task, 7, model.RoleManager))
	assert.True(t, service.CanMutate(task, 7, model.RoleBandMember))
	assert.False(t, service.CanMutate(task, 8, model.RoleBandMember))
	assert.False(t, service.CanMutate(&model.Task{}, 7, model.RoleBandMember))
}
