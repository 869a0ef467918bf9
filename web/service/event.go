package service

import (
	"strings"
	"time"

	"secondplan/database"
	"secondplan/database/model"
)

type EventService struct{}

type EventFilter struct {
	Status string
	Query  string
}

// EventRow is an event joined with its creator's name for display.
type EventRow struct {
	model.Event
	CreatorName string `json:"creatorName"`
}

func (s *EventService) GetEvents(filter EventFilter) ([]EventRow, error) {
	db := database.GetDB()
	q := db.Model(model.Event{}).
		Select("events.*, COALESCE(users.name, '') as creator_name").
		Joins("LEFT JOIN users ON users.id = events.created_by")
	if filter.Status != "" {
		q = q.Where("events.status = ?", filter.Status)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("events.title LIKE ? OR events.venue LIKE ?", like, like)
	}
	var events []EventRow
	err := q.Order("events.date desc, events.id desc").Scan(&events).Error
	return events, err
}

func (s *EventService) GetEvent(id int) (*model.Event, error) {
	db := database.GetDB()
	var event model.Event
	err := db.First(&event, id).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) validate(event *model.Event) error {
	var problems []string
	if strings.TrimSpace(event.Title) == "" {
		problems = append(problems, "Title is required.")
	}
	if strings.TrimSpace(event.Date) == "" {
		problems = append(problems, "Date is required.")
	} else if _, err := time.Parse("2006-01-02", event.Date); err != nil {
		problems = append(problems, "Date must be a valid date (YYYY-MM-DD).")
	}
	if event.Capacity < 0 {
		problems = append(problems, "Capacity must be zero or more.")
	}
	if event.Price < 0 {
		problems = append(problems, "Price must be zero or more.")
	}
	switch event.Status {
	case "", model.EventScheduled, model.EventCompleted, model.EventCancelled, model.EventPostponed:
	default:
		problems = append(problems, "Invalid status.")
	}
	if len(problems) > 0 {
		return newValidationError(strings.Join(problems, " "), problems...)
	}
	return nil
}

func (s *EventService) CreateEvent(event *model.Event) error {
	if err := s.validate(event); err != nil {
		return err
	}
	event.Status = model.EventScheduled
	return database.GetDB().Create(event).Error
}

func (s *EventService) UpdateEvent(id int, event *model.Event) error {
	if err := s.validate(event); err != nil {
		return err
	}
	db := database.GetDB()
	updates := map[string]any{
		"title":       event.Title,
		"description": event.Description,
		"date":        event.Date,
		"start_time":  event.StartTime,
		"end_time":    event.EndTime,
		"venue":       event.Venue,
		"location":    event.Location,
		"capacity":    event.Capacity,
		"price":       event.Price,
	}
	// An omitted status keeps the stored one.
	if event.Status != "" {
		updates["status"] = event.Status
	}
	if event.PosterPath != "" {
		updates["poster_path"] = event.PosterPath
	}
	result := db.Model(model.Event{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelEvent marks the event cancelled without touching its other fields.
func (s *EventService) CancelEvent(id int) error {
	db := database.GetDB()
	result := db.Model(model.Event{}).Where("id = ?", id).Update("status", model.EventCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *EventService) DeleteEvent(id int) error {
	db := database.GetDB()
	result := db.Delete(&model.Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *EventService) Stats() (map[string]any, error) {
	db := database.GetDB()

	var total int64
	if err := db.Model(model.Event{}).Count(&total).Error; err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64)
	rows := []struct {
		Status string
		N      int64
	}{}
	err := db.Model(model.Event{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		byStatus[r.Status] = r.N
	}

	return map[string]any{
		"total":    total,
		"byStatus": byStatus,
	}, nil
}
