package service

import (
	"strings"
	"time"

	"secondplan/database"
	"secondplan/database/model"

	"gorm.io/gorm"
)

type BookingService struct{}

// BookingFilter narrows the booking list. Zero values mean no filtering.
type BookingFilter struct {
	Status string
	Query  string
}

func (s *BookingService) GetBookings(filter BookingFilter) ([]model.Booking, error) {
	db := database.GetDB()
	q := db.Model(model.Booking{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("company_name LIKE ? OR event_name LIKE ?", like, like)
	}
	var bookings []model.Booking
	err := q.Order("id desc").Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetBooking(id int) (*model.Booking, error) {
	db := database.GetDB()
	var booking model.Booking
	err := db.First(&booking, id).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) validate(booking *model.Booking) error {
	if strings.TrimSpace(booking.CompanyName) == "" ||
		strings.TrimSpace(booking.EventName) == "" ||
		strings.TrimSpace(booking.EventDate) == "" {
		return newValidationError("Company, Event, and Date are required.",
			"companyName", "eventName", "eventDate")
	}
	if _, err := time.Parse("2006-01-02", booking.EventDate); err != nil {
		return newValidationError("Event date must be a valid date (YYYY-MM-DD).", "eventDate")
	}
	if booking.Amount != nil && *booking.Amount < 0 {
		return newValidationError("Amount must be zero or more.", "amount")
	}
	return nil
}

// CreateBooking validates and inserts a booking inquiry. New bookings always
// start out pending, whoever submits them.
func (s *BookingService) CreateBooking(booking *model.Booking) error {
	if err := s.validate(booking); err != nil {
		return err
	}
	booking.Status = model.BookingPending
	return database.GetDB().Create(booking).Error
}

func (s *BookingService) UpdateBooking(id int, booking *model.Booking) error {
	if err := s.validate(booking); err != nil {
		return err
	}
	db := database.GetDB()
	result := db.Model(model.Booking{}).Where("id = ?", id).Updates(map[string]any{
		"company_name": booking.CompanyName,
		"event_name":   booking.EventName,
		"event_date":   booking.EventDate,
		"event_time":   booking.EventTime,
		"location":     booking.Location,
		"amount":       booking.Amount,
		"notes":        booking.Notes,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus moves a booking through pending -> approved/rejected.
func (s *BookingService) SetStatus(id int, status model.BookingStatus) error {
	switch status {
	case model.BookingPending, model.BookingApproved, model.BookingRejected:
	default:
		return newValidationError("Invalid booking status.", "status")
	}
	db := database.GetDB()
	result := db.Model(model.Booking{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *BookingService) DeleteBooking(id int) error {
	db := database.GetDB()
	result := db.Delete(&model.Booking{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats aggregates booking counts by status plus the approved amount sum.
func (s *BookingService) Stats() (map[string]any, error) {
	db := database.GetDB()

	var total int64
	if err := db.Model(model.Booking{}).Count(&total).Error; err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64)
	rows := []struct {
		Status string
		N      int64
	}{}
	err := db.Model(model.Booking{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		byStatus[r.Status] = r.N
	}

	var approvedSum float64
	err = db.Model(model.Booking{}).
		Where("status = ? AND amount IS NOT NULL", model.BookingApproved).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&approvedSum).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}

	return map[string]any{
		"total":       total,
		"byStatus":    byStatus,
		"approvedSum": approvedSum,
	}, nil
}
