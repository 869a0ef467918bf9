package service

import (
	"testing"

	"secondplan/database/model"

	"github.com/stretchr/testify/assert"
)

func TestBookingCreateWithoutAmountStoresNull(t *testing.T) {
	setup(t)

	service := BookingService{}
	booking := &model.Booking{
		CompanyName: "ABC Corp",
		EventName:   "Gala",
		EventDate:   "2026-01-01",
	}
	assert.NoError(t, service.CreateBooking(booking))
	assert.NotZero(t, booking.Id)

	stored, err := service.GetBooking(booking.Id)
	assert.NoError(t, err)
	assert.Nil(t, stored.Amount)
	assert.Equal(t, model.BookingPending, stored.Status)
}

func TestBookingCreateMissingRequiredFields(t *testing.T) {
	setup(t)

	service := BookingService{}
	err := service.CreateBooking(&model.Booking{
		CompanyName: "ABC Corp",
		EventDate:   "2026-01-01",
	})
	assert.Error(t, err)
	assert.Equal(t, "Company, Event, and Date are required.", err.Error())

	bookings, listErr := service.GetBookings(BookingFilter{})
	assert.NoError(t, listErr)
	assert.Empty(t, bookings, "no row persisted on validation failure")
}

func TestBookingInvalidDateAndNegativeAmount(t *testing.T) {
	setup(t)

	service := BookingService{}
	err := service.CreateBooking(&model.Booking{
		CompanyName: "ABC Corp",
		EventName:   "Gala",
		EventDate:   "first of May",
	})
	assert.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)

	bad := -10.0
	err = service.CreateBooking(&model.Booking{
		CompanyName: "ABC Corp",
		EventName:   "Gala",
		EventDate:   "2026-01-01",
		Amount:      &bad,
	})
	assert.Error(t, err)
}

func TestBookingStatusTransitions(t *testing.T) {
	setup(t)

	service := BookingService{}
	booking := &model.Booking{CompanyName: "ABC Corp", EventName: "Gala", EventDate: "2026-01-01"}
	assert.NoError(t, service.CreateBooking(booking))

	assert.NoError(t, service.SetStatus(booking.Id, model.BookingApproved))
	stored, _ := service.GetBooking(booking.Id)
	assert.Equal(t, model.BookingApproved, stored.Status)

	assert.NoError(t, service.SetStatus(booking.Id, model.BookingRejected))
	assert.Error(t, service.SetStatus(booking.Id, "lost"))
	assert.ErrorIs(t, service.SetStatus(9999, model.BookingApproved), ErrNotFound)
}

func TestBookingDeleteUnknownId(t *testing.T) {
	setup(t)

	service := BookingService{}
	assert.ErrorIs(t, service.DeleteBooking(12345), ErrNotFound)
}

func TestBookingListFiltersAndStats(t *testing.T) {
	setup(t)

	service := BookingService{}
	amount := 2500.0
	for _, b := range []*model.Booking{
		{CompanyName: "ABC Corp", EventName: "Gala", EventDate: "2026-01-01", Amount: &amount},
		{CompanyName: "XYZ Ltd", EventName: "Launch", EventDate: "2026-02-01"},
	} {
		assert.NoError(t, service.CreateBooking(b))
	}
	first, _ := service.GetBookings(BookingFilter{})
	assert.NoError(t, service.SetStatus(first[1].Id, model.BookingApproved))

	pending, err := service.GetBookings(BookingFilter{Status: string(model.BookingPending)})
	assert.NoError(t, err)
	assert.Len(t, pending, 1)

	matched, err := service.GetBookings(BookingFilter{Query: "ABC"})
	assert.NoError(t, err)
	assert.Len(t, matched, 1)

	stats, err := service.Stats()
	assert.NoError(t, err)
	assert.EqualValues(t, 2, stats["total"])
	assert.EqualValues(t, 2500.0, stats["approvedSum"])
}
