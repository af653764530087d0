package dto_test

import (
	"testing"

	"manta/internal/domains/booking/model"
	"manta/internal/domains/booking/model/dto"
	gModel "manta/shared/model"
	"manta/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	courseID := "33333333-3333-4333-8333-333333333333"
	req := dto.CreateBookingRequest{
		UserID:      "55555555-5555-4555-8555-555555555555",
		CourseID:    courseID,
		BookingDate: "2026-09-15",
	}

	booking, err := req.ToModel("test-user", 350)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID, "expected ID to be generated")
	assert.Equal(t, req.UserID, booking.UserID)
	require.NotNil(t, booking.CourseID)
	assert.Equal(t, courseID, *booking.CourseID)
	assert.Nil(t, booking.TripID)
	assert.Equal(t, float64(350), booking.Amount)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, "2026-09-15", booking.BookingDate.Format("2006-01-02"))
	assert.Equal(t, "test-user", booking.CreatedBy)
	assert.Equal(t, "test-user", booking.ModifiedBy)
}

func TestCreateBookingRequest_ToModelDefaultsBookingDate(t *testing.T) {
	tripID := "44444444-4444-4444-8444-444444444444"
	req := dto.CreateBookingRequest{
		UserID: "55555555-5555-4555-8555-555555555555",
		TripID: tripID,
	}

	booking, err := req.ToModel("test-user", 95)
	require.NoError(t, err)

	assert.Nil(t, booking.CourseID)
	require.NotNil(t, booking.TripID)
	assert.Equal(t, tripID, *booking.TripID)
	assert.False(t, booking.BookingDate.IsZero(), "expected BookingDate to default to now")
}

func TestCreateBookingRequest_ToModelRejectsMalformedDate(t *testing.T) {
	req := dto.CreateBookingRequest{
		UserID:      "55555555-5555-4555-8555-555555555555",
		CourseID:    "33333333-3333-4333-8333-333333333333",
		BookingDate: "15/09/2026",
	}

	_, err := req.ToModel("test-user", 350)

	assert.Error(t, err)
}

func TestBookingResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	courseID := "33333333-3333-4333-8333-333333333333"

	bookingModel := model.Booking{
		ID:          "test-id",
		UserID:      "test-user-id",
		CourseID:    &courseID,
		Amount:      350,
		Status:      model.StatusPending,
		BookingDate: now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}

	var response dto.BookingResponse
	response.FromModel(bookingModel)

	assert.Equal(t, bookingModel.ID, response.ID)
	assert.Equal(t, bookingModel.UserID, response.UserID)
	assert.Equal(t, bookingModel.CourseID, response.CourseID)
	assert.Nil(t, response.TripID)
	assert.Equal(t, bookingModel.Amount, response.Amount)
	assert.Equal(t, bookingModel.Status, response.Status)
	assert.Equal(t, now.Format("2006-01-02"), response.BookingDate)
	assert.Equal(t, bookingModel.CreatedBy, response.CreatedBy)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	bookings := []model.Booking{
		{ID: "test-id-1", UserID: "u1", Status: model.StatusPending, BookingDate: now},
		{ID: "test-id-2", UserID: "u2", Status: model.StatusCompleted, BookingDate: now},
	}

	var response dto.GetBookingsResponse
	response.FromModels(bookings, 12, 10)

	assert.Len(t, response.Bookings, 2)
	assert.Equal(t, 12, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Equal(t, "test-id-1", response.Bookings[0].ID)
}
