package dto

import (
	"time"

	"manta/internal/domains/booking/model"
	"manta/shared"
	gDto "manta/shared/dto"
	gModel "manta/shared/model"
	"manta/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	UserID      string   `json:"user_id"      validate:"required,uuid4"`
	CourseID    string   `json:"course_id"    validate:"omitempty,uuid4"`
	TripID      string   `json:"trip_id"      validate:"omitempty,uuid4"`
	Amount      *float64 `json:"amount"       validate:"omitempty,gte=0"`
	BookingDate string   `json:"booking_date" validate:"omitempty"`
}

func (c *CreateBookingRequest) ToModel(user string, amount float64) (model.Booking, error) {
	bookingDate := timezone.Now()

	if c.BookingDate != "" {
		parsed, err := time.Parse("2006-01-02", c.BookingDate)
		if err != nil {
			return model.Booking{}, err //nolint:wrapcheck
		}

		bookingDate = parsed
	}

	booking := model.Booking{
		ID:          uuid.NewString(),
		UserID:      c.UserID,
		Amount:      amount,
		Status:      model.StatusPending,
		BookingDate: bookingDate,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if c.CourseID != "" {
		booking.CourseID = &c.CourseID
	}

	if c.TripID != "" {
		booking.TripID = &c.TripID
	}

	return booking, nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

type BookingResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	CourseID    *string `json:"course_id,omitempty"`
	TripID      *string `json:"trip_id,omitempty"`
	CourseTitle string  `json:"course_title,omitempty"`
	TripTitle   string  `json:"trip_title,omitempty"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	BookingDate string  `json:"booking_date"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.CourseID = model.CourseID
	r.TripID = model.TripID
	r.CourseTitle = model.CourseTitle.String
	r.TripTitle = model.TripTitle.String
	r.Amount = model.Amount
	r.Status = model.Status
	r.BookingDate = model.BookingDate.Format("2006-01-02")
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
