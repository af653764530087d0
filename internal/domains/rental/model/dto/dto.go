package dto

import (
	"manta/internal/domains/rental/model"
	"manta/shared"
	gDto "manta/shared/dto"
	gModel "manta/shared/model"
	"manta/shared/timezone"

	"github.com/google/uuid"
)

type CreateRentalRequest struct {
	Title         string  `json:"title"          validate:"required,max=150"`
	Price         float64 `json:"price"          validate:"required,gte=0"`
	DurationHours int     `json:"duration_hours" validate:"required,gte=1"`
	Location      string  `json:"location"       validate:"omitempty,max=150"`
}

func (c *CreateRentalRequest) ToModel(user string) model.Rental {
	return model.Rental{
		ID:            uuid.NewString(),
		Title:         c.Title,
		Price:         c.Price,
		DurationHours: c.DurationHours,
		Location:      c.Location,
		Status:        model.StatusAvailable,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRentalRequest struct {
	Title         string  `db:"title"          json:"title"          validate:"omitempty,max=150"`
	Price         float64 `db:"price"          json:"price"          validate:"omitempty,gte=0"`
	DurationHours int     `db:"duration_hours" json:"duration_hours" validate:"omitempty,gte=1"`
	Location      string  `db:"location"       json:"location"       validate:"omitempty,max=150"`
}

type RentalResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	DurationHours int     `json:"duration_hours"`
	Location      string  `json:"location"`
	Status        string  `json:"status"`
	gDto.Metadata
}

func (r *RentalResponse) FromModel(model model.Rental) {
	r.ID = model.ID
	r.Title = model.Title
	r.Price = model.Price
	r.DurationHours = model.DurationHours
	r.Location = model.Location
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetRentalsResponse struct {
	Rentals   []RentalResponse `json:"rentals"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetRentalsResponse) FromModels(models []model.Rental, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rentals = make([]RentalResponse, len(models))
	for i, mod := range models {
		r.Rentals[i].FromModel(mod)
	}
}

type CreateRentalBookingRequest struct {
	RentalID string `json:"rental_id" validate:"required,uuid4"`
}

// CreateRentalBookingResponse hands the client what it needs to confirm the
// payment on its side: the processor's client secret plus our booking id.
type CreateRentalBookingResponse struct {
	BookingID    string `json:"booking_id"`
	ClientSecret string `json:"client_secret"`
}

type RentalBookingResponse struct {
	ID              string `json:"id"`
	RentalID        string `json:"rental_id"`
	UserID          string `json:"user_id"`
	PaymentIntentID string `json:"payment_intent_id"`
	PaymentStatus   string `json:"payment_status"`
	Status          string `json:"status"`
	BookingDate     string `json:"booking_date"`
	gDto.Metadata
}

func (r *RentalBookingResponse) FromModel(model model.RentalBooking) {
	r.ID = model.ID
	r.RentalID = model.RentalID
	r.UserID = model.UserID
	r.PaymentIntentID = model.PaymentIntentID
	r.PaymentStatus = model.PaymentStatus
	r.Status = model.Status
	r.BookingDate = model.BookingDate.Format("2006-01-02 15:04:05")
	r.Metadata.FromModel(model.Metadata)
}

type GetRentalBookingsResponse struct {
	Bookings  []RentalBookingResponse `json:"bookings"`
	TotalPage int                     `json:"total_page"`
	TotalData int                     `json:"total_data"`
}

func (r *GetRentalBookingsResponse) FromModels(models []model.RentalBooking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]RentalBookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
