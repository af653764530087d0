package dto

import (
	"time"

	"manta/internal/domains/trip/model"
	"manta/shared"
	gDto "manta/shared/dto"
	gModel "manta/shared/model"
	"manta/shared/timezone"

	"github.com/google/uuid"
)

type CreateTripRequest struct {
	Title         string  `json:"title"          validate:"required,max=150"`
	Description   string  `json:"description"    validate:"omitempty"`
	Price         float64 `json:"price"          validate:"required,gte=0"`
	DepartureDate string  `json:"departure_date" validate:"required"`
	Capacity      int     `json:"capacity"       validate:"required,gte=1"`
	Location      string  `json:"location"       validate:"required,max=150"`
}

func (c *CreateTripRequest) ToModel(user string) (model.Trip, error) {
	departureDate, err := time.Parse("2006-01-02", c.DepartureDate)
	if err != nil {
		return model.Trip{}, err //nolint:wrapcheck
	}

	return model.Trip{
		ID:            uuid.NewString(),
		Title:         c.Title,
		Description:   c.Description,
		Price:         c.Price,
		DepartureDate: departureDate,
		Capacity:      c.Capacity,
		Location:      c.Location,
		Status:        model.StatusScheduled,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateTripRequest struct {
	Title       string  `db:"title"       json:"title"       validate:"omitempty,max=150"`
	Description string  `db:"description" json:"description" validate:"omitempty"`
	Price       float64 `db:"price"       json:"price"       validate:"omitempty,gte=0"`
	Capacity    int     `db:"capacity"    json:"capacity"    validate:"omitempty,gte=1"`
	Location    string  `db:"location"    json:"location"    validate:"omitempty,max=150"`
	Status      string  `db:"status"      json:"status"      validate:"omitempty,oneof=scheduled cancelled"`
}

type TripResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	DepartureDate string  `json:"departure_date"`
	Capacity      int     `json:"capacity"`
	Location      string  `json:"location"`
	Status        string  `json:"status"`
	gDto.Metadata
}

func (r *TripResponse) FromModel(model model.Trip) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Price = model.Price
	r.DepartureDate = model.DepartureDate.Format("2006-01-02")
	r.Capacity = model.Capacity
	r.Location = model.Location
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetTripsResponse struct {
	Trips     []TripResponse `json:"trips"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetTripsResponse) FromModels(models []model.Trip, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Trips = make([]TripResponse, len(models))
	for i, mod := range models {
		r.Trips[i].FromModel(mod)
	}
}
