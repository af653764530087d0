package model

import (
	"time"

	"manta/shared/model"
)

const (
	TableName  = "trips"
	EntityName = "trip"

	FieldID            = "id"
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldPrice         = "price"
	FieldDepartureDate = "departure_date"
	FieldCapacity      = "capacity"
	FieldLocation      = "location"
	FieldStatus        = "status"
)

const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

// Trip is a scheduled boat trip bookings can target.
type Trip struct {
	ID            string    `db:"id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Price         float64   `db:"price"`
	DepartureDate time.Time `db:"departure_date"`
	Capacity      int       `db:"capacity"`
	Location      string    `db:"location"`
	Status        string    `db:"status"`
	model.Metadata
}
