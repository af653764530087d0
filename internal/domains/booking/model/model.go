package model

import (
	"database/sql"
	"fmt"
	"time"

	"manta/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldCourseID    = "course_id"
	FieldTripID      = "trip_id"
	FieldAmount      = "amount"
	FieldStatus      = "status"
	FieldBookingDate = "booking_date"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// transitions is the closed edge set of the booking lifecycle. completed and
// cancelled are terminal.
var transitions = map[string][]string{
	StatusPending: {StatusCompleted, StatusCancelled},
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// InvalidTransition describes a rejected lifecycle edge.
func InvalidTransition(from, to string) string {
	return fmt.Sprintf("booking status cannot change from %s to %s", from, to)
}

// Booking reserves a course seat or a trip spot for a user. Exactly one of
// CourseID/TripID is set, enforced both here and by a CHECK constraint.
type Booking struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	CourseID    *string        `db:"course_id"`
	TripID      *string        `db:"trip_id"`
	Amount      float64        `db:"amount"`
	Status      string         `db:"status"`
	BookingDate time.Time      `db:"booking_date"`
	CourseTitle sql.NullString `db:"course_title" table:"courses" column:"title"`
	TripTitle   sql.NullString `db:"trip_title"   table:"trips"   column:"title"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN courses ON courses.id = bookings.course_id LEFT JOIN trips ON trips.id = bookings.trip_id"
}
