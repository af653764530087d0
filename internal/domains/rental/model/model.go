package model

import (
	"fmt"
	"time"

	"manta/shared/model"
)

const (
	EntityName        = "rental"
	BookingEntityName = "rentalBooking"

	TableName        = "rentals"
	BookingTableName = "rental_bookings"

	StatusAvailable = "available"
	StatusRented    = "rented"

	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"

	FieldID            = "id"
	FieldTitle         = "title"
	FieldPrice         = "price"
	FieldDurationHours = "duration_hours"
	FieldLocation      = "location"
	FieldStatus        = "status"

	FieldBookingRentalID        = "rental_id"
	FieldBookingUserID          = "user_id"
	FieldBookingPaymentIntentID = "payment_intent_id"
	FieldBookingPaymentStatus   = "payment_status"
	FieldBookingDate            = "booking_date"
)

// Rental is a single piece of dive equipment. Availability is binary: one
// active booking holds the whole asset until it is returned.
type Rental struct {
	ID            string  `db:"id" json:"id"`
	Title         string  `db:"title" json:"title"`
	Price         float64 `db:"price" json:"price"`
	DurationHours int     `db:"duration_hours" json:"duration_hours"`
	Location      string  `db:"location" json:"location"`
	Status        string  `db:"status" json:"status"`
	model.Metadata
}

// RentalBooking tracks one rental reservation and its payment. The payment
// intent id is the join key back to processor webhooks, and payment_status
// only ever moves pending -> paid.
type RentalBooking struct {
	ID              string    `db:"id" json:"id"`
	RentalID        string    `db:"rental_id" json:"rental_id"`
	UserID          string    `db:"user_id" json:"user_id"`
	PaymentIntentID string    `db:"payment_intent_id" json:"payment_intent_id"`
	PaymentStatus   string    `db:"payment_status" json:"payment_status"`
	Status          string    `db:"status" json:"status"`
	BookingDate     time.Time `db:"booking_date" json:"booking_date"`
	model.Metadata
}

func IsValidStatus(status string) bool {
	return status == StatusAvailable || status == StatusRented
}

func Unavailable(id string) string {
	return fmt.Sprintf("rental %s is not available", id)
}
