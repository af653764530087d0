package event

import (
	"time"

	"manta/shared/timezone"
)

// Event names carried on the kafka topics. Consumers (notifications,
// reporting) key off these.
const (
	BookingCreated   = "booking.created"
	BookingCompleted = "booking.completed"
	BookingCancelled = "booking.cancelled"

	RentalBooked    = "rental.booked"
	RentalCompleted = "rental.completed"

	PaymentPaid = "payment.paid"
)

const schemaVersion = 1

type Envelope struct {
	Event      string `json:"event"`
	Version    int    `json:"version"`
	OccurredAt string `json:"occurred_at"`
	Data       any    `json:"data"`
}

func New(name string, data any) Envelope {
	return Envelope{
		Event:      name,
		Version:    schemaVersion,
		OccurredAt: timezone.Now().UTC().Format(time.RFC3339),
		Data:       data,
	}
}
