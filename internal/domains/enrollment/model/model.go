package model

import (
	"database/sql"

	"manta/shared/model"
)

const (
	EntityName = "enrollment"
	TableName  = "enrollments"

	StatusPaid = "paid"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldCourseID      = "course_id"
	FieldPaymentMethod = "payment_method"
	FieldPaymentRef    = "payment_ref"
	FieldAmount        = "amount"
	FieldCurrency      = "currency"
	FieldStatus        = "status"

	// Postgres constraint backing the one-enrollment-per-course rule.
	UniqueConstraintName = "enrollments_user_id_course_id_key"
)

// Enrollment records a paid course registration. The payment details are
// client-reported: the processor reference is stored for audit, not verified
// here.
type Enrollment struct {
	ID            string         `db:"id" json:"id"`
	UserID        string         `db:"user_id" json:"user_id"`
	CourseID      string         `db:"course_id" json:"course_id"`
	PaymentMethod string         `db:"payment_method" json:"payment_method"`
	PaymentRef    string         `db:"payment_ref" json:"payment_ref"`
	Amount        float64        `db:"amount" json:"amount"`
	Currency      string         `db:"currency" json:"currency"`
	Status        string         `db:"status" json:"status"`
	CourseTitle   sql.NullString `db:"course_title" table:"courses" column:"title" json:"course_title"`
	model.Metadata
}

func (Enrollment) GetJoinQuery() string {
	return "LEFT JOIN courses ON enrollments.course_id = courses.id"
}
