package dto

import (
	"manta/internal/domains/enrollment/model"
	"manta/shared"
	gDto "manta/shared/dto"
	gModel "manta/shared/model"
	"manta/shared/timezone"

	"github.com/google/uuid"
)

type CreateEnrollmentRequest struct {
	CourseID      string  `json:"course_id"      validate:"required,uuid4"`
	PaymentMethod string  `json:"payment_method" validate:"required,max=50"`
	PaymentRef    string  `json:"payment_ref"    validate:"required,max=100"`
	Amount        float64 `json:"amount"         validate:"required,gte=0"`
	Currency      string  `json:"currency"       validate:"required,len=3"`
}

func (c *CreateEnrollmentRequest) ToModel(user string) model.Enrollment {
	return model.Enrollment{
		ID:            uuid.NewString(),
		UserID:        user,
		CourseID:      c.CourseID,
		PaymentMethod: c.PaymentMethod,
		PaymentRef:    c.PaymentRef,
		Amount:        c.Amount,
		Currency:      c.Currency,
		Status:        model.StatusPaid,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type EnrollmentResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	CourseID      string  `json:"course_id"`
	CourseTitle   string  `json:"course_title"`
	PaymentMethod string  `json:"payment_method"`
	PaymentRef    string  `json:"payment_ref"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	gDto.Metadata
}

func (r *EnrollmentResponse) FromModel(model model.Enrollment) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.CourseID = model.CourseID
	r.CourseTitle = model.CourseTitle.String
	r.PaymentMethod = model.PaymentMethod
	r.PaymentRef = model.PaymentRef
	r.Amount = model.Amount
	r.Currency = model.Currency
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetEnrollmentsResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetEnrollmentsResponse) FromModels(models []model.Enrollment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Enrollments = make([]EnrollmentResponse, len(models))
	for i, mod := range models {
		r.Enrollments[i].FromModel(mod)
	}
}
