package dto

import (
	"manta/internal/domains/course/model"
	"manta/shared"
	gDto "manta/shared/dto"
	gModel "manta/shared/model"
	"manta/shared/timezone"

	"github.com/google/uuid"
)

type CreateCourseRequest struct {
	Title        string  `json:"title"         validate:"required,max=150"`
	Description  string  `json:"description"   validate:"omitempty"`
	Price        float64 `json:"price"         validate:"required,gte=0"`
	DurationDays int     `json:"duration_days" validate:"required,gte=1"`
	Level        string  `json:"level"         validate:"required,oneof=beginner advanced pro"`
	Status       string  `json:"status"        validate:"omitempty,oneof=active archived"`
}

func (c *CreateCourseRequest) ToModel(user string, orderIndex int) model.Course {
	status := model.StatusActive
	if c.Status != "" {
		status = c.Status
	}

	return model.Course{
		ID:           uuid.NewString(),
		Title:        c.Title,
		Description:  c.Description,
		Price:        c.Price,
		DurationDays: c.DurationDays,
		Level:        c.Level,
		OrderIndex:   orderIndex,
		Status:       status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCourseRequest struct {
	Title        string  `db:"title"         json:"title"         validate:"omitempty,max=150"`
	Description  string  `db:"description"   json:"description"   validate:"omitempty"`
	Price        float64 `db:"price"         json:"price"         validate:"omitempty,gte=0"`
	DurationDays int     `db:"duration_days" json:"duration_days" validate:"omitempty,gte=1"`
	Level        string  `db:"level"         json:"level"         validate:"omitempty,oneof=beginner advanced pro"`
	Status       string  `db:"status"        json:"status"        validate:"omitempty,oneof=active archived"`
}

// ReplaceOrderRequest carries the full catalog sequence, most visible first.
type ReplaceOrderRequest struct {
	Courses []string `json:"courses" validate:"required,min=1"`
}

type CourseResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
	Level        string  `json:"level"`
	OrderIndex   int     `json:"order_index"`
	Status       string  `json:"status"`
	gDto.Metadata
}

func (r *CourseResponse) FromModel(model model.Course) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Price = model.Price
	r.DurationDays = model.DurationDays
	r.Level = model.Level
	r.OrderIndex = model.OrderIndex
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetCoursesResponse struct {
	Courses   []CourseResponse `json:"courses"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetCoursesResponse) FromModels(models []model.Course, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Courses = make([]CourseResponse, len(models))
	for i, mod := range models {
		r.Courses[i].FromModel(mod)
	}
}

type ReplaceOrderResponse struct {
	Courses []CourseResponse `json:"courses"`
}

func (r *ReplaceOrderResponse) FromModels(models []model.Course) {
	r.Courses = make([]CourseResponse, len(models))
	for i, mod := range models {
		r.Courses[i].FromModel(mod)
	}
}
