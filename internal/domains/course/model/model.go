package model

import (
	"manta/shared/model"
)

const (
	TableName  = "courses"
	EntityName = "course"

	FieldID           = "id"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldPrice        = "price"
	FieldDurationDays = "duration_days"
	FieldLevel        = "level"
	FieldOrderIndex   = "order_index"
	FieldStatus       = "status"
)

const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

const (
	LevelBeginner = "beginner"
	LevelAdvanced = "advanced"
	LevelPro      = "pro"
)

// Course is a dive-course catalog entry. OrderIndex drives display
// sequencing: within the catalog the values are a contiguous 1..N permutation
// maintained by the reorder operation.
type Course struct {
	ID           string  `db:"id"`
	Title        string  `db:"title"`
	Description  string  `db:"description"`
	Price        float64 `db:"price"`
	DurationDays int     `db:"duration_days"`
	Level        string  `db:"level"`
	OrderIndex   int     `db:"order_index"`
	Status       string  `db:"status"`
	model.Metadata
}
