package model

import (
	"manta/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "galleries"
	EntityName = "gallery"

	CategoryDiveSite  = "dive_site"
	CategoryCourse    = "course"
	CategoryEquipment = "equipment"
	CategoryTrip      = "trip"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldImages      = "images"
)

type Gallery struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Category    string         `db:"category"`
	Description string         `db:"description"`
	Images      pq.StringArray `db:"images"`
	model.Metadata
}
