package model

import "homestay/shared/model"

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID          = "id"
	FieldHostID      = "host_id"
	FieldTitle       = "title"
	FieldCity        = "city"
	FieldInstantBook = "instant_book"
	FieldActive      = "active"
)

type Property struct {
	ID          string `db:"id"`
	HostID      string `db:"host_id"`
	Title       string `db:"title"`
	City        string `db:"city"`
	InstantBook bool   `db:"instant_book"`
	Active      bool   `db:"active"`
	model.Metadata
}
