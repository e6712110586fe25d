package model

import "homestay/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldFullName = "full_name"
	FieldActive   = "active"
)

type User struct {
	ID       string  `db:"id"`
	Email    string  `db:"email"`
	FullName *string `db:"full_name"`
	Active   bool    `db:"active"`
	model.Metadata
}
