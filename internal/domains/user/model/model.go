package model

import "stay/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID          = "id"
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldIsSuperuser = "is_superuser"
)

// User is owned by the account system. This module only needs a row to point
// foreign keys at and a username to render.
type User struct {
	ID          string `db:"id"`
	Username    string `db:"username"`
	Email       string `db:"email"`
	FirstName   string `db:"first_name"`
	LastName    string `db:"last_name"`
	Password    string `db:"password"`
	IsSuperuser bool   `db:"is_superuser"`
	model.Metadata
}

func (u User) String() string {
	return u.Username
}
