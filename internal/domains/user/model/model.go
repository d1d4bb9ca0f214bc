package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPasswordHash = "password_hash"
	FieldRole         = "role"
	FieldFullName     = "full_name"
	FieldLastLogin    = "last_login"
	FieldActive       = "active"
)

type User struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	Active       bool       `db:"active"`
	LastLogin    *time.Time `db:"last_login"`
	FullName     string     `db:"full_name"`
	Phone        string     `db:"phone"`
	Address      string     `db:"address"`
	DateOfBirth  *time.Time `db:"date_of_birth"`
	Gender       string     `db:"gender"`
	model.Metadata
}
