package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "contacts"
	EntityName = "contact"

	FieldID           = "id"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldStatus       = "status"
	FieldReplyContent = "reply_content"
	FieldRepliedBy    = "replied_by"
	FieldRepliedAt    = "replied_at"

	StatusNew     = "New"
	StatusReplied = "Replied"
	StatusClosed  = "Closed"
)

type Contact struct {
	ID           string     `db:"id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	Message      string     `db:"message"`
	Status       string     `db:"status"`
	ReplyContent string     `db:"reply_content"`
	RepliedBy    string     `db:"replied_by"`
	RepliedAt    *time.Time `db:"replied_at"`
	model.Metadata
}
