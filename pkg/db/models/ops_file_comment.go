package models

import (
	"time"

	"github.com/google/uuid"
)

// OpsFileComment is a note attached to an ops file. Author and parent are
// immutable after creation; only the content may change.
type OpsFileComment struct {
	CommentID    uuid.UUID  `gorm:"column:comment_id;type:uuid;default:gen_random_uuid();primaryKey"`
	OpID         uuid.UUID  `gorm:"column:op_id;type:uuid;not null"`
	AuthorUserID *uuid.UUID `gorm:"column:author_user_id;type:uuid"`
	Content      string     `gorm:"column:content;not null"`

	Author *User `gorm:"foreignKey:AuthorUserID;references:UserID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (OpsFileComment) TableName() string { return "ops.op_file_comments" }
