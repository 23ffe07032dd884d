package models

import (
	"time"

	"github.com/google/uuid"
)

// Carrier is the transport provider moving the cargo.
type Carrier struct {
	CarrierID    uuid.UUID `gorm:"column:carrier_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Type         string    `gorm:"column:type;not null"`
	ContactName  *string   `gorm:"column:contact_name"`
	ContactPhone *string   `gorm:"column:contact_phone"`
	ContactEmail *string   `gorm:"column:contact_email"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Carrier) TableName() string { return "providers.carriers" }
