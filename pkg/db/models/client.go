package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is the customer a shipment record is operated for.
type Client struct {
	ClientID     uuid.UUID `gorm:"column:client_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null;uniqueIndex"`
	TaxID        *string   `gorm:"column:tax_id;uniqueIndex"`
	Address      *string   `gorm:"column:address"`
	ContactName  *string   `gorm:"column:contact_name"`
	ContactPhone *string   `gorm:"column:contact_phone"`
	ContactEmail *string   `gorm:"column:contact_email"`
	Disabled     bool      `gorm:"column:disabled;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Client) TableName() string { return "clients.clients" }
