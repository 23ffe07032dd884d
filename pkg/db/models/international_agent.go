package models

import (
	"time"

	"github.com/google/uuid"
)

// InternationalAgent is an overseas counterpart office. Ops files keep a
// separate association set for agents next to the partner set.
type InternationalAgent struct {
	AgentID      uuid.UUID `gorm:"column:agent_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null;uniqueIndex"`
	TaxID        *string   `gorm:"column:tax_id;uniqueIndex"`
	ContactName  *string   `gorm:"column:contact_name"`
	ContactPhone *string   `gorm:"column:contact_phone"`
	ContactEmail *string   `gorm:"column:contact_email"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (InternationalAgent) TableName() string { return "providers.international_agents" }
