package models

import (
	"time"

	"github.com/google/uuid"
)

// PartnerType is the string-keyed lookup classifying partners.
type PartnerType struct {
	PartnerTypeID string  `gorm:"column:partner_type_id;primaryKey"`
	Name          string  `gorm:"column:name;not null;uniqueIndex"`
	Description   *string `gorm:"column:description"`
}

func (PartnerType) TableName() string { return "partners.partner_types" }

// Partner is a collaborating company an ops file can be associated with.
type Partner struct {
	PartnerID     uuid.UUID `gorm:"column:partner_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string    `gorm:"column:name;not null;uniqueIndex"`
	TaxID         *string   `gorm:"column:tax_id;uniqueIndex"`
	Webpage       *string   `gorm:"column:webpage"`
	Disabled      bool      `gorm:"column:disabled;not null;default:false"`
	PartnerTypeID string    `gorm:"column:partner_type_id;not null"`
	CountryID     *int      `gorm:"column:country_id"`

	PartnerType PartnerType      `gorm:"foreignKey:PartnerTypeID;references:PartnerTypeID"`
	Country     *Country         `gorm:"foreignKey:CountryID;references:CountryID"`
	Contacts    []PartnerContact `gorm:"foreignKey:PartnerID;references:PartnerID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Partner) TableName() string { return "partners.partners" }

// PartnerContact is a person reachable at a partner company.
type PartnerContact struct {
	PartnerContactID uuid.UUID `gorm:"column:partner_contact_id;type:uuid;default:gen_random_uuid();primaryKey"`
	PartnerID        uuid.UUID `gorm:"column:partner_id;type:uuid;not null"`
	Name             string    `gorm:"column:name;not null"`
	Position         *string   `gorm:"column:position"`
	Email            *string   `gorm:"column:email"`
	Mobile           *string   `gorm:"column:mobile"`
	Phone            *string   `gorm:"column:phone"`
	Disabled         bool      `gorm:"column:disabled;not null;default:false"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PartnerContact) TableName() string { return "partners.partner_contacts" }
