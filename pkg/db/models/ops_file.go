package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmartelo/freightops-backend/pkg/enums"
)

// OpsFile is the aggregate root for a shipment record. Owned children
// (comments, packages) and association links live in the ops schema and are
// only ever mutated together with the root inside one transaction.
type OpsFile struct {
	OpID     uuid.UUID `gorm:"column:op_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID uuid.UUID `gorm:"column:client_id;type:uuid;not null"`
	StatusID int       `gorm:"column:status_id;not null"`

	CarrierID            *uuid.UUID `gorm:"column:carrier_id;type:uuid"`
	CreatorUserID        *uuid.UUID `gorm:"column:creator_user_id;type:uuid"`
	AssigneeUserID       *uuid.UUID `gorm:"column:assignee_user_id;type:uuid"`
	OriginCountryID      *int       `gorm:"column:origin_country_id"`
	DestinationCountryID *int       `gorm:"column:destination_country_id"`

	OpType              *enums.OpType `gorm:"column:op_type;type:text"`
	OriginLocation      *string       `gorm:"column:origin_location"`
	DestinationLocation *string       `gorm:"column:destination_location"`

	EstimatedTimeDeparture *time.Time `gorm:"column:estimated_time_departure;type:date"`
	ActualTimeDeparture    *time.Time `gorm:"column:actual_time_departure;type:date"`
	EstimatedTimeArrival   *time.Time `gorm:"column:estimated_time_arrival;type:date"`
	ActualTimeArrival      *time.Time `gorm:"column:actual_time_arrival;type:date"`

	CargoDescription *string          `gorm:"column:cargo_description"`
	GrossWeightValue *decimal.Decimal `gorm:"column:gross_weight_value;type:numeric"`
	GrossWeightUnit  *string          `gorm:"column:gross_weight_unit"`
	VolumeValue      *decimal.Decimal `gorm:"column:volume_value;type:numeric"`
	VolumeUnit       *string          `gorm:"column:volume_unit"`

	MasterTransportDoc *string `gorm:"column:master_transport_doc"`
	HouseTransportDoc  *string `gorm:"column:house_transport_doc"`
	Incoterm           *string `gorm:"column:incoterm"`
	Modality           *string `gorm:"column:modality"`
	Voyage             *string `gorm:"column:voyage"`

	Client             Client              `gorm:"foreignKey:ClientID;references:ClientID"`
	Status             OpsStatus           `gorm:"foreignKey:StatusID;references:StatusID"`
	Carrier            *Carrier            `gorm:"foreignKey:CarrierID;references:CarrierID"`
	Creator            *User               `gorm:"foreignKey:CreatorUserID;references:UserID"`
	Assignee           *User               `gorm:"foreignKey:AssigneeUserID;references:UserID"`
	OriginCountry      *Country            `gorm:"foreignKey:OriginCountryID;references:CountryID"`
	DestinationCountry *Country            `gorm:"foreignKey:DestinationCountryID;references:CountryID"`
	Partners           []Partner           `gorm:"many2many:ops.op_file_partner_link;foreignKey:OpID;joinForeignKey:OpID;references:PartnerID;joinReferences:PartnerID"`
	Agents             []InternationalAgent `gorm:"many2many:ops.op_file_agent_link;foreignKey:OpID;joinForeignKey:OpID;references:AgentID;joinReferences:AgentID"`
	Comments           []OpsFileComment    `gorm:"foreignKey:OpID;references:OpID"`
	Packages           []CargoPackage      `gorm:"foreignKey:OpID;references:OpID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the aggregate in the ops namespace.
func (OpsFile) TableName() string { return "ops.op_files" }
