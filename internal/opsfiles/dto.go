package opsfiles

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmartelo/freightops-backend/pkg/enums"
	"github.com/rmartelo/freightops-backend/pkg/types"
)

// PackageInput is one packaging line supplied inline with a create or a
// replace-all packaging update.
type PackageInput struct {
	Quantity *decimal.Decimal `json:"quantity"`
	Units    string           `json:"units" validate:"required"`
}

// CreateOpsFileInput carries the creation request for a new ops file.
// Client and status are mandatory references; everything else is optional
// and validated only when supplied.
type CreateOpsFileInput struct {
	ClientID uuid.UUID `json:"client_id" validate:"required"`
	StatusID int       `json:"status_id" validate:"required"`

	CarrierID            *uuid.UUID `json:"carrier_id"`
	CreatorUserID        *uuid.UUID `json:"creator_user_id"`
	AssigneeUserID       *uuid.UUID `json:"assignee_user_id"`
	OriginCountryID      *int       `json:"origin_country_id"`
	DestinationCountryID *int       `json:"destination_country_id"`

	OpType              *enums.OpType `json:"op_type"`
	OriginLocation      *string       `json:"origin_location"`
	DestinationLocation *string       `json:"destination_location"`

	EstimatedTimeDeparture *time.Time `json:"estimated_time_departure"`
	ActualTimeDeparture    *time.Time `json:"actual_time_departure"`
	EstimatedTimeArrival   *time.Time `json:"estimated_time_arrival"`
	ActualTimeArrival      *time.Time `json:"actual_time_arrival"`

	CargoDescription *string          `json:"cargo_description"`
	GrossWeightValue *decimal.Decimal `json:"gross_weight_value"`
	GrossWeightUnit  *string          `json:"gross_weight_unit"`
	VolumeValue      *decimal.Decimal `json:"volume_value"`
	VolumeUnit       *string          `json:"volume_unit"`

	MasterTransportDoc *string `json:"master_transport_doc"`
	HouseTransportDoc  *string `json:"house_transport_doc"`
	Incoterm           *string `json:"incoterm"`
	Modality           *string `json:"modality"`
	Voyage             *string `json:"voyage"`

	PartnerIDs []uuid.UUID `json:"partners_id"`
	AgentIDs   []uuid.UUID `json:"agents_id"`

	// Comment, when present, becomes the first comment on the file with the
	// creator as author.
	Comment  *string        `json:"comment"`
	Packages []PackageInput `json:"packages"`
}

// UpdateOpsFileInput is a sparse update: only fields present in the JSON body
// are applied. Nullable references use the Nullable* wrappers so an explicit
// null clears the reference while an absent key leaves it alone. The partner,
// agent and packaging collections are replace-all when the key is present,
// including present-but-empty, and untouched when absent.
type UpdateOpsFileInput struct {
	ClientID *uuid.UUID `json:"client_id"`
	StatusID *int       `json:"status_id"`

	CarrierID            types.NullableUUID `json:"carrier_id"`
	CreatorUserID        types.NullableUUID `json:"creator_user_id"`
	AssigneeUserID       types.NullableUUID `json:"assignee_user_id"`
	OriginCountryID      types.NullableInt  `json:"origin_country_id"`
	DestinationCountryID types.NullableInt  `json:"destination_country_id"`

	OpType              *enums.OpType `json:"op_type"`
	OriginLocation      *string       `json:"origin_location"`
	DestinationLocation *string       `json:"destination_location"`

	EstimatedTimeDeparture *time.Time `json:"estimated_time_departure"`
	ActualTimeDeparture    *time.Time `json:"actual_time_departure"`
	EstimatedTimeArrival   *time.Time `json:"estimated_time_arrival"`
	ActualTimeArrival      *time.Time `json:"actual_time_arrival"`

	CargoDescription *string          `json:"cargo_description"`
	GrossWeightValue *decimal.Decimal `json:"gross_weight_value"`
	GrossWeightUnit  *string          `json:"gross_weight_unit"`
	VolumeValue      *decimal.Decimal `json:"volume_value"`
	VolumeUnit       *string          `json:"volume_unit"`

	MasterTransportDoc *string `json:"master_transport_doc"`
	HouseTransportDoc  *string `json:"house_transport_doc"`
	Incoterm           *string `json:"incoterm"`
	Modality           *string `json:"modality"`
	Voyage             *string `json:"voyage"`

	PartnerIDs *[]uuid.UUID    `json:"partners_id"`
	AgentIDs   *[]uuid.UUID    `json:"agents_id"`
	Packages   *[]PackageInput `json:"packages"`
}

// CreateCommentInput attaches a comment to an existing ops file.
type CreateCommentInput struct {
	OpID         uuid.UUID  `json:"op_id" validate:"required"`
	AuthorUserID *uuid.UUID `json:"author_user_id"`
	Content      string     `json:"content" validate:"required"`
}

// UpdateCommentInput changes the only mutable comment field.
type UpdateCommentInput struct {
	Content *string `json:"content"`
}

// CreatePackageInput attaches a packaging line to an existing ops file.
type CreatePackageInput struct {
	OpID     uuid.UUID        `json:"op_id" validate:"required"`
	Quantity *decimal.Decimal `json:"quantity"`
	Units    string           `json:"units" validate:"required"`
}

// UpdatePackageInput changes the mutable packaging fields, exclude-unset.
type UpdatePackageInput struct {
	Quantity *decimal.Decimal `json:"quantity"`
	Units    *string          `json:"units"`
}

// ClientRef is the reduced client shape embedded in aggregate views.
type ClientRef struct {
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
	TaxID    *string   `json:"tax_id,omitempty"`
}

// CarrierRef is the reduced carrier shape embedded in aggregate views.
type CarrierRef struct {
	CarrierID uuid.UUID `json:"carrier_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
}

// PartnerRef is the reduced partner shape embedded in aggregate views.
type PartnerRef struct {
	PartnerID uuid.UUID `json:"partner_id"`
	Name      string    `json:"name"`
	TaxID     *string   `json:"tax_id,omitempty"`
}

// AgentRef is the reduced international agent shape embedded in views.
type AgentRef struct {
	AgentID uuid.UUID `json:"agent_id"`
	Name    string    `json:"name"`
}

// CountryView is the geodata shape embedded in aggregate views.
type CountryView struct {
	CountryID int    `json:"country_id"`
	Name      string `json:"name"`
	ISO2Code  string `json:"iso2_code"`
	ISO3Code  string `json:"iso3_code"`
}

// UserRef is the reduced user shape embedded in views. It never carries
// credential fields.
type UserRef struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
}

// StatusView is the lifecycle status shape.
type StatusView struct {
	StatusID   int    `json:"status_id"`
	StatusName string `json:"status_name"`
}

// CommentView is the public comment shape with its author resolved.
type CommentView struct {
	CommentID uuid.UUID `json:"comment_id"`
	OpID      uuid.UUID `json:"op_id"`
	Author    *UserRef  `json:"author,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PackageView is the public packaging line shape.
type PackageView struct {
	PackageID int64            `json:"package_id"`
	OpID      uuid.UUID        `json:"op_id"`
	Quantity  *decimal.Decimal `json:"quantity,omitempty"`
	Units     string           `json:"units"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// OpsFileView is the full public aggregate representation.
type OpsFileView struct {
	OpID   uuid.UUID  `json:"op_id"`
	Client ClientRef  `json:"client"`
	Status StatusView `json:"status"`

	Carrier            *CarrierRef  `json:"carrier,omitempty"`
	Creator            *UserRef     `json:"creator,omitempty"`
	Assignee           *UserRef     `json:"assignee,omitempty"`
	OriginCountry      *CountryView `json:"origin_country,omitempty"`
	DestinationCountry *CountryView `json:"destination_country,omitempty"`

	OpType              *enums.OpType `json:"op_type,omitempty"`
	OriginLocation      *string       `json:"origin_location,omitempty"`
	DestinationLocation *string       `json:"destination_location,omitempty"`

	EstimatedTimeDeparture *time.Time `json:"estimated_time_departure,omitempty"`
	ActualTimeDeparture    *time.Time `json:"actual_time_departure,omitempty"`
	EstimatedTimeArrival   *time.Time `json:"estimated_time_arrival,omitempty"`
	ActualTimeArrival      *time.Time `json:"actual_time_arrival,omitempty"`

	CargoDescription *string          `json:"cargo_description,omitempty"`
	GrossWeightValue *decimal.Decimal `json:"gross_weight_value,omitempty"`
	GrossWeightUnit  *string          `json:"gross_weight_unit,omitempty"`
	VolumeValue      *decimal.Decimal `json:"volume_value,omitempty"`
	VolumeUnit       *string          `json:"volume_unit,omitempty"`

	MasterTransportDoc *string `json:"master_transport_doc,omitempty"`
	HouseTransportDoc  *string `json:"house_transport_doc,omitempty"`
	Incoterm           *string `json:"incoterm,omitempty"`
	Modality           *string `json:"modality,omitempty"`
	Voyage             *string `json:"voyage,omitempty"`

	Partners  []PartnerRef  `json:"partners"`
	Agents    []AgentRef    `json:"agents"`
	Comments  []CommentView `json:"comments"`
	Packaging []PackageView `json:"packaging"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OpsFileList wraps a newest-first page of aggregate views plus the next
// page cursor.
type OpsFileList struct {
	OpsFiles   []OpsFileView `json:"ops_files"`
	NextCursor string        `json:"next_cursor,omitempty"`
}
