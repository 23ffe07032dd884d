package partners

import (
	"time"

	"github.com/google/uuid"
)

// CreatePartnerTypeInput carries the lookup creation payload.
type CreatePartnerTypeInput struct {
	PartnerTypeID string  `json:"partner_type_id" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Description   *string `json:"description"`
}

// PartnerTypeView is the public partner type shape.
type PartnerTypeView struct {
	PartnerTypeID string  `json:"partner_type_id"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
}

// ContactInput is a contact supplied inline with partner creation or via the
// contacts manager.
type ContactInput struct {
	Name     string  `json:"name" validate:"required"`
	Position *string `json:"position"`
	Email    *string `json:"email"`
	Mobile   *string `json:"mobile"`
	Phone    *string `json:"phone"`
}

// CreatePartnerInput carries the partner creation payload. Contacts, when
// present, are created with the partner in the same transaction.
type CreatePartnerInput struct {
	Name          string         `json:"name" validate:"required"`
	TaxID         *string        `json:"tax_id"`
	Webpage       *string        `json:"webpage"`
	PartnerTypeID string         `json:"partner_type_id" validate:"required"`
	CountryID     *int           `json:"country_id"`
	Contacts      []ContactInput `json:"contacts"`
}

// UpdatePartnerInput is exclude-unset.
type UpdatePartnerInput struct {
	Name          *string `json:"name"`
	TaxID         *string `json:"tax_id"`
	Webpage       *string `json:"webpage"`
	PartnerTypeID *string `json:"partner_type_id"`
	CountryID     *int    `json:"country_id"`
	Disabled      *bool   `json:"disabled"`
}

// UpdateContactInput is exclude-unset.
type UpdateContactInput struct {
	Name     *string `json:"name"`
	Position *string `json:"position"`
	Email    *string `json:"email"`
	Mobile   *string `json:"mobile"`
	Phone    *string `json:"phone"`
	Disabled *bool   `json:"disabled"`
}

// ContactView is the public partner contact shape.
type ContactView struct {
	PartnerContactID uuid.UUID `json:"partner_contact_id"`
	PartnerID        uuid.UUID `json:"partner_id"`
	Name             string    `json:"name"`
	Position         *string   `json:"position,omitempty"`
	Email            *string   `json:"email,omitempty"`
	Mobile           *string   `json:"mobile,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	Disabled         bool      `json:"disabled"`
}

// PartnerView is the public partner shape including its type, country and
// contacts.
type PartnerView struct {
	PartnerID   uuid.UUID       `json:"partner_id"`
	Name        string          `json:"name"`
	TaxID       *string         `json:"tax_id,omitempty"`
	Webpage     *string         `json:"webpage,omitempty"`
	Disabled    bool            `json:"disabled"`
	PartnerType PartnerTypeView `json:"partner_type"`
	CountryID   *int            `json:"country_id,omitempty"`
	Contacts    []ContactView   `json:"contacts"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PartnerList wraps a newest-first page of partners plus the next cursor.
type PartnerList struct {
	Partners   []PartnerView `json:"partners"`
	NextCursor string        `json:"next_cursor,omitempty"`
}
