package enums

// EntityKind names the referenced entity families used in lookup errors.
type EntityKind string

const (
	EntityClient      EntityKind = "client"
	EntityCarrier     EntityKind = "carrier"
	EntityPartner     EntityKind = "partner"
	EntityPartnerType EntityKind = "partner_type"
	EntityContact     EntityKind = "partner_contact"
	EntityAgent       EntityKind = "international_agent"
	EntityCountry     EntityKind = "country"
	EntityUser        EntityKind = "user"
	EntityRole        EntityKind = "role"
	EntityStatus      EntityKind = "op_status"
	EntityOpsFile     EntityKind = "ops_file"
	EntityComment     EntityKind = "comment"
	EntityPackage     EntityKind = "package"
)
