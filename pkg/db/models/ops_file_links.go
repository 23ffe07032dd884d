package models

import "github.com/google/uuid"

// OpsFilePartnerLink joins an ops file to a partner. Pure association row;
// the pair is the identity.
type OpsFilePartnerLink struct {
	OpID      uuid.UUID `gorm:"column:op_id;type:uuid;primaryKey"`
	PartnerID uuid.UUID `gorm:"column:partner_id;type:uuid;primaryKey"`
}

func (OpsFilePartnerLink) TableName() string { return "ops.op_file_partner_link" }

// OpsFileAgentLink joins an ops file to an international agent. Retained from
// the earlier association generation alongside partner links.
type OpsFileAgentLink struct {
	OpID    uuid.UUID `gorm:"column:op_id;type:uuid;primaryKey"`
	AgentID uuid.UUID `gorm:"column:agent_id;type:uuid;primaryKey"`
}

func (OpsFileAgentLink) TableName() string { return "ops.op_file_agent_link" }
