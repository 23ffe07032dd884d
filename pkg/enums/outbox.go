package enums

// OutboxEventType identifies the domain event written to the outbox.
type OutboxEventType string

const (
	EventOpsFileCreated OutboxEventType = "ops_file.created"
	EventOpsFileUpdated OutboxEventType = "ops_file.updated"
	EventOpsFileDeleted OutboxEventType = "ops_file.deleted"
)

// OutboxAggregateType identifies the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregateOpsFile OutboxAggregateType = "ops_file"
)
