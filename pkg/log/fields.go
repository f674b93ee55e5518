package log

const (
	// Identifier
	FieldLabel     = "label"
	FieldRawID     = "id"
	FieldKind      = "kind"
	FieldCreatedAt = "created_at"
	FieldMetadata  = "metadata"

	// Generator construction
	FieldWorkerID    = "worker_id"
	FieldMachineID   = "machine_id"
	FieldNodeID      = "node_id"
	FieldEpoch       = "epoch"
	FieldClockPolicy = "clock_policy"

	// Service
	FieldService = "service"

	// Transport
	FieldChannel = "channel"
	FieldSink    = "sink"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
