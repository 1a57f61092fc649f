package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded in the audit trail.
const (
	ActionCreate       = "CREATE"
	ActionView         = "VIEW"
	ActionUpdate       = "UPDATE"
	ActionUpdateStatus = "UPDATE_STATUS"
	ActionUpload       = "UPLOAD"
	ActionLogin        = "LOGIN"
)

// Entry maps to the audit_log table. Entries are append-only; there is no
// update or delete path.
type Entry struct {
	ID           uuid.UUID              `db:"id" json:"id"`
	ActorID      string                 `db:"actor_id" json:"actor_id"`
	ActorEmail   string                 `db:"actor_email" json:"actor_email"`
	Action       string                 `db:"action" json:"action"`
	ResourceType string                 `db:"resource_type" json:"resource_type"`
	ResourceID   string                 `db:"resource_id" json:"resource_id,omitempty"`
	Detail       map[string]interface{} `db:"detail" json:"detail,omitempty"`
	CreatedAt    time.Time              `db:"created_at" json:"created_at"`
}

// Filter narrows an audit log search. Zero-value fields match everything.
type Filter struct {
	ActorID      string
	Action       string
	ResourceType string
	ResourceID   string
}
