// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// AuditLog is one durable audit record. Decision entries carry the full
// authorization outcome; policy mutation entries carry ChangeDetails instead.
type AuditLog struct {
	Timestamp           time.Time       `json:"timestamp"`
	PrincipalHrn        string          `json:"principal_hrn"`
	Action              string          `json:"action"`
	ResourceHrn         string          `json:"resource_hrn"`
	Decision            string          `json:"decision,omitempty"`
	Explicit            bool            `json:"explicit"`
	DeterminingPolicies []string        `json:"determining_policies,omitempty"`
	Reason              string          `json:"reason,omitempty"`
	DurationMs          int64           `json:"duration_ms,omitempty"`
	ChangeDetails       json.RawMessage `json:"change_details,omitempty"`
}
