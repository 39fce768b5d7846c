package models

import "time"

// AuditEntry records authentication events and administrative actions.
type AuditEntry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Action    string    `json:"action"`
	Detail    *string   `json:"detail,omitempty"`
	IPAddress *string   `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
