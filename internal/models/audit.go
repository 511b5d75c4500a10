package models

const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// AuditEntry is one immutable record of a mutation. OldValue and NewValue hold
// JSON snapshots of the item before and after the change; CREATE has no old
// value and DELETE has no new value.
type AuditEntry struct {
	ID        int     `json:"id"`
	Username  string  `json:"username"`
	Action    string  `json:"action"`
	OldValue  *string `json:"old_value"`
	NewValue  *string `json:"new_value"`
	Timestamp string  `json:"timestamp"`
}
