package models

import "time"

// ClientTaskHistoryEntry is one immutable audit record. Exactly one entry is
// written per mutating operation on a task; the repository layer exposes no
// update or delete path. ActorID is nil for anonymous public actions.
type ClientTaskHistoryEntry struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	TaskID    uint             `json:"task_id" gorm:"not null;index"`
	ActorID   *uint            `json:"actor_id"`
	EventType HistoryEventType `json:"event_type" gorm:"type:varchar(40);not null"`
	Details   HistoryDetails   `json:"details" gorm:"type:json"`
	CreatedAt time.Time        `json:"created_at"`
}

type HistoryEventType string

const (
	EventCreated                    HistoryEventType = "created"
	EventUpdated                    HistoryEventType = "updated"
	EventStatusChanged              HistoryEventType = "status_changed"
	EventApprovedViaPublicLink      HistoryEventType = "approved_via_public_link"
	EventEditRequestedViaPublicLink HistoryEventType = "edit_requested_via_public_link"
	EventRejectedViaPublicLink      HistoryEventType = "rejected_via_public_link"
)

// HistoryDetails is the structured payload attached to an entry. Only the
// fields relevant to the event are set.
type HistoryDetails struct {
	OldStatus     ClientTaskStatus `json:"old_status,omitempty"`
	NewStatus     ClientTaskStatus `json:"new_status,omitempty"`
	EditReason    string           `json:"edit_reason,omitempty"`
	ChangedFields []string         `json:"changed_fields,omitempty"`
}
