package models

import (
	"time"

	"gorm.io/gorm"
)

// ClientTask is a deliverable owned by a client, tracked through the
// approval lifecycle. MonthYearReference buckets it into the reporting
// period ("YYYY-MM") that public approval links are scoped to.
type ClientTask struct {
	ID                    uint             `json:"id" gorm:"primaryKey"`
	ClientID              uint             `json:"client_id" gorm:"not null;index"`
	UserID                uint             `json:"user_id" gorm:"not null;index"`
	Title                 string           `json:"title" gorm:"not null"`
	Description           string           `json:"description"`
	DueDate               *time.Time       `json:"due_date" gorm:"type:date"`
	DueTime               string           `json:"due_time"` // HH:MM
	Status                ClientTaskStatus `json:"status" gorm:"type:varchar(20);default:'in_progress';index"`
	OrderIndex            int              `json:"order_index" gorm:"default:0"`
	AttachmentURLs        StringList       `json:"attachment_urls" gorm:"type:json"`
	EditReason            string           `json:"edit_reason"`
	PublicApprovalEnabled bool             `json:"public_approval_enabled" gorm:"default:false;index"`
	IsCompleted           bool             `json:"is_completed" gorm:"default:false"`
	CompletedAt           *time.Time       `json:"completed_at"`
	ApprovalLinkID        *uint            `json:"approval_link_id"`
	MonthYearReference    string           `json:"month_year_reference" gorm:"type:varchar(7);index"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
	DeletedAt             gorm.DeletedAt   `json:"deleted_at" gorm:"index"`
}

type ClientTaskStatus string

const (
	StatusInProgress    ClientTaskStatus = "in_progress"
	StatusUnderReview   ClientTaskStatus = "under_review"
	StatusApproved      ClientTaskStatus = "approved"
	StatusEditRequested ClientTaskStatus = "edit_requested"
	StatusPosted        ClientTaskStatus = "posted"
	StatusRejected      ClientTaskStatus = "rejected"
)

// AllStatuses returns every status in workflow order.
func AllStatuses() []ClientTaskStatus {
	return []ClientTaskStatus{
		StatusInProgress,
		StatusUnderReview,
		StatusApproved,
		StatusEditRequested,
		StatusPosted,
		StatusRejected,
	}
}

func (s ClientTaskStatus) Valid() bool {
	switch s {
	case StatusInProgress, StatusUnderReview, StatusApproved,
		StatusEditRequested, StatusPosted, StatusRejected:
		return true
	}
	return false
}

// TerminalSuccess reports whether the status marks the task as completed.
func (s ClientTaskStatus) TerminalSuccess() bool {
	return s == StatusApproved || s == StatusPosted
}

// ApplyStatus moves the task to status and keeps the completion fields in
// sync: entering approved or posted stamps CompletedAt, leaving them clears
// it. The stamp is written only when IsCompleted flips false to true, so a
// move between the two terminal-success states keeps the original timestamp.
// Every write path shares this helper.
func (t *ClientTask) ApplyStatus(status ClientTaskStatus, now time.Time) {
	t.Status = status
	if status.TerminalSuccess() {
		if !t.IsCompleted {
			t.IsCompleted = true
			t.CompletedAt = &now
		}
		return
	}
	t.IsCompleted = false
	t.CompletedAt = nil
}
