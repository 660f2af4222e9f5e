package models

import "time"

// PublicApprovalLink is a time-boxed, unguessable entry point for a client
// to review one reporting period. UniqueID is the public URL path segment
// and is distinct from the internal row id. The set of tasks a link exposes
// is computed at query time, never snapshotted at issuance.
type PublicApprovalLink struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	UniqueID           string    `json:"unique_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	ClientID           uint      `json:"client_id" gorm:"not null;index"`
	UserID             uint      `json:"user_id" gorm:"not null;index"`
	MonthYearReference string    `json:"month_year_reference" gorm:"type:varchar(7);not null"`
	ExpiresAt          time.Time `json:"expires_at" gorm:"not null"`
	IsActive           bool      `json:"is_active" gorm:"default:true"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// IsUsable reports whether the link can still be acted on: active and not
// past its expiry. The boundary instant itself is still usable.
func (l *PublicApprovalLink) IsUsable(now time.Time) bool {
	return l.IsActive && !now.After(l.ExpiresAt)
}
