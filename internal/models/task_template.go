package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskTemplate describes a task the operator generates in batch for a
// reporting period. A nil ClientID means the template applies to every
// client.
type TaskTemplate struct {
	ID                    uint           `json:"id" gorm:"primaryKey"`
	UserID                uint           `json:"user_id" gorm:"not null;index"`
	ClientID              *uint          `json:"client_id" gorm:"index"`
	Title                 string         `json:"title" gorm:"not null"`
	Description           string         `json:"description"`
	PublicApprovalEnabled bool           `json:"public_approval_enabled" gorm:"default:false"`
	Position              int            `json:"position" gorm:"default:0"`
	IsActive              bool           `json:"is_active" gorm:"default:true"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
