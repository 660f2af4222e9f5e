package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is the unit of tenancy for tasks and approval links. Every
// ownership check in the approval workflow resolves through it.
type Client struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"not null"`
	Company   string         `json:"company"`
	Email     string         `json:"email"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
