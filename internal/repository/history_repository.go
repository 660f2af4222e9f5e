package repository

import (
	"clientboard/internal/models"

	"gorm.io/gorm"
)

// HistoryRepository is the append-only audit log. There is no update or
// delete path; entries are written inside the same transaction as the task
// mutation they describe, so an entry can never be silently dropped.
type HistoryRepository interface {
	Record(tx *gorm.DB, entry *models.ClientTaskHistoryEntry) error
	ListByTask(taskID uint, newestFirst bool) ([]models.ClientTaskHistoryEntry, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Record appends one entry using the caller's transaction handle.
func (r *historyRepository) Record(tx *gorm.DB, entry *models.ClientTaskHistoryEntry) error {
	return tx.Create(entry).Error
}

func (r *historyRepository) ListByTask(taskID uint, newestFirst bool) ([]models.ClientTaskHistoryEntry, error) {
	order := "created_at ASC, id ASC"
	if newestFirst {
		order = "created_at DESC, id DESC"
	}
	var entries []models.ClientTaskHistoryEntry
	err := r.db.Where("task_id = ?", taskID).Order(order).Find(&entries).Error
	return entries, err
}
