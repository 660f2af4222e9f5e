package repository

import (
	"clientboard/internal/models"

	"gorm.io/gorm"
)

type TaskRepository interface {
	CreateWithHistory(task *models.ClientTask, entry *models.ClientTaskHistoryEntry) error
	CreateBatchWithHistory(tasks []*models.ClientTask, entries []*models.ClientTaskHistoryEntry) error
	GetByID(id uint) (*models.ClientTask, error)
	GetByIDForUser(id, userID uint) (*models.ClientTask, error)
	ListBoard(userID, clientID uint, period string, status *models.ClientTaskStatus) ([]models.ClientTask, error)
	ListExposed(clientID uint, period string) ([]models.ClientTask, error)
	UpdateWithHistory(task *models.ClientTask, entry *models.ClientTaskHistoryEntry) error
	Reorder(userID, clientID uint, period string, status models.ClientTaskStatus, orderedIDs []uint) error
	Delete(id uint) error
}

type taskRepository struct {
	db      *gorm.DB
	history HistoryRepository
}

func NewTaskRepository(db *gorm.DB, history HistoryRepository) TaskRepository {
	return &taskRepository{db: db, history: history}
}

// CreateWithHistory inserts the task and its audit entry in one transaction.
// The task is appended at the end of its status column.
func (r *taskRepository) CreateWithHistory(task *models.ClientTask, entry *models.ClientTaskHistoryEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		task.OrderIndex = nextOrderIndex(tx, task)
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		entry.TaskID = task.ID
		return r.history.Record(tx, entry)
	})
}

// CreateBatchWithHistory inserts template-generated tasks and their audit
// entries atomically: either the whole batch lands or none of it does.
// entries[i] belongs to tasks[i].
func (r *taskRepository) CreateBatchWithHistory(tasks []*models.ClientTask, entries []*models.ClientTaskHistoryEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i, task := range tasks {
			task.OrderIndex = nextOrderIndex(tx, task)
			if err := tx.Create(task).Error; err != nil {
				return err
			}
			entries[i].TaskID = task.ID
			if err := r.history.Record(tx, entries[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func nextOrderIndex(tx *gorm.DB, task *models.ClientTask) int {
	var count int64
	tx.Model(&models.ClientTask{}).
		Where("client_id = ? AND month_year_reference = ? AND status = ?",
			task.ClientID, task.MonthYearReference, task.Status).
		Count(&count)
	return int(count)
}

func (r *taskRepository) GetByID(id uint) (*models.ClientTask, error) {
	var task models.ClientTask
	err := r.db.First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) GetByIDForUser(id, userID uint) (*models.ClientTask, error) {
	var task models.ClientTask
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListBoard(userID, clientID uint, period string, status *models.ClientTaskStatus) ([]models.ClientTask, error) {
	q := r.db.Where("user_id = ?", userID)
	if clientID != 0 {
		q = q.Where("client_id = ?", clientID)
	}
	if period != "" {
		q = q.Where("month_year_reference = ?", period)
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var tasks []models.ClientTask
	err := q.Order("order_index ASC, id ASC").Find(&tasks).Error
	return tasks, err
}

// ListExposed returns the tasks a public link shows: same client, same
// period, flagged for public approval. Membership is recomputed on every
// call rather than snapshotted when the link is issued.
func (r *taskRepository) ListExposed(clientID uint, period string) ([]models.ClientTask, error) {
	var tasks []models.ClientTask
	err := r.db.
		Where("client_id = ? AND month_year_reference = ? AND public_approval_enabled = ?",
			clientID, period, true).
		Order("order_index ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}

// UpdateWithHistory saves the task and appends its audit entry in one
// transaction, so a failed history write rolls the mutation back.
func (r *taskRepository) UpdateWithHistory(task *models.ClientTask, entry *models.ClientTaskHistoryEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		entry.TaskID = task.ID
		return r.history.Record(tx, entry)
	})
}

// Reorder rewrites the order_index of a whole status column in one
// transaction. Every id must belong to the operator's column; one mismatch
// fails the batch with gorm.ErrRecordNotFound and nothing is applied.
// Pure reshuffles are not audited.
func (r *taskRepository) Reorder(userID, clientID uint, period string, status models.ClientTaskStatus, orderedIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for idx, id := range orderedIDs {
			res := tx.Model(&models.ClientTask{}).
				Where("id = ? AND user_id = ? AND client_id = ? AND month_year_reference = ? AND status = ?",
					id, userID, clientID, period, status).
				Update("order_index", idx)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *taskRepository) Delete(id uint) error {
	return r.db.Delete(&models.ClientTask{}, id).Error
}
