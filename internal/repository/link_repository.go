package repository

import (
	"time"

	"clientboard/internal/models"

	"gorm.io/gorm"
)

type LinkRepository interface {
	CreateSuperseding(link *models.PublicApprovalLink) error
	GetByUniqueID(uniqueID string) (*models.PublicApprovalLink, error)
	GetByIDForUser(id, userID uint) (*models.PublicApprovalLink, error)
	ListForUser(userID, clientID uint, period string) ([]models.PublicApprovalLink, error)
	ExistsUsable(clientID uint, period string, now time.Time) (bool, error)
	Update(link *models.PublicApprovalLink) error
}

type linkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

// CreateSuperseding inserts the link and deactivates every other active link
// for the same client and period in the same transaction, so at most one
// link per client+period is usable at any time.
func (r *linkRepository) CreateSuperseding(link *models.PublicApprovalLink) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PublicApprovalLink{}).
			Where("client_id = ? AND month_year_reference = ? AND is_active = ?",
				link.ClientID, link.MonthYearReference, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(link).Error
	})
}

// GetByUniqueID looks a link up by its public token with no operator
// scoping: possession of the token is the only credential the anonymous
// path carries.
func (r *linkRepository) GetByUniqueID(uniqueID string) (*models.PublicApprovalLink, error) {
	var link models.PublicApprovalLink
	err := r.db.Where("unique_id = ?", uniqueID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *linkRepository) GetByIDForUser(id, userID uint) (*models.PublicApprovalLink, error) {
	var link models.PublicApprovalLink
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *linkRepository) ListForUser(userID, clientID uint, period string) ([]models.PublicApprovalLink, error) {
	q := r.db.Where("user_id = ?", userID)
	if clientID != 0 {
		q = q.Where("client_id = ?", clientID)
	}
	if period != "" {
		q = q.Where("month_year_reference = ?", period)
	}
	var links []models.PublicApprovalLink
	err := q.Order("created_at DESC, id DESC").Find(&links).Error
	return links, err
}

// ExistsUsable reports whether any link for the client+period is still
// active and unexpired. The delete guard on tasks relies on it.
func (r *linkRepository) ExistsUsable(clientID uint, period string, now time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.PublicApprovalLink{}).
		Where("client_id = ? AND month_year_reference = ? AND is_active = ? AND expires_at >= ?",
			clientID, period, true, now).
		Count(&count).Error
	return count > 0, err
}

func (r *linkRepository) Update(link *models.PublicApprovalLink) error {
	return r.db.Save(link).Error
}
