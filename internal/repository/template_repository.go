package repository

import (
	"clientboard/internal/models"

	"gorm.io/gorm"
)

type TemplateRepository interface {
	Create(template *models.TaskTemplate) error
	GetByIDForUser(id, userID uint) (*models.TaskTemplate, error)
	ListForUser(userID uint) ([]models.TaskTemplate, error)
	ListActiveForClient(userID, clientID uint) ([]models.TaskTemplate, error)
	Update(template *models.TaskTemplate) error
	Delete(id uint) error
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(template *models.TaskTemplate) error {
	return r.db.Create(template).Error
}

func (r *templateRepository) GetByIDForUser(id, userID uint) (*models.TaskTemplate, error) {
	var template models.TaskTemplate
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) ListForUser(userID uint) ([]models.TaskTemplate, error) {
	var templates []models.TaskTemplate
	err := r.db.Where("user_id = ?", userID).
		Order("position ASC, id ASC").
		Find(&templates).Error
	return templates, err
}

// ListActiveForClient returns the active templates batch generation draws
// from: the operator's client-specific templates plus the ones that apply to
// every client (nil client id).
func (r *templateRepository) ListActiveForClient(userID, clientID uint) ([]models.TaskTemplate, error) {
	var templates []models.TaskTemplate
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Where("client_id IS NULL OR client_id = ?", clientID).
		Order("position ASC, id ASC").
		Find(&templates).Error
	return templates, err
}

func (r *templateRepository) Update(template *models.TaskTemplate) error {
	return r.db.Save(template).Error
}

func (r *templateRepository) Delete(id uint) error {
	return r.db.Delete(&models.TaskTemplate{}, id).Error
}
