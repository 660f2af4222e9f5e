package services

import (
	"strings"

	"clientboard/internal/models"
	"clientboard/internal/repository"
	"clientboard/internal/workflow"
)

type TemplateService interface {
	CreateTemplate(userID uint, in TemplateInput) (*models.TaskTemplate, error)
	ListTemplates(userID uint) ([]models.TaskTemplate, error)
	UpdateTemplate(userID, templateID uint, in TemplateUpdate) (*models.TaskTemplate, error)
	DeleteTemplate(userID, templateID uint) error
}

// TemplateInput carries the fields for a new template. A nil or zero
// ClientID makes the template apply to every client.
type TemplateInput struct {
	ClientID              *uint
	Title                 string
	Description           string
	PublicApprovalEnabled bool
	Position              int
}

// TemplateUpdate carries partial edits; nil fields are left untouched. A
// ClientID of 0 clears the client binding back to "any client".
type TemplateUpdate struct {
	ClientID              *uint
	Title                 *string
	Description           *string
	PublicApprovalEnabled *bool
	Position              *int
	IsActive              *bool
}

type templateService struct {
	templates repository.TemplateRepository
	clients   repository.ClientRepository
}

func NewTemplateService(templates repository.TemplateRepository, clients repository.ClientRepository) TemplateService {
	return &templateService{templates: templates, clients: clients}
}

func (s *templateService) CreateTemplate(userID uint, in TemplateInput) (*models.TaskTemplate, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, workflow.Validation("template title is required")
	}

	clientID, err := s.resolveClientID(userID, in.ClientID)
	if err != nil {
		return nil, err
	}

	template := &models.TaskTemplate{
		UserID:                userID,
		ClientID:              clientID,
		Title:                 title,
		Description:           in.Description,
		PublicApprovalEnabled: in.PublicApprovalEnabled,
		Position:              in.Position,
		IsActive:              true,
	}
	if err := s.templates.Create(template); err != nil {
		return nil, workflow.Upstream("failed to create template", err)
	}
	return template, nil
}

func (s *templateService) ListTemplates(userID uint) ([]models.TaskTemplate, error) {
	templates, err := s.templates.ListForUser(userID)
	if err != nil {
		return nil, workflow.Upstream("failed to list templates", err)
	}
	return templates, nil
}

func (s *templateService) UpdateTemplate(userID, templateID uint, in TemplateUpdate) (*models.TaskTemplate, error) {
	template, err := s.templates.GetByIDForUser(templateID, userID)
	if err != nil {
		return nil, notFoundOr(err, "template not found", "failed to load template")
	}

	if in.ClientID != nil {
		clientID, err := s.resolveClientID(userID, in.ClientID)
		if err != nil {
			return nil, err
		}
		template.ClientID = clientID
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, workflow.Validation("template title cannot be empty")
		}
		template.Title = title
	}
	if in.Description != nil {
		template.Description = *in.Description
	}
	if in.PublicApprovalEnabled != nil {
		template.PublicApprovalEnabled = *in.PublicApprovalEnabled
	}
	if in.Position != nil {
		template.Position = *in.Position
	}
	if in.IsActive != nil {
		template.IsActive = *in.IsActive
	}

	if err := s.templates.Update(template); err != nil {
		return nil, workflow.Upstream("failed to update template", err)
	}
	return template, nil
}

func (s *templateService) DeleteTemplate(userID, templateID uint) error {
	template, err := s.templates.GetByIDForUser(templateID, userID)
	if err != nil {
		return notFoundOr(err, "template not found", "failed to load template")
	}
	if err := s.templates.Delete(template.ID); err != nil {
		return workflow.Upstream("failed to delete template", err)
	}
	return nil
}

// resolveClientID turns the request's client reference into a stored value:
// nil or 0 means "any client", anything else must be a client the operator
// owns.
func (s *templateService) resolveClientID(userID uint, clientID *uint) (*uint, error) {
	if clientID == nil || *clientID == 0 {
		return nil, nil
	}
	if _, err := s.clients.GetByIDForUser(*clientID, userID); err != nil {
		return nil, notFoundOr(err, "client not found", "failed to load client")
	}
	id := *clientID
	return &id, nil
}
