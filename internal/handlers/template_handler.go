package handlers

import (
	"net/http"

	"clientboard/internal/services"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templateService services.TemplateService
}

func NewTemplateHandler(templateService services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type createTemplateRequest struct {
	ClientID              *uint  `json:"client_id"`
	Title                 string `json:"title" binding:"required"`
	Description           string `json:"description"`
	PublicApprovalEnabled bool   `json:"public_approval_enabled"`
	Position              int    `json:"position"`
}

type updateTemplateRequest struct {
	ClientID              *uint   `json:"client_id"`
	Title                 *string `json:"title"`
	Description           *string `json:"description"`
	PublicApprovalEnabled *bool   `json:"public_approval_enabled"`
	Position              *int    `json:"position"`
	IsActive              *bool   `json:"is_active"`
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	template, err := h.templateService.CreateTemplate(currentUserID(c), services.TemplateInput{
		ClientID:              req.ClientID,
		Title:                 req.Title,
		Description:           req.Description,
		PublicApprovalEnabled: req.PublicApprovalEnabled,
		Position:              req.Position,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templateService.ListTemplates(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *TemplateHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	template, err := h.templateService.UpdateTemplate(currentUserID(c), id, services.TemplateUpdate{
		ClientID:              req.ClientID,
		Title:                 req.Title,
		Description:           req.Description,
		PublicApprovalEnabled: req.PublicApprovalEnabled,
		Position:              req.Position,
		IsActive:              req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.templateService.DeleteTemplate(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}
