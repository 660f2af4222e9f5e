package handlers

import (
	"net/http"
	"time"

	"clientboard/internal/models"
	"clientboard/internal/services"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the anonymous approval surface. Request bodies use
// the camelCase keys of the deployed public contract, and responses carry
// only the fields a client reviewing their period may see.
type PublicHandler struct {
	linkService   services.ApprovalLinkService
	actionService services.PublicActionService
}

func NewPublicHandler(linkService services.ApprovalLinkService, actionService services.PublicActionService) *PublicHandler {
	return &PublicHandler{linkService: linkService, actionService: actionService}
}

type publicActionRequest struct {
	UniqueID   string `json:"uniqueId" binding:"required"`
	TaskID     uint   `json:"taskId" binding:"required"`
	NewStatus  string `json:"newStatus" binding:"required"`
	EditReason string `json:"editReason"`
}

type publicLinkView struct {
	UniqueID           string    `json:"unique_id"`
	MonthYearReference string    `json:"month_year_reference"`
	ExpiresAt          time.Time `json:"expires_at"`
}

type publicTaskView struct {
	ID             uint                    `json:"id"`
	Title          string                  `json:"title"`
	Description    string                  `json:"description"`
	DueDate        *time.Time              `json:"due_date"`
	DueTime        string                  `json:"due_time"`
	Status         models.ClientTaskStatus `json:"status"`
	OrderIndex     int                     `json:"order_index"`
	AttachmentURLs []string                `json:"attachment_urls"`
	EditReason     string                  `json:"edit_reason"`
	IsCompleted    bool                    `json:"is_completed"`
	CompletedAt    *time.Time              `json:"completed_at"`
}

func toPublicTaskView(task *models.ClientTask) publicTaskView {
	return publicTaskView{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		DueDate:        task.DueDate,
		DueTime:        task.DueTime,
		Status:         task.Status,
		OrderIndex:     task.OrderIndex,
		AttachmentURLs: task.AttachmentURLs,
		EditReason:     task.EditReason,
		IsCompleted:    task.IsCompleted,
		CompletedAt:    task.CompletedAt,
	}
}

// Show loads the public page data for a link: its metadata plus the task set
// it exposes, recomputed on every request.
func (h *PublicHandler) Show(c *gin.Context) {
	link, tasks, err := h.linkService.ResolveLink(c.Param("uniqueId"))
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]publicTaskView, len(tasks))
	for i := range tasks {
		views[i] = toPublicTaskView(&tasks[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"link": publicLinkView{
			UniqueID:           link.UniqueID,
			MonthYearReference: link.MonthYearReference,
			ExpiresAt:          link.ExpiresAt,
		},
		"tasks": views,
	})
}

// Action applies an anonymous approval decision to one exposed task.
func (h *PublicHandler) Action(c *gin.Context) {
	var req publicActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := h.actionService.ApplyPublicAction(
		req.UniqueID, req.TaskID, models.ClientTaskStatus(req.NewStatus), req.EditReason)
	if err != nil {
		respondError(c, err)
		return
	}
	view := toPublicTaskView(task)
	c.JSON(http.StatusOK, gin.H{"task": view})
}
