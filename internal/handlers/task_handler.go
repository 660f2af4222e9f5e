package handlers

import (
	"net/http"
	"strconv"

	"clientboard/internal/models"
	"clientboard/internal/services"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	ClientID              uint                    `json:"client_id" binding:"required"`
	Title                 string                  `json:"title" binding:"required"`
	Description           string                  `json:"description"`
	DueDate               string                  `json:"due_date"`
	DueTime               string                  `json:"due_time"`
	Status                models.ClientTaskStatus `json:"status"`
	AttachmentURLs        []string                `json:"attachment_urls"`
	PublicApprovalEnabled bool                    `json:"public_approval_enabled"`
	MonthYearReference    string                  `json:"month_year_reference" binding:"required"`
}

type updateTaskRequest struct {
	Title                 *string                  `json:"title"`
	Description           *string                  `json:"description"`
	DueDate               *string                  `json:"due_date"`
	DueTime               *string                  `json:"due_time"`
	Status                *models.ClientTaskStatus `json:"status"`
	AttachmentURLs        *[]string                `json:"attachment_urls"`
	EditReason            *string                  `json:"edit_reason"`
	PublicApprovalEnabled *bool                    `json:"public_approval_enabled"`
	MonthYearReference    *string                  `json:"month_year_reference"`
}

type reorderTasksRequest struct {
	ClientID       uint                    `json:"client_id" binding:"required"`
	Period         string                  `json:"month_year_ref" binding:"required"`
	Status         models.ClientTaskStatus `json:"status" binding:"required"`
	OrderedTaskIDs []uint                  `json:"ordered_task_ids" binding:"required"`
}

type generateTasksRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Period   string `json:"month_year_ref" binding:"required"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := h.taskService.CreateTask(currentUserID(c), services.TaskCreate{
		ClientID:              req.ClientID,
		Title:                 req.Title,
		Description:           req.Description,
		DueDate:               req.DueDate,
		DueTime:               req.DueTime,
		Status:                req.Status,
		AttachmentURLs:        req.AttachmentURLs,
		PublicApprovalEnabled: req.PublicApprovalEnabled,
		MonthYearReference:    req.MonthYearReference,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	var clientID uint
	if raw := c.Query("client_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client_id"})
			return
		}
		clientID = uint(id)
	}

	var status *models.ClientTaskStatus
	if raw := c.Query("status"); raw != "" {
		s := models.ClientTaskStatus(raw)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		status = &s
	}

	tasks, err := h.taskService.ListBoard(currentUserID(c), clientID, c.Query("month_year_ref"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	task, err := h.taskService.GetTask(currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := h.taskService.UpdateTask(currentUserID(c), id, services.TaskUpdate{
		Title:                 req.Title,
		Description:           req.Description,
		DueDate:               req.DueDate,
		DueTime:               req.DueTime,
		Status:                req.Status,
		AttachmentURLs:        req.AttachmentURLs,
		EditReason:            req.EditReason,
		PublicApprovalEnabled: req.PublicApprovalEnabled,
		MonthYearReference:    req.MonthYearReference,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.taskService.DeleteTask(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func (h *TaskHandler) History(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	newestFirst := c.DefaultQuery("order", "asc") == "desc"

	entries, err := h.taskService.ListHistory(currentUserID(c), id, newestFirst)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *TaskHandler) Reorder(c *gin.Context) {
	var req reorderTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := h.taskService.ReorderTasks(currentUserID(c), services.ReorderInput{
		ClientID:       req.ClientID,
		Period:         req.Period,
		Status:         req.Status,
		OrderedTaskIDs: req.OrderedTaskIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
}

func (h *TaskHandler) Generate(c *gin.Context) {
	var req generateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tasks, err := h.taskService.GenerateFromTemplates(currentUserID(c), req.ClientID, req.Period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "generated": len(tasks)})
}
