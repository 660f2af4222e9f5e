package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clientboard/internal/cache"
	"clientboard/internal/models"
	"clientboard/internal/repository"
	"clientboard/internal/workflow"

	"gorm.io/gorm"
)

type TaskService interface {
	CreateTask(userID uint, in TaskCreate) (*models.ClientTask, error)
	GetTask(userID, taskID uint) (*models.ClientTask, error)
	ListBoard(userID, clientID uint, period string, status *models.ClientTaskStatus) ([]models.ClientTask, error)
	UpdateTask(userID, taskID uint, in TaskUpdate) (*models.ClientTask, error)
	DeleteTask(userID, taskID uint) error
	ListHistory(userID, taskID uint, newestFirst bool) ([]models.ClientTaskHistoryEntry, error)
	ReorderTasks(userID uint, in ReorderInput) error
	GenerateFromTemplates(userID, clientID uint, period string) ([]models.ClientTask, error)
}

// TaskCreate carries the fields for a new task. Dates travel as strings so
// the handler stays a thin binding layer: DueDate is "YYYY-MM-DD", DueTime
// "HH:MM", both optional. An empty Status defaults to in_progress.
type TaskCreate struct {
	ClientID              uint
	Title                 string
	Description           string
	DueDate               string
	DueTime               string
	Status                models.ClientTaskStatus
	AttachmentURLs        []string
	PublicApprovalEnabled bool
	MonthYearReference    string
}

// TaskUpdate carries partial edits; nil fields are left untouched. An empty
// DueDate or DueTime string clears the stored value.
type TaskUpdate struct {
	Title                 *string
	Description           *string
	DueDate               *string
	DueTime               *string
	Status                *models.ClientTaskStatus
	AttachmentURLs        *[]string
	EditReason            *string
	PublicApprovalEnabled *bool
	MonthYearReference    *string
}

// ReorderInput names one status column and the full id order to apply to it.
type ReorderInput struct {
	ClientID       uint
	Period         string
	Status         models.ClientTaskStatus
	OrderedTaskIDs []uint
}

type taskService struct {
	tasks     repository.TaskRepository
	history   repository.HistoryRepository
	clients   repository.ClientRepository
	links     repository.LinkRepository
	templates repository.TemplateRepository
	cache     *cache.Client
	boardTTL  time.Duration
}

func NewTaskService(
	tasks repository.TaskRepository,
	history repository.HistoryRepository,
	clients repository.ClientRepository,
	links repository.LinkRepository,
	templates repository.TemplateRepository,
	cacheClient *cache.Client,
	boardTTL time.Duration,
) TaskService {
	return &taskService{
		tasks:     tasks,
		history:   history,
		clients:   clients,
		links:     links,
		templates: templates,
		cache:     cacheClient,
		boardTTL:  boardTTL,
	}
}

func (s *taskService) CreateTask(userID uint, in TaskCreate) (*models.ClientTask, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, workflow.Validation("task title is required")
	}
	if !workflow.ValidPeriod(in.MonthYearReference) {
		return nil, workflow.Validation("month_year_reference must be YYYY-MM")
	}
	if _, err := s.clients.GetByIDForUser(in.ClientID, userID); err != nil {
		return nil, notFoundOr(err, "client not found", "failed to load client")
	}

	status := in.Status
	if status == "" {
		status = models.StatusInProgress
	}
	if !status.Valid() {
		return nil, workflow.Validation(fmt.Sprintf("invalid status %q", status))
	}

	dueDate, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	if err := validateDueTime(in.DueTime); err != nil {
		return nil, err
	}

	task := &models.ClientTask{
		ClientID:              in.ClientID,
		UserID:                userID,
		Title:                 title,
		Description:           in.Description,
		DueDate:               dueDate,
		DueTime:               in.DueTime,
		AttachmentURLs:        models.StringList(in.AttachmentURLs),
		PublicApprovalEnabled: in.PublicApprovalEnabled,
		MonthYearReference:    in.MonthYearReference,
	}
	task.ApplyStatus(status, time.Now())

	entry := &models.ClientTaskHistoryEntry{
		ActorID:   &userID,
		EventType: models.EventCreated,
		Details:   models.HistoryDetails{NewStatus: status},
	}
	if err := s.tasks.CreateWithHistory(task, entry); err != nil {
		return nil, workflow.Upstream("failed to create task", err)
	}

	invalidateBoard(s.cache, userID, task.ClientID, task.MonthYearReference)
	return task, nil
}

func (s *taskService) GetTask(userID, taskID uint) (*models.ClientTask, error) {
	task, err := s.tasks.GetByIDForUser(taskID, userID)
	if err != nil {
		return nil, notFoundOr(err, "task not found", "failed to load task")
	}
	return task, nil
}

// ListBoard returns the operator's tasks, optionally filtered by client,
// period and status column. Full client+period boards go through the Redis
// cache when one is configured; filtered reads always hit the store.
func (s *taskService) ListBoard(userID, clientID uint, period string, status *models.ClientTaskStatus) ([]models.ClientTask, error) {
	cacheable := s.cache != nil && clientID != 0 && period != "" && status == nil
	if cacheable {
		tasks, err := s.cache.GetBoard(userID, clientID, period)
		if err == nil {
			return tasks, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			slog.Debug("board cache read failed", "error", err)
		}
	}

	tasks, err := s.tasks.ListBoard(userID, clientID, period, status)
	if err != nil {
		return nil, workflow.Upstream("failed to list tasks", err)
	}

	if cacheable {
		if err := s.cache.SetBoard(userID, clientID, period, tasks, s.boardTTL); err != nil {
			slog.Debug("board cache write failed", "error", err)
		}
	}
	return tasks, nil
}

// UpdateTask applies an operator edit: any combination of field changes and
// one optional status transition, recorded as exactly one history entry. A
// call that changes nothing writes nothing.
func (s *taskService) UpdateTask(userID, taskID uint, in TaskUpdate) (*models.ClientTask, error) {
	task, err := s.tasks.GetByIDForUser(taskID, userID)
	if err != nil {
		return nil, notFoundOr(err, "task not found", "failed to load task")
	}
	oldPeriod := task.MonthYearReference

	var changed []string
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, workflow.Validation("task title cannot be empty")
		}
		if title != task.Title {
			task.Title = title
			changed = append(changed, "title")
		}
	}
	if in.Description != nil && *in.Description != task.Description {
		task.Description = *in.Description
		changed = append(changed, "description")
	}
	if in.DueDate != nil {
		dueDate, err := parseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		if !equalTimePtr(task.DueDate, dueDate) {
			task.DueDate = dueDate
			changed = append(changed, "due_date")
		}
	}
	if in.DueTime != nil {
		if err := validateDueTime(*in.DueTime); err != nil {
			return nil, err
		}
		if *in.DueTime != task.DueTime {
			task.DueTime = *in.DueTime
			changed = append(changed, "due_time")
		}
	}
	if in.AttachmentURLs != nil && !equalStringLists(task.AttachmentURLs, *in.AttachmentURLs) {
		task.AttachmentURLs = models.StringList(*in.AttachmentURLs)
		changed = append(changed, "attachment_urls")
	}
	if in.EditReason != nil && *in.EditReason != task.EditReason {
		task.EditReason = *in.EditReason
		changed = append(changed, "edit_reason")
	}
	if in.PublicApprovalEnabled != nil && *in.PublicApprovalEnabled != task.PublicApprovalEnabled {
		task.PublicApprovalEnabled = *in.PublicApprovalEnabled
		changed = append(changed, "public_approval_enabled")
	}
	if in.MonthYearReference != nil {
		if !workflow.ValidPeriod(*in.MonthYearReference) {
			return nil, workflow.Validation("month_year_reference must be YYYY-MM")
		}
		if *in.MonthYearReference != task.MonthYearReference {
			task.MonthYearReference = *in.MonthYearReference
			changed = append(changed, "month_year_reference")
		}
	}

	oldStatus := task.Status
	statusChanged := false
	if in.Status != nil && *in.Status != task.Status {
		if !in.Status.Valid() {
			return nil, workflow.Validation(fmt.Sprintf("invalid status %q", *in.Status))
		}
		if !workflow.CanTransition(task.Status, *in.Status, workflow.ActorOperator) {
			return nil, workflow.InvalidTransition(
				fmt.Sprintf("cannot move task from %q to %q", task.Status, *in.Status))
		}
		task.ApplyStatus(*in.Status, time.Now())
		statusChanged = true
	}

	if !statusChanged && len(changed) == 0 {
		return task, nil
	}

	entry := &models.ClientTaskHistoryEntry{
		TaskID:  task.ID,
		ActorID: &userID,
	}
	if statusChanged {
		entry.EventType = models.EventStatusChanged
		entry.Details = models.HistoryDetails{
			OldStatus:     oldStatus,
			NewStatus:     task.Status,
			ChangedFields: changed,
		}
	} else {
		entry.EventType = models.EventUpdated
		entry.Details = models.HistoryDetails{ChangedFields: changed}
	}

	if err := s.tasks.UpdateWithHistory(task, entry); err != nil {
		return nil, workflow.Upstream("failed to update task", err)
	}

	invalidateBoard(s.cache, userID, task.ClientID, oldPeriod)
	if task.MonthYearReference != oldPeriod {
		invalidateBoard(s.cache, userID, task.ClientID, task.MonthYearReference)
	}
	return task, nil
}

// DeleteTask soft-deletes a task. Refused while any usable public link still
// covers the task's client+period: the exposed set must not shrink under a
// client who is mid-review.
func (s *taskService) DeleteTask(userID, taskID uint) error {
	task, err := s.tasks.GetByIDForUser(taskID, userID)
	if err != nil {
		return notFoundOr(err, "task not found", "failed to load task")
	}

	usable, err := s.links.ExistsUsable(task.ClientID, task.MonthYearReference, time.Now())
	if err != nil {
		return workflow.Upstream("failed to check approval links", err)
	}
	if usable {
		return workflow.Validation("task period is covered by an active approval link; revoke the link first")
	}

	if err := s.tasks.Delete(task.ID); err != nil {
		return workflow.Upstream("failed to delete task", err)
	}
	invalidateBoard(s.cache, userID, task.ClientID, task.MonthYearReference)
	return nil
}

func (s *taskService) ListHistory(userID, taskID uint, newestFirst bool) ([]models.ClientTaskHistoryEntry, error) {
	if _, err := s.tasks.GetByIDForUser(taskID, userID); err != nil {
		return nil, notFoundOr(err, "task not found", "failed to load task")
	}
	entries, err := s.history.ListByTask(taskID, newestFirst)
	if err != nil {
		return nil, workflow.Upstream("failed to list task history", err)
	}
	return entries, nil
}

// ReorderTasks rewrites one status column's order in a single transaction;
// the whole batch fails if any id is not in the operator's column.
func (s *taskService) ReorderTasks(userID uint, in ReorderInput) error {
	if !workflow.ValidPeriod(in.Period) {
		return workflow.Validation("month_year_ref must be YYYY-MM")
	}
	if !in.Status.Valid() {
		return workflow.Validation(fmt.Sprintf("invalid status %q", in.Status))
	}
	if len(in.OrderedTaskIDs) == 0 {
		return workflow.Validation("ordered_task_ids cannot be empty")
	}
	if _, err := s.clients.GetByIDForUser(in.ClientID, userID); err != nil {
		return notFoundOr(err, "client not found", "failed to load client")
	}

	if err := s.tasks.Reorder(userID, in.ClientID, in.Period, in.Status, in.OrderedTaskIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workflow.NotFound("one or more tasks are not in the target column")
		}
		return workflow.Upstream("failed to reorder tasks", err)
	}

	invalidateBoard(s.cache, userID, in.ClientID, in.Period)
	return nil
}

// GenerateFromTemplates creates one task per active template matching the
// client, all in one transaction with their audit entries.
func (s *taskService) GenerateFromTemplates(userID, clientID uint, period string) ([]models.ClientTask, error) {
	if !workflow.ValidPeriod(period) {
		return nil, workflow.Validation("month_year_ref must be YYYY-MM")
	}
	if _, err := s.clients.GetByIDForUser(clientID, userID); err != nil {
		return nil, notFoundOr(err, "client not found", "failed to load client")
	}

	templates, err := s.templates.ListActiveForClient(userID, clientID)
	if err != nil {
		return nil, workflow.Upstream("failed to list templates", err)
	}
	if len(templates) == 0 {
		return []models.ClientTask{}, nil
	}

	now := time.Now()
	tasks := make([]*models.ClientTask, 0, len(templates))
	entries := make([]*models.ClientTaskHistoryEntry, 0, len(templates))
	for _, tpl := range templates {
		task := &models.ClientTask{
			ClientID:              clientID,
			UserID:                userID,
			Title:                 tpl.Title,
			Description:           tpl.Description,
			PublicApprovalEnabled: tpl.PublicApprovalEnabled,
			MonthYearReference:    period,
		}
		task.ApplyStatus(models.StatusInProgress, now)
		tasks = append(tasks, task)
		entries = append(entries, &models.ClientTaskHistoryEntry{
			ActorID:   &userID,
			EventType: models.EventCreated,
			Details:   models.HistoryDetails{NewStatus: models.StatusInProgress},
		})
	}

	if err := s.tasks.CreateBatchWithHistory(tasks, entries); err != nil {
		return nil, workflow.Upstream("failed to generate tasks", err)
	}

	invalidateBoard(s.cache, userID, clientID, period)

	out := make([]models.ClientTask, len(tasks))
	for i, task := range tasks {
		out[i] = *task
	}
	return out, nil
}

func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, workflow.Validation("due_date must be YYYY-MM-DD")
	}
	return &d, nil
}

func validateDueTime(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse("15:04", value); err != nil {
		return workflow.Validation("due_time must be HH:MM")
	}
	return nil
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func equalStringLists(a models.StringList, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
