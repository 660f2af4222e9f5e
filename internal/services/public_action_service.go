package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"clientboard/internal/cache"
	"clientboard/internal/metrics"
	"clientboard/internal/models"
	"clientboard/internal/repository"
	"clientboard/internal/workflow"

	"gorm.io/gorm"
)

// PublicActionService is the only write path reachable without
// authentication. Everything is re-validated here: link usability, task
// ownership and exposure, the transition table for anonymous actors, and the
// reason requirement. Nothing is written until every check has passed.
type PublicActionService interface {
	ApplyPublicAction(uniqueID string, taskID uint, newStatus models.ClientTaskStatus, editReason string) (*models.ClientTask, error)
}

type publicActionService struct {
	links repository.LinkRepository
	tasks repository.TaskRepository
	cache *cache.Client
}

func NewPublicActionService(links repository.LinkRepository, tasks repository.TaskRepository, cacheClient *cache.Client) PublicActionService {
	return &publicActionService{links: links, tasks: tasks, cache: cacheClient}
}

func (s *publicActionService) ApplyPublicAction(uniqueID string, taskID uint, newStatus models.ClientTaskStatus, editReason string) (task *models.ClientTask, err error) {
	// Anonymous input must not become a metric label; unknown statuses are
	// folded into one bucket.
	action := "invalid"
	event, known := workflow.PublicEventFor(newStatus)
	if known {
		action = string(newStatus)
	}
	defer func() {
		metrics.PublicActions.WithLabelValues(action, metrics.Outcome(err)).Inc()
	}()

	link, err := loadUsableLink(s.links, uniqueID)
	if err != nil {
		return nil, err
	}

	task, err = s.tasks.GetByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NotFound("task not found")
		}
		return nil, workflow.Upstream("failed to load task", err)
	}
	// A task outside the link's exposed set must look absent, even when the
	// caller guessed a real id.
	if task.ClientID != link.ClientID ||
		task.MonthYearReference != link.MonthYearReference ||
		!task.PublicApprovalEnabled {
		return nil, workflow.NotFound("task not found")
	}

	if !known || !workflow.CanTransition(task.Status, newStatus, workflow.ActorPublic) {
		return nil, workflow.InvalidTransition(
			fmt.Sprintf("task cannot be moved to %q from its current status", newStatus))
	}

	reason := strings.TrimSpace(editReason)
	if workflow.ReasonRequired(newStatus) && reason == "" {
		return nil, workflow.Validation("a reason is required for this action")
	}

	oldStatus := task.Status
	task.ApplyStatus(newStatus, time.Now())
	if workflow.ReasonRequired(newStatus) {
		task.EditReason = reason
	}
	task.ApprovalLinkID = &link.ID

	entry := &models.ClientTaskHistoryEntry{
		TaskID:    task.ID,
		ActorID:   nil, // anonymous
		EventType: event,
		Details: models.HistoryDetails{
			OldStatus:  oldStatus,
			NewStatus:  newStatus,
			EditReason: reason,
		},
	}
	if err := s.tasks.UpdateWithHistory(task, entry); err != nil {
		return nil, workflow.Upstream("failed to apply action", err)
	}

	invalidateBoard(s.cache, task.UserID, task.ClientID, task.MonthYearReference)
	return task, nil
}
