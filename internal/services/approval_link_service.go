package services

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"clientboard/internal/metrics"
	"clientboard/internal/models"
	"clientboard/internal/repository"
	"clientboard/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApprovalLinkService interface {
	IssueLink(userID, clientID uint, period string) (*models.PublicApprovalLink, string, error)
	ListLinks(userID, clientID uint, period string) ([]models.PublicApprovalLink, error)
	RevokeLink(userID, linkID uint) error
	ResolveLink(uniqueID string) (*models.PublicApprovalLink, []models.ClientTask, error)
}

type approvalLinkService struct {
	links   repository.LinkRepository
	clients repository.ClientRepository
	tasks   repository.TaskRepository
	baseURL string
	ttl     time.Duration
}

func NewApprovalLinkService(
	links repository.LinkRepository,
	clients repository.ClientRepository,
	tasks repository.TaskRepository,
	publicBaseURL string,
	ttl time.Duration,
) ApprovalLinkService {
	return &approvalLinkService{
		links:   links,
		clients: clients,
		tasks:   tasks,
		baseURL: publicBaseURL,
		ttl:     ttl,
	}
}

// IssueLink mints a fresh public link for the client's reporting period and
// returns it with its shareable URL. Prior active links for the same
// client+period are superseded in the same transaction. Task rows are never
// touched: the exposed set is computed when the link is read.
func (s *approvalLinkService) IssueLink(userID, clientID uint, period string) (*models.PublicApprovalLink, string, error) {
	if !workflow.ValidPeriod(period) {
		return nil, "", workflow.Validation("month_year_ref must be YYYY-MM")
	}
	if _, err := s.clients.GetByIDForUser(clientID, userID); err != nil {
		return nil, "", notFoundOr(err, "client not found", "failed to load client")
	}

	link := &models.PublicApprovalLink{
		UniqueID:           uuid.NewString(),
		ClientID:           clientID,
		UserID:             userID,
		MonthYearReference: period,
		ExpiresAt:          time.Now().Add(s.ttl),
		IsActive:           true,
	}
	if err := s.links.CreateSuperseding(link); err != nil {
		return nil, "", workflow.Upstream("failed to issue approval link", err)
	}

	metrics.ApprovalLinksIssued.Inc()
	return link, s.publicURL(link.UniqueID), nil
}

func (s *approvalLinkService) ListLinks(userID, clientID uint, period string) ([]models.PublicApprovalLink, error) {
	links, err := s.links.ListForUser(userID, clientID, period)
	if err != nil {
		return nil, workflow.Upstream("failed to list approval links", err)
	}
	return links, nil
}

// RevokeLink deactivates a link ahead of its expiry. Idempotent.
func (s *approvalLinkService) RevokeLink(userID, linkID uint) error {
	link, err := s.links.GetByIDForUser(linkID, userID)
	if err != nil {
		return notFoundOr(err, "approval link not found", "failed to load approval link")
	}
	if !link.IsActive {
		return nil
	}
	link.IsActive = false
	if err := s.links.Update(link); err != nil {
		return workflow.Upstream("failed to revoke approval link", err)
	}
	return nil
}

// ResolveLink is the anonymous read path: it enforces link usability, then
// recomputes the exposed task set for the link's client and period.
func (s *approvalLinkService) ResolveLink(uniqueID string) (*models.PublicApprovalLink, []models.ClientTask, error) {
	link, err := loadUsableLink(s.links, uniqueID)
	if err != nil {
		return nil, nil, err
	}

	tasks, err := s.tasks.ListExposed(link.ClientID, link.MonthYearReference)
	if err != nil {
		return nil, nil, workflow.Upstream("failed to load tasks", err)
	}
	return link, tasks, nil
}

func (s *approvalLinkService) publicURL(uniqueID string) string {
	return strings.TrimSuffix(s.baseURL, "/") + "/approval/" + uniqueID
}

// loadUsableLink fetches a link by its public token and enforces expiry. A
// stale active flag is flipped and persisted here, so expiry is recorded
// lazily on the first read past it; a failed flag write is logged and does
// not stop the denial.
func loadUsableLink(links repository.LinkRepository, uniqueID string) (*models.PublicApprovalLink, error) {
	link, err := links.GetByUniqueID(uniqueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NotFound("approval link not found")
		}
		return nil, workflow.Upstream("failed to load approval link", err)
	}

	now := time.Now()
	if workflow.DeactivateIfExpired(link, now) {
		metrics.ExpiredLinkHits.Inc()
		if err := links.Update(link); err != nil {
			slog.Warn("failed to persist link deactivation", "link_id", link.ID, "error", err)
		}
	}
	if !link.IsUsable(now) {
		return nil, workflow.Expired("approval link is invalid or expired")
	}
	return link, nil
}
