// Package services implements the approval workflow's business rules between
// the HTTP handlers and the repositories: ownership scoping, operator edits,
// link issuance and the anonymous trust boundary.
package services

import (
	"errors"
	"log/slog"

	"clientboard/internal/cache"
	"clientboard/internal/workflow"

	"gorm.io/gorm"
)

// notFoundOr translates gorm's record-not-found into the workflow taxonomy;
// anything else is reported as an upstream store failure.
func notFoundOr(err error, notFoundMsg, upstreamMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workflow.NotFound(notFoundMsg)
	}
	return workflow.Upstream(upstreamMsg, err)
}

// invalidateBoard drops the cached board for one client+period after a
// mutation. Cache failures are logged and swallowed: the relational store
// stays the source of truth.
func invalidateBoard(c *cache.Client, userID, clientID uint, period string) {
	if c == nil {
		return
	}
	if err := c.InvalidateBoard(userID, clientID, period); err != nil {
		slog.Debug("board cache invalidation failed",
			"user_id", userID, "client_id", clientID, "period", period, "error", err)
	}
}
