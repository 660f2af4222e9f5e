package workflow

import (
	"time"

	"clientboard/internal/models"
)

// ActorKind distinguishes who is asking for a status change. Operators get a
// permissive table so they can correct mistakes by hand; public actors are
// restricted to the review decisions.
type ActorKind string

const (
	ActorOperator ActorKind = "operator"
	ActorPublic   ActorKind = "public"
)

// publicTransitions is the closed table for anonymous actors: only a task
// sitting in review can be decided, and only into the three review outcomes.
var publicTransitions = map[models.ClientTaskStatus][]models.ClientTaskStatus{
	models.StatusUnderReview: {
		models.StatusApproved,
		models.StatusEditRequested,
		models.StatusRejected,
	},
}

// AllowedTransitions returns the statuses the actor may move a task into
// from the given status. Operators may move a task anywhere except where it
// already is; public actors follow publicTransitions.
func AllowedTransitions(from models.ClientTaskStatus, actor ActorKind) []models.ClientTaskStatus {
	switch actor {
	case ActorOperator:
		all := models.AllStatuses()
		out := make([]models.ClientTaskStatus, 0, len(all)-1)
		for _, s := range all {
			if s != from {
				out = append(out, s)
			}
		}
		return out
	case ActorPublic:
		return publicTransitions[from]
	}
	return nil
}

func CanTransition(from, to models.ClientTaskStatus, actor ActorKind) bool {
	for _, s := range AllowedTransitions(from, actor) {
		if s == to {
			return true
		}
	}
	return false
}

// ReasonRequired reports whether a public action into the given status must
// carry a non-empty reason.
func ReasonRequired(to models.ClientTaskStatus) bool {
	return to == models.StatusEditRequested || to == models.StatusRejected
}

// PublicEventFor maps a public-actor target status to the history event tag
// recorded for it.
func PublicEventFor(to models.ClientTaskStatus) (models.HistoryEventType, bool) {
	switch to {
	case models.StatusApproved:
		return models.EventApprovedViaPublicLink, true
	case models.StatusEditRequested:
		return models.EventEditRequestedViaPublicLink, true
	case models.StatusRejected:
		return models.EventRejectedViaPublicLink, true
	}
	return "", false
}

// ValidPeriod reports whether period is a "YYYY-MM" reporting bucket.
func ValidPeriod(period string) bool {
	if len(period) != 7 {
		return false
	}
	_, err := time.Parse("2006-01", period)
	return err == nil
}
