package workflow

import (
	"time"

	"clientboard/internal/models"
)

// DeactivateIfExpired clears the active flag on a link whose expiry has
// passed and reports whether the flag changed and the row needs persisting.
// Idempotent: an already inactive link is left untouched. Read paths call
// this so expiry is recorded lazily without hiding the mutation inside the
// read itself.
func DeactivateIfExpired(link *models.PublicApprovalLink, now time.Time) bool {
	if link.IsActive && now.After(link.ExpiresAt) {
		link.IsActive = false
		return true
	}
	return false
}
