// Package handlers exposes the HTTP surface: the authenticated operator API
// under /api and the anonymous approval endpoints. Handlers bind JSON, call
// one service method and translate workflow failures to HTTP statuses.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"clientboard/internal/workflow"

	"github.com/gin-gonic/gin"
)

// statusFor maps a workflow failure kind to the HTTP status the API returns.
func statusFor(kind workflow.Kind) int {
	switch kind {
	case workflow.KindNotFound:
		return http.StatusNotFound
	case workflow.KindExpired:
		return http.StatusGone
	case workflow.KindInvalidTransition:
		return http.StatusConflict
	case workflow.KindValidation:
		return http.StatusBadRequest
	case workflow.KindUnauthorized:
		return http.StatusUnauthorized
	case workflow.KindUpstream:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes the user-facing message for err. The wrapped cause of
// an upstream failure is logged, never sent to the caller.
func respondError(c *gin.Context, err error) {
	status := statusFor(workflow.KindOf(err))
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": workflow.Message(err)})
}

// currentUserID returns the operator id the auth middleware stored.
func currentUserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}

// paramID parses a positive numeric path parameter, responding 400 itself
// when the value is unusable.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
