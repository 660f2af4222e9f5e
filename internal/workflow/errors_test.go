package workflow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindExpired, KindOf(Expired("too late")))
	assert.Equal(t, KindInvalidTransition, KindOf(InvalidTransition("no")))
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorized("who are you")))
	assert.Equal(t, KindUpstream, KindOf(Upstream("store failed", errors.New("boom"))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOf_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("missing"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindExpired))
}

func TestMessage_HidesUpstreamCause(t *testing.T) {
	err := Upstream("failed to save task", errors.New("pq: connection reset"))
	assert.Equal(t, "failed to save task", Message(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestMessage_PlainError(t *testing.T) {
	assert.Equal(t, "plain", Message(errors.New("plain")))
}
