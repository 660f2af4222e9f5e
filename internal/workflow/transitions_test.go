package workflow

import (
	"testing"

	"clientboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedTransitions_OperatorMayMoveAnywhereExceptInPlace(t *testing.T) {
	for _, from := range models.AllStatuses() {
		targets := AllowedTransitions(from, ActorOperator)
		require.Len(t, targets, len(models.AllStatuses())-1, "from %s", from)
		assert.NotContains(t, targets, from, "from %s", from)
	}
}

func TestAllowedTransitions_PublicOnlyDecidesFromUnderReview(t *testing.T) {
	targets := AllowedTransitions(models.StatusUnderReview, ActorPublic)
	assert.ElementsMatch(t, []models.ClientTaskStatus{
		models.StatusApproved,
		models.StatusEditRequested,
		models.StatusRejected,
	}, targets)

	for _, from := range models.AllStatuses() {
		if from == models.StatusUnderReview {
			continue
		}
		assert.Empty(t, AllowedTransitions(from, ActorPublic), "from %s", from)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  models.ClientTaskStatus
		to    models.ClientTaskStatus
		actor ActorKind
		want  bool
	}{
		{"operator corrects posted back to in_progress", models.StatusPosted, models.StatusInProgress, ActorOperator, true},
		{"operator cannot re-enter the same state", models.StatusApproved, models.StatusApproved, ActorOperator, false},
		{"public approves from review", models.StatusUnderReview, models.StatusApproved, ActorPublic, true},
		{"public requests edit from review", models.StatusUnderReview, models.StatusEditRequested, ActorPublic, true},
		{"public rejects from review", models.StatusUnderReview, models.StatusRejected, ActorPublic, true},
		{"public cannot post", models.StatusUnderReview, models.StatusPosted, ActorPublic, false},
		{"public cannot approve twice", models.StatusApproved, models.StatusApproved, ActorPublic, false},
		{"public cannot decide outside review", models.StatusInProgress, models.StatusApproved, ActorPublic, false},
		{"unknown actor gets nothing", models.StatusUnderReview, models.StatusApproved, ActorKind("bot"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to, tt.actor))
		})
	}
}

func TestReasonRequired(t *testing.T) {
	assert.True(t, ReasonRequired(models.StatusEditRequested))
	assert.True(t, ReasonRequired(models.StatusRejected))
	assert.False(t, ReasonRequired(models.StatusApproved))
	assert.False(t, ReasonRequired(models.StatusPosted))
}

func TestPublicEventFor(t *testing.T) {
	event, ok := PublicEventFor(models.StatusApproved)
	require.True(t, ok)
	assert.Equal(t, models.EventApprovedViaPublicLink, event)

	event, ok = PublicEventFor(models.StatusEditRequested)
	require.True(t, ok)
	assert.Equal(t, models.EventEditRequestedViaPublicLink, event)

	event, ok = PublicEventFor(models.StatusRejected)
	require.True(t, ok)
	assert.Equal(t, models.EventRejectedViaPublicLink, event)

	_, ok = PublicEventFor(models.StatusPosted)
	assert.False(t, ok)
	_, ok = PublicEventFor(models.ClientTaskStatus("garbage"))
	assert.False(t, ok)
}

func TestValidPeriod(t *testing.T) {
	assert.True(t, ValidPeriod("2024-06"))
	assert.True(t, ValidPeriod("1999-12"))
	assert.False(t, ValidPeriod("2024-13"))
	assert.False(t, ValidPeriod("2024-00"))
	assert.False(t, ValidPeriod("2024-6"))
	assert.False(t, ValidPeriod("202406"))
	assert.False(t, ValidPeriod("2024-06-01"))
	assert.False(t, ValidPeriod(""))
}
