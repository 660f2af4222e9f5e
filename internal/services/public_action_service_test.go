package services

import (
	"testing"

	"clientboard/internal/models"
	"clientboard/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reviewTask creates an exposed task and moves it into review, the state a
// client decides from.
func reviewTask(t *testing.T, env *testEnv, title, period string) *models.ClientTask {
	t.Helper()
	task := env.createTask(t, title, period, true)
	_, err := env.tasks.UpdateTask(env.operator.ID, task.ID, TaskUpdate{
		Status: ptr(models.StatusUnderReview),
	})
	require.NoError(t, err)
	return task
}

func TestApplyPublicAction_ApproveCompletesTask(t *testing.T) {
	env := newTestEnv(t)
	task := reviewTask(t, env, "Monthly recap", "2026-01")
	link := env.issueLink(t, "2026-01")

	updated, err := env.public.ApplyPublicAction(link.UniqueID, task.ID, models.StatusApproved, "")
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, updated.Status)
	assert.True(t, updated.IsCompleted)
	require.NotNil(t, updated.CompletedAt)
	require.NotNil(t, updated.ApprovalLinkID)
	assert.Equal(t, link.ID, *updated.ApprovalLinkID)

	entries := env.historyFor(t, task.ID)
	require.Len(t, entries, 3)
	last := entries[2]
	assert.Equal(t, models.EventApprovedViaPublicLink, last.EventType)
	assert.Nil(t, last.ActorID, "public actions are recorded without an actor")
	assert.Equal(t, models.StatusUnderReview, last.Details.OldStatus)
	assert.Equal(t, models.StatusApproved, last.Details.NewStatus)
}

func TestApplyPublicAction_EditRequestCarriesReason(t *testing.T) {
	env := newTestEnv(t)
	task := reviewTask(t, env, "Monthly recap", "2026-01")
	link := env.issueLink(t, "2026-01")

	updated, err := env.public.ApplyPublicAction(link.UniqueID, task.ID, models.StatusEditRequested, "  swap the cover image  ")
	require.NoError(t, err)

	assert.Equal(t, models.StatusEditRequested, updated.Status)
	assert.Equal(t, "swap the cover image", updated.EditReason)
	assert.False(t, updated.IsCompleted)

	entries := env.historyFor(t, task.ID)
	require.Len(t, entries, 3)
	assert.Equal(t, models.EventEditRequestedViaPublicLink, entries[2].EventType)
	assert.Equal(t, "swap the cover image", entries[2].Details.EditReason)
}

func TestApplyPublicAction_RejectCarriesReason(t *testing.T) {
	env := newTestEnv(t)
	task := reviewTask(t, env, "Monthly recap", "2026-01")
	link := env.issueLink(t, "2026-01")

	updated, err := env.public.ApplyPublicAction(link.UniqueID, task.ID, models.StatusRejected, "off brand")
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, updated.Status)
	assert.Equal(t, "off brand", updated.EditReason)

	entries := env.historyFor(t, task.ID)
	require.Len(t, entries, 3)
	assert.Equal(t, models.EventRejectedViaPublicLink, entries[2].EventType)
}

func TestApplyPublicAction_MissingReasonLeavesTaskUntouched(t *testing.T) {
	env := newTestEnv(t)
	task := reviewTask(t, env, "Monthly recap", "2026-01")
	link := env.issueLink(t, "2026-01")

	_, err := env.public.ApplyPublicAction(link.UniqueID, task.ID, models.StatusEditRequested, "   ")
	assert.Equal(t, workflow.KindValidation, workflow.KindOf(err))

	reloaded := env.reloadTask(t, task.ID)
	assert.Equal(t, models.StatusUnderReview, reloaded.Status)
	assert.Empty(t, reloaded.EditReason)
	assert.Len(t, env.historyFor(t, task.ID), 2, "a refused action writes no audit entry")
}

func TestApplyPublicAction_SecondDecisionIsRefused(t *testing.T) {
	env := newTestEnv(t)
	task := reviewTask(t, env, "Monthly recap", "2026-01")
	link := env.issueLink(t, "2026-01")

	_, err := env.public.ApplyPublicAction(link.UniqueID, task.ID, models.StatusApproved, "")
	require.NoError(t, err)

	_, err = env.public.ApplyPublicAction(link.UniqueID, task.ID, models.StatusApproved, "")
	assert.Equal(t, workflow.KindInvalidTransition, workflow.KindOf(err))
	assert.Len(t, env.historyFor(t, task.ID), 3, "the losing retry must not append history")
}

func TestApplyPublicAction_TransitionRefusals(t *testing.T) {
	env := newTestEnv(t)
	inReview := reviewTask(t, env, "In review", "2026-01")
	drafting := env.createTask(t, "Still drafting", "2026-01", true)
	link := env.issueLink(t, "2026-01")

	tests := []struct {
		name      string
		taskID    uint
		newStatus models.ClientTaskStatus
	}{
		{"cannot post", inReview.ID, models.StatusPosted},
		{"cannot move back to in_progress", inReview.ID, models.StatusInProgress},
		{"unknown status", inReview.ID, "done"},
		{"task not in review", drafting.ID, models.StatusApproved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.public.ApplyPublicAction(link.UniqueID, tt.taskID, tt.newStatus, "because")
			assert.Equal(t, workflow.KindInvalidTransition, workflow.KindOf(err))
		})
	}
}

func TestApplyPublicAction_LinkGates(t *testing.T) {
	env := newTestEnv(t)
	task := reviewTask(t, env, "Monthly recap", "2026-01")

	_, err := env.public.ApplyPublicAction("no-such-token", task.ID, models.StatusApproved, "")
	assert.Equal(t, workflow.KindNotFound, workflow.KindOf(err))

	expired := env.insertExpiredLink(t, "stale-token", "2026-01")
	_, err = env.public.ApplyPublicAction(expired.UniqueID, task.ID, models.StatusApproved, "")
	assert.Equal(t, workflow.KindExpired, workflow.KindOf(err))
	assert.False(t, env.reloadLink(t, expired.ID).IsActive,
		"the failed action records the expiry on the link row")

	revoked := env.issueLink(t, "2026-01")
	require.NoError(t, env.links.RevokeLink(env.operator.ID, revoked.ID))
	_, err = env.public.ApplyPublicAction(revoked.UniqueID, task.ID, models.StatusApproved, "")
	assert.Equal(t, workflow.KindExpired, workflow.KindOf(err))

	assert.Equal(t, models.StatusUnderReview, env.reloadTask(t, task.ID).Status)
}

func TestApplyPublicAction_TasksOutsideTheLinkLookAbsent(t *testing.T) {
	env := newTestEnv(t)
	link := env.issueLink(t, "2026-01")

	otherClient := models.Client{UserID: env.operator.ID, Name: "Globex"}
	require.NoError(t, env.db.Create(&otherClient).Error)
	foreign, err := env.tasks.CreateTask(env.operator.ID, TaskCreate{
		ClientID:              otherClient.ID,
		Title:                 "Globex recap",
		Status:                models.StatusUnderReview,
		PublicApprovalEnabled: true,
		MonthYearReference:    "2026-01",
	})
	require.NoError(t, err)

	otherPeriod := reviewTask(t, env, "February recap", "2026-02")
	hidden := env.createTask(t, "Internal only", "2026-01", false)
	_, err = env.tasks.UpdateTask(env.operator.ID, hidden.ID, TaskUpdate{Status: ptr(models.StatusUnderReview)})
	require.NoError(t, err)

	tests := []struct {
		name   string
		taskID uint
	}{
		{"another client's task", foreign.ID},
		{"another period's task", otherPeriod.ID},
		{"task not exposed to the public", hidden.ID},
		{"id that does not exist", 9999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.public.ApplyPublicAction(link.UniqueID, tt.taskID, models.StatusApproved, "")
			assert.Equal(t, workflow.KindNotFound, workflow.KindOf(err),
				"a real id outside the link must be indistinguishable from a missing one")
		})
	}

	assert.Equal(t, models.StatusUnderReview, env.reloadTask(t, foreign.ID).Status)
}
