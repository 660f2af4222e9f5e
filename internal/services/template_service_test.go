package services

import (
	"testing"

	"clientboard/internal/models"
	"clientboard/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTemplate_GlobalAndScoped(t *testing.T) {
	env := newTestEnv(t)

	global, err := env.templates.CreateTemplate(env.operator.ID, TemplateInput{Title: "Monthly report"})
	require.NoError(t, err)
	assert.Nil(t, global.ClientID, "no client reference means the template applies to every client")
	assert.True(t, global.IsActive)

	scoped, err := env.templates.CreateTemplate(env.operator.ID, TemplateInput{
		ClientID: &env.client.ID,
		Title:    "Acme newsletter",
	})
	require.NoError(t, err)
	require.NotNil(t, scoped.ClientID)
	assert.Equal(t, env.client.ID, *scoped.ClientID)

	_, err = env.templates.CreateTemplate(env.operator.ID, TemplateInput{Title: "  "})
	assert.Equal(t, workflow.KindValidation, workflow.KindOf(err))
}

func TestCreateTemplate_ForeignClientRejected(t *testing.T) {
	env := newTestEnv(t)
	foreignClient := models.Client{UserID: env.other.ID, Name: "Globex"}
	require.NoError(t, env.db.Create(&foreignClient).Error)

	_, err := env.templates.CreateTemplate(env.operator.ID, TemplateInput{
		ClientID: &foreignClient.ID,
		Title:    "Sneaky",
	})
	assert.Equal(t, workflow.KindNotFound, workflow.KindOf(err))
}

func TestUpdateTemplate_ZeroClientIDClearsBinding(t *testing.T) {
	env := newTestEnv(t)
	scoped, err := env.templates.CreateTemplate(env.operator.ID, TemplateInput{
		ClientID: &env.client.ID,
		Title:    "Acme newsletter",
	})
	require.NoError(t, err)

	updated, err := env.templates.UpdateTemplate(env.operator.ID, scoped.ID, TemplateUpdate{
		ClientID: ptr(uint(0)),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ClientID)
}

func TestUpdateTemplate_DeactivationRemovesFromGeneration(t *testing.T) {
	env := newTestEnv(t)
	tpl, err := env.templates.CreateTemplate(env.operator.ID, TemplateInput{Title: "Monthly report"})
	require.NoError(t, err)

	_, err = env.templates.UpdateTemplate(env.operator.ID, tpl.ID, TemplateUpdate{IsActive: ptr(false)})
	require.NoError(t, err)

	tasks, err := env.tasks.GenerateFromTemplates(env.operator.ID, env.client.ID, "2026-04")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTemplates_OwnershipScoped(t *testing.T) {
	env := newTestEnv(t)
	tpl, err := env.templates.CreateTemplate(env.operator.ID, TemplateInput{Title: "Monthly report"})
	require.NoError(t, err)

	_, err = env.templates.UpdateTemplate(env.other.ID, tpl.ID, TemplateUpdate{Title: ptr("Hijacked")})
	assert.Equal(t, workflow.KindNotFound, workflow.KindOf(err))

	err = env.templates.DeleteTemplate(env.other.ID, tpl.ID)
	assert.Equal(t, workflow.KindNotFound, workflow.KindOf(err))

	mine, err := env.templates.ListTemplates(env.operator.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := env.templates.ListTemplates(env.other.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestDeleteTemplate(t *testing.T) {
	env := newTestEnv(t)
	tpl, err := env.templates.CreateTemplate(env.operator.ID, TemplateInput{Title: "Monthly report"})
	require.NoError(t, err)

	require.NoError(t, env.templates.DeleteTemplate(env.operator.ID, tpl.ID))

	mine, err := env.templates.ListTemplates(env.operator.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
