package file

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homespark/campaigner/pkg/models"
	"github.com/homespark/campaigner/pkg/persistence"
)

func testAutomation(id, name, owner string, status models.AutomationStatus, createdAt time.Time) *models.Automation {
	return &models.Automation{
		ID:     id,
		Name:   name,
		Owner:  owner,
		Status: status,
		Trigger: models.Trigger{
			Kind: models.TriggerPropertyUploaded,
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestAutomationRepository_SaveAndGet(t *testing.T) {
	store := NewPersistence(t.TempDir())
	repo := store.AutomationRepository()

	automation := testAutomation("auto-1", "Welcome new listing", "owner-1",
		models.AutomationStatusDraft, time.Now().UTC())

	require.NoError(t, repo.Save(t.Context(), automation))

	loaded, err := repo.GetByID(t.Context(), "auto-1")
	require.NoError(t, err)
	assert.Equal(t, "Welcome new listing", loaded.Name)
	assert.Equal(t, models.TriggerPropertyUploaded, loaded.Trigger.Kind)
}

func TestAutomationRepository_GetMissing(t *testing.T) {
	store := NewPersistence(t.TempDir())

	_, err := store.AutomationRepository().GetByID(t.Context(), "nope")
	require.Error(t, err)
	assert.True(t, persistence.IsAutomationNotFound(err))
}

func TestAutomationRepository_Delete(t *testing.T) {
	store := NewPersistence(t.TempDir())
	repo := store.AutomationRepository()

	automation := testAutomation("auto-1", "Welcome new listing", "owner-1",
		models.AutomationStatusDraft, time.Now().UTC())
	require.NoError(t, repo.Save(t.Context(), automation))

	require.NoError(t, repo.Delete(t.Context(), "auto-1"))

	_, err := repo.GetByID(t.Context(), "auto-1")
	assert.True(t, persistence.IsAutomationNotFound(err))
}

func TestAutomationRepository_RejectsPathTraversal(t *testing.T) {
	store := NewPersistence(t.TempDir())

	_, err := store.AutomationRepository().GetByID(t.Context(), "../escape")
	require.Error(t, err)
}

func TestAutomationRepository_ListFiltersAndSorts(t *testing.T) {
	store := NewPersistence(t.TempDir())
	repo := store.AutomationRepository()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fixtures := []*models.Automation{
		testAutomation("auto-1", "Alpha", "owner-1", models.AutomationStatusActive, base),
		testAutomation("auto-2", "Bravo", "owner-1", models.AutomationStatusDraft, base.Add(time.Hour)),
		testAutomation("auto-3", "Charlie", "owner-2", models.AutomationStatusActive, base.Add(2*time.Hour)),
	}
	for _, automation := range fixtures {
		require.NoError(t, repo.Save(t.Context(), automation))
	}

	active := models.AutomationStatusActive
	result, err := repo.ListAutomations(t.Context(), persistence.ListAutomationsOptions{
		Status: &active,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.TotalCount)

	result, err = repo.ListAutomations(t.Context(), persistence.ListAutomationsOptions{
		OwnerID: "owner-1",
		SortBy:  "name",
	})
	require.NoError(t, err)
	require.Len(t, result.Automations, 2)
	// Default order is descending.
	assert.Equal(t, "Bravo", result.Automations[0].Name)
	assert.Equal(t, "Alpha", result.Automations[1].Name)
}

func TestAutomationRepository_ListPagination(t *testing.T) {
	store := NewPersistence(t.TempDir())
	repo := store.AutomationRepository()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"auto-1", "auto-2", "auto-3"} {
		automation := testAutomation(id, "Automation "+id, "owner-1",
			models.AutomationStatusDraft, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, repo.Save(t.Context(), automation))
	}

	result, err := repo.ListAutomations(t.Context(), persistence.ListAutomationsOptions{
		Limit:     2,
		SortBy:    "created_at",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Len(t, result.Automations, 2)
	assert.True(t, result.HasNextPage)
	assert.Equal(t, "auto-1", result.Automations[0].ID)

	result, err = repo.ListAutomations(t.Context(), persistence.ListAutomationsOptions{
		Limit:     2,
		Offset:    2,
		SortBy:    "created_at",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Len(t, result.Automations, 1)
	assert.False(t, result.HasNextPage)
	assert.Equal(t, "auto-3", result.Automations[0].ID)
}

func TestAutomationRepository_ListRejectsUnknownSortField(t *testing.T) {
	store := NewPersistence(t.TempDir())

	_, err := store.AutomationRepository().ListAutomations(t.Context(), persistence.ListAutomationsOptions{
		SortBy: "owner; DROP TABLE automations",
	})
	require.Error(t, err)
	assert.True(t, persistence.IsInvalidSortField(err))
}

func TestExecutionRepository_SaveGetAndList(t *testing.T) {
	store := NewPersistence(t.TempDir())
	repo := store.ExecutionRepository()

	first := models.NewExecution("exec-1", "auto-1", "contact-1")
	first.StartedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	second := models.NewExecution("exec-2", "auto-1", "contact-2")
	second.StartedAt = time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	other := models.NewExecution("exec-3", "auto-2", "contact-3")

	require.NoError(t, repo.Save(t.Context(), first))
	require.NoError(t, repo.Save(t.Context(), second))
	require.NoError(t, repo.Save(t.Context(), other))

	loaded, err := repo.GetByID(t.Context(), "exec-1")
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusRunning, loaded.Status)

	executions, err := repo.ListByAutomation(t.Context(), "auto-1")
	require.NoError(t, err)
	require.Len(t, executions, 2)
	// Newest first.
	assert.Equal(t, "exec-2", executions[0].ID)
	assert.Equal(t, "exec-1", executions[1].ID)
}

func TestExecutionRepository_GetMissing(t *testing.T) {
	store := NewPersistence(t.TempDir())

	_, err := store.ExecutionRepository().GetByID(t.Context(), "nope")
	require.Error(t, err)
	assert.True(t, persistence.IsExecutionNotFound(err))
}

func TestPersistence_HealthCheck(t *testing.T) {
	dir := t.TempDir()
	store := NewPersistence(dir)

	assert.NoError(t, store.HealthCheck(t.Context()))

	missing := NewPersistence(dir + "/does-not-exist")
	assert.Error(t, missing.HealthCheck(t.Context()))
}
