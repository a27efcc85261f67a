package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// ==================== SchedulerStore Tests ====================

func TestSchedulerStore_SaveAndGetTask(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	schedulerStore := store.SchedulerStore()

	now := time.Now().UTC().Truncate(time.Second)
	task := &domain.ScheduledTask{
		ID:          domain.TaskIDBinCheck,
		Name:        "Bin Level Check",
		Interval:    5 * time.Minute,
		LastRun:     now.Add(-3 * time.Minute),
		NextRun:     now.Add(2 * time.Minute),
		LastSuccess: now.Add(-3 * time.Minute),
		Enabled:     true,
	}
	require.NoError(t, schedulerStore.SaveTask(ctx, task))

	retrieved, err := schedulerStore.GetTask(ctx, domain.TaskIDBinCheck)
	require.NoError(t, err)
	require.NotNil(t, retrieved)

	assert.Equal(t, task.ID, retrieved.ID)
	assert.Equal(t, task.Name, retrieved.Name)
	assert.Equal(t, task.Interval, retrieved.Interval)
	assert.True(t, retrieved.Enabled)
	assert.WithinDuration(t, task.LastRun, retrieved.LastRun, time.Second)
	assert.WithinDuration(t, task.NextRun, retrieved.NextRun, time.Second)
	assert.WithinDuration(t, task.LastSuccess, retrieved.LastSuccess, time.Second)
}

func TestSchedulerStore_GetTask_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	task, err := store.SchedulerStore().GetTask(context.Background(), "non-existent")
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestSchedulerStore_SaveTask_Update(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	schedulerStore := store.SchedulerStore()

	task := &domain.ScheduledTask{
		ID:       domain.TaskIDBinCheck,
		Name:     "Bin Level Check",
		Interval: 5 * time.Minute,
		Enabled:  true,
	}
	require.NoError(t, schedulerStore.SaveTask(ctx, task))

	task.Interval = 10 * time.Minute
	task.LastError = "feed unavailable"
	task.Enabled = false
	require.NoError(t, schedulerStore.SaveTask(ctx, task))

	retrieved, err := schedulerStore.GetTask(ctx, domain.TaskIDBinCheck)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, retrieved.Interval)
	assert.Equal(t, "feed unavailable", retrieved.LastError)
	assert.False(t, retrieved.Enabled)
}

func TestSchedulerStore_SaveTask_NilTask(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.SchedulerStore().SaveTask(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSchedulerStore_ListTasks(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	schedulerStore := store.SchedulerStore()

	for _, task := range []*domain.ScheduledTask{
		{ID: "task-b", Name: "B", Interval: time.Hour, Enabled: true},
		{ID: "task-a", Name: "A", Interval: time.Minute, Enabled: false},
	} {
		require.NoError(t, schedulerStore.SaveTask(ctx, task))
	}

	tasks, err := schedulerStore.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "task-a", tasks[0].ID)
	assert.Equal(t, "task-b", tasks[1].ID)
}

func TestSchedulerStore_ListTasks_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	tasks, err := store.SchedulerStore().ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestSchedulerStore_DeleteTask(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	schedulerStore := store.SchedulerStore()

	require.NoError(t, schedulerStore.SaveTask(ctx, &domain.ScheduledTask{
		ID: "to-delete", Name: "Delete Me", Interval: time.Hour, Enabled: true,
	}))
	require.NoError(t, schedulerStore.RecordResult(ctx, &domain.TaskResult{
		TaskID: "to-delete", StartedAt: time.Now(), EndedAt: time.Now(), Success: true,
	}))

	require.NoError(t, schedulerStore.DeleteTask(ctx, "to-delete"))

	retrieved, err := schedulerStore.GetTask(ctx, "to-delete")
	require.NoError(t, err)
	assert.Nil(t, retrieved)

	history, err := schedulerStore.GetTaskHistory(ctx, "to-delete", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSchedulerStore_RecordResult(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	schedulerStore := store.SchedulerStore()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, schedulerStore.RecordResult(ctx, &domain.TaskResult{
		TaskID:         domain.TaskIDBinCheck,
		StartedAt:      now.Add(-5 * time.Minute),
		EndedAt:        now.Add(-5*time.Minute + time.Second),
		Success:        true,
		ItemsProcessed: 1,
	}))
	require.NoError(t, schedulerStore.RecordResult(ctx, &domain.TaskResult{
		TaskID:    domain.TaskIDBinCheck,
		StartedAt: now,
		EndedAt:   now.Add(time.Second),
		Success:   false,
		Error:     "connection timeout",
	}))

	history, err := schedulerStore.GetTaskHistory(ctx, domain.TaskIDBinCheck, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.False(t, history[0].Success)
	assert.Equal(t, "connection timeout", history[0].Error)
	assert.True(t, history[1].Success)
	assert.Equal(t, 1, history[1].ItemsProcessed)
	assert.True(t, now.Equal(history[0].StartedAt))
}

func TestSchedulerStore_RecordResult_NilResult(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.SchedulerStore().RecordResult(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSchedulerStore_GetTaskHistory_Limit(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	schedulerStore := store.SchedulerStore()

	recordRuns(t, schedulerStore.RecordResult, 5)

	history, err := schedulerStore.GetTaskHistory(ctx, domain.TaskIDBinCheck, 3)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestSchedulerStore_PruneHistory(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	schedulerStore := store.SchedulerStore()

	recordRuns(t, schedulerStore.RecordResult, 10)

	require.NoError(t, schedulerStore.PruneHistory(ctx, 3))

	history, err := schedulerStore.GetTaskHistory(ctx, domain.TaskIDBinCheck, 100)
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, 10, history[0].ItemsProcessed)
	assert.Equal(t, 9, history[1].ItemsProcessed)
	assert.Equal(t, 8, history[2].ItemsProcessed)
}

func TestSchedulerStore_TaskWithZeroTimes(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	schedulerStore := store.SchedulerStore()

	require.NoError(t, schedulerStore.SaveTask(ctx, &domain.ScheduledTask{
		ID: "fresh", Name: "Fresh Task", Interval: time.Hour, Enabled: true,
	}))

	retrieved, err := schedulerStore.GetTask(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, retrieved.LastRun.IsZero())
	assert.True(t, retrieved.NextRun.IsZero())
	assert.True(t, retrieved.LastSuccess.IsZero())
}

// recordRuns records n bin-check results one minute apart with
// ItemsProcessed numbered 1..n.
func recordRuns(t *testing.T, record func(context.Context, *domain.TaskResult) error, n int) {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < n; i++ {
		require.NoError(t, record(context.Background(), &domain.TaskResult{
			TaskID:         domain.TaskIDBinCheck,
			StartedAt:      now.Add(time.Duration(i) * time.Minute),
			EndedAt:        now.Add(time.Duration(i)*time.Minute + 30*time.Second),
			Success:        true,
			ItemsProcessed: i + 1,
		}))
	}
}

// ==================== Helper Function Tests ====================

func TestFormatNullableTime(t *testing.T) {
	assert.Nil(t, formatNullableTime(time.Time{}))

	ts := time.Date(2024, 10, 29, 10, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	assert.Equal(t, "2024-10-29T04:30:00.000000000Z", formatNullableTime(ts))
}

func TestParseNullableTime(t *testing.T) {
	assert.True(t, parseNullableTime(sql.NullString{}).IsZero())
	assert.True(t, parseNullableTime(sql.NullString{String: "garbage", Valid: true}).IsZero())

	parsed := parseNullableTime(sql.NullString{String: "2024-10-29T04:30:00.000000000Z", Valid: true})
	assert.True(t, parsed.Equal(time.Date(2024, 10, 29, 4, 30, 0, 0, time.UTC)))
}

func TestBoolToInt(t *testing.T) {
	assert.Equal(t, 1, boolToInt(true))
	assert.Equal(t, 0, boolToInt(false))
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Equal(t, "hello", nullString("hello"))
}
