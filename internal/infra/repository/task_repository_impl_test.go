package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindermate/notification-scheduler/internal/domain"
	"github.com/mindermate/notification-scheduler/internal/infra/repository"
	"github.com/mindermate/notification-scheduler/internal/testutil"
)

func createTask(t *testing.T, userID domain.UserID, date, reminderTime string, completed bool) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(userID, domain.TypeSimple, "title", "text", date, "", reminderTime)
	require.NoError(t, err)

	if completed {
		task.SetCompleted(true)
	}

	return task
}

func TestTaskRepositorySaveAndFind(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDB(t)
	defer testDB.TeardownTestDB(t)

	repo := repository.NewTaskRepository(testDB.DB)
	ctx := context.Background()

	testDB.CleanTables(t)

	userID := createValidUserID(t)
	task := createTask(t, userID, "2024-03-15", "09:30", false)

	require.NoError(t, repo.Save(ctx, task))

	found, err := repo.FindByID(ctx, task.ID())
	require.NoError(t, err)
	assert.Equal(t, task.ID().String(), found.ID().String())
	assert.Equal(t, "09:30", found.ReminderTime())
}

func TestTaskRepositoryFindByIDNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDB(t)
	defer testDB.TeardownTestDB(t)

	repo := repository.NewTaskRepository(testDB.DB)

	_, err := repo.FindByID(context.Background(), domain.NewTaskID())
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskRepositoryFindRemindersOnDate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDB(t)
	defer testDB.TeardownTestDB(t)

	repo := repository.NewTaskRepository(testDB.DB)
	ctx := context.Background()

	testDB.CleanTables(t)

	userID := createValidUserID(t)

	candidate := createTask(t, userID, "2024-03-15", "09:30", false)
	noReminder := createTask(t, userID, "2024-03-15", "", false)
	completed := createTask(t, userID, "2024-03-15", "10:00", true)
	otherDate := createTask(t, userID, "2024-03-16", "09:30", false)

	for _, task := range []*domain.Task{candidate, noReminder, completed, otherDate} {
		require.NoError(t, repo.Save(ctx, task))
	}

	found, err := repo.FindRemindersOnDate(ctx, "2024-03-15")
	require.NoError(t, err)

	// Only the uncompleted task with a reminder on the date qualifies.
	require.Len(t, found, 1)
	assert.Equal(t, candidate.ID().String(), found[0].ID().String())
}

func TestTaskRepositoryFindByUserAndDate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDB(t)
	defer testDB.TeardownTestDB(t)

	repo := repository.NewTaskRepository(testDB.DB)
	ctx := context.Background()

	testDB.CleanTables(t)

	owner := createValidUserID(t)
	other := createValidUserID(t)

	mine := createTask(t, owner, "2024-03-15", "", false)
	theirs := createTask(t, other, "2024-03-15", "", false)

	require.NoError(t, repo.Save(ctx, mine))
	require.NoError(t, repo.Save(ctx, theirs))

	found, err := repo.FindByUserAndDate(ctx, owner, "2024-03-15")
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, mine.ID().String(), found[0].ID().String())
}

func TestTaskRepositoryUpdate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDB(t)
	defer testDB.TeardownTestDB(t)

	repo := repository.NewTaskRepository(testDB.DB)
	ctx := context.Background()

	testDB.CleanTables(t)

	userID := createValidUserID(t)
	task := createTask(t, userID, "2024-03-15", "09:30", false)
	require.NoError(t, repo.Save(ctx, task))

	task.SetCompleted(true)
	require.NoError(t, repo.Update(ctx, task))

	found, err := repo.FindByID(ctx, task.ID())
	require.NoError(t, err)
	assert.True(t, found.IsCompleted())

	// And back to false, which Updates must not silently skip.
	task.SetCompleted(false)
	require.NoError(t, repo.Update(ctx, task))

	found, err = repo.FindByID(ctx, task.ID())
	require.NoError(t, err)
	assert.False(t, found.IsCompleted())
}

func TestTaskRepositoryUpdateNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDB(t)
	defer testDB.TeardownTestDB(t)

	repo := repository.NewTaskRepository(testDB.DB)

	task := createTask(t, createValidUserID(t), "2024-03-15", "", false)

	err := repo.Update(context.Background(), task)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskRepositoryDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDB(t)
	defer testDB.TeardownTestDB(t)

	repo := repository.NewTaskRepository(testDB.DB)
	ctx := context.Background()

	testDB.CleanTables(t)

	userID := createValidUserID(t)
	task := createTask(t, userID, "2024-03-15", "", false)
	require.NoError(t, repo.Save(ctx, task))

	require.NoError(t, repo.Delete(ctx, task.ID()))

	_, err := repo.FindByID(ctx, task.ID())
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	err = repo.Delete(ctx, task.ID())
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
