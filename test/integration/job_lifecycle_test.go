package integration

import (
	"context"
	"testing"

	"github.com/realchief/RenderShotPanel/internal/config"
	"github.com/realchief/RenderShotPanel/internal/dto"
	"github.com/realchief/RenderShotPanel/internal/job"
	"github.com/realchief/RenderShotPanel/internal/mocks"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/realchief/RenderShotPanel/internal/storage/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, credit float64) *models.User {
	t.Helper()

	user := &models.User{
		Username:              "artist",
		Email:                 "artist@example.com",
		APIToken:              "tok-integration",
		Credit:                credit,
		RateMultiplier:        1,
		ReceiveJobEmailNotifs: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createJobWithStatus(t *testing.T, db *gorm.DB, repo *postgres.JobRepository, user *models.User, name, status string) *models.Job {
	t.Helper()

	ctx := context.Background()

	st, err := repo.StatusByName(ctx, status)
	require.NoError(t, err)

	plan, err := repo.PlanByName(ctx, "animation_slow")
	require.NoError(t, err)

	j := &models.Job{
		UserID:       user.ID,
		Name:         name,
		FrameList:    []string{"1-10"},
		RenderPlanID: plan.ID,
		StatusID:     st.ID,
		Data:         map[string]any{},
	}
	require.NoError(t, repo.Create(ctx, j))

	loaded, err := repo.GetByName(ctx, name)
	require.NoError(t, err)
	return loaded
}

// TestCallbackRoundtrip drives a rendering job through a farm callback
// against real postgres: progress, telemetry upsert, cost rollup and
// the settle into completed, with the balance reflecting the spend.
func TestCallbackRoundtrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	jobRepo := postgres.NewJobRepository(db)
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	notifier := &mocks.NotifierMock{}
	svc := job.NewJobService(jobRepo, userRepo, sessionRepo, &mocks.StorageMock{}, notifier)

	user := createUser(t, db, 100)
	j := createJobWithStatus(t, db, jobRepo, user, "scene_roundtrip", config.StatusRendering)

	tasksCount := 2
	_, err := svc.ApplyCallback(ctx, j.Name, &dto.BackendCallback{
		Status:     config.StatusRendering,
		Progress:   50,
		DeadlineID: "deadline-77",
		TasksCount: &tasksCount,
		Tasks: map[string]dto.TaskReport{
			"0": {RenderTime: 10, RenderTimeString: "10m", FrameList: "1-5"},
			"1": {RenderTime: 6, RenderTimeString: "6m", FrameList: "6-10"},
		},
	})
	require.NoError(t, err)

	mid, err := jobRepo.GetByName(ctx, j.Name)
	require.NoError(t, err)
	assert.Equal(t, config.StatusRendering, mid.Status.Name)
	assert.Equal(t, 50.0, mid.Progress)
	assert.Equal(t, "deadline-77", mid.DeadlineID)
	assert.InDelta(t, 0.8, mid.Cost, 1e-9) // 16 min at 0.05/min

	tasks, err := jobRepo.TasksByJob(ctx, mid.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.InDelta(t, 0.5, tasks[0].Cost, 1e-9)

	// Replaying the identical batch changes nothing.
	_, err = svc.ApplyCallback(ctx, j.Name, &dto.BackendCallback{
		TasksCount: &tasksCount,
		Tasks: map[string]dto.TaskReport{
			"0": {RenderTime: 10, RenderTimeString: "10m", FrameList: "1-5"},
			"1": {RenderTime: 6, RenderTimeString: "6m", FrameList: "6-10"},
		},
	})
	require.NoError(t, err)

	replayed, err := jobRepo.GetByName(ctx, j.Name)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, replayed.Cost, 1e-9)

	// A repeat report overwrites the task row and replaces its prior
	// cost contribution instead of stacking on it.
	_, err = svc.ApplyCallback(ctx, j.Name, &dto.BackendCallback{
		Status:     config.StatusCompleted,
		Progress:   100,
		TasksCount: &tasksCount,
		Tasks: map[string]dto.TaskReport{
			"1": {RenderTime: 8, RenderTimeString: "8m", FrameList: "6-10"},
		},
	})
	require.NoError(t, err)

	final, err := jobRepo.GetByName(ctx, j.Name)
	require.NoError(t, err)
	assert.Equal(t, config.StatusCompleted, final.Status.Name)
	assert.InDelta(t, 0.9, final.Cost, 1e-9)

	tasks, err = jobRepo.TasksByJob(ctx, final.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.InDelta(t, 0.4, tasks[1].Cost, 1e-9)

	balance, err := userRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 99.1, balance, 1e-9)

	assert.NotEmpty(t, notifier.Named("on_completed"))
}

// TestNegativeBalanceSuspendsOnSave covers the account-level rule on a
// real derived balance: once spend exceeds credit, the next save of any
// active job parks it in suspended.
func TestNegativeBalanceSuspendsOnSave(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	jobRepo := postgres.NewJobRepository(db)
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	notifier := &mocks.NotifierMock{}
	svc := job.NewJobService(jobRepo, userRepo, sessionRepo, &mocks.StorageMock{}, notifier)

	user := createUser(t, db, 1)

	past := createJobWithStatus(t, db, jobRepo, user, "scene_spent", config.StatusCompleted)
	past.Cost = 5
	require.NoError(t, jobRepo.Save(ctx, past))

	createJobWithStatus(t, db, jobRepo, user, "scene_active", config.StatusRendering)

	_, err := svc.ApplyCallback(ctx, "scene_active", &dto.BackendCallback{
		Status:   config.StatusRendering,
		Progress: 10,
	})
	require.NoError(t, err)

	reloaded, err := jobRepo.GetByName(ctx, "scene_active")
	require.NoError(t, err)
	assert.Equal(t, config.StatusSuspended, reloaded.Status.Name)
}

// TestErrorCatalogPersistsAcrossReports matches farm error text against
// the seeded catalog and checks the join rows survive reloads without
// duplicating on repeat reports.
func TestErrorCatalogPersistsAcrossReports(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	jobRepo := postgres.NewJobRepository(db)
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	svc := job.NewJobService(jobRepo, userRepo, sessionRepo, &mocks.StorageMock{}, &mocks.NotifierMock{})

	user := createUser(t, db, 100)
	createJobWithStatus(t, db, jobRepo, user, "scene_errs", config.StatusRendering)

	cb := &dto.BackendCallback{
		Status: config.StatusFailed,
		Errors: map[string]string{
			"worker-1": "render aborted: FileNotFoundException in asset loader",
		},
	}
	_, err := svc.ApplyCallback(ctx, "scene_errs", cb)
	require.NoError(t, err)

	_, err = svc.ApplyCallback(ctx, "scene_errs", cb)
	require.NoError(t, err)

	reloaded, err := jobRepo.GetByName(ctx, "scene_errs")
	require.NoError(t, err)
	require.Len(t, reloaded.Errors, 1)
	assert.Equal(t, config.StatusFailed, reloaded.Status.Name)
	assert.Equal(t, 0.0, reloaded.Cost)
}
