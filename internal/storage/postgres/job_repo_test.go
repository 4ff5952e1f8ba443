package postgres

import (
	"context"
	"testing"

	"github.com/realchief/RenderShotPanel/internal/config"
	"github.com/realchief/RenderShotPanel/internal/dto"
	"github.com/realchief/RenderShotPanel/internal/job"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func createJob(t *testing.T, db *gorm.DB, repo *JobRepository, user *models.User, name, status string) *models.Job {
	st, err := repo.StatusByName(context.Background(), status)
	require.NoError(t, err)
	plan, err := repo.PlanByName(context.Background(), "animation_slow")
	require.NoError(t, err)

	j := &models.Job{
		UserID:       user.ID,
		Name:         name,
		FrameList:    datatypes.JSONSlice[string]{"1-10"},
		RenderPlanID: plan.ID,
		StatusID:     st.ID,
		Data:         datatypes.JSONMap{},
	}
	require.NoError(t, repo.Create(context.Background(), j))
	return j
}

func TestJobRepository_GetByName(t *testing.T) {
	db := SetupTestDB(t)
	seedReferenceData(t, db)
	repo := NewJobRepository(db)
	user := seedUser(t, db, "artist", 100)

	created := createJob(t, db, repo, user, "scene_1", config.StatusSubmitted)

	got, err := repo.GetByName(context.Background(), "scene_1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "artist", got.User.Username)
	assert.Equal(t, config.StatusSubmitted, got.Status.Name)
	assert.Equal(t, "animation_slow", got.RenderPlan.Name)

	_, err = repo.GetByName(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestJobRepository_ListByUserExcludesDeleted(t *testing.T) {
	db := SetupTestDB(t)
	seedReferenceData(t, db)
	repo := NewJobRepository(db)
	user := seedUser(t, db, "artist", 100)

	createJob(t, db, repo, user, "visible_1", config.StatusRendering)
	createJob(t, db, repo, user, "visible_2", config.StatusCompleted)
	createJob(t, db, repo, user, "gone", config.StatusDeleted)

	jobs, err := repo.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	for _, j := range jobs {
		assert.NotEqual(t, config.StatusDeleted, j.Status.Name)
	}
}

func TestJobRepository_CountByUserStatus(t *testing.T) {
	db := SetupTestDB(t)
	seedReferenceData(t, db)
	repo := NewJobRepository(db)
	user := seedUser(t, db, "artist", 100)

	createJob(t, db, repo, user, "r1", config.StatusRendering)
	createJob(t, db, repo, user, "r2", config.StatusRendering)
	createJob(t, db, repo, user, "c1", config.StatusCompleted)

	count, err := repo.CountByUserStatus(context.Background(), user.ID, config.StatusRendering)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestJobRepository_UpsertTask(t *testing.T) {
	db := SetupTestDB(t)
	seedReferenceData(t, db)
	repo := NewJobRepository(db)
	user := seedUser(t, db, "artist", 100)
	j := createJob(t, db, repo, user, "scene_1", config.StatusRendering)

	update := job.TaskUpdate{
		TaskID: 3,
		Cost:   0.5,
		Report: dto.TaskReport{RenderTime: 10, FrameList: "1-5"},
	}
	require.NoError(t, repo.UpsertTask(context.Background(), j.ID, update))

	// second report for the same task overwrites, not stacks
	update.Cost = 0.8
	update.Report.RenderTime = 16
	require.NoError(t, repo.UpsertTask(context.Background(), j.ID, update))

	tasks, err := repo.TasksByJob(context.Background(), j.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 3, tasks[0].DeadlineTaskID)
	assert.InDelta(t, 0.8, tasks[0].Cost, 1e-9)
	assert.InDelta(t, 16.0, tasks[0].RenderTime, 1e-9)
}

func TestJobRepository_DeleteTasks(t *testing.T) {
	db := SetupTestDB(t)
	seedReferenceData(t, db)
	repo := NewJobRepository(db)
	user := seedUser(t, db, "artist", 100)
	j := createJob(t, db, repo, user, "scene_1", config.StatusRendering)

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.UpsertTask(context.Background(), j.ID, job.TaskUpdate{TaskID: i, Cost: 1}))
	}

	require.NoError(t, repo.DeleteTasks(context.Background(), j.ID))

	tasks, err := repo.TasksByJob(context.Background(), j.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestJobRepository_SpentByUserIncludesAllHistory(t *testing.T) {
	db := SetupTestDB(t)
	seedReferenceData(t, db)
	repo := NewJobRepository(db)
	user := seedUser(t, db, "artist", 100)

	active := createJob(t, db, repo, user, "active", config.StatusRendering)
	active.Cost = 2.5
	require.NoError(t, repo.Save(context.Background(), active))

	deleted := createJob(t, db, repo, user, "gone", config.StatusDeleted)
	deleted.Cost = 1.5
	require.NoError(t, repo.Save(context.Background(), deleted))

	spent, err := repo.SpentByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, spent, 1e-9)
}

func TestUserRepository_Balance(t *testing.T) {
	db := SetupTestDB(t)
	seedReferenceData(t, db)
	jobs := NewJobRepository(db)
	users := NewUserRepository(db)

	user := seedUser(t, db, "artist", 10)
	user.RateMultiplier = 2
	require.NoError(t, db.Save(user).Error)

	j := createJob(t, db, jobs, user, "scene_1", config.StatusRendering)
	j.Cost = 3
	require.NoError(t, jobs.Save(context.Background(), j))

	balance, err := users.Balance(context.Background(), user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, balance, 1e-9) // 10 - 3*2
}

func TestUserRepository_AdjustCredit(t *testing.T) {
	db := SetupTestDB(t)
	users := NewUserRepository(db)
	user := seedUser(t, db, "artist", 10)

	require.NoError(t, users.AdjustCredit(context.Background(), user.ID, 25))
	require.NoError(t, users.AdjustCredit(context.Background(), user.ID, -5))

	got, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, got.Credit, 1e-9)
}
