package mocks

import (
	"context"

	"github.com/realchief/RenderShotPanel/internal/job"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/stretchr/testify/mock"
)

type JobRepoMock struct {
	mock.Mock
}

func (m *JobRepoMock) Create(ctx context.Context, j *models.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *JobRepoMock) Save(ctx context.Context, j *models.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *JobRepoMock) GetByName(ctx context.Context, name string) (*models.Job, error) {
	args := m.Called(ctx, name)

	j, _ := args.Get(0).(*models.Job)
	return j, args.Error(1)
}

func (m *JobRepoMock) ListByUser(ctx context.Context, userID uint) ([]models.Job, error) {
	args := m.Called(ctx, userID)

	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}

func (m *JobRepoMock) CountByUserStatus(ctx context.Context, userID uint, statusName string) (int64, error) {
	args := m.Called(ctx, userID, statusName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *JobRepoMock) StatusByName(ctx context.Context, name string) (*models.JobStatus, error) {
	args := m.Called(ctx, name)

	status, _ := args.Get(0).(*models.JobStatus)
	return status, args.Error(1)
}

func (m *JobRepoMock) PlanByID(ctx context.Context, id uint) (*models.RenderPlan, error) {
	args := m.Called(ctx, id)

	plan, _ := args.Get(0).(*models.RenderPlan)
	return plan, args.Error(1)
}

func (m *JobRepoMock) PlanByName(ctx context.Context, name string) (*models.RenderPlan, error) {
	args := m.Called(ctx, name)

	plan, _ := args.Get(0).(*models.RenderPlan)
	return plan, args.Error(1)
}

func (m *JobRepoMock) ErrorCatalog(ctx context.Context) ([]models.JobError, error) {
	args := m.Called(ctx)

	catalog, _ := args.Get(0).([]models.JobError)
	return catalog, args.Error(1)
}

func (m *JobRepoMock) AddErrors(ctx context.Context, j *models.Job, errs []models.JobError) error {
	args := m.Called(ctx, j, errs)
	return args.Error(0)
}

func (m *JobRepoMock) UpsertTask(ctx context.Context, jobID uint, update job.TaskUpdate) error {
	args := m.Called(ctx, jobID, update)
	return args.Error(0)
}

func (m *JobRepoMock) DeleteTasks(ctx context.Context, jobID uint) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *JobRepoMock) TasksByJob(ctx context.Context, jobID uint) ([]models.JobTask, error) {
	args := m.Called(ctx, jobID)

	tasks, _ := args.Get(0).([]models.JobTask)
	return tasks, args.Error(1)
}

func (m *JobRepoMock) SpentByUser(ctx context.Context, userID uint) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}
