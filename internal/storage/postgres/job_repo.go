package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/realchief/RenderShotPanel/internal/config"
	"github.com/realchief/RenderShotPanel/internal/job"
	"github.com/realchief/RenderShotPanel/internal/models"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

var _ job.JobRepoInterface = (*JobRepository)(nil)

func (r *JobRepository) Create(ctx context.Context, j *models.Job) error {
	if err := r.db.WithContext(ctx).Create(j).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (r *JobRepository) Save(ctx context.Context, j *models.Job) error {
	if err := r.db.WithContext(ctx).Save(j).Error; err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

// GetByName loads a job with its owner, status and plan. The name is
// the permanent identifier every external surface uses.
func (r *JobRepository) GetByName(ctx context.Context, name string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Status").
		Preload("RenderPlan").
		Preload("Errors").
		First(&j, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &j, nil
}

// ListByUser returns the user's jobs newest first, deleted excluded.
func (r *JobRepository) ListByUser(ctx context.Context, userID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Status").
		Preload("RenderPlan").
		Joins("JOIN job_statuses ON job_statuses.id = jobs.status_id").
		Where("jobs.user_id = ? AND job_statuses.name <> ?", userID, config.StatusDeleted).
		Order("jobs.created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) CountByUserStatus(ctx context.Context, userID uint, statusName string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Joins("JOIN job_statuses ON job_statuses.id = jobs.status_id").
		Where("jobs.user_id = ? AND job_statuses.name = ?", userID, statusName).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return count, nil
}

func (r *JobRepository) StatusByName(ctx context.Context, name string) (*models.JobStatus, error) {
	var status models.JobStatus
	if err := r.db.WithContext(ctx).First(&status, "name = ?", name).Error; err != nil {
		return nil, fmt.Errorf("status %q: %w", name, err)
	}
	return &status, nil
}

func (r *JobRepository) PlanByID(ctx context.Context, id uint) (*models.RenderPlan, error) {
	var plan models.RenderPlan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("render plan %d: %w", id, err)
	}
	return &plan, nil
}

func (r *JobRepository) PlanByName(ctx context.Context, name string) (*models.RenderPlan, error) {
	var plan models.RenderPlan
	if err := r.db.WithContext(ctx).First(&plan, "name = ?", name).Error; err != nil {
		return nil, fmt.Errorf("render plan %q: %w", name, err)
	}
	return &plan, nil
}

func (r *JobRepository) ErrorCatalog(ctx context.Context) ([]models.JobError, error) {
	var catalog []models.JobError
	if err := r.db.WithContext(ctx).Find(&catalog).Error; err != nil {
		return nil, fmt.Errorf("error catalog: %w", err)
	}
	return catalog, nil
}

func (r *JobRepository) AddErrors(ctx context.Context, j *models.Job, errs []models.JobError) error {
	if len(errs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(j).Association("Errors").Append(errs); err != nil {
		return fmt.Errorf("add errors: %w", err)
	}
	return nil
}

// UpsertTask writes one task's telemetry keyed by the farm's task id,
// so repeated reports for the same task overwrite instead of stack.
func (r *JobRepository) UpsertTask(ctx context.Context, jobID uint, update job.TaskUpdate) error {
	fields := map[string]any{
		"cost":               update.Cost,
		"cpu_usage":          update.Report.CPUUsage,
		"frame_list":         update.Report.FrameList,
		"render_time":        update.Report.RenderTime,
		"render_time_string": update.Report.RenderTimeString,
	}

	var task models.JobTask
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND deadline_task_id = ?", jobID, update.TaskID).
		First(&task).Error

	switch {
	case err == nil:
		if uerr := r.db.WithContext(ctx).Model(&task).Updates(fields).Error; uerr != nil {
			return fmt.Errorf("update task: %w", uerr)
		}
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		task = models.JobTask{
			JobID:            jobID,
			DeadlineTaskID:   update.TaskID,
			Cost:             update.Cost,
			CPUUsage:         update.Report.CPUUsage,
			FrameList:        update.Report.FrameList,
			RenderTime:       update.Report.RenderTime,
			RenderTimeString: update.Report.RenderTimeString,
		}
		if cerr := r.db.WithContext(ctx).Create(&task).Error; cerr != nil {
			return fmt.Errorf("create task: %w", cerr)
		}
		return nil
	}

	return fmt.Errorf("upsert task: %w", err)
}

func (r *JobRepository) DeleteTasks(ctx context.Context, jobID uint) error {
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Delete(&models.JobTask{}).Error; err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	return nil
}

func (r *JobRepository) TasksByJob(ctx context.Context, jobID uint) ([]models.JobTask, error) {
	var tasks []models.JobTask
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("deadline_task_id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("tasks by job: %w", err)
	}
	return tasks, nil
}

// SpentByUser sums job costs across the account's full history,
// deleted and failed included. The balance is always derived from
// this, never cached.
func (r *JobRepository) SpentByUser(ctx context.Context, userID uint) (float64, error) {
	var spent float64
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(cost), 0)").
		Scan(&spent).Error
	if err != nil {
		return 0, fmt.Errorf("spent by user: %w", err)
	}
	return spent, nil
}
