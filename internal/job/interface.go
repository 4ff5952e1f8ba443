package job

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/realchief/RenderShotPanel/common"
	"github.com/realchief/RenderShotPanel/internal/dto"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/realchief/RenderShotPanel/internal/storage/rendershare"
)

// JobRepoInterface defines the contract for job persistence.
type JobRepoInterface interface {
	Create(ctx context.Context, job *models.Job) error
	Save(ctx context.Context, job *models.Job) error
	GetByName(ctx context.Context, name string) (*models.Job, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Job, error)
	CountByUserStatus(ctx context.Context, userID uint, statusName string) (int64, error)

	StatusByName(ctx context.Context, name string) (*models.JobStatus, error)
	PlanByID(ctx context.Context, id uint) (*models.RenderPlan, error)
	PlanByName(ctx context.Context, name string) (*models.RenderPlan, error)
	ErrorCatalog(ctx context.Context) ([]models.JobError, error)
	AddErrors(ctx context.Context, job *models.Job, errs []models.JobError) error

	UpsertTask(ctx context.Context, jobID uint, update TaskUpdate) error
	DeleteTasks(ctx context.Context, jobID uint) error
	TasksByJob(ctx context.Context, jobID uint) ([]models.JobTask, error)
	SpentByUser(ctx context.Context, userID uint) (float64, error)
}

// UserRepoInterface is the slice of user persistence the lifecycle
// engine needs: identity plus the derived balance.
type UserRepoInterface interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
	Balance(ctx context.Context, userID uint) (float64, error)
}

// SessionRepoInterface stages submit-wizard payloads.
type SessionRepoInterface interface {
	Create(ctx context.Context, session *models.SubmitSession) error
	GetByUser(ctx context.Context, userID uint, sessionID string) (*models.SubmitSession, error)
	ListByUser(ctx context.Context, userID uint) ([]models.SubmitSession, error)
}

// FileStorage resolves source files and output folders in the cloud
// storage provider.
type FileStorage interface {
	FileMetadata(ctx context.Context, path string) (*rendershare.FileMeta, error)
	DownloadLink(ctx context.Context, path string) (string, error)
	OutputLink(ctx context.Context, username, jobName string) (string, error)
	ListSourceFiles(ctx context.Context, username string, exts []string) ([]rendershare.FileMeta, error)
	CheckLink(ctx context.Context, link string) error
}

// JobServiceInterface defines the lifecycle operations exposed to the
// HTTP handlers and the websocket consumers.
type JobServiceInterface interface {
	Submit(ctx context.Context, user *models.User, req *dto.SubmitJobRequest) (*models.Job, error)
	SubmitFromPlugin(ctx context.Context, user *models.User, req *dto.PluginSubmitRequest) (*models.Job, error)
	SubmitFromSession(ctx context.Context, user *models.User, sessionID string, req *dto.SessionSubmitRequest) (*models.Job, error)
	Resubmit(ctx context.Context, user *models.User, jobName, frameList string) (*models.Job, error)

	ApplyCallback(ctx context.Context, jobName string, cb *dto.BackendCallback) (*models.Job, error)
	SetDeadlineID(ctx context.Context, jobName, deadlineID string) error
	SetStatusFromBackend(ctx context.Context, jobName, statusName string) error

	GetJob(ctx context.Context, name string) (*models.Job, error)
	ListJobs(ctx context.Context, user *models.User) (*dto.JobListResponse, error)
	JobDetails(ctx context.Context, user *models.User, jobName string) (*models.Job, []models.JobTask, error)
	JobErrorReports(ctx context.Context, user *models.User, jobName string) ([]models.JobError, error)
	OutputURL(ctx context.Context, user *models.User, jobName string) (string, error)

	ChangeStatus(ctx context.Context, user *models.User, jobNames []string, target string) []common.Message
	PauseResume(ctx context.Context, user *models.User, jobNames []string) []common.Message
	ChangePlan(ctx context.Context, user *models.User, jobName string, planID uint) []common.Message

	CreateSession(ctx context.Context, user *models.User, data map[string]any) (*models.SubmitSession, error)
	GetSession(ctx context.Context, user *models.User, sessionID string) (*models.SubmitSession, error)
	SelectFile(ctx context.Context, user *models.User, fileData map[string]any) (*models.SubmitSession, error)
	ListSourceFiles(ctx context.Context, user *models.User, exts []string) ([]dto.SourceFileResponse, error)
}

// JobHandlerInterface defines the contract for HTTP request handlers.
type JobHandlerInterface interface {
	Get(c *gin.Context)
	Submit(c *gin.Context)
	Callback(c *gin.Context)
	List(c *gin.Context)
	WebSubmit(c *gin.Context)
	Resubmit(c *gin.Context)
	Output(c *gin.Context)
	Files(c *gin.Context)
	CreateSession(c *gin.Context)
	GetSession(c *gin.Context)
	SelectFile(c *gin.Context)
	SubmitSession(c *gin.Context)
}
