package config

// Operator identifies who triggered a mutation. Suspension emails are
// skipped when the owner acted on their own job.
type Operator string

const (
	OperatorWebUser  Operator = "web_user"
	OperatorWebAdmin Operator = "web_admin"
	OperatorAPI      Operator = "api"
	OperatorBackend  Operator = "backend"
)

// Job status names as seeded in the job_statuses reference table.
const (
	StatusSubmitted  = "submitted"
	StatusRendering  = "rendering"
	StatusSuspending = "suspending"
	StatusSuspended  = "suspended"
	StatusResuming   = "resuming"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusDeleted    = "deleted"
)

// SceneFileExt is the packaged scene extension the file-select listing
// defaults to.
const SceneFileExt = ".ksp"

// Hub groups addressed by the notification fan-out.
const (
	GroupJobs   = "jobs"
	GroupAdmin  = "admin"
	GroupClient = "client"
)

var (
	// MaxRenderTime is the sanity ceiling for backend-reported task
	// render times. The farm occasionally reports garbage for requeued
	// tasks; anything above this is dropped as corrupt telemetry.
	MaxRenderTime = 2000.0

	// GPUSurcharge multiplies the total cost of GPU-engine jobs.
	GPUSurcharge = 3.0
)
