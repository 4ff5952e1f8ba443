package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// JobStatus is immutable reference data; the capability flags gate
// user-initiated transitions (suspend/delete/plan change).
type JobStatus struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"type:varchar(50);uniqueIndex;not null"`
	DisplayName   string `gorm:"type:varchar(50)"`
	Description   string `gorm:"type:varchar(500)"`
	AdminOnly     bool   `gorm:"default:false"`
	IsSuspendable bool   `gorm:"default:false"`
	IsDeletable   bool   `gorm:"default:false"`
	IsUpgradable  bool   `gorm:"default:false"`
}

// RenderPlan is a pricing/priority tier. MachineLimit and Priority are
// hints forwarded to the farm scheduler, never enforced here.
type RenderPlan struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	DisplayName  string  `gorm:"type:varchar(200)"`
	RatePerMin   float64 `gorm:"default:0"`
	MachineLimit int     `gorm:"default:0"`
	Priority     int     `gorm:"default:1"`
	AdminOnly    bool    `gorm:"default:false"`
}

// JobError is one entry of the known-error catalog. Pattern is matched
// by substring against free-text messages reported by the farm.
type JobError struct {
	ID          uint   `gorm:"primaryKey"`
	Pattern     string `gorm:"type:varchar(500)"`
	Title       string `gorm:"type:varchar(500)"`
	Description string `gorm:"type:text"`
	Solution    string `gorm:"type:text"`
}

type Job struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"index;not null"`
	User         User
	Name         string                      `gorm:"type:varchar(200);index"`
	FrameList    datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	RenderPlanID uint
	RenderPlan   RenderPlan `gorm:"constraint:OnDelete:RESTRICT"`
	StatusID     uint
	Status       JobStatus          `gorm:"constraint:OnDelete:RESTRICT"`
	Progress     float64            `gorm:"default:0"`
	DeadlineID   string             `gorm:"type:varchar(200)"`
	Data         datatypes.JSONMap  `gorm:"type:jsonb"`
	TasksCount   int                `gorm:"default:0"`
	Cost         float64            `gorm:"default:0"`
	Errors       []JobError         `gorm:"many2many:job_error_reports"`
	Tasks        []JobTask          `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time          `gorm:"autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"autoUpdateTime"`
}

// SessionID returns the submit-session id for jobs that came through
// the two-step wizard, empty for classic form/plugin submissions.
func (j *Job) SessionID() string {
	id, _ := j.Data["session_id"].(string)
	return id
}

// IsGPU reports whether the stored engine selector picks one of the
// GPU render modes. Only wizard submissions carry the selector.
func (j *Job) IsGPU() bool {
	if j.SessionID() == "" {
		return false
	}

	switch j.Data["render_engine"] {
	case 3, "3", float64(3), 4, "4", float64(4):
		return true
	}
	return false
}

// FrameListDisplay collapses the stored ranges for list views.
func (j *Job) FrameListDisplay() string {
	if len(j.FrameList) > 1 {
		return "Multiple Range"
	}
	return strings.Join(j.FrameList, ",")
}

// JobTask is one farm work unit. DeadlineTaskID is unique within the
// owning job; telemetry batches upsert by it.
type JobTask struct {
	ID               uint `gorm:"primaryKey"`
	JobID            uint `gorm:"index;not null"`
	DeadlineTaskID   int  `gorm:"index;default:0"`
	Cost             float64
	CPUUsage         float64
	FrameList        string `gorm:"type:varchar(3000)"`
	RenderTime       float64
	RenderTimeString string    `gorm:"type:varchar(200)"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// SubmitSession stages the payload between the file-select and the
// configure steps of the wizard. No lifecycle, just create/read.
type SubmitSession struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	SessionID string `gorm:"type:varchar(64);uniqueIndex"`
	Data      datatypes.JSONMap
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
