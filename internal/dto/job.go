package dto

import (
	"time"
)

// SubmitJobRequest is the web form submission. Exactly one of
// FilePath (cloud storage reference) or FileLink (direct URL) selects
// the source file.
type SubmitJobRequest struct {
	FrameList    []string       `json:"frame_list" validate:"required,min=1"`
	RenderPlanID uint           `json:"render_plan_id" validate:"required"`
	FilePath     string         `json:"file_path"`
	FileLink     string         `json:"file_link" validate:"omitempty,url"`
	FileName     string         `json:"file_name"`
	FileID       string         `json:"file_id"`
	FileSize     int64          `json:"file_size"`
	OutputFormat string         `json:"output_format"`
	Cameras      []string       `json:"cameras"`
	PluginInfo   map[string]any `json:"plugin_info"`
	Continue     bool           `json:"continue"`
}

// PluginSubmitRequest is what the desktop plugin posts. Field casing
// follows the plugin's payload, not ours.
type PluginSubmitRequest struct {
	Data PluginPayload `json:"data" validate:"required"`
}

type PluginPayload struct {
	SystemInfo map[string]any `json:"System_Info" validate:"required"`
	PluginInfo map[string]any `json:"Plugin_Info"`
	JobInfo    map[string]any `json:"Job_Info" validate:"required"`
}

// TaskReport is per-task telemetry from the farm, keyed by task id in
// the callback body.
type TaskReport struct {
	CPUUsage         float64 `json:"cpu_usage"`
	FrameList        string  `json:"frame_list"`
	RenderTime       float64 `json:"render_time"`
	RenderTimeString string  `json:"render_time_string"`
}

// BackendCallback is the farm's progress report. Every field is
// optional; unknown statuses and corrupt telemetry are skipped, never
// rejected.
type BackendCallback struct {
	Status     string                `json:"status"`
	Progress   float64               `json:"progress"`
	DeadlineID string                `json:"deadline_id"`
	TasksCount *int                  `json:"tasks_count"`
	Errors     map[string]string     `json:"errors"`
	Tasks      map[string]TaskReport `json:"tasks"`
}

type ResubmitRequest struct {
	FrameList string `json:"frame_list" validate:"required"`
}

type JobResponse struct {
	ID         uint           `json:"id"`
	Name       string         `json:"name"`
	User       string         `json:"user"`
	Status     string         `json:"status"`
	RenderPlan string         `json:"render_plan"`
	FrameList  []string       `json:"frame_list"`
	Progress   float64        `json:"progress"`
	DeadlineID string         `json:"deadline_id"`
	TasksCount int            `json:"tasks_count"`
	Cost       float64        `json:"cost"`
	Data       map[string]any `json:"data,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// SourceFileResponse is one uploaded scene file in the select listing.
// Files whose names the farm would reject are flagged instead of
// hidden so the UI can explain why they are greyed out.
type SourceFileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
	Downloadable bool   `json:"downloadable"`
}

type JobListResponse struct {
	Jobs           []JobResponse `json:"jobs"`
	CountAll       int64         `json:"count_all"`
	CountRendering int64         `json:"count_rendering"`
	CountCompleted int64         `json:"count_completed"`
	CountFailed    int64         `json:"count_failed"`
	Balance        float64       `json:"balance"`
}
