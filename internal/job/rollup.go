package job

import (
	"github.com/realchief/RenderShotPanel/internal/config"
	"github.com/realchief/RenderShotPanel/internal/dto"
)

// TaskUpdate is one accepted task with its computed cost, ready to be
// upserted by task id.
type TaskUpdate struct {
	TaskID int
	Cost   float64
	Report dto.TaskReport
}

// BuildRollup prices a telemetry batch. Tasks whose render time is
// over the sanity ceiling are dropped entirely: they neither persist
// nor contribute to cost. The GPU surcharge is not applied here; it
// scales the job total after the rows are persisted.
func BuildRollup(reports map[int]dto.TaskReport, ratePerMin float64) []TaskUpdate {
	var accepted []TaskUpdate
	for id, report := range reports {
		if report.RenderTime > config.MaxRenderTime {
			continue
		}
		accepted = append(accepted, TaskUpdate{TaskID: id, Cost: report.RenderTime * ratePerMin, Report: report})
	}
	return accepted
}
