package job

import (
	"fmt"

	"github.com/realchief/RenderShotPanel/internal/config"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/realchief/RenderShotPanel/internal/notify"
)

// jobSummary is the envelope body for per-owner live updates.
func jobSummary(j *models.Job) map[string]any {
	return map[string]any{
		"id":         j.ID,
		"name":       j.Name,
		"status":     j.Status.Name,
		"progress":   j.Progress,
		"cost":       j.Cost,
		"frame_list": j.FrameListDisplay(),
		"plan":       j.RenderPlan.DisplayName,
	}
}

// adminPayload mirrors the full job for the farm bridge and admin UIs,
// remapped to scheduler-facing values.
func adminPayload(j *models.Job) map[string]any {
	data := map[string]any{}
	for k, v := range j.Data {
		data[k] = v
	}

	data["name"] = j.Name
	data["user"] = j.User.Username
	data["status"] = j.Status.Name
	data["render_plan"] = j.RenderPlan.Name
	data["machine_limit"] = j.RenderPlan.MachineLimit
	data["priority"] = j.RenderPlan.Priority
	data["chunk_size"] = j.User.ChunkSizeOverride
	data["deadline_id"] = j.DeadlineID
	data["frame_list"] = []string(j.FrameList)
	return data
}

func slackData(j *models.Job) map[string]any {
	return map[string]any{
		"user":        j.User.Username,
		"name":        j.Name,
		"frame_list":  j.FrameListDisplay(),
		"render_plan": j.RenderPlan.DisplayName,
		"session_id":  j.SessionID(),
	}
}

func jobEmail(j *models.Job) *notify.EmailMessage {
	if !j.User.ReceiveJobEmailNotifs || j.User.Email == "" {
		return nil
	}

	return &notify.EmailMessage{
		To:         j.User.Email,
		Subject:    fmt.Sprintf("Update %s is %s", j.Name, j.Status.DisplayName),
		Body:       fmt.Sprintf("Your job %s is %s.", j.Name, j.Status.DisplayName),
		ActionText: "Job List",
		ActionURL:  "/jobs",
	}
}

// liveJobEvent is emitted on every save: add_job on first save,
// update_job after, delete_job when the job reaches deleted.
func liveJobEvent(j *models.Job, action string) notify.Event {
	data := jobSummary(j)
	data["action"] = action
	data["job_id"] = j.ID

	return notify.Event{
		Name: action,
		Live: []notify.LiveMessage{{Group: config.GroupJobs, User: j.UserID, Data: data}},
	}
}

func adminEvent(name string, j *models.Job) notify.LiveMessage {
	return notify.LiveMessage{
		Group: config.GroupAdmin,
		Data:  map[string]any{"action": name, "data": adminPayload(j)},
	}
}

// statusEvents is the closed dispatch table of the transition engine:
// one case per known status, everything else a no-op. It only builds
// events; persistence has already happened by the time these fire.
func statusEvents(j *models.Job, operator config.Operator) []notify.Event {
	switch j.Status.Name {
	case config.StatusSubmitted:
		name := "on_submitted"
		if j.SessionID() != "" {
			name = "on_job_v2_submitted"
		}
		ev := notify.Event{
			Name:  name,
			Live:  []notify.LiveMessage{adminEvent(name, j)},
			Slack: &notify.SlackMessage{Event: name, Data: slackData(j)},
		}
		if name == "on_job_v2_submitted" {
			ev.Live = append(ev.Live, notify.LiveMessage{
				Group: config.GroupClient,
				User:  j.UserID,
				Data: map[string]any{
					"event": "job_session_submitted",
					"data": map[string]any{
						"username":   j.User.Username,
						"session_id": j.SessionID(),
						"job_name":   j.Name,
					},
				},
			})
		}
		return []notify.Event{ev}

	case config.StatusSuspended:
		ev := notify.Event{
			Name:  "on_suspended",
			Live:  []notify.LiveMessage{adminEvent("on_suspended", j)},
			Slack: &notify.SlackMessage{Event: "on_suspended", Data: slackData(j)},
		}
		if operator != config.OperatorWebUser {
			ev.Email = jobEmail(j)
		}
		return []notify.Event{ev}

	case config.StatusSuspending:
		return []notify.Event{{
			Name:  "on_suspending",
			Live:  []notify.LiveMessage{adminEvent("on_suspending", j)},
			Slack: &notify.SlackMessage{Event: "on_suspending", Data: slackData(j)},
		}}

	case config.StatusResuming:
		return []notify.Event{{
			Name: "on_resuming",
			Live: []notify.LiveMessage{adminEvent("on_resuming", j)},
		}}

	case config.StatusCompleted:
		return []notify.Event{{
			Name:  "on_completed",
			Slack: &notify.SlackMessage{Event: "on_completed", Data: slackData(j)},
			Email: jobEmail(j),
		}}

	case config.StatusFailed:
		return []notify.Event{{
			Name:  "on_failed",
			Slack: &notify.SlackMessage{Event: "on_failed", Data: slackData(j)},
			Email: jobEmail(j),
		}}

	case config.StatusDeleted:
		return []notify.Event{{
			Name: "on_deleted",
			Live: []notify.LiveMessage{
				{Group: config.GroupJobs, User: j.UserID, Data: map[string]any{"action": "delete_job", "job_id": j.ID}},
				adminEvent("on_deleted", j),
			},
		}}

	case config.StatusRendering:
		return nil
	}

	return nil
}

func planChangedEvents(j *models.Job) []notify.Event {
	return []notify.Event{{
		Name:  "on_plan_changed",
		Live:  []notify.LiveMessage{adminEvent("on_plan_changed", j)},
		Slack: &notify.SlackMessage{Event: "on_plan_changed", Data: slackData(j)},
	}}
}
