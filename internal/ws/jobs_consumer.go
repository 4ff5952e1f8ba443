package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/realchief/RenderShotPanel/common"
	"github.com/realchief/RenderShotPanel/internal/config"
	"github.com/realchief/RenderShotPanel/internal/job"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/realchief/RenderShotPanel/internal/notify"
	"github.com/realchief/RenderShotPanel/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// request is the envelope clients send on any consumer socket.
type request struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// JobsConsumer serves the per-user job dashboard socket. Incoming
// actions map to batch lifecycle operations; outcomes come back as
// flash messages, state changes arrive through the hub like any other
// live update.
type JobsConsumer struct {
	hub     *notify.Hub
	service job.JobServiceInterface
}

func NewJobsConsumer(hub *notify.Hub, service job.JobServiceInterface) *JobsConsumer {
	return &JobsConsumer{hub: hub, service: service}
}

func (jc *JobsConsumer) Serve(c *gin.Context) {
	user := middleware.CurrentUser(c)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	conn := jc.hub.Register(user.ID, config.GroupJobs, ws)
	defer jc.hub.Unregister(conn)

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var req request
		if err := json.Unmarshal(raw, &req); err != nil {
			conn.Send(map[string]any{"action": "messages", "messages": []common.Message{
				common.Msgf(common.LevelError, "Request is not valid."),
			}})
			continue
		}

		jc.handle(c.Request.Context(), conn, user, &req)
	}
}

func (jc *JobsConsumer) handle(ctx context.Context, conn *notify.Conn, user *models.User, req *request) {
	switch req.Action {
	case "request_delete_jobs":
		var data struct {
			JobNames []string `json:"job_names"`
		}
		if !decode(conn, req.Data, &data) {
			return
		}
		sendMessages(conn, jc.service.ChangeStatus(ctx, user, data.JobNames, config.StatusDeleted))

	case "request_suspend_jobs":
		var data struct {
			JobNames []string `json:"job_names"`
		}
		if !decode(conn, req.Data, &data) {
			return
		}
		sendMessages(conn, jc.service.ChangeStatus(ctx, user, data.JobNames, config.StatusSuspending))

	case "request_pause_resume":
		var data struct {
			JobNames []string `json:"job_names"`
		}
		if !decode(conn, req.Data, &data) {
			return
		}
		sendMessages(conn, jc.service.PauseResume(ctx, user, data.JobNames))

	case "request_change_plan":
		var data struct {
			JobName      string `json:"job_name"`
			RenderPlanID uint   `json:"render_plan_id"`
		}
		if !decode(conn, req.Data, &data) {
			return
		}
		sendMessages(conn, jc.service.ChangePlan(ctx, user, data.JobName, data.RenderPlanID))

	case "request_resubmit_job":
		var data struct {
			JobName   string `json:"job_name"`
			FrameList string `json:"frame_list"`
		}
		if !decode(conn, req.Data, &data) {
			return
		}
		if _, err := jc.service.Resubmit(ctx, user, data.JobName, data.FrameList); err != nil {
			message := "Job could not be resubmitted."
			if apiErr, ok := err.(common.APIError); ok {
				message = apiErr.Message
			}
			sendMessages(conn, []common.Message{common.Msgf(common.LevelError, "%s", message)})
			return
		}
		sendMessages(conn, []common.Message{common.Msgf(common.LevelSuccess, "Job %s is resubmitted.", data.JobName)})

	case "get_job_details":
		var data struct {
			JobName string `json:"job_name"`
		}
		if !decode(conn, req.Data, &data) {
			return
		}
		j, tasks, err := jc.service.JobDetails(ctx, user, data.JobName)
		if err != nil {
			sendMessages(conn, []common.Message{common.Msgf(common.LevelWarning, "Job %s no longer exists.", data.JobName)})
			return
		}

		taskRows := make([]map[string]any, len(tasks))
		for i, t := range tasks {
			taskRows[i] = map[string]any{
				"task_id":     t.DeadlineTaskID,
				"frame_list":  t.FrameList,
				"render_time": t.RenderTimeString,
				"cpu_usage":   t.CPUUsage,
				"cost":        t.Cost,
			}
		}
		conn.Send(map[string]any{
			"action": "job_details",
			"data": map[string]any{
				"name":   j.Name,
				"status": j.Status.Name,
				"cost":   j.Cost,
				"tasks":  taskRows,
			},
		})

	case "get_job_error_reports":
		var data struct {
			JobName string `json:"job_name"`
		}
		if !decode(conn, req.Data, &data) {
			return
		}
		reports, err := jc.service.JobErrorReports(ctx, user, data.JobName)
		if err != nil {
			sendMessages(conn, []common.Message{common.Msgf(common.LevelWarning, "Job %s no longer exists.", data.JobName)})
			return
		}

		rows := make([]map[string]any, len(reports))
		for i, known := range reports {
			rows[i] = map[string]any{
				"title":       known.Title,
				"description": known.Description,
				"solution":    known.Solution,
			}
		}
		conn.Send(map[string]any{
			"action": "job_error_reports",
			"data":   map[string]any{"job_name": data.JobName, "reports": rows},
		})

	default:
		sendMessages(conn, []common.Message{common.Msgf(common.LevelError, "Unknown action %q.", req.Action)})
	}
}

// decode unmarshals an action payload, flashing the same invalid
// request message a broken envelope gets.
func decode(conn *notify.Conn, raw json.RawMessage, into any) bool {
	if err := json.Unmarshal(raw, into); err != nil {
		sendMessages(conn, []common.Message{common.Msgf(common.LevelError, "Request is not valid.")})
		return false
	}
	return true
}

func sendMessages(conn *notify.Conn, msgs []common.Message) {
	if len(msgs) == 0 {
		return
	}
	conn.Send(map[string]any{"action": "messages", "messages": msgs})
}
