package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/realchief/RenderShotPanel/internal/config"
	"github.com/realchief/RenderShotPanel/internal/job"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/realchief/RenderShotPanel/internal/notify"
	"github.com/realchief/RenderShotPanel/middleware"
)

// SettingsStore is the slice of settings persistence the system socket
// needs to flip the system status.
type SettingsStore interface {
	Settings(ctx context.Context) (*models.Setting, error)
	SaveSetting(ctx context.Context, setting *models.Setting) error
}

// SystemConsumer is the farm bridge socket. Admin accounts join the
// admin group and may push correlation ids, statuses and the system
// status; everyone else joins the client group and only listens.
type SystemConsumer struct {
	hub      *notify.Hub
	service  job.JobServiceInterface
	settings SettingsStore
}

func NewSystemConsumer(hub *notify.Hub, service job.JobServiceInterface, settings SettingsStore) *SystemConsumer {
	return &SystemConsumer{hub: hub, service: service, settings: settings}
}

func (sc *SystemConsumer) Serve(c *gin.Context) {
	user := middleware.CurrentUser(c)

	group := config.GroupClient
	if user.IsSuperuser {
		group = config.GroupAdmin
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	conn := sc.hub.Register(user.ID, group, ws)
	defer sc.hub.Unregister(conn)

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return
		}
		if group != config.GroupAdmin {
			continue
		}

		var req request
		if err := json.Unmarshal(raw, &req); err != nil {
			continue
		}

		sc.handle(c.Request.Context(), &req)
	}
}

func (sc *SystemConsumer) handle(ctx context.Context, req *request) {
	switch req.Action {
	case "set_deadline_ids":
		var ids map[string]string
		if err := json.Unmarshal(req.Data, &ids); err != nil {
			return
		}
		for jobName, deadlineID := range ids {
			if err := sc.service.SetDeadlineID(ctx, jobName, deadlineID); err != nil {
				log.Printf("[ws] set deadline id for %q failed: %v", jobName, err)
			}
		}

	case "set_new_status":
		var data struct {
			JobName string `json:"job_name"`
			Status  string `json:"status"`
		}
		if err := json.Unmarshal(req.Data, &data); err != nil {
			return
		}
		if err := sc.service.SetStatusFromBackend(ctx, data.JobName, data.Status); err != nil {
			log.Printf("[ws] set status for %q failed: %v", data.JobName, err)
		}

	case "set_system_status":
		var data struct {
			Status models.SystemStatus `json:"status"`
		}
		if err := json.Unmarshal(req.Data, &data); err != nil {
			return
		}

		setting, err := sc.settings.Settings(ctx)
		if err != nil {
			log.Printf("[ws] loading settings failed: %v", err)
			return
		}
		if setting.SystemStatus == data.Status {
			return
		}

		setting.SystemStatus = data.Status
		if err := sc.settings.SaveSetting(ctx, setting); err != nil {
			log.Printf("[ws] saving system status failed: %v", err)
			return
		}

		// Connected client apps learn about maintenance windows live.
		sc.hub.Broadcast(config.GroupClient, map[string]any{
			"action": "system_status",
			"status": data.Status,
		})
	}
}
