package job

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/realchief/RenderShotPanel/common"
	"github.com/realchief/RenderShotPanel/internal/dto"
	"github.com/realchief/RenderShotPanel/middleware"
)

type JobHandler struct {
	service JobServiceInterface
}

func NewJobHandler(s JobServiceInterface) *JobHandler {
	return &JobHandler{service: s}
}

var _ JobHandlerInterface = (*JobHandler)(nil)

// Get handles HTTP requests to fetch a job by name. Backend callers
// get the full payload; owners get the flattened summary.
func (h *JobHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	j, err := h.service.GetJob(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, common.APIError{Message: "Job not found"})
		return
	}
	if j.UserID != user.ID && !user.IsSuperuser {
		c.JSON(http.StatusNotFound, common.APIError{Message: "Job not found"})
		return
	}

	c.JSON(http.StatusOK, ToJobResponse(j, user.IsSuperuser))
}

// Submit handles the desktop plugin's job submission.
func (h *JobHandler) Submit(c *gin.Context) {
	var req dto.PluginSubmitRequest
	if !middleware.Bind(c, &req) {
		return
	}

	j, err := h.service.SubmitFromPlugin(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToJobResponse(j, false))
}

// Callback receives farm progress reports. Every field of the body is
// optional and the handler always answers with the job's final state.
func (h *JobHandler) Callback(c *gin.Context) {
	var cb dto.BackendCallback
	if !middleware.Bind(c, &cb) {
		return
	}

	user := middleware.CurrentUser(c)
	if !user.IsSuperuser {
		c.Error(common.Errf(http.StatusForbidden, "callback is restricted to backend accounts"))
		return
	}

	j, err := h.service.ApplyCallback(c.Request.Context(), c.Param("name"), &cb)
	if err != nil {
		c.JSON(http.StatusNotFound, common.APIError{Message: "Job not found"})
		return
	}

	c.JSON(http.StatusOK, ToJobResponse(j, true))
}

// List returns the caller's jobs with the dashboard counters.
func (h *JobHandler) List(c *gin.Context) {
	resp, err := h.service.ListJobs(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// WebSubmit handles the classic web submission form.
func (h *JobHandler) WebSubmit(c *gin.Context) {
	var req dto.SubmitJobRequest
	if !middleware.Bind(c, &req) {
		return
	}

	j, err := h.service.Submit(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToJobResponse(j, false))
}

func (h *JobHandler) Resubmit(c *gin.Context) {
	var req dto.ResubmitRequest
	if !middleware.Bind(c, &req) {
		return
	}

	j, err := h.service.Resubmit(c.Request.Context(), middleware.CurrentUser(c), c.Param("name"), req.FrameList)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToJobResponse(j, false))
}

// Output resolves the job's output folder link. Failures come back as
// a dead "#" link instead of an error so the UI can always render the
// button.
func (h *JobHandler) Output(c *gin.Context) {
	url, _ := h.service.OutputURL(c.Request.Context(), middleware.CurrentUser(c), c.Param("name"))
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Files lists the caller's uploaded scene files for the select step.
// Extensions come from the ext query parameter, defaulting to packaged
// scenes.
func (h *JobHandler) Files(c *gin.Context) {
	files, err := h.service.ListSourceFiles(c.Request.Context(), middleware.CurrentUser(c), c.QueryArray("ext"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (h *JobHandler) CreateSession(c *gin.Context) {
	var req dto.SessionCreateRequest
	if !middleware.Bind(c, &req) {
		return
	}

	session, err := h.service.CreateSession(c.Request.Context(), middleware.CurrentUser(c), req.Data)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.SessionResponse{
		SessionID: session.SessionID,
		User:      middleware.CurrentUser(c).Username,
		Data:      session.Data,
	})
}

func (h *JobHandler) GetSession(c *gin.Context) {
	session, err := h.service.GetSession(c.Request.Context(), middleware.CurrentUser(c), c.Param("session_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		SessionID: session.SessionID,
		User:      middleware.CurrentUser(c).Username,
		Data:      session.Data,
	})
}

// SubmitSession is the configure step of the wizard: a staged session
// plus the render settings becomes a job.
func (h *JobHandler) SubmitSession(c *gin.Context) {
	var req dto.SessionSubmitRequest
	if !middleware.Bind(c, &req) {
		return
	}

	j, err := h.service.SubmitFromSession(c.Request.Context(), middleware.CurrentUser(c), c.Param("session_id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToJobResponse(j, false))
}

func (h *JobHandler) SelectFile(c *gin.Context) {
	var req dto.FileSelectRequest
	if !middleware.Bind(c, &req) {
		return
	}

	session, err := h.service.SelectFile(c.Request.Context(), middleware.CurrentUser(c), req.FileData)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		SessionID: session.SessionID,
		User:      middleware.CurrentUser(c).Username,
		Data:      session.Data,
	})
}
