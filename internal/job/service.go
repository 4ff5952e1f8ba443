package job

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/realchief/RenderShotPanel/common"
	"github.com/realchief/RenderShotPanel/internal/config"
	"github.com/realchief/RenderShotPanel/internal/dto"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/realchief/RenderShotPanel/internal/notify"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobService struct {
	repo     JobRepoInterface
	users    UserRepoInterface
	sessions SessionRepoInterface
	storage  FileStorage
	notifier notify.Notifier
}

func NewJobService(
	repo JobRepoInterface,
	users UserRepoInterface,
	sessions SessionRepoInterface,
	storage FileStorage,
	notifier notify.Notifier,
) *JobService {
	return &JobService{repo: repo, users: users, sessions: sessions, storage: storage, notifier: notifier}
}

var _ JobServiceInterface = (*JobService)(nil)

// persist is the single save pipeline: the negative-balance rule, the
// write itself, status side effects, then event dispatch. Events go
// out only after the write succeeded and are best-effort from there.
func (s *JobService) persist(ctx context.Context, j *models.Job, prevStatus string, operator config.Operator, created bool) error {
	// A user in the red gets every non-deleted job parked, no matter
	// what this save was about.
	if j.Status.Name != config.StatusDeleted && j.Status.Name != config.StatusSuspended {
		balance, err := s.users.Balance(ctx, j.UserID)
		if err == nil && balance < 0 {
			if suspended, serr := s.repo.StatusByName(ctx, config.StatusSuspended); serr == nil {
				log.Printf("[job] suspending %q for negative balance %.2f", j.Name, balance)
				j.StatusID = suspended.ID
				j.Status = *suspended
			}
		}
	}

	if created {
		if err := s.repo.Create(ctx, j); err != nil {
			return err
		}
	} else if err := s.repo.Save(ctx, j); err != nil {
		return err
	}

	statusChanged := created || prevStatus != j.Status.Name
	if statusChanged {
		if err := s.statusSideEffects(ctx, j); err != nil {
			return err
		}
	}

	var events []notify.Event
	if created {
		events = append(events, liveJobEvent(j, "add_job"))
	} else {
		events = append(events, liveJobEvent(j, "update_job"))
	}
	if statusChanged {
		events = append(events, statusEvents(j, operator)...)
	}

	s.notifier.Dispatch(events...)
	return nil
}

// statusSideEffects applies the state mutations a new status carries
// beyond the status row itself.
func (s *JobService) statusSideEffects(ctx context.Context, j *models.Job) error {
	switch j.Status.Name {
	case config.StatusSubmitted:
		// The permanent job name embeds the row id; assigned exactly
		// once, right after the first insert.
		base := strings.TrimSuffix(j.Name, filepath.Ext(j.Name))
		j.Name = fmt.Sprintf("%s_%d", base, j.ID)
		if j.SessionID() == "" {
			if info, ok := j.Data["job_info"].(map[string]any); ok {
				info["job_name"] = base
			}
		}
		return s.repo.Save(ctx, j)

	case config.StatusFailed:
		j.Cost = 0
		return s.repo.Save(ctx, j)
	}

	return nil
}

// jobSchema assembles the opaque payload forwarded to the farm bridge.
func jobSchema(user *models.User, plan *models.RenderPlan, frameList []string, pluginInfo map[string]any, file map[string]any) datatypes.JSONMap {
	return datatypes.JSONMap{
		"system_info": map[string]any{
			"render_plan":  plan.Name,
			"username":     user.Username,
			"storage_type": "RenderShare",
		},
		"job_info": map[string]any{
			"job_name":      "",
			"job_type":      "",
			"chunk_size":    user.ChunkSizeOverride,
			"machine_limit": plan.MachineLimit,
			"priority":      plan.Priority,
			"frame_list":    frameList,
		},
		"plugin_info": pluginInfo,
		"file_info":   file,
	}
}

func (s *JobService) submittedStatus(ctx context.Context) (*models.JobStatus, error) {
	return s.repo.StatusByName(ctx, config.StatusSubmitted)
}

func (s *JobService) plan(ctx context.Context, user *models.User, planID uint) (*models.RenderPlan, error) {
	plan, err := s.repo.PlanByID(ctx, planID)
	if err != nil {
		return nil, common.Errf(http.StatusBadRequest, "selected render plan is not available")
	}
	if plan.AdminOnly && !user.IsSuperuser {
		return nil, common.Errf(http.StatusBadRequest, "selected render plan is not available")
	}
	return plan, nil
}

// Submit handles the classic web form: resolve the source file in the
// storage provider, validate user input, create the job in submitted.
func (s *JobService) Submit(ctx context.Context, user *models.User, req *dto.SubmitJobRequest) (*models.Job, error) {
	if err := ValidateFrameList(req.FrameList); err != nil {
		return nil, common.Errf(http.StatusBadRequest, "%s", err.Error())
	}
	for _, camera := range req.Cameras {
		if err := ValidateFileName(camera); err != nil {
			return nil, common.Errf(http.StatusBadRequest, "%s", err.Error())
		}
	}

	var fileInfo map[string]any
	var fileName string
	switch {
	case req.FilePath != "":
		meta, err := s.storage.FileMetadata(ctx, req.FilePath)
		if err != nil {
			return nil, common.Errf(http.StatusBadGateway, "source file could not be resolved")
		}
		link, err := s.storage.DownloadLink(ctx, req.FilePath)
		if err != nil {
			return nil, common.Errf(http.StatusBadGateway, "source file could not be resolved")
		}
		fileName = meta.Name
		fileInfo = map[string]any{
			"file_name": meta.Name, "id": meta.ID, "size": meta.Size,
			"relative_url": meta.Path, "absolute_url": link,
		}
	case req.FileLink != "":
		fileName = req.FileName
		fileInfo = map[string]any{
			"file_name": req.FileName, "id": req.FileID, "size": req.FileSize,
			"relative_url": "", "absolute_url": req.FileLink,
		}
	default:
		return nil, common.Errf(http.StatusBadRequest, "source file for the job is not selected or not a valid file")
	}

	if err := ValidateFileName(fileName); err != nil {
		return nil, common.Errf(http.StatusBadRequest, "%s", err.Error())
	}

	plan, err := s.plan(ctx, user, req.RenderPlanID)
	if err != nil {
		return nil, err
	}
	status, err := s.submittedStatus(ctx)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "job statuses are not configured")
	}

	pluginInfo := map[string]any{"cameras": req.Cameras}
	for k, v := range req.PluginInfo {
		pluginInfo[k] = v
	}

	j := &models.Job{
		UserID:       user.ID,
		User:         *user,
		Name:         fileName,
		FrameList:    datatypes.JSONSlice[string](req.FrameList),
		RenderPlanID: plan.ID,
		RenderPlan:   *plan,
		StatusID:     status.ID,
		Status:       *status,
		Data:         jobSchema(user, plan, req.FrameList, pluginInfo, fileInfo),
	}

	if err := s.persist(ctx, j, "", config.OperatorWebUser, true); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to submit job")
	}
	return j, nil
}

// SubmitFromPlugin accepts the desktop plugin's payload. The plugin is
// a cooperating client but its plan selection is still validated: the
// unlimited tier silently falls back for unauthorized accounts.
func (s *JobService) SubmitFromPlugin(ctx context.Context, user *models.User, req *dto.PluginSubmitRequest) (*models.Job, error) {
	sysInfo := req.Data.SystemInfo

	link, _ := sysInfo["link"].(string)
	if link == "" {
		return nil, common.Errf(http.StatusBadRequest, "source file link is missing")
	}
	fileName := filepath.Base(link)

	plan, err := s.repo.PlanByID(ctx, toUint(sysInfo["render_plan"]))
	if err != nil {
		return nil, common.Errf(http.StatusBadRequest, "selected render plan is not available")
	}
	if plan.Name == "unlimited" && user.RateMultiplier != 0 {
		log.Printf("[job] unlimited plan selected but not authorized for %q", user.Username)
		if fallback, ferr := s.repo.PlanByName(ctx, "animation_slow"); ferr == nil {
			plan = fallback
		}
	}

	frameList := buildFrameList(req.Data.JobInfo["Frames"])
	status, err := s.submittedStatus(ctx)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "job statuses are not configured")
	}

	fileInfo := map[string]any{
		"file_name": strings.TrimSuffix(fileName, filepath.Ext(fileName)),
		"id":        "", "size": "", "relative_url": link, "absolute_url": "",
	}

	j := &models.Job{
		UserID:       user.ID,
		User:         *user,
		Name:         strings.TrimSuffix(fileName, filepath.Ext(fileName)),
		FrameList:    datatypes.JSONSlice[string](frameList),
		RenderPlanID: plan.ID,
		RenderPlan:   *plan,
		StatusID:     status.ID,
		Status:       *status,
		Data:         jobSchema(user, plan, frameList, req.Data.PluginInfo, fileInfo),
	}

	if err := s.persist(ctx, j, "", config.OperatorAPI, true); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to submit job")
	}
	return j, nil
}

// SubmitFromSession turns a staged wizard session into a job.
func (s *JobService) SubmitFromSession(ctx context.Context, user *models.User, sessionID string, req *dto.SessionSubmitRequest) (*models.Job, error) {
	session, err := s.sessions.GetByUser(ctx, user.ID, sessionID)
	if err != nil {
		return nil, common.Errf(http.StatusBadRequest, "session data could not be fetched")
	}

	frameList := req.FrameList
	if frameList == "" {
		frameList = "0"
	}
	if err := ValidateFrameList(strings.Split(frameList, ",")); err != nil {
		return nil, common.Errf(http.StatusBadRequest, "%s", err.Error())
	}

	plan, err := s.plan(ctx, user, req.RenderPlanID)
	if err != nil {
		return nil, err
	}
	status, err := s.submittedStatus(ctx)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "job statuses are not configured")
	}

	data := datatypes.JSONMap{
		"session_id":    session.SessionID,
		"session_data":  map[string]any(session.Data),
		"render_engine": req.RenderEngine,
		"frame_list":    frameList,
		"render_plan":   plan.Name,
	}
	for k, v := range req.RenderOptions {
		data[k] = v
	}

	j := &models.Job{
		UserID:       user.ID,
		User:         *user,
		Name:         CleanJobName(req.SourceFileName),
		FrameList:    datatypes.JSONSlice[string]{frameList},
		RenderPlanID: plan.ID,
		RenderPlan:   *plan,
		StatusID:     status.ID,
		Status:       *status,
		Data:         data,
	}

	if err := s.persist(ctx, j, "", config.OperatorWebUser, true); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to submit job")
	}
	return j, nil
}

// Resubmit clones a finished job with a fresh frame list, after making
// sure the stored source link is still alive.
func (s *JobService) Resubmit(ctx context.Context, user *models.User, jobName, frameList string) (*models.Job, error) {
	j, err := s.ownedJob(ctx, user, jobName)
	if err != nil {
		return nil, err
	}

	if frameList == "" {
		return nil, common.Errf(http.StatusBadRequest, "entered frame list is not valid")
	}
	if err := ValidateFrameList(strings.Split(frameList, ",")); err != nil {
		return nil, common.Errf(http.StatusBadRequest, "entered frame list is not valid")
	}

	fileInfo, _ := j.Data["file_info"].(map[string]any)
	link, _ := fileInfo["absolute_url"].(string)
	if link != "" {
		if err := s.storage.CheckLink(ctx, link); err != nil {
			return nil, common.Errf(http.StatusBadRequest, "source file download link is expired")
		}
	}

	status, err := s.submittedStatus(ctx)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "job statuses are not configured")
	}

	name := j.Name
	if fileName, ok := fileInfo["file_name"].(string); ok && fileName != "" {
		name = fileName
	}

	clone := &models.Job{
		UserID:       user.ID,
		User:         *user,
		Name:         name,
		FrameList:    datatypes.JSONSlice[string]{frameList},
		RenderPlanID: j.RenderPlanID,
		RenderPlan:   j.RenderPlan,
		StatusID:     status.ID,
		Status:       *status,
		Data:         j.Data,
	}

	if err := s.persist(ctx, clone, "", config.OperatorWebUser, true); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to resubmit job")
	}
	return clone, nil
}

// ApplyCallback is the farm's report surface: status, progress,
// correlation id, error tags and task telemetry, all optional, all
// tolerated when malformed. The job row is the unit of mutation.
func (s *JobService) ApplyCallback(ctx context.Context, jobName string, cb *dto.BackendCallback) (*models.Job, error) {
	j, err := s.repo.GetByName(ctx, jobName)
	if err != nil {
		return nil, err
	}

	if j.Status.Name == config.StatusDeleted {
		log.Printf("[job] %q is already deleted, ignoring callback", j.Name)
		return j, nil
	}

	prevStatus := j.Status.Name

	if cb.Status != "" {
		// Unknown status names are skipped, not rejected.
		if target, terr := s.repo.StatusByName(ctx, cb.Status); terr == nil {
			if ResolveStatus(prevStatus, target.Name) == target.Name {
				j.StatusID = target.ID
				j.Status = *target
			} else {
				log.Printf("[job] dropping status %q for %q in %q", target.Name, j.Name, prevStatus)
			}
		}
	}

	if cb.Progress != 0 {
		j.Progress = cb.Progress
	}
	if cb.DeadlineID != "" {
		j.DeadlineID = cb.DeadlineID
	}

	if cb.TasksCount != nil && *cb.TasksCount != j.TasksCount {
		// Count discrepancy means the farm restructured the job; the
		// stored tasks no longer correspond to anything. Start over.
		log.Printf("[job] tasks discrepancy for %q : %d >> %d", j.Name, j.TasksCount, *cb.TasksCount)
		if err := s.repo.DeleteTasks(ctx, j.ID); err != nil {
			return nil, err
		}
		j.Cost = 0
		j.TasksCount = *cb.TasksCount
	}

	if len(cb.Errors) > 0 {
		s.matchErrorCatalog(ctx, j, cb.Errors)
	}

	if len(cb.Tasks) > 0 {
		reports := make(map[int]dto.TaskReport, len(cb.Tasks))
		for idStr, report := range cb.Tasks {
			id, convErr := strconv.Atoi(idStr)
			if convErr != nil {
				continue
			}
			reports[id] = report
		}

		for _, update := range BuildRollup(reports, j.RenderPlan.RatePerMin) {
			if err := s.repo.UpsertTask(ctx, j.ID, update); err != nil {
				return nil, err
			}
		}

		// Recompute from the persisted rows so a re-reported task
		// replaces its prior contribution instead of stacking on it.
		tasks, err := s.repo.TasksByJob(ctx, j.ID)
		if err != nil {
			return nil, err
		}
		var total float64
		for _, task := range tasks {
			total += task.Cost
		}
		if j.IsGPU() {
			total *= config.GPUSurcharge
		}
		j.Cost = total
	}

	if err := s.persist(ctx, j, prevStatus, config.OperatorAPI, false); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *JobService) matchErrorCatalog(ctx context.Context, j *models.Job, reported map[string]string) {
	catalog, err := s.repo.ErrorCatalog(ctx)
	if err != nil {
		log.Printf("[job] error catalog unavailable: %v", err)
		return
	}

	seen := map[uint]bool{}
	for _, already := range j.Errors {
		seen[already.ID] = true
	}
	var matched []models.JobError
	for _, message := range reported {
		for _, known := range catalog {
			if known.Pattern == "" || seen[known.ID] {
				continue
			}
			if strings.Contains(message, known.Pattern) {
				seen[known.ID] = true
				matched = append(matched, known)
			}
		}
	}

	if len(matched) == 0 {
		return
	}
	if err := s.repo.AddErrors(ctx, j, matched); err != nil {
		log.Printf("[job] attaching %d error reports to %q failed: %v", len(matched), j.Name, err)
	}
}

// SetDeadlineID records the farm's correlation id for a job.
func (s *JobService) SetDeadlineID(ctx context.Context, jobName, deadlineID string) error {
	j, err := s.repo.GetByName(ctx, jobName)
	if err != nil {
		return err
	}
	if deadlineID == "" {
		return nil
	}

	prev := j.Status.Name
	j.DeadlineID = deadlineID
	return s.persist(ctx, j, prev, config.OperatorBackend, false)
}

// SetStatusFromBackend applies a status pushed over the system socket,
// through the same transition rules as the callback surface.
func (s *JobService) SetStatusFromBackend(ctx context.Context, jobName, statusName string) error {
	j, err := s.repo.GetByName(ctx, jobName)
	if err != nil {
		return err
	}
	if j.Status.Name == config.StatusDeleted {
		return nil
	}

	target, err := s.repo.StatusByName(ctx, statusName)
	if err != nil {
		return nil
	}

	prev := j.Status.Name
	if ResolveStatus(prev, target.Name) != target.Name {
		return nil
	}

	j.StatusID = target.ID
	j.Status = *target
	return s.persist(ctx, j, prev, config.OperatorBackend, false)
}

func (s *JobService) GetJob(ctx context.Context, name string) (*models.Job, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *JobService) ListJobs(ctx context.Context, user *models.User) (*dto.JobListResponse, error) {
	jobs, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to list jobs")
	}

	resp := &dto.JobListResponse{Jobs: make([]dto.JobResponse, len(jobs))}
	for i := range jobs {
		resp.Jobs[i] = ToJobResponse(&jobs[i], false)
	}

	resp.CountAll = int64(len(jobs))
	resp.CountRendering, _ = s.repo.CountByUserStatus(ctx, user.ID, config.StatusRendering)
	resp.CountCompleted, _ = s.repo.CountByUserStatus(ctx, user.ID, config.StatusCompleted)
	resp.CountFailed, _ = s.repo.CountByUserStatus(ctx, user.ID, config.StatusFailed)
	resp.Balance, _ = s.users.Balance(ctx, user.ID)
	return resp, nil
}

func (s *JobService) JobDetails(ctx context.Context, user *models.User, jobName string) (*models.Job, []models.JobTask, error) {
	j, err := s.ownedJob(ctx, user, jobName)
	if err != nil {
		return nil, nil, err
	}

	tasks, err := s.repo.TasksByJob(ctx, j.ID)
	if err != nil {
		return nil, nil, common.Errf(http.StatusInternalServerError, "failed to load job tasks")
	}
	return j, tasks, nil
}

// JobErrorReports returns the catalog entries matched against a job's
// farm error output, with the curated title and solution text.
func (s *JobService) JobErrorReports(ctx context.Context, user *models.User, jobName string) ([]models.JobError, error) {
	j, err := s.ownedJob(ctx, user, jobName)
	if err != nil {
		return nil, err
	}
	return j.Errors, nil
}

func (s *JobService) OutputURL(ctx context.Context, user *models.User, jobName string) (string, error) {
	if jobName == "" {
		return "#", nil
	}
	j, err := s.ownedJob(ctx, user, jobName)
	if err != nil {
		return "#", nil
	}

	url, err := s.storage.OutputLink(ctx, user.Username, j.Name)
	if err != nil {
		return "#", nil
	}
	return url, nil
}

// ChangeStatus applies a user-requested status to a batch of owned
// jobs. Capability gating failures degrade to warnings, never errors.
func (s *JobService) ChangeStatus(ctx context.Context, user *models.User, jobNames []string, target string) []common.Message {
	var msgs []common.Message

	targetStatus, err := s.repo.StatusByName(ctx, target)
	if err != nil {
		return append(msgs, common.Msgf(common.LevelError, "Requested status is not recognized."))
	}

	for _, name := range jobNames {
		if name == "" {
			continue
		}

		j, jerr := s.repo.GetByName(ctx, name)
		if jerr != nil || j.UserID != user.ID {
			msgs = append(msgs, common.Msgf(common.LevelWarning, "Job %s no longer exists.", name))
			continue
		}
		if j.Status.Name == targetStatus.Name {
			msgs = append(msgs, common.Msgf(common.LevelWarning, "Job is already %s.", targetStatus.DisplayName))
			continue
		}

		if target == config.StatusDeleted && !j.Status.IsDeletable {
			msgs = append(msgs, common.Msgf(common.LevelWarning, "Job %s can not be %s at this point.", j.Name, targetStatus.DisplayName))
			continue
		}
		if target == config.StatusSuspending && !j.Status.IsSuspendable {
			msgs = append(msgs, common.Msgf(common.LevelWarning, "Job %s can not be %s at this point.", j.Name, targetStatus.DisplayName))
			continue
		}

		prev := j.Status.Name
		j.StatusID = targetStatus.ID
		j.Status = *targetStatus
		if perr := s.persist(ctx, j, prev, config.OperatorWebUser, false); perr != nil {
			msgs = append(msgs, common.Msgf(common.LevelError, "Job %s could not be updated.", j.Name))
			continue
		}
		msgs = append(msgs, common.Msgf(common.LevelSuccess, "Job %s is %s.", j.Name, targetStatus.DisplayName))
	}

	return msgs
}

// PauseResume toggles: suspendable jobs start suspending, suspended
// jobs start resuming.
func (s *JobService) PauseResume(ctx context.Context, user *models.User, jobNames []string) []common.Message {
	if len(jobNames) == 0 {
		return nil
	}

	first, err := s.repo.GetByName(ctx, jobNames[0])
	if err != nil || first.UserID != user.ID {
		return []common.Message{common.Msgf(common.LevelWarning, "Job %s no longer exists.", jobNames[0])}
	}

	switch {
	case first.Status.IsSuspendable:
		return s.ChangeStatus(ctx, user, jobNames, config.StatusSuspending)
	case first.Status.Name == config.StatusSuspended:
		return s.ChangeStatus(ctx, user, jobNames, config.StatusResuming)
	}

	return []common.Message{common.Msgf(common.LevelWarning, "Job %s can not be paused or resumed at this point.", first.Name)}
}

func (s *JobService) ChangePlan(ctx context.Context, user *models.User, jobName string, planID uint) []common.Message {
	j, err := s.ownedJob(ctx, user, jobName)
	if err != nil {
		return []common.Message{common.Msgf(common.LevelWarning, "Job %s no longer exists.", jobName)}
	}

	if !j.Status.IsUpgradable {
		return []common.Message{common.Msgf(common.LevelWarning, "Job %s plan can not be changed at this point.", j.Name)}
	}

	plan, perr := s.plan(ctx, user, planID)
	if perr != nil {
		return []common.Message{common.Msgf(common.LevelWarning, "Selected render plan is not available.")}
	}

	prev := j.Status.Name
	j.RenderPlanID = plan.ID
	j.RenderPlan = *plan
	if err := s.persist(ctx, j, prev, config.OperatorWebUser, false); err != nil {
		return []common.Message{common.Msgf(common.LevelError, "Job %s could not be updated.", j.Name)}
	}

	s.notifier.Dispatch(planChangedEvents(j)...)
	return []common.Message{common.Msgf(common.LevelSuccess, "Plan changed to %s.", plan.DisplayName)}
}

func (s *JobService) CreateSession(ctx context.Context, user *models.User, data map[string]any) (*models.SubmitSession, error) {
	session := &models.SubmitSession{
		UserID:    user.ID,
		SessionID: uuid.NewString(),
		Data:      datatypes.JSONMap(data),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to create submit session")
	}
	return session, nil
}

func (s *JobService) GetSession(ctx context.Context, user *models.User, sessionID string) (*models.SubmitSession, error) {
	session, err := s.sessions.GetByUser(ctx, user.ID, sessionID)
	if err != nil {
		return nil, common.Errf(http.StatusNotFound, "session data could not be fetched")
	}
	return session, nil
}

// SelectFile is the first wizard step. Plugin-packaged scenes already
// have a session keyed by package path; reuse it when the picked file
// matches, otherwise stage a fresh one.
func (s *JobService) SelectFile(ctx context.Context, user *models.User, fileData map[string]any) (*models.SubmitSession, error) {
	relativeURL, _ := fileData["relative_url"].(string)

	if relativeURL != "" {
		sessions, err := s.sessions.ListByUser(ctx, user.ID)
		if err == nil {
			for i := range sessions {
				packagePath, _ := sessions[i].Data["package_path"].(string)
				if packagePath != "" && filepath.Base(packagePath) == filepath.Base(relativeURL) {
					return &sessions[i], nil
				}
			}
		}
	}

	return s.CreateSession(ctx, user, map[string]any{"file_data": fileData})
}

// ListSourceFiles lists the user's uploaded scene files for the select
// step. Files whose names the farm would reject are flagged as not
// downloadable rather than hidden.
func (s *JobService) ListSourceFiles(ctx context.Context, user *models.User, exts []string) ([]dto.SourceFileResponse, error) {
	if len(exts) == 0 {
		exts = []string{config.SceneFileExt}
	}

	files, err := s.storage.ListSourceFiles(ctx, user.Username, exts)
	if err != nil {
		return nil, common.Errf(http.StatusBadGateway, "source files could not be listed")
	}

	out := make([]dto.SourceFileResponse, len(files))
	for i, meta := range files {
		out[i] = dto.SourceFileResponse{
			ID:           meta.ID,
			Name:         meta.Name,
			Size:         meta.Size,
			Path:         meta.Path,
			Downloadable: ValidateFileName(meta.Name) == nil,
		}
	}
	return out, nil
}

func (s *JobService) ownedJob(ctx context.Context, user *models.User, name string) (*models.Job, error) {
	j, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.Errf(http.StatusNotFound, "job not found")
		}
		return nil, common.Errf(http.StatusInternalServerError, "failed to get job")
	}
	if j.UserID != user.ID && !user.IsSuperuser {
		return nil, common.Errf(http.StatusNotFound, "job not found")
	}
	return j, nil
}

// ToJobResponse flattens related rows the way API clients expect.
func ToJobResponse(j *models.Job, includeData bool) dto.JobResponse {
	resp := dto.JobResponse{
		ID:         j.ID,
		Name:       j.Name,
		User:       j.User.Username,
		Status:     j.Status.Name,
		RenderPlan: j.RenderPlan.Name,
		FrameList:  []string(j.FrameList),
		Progress:   j.Progress,
		DeadlineID: j.DeadlineID,
		TasksCount: j.TasksCount,
		Cost:       j.Cost,
		CreatedAt:  j.CreatedAt,
		UpdatedAt:  j.UpdatedAt,
	}
	if includeData {
		resp.Data = map[string]any(j.Data)
	}
	return resp
}

func buildFrameList(frames any) []string {
	switch v := frames.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case []string:
		return v
	case string:
		return strings.Split(v, ",")
	}
	return nil
}

func toUint(v any) uint {
	switch n := v.(type) {
	case float64:
		return uint(n)
	case int:
		return uint(n)
	case string:
		parsed, err := strconv.ParseUint(n, 10, 32)
		if err != nil {
			return 0
		}
		return uint(parsed)
	}
	return 0
}
