package dto

// SessionCreateRequest stages an opaque scene payload from the plugin.
type SessionCreateRequest struct {
	Data map[string]any `json:"data" validate:"required"`
}

// FileSelectRequest is the first wizard step: the user picked a source
// file and we open (or reuse) a staging session for it.
type FileSelectRequest struct {
	FileData map[string]any `json:"file_data" validate:"required"`
}

// SessionSubmitRequest is the configure step of the wizard turning a
// staged session into a job.
type SessionSubmitRequest struct {
	SourceFileName string         `json:"source_file_name" validate:"required"`
	RenderPlanID   uint           `json:"render_plan_id" validate:"required"`
	RenderEngine   string         `json:"render_engine"`
	FrameList      string         `json:"frame_list"`
	RenderOptions  map[string]any `json:"render_options"`
}

type SessionResponse struct {
	SessionID string         `json:"session_id"`
	User      string         `json:"user"`
	Data      map[string]any `json:"data,omitempty"`
}
