package types

// Status constants for API responses
const (
	StatusOK     = "ok"
	StatusError  = "error"
	StatusReady  = "ready"
	StatusFailed = "failed"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`            // One of the Status constants above
	Message string `json:"message,omitempty"` // Human-readable message
}

// ContestSummary describes one contest folder in list responses
type ContestSummary struct {
	Name         string `json:"name"`
	Valid        bool   `json:"valid"`
	Reason       string `json:"reason,omitempty"` // Why the folder is unusable
	AudioFiles   int    `json:"audio_files"`
	ContactCount int    `json:"contact_count"`
}

// ContestsResponse for the contest list endpoint
type ContestsResponse struct {
	BaseResponse
	Contests []ContestSummary `json:"contests"`
	Count    int              `json:"count"`
}

// AudioFileInfo describes one recording within a contest timeline
type AudioFileInfo struct {
	FileID          string  `json:"file_id"`
	OrderIndex      int     `json:"order_index"`
	DurationSeconds float64 `json:"duration_seconds"`
	StartSeconds    float64 `json:"start_seconds"` // Offset on the virtual timeline
}

// ContestDetailResponse for the single contest endpoint
type ContestDetailResponse struct {
	BaseResponse
	Name              string          `json:"name"`
	RecordingStartUTC string          `json:"recording_start_utc"`
	ContestStartUTC   string          `json:"contest_start_utc"`
	PreSeconds        float64         `json:"pre_seconds"`
	ContactCount      int             `json:"contact_count"`
	TotalSeconds      float64         `json:"total_seconds"`
	AudioFiles        []AudioFileInfo `json:"audio_files"`
}

// ContactEntry is one log contact with its resolved playback position
type ContactEntry struct {
	Index      int     `json:"index"`
	Timestamp  string  `json:"timestamp_utc"`
	Frequency  string  `json:"frequency"`
	Mode       string  `json:"mode"`
	TheirCall  string  `json:"their_call"`
	SentExch   string  `json:"sent_exchange"`
	RcvdExch   string  `json:"received_exchange"`
	Mapped     bool    `json:"mapped"`
	Reason     string  `json:"reason,omitempty"` // Set when the contact is outside the audio
	FileID     string  `json:"file_id,omitempty"`
	FileOffset float64 `json:"file_offset_seconds,omitempty"`
	Offset     float64 `json:"offset_seconds,omitempty"` // Position on the virtual timeline
}

// ContactsResponse for the contact list endpoint
type ContactsResponse struct {
	BaseResponse
	Contest  string         `json:"contest"`
	Contacts []ContactEntry `json:"contacts"`
	Count    int            `json:"count"`
}

// ExportResponse describes one snippet export
type ExportResponse struct {
	UUID         string  `json:"uuid"`
	ContestName  string  `json:"contest_name"`
	StartIndex   int     `json:"start_index"`
	EndIndex     int     `json:"end_index"`
	ContactCount int     `json:"contact_count"`
	StartOffset  float64 `json:"start_offset_seconds"`
	EndOffset    float64 `json:"end_offset_seconds"`
	Duration     float64 `json:"duration_seconds,omitempty"`
	SizeBytes    int64   `json:"size_bytes,omitempty"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// ExportsResponse for export list responses
type ExportsResponse struct {
	BaseResponse
	Exports []ExportResponse `json:"exports"`
	Count   int              `json:"count"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Version  string                 `json:"version,omitempty"`
	Services map[string]interface{} `json:"services,omitempty"`
}
