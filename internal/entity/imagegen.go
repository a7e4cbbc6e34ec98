package entity

import "time"

type TaskStatus string

const (
	TaskStatusGenerating TaskStatus = "generating"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// ImageTask is the transient job record for one illustration request.
// Tasks live only in the in-process store and expire after the
// configured TTL; they do not survive a restart.
type ImageTask struct {
	ID        string     `json:"taskId"`
	Status    TaskStatus `json:"status"`
	Progress  int        `json:"progress"`
	URL       string     `json:"url,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Wire types for the multimodal generation endpoint.

type GenerateContentRequest struct {
	Contents []GenerateContent `json:"contents"`
}

type GenerateContent struct {
	Role  string         `json:"role"`
	Parts []GeneratePart `json:"parts"`
}

type GeneratePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

type GenerateContentResponse struct {
	Candidates []GenerateCandidate `json:"candidates"`
}

type GenerateCandidate struct {
	Content GenerateContent `json:"content"`
}
