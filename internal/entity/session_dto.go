package entity

import "time"

type CreateSessionRequest struct {
	StoryType string `json:"storyType"`
}

type CreateSessionResponse struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

type UploadPhotoResponse struct {
	SessionID string `json:"sessionId"`
	PhotoURL  string `json:"photoUrl"`
}

type SessionDetailResponse struct {
	Session      *Session       `json:"session"`
	Pages        []*StoryPage   `json:"pages"`
	Choices      []*Choice      `json:"choices"`
	Interactions []*Interaction `json:"interactions"`
}

type CompleteSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
