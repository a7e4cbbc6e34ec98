package entity

import (
	"time"
)

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
)

type InteractionType string

const (
	InteractionVoiceInput  InteractionType = "voice_input"
	InteractionSilence     InteractionType = "silence"
	InteractionPhotoUpload InteractionType = "photo_upload"
	InteractionDefaultPath InteractionType = "default_path"
)

func (t InteractionType) Validate() error {
	switch t {
	case InteractionVoiceInput, InteractionSilence, InteractionPhotoUpload, InteractionDefaultPath:
		return nil
	default:
		return ErrInvalidInteractionType
	}
}

// Story pages run 1 through 5; page 1 is the photo/intro beat and
// page 5 is the conclusion. A fresh session sits on page 0, so the
// first turn (0 to 1) writes the page 1 record.
const (
	FirstPage = 1
	LastPage  = 5
)

// Session is one child's complete play-through.
type Session struct {
	ID            string        `db:"id" json:"id"`
	StoryType     string        `db:"story_type" json:"story_type"`
	KidPhotoURL   *string       `db:"kid_photo_url" json:"kid_photo_url,omitempty"`
	Status        SessionStatus `db:"status" json:"status"`
	ShareableLink *string       `db:"shareable_link" json:"shareable_link,omitempty"`
	CurrentPage   int           `db:"current_page" json:"current_page"`
	ChosenPlanet  string        `db:"chosen_planet" json:"chosen_planet"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	CompletedAt   *time.Time    `db:"completed_at" json:"completed_at,omitempty"`
}

// StoryPage is one narrative beat written during a session.
// Panel URLs start empty and are filled in once image generation
// completes. Panel 2 is a legacy slot from the two-panel layout and
// is never populated by the current flow.
type StoryPage struct {
	ID                   int64      `db:"id" json:"id"`
	SessionID            string     `db:"session_id" json:"session_id"`
	PageNumber           int        `db:"page_number" json:"page_number"`
	EducationalConcept   string     `db:"educational_concept" json:"educational_concept"`
	StoryText            string     `db:"story_text" json:"story_text"`
	AgentPrompt          *string    `db:"agent_prompt" json:"agent_prompt,omitempty"`
	KidResponse          *string    `db:"kid_response" json:"kid_response,omitempty"`
	KidResponseTimestamp *time.Time `db:"kid_response_timestamp" json:"kid_response_timestamp,omitempty"`
	Panel1URL            *string    `db:"panel_1_url" json:"panel_1_url,omitempty"`
	Panel2URL            *string    `db:"panel_2_url" json:"panel_2_url,omitempty"`
	TimeSpentSeconds     int        `db:"time_spent_seconds" json:"time_spent_seconds"`
}

// Interaction is one append-only audit row; several per page are fine.
type Interaction struct {
	ID              int64           `db:"id" json:"id"`
	SessionID       string          `db:"session_id" json:"session_id"`
	PageNumber      *int            `db:"page_number" json:"page_number,omitempty"`
	InteractionType InteractionType `db:"interaction_type" json:"interaction_type"`
	UserInput       *string         `db:"user_input" json:"user_input,omitempty"`
	ResponseTimeMs  int             `db:"response_time_ms" json:"response_time_ms"`
	Timestamp       time.Time       `db:"timestamp" json:"timestamp"`
}

// Choice records the classified outcome of one decision point.
type Choice struct {
	ID               int64     `db:"id" json:"id"`
	SessionID        string    `db:"session_id" json:"session_id"`
	PageNumber       int       `db:"page_number" json:"page_number"`
	SuggestedOptions string    `db:"suggested_options" json:"suggested_options"` // JSON array
	KidChoice        string    `db:"kid_choice" json:"kid_choice"`
	WasDefault       bool      `db:"was_default" json:"was_default"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// Metric is a free-form analytics value persisted per session.
type Metric struct {
	ID          int64     `db:"id" json:"id"`
	SessionID   string    `db:"session_id" json:"session_id"`
	MetricName  string    `db:"metric_name" json:"metric_name"`
	MetricValue string    `db:"metric_value" json:"metric_value"` // JSON
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// SessionStats is the aggregate row backing the dashboard header.
type SessionStats struct {
	TotalSessions     int      `db:"total_sessions"`
	CompletedSessions int      `db:"completed_sessions"`
	AvgSessionTimeSec *float64 `db:"avg_session_time"`
}
