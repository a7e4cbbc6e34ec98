package entity

type TrackInteractionRequest struct {
	SessionID       string          `json:"sessionId"`
	PageNumber      *int            `json:"pageNumber,omitempty"`
	InteractionType InteractionType `json:"interactionType"`
	UserInput       string          `json:"userInput,omitempty"`
	ResponseTimeMs  int             `json:"responseTimeMs,omitempty"`
}

type TrackInteractionResponse struct {
	Success bool `json:"success"`
}

type ChoiceCount struct {
	Choice string `json:"choice"`
	Count  int    `json:"count"`
}

// ParentMetrics summarizes engagement for the parent dashboard.
type ParentMetrics struct {
	FavoriteChoices []ChoiceCount `json:"favoriteChoices"`
	AvgResponseTime int           `json:"avgResponseTime"` // milliseconds
	TotalEngagement int           `json:"totalEngagement"`
	EngagementLevel string        `json:"engagementLevel"`
}

// TeacherMetrics summarizes learning coverage for the teacher dashboard.
type TeacherMetrics struct {
	ConceptCoverage map[string]int `json:"conceptCoverage"`
	AvgWordCount    float64        `json:"avgWordCount"`
	TotalResponses  int            `json:"totalResponses"`
	VocabularyLevel string         `json:"vocabularyLevel"`
}

// PsychologistMetrics summarizes decision-making patterns.
type PsychologistMetrics struct {
	DecisionPattern string  `json:"decisionPattern"`
	CreativeChoices int     `json:"creativeChoices"`
	DefaultChoices  int     `json:"defaultChoices"`
	SilencePeriods  int     `json:"silencePeriods"`
	HesitationRate  float64 `json:"hesitationRate"`
	ConfidenceLevel string  `json:"confidenceLevel"`
}

type DashboardResponse struct {
	TotalSessions       int                 `json:"totalSessions"`
	CompletedSessions   int                 `json:"completedSessions"`
	CompletionRate      float64             `json:"completionRate"`
	AvgSessionTime      float64             `json:"avgSessionTime"` // seconds
	ParentMetrics       ParentMetrics       `json:"parentMetrics"`
	TeacherMetrics      TeacherMetrics      `json:"teacherMetrics"`
	PsychologistMetrics PsychologistMetrics `json:"psychologistMetrics"`
}

type PageTime struct {
	Page      int `json:"page"`
	TimeSpent int `json:"timeSpent"` // seconds
}

type SessionMetrics struct {
	TotalInteractions int        `json:"totalInteractions"`
	VoiceInputs       int        `json:"voiceInputs"`
	SilencePeriods    int        `json:"silencePeriods"`
	AvgResponseTime   int        `json:"avgResponseTime"` // milliseconds
	ChoicesMade       int        `json:"choicesMade"`
	DefaultChoices    int        `json:"defaultChoices"`
	CreativeChoices   int        `json:"creativeChoices"`
	PagesCompleted    int        `json:"pagesCompleted"`
	TimeSpentPerPage  []PageTime `json:"timeSpentPerPage"`
}

type SessionAnalyticsResponse struct {
	Session      *Session       `json:"session"`
	Metrics      SessionMetrics `json:"metrics"`
	Interactions []*Interaction `json:"interactions"`
	Choices      []*Choice      `json:"choices"`
	Pages        []*StoryPage   `json:"pages"`
}
