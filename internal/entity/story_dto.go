package entity

type NextPageRequest struct {
	SessionID        string   `json:"sessionId"`
	CurrentPage      *int     `json:"currentPage"`
	KidResponse      string   `json:"kidResponse,omitempty"`
	ResponseTime     int      `json:"responseTime,omitempty"` // milliseconds
	SuggestedOptions []string `json:"suggestedOptions,omitempty"`
}

type NextPageResponse struct {
	PageNumber         int      `json:"pageNumber"`
	StoryText          string   `json:"storyText"`
	AgentPrompt        string   `json:"agentPrompt,omitempty"`
	SuggestedOptions   []string `json:"suggestedOptions"`
	EducationalConcept string   `json:"educationalConcept"`
	Panel1Status       string   `json:"panel1Status"`
	ImageIDs           ImageIDs `json:"imageIds"`
	ChosenPlanet       string   `json:"chosenPlanet"`
}

// ImageIDs carries the generation task handles for a page. Only panel
// 1 is produced by the current flow.
type ImageIDs struct {
	Panel1 *string `json:"panel1"`
}

type PanelStatus struct {
	Panel    string     `json:"panel"`
	TaskID   string     `json:"taskId"`
	Status   TaskStatus `json:"status"`
	Progress int        `json:"progress"`
	URL      *string    `json:"url,omitempty"`
	Error    string     `json:"error,omitempty"`
}

type CheckImagesResponse struct {
	Images []PanelStatus `json:"images"`
}

type PageContentResponse struct {
	PageNumber         int      `json:"pageNumber"`
	EducationalConcept string   `json:"educationalConcept"`
	StoryText          string   `json:"storyText"`
	AgentPrompt        string   `json:"agentPrompt,omitempty"`
	SuggestedOptions   []string `json:"suggestedOptions"`
	DefaultChoice      string   `json:"defaultChoice,omitempty"`
}
