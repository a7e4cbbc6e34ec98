package entity

import "time"

type GenerateBookRequest struct {
	SessionID string `json:"sessionId"`
}

type GenerateBookResponse struct {
	SessionID     string    `json:"sessionId"`
	ShareableLink string    `json:"shareableLink"`
	Pages         int       `json:"pages"`
	CompletedAt   time.Time `json:"completedAt"`
}

type BookPage struct {
	PageNumber         int     `json:"pageNumber"`
	StoryText          string  `json:"storyText"`
	EducationalConcept string  `json:"educationalConcept"`
	Panel1URL          *string `json:"panel1Url"`
	Panel2URL          *string `json:"panel2Url"`
	KidResponse        *string `json:"kidResponse"`
}

type BookChoice struct {
	PageNumber int    `json:"pageNumber"`
	Choice     string `json:"choice"`
	WasDefault bool   `json:"wasDefault"`
}

// Book is the assembled, shareable play-through.
type Book struct {
	SessionID   string       `json:"sessionId"`
	StoryType   string       `json:"storyType"`
	KidPhotoURL *string      `json:"kidPhotoUrl"`
	CreatedAt   time.Time    `json:"createdAt"`
	CompletedAt *time.Time   `json:"completedAt"`
	Pages       []BookPage   `json:"pages"`
	Choices     []BookChoice `json:"choices"`
	TotalPages  int          `json:"totalPages"`
}

type BookResponse struct {
	Book *Book `json:"book"`
}

type BookFormat string

const (
	BookFormatMarkdown BookFormat = "markdown"
	BookFormatPDF      BookFormat = "pdf"
	BookFormatDOCX     BookFormat = "docx"
)

func (f BookFormat) IsValid() bool {
	switch f {
	case BookFormatMarkdown, BookFormatPDF, BookFormatDOCX:
		return true
	}
	return false
}
