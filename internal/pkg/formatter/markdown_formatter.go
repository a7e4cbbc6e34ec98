package formatter

import (
	"bytes"
	"fmt"

	"github.com/heyverne/verne-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(book *entity.Book) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", bookTitle)

	for _, page := range book.Pages {
		fmt.Fprintf(&buf, "## Page %d\n\n%s\n\n", page.PageNumber, page.StoryText)
		if page.Panel1URL != nil {
			fmt.Fprintf(&buf, "![Page %d illustration](%s)\n\n", page.PageNumber, *page.Panel1URL)
		}
		if page.KidResponse != nil && *page.KidResponse != "" {
			fmt.Fprintf(&buf, "> You said: %q\n\n", *page.KidResponse)
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
