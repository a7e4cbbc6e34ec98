package formatter

import (
	"bytes"
	"fmt"

	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(book *entity.Book) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(bookTitle)

	for _, page := range book.Pages {
		headerPar := doc.AddParagraph()
		headerPar.SetStyle("Heading2")
		headerPar.AddRun().AddText(fmt.Sprintf("Page %d", page.PageNumber))

		doc.AddParagraph().AddRun().AddText(page.StoryText)

		if page.KidResponse != nil && *page.KidResponse != "" {
			doc.AddParagraph().AddRun().AddText(fmt.Sprintf("You said: %q", *page.KidResponse))
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
