package formatter

import (
	"fmt"

	"github.com/heyverne/verne-backend/internal/entity"
)

const bookTitle = "My Space Adventure"

// Formatter renders an assembled book into a downloadable document.
type Formatter interface {
	Format(book *entity.Book) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.BookFormat) (Formatter, error) {
	switch format {
	case entity.BookFormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.BookFormatPDF:
		return NewPDFFormatter(), nil
	case entity.BookFormatDOCX:
		return NewDOCXFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
