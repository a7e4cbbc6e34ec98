package formatter

import (
	"testing"
	"time"

	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBook() *entity.Book {
	panel := "/uploads/img-1.png"
	response := "Jupiter!"
	return &entity.Book{
		SessionID: "sess-1",
		StoryType: "space_adventure",
		CreatedAt: time.Now(),
		Pages: []entity.BookPage{
			{PageNumber: 1, StoryText: "Hi! I'm Captain Verne!", EducationalConcept: "introduction"},
			{PageNumber: 2, StoryText: "Blasting off from Earth.", EducationalConcept: "solar_system_planets", Panel1URL: &panel, KidResponse: &response},
		},
		Choices: []entity.BookChoice{
			{PageNumber: 2, Choice: "Jupiter", WasDefault: false},
		},
		TotalPages: 2,
	}
}

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	for _, format := range []entity.BookFormat{entity.BookFormatMarkdown, entity.BookFormatPDF, entity.BookFormatDOCX} {
		f, err := factory.Create(format)
		require.NoError(t, err)
		assert.NotEmpty(t, f.ContentType())
		assert.NotEmpty(t, f.FileExtension())
	}

	_, err := factory.Create("epub")
	assert.Error(t, err)
}

func TestMarkdownFormatter(t *testing.T) {
	f := NewMarkdownFormatter()

	data, err := f.Format(sampleBook())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "# "+bookTitle)
	assert.Contains(t, out, "## Page 1")
	assert.Contains(t, out, "Hi! I'm Captain Verne!")
	assert.Contains(t, out, "(/uploads/img-1.png)")
	assert.Contains(t, out, "You said:")
	assert.Equal(t, ".md", f.FileExtension())
}

func TestPDFFormatterProducesDocument(t *testing.T) {
	f := NewPDFFormatter()

	data, err := f.Format(sampleBook())
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(data), 5)
	assert.Equal(t, "%PDF-", string(data[:5]))
	assert.Equal(t, ".pdf", f.FileExtension())
}

func TestDOCXFormatterProducesDocument(t *testing.T) {
	f := NewDOCXFormatter()

	data, err := f.Format(sampleBook())
	require.NoError(t, err)

	// DOCX files are zip archives; check the magic bytes.
	require.GreaterOrEqual(t, len(data), 2)
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
	assert.Equal(t, ".docx", f.FileExtension())
}
