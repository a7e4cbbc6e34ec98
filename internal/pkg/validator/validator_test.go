package validator

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/heyverne/verne-backend/internal/config"
	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func newTestValidator() *Validator {
	return NewValidator(config.FileUploadConfig{
		MaxPhotoSize:  1024,
		MaxUploadSize: 4096,
		UploadDir:     "uploads",
		PublicPrefix:  "/uploads",
	})
}

func photoHeader(filename, contentType string, size int64) *multipart.FileHeader {
	header := &multipart.FileHeader{
		Filename: filename,
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		header.Header.Set("Content-Type", contentType)
	}
	return header
}

func TestValidatePhoto(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidatePhoto(photoHeader("kid.jpg", "image/jpeg", 512)))
	assert.NoError(t, v.ValidatePhoto(photoHeader("kid.PNG", "", 512)))

	assert.ErrorIs(t, v.ValidatePhoto(nil), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidatePhoto(photoHeader("kid.pdf", "application/pdf", 512)), entity.ErrInvalidExtension)
	assert.ErrorIs(t, v.ValidatePhoto(photoHeader("kid.jpg", "image/jpeg", 2048)), entity.ErrFileTooLarge)
	assert.ErrorIs(t, v.ValidatePhoto(photoHeader("kid.jpg", "text/html", 512)), entity.ErrInvalidFile)
}

func TestValidateNextPage(t *testing.T) {
	v := newTestValidator()

	page := 2
	assert.NoError(t, v.ValidateNextPage(&entity.NextPageRequest{SessionID: "s1", CurrentPage: &page}))

	// Page 0 is a fresh session's first turn.
	firstTurn := 0
	assert.NoError(t, v.ValidateNextPage(&entity.NextPageRequest{SessionID: "s1", CurrentPage: &firstTurn}))

	assert.ErrorIs(t, v.ValidateNextPage(&entity.NextPageRequest{CurrentPage: &page}), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateNextPage(&entity.NextPageRequest{SessionID: "s1"}), entity.ErrMissingField)

	lastPage := entity.LastPage
	assert.ErrorIs(t, v.ValidateNextPage(&entity.NextPageRequest{SessionID: "s1", CurrentPage: &lastPage}), entity.ErrInvalidParameter)

	negative := -1
	assert.ErrorIs(t, v.ValidateNextPage(&entity.NextPageRequest{SessionID: "s1", CurrentPage: &negative}), entity.ErrInvalidParameter)
}

func TestValidateTrackInteraction(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateTrackInteraction(&entity.TrackInteractionRequest{
		SessionID:       "s1",
		InteractionType: entity.InteractionVoiceInput,
	}))

	assert.ErrorIs(t, v.ValidateTrackInteraction(&entity.TrackInteractionRequest{
		InteractionType: entity.InteractionVoiceInput,
	}), entity.ErrMissingField)

	assert.ErrorIs(t, v.ValidateTrackInteraction(&entity.TrackInteractionRequest{
		SessionID: "s1",
	}), entity.ErrMissingField)

	assert.ErrorIs(t, v.ValidateTrackInteraction(&entity.TrackInteractionRequest{
		SessionID:       "s1",
		InteractionType: "telepathy",
	}), entity.ErrInvalidInteractionType)
}
