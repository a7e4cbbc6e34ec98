package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/heyverne/verne-backend/internal/config"
	"github.com/heyverne/verne-backend/internal/entity"
)

// AllowedPhotoExtensions lists the image formats accepted for the
// kid's reference photo.
var AllowedPhotoExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Validator validates incoming requests and uploads.
type Validator struct {
	cfg config.FileUploadConfig
}

func NewValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidatePhoto validates the uploaded reference photo: image
// extension, image content type, and the configured size cap.
func (v *Validator) ValidatePhoto(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: photo", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedPhotoExtensions[ext] {
		return fmt.Errorf("%w: %s (only image files are allowed)", entity.ErrInvalidExtension, ext)
	}

	if file.Size > v.cfg.MaxPhotoSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxPhotoSize)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: unexpected content type %s", entity.ErrInvalidFile, contentType)
	}

	return nil
}

// ValidateNextPage validates the next-page request body.
func (v *Validator) ValidateNextPage(req *entity.NextPageRequest) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: sessionId", entity.ErrMissingField)
	}
	if req.CurrentPage == nil {
		return fmt.Errorf("%w: currentPage", entity.ErrMissingField)
	}
	if *req.CurrentPage < 0 || *req.CurrentPage >= entity.LastPage {
		return fmt.Errorf("%w: currentPage %d", entity.ErrInvalidParameter, *req.CurrentPage)
	}
	return nil
}

// ValidateTrackInteraction validates an analytics track request.
func (v *Validator) ValidateTrackInteraction(req *entity.TrackInteractionRequest) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: sessionId", entity.ErrMissingField)
	}
	if req.InteractionType == "" {
		return fmt.Errorf("%w: interactionType", entity.ErrMissingField)
	}
	if err := req.InteractionType.Validate(); err != nil {
		return fmt.Errorf("%w: %s", err, req.InteractionType)
	}
	return nil
}
