package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session is already completed")
	ErrPageOutOfOrder   = errors.New("page number does not match session progress")

	// Story errors
	ErrInvalidPage = errors.New("invalid page number")

	// Image generation errors
	ErrTaskNotFound     = errors.New("image task not found")
	ErrGenerationFailed = errors.New("image generation failed")

	// Upload errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Validation errors
	ErrMissingField           = errors.New("required field is missing")
	ErrInvalidParameter       = errors.New("invalid parameter")
	ErrInvalidInteractionType = errors.New("invalid interaction type")
)
