package session

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/heyverne/verne-backend/internal/config"
	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/heyverne/verne-backend/internal/pkg/validator"
	"github.com/heyverne/verne-backend/internal/repository"
	"go.uber.org/zap"
)

// SessionUsecase implements session lifecycle business logic
type SessionUsecase struct {
	sessionRepo     repository.SessionRepository
	storyPageRepo   repository.StoryPageRepository
	choiceRepo      repository.ChoiceRepository
	interactionRepo repository.InteractionRepository
	validator       *validator.Validator
	uploads         config.FileUploadConfig
	logger          *zap.Logger
}

// NewUsecase creates a new session use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	storyPageRepo repository.StoryPageRepository,
	choiceRepo repository.ChoiceRepository,
	interactionRepo repository.InteractionRepository,
	validator *validator.Validator,
	uploads config.FileUploadConfig,
	logger *zap.Logger,
) *SessionUsecase {
	return &SessionUsecase{
		sessionRepo:     sessionRepo,
		storyPageRepo:   storyPageRepo,
		choiceRepo:      choiceRepo,
		interactionRepo: interactionRepo,
		validator:       validator,
		uploads:         uploads,
		logger:          logger,
	}
}

// CreateSession starts a new play-through on page 1.
func (uc *SessionUsecase) CreateSession(ctx context.Context, req *entity.CreateSessionRequest) (*entity.Session, error) {
	storyType := req.StoryType
	if storyType == "" {
		storyType = "space_adventure"
	}

	session, err := uc.sessionRepo.CreateSession(ctx, uuid.New().String(), storyType)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	ctxzap.Info(ctx, "session created",
		zap.String("session_id", session.ID),
		zap.String("story_type", storyType),
	)

	return session, nil
}

// GetSessionDetail returns a session with everything recorded for it.
func (uc *SessionUsecase) GetSessionDetail(ctx context.Context, sessionID string) (*entity.SessionDetailResponse, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	pages, err := uc.storyPageRepo.GetStoryPages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get story pages: %w", err)
	}

	choices, err := uc.choiceRepo.GetChoices(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get choices: %w", err)
	}

	interactions, err := uc.interactionRepo.GetInteractions(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get interactions: %w", err)
	}

	return &entity.SessionDetailResponse{
		Session:      session,
		Pages:        pages,
		Choices:      choices,
		Interactions: interactions,
	}, nil
}

// UploadPhoto stores the hero photo on disk and attaches its public
// URL to the session. The upload itself counts as a page 1 interaction.
func (uc *SessionUsecase) UploadPhoto(
	ctx context.Context,
	sessionID string,
	fileHeader *multipart.FileHeader,
) (*entity.UploadPhotoResponse, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := uc.validator.ValidatePhoto(fileHeader); err != nil {
		return nil, err
	}

	photoURL, err := uc.savePhoto(session.ID, fileHeader)
	if err != nil {
		return nil, fmt.Errorf("save photo: %w", err)
	}

	session, err = uc.sessionRepo.UpdateSessionPhoto(ctx, session.ID, photoURL)
	if err != nil {
		return nil, fmt.Errorf("update session photo: %w", err)
	}

	page := entity.FirstPage
	if _, err := uc.interactionRepo.TrackInteraction(ctx, &entity.Interaction{
		SessionID:       session.ID,
		PageNumber:      &page,
		InteractionType: entity.InteractionPhotoUpload,
	}); err != nil {
		return nil, fmt.Errorf("track photo upload: %w", err)
	}

	ctxzap.Info(ctx, "photo uploaded",
		zap.String("session_id", session.ID),
		zap.String("photo_url", photoURL),
		zap.Int64("size", fileHeader.Size),
	)

	return &entity.UploadPhotoResponse{
		SessionID: session.ID,
		PhotoURL:  photoURL,
	}, nil
}

// CompleteSession marks a session finished. Completing an already
// completed session is a no-op.
func (uc *SessionUsecase) CompleteSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := uc.sessionRepo.CompleteSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "session completed", zap.String("session_id", session.ID))

	return session, nil
}

func (uc *SessionUsecase) savePhoto(sessionID string, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(uc.uploads.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	filename := "photo-" + sessionID + ext

	dst, err := os.Create(filepath.Join(uc.uploads.UploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write photo file: %w", err)
	}

	return uc.uploads.PublicPrefix + "/" + filename, nil
}
