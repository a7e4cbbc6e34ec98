package book

import (
	"context"
	"fmt"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/heyverne/verne-backend/internal/pkg/formatter"
	"github.com/heyverne/verne-backend/internal/repository"
	"go.uber.org/zap"
)

// BookUsecase assembles a finished session into a shareable digital
// book and renders it into downloadable documents.
type BookUsecase struct {
	sessionRepo   repository.SessionRepository
	storyPageRepo repository.StoryPageRepository
	choiceRepo    repository.ChoiceRepository
	formatters    *formatter.Factory
	logger        *zap.Logger
}

// NewUsecase creates a new book use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	storyPageRepo repository.StoryPageRepository,
	choiceRepo repository.ChoiceRepository,
	formatters *formatter.Factory,
	logger *zap.Logger,
) *BookUsecase {
	return &BookUsecase{
		sessionRepo:   sessionRepo,
		storyPageRepo: storyPageRepo,
		choiceRepo:    choiceRepo,
		formatters:    formatters,
		logger:        logger,
	}
}

// GenerateBook finalizes a session: it gets a shareable link and is
// marked completed. Calling it again for the same session is safe.
func (uc *BookUsecase) GenerateBook(ctx context.Context, req *entity.GenerateBookRequest) (*entity.GenerateBookResponse, error) {
	if req.SessionID == "" {
		return nil, fmt.Errorf("%w: sessionId", entity.ErrMissingField)
	}

	session, err := uc.sessionRepo.GetSessionByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	pages, err := uc.storyPageRepo.GetStoryPages(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("get story pages: %w", err)
	}

	shareableLink := "/story/" + session.ID
	if _, err := uc.sessionRepo.UpdateSessionShareableLink(ctx, session.ID, shareableLink); err != nil {
		return nil, fmt.Errorf("update shareable link: %w", err)
	}

	session, err = uc.sessionRepo.CompleteSession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	completedAt := time.Now()
	if session.CompletedAt != nil {
		completedAt = *session.CompletedAt
	}

	ctxzap.Info(ctx, "book generated",
		zap.String("session_id", session.ID),
		zap.String("shareable_link", shareableLink),
		zap.Int("pages", len(pages)),
	)

	return &entity.GenerateBookResponse{
		SessionID:     session.ID,
		ShareableLink: shareableLink,
		Pages:         len(pages),
		CompletedAt:   completedAt,
	}, nil
}

// GetBook assembles the display form of a play-through.
func (uc *BookUsecase) GetBook(ctx context.Context, sessionID string) (*entity.Book, error) {
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

	book := &entity.Book{
		SessionID:   session.ID,
		StoryType:   session.StoryType,
		KidPhotoURL: session.KidPhotoURL,
		CreatedAt:   session.CreatedAt,
		CompletedAt: session.CompletedAt,
		Pages:       make([]entity.BookPage, 0, len(pages)),
		Choices:     make([]entity.BookChoice, 0, len(choices)),
		TotalPages:  len(pages),
	}

	for _, page := range pages {
		book.Pages = append(book.Pages, entity.BookPage{
			PageNumber:         page.PageNumber,
			StoryText:          page.StoryText,
			EducationalConcept: page.EducationalConcept,
			Panel1URL:          page.Panel1URL,
			Panel2URL:          page.Panel2URL,
			KidResponse:        page.KidResponse,
		})
	}

	for _, choice := range choices {
		book.Choices = append(book.Choices, entity.BookChoice{
			PageNumber: choice.PageNumber,
			Choice:     choice.KidChoice,
			WasDefault: choice.WasDefault,
		})
	}

	return book, nil
}

// ExportedBook is a rendered document ready to be served as a download.
type ExportedBook struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportBook renders the book into the requested document format.
func (uc *BookUsecase) ExportBook(ctx context.Context, sessionID string, format entity.BookFormat) (*ExportedBook, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: format %q", entity.ErrInvalidParameter, format)
	}

	book, err := uc.GetBook(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	data, err := f.Format(book)
	if err != nil {
		return nil, fmt.Errorf("format book: %w", err)
	}

	ctxzap.Info(ctx, "book exported",
		zap.String("session_id", sessionID),
		zap.String("format", string(format)),
		zap.Int("size", len(data)),
	)

	return &ExportedBook{
		Data:        data,
		ContentType: f.ContentType(),
		Filename:    "space-adventure-" + sessionID + f.FileExtension(),
	}, nil
}
