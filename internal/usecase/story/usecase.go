package story

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/heyverne/verne-backend/internal/pkg/validator"
	"github.com/heyverne/verne-backend/internal/repository"
	storycontent "github.com/heyverne/verne-backend/internal/story"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// StoryUsecase drives the page turn: it records what the child said,
// classifies the decision, advances the session and kicks off
// illustration generation for the new page.
type StoryUsecase struct {
	sessionRepo     repository.SessionRepository
	storyPageRepo   repository.StoryPageRepository
	choiceRepo      repository.ChoiceRepository
	interactionRepo repository.InteractionRepository
	imageGen        ImageGenConnector
	validator       *validator.Validator
	logger          *zap.Logger
}

// NewUsecase creates a new story use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	storyPageRepo repository.StoryPageRepository,
	choiceRepo repository.ChoiceRepository,
	interactionRepo repository.InteractionRepository,
	imageGen ImageGenConnector,
	validator *validator.Validator,
	logger *zap.Logger,
) *StoryUsecase {
	return &StoryUsecase{
		sessionRepo:     sessionRepo,
		storyPageRepo:   storyPageRepo,
		choiceRepo:      choiceRepo,
		interactionRepo: interactionRepo,
		imageGen:        imageGen,
		validator:       validator,
		logger:          logger,
	}
}

// NextPage processes the child's response to the current page and
// turns to the next one. The session row itself guards ordering: the
// advance only succeeds when the session is active and still on the
// page the request claims.
func (uc *StoryUsecase) NextPage(ctx context.Context, req *entity.NextPageRequest) (*entity.NextPageResponse, error) {
	if err := uc.validator.ValidateNextPage(req); err != nil {
		return nil, err
	}

	currentPage := *req.CurrentPage
	nextPage := currentPage + 1

	session, err := uc.sessionRepo.GetSessionByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == entity.SessionStatusCompleted {
		return nil, entity.ErrSessionCompleted
	}

	options := uc.resolveOptions(req, currentPage)
	classification := storycontent.Classify(currentPage, req.KidResponse, options)

	if err := uc.trackResponse(ctx, session.ID, currentPage, req, options, classification); err != nil {
		return nil, err
	}

	chosenPlanet := uc.resolvePlanet(session, currentPage, classification)

	session, err = uc.sessionRepo.AdvanceSessionPage(ctx, session.ID, currentPage, nextPage, chosenPlanet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, uc.classifyAdvanceConflict(ctx, req.SessionID)
		}
		return nil, err
	}

	content, err := storycontent.PageFor(nextPage, session.ChosenPlanet)
	if err != nil {
		return nil, err
	}

	resp := &entity.NextPageResponse{
		PageNumber:         content.PageNumber,
		StoryText:          content.StoryText,
		AgentPrompt:        content.AgentPrompt,
		SuggestedOptions:   content.SuggestedOptions,
		EducationalConcept: content.EducationalConcept,
		Panel1Status:       "none",
		ChosenPlanet:       session.ChosenPlanet,
	}

	if storycontent.NeedsIllustration(nextPage) {
		taskID, err := uc.startIllustration(ctx, session, nextPage, req.KidResponse)
		if err != nil {
			// The story must keep moving even when art generation
			// cannot start; the page simply ships without a panel.
			ctxzap.Error(ctx, "failed to start illustration", zap.Error(err))
		} else {
			resp.Panel1Status = string(entity.TaskStatusGenerating)
			resp.ImageIDs.Panel1 = &taskID
		}
	}

	if err := uc.createStoryPage(ctx, session.ID, content, req); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "advanced to next page",
		zap.String("session_id", session.ID),
		zap.Int("page", nextPage),
		zap.String("chosen_planet", session.ChosenPlanet),
		zap.Bool("was_default", classification.WasDefault),
	)

	return resp, nil
}

// CheckImages polls the generation tasks of a page and persists any
// panel that finished since the last poll.
func (uc *StoryUsecase) CheckImages(
	ctx context.Context,
	sessionID string,
	pageNumber int,
	taskID1, taskID2 string,
) (*entity.CheckImagesResponse, error) {
	if _, err := uc.sessionRepo.GetSessionByID(ctx, sessionID); err != nil {
		return nil, err
	}

	resp := &entity.CheckImagesResponse{Images: []entity.PanelStatus{}}

	panels := []struct {
		name   string
		taskID string
	}{
		{"panel1", taskID1},
		{"panel2", taskID2},
	}

	for _, panel := range panels {
		if panel.taskID == "" {
			continue
		}

		task, err := uc.imageGen.TaskStatus(panel.taskID)
		if err != nil {
			return nil, err
		}

		status := entity.PanelStatus{
			Panel:    panel.name,
			TaskID:   task.ID,
			Status:   task.Status,
			Progress: task.Progress,
			Error:    task.Error,
		}

		if task.Status == entity.TaskStatusCompleted {
			status.URL = &task.URL
			if err := uc.persistPanel(ctx, sessionID, pageNumber, panel.name, task.URL); err != nil {
				return nil, err
			}
		}

		resp.Images = append(resp.Images, status)
	}

	return resp, nil
}

// PageContent returns the static content of a page without touching
// any session state.
func (uc *StoryUsecase) PageContent(pageNumber int, chosenPlanet string) (*entity.PageContentResponse, error) {
	content, err := storycontent.PageFor(pageNumber, chosenPlanet)
	if err != nil {
		return nil, err
	}

	return &entity.PageContentResponse{
		PageNumber:         content.PageNumber,
		EducationalConcept: content.EducationalConcept,
		StoryText:          content.StoryText,
		AgentPrompt:        content.AgentPrompt,
		SuggestedOptions:   content.SuggestedOptions,
		DefaultChoice:      content.DefaultChoice,
	}, nil
}

// resolveOptions prefers the options the frontend actually showed;
// the page's canonical options are the fallback.
func (uc *StoryUsecase) resolveOptions(req *entity.NextPageRequest, currentPage int) []string {
	if len(req.SuggestedOptions) > 0 {
		return req.SuggestedOptions
	}
	if content, err := storycontent.PageFor(currentPage, ""); err == nil {
		return content.SuggestedOptions
	}
	return nil
}

// resolvePlanet keeps the session's destination unless this turn picks
// a new one. Page 2 is the destination decision point, so its choice
// always wins; elsewhere only an explicitly named planet overrides.
func (uc *StoryUsecase) resolvePlanet(session *entity.Session, currentPage int, c storycontent.Classification) string {
	if currentPage == 2 && c.Choice != "" {
		if c.Creative || c.WasDefault {
			return storycontent.DefaultPlanet
		}
		return c.Choice
	}
	if c.ExtractedPlanet != "" {
		return c.ExtractedPlanet
	}
	return session.ChosenPlanet
}

func (uc *StoryUsecase) trackResponse(
	ctx context.Context,
	sessionID string,
	currentPage int,
	req *entity.NextPageRequest,
	options []string,
	c storycontent.Classification,
) error {
	interactionType := entity.InteractionSilence
	var userInput *string
	if trimmed := strings.TrimSpace(req.KidResponse); trimmed != "" {
		interactionType = entity.InteractionVoiceInput
		userInput = &trimmed
	}

	page := currentPage
	if _, err := uc.interactionRepo.TrackInteraction(ctx, &entity.Interaction{
		SessionID:       sessionID,
		PageNumber:      &page,
		InteractionType: interactionType,
		UserInput:       userInput,
		ResponseTimeMs:  req.ResponseTime,
	}); err != nil {
		return fmt.Errorf("track interaction: %w", err)
	}

	// A choice row only makes sense when the child actually answered a
	// question that had options; silence and free beats leave none.
	if c.Choice == "" || userInput == nil || len(options) == 0 {
		return nil
	}

	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}

	if _, err := uc.choiceRepo.TrackChoice(ctx, &entity.Choice{
		SessionID:        sessionID,
		PageNumber:       currentPage,
		SuggestedOptions: string(optionsJSON),
		KidChoice:        c.Choice,
		WasDefault:       c.WasDefault,
	}); err != nil {
		return fmt.Errorf("track choice: %w", err)
	}

	return nil
}

// classifyAdvanceConflict turns a failed guarded advance into the
// precise domain error.
func (uc *StoryUsecase) classifyAdvanceConflict(ctx context.Context, sessionID string) error {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Status == entity.SessionStatusCompleted {
		return entity.ErrSessionCompleted
	}
	return entity.ErrPageOutOfOrder
}

func (uc *StoryUsecase) startIllustration(
	ctx context.Context,
	session *entity.Session,
	pageNumber int,
	kidResponse string,
) (string, error) {
	prompt := storycontent.DynamicImagePrompt(pageNumber, kidResponse, session.ChosenPlanet)

	referencePhoto := ""
	if session.KidPhotoURL != nil {
		referencePhoto = *session.KidPhotoURL
	}

	task, err := uc.imageGen.Generate(ctx, prompt.Prompt, referencePhoto)
	if err != nil {
		return "", err
	}

	return task.ID, nil
}

func (uc *StoryUsecase) createStoryPage(
	ctx context.Context,
	sessionID string,
	content *storycontent.PageContent,
	req *entity.NextPageRequest,
) error {
	page := &entity.StoryPage{
		SessionID:          sessionID,
		PageNumber:         content.PageNumber,
		EducationalConcept: content.EducationalConcept,
		StoryText:          content.StoryText,
	}

	if content.AgentPrompt != "" {
		page.AgentPrompt = &content.AgentPrompt
	}
	if trimmed := strings.TrimSpace(req.KidResponse); trimmed != "" {
		now := time.Now()
		page.KidResponse = &trimmed
		page.KidResponseTimestamp = &now
	}
	if req.ResponseTime > 0 {
		page.TimeSpentSeconds = req.ResponseTime / 1000
	}

	if _, err := uc.storyPageRepo.CreateStoryPage(ctx, page); err != nil {
		return fmt.Errorf("create story page: %w", err)
	}

	return nil
}

func (uc *StoryUsecase) persistPanel(ctx context.Context, sessionID string, pageNumber int, panel, url string) error {
	var panel1, panel2 *string
	switch panel {
	case "panel1":
		panel1 = &url
	case "panel2":
		panel2 = &url
	}

	return uc.storyPageRepo.UpdateStoryPagePanels(ctx, sessionID, pageNumber, panel1, panel2)
}
