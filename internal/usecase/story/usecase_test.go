package story

import (
	"context"
	"testing"
	"time"

	"github.com/heyverne/verne-backend/internal/config"
	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/heyverne/verne-backend/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, id, storyType string) (*entity.Session, error) {
	s := &entity.Session{
		ID:           id,
		StoryType:    storyType,
		Status:       entity.SessionStatusActive,
		CurrentPage:  0,
		ChosenPlanet: "Mars",
		CreatedAt:    time.Now(),
	}
	f.sessions[id] = s
	return s, nil
}

func (f *fakeSessionRepo) GetSessionByID(_ context.Context, id string) (*entity.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) GetAllSessions(context.Context) ([]*entity.Session, error) {
	var out []*entity.Session
	for _, s := range f.sessions {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeSessionRepo) GetSessionStats(context.Context) (*entity.SessionStats, error) {
	return &entity.SessionStats{TotalSessions: len(f.sessions)}, nil
}

func (f *fakeSessionRepo) UpdateSessionPhoto(_ context.Context, id, photoURL string) (*entity.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	s.KidPhotoURL = &photoURL
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) AdvanceSessionPage(_ context.Context, id string, fromPage, toPage int, chosenPlanet string) (*entity.Session, error) {
	s, ok := f.sessions[id]
	if !ok || s.Status != entity.SessionStatusActive || s.CurrentPage != fromPage {
		return nil, pgx.ErrNoRows
	}
	s.CurrentPage = toPage
	s.ChosenPlanet = chosenPlanet
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) CompleteSession(_ context.Context, id string) (*entity.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	s.Status = entity.SessionStatusCompleted
	if s.CompletedAt == nil {
		now := time.Now()
		s.CompletedAt = &now
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) UpdateSessionShareableLink(_ context.Context, id, link string) (*entity.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	s.ShareableLink = &link
	copied := *s
	return &copied, nil
}

type fakeStoryPageRepo struct {
	pages []*entity.StoryPage
}

func (f *fakeStoryPageRepo) CreateStoryPage(_ context.Context, page *entity.StoryPage) (*entity.StoryPage, error) {
	copied := *page
	f.pages = append(f.pages, &copied)
	return &copied, nil
}

func (f *fakeStoryPageRepo) GetStoryPages(_ context.Context, sessionID string) ([]*entity.StoryPage, error) {
	var out []*entity.StoryPage
	for _, p := range f.pages {
		if p.SessionID == sessionID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStoryPageRepo) UpdateStoryPagePanels(_ context.Context, sessionID string, pageNumber int, panel1URL, panel2URL *string) error {
	for _, p := range f.pages {
		if p.SessionID == sessionID && p.PageNumber == pageNumber {
			if panel1URL != nil {
				p.Panel1URL = panel1URL
			}
			if panel2URL != nil {
				p.Panel2URL = panel2URL
			}
		}
	}
	return nil
}

type fakeChoiceRepo struct {
	choices []*entity.Choice
}

func (f *fakeChoiceRepo) TrackChoice(_ context.Context, choice *entity.Choice) (*entity.Choice, error) {
	copied := *choice
	f.choices = append(f.choices, &copied)
	return &copied, nil
}

func (f *fakeChoiceRepo) GetChoices(_ context.Context, sessionID string) ([]*entity.Choice, error) {
	var out []*entity.Choice
	for _, c := range f.choices {
		if c.SessionID == sessionID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeInteractionRepo struct {
	interactions []*entity.Interaction
}

func (f *fakeInteractionRepo) TrackInteraction(_ context.Context, interaction *entity.Interaction) (*entity.Interaction, error) {
	copied := *interaction
	f.interactions = append(f.interactions, &copied)
	return &copied, nil
}

func (f *fakeInteractionRepo) GetInteractions(_ context.Context, sessionID string) ([]*entity.Interaction, error) {
	var out []*entity.Interaction
	for _, i := range f.interactions {
		if i.SessionID == sessionID {
			out = append(out, i)
		}
	}
	return out, nil
}

type fakeImageGen struct {
	tasks   map[string]*entity.ImageTask
	prompts []string
}

func (f *fakeImageGen) Generate(_ context.Context, prompt, _ string) (*entity.ImageTask, error) {
	f.prompts = append(f.prompts, prompt)
	task := &entity.ImageTask{
		ID:     "img-fake",
		Status: entity.TaskStatusGenerating,
	}
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeImageGen) TaskStatus(taskID string) (*entity.ImageTask, error) {
	task, ok := f.tasks[taskID]
	if !ok {
		return nil, entity.ErrTaskNotFound
	}
	return task, nil
}

type fixture struct {
	uc           *StoryUsecase
	sessions     *fakeSessionRepo
	pages        *fakeStoryPageRepo
	choices      *fakeChoiceRepo
	interactions *fakeInteractionRepo
	imageGen     *fakeImageGen
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		sessions:     &fakeSessionRepo{sessions: map[string]*entity.Session{}},
		pages:        &fakeStoryPageRepo{},
		choices:      &fakeChoiceRepo{},
		interactions: &fakeInteractionRepo{},
		imageGen:     &fakeImageGen{tasks: map[string]*entity.ImageTask{}},
	}
	f.uc = NewUsecase(
		f.sessions,
		f.pages,
		f.choices,
		f.interactions,
		f.imageGen,
		validator.NewValidator(config.FileUploadConfig{MaxPhotoSize: 1 << 20}),
		zap.NewNop(),
	)
	return f
}

func (f *fixture) newSession(t *testing.T) *entity.Session {
	t.Helper()
	s, err := f.sessions.CreateSession(context.Background(), "sess-1", "space_adventure")
	require.NoError(t, err)
	return s
}

func (f *fixture) newSessionOnPage(t *testing.T, page int) *entity.Session {
	t.Helper()
	s := f.newSession(t)
	f.sessions.sessions[s.ID].CurrentPage = page
	s.CurrentPage = page
	return s
}

func intPtr(n int) *int { return &n }

func TestNextPageFirstTurnWritesPageOne(t *testing.T) {
	f := newFixture(t)
	f.newSession(t)

	// A fresh session sits on page 0; the first turn opens page 1.
	resp, err := f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID:   "sess-1",
		CurrentPage: intPtr(0),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.PageNumber)
	assert.NotEmpty(t, resp.StoryText)
	assert.Equal(t, "none", resp.Panel1Status)

	require.Len(t, f.pages.pages, 1)
	assert.Equal(t, 1, f.pages.pages[0].PageNumber)
	assert.Empty(t, f.choices.choices)
}

func TestNextPageAdvancesWithSilence(t *testing.T) {
	f := newFixture(t)
	f.newSessionOnPage(t, 1)

	resp, err := f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID:   "sess-1",
		CurrentPage: intPtr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.PageNumber)
	assert.NotEmpty(t, resp.StoryText)
	assert.Equal(t, []string{"Mars", "Jupiter", "Saturn"}, resp.SuggestedOptions)
	assert.Equal(t, "generating", resp.Panel1Status)
	require.NotNil(t, resp.ImageIDs.Panel1)

	require.Len(t, f.interactions.interactions, 1)
	assert.Equal(t, entity.InteractionSilence, f.interactions.interactions[0].InteractionType)

	// Silence answers no question, so no choice row is recorded.
	assert.Empty(t, f.choices.choices)

	require.Len(t, f.pages.pages, 1)
	assert.Equal(t, 2, f.pages.pages[0].PageNumber)
}

func TestFullPlayThroughWritesAllPages(t *testing.T) {
	f := newFixture(t)
	f.newSession(t)

	responses := []string{"ready!", "", "Jupiter!", "hold on tight", "bye bye"}
	for current, kidResponse := range responses {
		resp, err := f.uc.NextPage(context.Background(), &entity.NextPageRequest{
			SessionID:   "sess-1",
			CurrentPage: intPtr(current),
			KidResponse: kidResponse,
		})
		require.NoError(t, err)
		assert.Equal(t, current+1, resp.PageNumber)
	}

	require.Len(t, f.pages.pages, entity.LastPage)
	for i, page := range f.pages.pages {
		assert.Equal(t, i+1, page.PageNumber)
	}

	session, err := f.sessions.GetSessionByID(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, entity.LastPage, session.CurrentPage)
	assert.Equal(t, "Jupiter", session.ChosenPlanet)
}

func TestNextPagePlanetChoiceCarriesThrough(t *testing.T) {
	f := newFixture(t)
	f.newSessionOnPage(t, 1)

	_, err := f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID:   "sess-1",
		CurrentPage: intPtr(1),
		KidResponse: "ready!",
	})
	require.NoError(t, err)

	resp, err := f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID:    "sess-1",
		CurrentPage:  intPtr(2),
		KidResponse:  "Jupiter!",
		ResponseTime: 2500,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.PageNumber)
	assert.Equal(t, "Jupiter", resp.ChosenPlanet)

	require.Len(t, f.choices.choices, 2)
	assert.Equal(t, "Jupiter", f.choices.choices[1].KidChoice)
	assert.False(t, f.choices.choices[1].WasDefault)

	// The planet substitution on page 4 uses the choice made on page 2.
	resp, err = f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID:   "sess-1",
		CurrentPage: intPtr(3),
		KidResponse: "keep safe",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.PageNumber)
	assert.Contains(t, resp.StoryText, "Jupiter")
}

func TestNextPageRejectsOutOfOrderAdvance(t *testing.T) {
	f := newFixture(t)
	f.newSession(t)

	_, err := f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID:   "sess-1",
		CurrentPage: intPtr(0),
	})
	require.NoError(t, err)

	// Replaying the same advance must fail: the session moved on.
	_, err = f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID:   "sess-1",
		CurrentPage: intPtr(0),
	})
	assert.ErrorIs(t, err, entity.ErrPageOutOfOrder)

	// Skipping ahead fails the same way.
	_, err = f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID:   "sess-1",
		CurrentPage: intPtr(4),
	})
	assert.ErrorIs(t, err, entity.ErrPageOutOfOrder)
}

func TestNextPageRejectsCompletedSession(t *testing.T) {
	f := newFixture(t)
	f.newSession(t)
	_, err := f.sessions.CompleteSession(context.Background(), "sess-1")
	require.NoError(t, err)

	_, err = f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID:   "sess-1",
		CurrentPage: intPtr(0),
	})
	assert.ErrorIs(t, err, entity.ErrSessionCompleted)
}

func TestNextPageValidation(t *testing.T) {
	f := newFixture(t)
	f.newSession(t)

	_, err := f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID: "sess-1",
	})
	assert.ErrorIs(t, err, entity.ErrMissingField)

	_, err = f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID:   "sess-1",
		CurrentPage: intPtr(entity.LastPage),
	})
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)

	_, err = f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID:   "missing",
		CurrentPage: intPtr(1),
	})
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestNextPageKeepsMovingWhenGenerationFails(t *testing.T) {
	f := newFixture(t)
	f.newSessionOnPage(t, 1)
	f.uc.imageGen = failingImageGen{}

	resp, err := f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID:   "sess-1",
		CurrentPage: intPtr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.PageNumber)
	assert.Equal(t, "none", resp.Panel1Status)
	assert.Nil(t, resp.ImageIDs.Panel1)
}

type failingImageGen struct{}

func (failingImageGen) Generate(context.Context, string, string) (*entity.ImageTask, error) {
	return nil, entity.ErrGenerationFailed
}

func (failingImageGen) TaskStatus(string) (*entity.ImageTask, error) {
	return nil, entity.ErrTaskNotFound
}

func TestCheckImagesPersistsCompletedPanel(t *testing.T) {
	f := newFixture(t)
	f.newSessionOnPage(t, 1)

	_, err := f.uc.NextPage(context.Background(), &entity.NextPageRequest{
		SessionID:   "sess-1",
		CurrentPage: intPtr(1),
	})
	require.NoError(t, err)

	f.imageGen.tasks["img-fake"].Status = entity.TaskStatusCompleted
	f.imageGen.tasks["img-fake"].URL = "/uploads/img-fake.png"

	resp, err := f.uc.CheckImages(context.Background(), "sess-1", 2, "img-fake", "")
	require.NoError(t, err)

	require.Len(t, resp.Images, 1)
	assert.Equal(t, "panel1", resp.Images[0].Panel)
	assert.Equal(t, entity.TaskStatusCompleted, resp.Images[0].Status)
	require.NotNil(t, resp.Images[0].URL)

	pages, _ := f.pages.GetStoryPages(context.Background(), "sess-1")
	require.Len(t, pages, 1)
	require.NotNil(t, pages[0].Panel1URL)
	assert.Equal(t, "/uploads/img-fake.png", *pages[0].Panel1URL)
}

func TestCheckImagesUnknownTask(t *testing.T) {
	f := newFixture(t)
	f.newSession(t)

	_, err := f.uc.CheckImages(context.Background(), "sess-1", 2, "img-unknown", "")
	assert.ErrorIs(t, err, entity.ErrTaskNotFound)
}

func TestPageContent(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.PageContent(4, "Neptune")
	require.NoError(t, err)
	assert.Contains(t, resp.StoryText, "Neptune")

	_, err = f.uc.PageContent(9, "")
	assert.ErrorIs(t, err, entity.ErrInvalidPage)
}
