package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/heyverne/verne-backend/internal/pkg/validator"
	"github.com/heyverne/verne-backend/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxSessionFetchConcurrency bounds the per-session fan-out when
// assembling the dashboard.
const maxSessionFetchConcurrency = 8

// AnalyticsUsecase computes the parent, teacher and psychologist
// dashboards from the raw interaction log.
type AnalyticsUsecase struct {
	sessionRepo     repository.SessionRepository
	storyPageRepo   repository.StoryPageRepository
	choiceRepo      repository.ChoiceRepository
	interactionRepo repository.InteractionRepository
	metricRepo      repository.MetricRepository
	validator       *validator.Validator
	logger          *zap.Logger
}

// NewUsecase creates a new analytics use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	storyPageRepo repository.StoryPageRepository,
	choiceRepo repository.ChoiceRepository,
	interactionRepo repository.InteractionRepository,
	metricRepo repository.MetricRepository,
	validator *validator.Validator,
	logger *zap.Logger,
) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		sessionRepo:     sessionRepo,
		storyPageRepo:   storyPageRepo,
		choiceRepo:      choiceRepo,
		interactionRepo: interactionRepo,
		metricRepo:      metricRepo,
		validator:       validator,
		logger:          logger,
	}
}

// TrackInteraction appends one row to the audit log.
func (uc *AnalyticsUsecase) TrackInteraction(ctx context.Context, req *entity.TrackInteractionRequest) error {
	if err := uc.validator.ValidateTrackInteraction(req); err != nil {
		return err
	}

	if _, err := uc.sessionRepo.GetSessionByID(ctx, req.SessionID); err != nil {
		return err
	}

	var userInput *string
	if req.UserInput != "" {
		userInput = &req.UserInput
	}

	if _, err := uc.interactionRepo.TrackInteraction(ctx, &entity.Interaction{
		SessionID:       req.SessionID,
		PageNumber:      req.PageNumber,
		InteractionType: req.InteractionType,
		UserInput:       userInput,
		ResponseTimeMs:  req.ResponseTimeMs,
	}); err != nil {
		return fmt.Errorf("track interaction: %w", err)
	}

	return nil
}

// sessionData is everything recorded for one session, fetched in one
// fan-out unit.
type sessionData struct {
	interactions []*entity.Interaction
	choices      []*entity.Choice
	pages        []*entity.StoryPage
}

// Dashboard aggregates every session into the three audience views.
func (uc *AnalyticsUsecase) Dashboard(ctx context.Context) (*entity.DashboardResponse, error) {
	stats, err := uc.sessionRepo.GetSessionStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get session stats: %w", err)
	}

	sessions, err := uc.sessionRepo.GetAllSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("get sessions: %w", err)
	}

	data, err := uc.fetchSessionData(ctx, sessions)
	if err != nil {
		return nil, err
	}

	var interactions []*entity.Interaction
	var choices []*entity.Choice
	var pages []*entity.StoryPage
	for _, d := range data {
		interactions = append(interactions, d.interactions...)
		choices = append(choices, d.choices...)
		pages = append(pages, d.pages...)
	}

	resp := &entity.DashboardResponse{
		TotalSessions:       stats.TotalSessions,
		CompletedSessions:   stats.CompletedSessions,
		ParentMetrics:       parentMetrics(interactions, choices),
		TeacherMetrics:      teacherMetrics(interactions, pages),
		PsychologistMetrics: psychologistMetrics(interactions, choices),
	}

	if stats.TotalSessions > 0 {
		resp.CompletionRate = round2(float64(stats.CompletedSessions) / float64(stats.TotalSessions))
	}
	if stats.AvgSessionTimeSec != nil {
		resp.AvgSessionTime = *stats.AvgSessionTimeSec
	}

	return resp, nil
}

// SessionAnalytics computes the per-session metric breakdown and
// persists a snapshot of it for later inspection.
func (uc *AnalyticsUsecase) SessionAnalytics(ctx context.Context, sessionID string) (*entity.SessionAnalyticsResponse, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	interactions, err := uc.interactionRepo.GetInteractions(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get interactions: %w", err)
	}

	choices, err := uc.choiceRepo.GetChoices(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get choices: %w", err)
	}

	pages, err := uc.storyPageRepo.GetStoryPages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get story pages: %w", err)
	}

	metrics := sessionMetrics(interactions, choices, pages)

	if snapshot, err := json.Marshal(metrics); err == nil {
		if _, err := uc.metricRepo.SaveMetric(ctx, sessionID, "session_metrics", string(snapshot)); err != nil {
			// The snapshot is a convenience; the response does not
			// depend on it being stored.
			ctxzap.Warn(ctx, "failed to save metrics snapshot", zap.Error(err))
		}
	}

	return &entity.SessionAnalyticsResponse{
		Session:      session,
		Metrics:      metrics,
		Interactions: interactions,
		Choices:      choices,
		Pages:        pages,
	}, nil
}

func (uc *AnalyticsUsecase) fetchSessionData(ctx context.Context, sessions []*entity.Session) ([]sessionData, error) {
	data := make([]sessionData, len(sessions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSessionFetchConcurrency)

	for i, session := range sessions {
		i, session := i, session
		g.Go(func() error {
			interactions, err := uc.interactionRepo.GetInteractions(ctx, session.ID)
			if err != nil {
				return fmt.Errorf("get interactions for %s: %w", session.ID, err)
			}
			choices, err := uc.choiceRepo.GetChoices(ctx, session.ID)
			if err != nil {
				return fmt.Errorf("get choices for %s: %w", session.ID, err)
			}
			pages, err := uc.storyPageRepo.GetStoryPages(ctx, session.ID)
			if err != nil {
				return fmt.Errorf("get pages for %s: %w", session.ID, err)
			}

			data[i] = sessionData{interactions: interactions, choices: choices, pages: pages}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

func parentMetrics(interactions []*entity.Interaction, choices []*entity.Choice) entity.ParentMetrics {
	counts := map[string]int{}
	for _, choice := range choices {
		counts[choice.KidChoice]++
	}

	favorites := make([]entity.ChoiceCount, 0, len(counts))
	for choice, count := range counts {
		favorites = append(favorites, entity.ChoiceCount{Choice: choice, Count: count})
	}
	sort.Slice(favorites, func(i, j int) bool {
		if favorites[i].Count != favorites[j].Count {
			return favorites[i].Count > favorites[j].Count
		}
		return favorites[i].Choice < favorites[j].Choice
	})
	if len(favorites) > 5 {
		favorites = favorites[:5]
	}

	avg := avgResponseTime(interactions)

	level := "Low"
	switch {
	case avg < 5000:
		level = "High"
	case avg < 10000:
		level = "Medium"
	}

	return entity.ParentMetrics{
		FavoriteChoices: favorites,
		AvgResponseTime: int(math.Round(avg)),
		TotalEngagement: len(interactions),
		EngagementLevel: level,
	}
}

func teacherMetrics(interactions []*entity.Interaction, pages []*entity.StoryPage) entity.TeacherMetrics {
	coverage := map[string]int{
		"solar_system_planets": 0,
		"sun_is_a_star":        0,
		"gravity":              0,
	}
	for _, page := range pages {
		if _, tracked := coverage[page.EducationalConcept]; tracked {
			coverage[page.EducationalConcept]++
		}
	}

	var totalWords, responses int
	for _, i := range interactions {
		if i.InteractionType != entity.InteractionVoiceInput || i.UserInput == nil {
			continue
		}
		totalWords += len(strings.Fields(*i.UserInput))
		responses++
	}

	var avgWords float64
	if responses > 0 {
		avgWords = float64(totalWords) / float64(responses)
	}

	level := "Complex"
	switch {
	case avgWords < 3:
		level = "Simple"
	case avgWords < 6:
		level = "Moderate"
	}

	return entity.TeacherMetrics{
		ConceptCoverage: coverage,
		AvgWordCount:    round1(avgWords),
		TotalResponses:  responses,
		VocabularyLevel: level,
	}
}

func psychologistMetrics(interactions []*entity.Interaction, choices []*entity.Choice) entity.PsychologistMetrics {
	var defaults int
	for _, choice := range choices {
		if choice.WasDefault {
			defaults++
		}
	}
	creative := len(choices) - defaults

	pattern := "Cautious"
	switch {
	case creative > defaults:
		pattern = "Adventurous"
	case creative == defaults:
		pattern = "Balanced"
	}

	var silences int
	for _, i := range interactions {
		if i.InteractionType == entity.InteractionSilence || i.InteractionType == entity.InteractionDefaultPath {
			silences++
		}
	}

	var hesitation float64
	if len(interactions) > 0 {
		hesitation = float64(silences) / float64(len(interactions))
	}

	confidence := "Low"
	switch {
	case hesitation < 0.2:
		confidence = "High"
	case hesitation < 0.4:
		confidence = "Medium"
	}

	return entity.PsychologistMetrics{
		DecisionPattern: pattern,
		CreativeChoices: creative,
		DefaultChoices:  defaults,
		SilencePeriods:  silences,
		HesitationRate:  round2(hesitation),
		ConfidenceLevel: confidence,
	}
}

func sessionMetrics(interactions []*entity.Interaction, choices []*entity.Choice, pages []*entity.StoryPage) entity.SessionMetrics {
	metrics := entity.SessionMetrics{
		TotalInteractions: len(interactions),
		ChoicesMade:       len(choices),
		PagesCompleted:    len(pages),
		AvgResponseTime:   int(math.Round(avgResponseTime(interactions))),
		TimeSpentPerPage:  make([]entity.PageTime, 0, len(pages)),
	}

	for _, i := range interactions {
		switch i.InteractionType {
		case entity.InteractionVoiceInput:
			metrics.VoiceInputs++
		case entity.InteractionSilence:
			metrics.SilencePeriods++
		}
	}

	for _, choice := range choices {
		if choice.WasDefault {
			metrics.DefaultChoices++
		} else {
			metrics.CreativeChoices++
		}
	}

	for _, page := range pages {
		metrics.TimeSpentPerPage = append(metrics.TimeSpentPerPage, entity.PageTime{
			Page:      page.PageNumber,
			TimeSpent: page.TimeSpentSeconds,
		})
	}

	return metrics
}

// avgResponseTime averages only interactions that carry a measured
// response time.
func avgResponseTime(interactions []*entity.Interaction) float64 {
	var sum, n int
	for _, i := range interactions {
		if i.ResponseTimeMs > 0 {
			sum += i.ResponseTimeMs
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
