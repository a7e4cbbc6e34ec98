package analytics

import (
	"testing"

	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func voice(input string, responseMs int) *entity.Interaction {
	return &entity.Interaction{
		InteractionType: entity.InteractionVoiceInput,
		UserInput:       strPtr(input),
		ResponseTimeMs:  responseMs,
	}
}

func silence() *entity.Interaction {
	return &entity.Interaction{InteractionType: entity.InteractionSilence}
}

func choice(kidChoice string, wasDefault bool) *entity.Choice {
	return &entity.Choice{KidChoice: kidChoice, WasDefault: wasDefault}
}

func TestParentMetricsEmpty(t *testing.T) {
	m := parentMetrics(nil, nil)

	assert.Empty(t, m.FavoriteChoices)
	assert.Equal(t, 0, m.AvgResponseTime)
	assert.Equal(t, 0, m.TotalEngagement)
	assert.Equal(t, "High", m.EngagementLevel)
}

func TestParentMetricsFavoritesAndEngagement(t *testing.T) {
	interactions := []*entity.Interaction{
		voice("mars", 3000),
		voice("jupiter", 7000),
		silence(),
	}
	choices := []*entity.Choice{
		choice("Mars", false),
		choice("Mars", false),
		choice("Jupiter", false),
	}

	m := parentMetrics(interactions, choices)

	assert.Equal(t, []entity.ChoiceCount{
		{Choice: "Mars", Count: 2},
		{Choice: "Jupiter", Count: 1},
	}, m.FavoriteChoices)
	assert.Equal(t, 5000, m.AvgResponseTime)
	assert.Equal(t, 3, m.TotalEngagement)
	assert.Equal(t, "Medium", m.EngagementLevel)
}

func TestParentMetricsEngagementThresholds(t *testing.T) {
	fast := parentMetrics([]*entity.Interaction{voice("hi", 1000)}, nil)
	assert.Equal(t, "High", fast.EngagementLevel)

	slow := parentMetrics([]*entity.Interaction{voice("hm", 12000)}, nil)
	assert.Equal(t, "Low", slow.EngagementLevel)
}

func TestTeacherMetricsVocabulary(t *testing.T) {
	interactions := []*entity.Interaction{
		voice("mars", 0),
		voice("I want to visit the big red planet", 0),
		silence(),
	}
	pages := []*entity.StoryPage{
		{EducationalConcept: "solar_system_planets"},
		{EducationalConcept: "gravity"},
		{EducationalConcept: "introduction"},
	}

	m := teacherMetrics(interactions, pages)

	assert.Equal(t, 1, m.ConceptCoverage["solar_system_planets"])
	assert.Equal(t, 1, m.ConceptCoverage["gravity"])
	assert.Equal(t, 0, m.ConceptCoverage["sun_is_a_star"])
	assert.NotContains(t, m.ConceptCoverage, "introduction")
	assert.Equal(t, 2, m.TotalResponses)
	assert.Equal(t, 4.5, m.AvgWordCount)
	assert.Equal(t, "Moderate", m.VocabularyLevel)
}

func TestTeacherMetricsEmptyIsSimple(t *testing.T) {
	m := teacherMetrics(nil, nil)

	assert.Equal(t, 0, m.TotalResponses)
	assert.Equal(t, 0.0, m.AvgWordCount)
	assert.Equal(t, "Simple", m.VocabularyLevel)
}

func TestPsychologistMetricsPatterns(t *testing.T) {
	adventurous := psychologistMetrics(nil, []*entity.Choice{
		choice("Mars", false),
		choice("fly closer", false),
		choice("keep safe", true),
	})
	assert.Equal(t, "Adventurous", adventurous.DecisionPattern)
	assert.Equal(t, 2, adventurous.CreativeChoices)
	assert.Equal(t, 1, adventurous.DefaultChoices)

	balanced := psychologistMetrics(nil, []*entity.Choice{
		choice("Mars", false),
		choice("keep safe", true),
	})
	assert.Equal(t, "Balanced", balanced.DecisionPattern)

	cautious := psychologistMetrics(nil, []*entity.Choice{
		choice("Mars", true),
	})
	assert.Equal(t, "Cautious", cautious.DecisionPattern)
}

func TestPsychologistMetricsHesitation(t *testing.T) {
	interactions := []*entity.Interaction{
		voice("mars", 1000),
		silence(),
		{InteractionType: entity.InteractionDefaultPath},
		voice("jupiter", 1000),
	}

	m := psychologistMetrics(interactions, nil)

	assert.Equal(t, 2, m.SilencePeriods)
	assert.Equal(t, 0.5, m.HesitationRate)
	assert.Equal(t, "Low", m.ConfidenceLevel)
	assert.GreaterOrEqual(t, m.HesitationRate, 0.0)
	assert.LessOrEqual(t, m.HesitationRate, 1.0)
}

func TestPsychologistMetricsEmptyIsConfident(t *testing.T) {
	m := psychologistMetrics(nil, nil)

	assert.Equal(t, 0.0, m.HesitationRate)
	assert.Equal(t, "High", m.ConfidenceLevel)
	assert.Equal(t, "Balanced", m.DecisionPattern)
}

func TestSessionMetrics(t *testing.T) {
	interactions := []*entity.Interaction{
		voice("mars", 4000),
		silence(),
		{InteractionType: entity.InteractionPhotoUpload},
	}
	choices := []*entity.Choice{
		choice("Mars", false),
		choice("keep safe", true),
	}
	pages := []*entity.StoryPage{
		{PageNumber: 2, TimeSpentSeconds: 4},
		{PageNumber: 3, TimeSpentSeconds: 7},
	}

	m := sessionMetrics(interactions, choices, pages)

	assert.Equal(t, 3, m.TotalInteractions)
	assert.Equal(t, 1, m.VoiceInputs)
	assert.Equal(t, 1, m.SilencePeriods)
	assert.Equal(t, 4000, m.AvgResponseTime)
	assert.Equal(t, 2, m.ChoicesMade)
	assert.Equal(t, 1, m.DefaultChoices)
	assert.Equal(t, 1, m.CreativeChoices)
	assert.Equal(t, 2, m.PagesCompleted)
	assert.Equal(t, []entity.PageTime{{Page: 2, TimeSpent: 4}, {Page: 3, TimeSpent: 7}}, m.TimeSpentPerPage)
}

func TestMetricsOrderIndependence(t *testing.T) {
	a := []*entity.Interaction{voice("one two three", 2000), silence(), voice("four", 6000)}
	b := []*entity.Interaction{voice("four", 6000), voice("one two three", 2000), silence()}

	assert.Equal(t, parentMetrics(a, nil), parentMetrics(b, nil))
	assert.Equal(t, teacherMetrics(a, nil), teacherMetrics(b, nil))
	assert.Equal(t, psychologistMetrics(a, nil), psychologistMetrics(b, nil))
}
