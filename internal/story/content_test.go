package story

import (
	"testing"

	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageForReturnsAllPages(t *testing.T) {
	for n := entity.FirstPage; n <= entity.LastPage; n++ {
		page, err := PageFor(n, "")
		require.NoError(t, err)
		assert.Equal(t, n, page.PageNumber)
		assert.NotEmpty(t, page.StoryText)
		assert.NotEmpty(t, page.EducationalConcept)
	}
}

func TestPageForRejectsUnknownPages(t *testing.T) {
	for _, n := range []int{0, 6, -1, 100} {
		_, err := PageFor(n, "")
		assert.ErrorIs(t, err, entity.ErrInvalidPage)
	}
}

func TestPageForSubstitutesChosenPlanet(t *testing.T) {
	page, err := PageFor(4, "Jupiter")
	require.NoError(t, err)

	assert.Contains(t, page.StoryText, "Jupiter")
	assert.NotContains(t, page.StoryText, "{chosenPlanet}")
}

func TestPageForDefaultsPlanetWhenUnset(t *testing.T) {
	page, err := PageFor(4, "")
	require.NoError(t, err)

	assert.Contains(t, page.StoryText, DefaultPlanet)
}

func TestPageForDoesNotMutateSharedContent(t *testing.T) {
	page, err := PageFor(2, "")
	require.NoError(t, err)

	page.SuggestedOptions[0] = "mutated"

	again, err := PageFor(2, "")
	require.NoError(t, err)
	assert.Equal(t, "Mars", again.SuggestedOptions[0])
}

func TestNeedsIllustration(t *testing.T) {
	assert.False(t, NeedsIllustration(1))
	assert.True(t, NeedsIllustration(2))
	assert.True(t, NeedsIllustration(3))
	assert.True(t, NeedsIllustration(4))
	assert.False(t, NeedsIllustration(5))
}
