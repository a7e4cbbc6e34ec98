package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMatchesSuggestedOption(t *testing.T) {
	c := Classify(2, "I want to go to JUPITER please!", []string{"Mars", "Jupiter", "Saturn"})

	assert.True(t, c.Matched)
	assert.Equal(t, "Jupiter", c.Choice)
	assert.False(t, c.WasDefault)
	assert.False(t, c.Creative)
}

func TestClassifyExtractsPlanetOutsideOptions(t *testing.T) {
	c := Classify(2, "let's visit neptune", []string{"Mars", "Jupiter", "Saturn"})

	assert.True(t, c.Matched)
	assert.Equal(t, "Neptune", c.Choice)
	assert.Equal(t, "Neptune", c.ExtractedPlanet)
	assert.False(t, c.WasDefault)
}

func TestClassifyCreativeFallbackOnPageTwo(t *testing.T) {
	c := Classify(2, "any planet is fine!", []string{"Mars", "Jupiter", "Saturn"})

	assert.True(t, c.Matched)
	assert.True(t, c.Creative)
	assert.Equal(t, DefaultPlanet, c.Choice)
}

func TestClassifyCreativeFallbackOnlyOnPageTwo(t *testing.T) {
	c := Classify(3, "something about space", []string{"fly closer", "keep safe", "stay away"})

	assert.False(t, c.Matched)
	assert.True(t, c.WasDefault)
	assert.Equal(t, "keep safe", c.Choice)
}

func TestClassifyFallsBackToPageDefault(t *testing.T) {
	c := Classify(2, "", []string{"Mars", "Jupiter", "Saturn"})

	assert.False(t, c.Matched)
	assert.True(t, c.WasDefault)
	assert.Equal(t, "Mars", c.Choice)
}

func TestClassifyFallsBackToFirstOptionWithoutPageDefault(t *testing.T) {
	c := Classify(7, "mumble", []string{"left", "right"})

	assert.True(t, c.WasDefault)
	assert.Equal(t, "left", c.Choice)
}

func TestClassifyOptionWinsOverGazetteer(t *testing.T) {
	// Options are checked before the gazetteer, so a response naming
	// both an option and a planet selects the option.
	c := Classify(3, "fly closer to mars", []string{"fly closer", "keep safe"})

	assert.True(t, c.Matched)
	assert.Equal(t, "fly closer", c.Choice)
	assert.Empty(t, c.ExtractedPlanet)
}
