package story

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDynamicImagePromptPrefersMentionedDestination(t *testing.T) {
	p := DynamicImagePrompt(3, "I saw a COMET with a big tail!", "Mars")

	assert.Equal(t, "comet", strings.ToLower(p.Destination))
	assert.Contains(t, p.Prompt, "comet")
	assert.Equal(t, "white and blue glow", p.ColorTheme)
}

func TestDynamicImagePromptFallsBackToChosenPlanet(t *testing.T) {
	p := DynamicImagePrompt(4, "wow cool", "Saturn")

	assert.Equal(t, "Saturn", p.Destination)
	assert.Contains(t, p.Prompt, "Saturn")
	assert.Contains(t, p.Prompt, "rings")
}

func TestDynamicImagePromptUnknownPlanetStaysUsable(t *testing.T) {
	p := DynamicImagePrompt(2, "", "Krypton")

	assert.Equal(t, "Krypton", p.Destination)
	assert.Equal(t, "colorful", p.ColorTheme)
	assert.Contains(t, p.Prompt, "Krypton")
}

func TestDynamicImagePromptIsDeterministicPerPage(t *testing.T) {
	a := DynamicImagePrompt(2, "mars", "Mars")
	b := DynamicImagePrompt(2, "mars", "Mars")
	assert.Equal(t, a.Prompt, b.Prompt)

	c := DynamicImagePrompt(3, "mars", "Mars")
	assert.NotEqual(t, a.Prompt, c.Prompt)
}

func TestDynamicImagePromptKeywordOrder(t *testing.T) {
	// The moon is listed before mars, so a response naming both goes
	// to the moon.
	p := DynamicImagePrompt(2, "the moon near mars", "Jupiter")

	assert.Equal(t, "the Moon", p.Destination)
}
