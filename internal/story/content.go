// Package story holds the fixed five-page space adventure: page
// content, response classification and illustration prompt building.
package story

import (
	"fmt"
	"strings"

	"github.com/heyverne/verne-backend/internal/entity"
)

const planetPlaceholder = "{chosenPlanet}"

// DefaultPlanet is used whenever no destination has been chosen yet.
const DefaultPlanet = "Mars"

// PageContent is one narrative beat of the adventure.
type PageContent struct {
	PageNumber         int
	EducationalConcept string
	StoryText          string
	AgentPrompt        string
	SuggestedOptions   []string
	DefaultChoice      string
}

var pages = map[int]PageContent{
	1: {
		PageNumber:         1,
		EducationalConcept: "introduction",
		StoryText:          "Hi! I'm Captain Verne! Ready for a space adventure? Before we blast off, let's take a picture of you so you can be the hero!",
		AgentPrompt:        "Say 'ready' when you've uploaded your photo!",
		SuggestedOptions:   []string{"ready", "yes"},
	},
	2: {
		PageNumber:         2,
		EducationalConcept: "solar_system_planets",
		StoryText:          "Wow! Look at you in your space suit! We're blasting off from Earth. Whoosh! See all those colorful balls? Those are the 8 planets in our solar system! Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, and Neptune. They all go around the sun!",
		AgentPrompt:        "Which planet should we visit first? Mars, the red planet, or Jupiter, the biggest planet?",
		SuggestedOptions:   []string{"Mars", "Jupiter", "Saturn"},
		DefaultChoice:      "Mars",
	},
	3: {
		PageNumber:         3,
		EducationalConcept: "sun_is_a_star",
		StoryText:          "Amazing choice! As we zoom through space, look at that bright ball of light! That's the sun. The sun isn't just a light - it's actually a star! A giant, glowing star that gives us light and keeps us warm. Pretty cool, right?",
		AgentPrompt:        "Should we fly closer to learn more about the sun, or keep a safe distance?",
		SuggestedOptions:   []string{"fly closer", "keep safe", "stay away"},
		DefaultChoice:      "keep safe",
	},
	4: {
		PageNumber:         4,
		EducationalConcept: "gravity",
		StoryText:          "Good thinking! Now we're at {chosenPlanet}. Whee! Feel that? In space you float around because there's no gravity. But when we get close to a planet, gravity pulls us down! Gravity is like an invisible hug that keeps everything from floating away. It's what keeps the planets spinning around the sun!",
		AgentPrompt:        "Do you want to explore the planet's surface or fly around it in orbit?",
		SuggestedOptions:   []string{"explore surface", "fly around", "orbit"},
		DefaultChoice:      "explore surface",
	},
	5: {
		PageNumber:         5,
		EducationalConcept: "conclusion",
		StoryText:          "What an adventure! Time to head home. You learned so much today! Remember: our solar system has 8 planets, the sun is a bright star, and gravity keeps everything together. You're now an official space explorer! Great job!",
	},
}

// PageFor returns the content for a page with the chosen planet
// substituted into the text. Pages outside 1..5 are an error.
func PageFor(pageNumber int, chosenPlanet string) (*PageContent, error) {
	content, ok := pages[pageNumber]
	if !ok {
		return nil, fmt.Errorf("%w: %d", entity.ErrInvalidPage, pageNumber)
	}

	if chosenPlanet == "" {
		chosenPlanet = DefaultPlanet
	}

	page := content
	page.StoryText = strings.Replace(page.StoryText, planetPlaceholder, chosenPlanet, 1)
	page.SuggestedOptions = append([]string(nil), content.SuggestedOptions...)

	return &page, nil
}

// Pages 2 through 4 get one generated illustration; the intro page is
// the photo upload and the conclusion reuses earlier art.
func NeedsIllustration(pageNumber int) bool {
	return pageNumber >= 2 && pageNumber <= 4
}
