package story

import "strings"

// planetGazetteer lists the eight planets scanned when the response
// matches none of the suggested options. Order is fixed; the first
// substring hit wins.
var planetGazetteer = []string{
	"mercury", "venus", "earth", "mars", "jupiter", "saturn", "uranus", "neptune",
}

// Classification is the outcome of matching a child's spoken response
// against a page's options.
type Classification struct {
	Matched         bool
	Choice          string
	WasDefault      bool
	Creative        bool
	ExtractedPlanet string
}

// Classify decides which option a response selects. Matching order:
// suggested options, then the planet gazetteer, then the page-2
// creative fallback, then the page's configured default.
func Classify(pageNumber int, response string, suggestedOptions []string) Classification {
	normalized := strings.ToLower(strings.TrimSpace(response))

	for _, option := range suggestedOptions {
		if strings.Contains(normalized, strings.ToLower(option)) {
			return Classification{
				Matched: true,
				Choice:  option,
			}
		}
	}

	for _, planet := range planetGazetteer {
		if strings.Contains(normalized, planet) {
			name := capitalize(planet)
			return Classification{
				Matched:         true,
				Choice:          name,
				ExtractedPlanet: name,
			}
		}
	}

	// A kid saying "any planet!" on the choice page still counts as an
	// active choice, routed to the default destination.
	if pageNumber == 2 && (strings.Contains(normalized, "planet") || strings.Contains(normalized, "space")) {
		return Classification{
			Matched:  true,
			Choice:   DefaultPlanet,
			Creative: true,
		}
	}

	return Classification{
		Choice:     defaultChoice(pageNumber, suggestedOptions),
		WasDefault: true,
	}
}

func defaultChoice(pageNumber int, suggestedOptions []string) string {
	if content, ok := pages[pageNumber]; ok && content.DefaultChoice != "" {
		return content.DefaultChoice
	}
	if len(suggestedOptions) > 0 {
		return suggestedOptions[0]
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
