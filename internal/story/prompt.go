package story

import (
	"fmt"
	"strings"
)

type destination struct {
	keyword string
	name    string
	desc    string
	color   string
}

// Declaration order matters: the first keyword found in the kid's
// response wins.
var spaceDestinations = []destination{
	{"moon", "the Moon", "grey cratered surface with deep craters and mountains", "silver-grey"},
	{"sun", "the Sun", "massive glowing golden sphere with solar flares (viewed from safe distance)", "bright yellow-orange"},
	{"mars", "Mars", "rusty red desert planet with enormous canyons and volcanoes", "rusty red"},
	{"jupiter", "Jupiter", "giant striped gas planet with the Great Red Spot storm", "orange and brown stripes"},
	{"saturn", "Saturn", "beautiful ringed planet with icy rings surrounding it", "pale yellow with white rings"},
	{"venus", "Venus", "bright cloudy planet with thick yellow atmosphere", "pale yellow"},
	{"mercury", "Mercury", "small grey rocky planet covered in craters", "dark grey"},
	{"uranus", "Uranus", "tilted blue-green ice giant with faint rings", "cyan blue"},
	{"neptune", "Neptune", "deep blue windy planet with swirling storms", "deep blue"},
	{"pluto", "Pluto", "small icy dwarf planet with a heart-shaped ice region", "tan and white"},
	{"earth", "Earth", "beautiful blue marble with swirling white clouds and green continents", "blue and green"},
	{"asteroid", "asteroid belt", "field of rocky space rocks tumbling through space", "grey and brown"},
	{"comet", "comet", "bright glowing comet with a spectacular tail of ice and dust", "white and blue glow"},
	{"star", "stars", "countless twinkling stars of different colors filling the cosmos", "white, blue, red sparkles"},
	{"space station", "space station", "futuristic orbital station with spinning modules and solar panels", "silver and white"},
	{"black hole", "black hole", "mysterious dark void with swirling accretion disk (at safe distance)", "dark with orange glow"},
	{"galaxy", "galaxy", "beautiful spiral galaxy with billions of stars swirling", "purple and white spiral"},
	{"nebula", "nebula", "colorful glowing cloud of gas and stardust in vibrant colors", "pink, purple, and blue"},
}

var poses = []string{
	"waving excitedly with both arms up",
	"floating with arms spread wide in amazement",
	"pressing hands and face against the window in wonder",
	"pointing enthusiastically toward space",
	"doing a happy floating spin",
	"giving a big thumbs up with a huge smile",
}

var emotions = []string{
	"eyes wide with wonder and amazement",
	"laughing with pure joy",
	"gasping in awe with mouth open",
	"beaming with excitement",
	"filled with curiosity and delight",
	"radiating happiness and adventure",
}

// ImagePrompt is a rendered illustration prompt for one page.
type ImagePrompt struct {
	Prompt      string
	Destination string
	Context     string
	ColorTheme  string
}

// DynamicImagePrompt builds the illustration prompt for a page from
// whatever celestial body the kid actually mentioned, falling back to
// the session's chosen planet. Pose and emotion are picked by page
// number, so the same page always renders the same way.
func DynamicImagePrompt(pageNumber int, kidResponse, chosenPlanet string) ImagePrompt {
	response := strings.ToLower(kidResponse)

	var dest *destination
	for i := range spaceDestinations {
		if strings.Contains(response, spaceDestinations[i].keyword) {
			dest = &spaceDestinations[i]
			break
		}
	}

	if dest == nil {
		dest = lookupPlanet(chosenPlanet)
	}

	pose := poses[pageNumber%len(poses)]
	emotion := emotions[(pageNumber+1)%len(emotions)]

	var prompt string
	switch pageNumber {
	case 2:
		prompt = fmt.Sprintf("A young child astronaut in a brightly colored space suit (%s accents visible), %s, %s. Viewing %s through a large curved spacecraft window. %s fills the window view showing %s. The window frame has fun glowing buttons and controls. Spectacular space vista. MUST BE UNIQUE: Include unique details like floating star-shaped toys or planet stickers on the window. Children's book illustration, Pixar animation style, vibrant %s color scheme, ultra detailed, whimsical, 4K quality.",
			dest.color, pose, emotion, dest.name, dest.name, dest.desc, dest.color)
	case 3:
		prompt = fmt.Sprintf("A young child astronaut %s in zero gravity inside a colorful spacecraft, %s. %s visible through background window showing %s. Floating around: a plush teddy bear, colorful juice pouches, crayons, and small books. Spacecraft has %s accent lighting. MUST BE UNIQUE: Add specific objects like floating bubbles or a toy rocket ship. The scene captures the magic of weightlessness. Children's book illustration, Pixar style, playful composition, rich %s palette, highly detailed, sense of wonder.",
			pose, emotion, dest.name, dest.desc, dest.color, dest.color)
	case 4:
		prompt = fmt.Sprintf("A young child astronaut standing on %s surface or floating near it, %s, %s. %s landscape dominates the view with %s prominently featured. Their small spacecraft visible in the distance. Earth as a tiny blue dot far away in the black star-filled sky. MUST BE UNIQUE: Include distinctive %s features (like %s terrain or unique formations). Epic hero shot. Children's book illustration, cinematic composition, breathtaking %s vista, Pixar animation quality, inspirational, educational, 4K detailed.",
			dest.name, pose, emotion, dest.name, dest.desc, dest.keyword, dest.color, dest.color)
	default:
		prompt = fmt.Sprintf("A young child astronaut on an incredible space adventure near %s, %s, %s. %s creates a stunning backdrop. The scene shows %s cosmic beauty. MUST BE UNIQUE: Include whimsical space elements specific to this moment. Children's book illustration, vibrant Pixar style, %s color palette, magical, inspiring, highly detailed.",
			dest.name, pose, emotion, dest.desc, dest.color, dest.color)
	}

	return ImagePrompt{
		Prompt:      prompt,
		Destination: dest.name,
		Context:     kidResponse,
		ColorTheme:  dest.color,
	}
}

func lookupPlanet(chosenPlanet string) *destination {
	key := strings.ToLower(chosenPlanet)
	for i := range spaceDestinations {
		if spaceDestinations[i].keyword == key {
			return &spaceDestinations[i]
		}
	}
	return &destination{keyword: key, name: chosenPlanet, desc: "a fascinating planet", color: "colorful"}
}
