package assets

import "fmt"

// Element describes the generation prompt and expected variants for one
// category of UI art.
type Element struct {
	Category   Category
	BasePrompt string
	Variants   []string
}

var elementCatalog = map[Category]Element{
	CategoryKnobs: {
		Category:   CategoryKnobs,
		BasePrompt: "Victorian steampunk brass rotary knob with verdigris patina, aether crystal center, ornate filigree, top-down view, transparent background, 4k",
		Variants:   []string{"small", "medium", "large", "parameter"},
	},
	CategorySliders: {
		Category:   CategorySliders,
		BasePrompt: "Art Deco brass vertical slider rail with golden highlights, Victorian gothic design, transparent background, 4k",
		Variants:   []string{"vertical", "horizontal", "thumb", "track"},
	},
	CategoryButtons: {
		Category:   CategoryButtons,
		BasePrompt: "Gilded brass Victorian button with ornate border, steampunk mechanical details, transparent background, 4k",
		Variants:   []string{"round", "square", "ornate", "simple"},
	},
	CategoryPanels: {
		Category:   CategoryPanels,
		BasePrompt: "Steampunk brass panel with Art Deco border, rivets, verdigris patina, gothic Victorian design, transparent background, 4k",
		Variants:   []string{"background", "frame", "inset", "raised"},
	},
	CategoryDecorative: {
		Category:   CategoryDecorative,
		BasePrompt: "Victorian steampunk brass decorative element, filigree pattern, golden highlights, transparent background, 4k",
		Variants:   []string{"corner", "divider", "ornament", "pattern"},
	},
	CategoryFrames: {
		Category:   CategoryFrames,
		BasePrompt: "Ornate brass Victorian frame with Art Deco styling, steampunk details, transparent background, 4k",
		Variants:   []string{"rectangular", "circular", "oval", "label_plate"},
	},
	CategoryIndicators: {
		Category:   CategoryIndicators,
		BasePrompt: "Aether crystal indicator light, glowing cyan energy, brass Victorian housing, transparent background, 4k",
		Variants:   []string{"active", "inactive", "warning", "ready"},
	},
}

// BatchSizes are the square sizes the batch processor renders.
var BatchSizes = []int{64, 128, 256, 512}

// GenerationSize is the canvas size requested from image generators.
const GenerationSize = 1024

// LookupElement returns the catalog entry for a category.
func LookupElement(c Category) (Element, bool) {
	e, ok := elementCatalog[c]
	if ok {
		e.Variants = append([]string(nil), e.Variants...)
	}
	return e, ok
}

// Prompt builds the generation prompt for one variant of the element.
func (e Element) Prompt(variant string) string {
	return fmt.Sprintf("%s, %s variant", e.BasePrompt, variant)
}
