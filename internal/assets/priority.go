package assets

// AssetSpec describes one photographed texture to extract.
type AssetSpec struct {
	// SourceFile is the photo's file name under the originals root.
	SourceFile string
	// OutputName is the base name of every file produced for this asset.
	OutputName string
	Category   Category
	// Background is the colour keyed out of the photo.
	Background RGB
	// Threshold is the per-channel tolerance; pixels closer than
	// Threshold*3 to Background become transparent.
	Threshold int
}

// ExtractSizes are the square canvas sizes produced by the extractor.
var ExtractSizes = []int{64, 128, 256}

// priorityAssets is the hand-curated tier 1 and 2 extraction table.
var priorityAssets = []AssetSpec{
	{"IMG_8148.JPG", "label_brass_plate", CategoryFrames, RGB{180, 170, 160}, 40},
	{"IMG_8150.JPG", "knob_ornate_filigree", CategoryKnobs, RGB{10, 20, 30}, 30},
	{"IMG_8183.JPG", "knob_astrolabe_rings", CategoryKnobs, RGB{5, 5, 5}, 25},
	{"IMG_8200.JPG", "knob_clock_face", CategoryKnobs, RGB{10, 15, 20}, 30},
	{"IMG_8135.JPG", "frame_oval_victorian", CategoryFrames, RGB{5, 5, 5}, 25},
	{"IMG_8125.JPG", "frame_art_deco_panel", CategoryFrames, RGB{60, 100, 100}, 50},
	{"IMG_8168.JPG", "button_cross_ornate", CategoryButtons, RGB{180, 180, 180}, 40},
	{"IMG_8250.JPG", "slider_brass_vertical", CategorySliders, RGB{200, 195, 190}, 40},
	{"IMG_8180.JPG", "pointer_aether_staff", CategorySliders, RGB{170, 170, 170}, 40},
	{"IMG_8213.JPG", "texture_honeycomb_brass", CategoryDecorative, RGB{170, 170, 170}, 40},
}

// PriorityAssets returns a copy of the priority extraction table.
func PriorityAssets() []AssetSpec {
	out := make([]AssetSpec, len(priorityAssets))
	copy(out, priorityAssets)
	return out
}
