package previewcard

// Canvas dimensions for every generated preview image.
const (
	CanvasWidth  = 1200
	CanvasHeight = 630
)

// Variant is a named, statically configured visual style for generated
// images. Variants are defined at startup and never change while the
// process is running.
type Variant struct {
	Background string `toml:"background"`  // asset path of the background image
	Font       string `toml:"font"`        // asset path of the font file
	FontFamily string `toml:"font_family"` // font family name carried into the render
	FontWeight string `toml:"font_weight"` // CSS-style weight, e.g. "700"
	TextColor  string `toml:"text_color"`  // hex color, e.g. "#333333"
	TextShadow string `toml:"text_shadow"` // "dx dy #color", empty for none
}

// RenderRequest is the normalized form of an inbound /image request.
type RenderRequest struct {
	Page        string // wiki page slug, required
	Variant     string // variant name, defaults to "normal"
	Subtitle    string // explicit subtitle override, may be empty
	BypassCache bool   // skip the render-cache read, always write back
}

// TitleParts is the classified (title, subtitle) pair for one request.
// An empty Subtitle means the image carries a title block only.
type TitleParts struct {
	Title    string
	Subtitle string
}

// VariantAssets holds the decoded binary assets for one variant.
type VariantAssets struct {
	Font       []byte
	Background []byte
}
