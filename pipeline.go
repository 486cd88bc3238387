package previewcard

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/eringen/previewcard/render"
	"github.com/eringen/previewcard/textfit"
)

// Renderer turns a composed card into encoded image bytes.
type Renderer interface {
	Render(ctx context.Context, card render.Card) ([]byte, error)
}

// Result is a generated (or cache-served) image.
type Result struct {
	Data        []byte
	ContentType string
	CacheHit    bool
}

// Pipeline orchestrates one image request: cache check, title resolution,
// variant lookup, asset resolution, text fitting, render, cache write.
// Every stage after the cache check is strictly sequential and terminal on
// failure; nothing is retried.
type Pipeline struct {
	cache    *RenderCache
	assets   *AssetCache
	variants *Registry
	titles   TitleSource
	renderer Renderer
	logger   echo.Logger
}

// NewPipeline wires the pipeline's collaborators together.
func NewPipeline(cache *RenderCache, assets *AssetCache, variants *Registry, titles TitleSource, renderer Renderer, logger echo.Logger) *Pipeline {
	return &Pipeline{
		cache:    cache,
		assets:   assets,
		variants: variants,
		titles:   titles,
		renderer: renderer,
		logger:   logger,
	}
}

// Generate produces the image for req. fullURL is the complete request URL
// as received; it is the sole input to the cache key. With BypassCache set
// the read is skipped but the fresh render is still written back, so a
// forced regeneration repopulates the entry instead of disabling caching.
func (p *Pipeline) Generate(ctx context.Context, req RenderRequest, fullURL string) (Result, error) {
	key := CacheKey(fullURL)

	if !req.BypassCache {
		data, contentType, ok, err := p.cache.Get(ctx, key)
		if err != nil {
			return Result{}, err
		}
		if ok {
			return Result{Data: data, ContentType: contentType, CacheHit: true}, nil
		}
	}

	doc, err := p.titles.FetchPage(ctx, req.Page)
	if err != nil {
		return Result{}, err
	}
	parts, err := ParseTitle(doc, req.Subtitle)
	if err != nil {
		return Result{}, err
	}

	variant, err := p.variants.Get(req.Variant)
	if err != nil {
		return Result{}, err
	}
	assets, err := p.assets.Resolve(ctx, req.Variant, variant)
	if err != nil {
		return Result{}, err
	}

	card, err := composeCard(variant, assets, parts)
	if err != nil {
		return Result{}, err
	}
	data, err := p.renderer.Render(ctx, card)
	if err != nil {
		return Result{}, WrapError(ErrCodeInternal, err, "render page %s", req.Page)
	}

	// Write-before-respond. A failed write is logged and absorbed: the
	// image exists and must still reach the caller.
	if err := p.cache.Put(ctx, key, data, "image/png"); err != nil {
		p.logger.Errorf("render cache write for key %s failed: %v", key, err)
	}

	return Result{Data: data, ContentType: "image/png"}, nil
}

// composeCard fits the classified title text into the variant's style and
// assembles the styled node description handed to the renderer.
func composeCard(variant Variant, assets VariantAssets, parts TitleParts) (render.Card, error) {
	textColor, err := render.ParseHexColor(variant.TextColor)
	if err != nil {
		return render.Card{}, WrapError(ErrCodeInternal, err, "variant text color")
	}
	shadow, err := render.ParseShadow(variant.TextShadow)
	if err != nil {
		return render.Card{}, WrapError(ErrCodeInternal, err, "variant text shadow")
	}

	titleEnv := textfit.TitleSolo
	if parts.Subtitle != "" {
		titleEnv = textfit.TitleWithSubtitle
	}

	style := render.Style{
		Family: variant.FontFamily,
		Weight: variant.FontWeight,
		Color:  textColor,
		Shadow: shadow,
	}

	titleBlock := textfit.Fit(parts.Title, titleEnv)
	titleStyle := style
	titleStyle.SizePx = titleBlock.SizePx
	blocks := []render.Block{{Lines: titleBlock.Lines, Style: titleStyle}}

	if parts.Subtitle != "" {
		subBlock := textfit.Fit(parts.Subtitle, textfit.Subtitle)
		subStyle := style
		subStyle.SizePx = subBlock.SizePx
		blocks = append(blocks, render.Block{Lines: subBlock.Lines, Style: subStyle})
	}

	return render.Card{
		Width:      CanvasWidth,
		Height:     CanvasHeight,
		Background: assets.Background,
		Font:       assets.Font,
		Blocks:     blocks,
	}, nil
}
