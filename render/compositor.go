package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	// lineHeightRatio converts a font size to the vertical advance between
	// consecutive baselines of one block.
	lineHeightRatio = 1.3

	// blockGapPx separates consecutive text blocks vertically.
	blockGapPx = 36

	fontDPI = 72
)

// Compositor renders Cards to PNG.
type Compositor struct{}

// NewCompositor creates a Compositor.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// placedLine is one line of text with its style face and absolute baseline,
// the output of the layout stage.
type placedLine struct {
	text     string
	style    Style
	face     font.Face
	baseline int
}

// Render composites the card and returns encoded PNG bytes.
func (r *Compositor) Render(ctx context.Context, card Card) ([]byte, error) {
	parsed, err := opentype.Parse(card.Font)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, card.Width, card.Height))
	if err := drawBackground(canvas, card.Background); err != nil {
		return nil, err
	}

	lines, faces, err := layout(parsed, card)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()

	for _, line := range lines {
		drawLine(canvas, line, card.Width)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawBackground fills the canvas white, then scales the background image
// to cover it, centered, cropping whatever overflows.
func drawBackground(canvas *image.RGBA, encoded []byte) error {
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	if len(encoded) == 0 {
		return nil
	}
	bg, _, err := image.Decode(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("decode background: %w", err)
	}
	srcBounds := bg.Bounds()
	sw, sh := srcBounds.Dx(), srcBounds.Dy()
	cw, ch := canvas.Bounds().Dx(), canvas.Bounds().Dy()

	scale := float64(cw) / float64(sw)
	if s := float64(ch) / float64(sh); s > scale {
		scale = s
	}
	dw := int(float64(sw)*scale + 0.5)
	dh := int(float64(sh)*scale + 0.5)
	offset := image.Pt((cw-dw)/2, (ch-dh)/2)
	dst := image.Rectangle{Min: offset, Max: offset.Add(image.Pt(dw, dh))}

	draw.CatmullRom.Scale(canvas, dst, bg, srcBounds, draw.Over, nil)
	return nil
}

// layout builds a face per block and places every line so that the whole
// text group is vertically centered on the canvas.
func layout(parsed *sfnt.Font, card Card) ([]placedLine, []font.Face, error) {
	var faces []font.Face
	blockFaces := make([]font.Face, len(card.Blocks))
	totalHeight := 0
	for i, block := range card.Blocks {
		if len(block.Lines) == 0 {
			continue
		}
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    block.Style.SizePx,
			DPI:     fontDPI,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("font face at %.0fpx: %w", block.Style.SizePx, err)
		}
		faces = append(faces, face)
		blockFaces[i] = face

		if totalHeight > 0 {
			totalHeight += blockGapPx
		}
		totalHeight += len(block.Lines) * lineHeight(block.Style.SizePx)
	}

	y := (card.Height - totalHeight) / 2
	var lines []placedLine
	for i, block := range card.Blocks {
		if len(block.Lines) == 0 {
			continue
		}
		face := blockFaces[i]
		ascent := face.Metrics().Ascent.Ceil()
		lh := lineHeight(block.Style.SizePx)
		for _, text := range block.Lines {
			lines = append(lines, placedLine{
				text:     text,
				style:    block.Style,
				face:     face,
				baseline: y + ascent,
			})
			y += lh
		}
		y += blockGapPx
	}
	return lines, faces, nil
}

func lineHeight(sizePx float64) int {
	return int(sizePx*lineHeightRatio + 0.5)
}

// drawLine centers one line horizontally and draws it, shadow pass first.
func drawLine(canvas *image.RGBA, line placedLine, canvasWidth int) {
	width := font.MeasureString(line.face, line.text).Round()
	x := (canvasWidth - width) / 2

	if sh := line.style.Shadow; sh != nil {
		d := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(sh.Color),
			Face: line.face,
			Dot:  fixed.P(x+sh.DX, line.baseline+sh.DY),
		}
		d.DrawString(line.text)
	}

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(line.style.Color),
		Face: line.face,
		Dot:  fixed.P(x, line.baseline),
	}
	d.DrawString(line.text)
}
