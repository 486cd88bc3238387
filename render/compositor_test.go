package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// testBackground encodes a small solid PNG to exercise the cover-scale path.
func testBackground(t *testing.T, c color.NRGBA, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testCard(t *testing.T) Card {
	t.Helper()
	return Card{
		Width:      1200,
		Height:     630,
		Background: testBackground(t, color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}, 40, 30),
		Font:       goregular.TTF,
		Blocks: []Block{
			{
				Lines: []string{"SCP-1048-JP"},
				Style: Style{SizePx: 110, Color: color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}},
			},
			{
				Lines: []string{"The Clockwork Heart"},
				Style: Style{
					SizePx: 60,
					Color:  color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff},
					Shadow: &Shadow{DX: 2, DY: 2, Color: color.NRGBA{A: 0xff}},
				},
			},
		},
	}
}

func TestCompositorRendersCanvasSizedPNG(t *testing.T) {
	data, err := NewCompositor().Render(context.Background(), testCard(t))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if cfg.Width != 1200 || cfg.Height != 630 {
		t.Errorf("bounds = %dx%d, want 1200x630", cfg.Width, cfg.Height)
	}
}

func TestCompositorDrawsText(t *testing.T) {
	card := testCard(t)
	data, err := NewCompositor().Render(context.Background(), card)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	blank, err := NewCompositor().Render(context.Background(), Card{
		Width:      1200,
		Height:     630,
		Background: card.Background,
		Font:       card.Font,
	})
	if err != nil {
		t.Fatalf("Render of blank card failed: %v", err)
	}
	if bytes.Equal(data, blank) {
		t.Error("card with text rendered identically to a blank card")
	}
}

func TestCompositorRejectsBadFont(t *testing.T) {
	card := testCard(t)
	card.Font = []byte("not a font")
	if _, err := NewCompositor().Render(context.Background(), card); err == nil {
		t.Fatal("expected an error for an unparseable font")
	}
}

func TestCompositorRejectsBadBackground(t *testing.T) {
	card := testCard(t)
	card.Background = []byte("not an image")
	if _, err := NewCompositor().Render(context.Background(), card); err == nil {
		t.Fatal("expected an error for an undecodable background")
	}
}
