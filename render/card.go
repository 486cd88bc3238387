// Package render composites preview cards: a background image scaled to
// cover a fixed canvas with centered, styled text blocks drawn over it.
//
// Rendering happens in two stages. The layout stage turns a Card into
// placed lines with absolute baselines; the raster stage draws those lines
// onto the canvas and encodes PNG. Text sizing decisions are made by the
// caller (see the textfit package) — this package draws exactly what it
// is given.
package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Shadow is a drop shadow behind a text block.
type Shadow struct {
	DX    int
	DY    int
	Color color.NRGBA
}

// Style describes how one text block is drawn. Family and Weight document
// the variant's intent; the glyphs actually drawn come from the card's
// font blob, which is expected to match.
type Style struct {
	Family string
	Weight string
	SizePx float64
	Color  color.NRGBA
	Shadow *Shadow
}

// Block is a group of pre-wrapped lines sharing one style.
type Block struct {
	Lines []string
	Style Style
}

// Card is the full description of one preview image.
type Card struct {
	Width      int
	Height     int
	Background []byte // encoded background image (PNG, JPEG or GIF)
	Font       []byte // TTF/OTF font blob used for all blocks
	Blocks     []Block
}

// ParseHexColor parses #rgb, #rrggbb and #rrggbbaa colors.
func ParseHexColor(s string) (color.NRGBA, error) {
	hexPart := strings.TrimPrefix(s, "#")
	if hexPart == s {
		return color.NRGBA{}, fmt.Errorf("parse color %q: missing # prefix", s)
	}
	if len(hexPart) == 3 {
		hexPart = string([]byte{
			hexPart[0], hexPart[0],
			hexPart[1], hexPart[1],
			hexPart[2], hexPart[2],
		})
	}
	if len(hexPart) != 6 && len(hexPart) != 8 {
		return color.NRGBA{}, fmt.Errorf("parse color %q: bad length", s)
	}
	v, err := strconv.ParseUint(hexPart, 16, 64)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	c := color.NRGBA{A: 0xff}
	if len(hexPart) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.B = uint8(v)
	c.G = uint8(v >> 8)
	c.R = uint8(v >> 16)
	return c, nil
}

// ParseShadow parses a "dx dy #color" shadow spec. Empty input means no
// shadow and returns nil.
func ParseShadow(s string) (*Shadow, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return nil, fmt.Errorf("parse shadow %q: want \"dx dy #color\"", s)
	}
	dx, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("parse shadow %q: %w", s, err)
	}
	dy, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("parse shadow %q: %w", s, err)
	}
	c, err := ParseHexColor(fields[2])
	if err != nil {
		return nil, fmt.Errorf("parse shadow %q: %w", s, err)
	}
	return &Shadow{DX: dx, DY: dy, Color: c}, nil
}
