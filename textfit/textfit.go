// Package textfit chooses font sizes and line breaks so that text of any
// length fits a fixed canvas. It never measures real glyph metrics: width
// is estimated from rune count and a per-envelope average character width
// ratio, which keeps the fit deterministic and cheap at the cost of being
// a heuristic rather than an exact-fit guarantee.
package textfit

import "unicode/utf8"

// Ellipsis marks truncated text. Truncation removes three characters and
// appends it, so the truncated string is exactly as long as the budget.
const Ellipsis = "..."

// Envelope bounds one text block's size and wrap computation.
type Envelope struct {
	MinSize           float64 // px, lower clamp for the chosen font size
	MaxSize           float64 // px, upper clamp and measurement basis
	MaxWidthPx        float64 // horizontal budget for a rendered line
	AvgCharWidthRatio float64 // estimated glyph width as a fraction of font size
	MaxLines          int
}

// Role envelopes. These are policy constants tuned for the 1200×630
// canvas, not derived values.
var (
	// TitleSolo fits a title that is the only text on the card.
	TitleSolo = Envelope{MinSize: 60, MaxSize: 110, MaxWidthPx: 1100, AvgCharWidthRatio: 0.6, MaxLines: 4}

	// TitleWithSubtitle fits a title sharing the card with a subtitle.
	TitleWithSubtitle = Envelope{MinSize: 80, MaxSize: 110, MaxWidthPx: 1100, AvgCharWidthRatio: 0.6, MaxLines: 1}

	// Subtitle fits the secondary line under a compound title.
	Subtitle = Envelope{MinSize: 30, MaxSize: 70, MaxWidthPx: 1100, AvgCharWidthRatio: 0.6, MaxLines: 3}
)

// Block is a fitted text block: the chosen font size and the wrapped,
// possibly truncated lines.
type Block struct {
	SizePx float64
	Lines  []string
}

// FontSize picks a font size for text within env. The unscaled width is
// estimated as runeCount*MaxSize*AvgCharWidthRatio; the size is MaxSize
// scaled down to fit MaxWidthPx and clamped to [MinSize, MaxSize]. Longer
// strings never yield a larger size than shorter ones. The empty string
// returns MinSize.
func FontSize(text string, env Envelope) float64 {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return env.MinSize
	}
	estimated := float64(n) * env.MaxSize * env.AvgCharWidthRatio
	scale := env.MaxWidthPx / estimated
	if scale > 1 {
		scale = 1
	}
	size := env.MaxSize * scale
	if size < env.MinSize {
		return env.MinSize
	}
	if size > env.MaxSize {
		return env.MaxSize
	}
	return size
}

// WrapLines partitions text into at most env.MaxLines fixed-width chunks
// for the given font size. Text longer than the total character budget is
// cut three characters short of it and marked with an ellipsis. Breaks are
// position-based with no word-boundary awareness; mid-word breaks are
// expected. Empty input yields no lines.
func WrapLines(text string, fontSize float64, env Envelope) []string {
	if text == "" {
		return nil
	}
	charsPerLine := int(env.MaxWidthPx / (fontSize * env.AvgCharWidthRatio))
	if charsPerLine < 1 {
		charsPerLine = 1
	}
	maxChars := charsPerLine * env.MaxLines

	runes := []rune(text)
	if len(runes) > maxChars {
		if cut := maxChars - len(Ellipsis); cut > 0 {
			runes = append(runes[:cut], []rune(Ellipsis)...)
		} else {
			runes = runes[:maxChars]
		}
	}

	var lines []string
	for start := 0; start < len(runes) && len(lines) < env.MaxLines; start += charsPerLine {
		end := start + charsPerLine
		if end > len(runes) {
			end = len(runes)
		}
		lines = append(lines, string(runes[start:end]))
	}
	return lines
}

// Fit runs size selection and wrapping for text within env.
func Fit(text string, env Envelope) Block {
	size := FontSize(text, env)
	return Block{SizePx: size, Lines: WrapLines(text, size, env)}
}
